package cmd

import (
	"retail-backend/services"
	"retail-backend/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	userEmail     string
	userPassword  string
	userFirstName string
	userLastName  string
)

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Add a cashier account",
	Example: `  # Create a cashier who can log in from the desktop client
  retail-backend create-user --email jane@example.com --password 's3cret-pass' --first-name Jane --last-name Doe`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer a.close()

		auth := services.NewAuthService(a.db, utils.NewSecretBox(a.cfg.Auth.EncryptionKey), a.cfg.Auth.JWTSecret, a.cfg.Auth.SessionTTL())
		user, err := auth.CreateUser(cmd.Context(), services.NewUserInput{
			Email:     userEmail,
			Password:  userPassword,
			FirstName: userFirstName,
			LastName:  userLastName,
		})
		if err != nil {
			return err
		}

		a.log.Info("User created", zap.String("email", user.Email))
		return nil
	},
}

func init() {
	createUserCmd.Flags().StringVar(&userEmail, "email", "", "login email (required)")
	createUserCmd.Flags().StringVar(&userPassword, "password", "", "password, at least 8 characters (required)")
	createUserCmd.Flags().StringVar(&userFirstName, "first-name", "", "first name (required)")
	createUserCmd.Flags().StringVar(&userLastName, "last-name", "", "last name")
	_ = createUserCmd.MarkFlagRequired("email")
	_ = createUserCmd.MarkFlagRequired("password")
	_ = createUserCmd.MarkFlagRequired("first-name")

	rootCmd.AddCommand(createUserCmd)
}
