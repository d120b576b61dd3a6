package cmd

import (
	"context"
	"fmt"

	"retail-backend/models"
	"retail-backend/services"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Long: `Runs gorm AutoMigrate for every table and seeds the Global Defaults
record with the configured default currency. The server runs the same
migration on start, so this is only needed for schema-only deploys.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer a.close()

		if err := migrate(cmd.Context(), a.db, a.cfg.App.DefaultCurrency); err != nil {
			return err
		}
		a.log.Info("Database migrated", zap.Int("tables", len(models.All())))
		return nil
	},
}

func migrate(ctx context.Context, db *gorm.DB, defaultCurrency string) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if err := services.NewSettingsService(db, defaultCurrency).EnsureDefaults(ctx); err != nil {
		return fmt.Errorf("seed global defaults: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
