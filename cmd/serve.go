package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"retail-backend/routes"
	"retail-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrate(ctx, a.db, a.cfg.App.DefaultCurrency); err != nil {
		return err
	}

	if a.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	errorLog := services.NewErrorLogService(a.db, a.log)
	scheduler, err := errorLog.StartCleanup(a.cfg.ErrorLog.CleanupSchedule, a.cfg.ErrorLog.Retention())
	if err != nil {
		return err
	}
	defer scheduler.Stop()

	var notifier services.Notifier = services.NopNotifier{}
	if a.cfg.Notify.SMSReceipts {
		notifier = services.NewTwilioNotifier(a.cfg.Notify.TwilioAccountSID, a.cfg.Notify.TwilioAuthToken, a.cfg.Notify.TwilioFrom)
	}

	r := routes.SetupRouter(routes.Dependencies{
		DB:       a.db,
		Config:   a.cfg,
		Logger:   a.log,
		Notifier: notifier,
		ErrorLog: errorLog,
	})
	printRoutes(a.log, r)

	srv := &http.Server{
		Addr:              ":" + a.cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("Server listening", zap.String("addr", srv.Addr), zap.String("env", a.cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func printRoutes(log *zap.Logger, r *gin.Engine) {
	for _, route := range r.Routes() {
		log.Debug("route", zap.String("method", route.Method), zap.String("path", route.Path))
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
