package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/app"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/pkg/logger"
	"go.uber.org/fx"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP command surface and the cache sweeper",
	RunE:  serveAction,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serveAction(cmd *cobra.Command, _ []string) error {
	log := logger.New(logger.Opts{})
	defer logger.Flush(2 * time.Second)

	application := fx.New(
		fx.Logger(log),
		app.App,
	)

	if err := application.Start(cmd.Context()); err != nil {
		log.Error("Failed to start application", "error", err)
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), application.StopTimeout())
	defer cancel()
	if err := application.Stop(stopCtx); err != nil {
		log.Error("Failed to stop application", "error", err)
		return err
	}
	return nil
}
