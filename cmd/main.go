package main

import (
	"context"
	"os"

	"github.com/orgball2608/tweet-gallery/internal/app"
	"github.com/orgball2608/tweet-gallery/pkg/logger"
	"go.uber.org/fx"
)

func main() {
	log := logger.New(logger.Opts{})

	app := fx.New(
		fx.Logger(log),
		app.Module,
	)

	// Start the application
	if err := app.Start(context.Background()); err != nil {
		log.Error("Failed to start application", "error", err)
		os.Exit(1)
	}

	// Wait for an interrupt or for the live channel to report that every
	// page has closed
	sig := <-app.Done()
	log.Info("Shutting down", "signal", sig.String())

	// Gracefully shutdown the application
	if err := app.Stop(context.Background()); err != nil {
		log.Error("Failed to stop application", "error", err)
		os.Exit(1)
	}
}
