package app

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"webhook-examples/internal/common/logging"
	"webhook-examples/internal/config"
)

// Run is the main entry point for the application
func Run() error {
	// Load environment variables
	_ = godotenv.Load()

	// Set up CPU usage
	runtime.GOMAXPROCS(runtime.NumCPU())

	// Initialize logging
	logging.InitGlobalLogger()
	defer logging.MustSync()

	logging.Info("Starting webhook examples catalog",
		logging.Field{Key: "cpus", Value: runtime.NumCPU()},
		logging.Field{Key: "version", Value: "1.0.0"},
	)

	// Load configuration, open sealed credentials, then validate
	cfg := config.Load()
	if err := cfg.Unseal(); err != nil {
		logging.Error("Failed to open sealed credentials", err)
		return err
	}
	if err := cfg.Validate(); err != nil {
		logging.Error("Configuration validation failed", err)
		return err
	}

	app := New(cfg)

	// Start server
	srv := app.RunServer()
	serveErr := srv.Start()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		logging.Error("Server stopped unexpectedly", err)
		return err
	case sig := <-quit:
		logging.Info("Shutting down server...",
			logging.String("signal", sig.String()),
			logging.Duration("timeout", 30*time.Second),
		)
	}

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Server forced to shutdown", err)
		return err
	}

	logging.Info("Server exited")
	return nil
}
