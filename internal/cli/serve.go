package cli

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ledgerlens/reconcile-backend/internal/api"
	"github.com/ledgerlens/reconcile-backend/internal/infrastructure/config"
	"github.com/ledgerlens/reconcile-backend/internal/infrastructure/logging"
	"github.com/ledgerlens/reconcile-backend/internal/infrastructure/store"
)

// ServeFlags holds the CLI flags for the serve command.
type ServeFlags struct {
	Port       int
	ConfigPath string
	Verbose    bool
}

// ParseServeFlags parses command line flags for the serve command.
func ParseServeFlags() *ServeFlags {
	flags := &ServeFlags{}
	flag.IntVar(&flags.Port, "port", 0, "Port to listen on (0 = config value)")
	flag.StringVar(&flags.ConfigPath, "config", "config.yaml", "Path to config file")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Verbose output")
	flag.Parse()
	return flags
}

// RunServe runs the API server.
func RunServe(cfg *config.Config, flags *ServeFlags) error {
	// Set up logging
	loggingCfg := cfg.Observability.Logging
	if flags.Verbose {
		loggingCfg.Level = "debug"
	}
	logger := logging.NewLoggerWithSystem(loggingCfg, "api")

	// Run history lives in memory, bounded by config
	repo := store.NewMemoryRepository(cfg.Server.RunHistory)

	port := cfg.Server.Port
	if flags.Port > 0 {
		port = flags.Port
	}

	apiCfg := api.Config{
		Port:           port,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		EngineDefaults: matchConfigFrom(cfg.Engine),
	}

	server := api.NewServer(apiCfg, repo, logger)

	// Handle graceful shutdown
	done := make(chan bool, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("received shutdown signal")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server shutdown error", slog.Any("error", err))
		}
		close(done)
	}()

	// Start server (blocks until shutdown)
	if err := server.Start(); err != nil {
		return err
	}

	<-done
	logger.Info("server stopped")
	return nil
}
