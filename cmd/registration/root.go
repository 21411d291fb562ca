package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/deppfellow/go-registration/internal/config"
	"github.com/deppfellow/go-registration/internal/logger"
)

// app is what every subcommand starts from.
type app struct {
	cfg           *config.Config
	log           zerolog.Logger
	loggerService *logger.LoggerService
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "registration",
		Short:        "User registration service",
		SilenceUsage: true,
	}

	root.AddCommand(newServeCmd(), newFormCmd(), newMigrateCmd())
	return root
}

func loadApp() (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	return &app{
		cfg:           cfg,
		log:           logger.NewLoggerWithService(cfg.Observability, loggerService),
		loggerService: loggerService,
	}, nil
}

func (a *app) close() {
	a.loggerService.Shutdown()
}
