package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/deppfellow/go-registration/internal/database"
	"github.com/deppfellow/go-registration/internal/handler"
	"github.com/deppfellow/go-registration/internal/repository"
	"github.com/deppfellow/go-registration/internal/router"
	"github.com/deppfellow/go-registration/internal/server"
	"github.com/deppfellow/go-registration/internal/service"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the registration HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			// srv.Shutdown also closes the logger service; closing twice is a no-op.
			defer a.close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if migrate {
				if err := database.Migrate(ctx, &a.log, a.cfg); err != nil {
					a.log.Error().Err(err).Msg("failed to migrate database")
					return err
				}
			}

			srv, err := server.New(a.cfg, &a.log, a.loggerService)
			if err != nil {
				a.log.Error().Err(err).Msg("failed to initialize server")
				return err
			}

			repos := repository.NewRepositories(srv)
			services, err := service.NewServices(srv, repos)
			if err != nil {
				a.log.Error().Err(err).Msg("could not create services")
				return errors.Join(err, srv.Shutdown(context.Background()))
			}

			srv.SetupHTTPServer(router.NewRouter(srv, handler.NewHandlers(srv, services)))

			serveErr := make(chan error, 1)
			go func() {
				serveErr <- srv.Start()
			}()

			select {
			case err = <-serveErr:
				if err != nil {
					a.log.Error().Err(err).Msg("server stopped unexpectedly")
				}
			case <-ctx.Done():
				a.log.Info().Msg("shutdown signal received")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			shutdownErr := srv.Shutdown(shutdownCtx)
			if shutdownErr != nil {
				a.log.Error().Err(shutdownErr).Msg("server forced to shutdown")
			}

			a.log.Info().Msg("server exited properly")
			return errors.Join(err, shutdownErr)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", true, "apply pending migrations before serving")
	return cmd
}
