package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/deppfellow/go-registration/internal/database"
	"github.com/deppfellow/go-registration/internal/lib/job"
	"github.com/deppfellow/go-registration/internal/registration"
	"github.com/deppfellow/go-registration/internal/repository"
	"github.com/deppfellow/go-registration/internal/service"
	"github.com/deppfellow/go-registration/internal/ui/terminal"
	"github.com/deppfellow/go-registration/internal/validation"
)

func newFormCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "form",
		Short: "Fill in the registration form on this terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			defer a.close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			db, err := database.New(a.cfg, &a.log, a.loggerService)
			if err != nil {
				return err
			}
			defer db.Close()

			jobs := job.NewJobService(&a.log, a.cfg)
			defer jobs.Client.Close()

			registrar := service.NewRegistrationService(
				repository.NewUserRepository(db.Pool),
				jobs.Client,
				a.cfg.Registration,
				&a.log,
			)

			out := cmd.OutOrStdout()
			window := terminal.NewWindow(cmd.InOrStdin(), out, isatty.IsTerminal(os.Stdout.Fd()))
			if isatty.IsTerminal(os.Stdin.Fd()) {
				window.WithSecretReader(terminal.TerminalSecrets(int(os.Stdin.Fd()), out))
			}
			controller := registration.NewController(
				validation.NewRegistrationValidator(),
				registrar,
				window,
				func() { fmt.Fprintf(out, "→ %s\n", a.cfg.Registration.LoginURL) },
				registration.DefaultMessages().With(a.cfg.Messages),
				&a.log,
			)

			return window.Run(ctx, controller)
		},
	}
}
