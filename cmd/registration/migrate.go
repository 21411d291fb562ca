package main

import (
	"github.com/spf13/cobra"

	"github.com/deppfellow/go-registration/internal/database"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			defer a.close()

			return database.Migrate(cmd.Context(), &a.log, a.cfg)
		},
	}
}
