package main

import (
	"github.com/spf13/cobra"
	"github.com/yukikurage/saas-starter-api/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		return database.Migrate(a.db, a.log)
	},
}
