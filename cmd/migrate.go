package main

import (
	"github.com/spf13/cobra"

	"github.com/juansean527/persona-service/database"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations and print the schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := database.Migrate(cmd.Context(), a.db.SQL); err != nil {
				return err
			}

			version, err := database.Version(cmd.Context(), a.db.SQL)
			if err != nil {
				return err
			}

			cmd.Printf("schema version: %d\n", version)
			return nil
		},
	}
}
