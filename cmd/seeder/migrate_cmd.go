package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tea-backend/internal/database"
	"tea-backend/internal/db"
	"tea-backend/migrations"
)

func newMigrateCmd(a *app) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				names, err := database.Pending(migrations.FS)
				if err != nil {
					return err
				}
				for _, name := range names {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}

			ctx := cmd.Context()
			pool, err := db.Connect(ctx, a.cfg)
			if err != nil {
				return withCode(exitDB, err)
			}
			defer pool.Close()

			applied, err := database.NewMigrator(pool, migrations.FS).RunMigrations(ctx)
			if err != nil {
				return withCode(exitDB, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Applied %d migrations\n", applied)
			return nil
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "List the embedded migration files and exit")
	return cmd
}
