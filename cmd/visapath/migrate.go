package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yungbote/visapath-backend/internal/app"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update all tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap(cmd.Context(), opts, func(cfg *app.Config) {
				cfg.Database.AutoMigrate = true
			})
			if err != nil {
				return err
			}
			defer a.Close()
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "migrated %s database\n", a.DB.Driver())
			return err
		},
	}
}
