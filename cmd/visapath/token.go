package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yungbote/visapath-backend/internal/app"
)

func newTokenCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:    "token <user-id>",
		Short:  "Sign a development bearer token for a user",
		Args:   cobra.ExactArgs(1),
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseUserID(args[0])
			if err != nil {
				return err
			}
			a, err := bootstrap(cmd.Context(), opts, func(cfg *app.Config) {
				cfg.Database.AutoMigrate = false
			})
			if err != nil {
				return err
			}
			defer a.Close()

			tok, err := a.Services.Auth.IssueAccessToken(userID)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tok)
			return err
		},
	}
}
