package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPruneCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "prune <user-id>",
		Short: "Delete expired suggestions and completed ones past retention",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseUserID(args[0])
			if err != nil {
				return err
			}
			a, err := bootstrap(cmd.Context(), opts, nil)
			if err != nil {
				return err
			}
			defer a.Close()

			n, err := a.Services.Suggestion.Prune(cmd.Context(), userID)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "pruned %d suggestion(s)\n", n)
			return err
		},
	}
}
