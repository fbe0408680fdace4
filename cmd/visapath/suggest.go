package main

import (
	"github.com/spf13/cobra"
)

func newSuggestCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <user-id>",
		Short: "Regenerate suggestions for a user and print the active queue",
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

			ctx := cmd.Context()
			if _, err := a.Services.Suggestion.GenerateForUser(ctx, userID); err != nil {
				return err
			}
			active, err := a.Services.Suggestion.ListActive(ctx, userID)
			if err != nil {
				return err
			}
			counts, err := a.Services.Suggestion.CountByPriority(ctx, userID)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), map[string]any{
				"suggestions": active,
				"counts":      counts,
			})
		},
	}
}
