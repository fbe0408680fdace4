package main

import (
	"github.com/spf13/cobra"
)

func newAssessCmd(opts *rootOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "assess <user-id>",
		Short: "Assess a user's profile and print the result as JSON",
		Long: `Returns the stored assessment while it is inside the freshness window
(assessment.freshness, 7 days by default) and recomputes it otherwise.
--force always recomputes.`,
		Args: cobra.ExactArgs(1),
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

			res, err := a.Services.Assessment.AssessProfile(cmd.Context(), userID, force)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "recompute even when the stored assessment is fresh")
	return cmd
}
