package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/yungbote/visapath-backend/internal/app"
)

type rootOptions struct {
	configFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "visapath",
		Short: "Visa profile assessment and smart suggestions backend",
		Long: `visapath scores a user's visa profile across seven categories, derives
readiness, risk and eligibility insights, and maintains a queue of prioritized
suggestions for the user.

Configuration comes from an optional YAML file and VISAPATH_* environment
variables (for example VISAPATH_DATABASE_DSN).`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "path to a YAML config file")

	cmd.AddCommand(
		newServeCmd(opts),
		newMigrateCmd(opts),
		newAssessCmd(opts),
		newSuggestCmd(opts),
		newPruneCmd(opts),
		newTokenCmd(opts),
	)
	return cmd
}

// bootstrap loads config and wires the app. mutate may adjust config first.
func bootstrap(ctx context.Context, opts *rootOptions, mutate func(*app.Config)) (*app.App, error) {
	cfg, err := app.LoadConfig(opts.configFile)
	if err != nil {
		return nil, err
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return app.New(ctx, cfg)
}

func parseUserID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("invalid user id %q", raw)
	}
	return id, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
