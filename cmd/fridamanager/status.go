package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ZebulonRouseFrantzich/fridamanager/internal/status"
)

func newStatusCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Compare the installed frida version with the latest release",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), cmd, opts)
			if err != nil {
				return err
			}
			return runStatus(cmd.Context(), a)
		},
	}
}

// runStatus prints the up-to-date or outdated verdict.
func runStatus(ctx context.Context, a *app) error {
	query, err := status.NewCommandQuery(a.cfg.VersionCommand)
	if err != nil {
		return err
	}

	reporter := status.NewReporter(a.releaseClient(), query, a.logger)
	if _, err := reporter.Report(ctx, a.stdout); err != nil {
		return fmt.Errorf("status: %w", err)
	}
	return nil
}
