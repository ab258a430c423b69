package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ZebulonRouseFrantzich/fridamanager/internal/binary"
)

func newFetchCmd(opts *globalOptions) *cobra.Command {
	var version string

	cmd := &cobra.Command{
		Use:     "fetch",
		Short:   "Download frida-server binaries for a release",
		Example: "fridamanager fetch --frida-version 16.0.0",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), cmd, opts)
			if err != nil {
				return err
			}
			return runFetch(cmd.Context(), a, version)
		},
	}

	cmd.Flags().StringVar(&version, "frida-version", "", "release tag to download (default is the latest release)")

	return cmd
}

// runFetch downloads every selected asset of the release that is not cached
// yet. Individual download failures are reported but do not fail the command.
func runFetch(ctx context.Context, a *app, version string) error {
	mgr, err := binary.NewManager(binary.Config{
		Root:      a.root,
		Releases:  a.releaseClient(),
		Filter:    a.cfg.Filter(),
		Workers:   a.cfg.Workers,
		UserAgent: a.cfg.UserAgent,
		FS:        a.fs,
		Logger:    a.logger,
	})
	if err != nil {
		return fmt.Errorf("create manager: %w", err)
	}

	if err := mgr.EnsureRoot(); err != nil {
		return err
	}

	report, err := mgr.Fetch(ctx, binary.FetchOptions{Version: version})
	if err != nil {
		return err
	}

	printReport(a, report)
	return nil
}

func printReport(a *app, report *binary.Report) {
	out := a.stdout

	fmt.Fprintf(out, "%s Frida Version: %s\n", markOK, TitleStyle.Render(report.Version))
	fmt.Fprintf(out, "%s %d frida-server binaries found.\n", markOK, len(report.Outcomes))

	for _, o := range report.Outcomes {
		switch o.Status {
		case binary.StatusDownloaded:
			fmt.Fprintf(out, "%s Downloaded %s.\n", markOK, o.Asset.Name)
		case binary.StatusCached:
			fmt.Fprintf(out, "%s %s is cached.\n", markOK, o.Asset.Name)
		default:
			fmt.Fprintf(out, "%s %v\n", markFail, o.Err)
		}
	}

	summary := fmt.Sprintf("%d downloaded, %d cached, %d failed",
		report.Count(binary.StatusDownloaded),
		report.Count(binary.StatusCached),
		report.Count(binary.StatusFailed))
	if len(report.Failed()) > 0 {
		fmt.Fprintf(out, "%s %s\n", markWarn, WarningStyle.Render(summary))
	} else {
		fmt.Fprintf(out, "%s %s\n", markOK, SuccessStyle.Render(summary))
	}
	fmt.Fprintln(out, SubtitleStyle.Render(report.Dir))
}
