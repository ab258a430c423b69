package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ZebulonRouseFrantzich/fridamanager/internal/binary"
)

func newListCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached releases and their binaries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			return runList(a)
		},
	}
}

func runList(a *app) error {
	versions, err := binary.NewCacheWithFS(a.fs, a.root).Versions()
	if err != nil {
		return err
	}

	if len(versions) == 0 {
		fmt.Fprintln(a.stdout, SubtitleStyle.Render("No cached releases."))
		fmt.Fprintln(a.stdout, "Run 'fridamanager fetch' to download the latest frida-server binaries.")
		return nil
	}

	for _, v := range versions {
		fmt.Fprintf(a.stdout, "%s (%d)\n", TitleStyle.Render(v.Version), len(v.Files))
		for _, f := range v.Files {
			fmt.Fprintf(a.stdout, "  %s\n", f)
		}
	}
	return nil
}
