// Command fridamanager downloads and caches frida-server release binaries.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ZebulonRouseFrantzich/fridamanager/internal/config"
)

// Version will be set at build time via -ldflags
var Version = "v0.1.0-dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s %s\n", ErrorStyle.Render("Error:"), formatError(rootCmd, err))
		stop()
		os.Exit(1)
	}
}

// formatError renders err for the terminal, with full config error details
// when --verbose was given.
func formatError(rootCmd *cobra.Command, err error) string {
	verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
	return config.FormatError(err, verbose)
}
