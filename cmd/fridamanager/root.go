package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ZebulonRouseFrantzich/fridamanager/internal/binary"
	"github.com/ZebulonRouseFrantzich/fridamanager/internal/config"
	"github.com/ZebulonRouseFrantzich/fridamanager/internal/logging"
	"github.com/ZebulonRouseFrantzich/fridamanager/internal/platform"
	"github.com/ZebulonRouseFrantzich/fridamanager/internal/release"
)

const (
	// envHome overrides the cache root.
	envHome = "FRIDAMANAGER_HOME"
	// envToken is an optional GitHub token used for API requests.
	envToken = "GITHUB_TOKEN"
	// homeDirName is the cache directory created under $HOME.
	homeDirName = ".fridamanager"
)

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	home       string
	configPath string
	verbose    bool
}

// app is the per-invocation state built from the global flags.
type app struct {
	root    string
	cfgPath string
	cfg     *config.Config
	fs      afero.Fs
	logger  logging.Logger
	stdout  io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "fridamanager",
		Short: "Download and cache frida-server binaries",
		Long: TitleStyle.Render("fridamanager") + SubtitleStyle.Render(" - frida-server release cache") + `

Fetches frida-server binaries from GitHub releases, decompresses them
and keeps them under $HOME/.fridamanager/<version>/.

` + SubtitleStyle.Render("Examples:") + `
  fridamanager fetch                          Fetch the latest release
  fridamanager fetch --frida-version 16.0.0   Fetch a specific release
  fridamanager status                         Compare installed frida with latest
  fridamanager clean                          Empty the cache`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.PersistentFlags().StringVar(&opts.home, "home", "", "cache root (default is $"+envHome+" or $HOME/"+homeDirName+")")
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default is <home>/"+config.FileName+")")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		newFetchCmd(opts),
		newCleanCmd(opts),
		newStatusCmd(opts),
		newListCmd(opts),
		newVersionCmd(),
	)

	return rootCmd
}

// resolveRoot picks the cache root: --home, then $FRIDAMANAGER_HOME, then
// $HOME/.fridamanager.
func resolveRoot(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(envHome); env != "" {
		return filepath.Abs(env)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, homeDirName), nil
}

// newApp resolves and creates the cache root, builds the logger and loads
// the config.
func newApp(ctx context.Context, cmd *cobra.Command, opts *globalOptions) (*app, error) {
	a, err := openApp(cmd, opts)
	if err != nil {
		return nil, err
	}

	parser := config.NewParser(platform.NewDetector(), a.logger)
	cfg, err := parser.Load(ctx, a.fs, a.cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", a.cfgPath, err)
	}
	a.cfg = cfg

	return a, nil
}

// openApp resolves and creates the cache root without reading the config,
// so commands that only touch the cache keep working with a broken config.lua.
func openApp(cmd *cobra.Command, opts *globalOptions) (*app, error) {
	logger := logging.New(cmd.ErrOrStderr(), logging.Options{Verbose: opts.verbose})

	root, err := resolveRoot(opts.home)
	if err != nil {
		return nil, err
	}

	cfgPath := opts.configPath
	if cfgPath == "" {
		cfgPath = filepath.Join(root, config.FileName)
	}

	fs := afero.NewOsFs()
	if err := binary.NewCacheWithFS(fs, root).EnsureRoot(); err != nil {
		return nil, err
	}

	logger.Debug("using cache root", "root", root)

	return &app{
		root:    root,
		cfgPath: cfgPath,
		fs:      fs,
		logger:  logger,
		stdout:  cmd.OutOrStdout(),
	}, nil
}

// releaseClient builds the GitHub client described by the config.
func (a *app) releaseClient() *release.Client {
	token := a.cfg.GitHub.Token
	if token == "" {
		token = os.Getenv(envToken)
	}

	return release.NewClient(
		release.WithBaseURL(a.cfg.GitHub.BaseURL),
		release.WithRepo(a.cfg.GitHub.Owner, a.cfg.GitHub.Repo),
		release.WithUserAgent(a.cfg.UserAgent),
		release.WithToken(token),
		release.WithLogger(a.logger),
	)
}
