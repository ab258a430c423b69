package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ZebulonRouseFrantzich/fridamanager/internal/binary"
	"github.com/ZebulonRouseFrantzich/fridamanager/internal/config"
)

func newCleanCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Delete every cached release",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			return runClean(a)
		},
	}
}

// runClean removes the cache root and recreates it empty. A config.lua kept
// in the root survives the wipe.
func runClean(a *app) error {
	cache := binary.NewCacheWithFS(a.fs, a.root)
	a.logger.Info("cleaning cache", "root", cache.Root())

	cfgPath := filepath.Join(cache.Root(), config.FileName)
	saved, err := afero.ReadFile(a.fs, cfgPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read config before clean: %w", err)
	}

	if err := cache.Clean(); err != nil {
		return err
	}

	if saved != nil {
		if err := afero.WriteFile(a.fs, cfgPath, saved, 0o644); err != nil {
			return &binary.FilesystemError{Op: "restore config", Path: cfgPath, Err: err}
		}
	}

	fmt.Fprintf(a.stdout, "%s Cache cleaned: %s\n", markOK, SubtitleStyle.Render(cache.Root()))
	return nil
}
