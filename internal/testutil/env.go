// Package testutil provides utilities for testing fridamanager in isolation.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// EnvHome overrides the cache root (normally $HOME/.fridamanager).
const EnvHome = "FRIDAMANAGER_HOME"

// SetupTestEnv points the cache root and $HOME at a fresh temp directory so
// tests never touch the user's real cache. It returns the cache root.
//
// Cleanup is handled by t.TempDir().
func SetupTestEnv(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	home := filepath.Join(tmpDir, "home")
	root := filepath.Join(home, ".fridamanager")

	t.Setenv("HOME", home)
	t.Setenv(EnvHome, root)
	t.Setenv("FRIDAMANAGER_DEBUG", "")
	t.Setenv("GITHUB_TOKEN", "")

	if err := os.MkdirAll(home, 0o750); err != nil {
		t.Fatalf("failed to create test home %s: %v", home, err)
	}

	return root
}
