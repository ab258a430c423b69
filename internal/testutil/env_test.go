package testutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZebulonRouseFrantzich/fridamanager/internal/testutil"
)

func TestSetupTestEnv(t *testing.T) {
	root := testutil.SetupTestEnv(t)

	if got := os.Getenv(testutil.EnvHome); got != root {
		t.Errorf("%s = %q, want %q", testutil.EnvHome, got, root)
	}
	if !filepath.IsAbs(root) {
		t.Errorf("root %s is not absolute", root)
	}
	if filepath.Dir(root) != os.Getenv("HOME") {
		t.Errorf("root %s is not under HOME %s", root, os.Getenv("HOME"))
	}
	if _, err := os.Stat(os.Getenv("HOME")); err != nil {
		t.Errorf("HOME does not exist: %v", err)
	}
	if os.Getenv("GITHUB_TOKEN") != "" {
		t.Error("GITHUB_TOKEN should be cleared")
	}
}

func TestSetupTestEnv_Isolation(t *testing.T) {
	root1 := testutil.SetupTestEnv(t)

	t.Run("subtest", func(t *testing.T) {
		root2 := testutil.SetupTestEnv(t)
		if root1 == root2 {
			t.Error("expected different temp directories for different test contexts")
		}
	})
}
