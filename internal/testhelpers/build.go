// Package testhelpers builds helper binaries used by tests.
package testhelpers

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// BuildBin builds a repo-local package or file at pkgPath into a temp binary
// under the repository root and returns the resulting path. It configures
// build caches and temp dirs under the repo to avoid sandbox/network issues.
func BuildBin(t *testing.T, outName, pkgPath string) string {
	t.Helper()
	root := RepoRoot(t)
	tmpDir, err := os.MkdirTemp(root, "testbin-")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(tmpDir) })
	outPath := filepath.Join(tmpDir, outName)
	cmd := exec.Command("go", "build", "-o", outPath, pkgPath)
	cmd.Dir = root
	// keep caches and tmp under repo so tests run offline
	gocache := filepath.Join(root, ".gocache")
	gotmp := filepath.Join(root, ".gotmp")
	_ = os.MkdirAll(gocache, 0o755)
	_ = os.MkdirAll(gotmp, 0o755)
	cmd.Env = append(os.Environ(),
		"GOCACHE="+gocache,
		"GOTMPDIR="+gotmp,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build %s failed: %v\n%s", pkgPath, err, string(out))
	}
	return outPath
}

// RepoRoot returns the directory holding go.mod above the working directory.
func RepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("go.mod not found")
		}
		dir = parent
	}
}

// IspellFake builds the fake ispell checker and returns its path.
func IspellFake(t *testing.T) string {
	t.Helper()
	return BuildBin(t, "ispellfake", "./internal/testhelpers/ispellfake")
}
