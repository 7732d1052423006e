// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

// buildBinary builds the swecfg binary from the module root into dir.
func buildBinary(t *testing.T, dir string) string {
	t.Helper()

	// Walk up to find go.mod
	projectRoot, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(projectRoot, "go.mod")); err == nil {
			break
		}
		parent := filepath.Dir(projectRoot)
		if parent == projectRoot {
			t.Fatal("could not find project root (go.mod)")
		}
		projectRoot = parent
	}

	binaryName := "swecfg"
	if runtime.GOOS == "windows" {
		binaryName = "swecfg.exe"
	}
	binaryPath := filepath.Join(dir, binaryName)

	cmd := exec.CommandContext(context.Background(), "go", "build", "-o", binaryPath, ".")
	cmd.Dir = projectRoot
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("failed to build swecfg: %v", err)
	}
	return binaryPath
}

// TestCLI runs all testscript tests in the testdata directory against a
// freshly built binary.
func TestCLI(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping binary build in short mode")
	}

	binDir := filepath.Dir(buildBinary(t, t.TempDir()))

	testscript.Run(t, testscript.Params{
		Dir: "testdata",
		Setup: func(env *testscript.Env) error {
			env.Setenv("PATH", binDir+string(os.PathListSeparator)+env.Getenv("PATH"))

			// Keep settings inside the script's work directory.
			env.Setenv("XDG_CONFIG_HOME", filepath.Join(env.WorkDir, ".config"))
			env.Setenv("APPDATA", filepath.Join(env.WorkDir, ".config"))
			return nil
		},
		// Continue running all tests even if one fails
		ContinueOnError: true,
	})
}
