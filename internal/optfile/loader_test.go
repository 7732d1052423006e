// SPDX-License-Identifier: MPL-2.0

package optfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"build/options/SWE_gnu_cuda_openGL.py", FormatShell, false},
		{"SWE_custom", FormatShell, false},
		{"my.opts", FormatShell, false},
		{"my.sh", FormatShell, false},
		{"my.cue", FormatCUE, false},
		{"my.TOML", FormatTOML, false},
		{"my.yaml", FormatYAML, false},
		{"my.yml", FormatYAML, false},
		{"my.hcl", FormatHCL, false},
		{"my.json", FormatJSON, false},
		{"my.ini", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			got, err := FormatFromPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatFromPath() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("FormatFromPath() error = %v, want ErrUnsupportedFormat", err)
			}
			if got != tt.want {
				t.Errorf("FormatFromPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormat_IsValid(t *testing.T) {
	t.Parallel()

	for _, f := range []Format{FormatShell, FormatCUE, FormatTOML, FormatYAML, FormatHCL, FormatJSON} {
		if ok, errs := f.IsValid(); !ok || len(errs) != 0 {
			t.Errorf("Format(%q).IsValid() = %v, %v; want true, nil", f, ok, errs)
		}
	}

	ok, errs := Format("ini").IsValid()
	if ok || len(errs) != 1 || !errors.Is(errs[0], ErrUnsupportedFormat) {
		t.Errorf("Format(\"ini\").IsValid() = %v, %v; want false, [ErrUnsupportedFormat]", ok, errs)
	}
}

func TestParse_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("a=b"), Format("ini"), "x.ini")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Parse() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestParse_FileTooLarge(t *testing.T) {
	t.Parallel()

	data := make([]byte, 5*1024*1024+1)
	if _, err := Parse(data, FormatShell, "huge.py"); err == nil {
		t.Error("Parse() expected an error for an oversized file")
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	shellPath := filepath.Join(dir, "SWE_test.py")
	writeFile(t, shellPath, "solver='hybrid'\n")
	tomlPath := filepath.Join(dir, "SWE_test.toml")
	writeFile(t, tomlPath, "solver = \"rusanov\"\n")

	got, err := Load(context.Background(), shellPath)
	if err != nil {
		t.Fatalf("Load(shell) error = %v", err)
	}
	if diff := cmp.Diff(map[string]string{"solver": "hybrid"}, got); diff != "" {
		t.Errorf("Load(shell) mismatch (-want +got):\n%s", diff)
	}

	got, err = Load(context.Background(), tomlPath)
	if err != nil {
		t.Fatalf("Load(toml) error = %v", err)
	}
	if diff := cmp.Diff(map[string]string{"solver": "rusanov"}, got); diff != "" {
		t.Errorf("Load(toml) mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := Load(context.Background(), filepath.Join(dir, "missing.py"))
		if !errors.Is(err, ErrOptionFileNotFound) {
			t.Errorf("Load() error = %v, want ErrOptionFileNotFound", err)
		}
	})

	t.Run("unsupported extension", func(t *testing.T) {
		t.Parallel()

		_, err := Load(context.Background(), filepath.Join(dir, "opts.ini"))
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("Load() error = %v, want ErrUnsupportedFormat", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Load(ctx, filepath.Join(dir, "opts.py"))
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Load() error = %v, want context.Canceled", err)
		}
	})
}

func TestFind(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	optionsDir := filepath.Join(root, "build", "options")
	writeFile(t, filepath.Join(optionsDir, "SWE_gnu_cuda_openGL.py"), "solver='fwave'\n")
	writeFile(t, filepath.Join(optionsDir, "release.toml"), "compileMode = 'release'\n")
	writeFile(t, filepath.Join(root, "SWE_local"), "compiler='gnu'\n")
	writeFile(t, filepath.Join(root, "release.yaml"), "compileMode: debug\n")

	dirs := []string{optionsDir, root}

	tests := []struct {
		name string
		want string
	}{
		{"SWE_gnu_cuda_openGL", filepath.Join(optionsDir, "SWE_gnu_cuda_openGL.py")},
		{"gnu_cuda_openGL", filepath.Join(optionsDir, "SWE_gnu_cuda_openGL.py")},
		{"SWE_gnu_cuda_openGL.py", filepath.Join(optionsDir, "SWE_gnu_cuda_openGL.py")},
		{"release", filepath.Join(optionsDir, "release.toml")},
		{"local", filepath.Join(root, "SWE_local")},
		{filepath.Join(root, "release.yaml"), filepath.Join(root, "release.yaml")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Find(tt.name, dirs)
			if err != nil {
				t.Fatalf("Find() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Find() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFind_NotFound(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "SWE_dir.py"), 0o755); err != nil {
		t.Fatalf("Mkdir() error = %v", err)
	}

	for _, name := range []string{"", "missing", "dir", filepath.Join(dir, "missing.py")} {
		_, err := Find(name, []string{dir})
		if !errors.Is(err, ErrOptionFileNotFound) {
			t.Errorf("Find(%q) error = %v, want ErrOptionFileNotFound", name, err)
		}

		var nfErr *OptionFileNotFoundError
		if errors.As(err, &nfErr) && nfErr.Name != name {
			t.Errorf("OptionFileNotFoundError.Name = %q, want %q", nfErr.Name, name)
		}
	}
}

func TestParseAssignments(t *testing.T) {
	t.Parallel()

	got, err := ParseAssignments([]string{
		"solver=fwave",
		"buildDir='out dir'",
		`compiler="intel"`,
		"asagiDir=",
		"libSDLDir=/opt/a=b",
		"solver=hybrid",
	})
	if err != nil {
		t.Fatalf("ParseAssignments() error = %v", err)
	}

	want := map[string]string{
		"solver":    "hybrid",
		"buildDir":  "out dir",
		"compiler":  "intel",
		"asagiDir":  "",
		"libSDLDir": "/opt/a=b",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseAssignments() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseAssignments_Invalid(t *testing.T) {
	t.Parallel()

	for _, arg := range []string{"solver", "=fwave", "two words=x"} {
		_, err := ParseAssignments([]string{arg})
		if !errors.Is(err, ErrInvalidAssignment) {
			t.Errorf("ParseAssignments(%q) error = %v, want ErrInvalidAssignment", arg, err)
		}
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	base := map[string]string{"solver": "fwave", "compiler": "gnu"}
	fromFile := map[string]string{"solver": "hybrid"}
	fromFlags := map[string]string{"compiler": "intel", "vectorize": "on"}

	got := Merge(base, fromFile, fromFlags)
	want := map[string]string{"solver": "hybrid", "compiler": "intel", "vectorize": "on"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Merge() mismatch (-want +got):\n%s", diff)
	}
	if base["solver"] != "fwave" {
		t.Error("Merge() modified its base map")
	}

	if got := Merge(nil); got == nil || len(got) != 0 {
		t.Errorf("Merge(nil) = %v, want empty map", got)
	}
}
