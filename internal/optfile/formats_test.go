// SPDX-License-Identifier: MPL-2.0

package optfile

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse_StructuredFormats(t *testing.T) {
	t.Parallel()

	want := map[string]string{
		"parallelization":   "cuda",
		"computeCapability": "sm_21",
		"openGL":            "true",
		"buildDir":          "out",
	}

	tests := []struct {
		name   string
		format Format
		src    string
	}{
		{
			name:   "cue",
			format: FormatCUE,
			src: `parallelization:   "cuda"
computeCapability: "sm_21"
openGL:            true
buildDir:          "out"
`,
		},
		{
			name:   "toml",
			format: FormatTOML,
			src: `parallelization = "cuda"
computeCapability = "sm_21"
openGL = true
buildDir = 'out'
`,
		},
		{
			name:   "yaml",
			format: FormatYAML,
			src: `parallelization: cuda
computeCapability: "sm_21"
openGL: true
buildDir: out
`,
		},
		{
			name:   "json",
			format: FormatJSON,
			src: `{
  "parallelization": "cuda",
  "computeCapability": "sm_21",
  "openGL": true,
  "buildDir": "out"
}
`,
		},
		{
			name:   "hcl",
			format: FormatHCL,
			src: `parallelization   = "cuda"
computeCapability = "sm_21"
openGL            = true
buildDir          = "out"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Parse([]byte(tt.src), tt.format, "opts."+tt.name)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_Numbers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format Format
		src    string
	}{
		{FormatCUE, "level: 3\nratio: 1.5\n"},
		{FormatTOML, "level = 3\nratio = 1.5\n"},
		{FormatYAML, "level: 3\nratio: 1.5\n"},
		{FormatHCL, "level = 3\nratio = 1.5\n"},
	}

	want := map[string]string{"level": "3", "ratio": "1.5"}
	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			t.Parallel()

			got, err := Parse([]byte(tt.src), tt.format, "numbers")
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_YAMLKeepsSourceText(t *testing.T) {
	t.Parallel()

	got, err := Parse([]byte("vectorize: on\nopenGL: YES\nasagiDir: \"\"\n"), FormatYAML, "opts.yaml")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := map[string]string{"vectorize": "on", "openGL": "YES", "asagiDir": ""}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_NonScalarValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format Format
		src    string
	}{
		{"cue list", FormatCUE, "solver: [\"fwave\"]\n"},
		{"cue struct", FormatCUE, "solver: {name: \"fwave\"}\n"},
		{"toml array", FormatTOML, "solver = [\"fwave\"]\n"},
		{"toml table", FormatTOML, "[solver]\nname = \"fwave\"\n"},
		{"yaml list", FormatYAML, "solver:\n  - fwave\n"},
		{"yaml mapping", FormatYAML, "solver:\n  name: fwave\n"},
		{"yaml null", FormatYAML, "solver:\n"},
		{"hcl tuple", FormatHCL, "solver = [\"fwave\"]\n"},
		{"hcl object", FormatHCL, "solver = { name = \"fwave\" }\n"},
		{"hcl block", FormatHCL, "solver {\n  name = \"fwave\"\n}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse([]byte(tt.src), tt.format, "opts")
			if !errors.Is(err, ErrNonScalarValue) {
				t.Fatalf("Parse() error = %v, want ErrNonScalarValue", err)
			}

			var nsErr *NonScalarValueError
			if !errors.As(err, &nsErr) {
				t.Fatalf("Parse() error type = %T, want *NonScalarValueError", err)
			}
			if nsErr.Key != "solver" {
				t.Errorf("Key = %q, want %q", nsErr.Key, "solver")
			}
		})
	}
}

func TestParse_HCLRejectsExpressions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		src       string
		construct string
	}{
		{"variable", "buildDir = var.dir\n", "variable reference"},
		{"interpolation", "buildDir = \"${dir}/x\"\n", "variable reference"},
		{"function call", "buildDir = upper(\"x\")\n", "function call"},
		{"arithmetic", "level = 1 + 2\n", "expression"},
		{"conditional", "openGL = true ? \"yes\" : \"no\"\n", "conditional"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse([]byte(tt.src), FormatHCL, "opts.hcl")
			var dynErr *DynamicValueError
			if !errors.As(err, &dynErr) {
				t.Fatalf("Parse() error = %v, want *DynamicValueError", err)
			}
			if dynErr.Construct != tt.construct {
				t.Errorf("Construct = %q, want %q", dynErr.Construct, tt.construct)
			}
			if dynErr.Line != 1 {
				t.Errorf("Line = %d, want 1", dynErr.Line)
			}
		})
	}
}

func TestParse_HCLNegativeNumber(t *testing.T) {
	t.Parallel()

	got, err := Parse([]byte("offset = -2\n"), FormatHCL, "opts.hcl")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got["offset"] != "-2" {
		t.Errorf("offset = %q, want %q", got["offset"], "-2")
	}
}

func TestParse_YAMLDuplicateKey(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("solver: fwave\nsolver: hybrid\n"), FormatYAML, "opts.yaml")
	var dupErr *DuplicateKeyError
	if !errors.As(err, &dupErr) {
		t.Fatalf("Parse() error = %v, want *DuplicateKeyError", err)
	}
	if dupErr.Line != 2 {
		t.Errorf("Line = %d, want 2", dupErr.Line)
	}
}

func TestParse_SyntaxErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format Format
		src    string
	}{
		{FormatCUE, "solver: \"fwave\n"},
		{FormatCUE, "\"not-an-identifier\": \"x\"\n"},
		{FormatTOML, "solver = \n"},
		{FormatTOML, "solver = 'a'\nsolver = 'b'\n"},
		{FormatYAML, "solver: [fwave\n"},
		{FormatYAML, "- fwave\n"},
		{FormatHCL, "solver = \n"},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			t.Parallel()

			_, err := Parse([]byte(tt.src), tt.format, "opts")
			if !errors.Is(err, ErrSyntax) {
				t.Errorf("Parse(%q) error = %v, want ErrSyntax", tt.src, err)
			}
		})
	}
}
