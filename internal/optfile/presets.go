// SPDX-License-Identifier: MPL-2.0

package optfile

import (
	"embed"
	"io/fs"
	"path"
	"slices"
	"strings"
)

//go:embed presets/*.py
var presetFS embed.FS

// Preset is an option file shipped with swecfg.
type Preset struct {
	// Name is the preset name without the SWE_ prefix and extension,
	// e.g. "gnu_cuda_openGL".
	Name string
	// Filename is the file name written by `swecfg init`.
	Filename string
	// Content is the raw option file.
	Content []byte
}

// Presets returns the bundled option files sorted by name.
func Presets() []Preset {
	entries, err := fs.ReadDir(presetFS, "presets")
	if err != nil {
		return nil
	}

	presets := make([]Preset, 0, len(entries))
	for _, entry := range entries {
		data, err := presetFS.ReadFile(path.Join("presets", entry.Name()))
		if err != nil {
			continue
		}
		presets = append(presets, Preset{
			Name:     presetName(entry.Name()),
			Filename: entry.Name(),
			Content:  data,
		})
	}
	slices.SortFunc(presets, func(a, b Preset) int { return strings.Compare(a.Name, b.Name) })
	return presets
}

// LookupPreset finds a preset by name. Both "gnu_cuda_openGL" and
// "SWE_gnu_cuda_openGL.py" are accepted.
func LookupPreset(name string) (Preset, bool) {
	want := presetName(name)
	for _, p := range Presets() {
		if p.Name == want {
			return p, true
		}
	}
	return Preset{}, false
}

// Values parses the preset.
func (p Preset) Values() (map[string]string, error) {
	return Parse(p.Content, FormatShell, p.Filename)
}

func presetName(filename string) string {
	name := strings.TrimSuffix(filename, path.Ext(filename))
	return strings.TrimPrefix(name, "SWE_")
}
