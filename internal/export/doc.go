// SPDX-License-Identifier: MPL-2.0

// Package export renders a resolved build configuration for consumers.
//
// The build driver reads the scons format (key='value' lines), shell scripts
// source the env format, and the structured formats (json, toml, yaml, cue)
// feed other tooling. Every file format except text and env can be read back
// by package optfile and resolves to the same configuration. Keys are written
// in catalogue order wherever the format keeps order.
package export
