// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for swecfg.
//
// This package implements the Cobra command hierarchy: resolving and validating
// SWE option files, printing the option schema, writing preset option files and
// managing swecfg's own settings.
package cmd
