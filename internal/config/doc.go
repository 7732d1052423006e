// SPDX-License-Identifier: MPL-2.0

// Package config handles swecfg's own settings using Viper with CUE as the file format.
//
// Settings are loaded from ~/.config/swecfg/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/swecfg/config.cue on macOS, %APPDATA%\swecfg\config.cue
// on Windows), then overridden by SWECFG_* environment variables. They cover where named
// option files are searched, the default export format and UI preferences.
//
// Settings never influence option resolution itself: a build option file resolves to the
// same configuration no matter which settings are active.
package config
