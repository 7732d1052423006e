// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE parsing and encoding utilities.
//
// Parsing follows a 3-step pattern used by option files and the swecfg
// settings file:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify with schema
//  3. Validate and decode to a Go value
//
// # Usage
//
//	//go:embed optfile_schema.cue
//	var schemaBytes []byte
//
//	result, err := cueutil.ParseAndDecode[map[string]string](
//	    schemaBytes,
//	    userFileBytes,
//	    "#OptionFile",
//	    cueutil.WithFilename("SWE_gnu.cue"),
//	)
//	if err != nil {
//	    return nil, err // Error includes CUE path for debugging
//	}
//	return *result.Value, nil
//
// Encode goes the other way and renders a Go value as formatted CUE source.
package cueutil
