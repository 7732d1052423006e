// SPDX-License-Identifier: MPL-2.0

// Package optfile loads SWE option files into raw key/value maps for
// options.Resolve.
//
// Option files are declarative data. The native format is a list of shell-style
// assignments, which is also what the historical SWE option files contain:
//
//	# Build options
//	parallelization='cuda'
//	solver='fwave'
//	openGL='yes'
//
//	# Library paths (only required if not installed in default path)
//	#libSDLDir=''
//
// Such files are parsed with a shell parser and never executed: anything other
// than a literal assignment (commands, $VAR expansion, $(...) substitution,
// arithmetic) is rejected with a DynamicValueError. CUE, TOML, YAML, JSON and HCL
// files holding top-level scalar values are accepted as well.
//
// This package only reads files. Validation against the option schema is done
// by package options.
package optfile
