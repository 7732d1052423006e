// SPDX-License-Identifier: MPL-2.0

// Package options defines the SWE build option schema and resolves partial option
// sets into complete, validated build configurations.
//
// A Schema is a fixed catalogue of recognized keys, each with a value domain
// (enumeration, boolean-like toggle, or path) and a default, plus a list of
// cross-key constraints. Resolve merges user input over the defaults, validates
// every value against its domain in declaration order, evaluates the constraints,
// and returns an immutable ResolvedConfig:
//
//	cfg, err := options.Resolve(map[string]string{
//	    "parallelization":   "cuda",
//	    "computeCapability": "sm_21",
//	})
//	if err != nil {
//	    return err // *UnknownOptionError, *InvalidValueError or *ConstraintViolationError
//	}
//	solver := cfg.Value(options.KeySolver) // "augrie"
//
// Resolution is a pure function: it never touches the filesystem or environment.
// Loading option files is the job of package optfile.
package options
