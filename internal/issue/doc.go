// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the option file involved and
// suggestions for fixing it. The issue catalogue holds longer Markdown guidance
// for each failure class, rendered in the terminal with glamour.
package issue
