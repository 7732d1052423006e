// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/swe-tools/swecfg/internal/config"
	"github.com/swe-tools/swecfg/internal/export"
	"github.com/swe-tools/swecfg/internal/issue"
	"github.com/swe-tools/swecfg/internal/optfile"
	"github.com/swe-tools/swecfg/internal/options"
)

// ServiceError is an error that carries optional rendering information for
// the CLI layer. When the CLI layer receives a ServiceError, it renders the
// styled error message (if present) before the optional issue guidance.
// Always create via newServiceError to enforce the Err-must-be-non-nil invariant.
type ServiceError struct {
	// Err is the underlying error (must not be nil).
	Err error
	// IssueID is the optional issue catalog ID for rendering help text.
	IssueID issue.Id
	// StyledMessage is the optional pre-rendered styled error text.
	StyledMessage string
}

// newServiceError creates a ServiceError with a nil-Err panic guard.
func newServiceError(err error, issueID issue.Id, styledMessage string) *ServiceError {
	if err == nil {
		panic("ServiceError: Err must not be nil")
	}
	return &ServiceError{
		Err:           err,
		IssueID:       issueID,
		StyledMessage: styledMessage,
	}
}

// Error implements the error interface.
func (e *ServiceError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ServiceError) Unwrap() error { return e.Err }

// classifyError maps a failure to its issue catalog entry. Unknown errors map to 0.
func classifyError(err error) issue.Id {
	switch {
	case errors.Is(err, optfile.ErrOptionFileNotFound):
		return issue.OptionFileNotFoundId
	case errors.Is(err, optfile.ErrDynamicValue):
		return issue.DynamicOptionValueId
	case errors.Is(err, optfile.ErrSyntax),
		errors.Is(err, optfile.ErrNonScalarValue),
		errors.Is(err, optfile.ErrDuplicateKey),
		errors.Is(err, optfile.ErrInvalidAssignment):
		return issue.OptionFileParseErrorId
	case errors.Is(err, options.ErrUnknownOption):
		return issue.UnknownOptionId
	case errors.Is(err, options.ErrInvalidValue):
		return issue.InvalidOptionValueId
	case errors.Is(err, options.ErrConstraintViolation):
		return issue.ConstraintViolationId
	case errors.Is(err, optfile.ErrUnsupportedFormat),
		errors.Is(err, export.ErrUnsupportedFormat):
		return issue.UnsupportedFormatId
	case errors.Is(err, config.ErrConfigFileNotFound),
		errors.Is(err, config.ErrInvalidConfig):
		return issue.ConfigLoadFailedId
	default:
		return 0
	}
}

// classifyServiceError wraps err with its issue ID and the styled "Error:" line.
func classifyServiceError(err error, verbose bool) *ServiceError {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr
	}
	msg := fmt.Sprintf("\n%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, verbose))
	return newServiceError(err, classifyError(err), msg)
}

// renderServiceError prints the styled message first, then, in verbose mode,
// the issue guidance.
func (a *App) renderServiceError(svcErr *ServiceError) {
	if svcErr == nil {
		return
	}

	if svcErr.StyledMessage != "" {
		fmt.Fprint(a.stderr, svcErr.StyledMessage)
	}

	if svcErr.IssueID == 0 {
		return
	}
	if !a.verbose {
		fmt.Fprintln(a.stderr, SubtitleStyle.Render("Run with --verbose for guidance."))
		return
	}

	if catalogEntry := issue.Get(svcErr.IssueID); catalogEntry != nil {
		rendered, renderErr := catalogEntry.Render(issueStyle(a.Settings().UI.ColorScheme))
		if renderErr != nil {
			a.logger.Warn("failed to render issue catalog entry", "issueID", svcErr.IssueID, "error", renderErr)
		} else {
			fmt.Fprint(a.stderr, rendered)
		}
	}
}

// fail reports err on stderr and returns the ExitError a RunE handler should return.
func (a *App) fail(err error) error {
	a.renderServiceError(classifyServiceError(err, a.verbose))
	return &ExitError{Code: 1, Err: err}
}
