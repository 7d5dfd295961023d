package main

import (
	"errors"
	"os"

	propdoc "github.com/alnah/go-propdoc"
)

// Exit codes for the propdoc CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, custom < 126.
const (
	ExitSuccess = 0 // successful run
	ExitGeneral = 1 // general/unexpected error
	ExitUsage   = 2 // invalid flags, config, or input validation
	ExitIO      = 3 // file not found, permission denied
	ExitBrowser = 4 // browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must wrap with
// fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, propdoc.ErrBrowserConnect) ||
		errors.Is(err, propdoc.ErrPageCreate) ||
		errors.Is(err, propdoc.ErrPageLoad) ||
		errors.Is(err, propdoc.ErrPDFGeneration) ||
		errors.Is(err, propdoc.ErrRendererUnavailable) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) {
		return ExitIO
	}

	// Usage and validation errors (exit 2)
	if errors.Is(err, propdoc.ErrEmptyInput) ||
		errors.Is(err, propdoc.ErrInputTooShort) ||
		errors.Is(err, propdoc.ErrUnknownFormat) ||
		errors.Is(err, propdoc.ErrInvalidPageSize) ||
		errors.Is(err, propdoc.ErrValidationFailed) ||
		errors.Is(err, ErrInvalidArgs) ||
		errors.Is(err, ErrConfigNotFound) ||
		errors.Is(err, ErrEmptyConfigName) ||
		errors.Is(err, ErrConfigParse) {
		return ExitUsage
	}

	return ExitGeneral
}
