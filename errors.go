package propdoc

import "errors"

// Sentinel errors for library operations.
var (
	// Input validation errors (fatal, abort before any processing).
	ErrEmptyInput    = errors.New("raw text cannot be empty")
	ErrInputTooShort = errors.New("raw text is too short to be a proposal")

	// Configuration validation errors.
	ErrUnknownFormat   = errors.New("unknown output format")
	ErrInvalidPageSize = errors.New("invalid page size")

	// Validation enforcement.
	ErrValidationFailed = errors.New("document failed validation")

	// Paginated renderer errors. ErrRendererUnavailable is the typed
	// "capability unavailable" failure for the headless browser.
	ErrRendererUnavailable = errors.New("paginated renderer unavailable")
	ErrBrowserConnect      = errors.New("failed to connect to browser")
	ErrPageCreate          = errors.New("failed to create browser page")
	ErrPageLoad            = errors.New("failed to load page")
	ErrPDFGeneration       = errors.New("PDF generation failed")

	// Per-format conversion errors.
	ErrConversion = errors.New("format conversion failed")
)
