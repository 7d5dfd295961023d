package propdoc

import (
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-propdoc/internal/document"
	"github.com/alnah/go-propdoc/internal/render"
)

// Output format names.
const (
	FormatHTML = "html"
	FormatPDF  = "pdf"
	FormatDocx = "docx"
)

// Page size names for the paginated format.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// minRawTextLength is the input validation threshold: anything shorter
// cannot be a real proposal draft.
const minRawTextLength = 100

// defaultFormats is used when the caller requests no explicit formats.
var defaultFormats = []string{FormatHTML, FormatPDF}

// Input contains one generation request: the raw proposal text plus the
// caller's configuration.
type Input struct {
	RawText string // raw proposal text (required, >= 100 chars)

	Agency string // issuing agency name for the title page
	Client string // client name; overrides the extracted metadata

	// Placeholder substitutions applied to section content.
	ProjectOverview string // replaces the overview stub sentence
	Duration        string // replaces "X weeks" tokens
	Pricing         string // replaces dollar-amount placeholder tokens

	Formats []string // requested output formats (default: html, pdf)

	Layout  *Layout // nil = default layout (all pages included, letter)
	Styling Styling // zero value = default colors and fonts
}

// Layout controls which generated pages are included and the page size.
type Layout struct {
	IncludeTOC               bool
	IncludeTitlePage         bool
	IncludeInvestmentSummary bool
	PageSize                 string // "letter", "a4", "legal"
}

// DefaultLayout returns the layout used when Input.Layout is nil: every
// generated page included, US letter size.
func DefaultLayout() *Layout {
	return &Layout{
		IncludeTOC:               true,
		IncludeTitlePage:         true,
		IncludeInvestmentSummary: true,
		PageSize:                 PageSizeLetter,
	}
}

// Validate checks that layout settings are valid.
// Returns nil if l is nil (nil means use defaults).
func (l *Layout) Validate() error {
	if l == nil {
		return nil
	}
	switch strings.ToLower(l.PageSize) {
	case "", PageSizeLetter, PageSizeA4, PageSizeLegal:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, l.PageSize)
	}
}

// Colors configures the rendered document's palette.
type Colors struct {
	Primary   string
	Secondary string
	Accent    string
	Text      string
}

// Fonts configures the rendered document's font stacks.
type Fonts struct {
	Heading string
	Body    string
}

// Styling bundles colors and fonts.
type Styling struct {
	Colors Colors
	Fonts  Fonts
}

// Metadata mirrors the document-level fields extracted from the input.
type Metadata struct {
	Title   string `json:"title"`
	Client  string `json:"client"`
	Date    string `json:"date"`
	Version string `json:"version"`
}

// Stats summarizes one processed document.
type Stats struct {
	TotalSections         int      `json:"totalSections"`
	TotalWords            int      `json:"totalWords"`
	EstimatedPages        int      `json:"estimatedPages"`
	TotalTables           int      `json:"totalTables"`
	RemainingPlaceholders []string `json:"remainingPlaceholders"`
}

// ValidationResult reports completeness of the processed document.
type ValidationResult struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
	Score    int      `json:"score"`
	Stats    Stats    `json:"stats"`
}

// validateFormats checks the requested formats and applies the default.
func validateFormats(formats []string) ([]string, error) {
	if len(formats) == 0 {
		return defaultFormats, nil
	}
	out := make([]string, len(formats))
	for i, f := range formats {
		f = strings.ToLower(f)
		switch f {
		case FormatHTML, FormatPDF, FormatDocx:
			out[i] = f
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
		}
	}
	return out, nil
}

// toRenderConfig builds the internal template configuration from caller
// options plus processor-derived metadata.
func toRenderConfig(input Input, meta document.Metadata, now time.Time) render.Config {
	if input.Client != "" {
		meta.Client = input.Client
	}
	if meta.Date == "" {
		meta.Date = now.Format("January 2, 2006")
	}

	layout := input.Layout
	if layout == nil {
		layout = DefaultLayout()
	}
	pageSize := layout.PageSize
	if pageSize == "" {
		pageSize = PageSizeLetter
	}

	return render.Config{
		Metadata: meta,
		Agency:   input.Agency,
		Styling: render.Styling{
			Colors: render.Colors{
				Primary:   input.Styling.Colors.Primary,
				Secondary: input.Styling.Colors.Secondary,
				Accent:    input.Styling.Colors.Accent,
				Text:      input.Styling.Colors.Text,
			},
			Fonts: render.Fonts{
				Heading: input.Styling.Fonts.Heading,
				Body:    input.Styling.Fonts.Body,
			},
		},
		Layout: render.Layout{
			IncludeTOC:               layout.IncludeTOC,
			IncludeTitlePage:         layout.IncludeTitlePage,
			IncludeInvestmentSummary: layout.IncludeInvestmentSummary,
			PageSize:                 strings.ToLower(pageSize),
		},
	}
}

// toMetadata converts the internal metadata to its public mirror.
func toMetadata(m document.Metadata) Metadata {
	return Metadata(m)
}

// toValidationResult converts the internal validation report to its
// public mirror.
func toValidationResult(v document.ValidationResult) ValidationResult {
	return ValidationResult{
		IsValid:  v.IsValid,
		Errors:   v.Errors,
		Warnings: v.Warnings,
		Score:    v.Score,
		Stats: Stats{
			TotalSections:         v.Stats.TotalSections,
			TotalWords:            v.Stats.TotalWords,
			EstimatedPages:        v.Stats.EstimatedPages,
			TotalTables:           v.Stats.TotalTables,
			RemainingPlaceholders: v.Stats.RemainingPlaceholders,
		},
	}
}
