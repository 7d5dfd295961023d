package pipeline

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/alnah/go-propdoc/internal/document"
)

// Completeness score weights. The score starts at 100 and is clamped to
// [0,100] after all subtractions.
const (
	scorePerError        = 20
	scorePerWarning      = 5
	scorePerEmpty        = 5
	scoreMissingTitle    = 10
	scoreMissingClient   = 10
	shortSectionWords    = 10
	maxCompletenessGrade = 100
)

// Validator derives a completeness report from the processed document.
type Validator interface {
	Validate(ctx context.Context, doc *document.Document, remaining map[string]struct{}) document.ValidationResult
}

// CompletenessValidator checks for malformed tables, empty and unusually
// short sections, and unresolved placeholders, and scores the document.
type CompletenessValidator struct{}

// Validate computes errors, warnings, stats, and the 0-100 score.
// IsValid is true iff there are no errors; warnings never invalidate.
func (v *CompletenessValidator) Validate(ctx context.Context, doc *document.Document, remaining map[string]struct{}) document.ValidationResult {
	res := document.ValidationResult{}
	if ctx.Err() != nil {
		return res
	}

	for _, t := range doc.Tables {
		if len(t.Headers) == 0 {
			res.Errors = append(res.Errors, fmt.Sprintf("malformed table: %s", t.ID))
		}
	}

	emptyCount := 0
	shortCount := 0
	for _, sec := range doc.Sections {
		if strings.TrimSpace(sec.Content) == "" {
			emptyCount++
			continue
		}
		if words := wordCount(StripHTMLTags(sec.HTML)); words < shortSectionWords {
			shortCount++
		}
	}

	if emptyCount > 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("%d empty sections", emptyCount))
	}
	if shortCount > 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("%d unusually short sections", shortCount))
	}

	placeholders := sortedKeys(remaining)
	if len(placeholders) > 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("unresolved placeholders remain: %s", strings.Join(placeholders, ", ")))
	}

	res.Score = completenessScore(doc, res.Errors, res.Warnings, emptyCount)
	res.IsValid = len(res.Errors) == 0
	res.Stats = document.Stats{
		TotalSections:         len(doc.Sections),
		TotalWords:            doc.WordCount(),
		EstimatedPages:        EstimatePageCount(doc.Sections),
		TotalTables:           len(doc.Tables),
		RemainingPlaceholders: placeholders,
	}
	return res
}

// completenessScore starts at 100 and subtracts per error, per warning,
// per empty section, and for missing title/client metadata. The empty
// sections warning is an aggregate entry; its weight is carried by the
// per-empty-section subtraction, not the per-warning one.
func completenessScore(doc *document.Document, errs, warnings []string, emptyCount int) int {
	score := maxCompletenessGrade

	score -= scorePerError * len(errs)

	warningEntries := len(warnings)
	if emptyCount > 0 {
		warningEntries--
	}
	score -= scorePerWarning * warningEntries
	score -= scorePerEmpty * emptyCount

	if strings.TrimSpace(doc.Metadata.Title) == "" {
		score -= scoreMissingTitle
	}
	if strings.TrimSpace(doc.Metadata.Client) == "" {
		score -= scoreMissingClient
	}

	if score < 0 {
		return 0
	}
	if score > maxCompletenessGrade {
		return maxCompletenessGrade
	}
	return score
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
