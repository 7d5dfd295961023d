package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// OverviewStub is the literal stock sentence left behind by proposal
// drafts; it is replaced by the caller's overview or removed.
const OverviewStub = "Brief overview of the proposed project..."

var (
	// Placeholder duration token, e.g. "X weeks".
	durationToken = regexp.MustCompile(`\bX+\s+weeks?\b`)

	// Dollar-amount placeholder: literal $ followed by X/digits/commas.
	dollarToken = regexp.MustCompile(`\$[X\d][X\d,]*`)

	// Remaining unresolved tokens: ALL-CAPS runs longer than 2 chars.
	// Intentionally noisy: ordinary acronyms ("API", "GST") match too.
	capsToken = regexp.MustCompile(`\b[A-Z]{3,}\b`)
)

// PlaceholderValues holds caller-supplied substitutions for the stock
// phrases and tokens found in raw proposal text.
type PlaceholderValues struct {
	Overview string // replaces the overview stub sentence
	Duration string // replaces "X weeks" tokens
	Pricing  string // replaces dollar-amount placeholder tokens
}

// PlaceholderResolver substitutes known stock phrases and reports what is
// left unresolved.
type PlaceholderResolver interface {
	Resolve(ctx context.Context, content string, vals PlaceholderValues, remaining map[string]struct{}) string
}

// StockPhraseResolver applies the three fixed substitution rules and then
// records every remaining ALL-CAPS token into the run's shared set.
type StockPhraseResolver struct{}

// Resolve substitutes placeholders in one section's content. The remaining
// set accumulates across all sections of a single document run; it must
// never be shared across concurrent runs.
func (r *StockPhraseResolver) Resolve(ctx context.Context, content string, vals PlaceholderValues, remaining map[string]struct{}) string {
	if ctx.Err() != nil {
		return content
	}

	content = strings.ReplaceAll(content, OverviewStub, vals.Overview)
	if vals.Duration != "" {
		content = durationToken.ReplaceAllString(content, vals.Duration)
	}
	if vals.Pricing != "" {
		content = dollarToken.ReplaceAllString(content, vals.Pricing)
	}

	for _, tok := range capsToken.FindAllString(content, -1) {
		remaining[tok] = struct{}{}
	}
	return content
}
