package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// BulletGlyph is the canonical bullet marker used for list lines after
// normalization. The section formatter maps it back to a Markdown list
// marker before inline rendering.
const BulletGlyph = "•"

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// A line consisting only of an isolated bullet marker
	loneBulletLine = regexp.MustCompile(`(?m)^\s*[-\x{2022}]\s*$`)

	// A "- " prefixed list line (captures the body)
	dashBulletLine = regexp.MustCompile(`(?m)^- (.+)$`)

	// A standalone separator line (a run of dashes, equals or underscores)
	separatorLine = regexp.MustCompile(`(?m)^[-=_]{3,}\s*$`)

	// Compress multiple blank lines to max 2
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)

	// Trailing whitespace per line
	trailingSpace = regexp.MustCompile(`(?m)[ \t]+$`)
)

// TextNormalizer defines the contract for raw-text cleanup.
type TextNormalizer interface {
	Normalize(ctx context.Context, content string) string
}

// ProposalNormalizer cleans raw proposal text exported from loosely
// formatted sources (chat transcripts, copy-pasted drafts).
type ProposalNormalizer struct{}

// Normalize applies all cleanup rules in order. It always succeeds; on
// context cancellation the input is returned unchanged.
func (n *ProposalNormalizer) Normalize(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = crlfOrCR.ReplaceAllString(content, "\n")
	content = loneBulletLine.ReplaceAllString(content, "")
	content = dashBulletLine.ReplaceAllString(content, BulletGlyph+" $1")
	content = separatorLine.ReplaceAllString(content, "")
	content = multipleBlankLines.ReplaceAllString(content, "\n\n")
	content = trailingSpace.ReplaceAllString(content, "")
	return strings.TrimSpace(content)
}
