// Package pipeline implements the structural-analysis stage of the
// proposal compiler: normalization, section segmentation, table
// extraction, placeholder resolution, TOC derivation, inline-markup
// rendering, and validation. Stages are pure functions over an explicit
// per-run context; nothing is shared across concurrent document runs.
package pipeline

import (
	"context"
	"fmt"

	"github.com/alnah/go-propdoc/internal/document"
)

// Compile-time interface implementation checks.
var (
	_ TextNormalizer      = (*ProposalNormalizer)(nil)
	_ SectionParser       = (*HeadingSectionParser)(nil)
	_ TableStrategy       = (*WhitespaceTableStrategy)(nil)
	_ PlaceholderResolver = (*StockPhraseResolver)(nil)
	_ TOCBuilder          = (*EstimatingTOCBuilder)(nil)
	_ ContentRenderer     = (*GoldmarkRenderer)(nil)
	_ Validator           = (*CompletenessValidator)(nil)
)

// Processor composes the structural-analysis stages. One Processor may
// serve concurrent runs: all mutable run state lives in a fresh runContext
// per Process call.
type Processor struct {
	normalizer TextNormalizer
	sections   SectionParser
	tables     TableStrategy
	resolver   PlaceholderResolver
	toc        TOCBuilder
	content    ContentRenderer
	validator  Validator
}

// ProcessorOption configures a Processor.
type ProcessorOption func(*Processor)

// WithTableStrategy swaps the table-detection strategy, e.g. for input
// families with true delimited tables.
func WithTableStrategy(s TableStrategy) ProcessorOption {
	return func(p *Processor) { p.tables = s }
}

// NewProcessor creates a Processor with the default stage implementations.
func NewProcessor(opts ...ProcessorOption) *Processor {
	p := &Processor{
		normalizer: &ProposalNormalizer{},
		sections:   &HeadingSectionParser{},
		tables:     &WhitespaceTableStrategy{},
		resolver:   &StockPhraseResolver{},
		toc:        &EstimatingTOCBuilder{},
		content:    NewGoldmarkRenderer(),
		validator:  &CompletenessValidator{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// runContext holds the mutable state of one document run. Constructed
// fresh per Process call so concurrent runs never share it.
type runContext struct {
	remaining map[string]struct{}
}

// Process runs all structural stages in order over the raw text and
// returns the completed document. Each stage consumes the fully
// materialized output of the previous one.
func (p *Processor) Process(ctx context.Context, rawText string, vals PlaceholderValues) (*document.Document, error) {
	run := &runContext{remaining: make(map[string]struct{})}

	cleaned := p.normalizer.Normalize(ctx, rawText)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := &document.Document{
		Metadata: ExtractMetadata(cleaned),
		Sections: p.sections.ParseSections(ctx, cleaned),
	}

	for _, sec := range doc.Sections {
		doc.Tables = append(doc.Tables, p.tables.ExtractTables(ctx, sec)...)
	}

	for i := range doc.Sections {
		doc.Sections[i].Content = p.resolver.Resolve(ctx, doc.Sections[i].Content, vals, run.remaining)
	}

	doc.TOC = p.toc.BuildTOC(ctx, doc.Sections)

	for i := range doc.Sections {
		html, err := p.content.RenderContent(ctx, doc.Sections[i].Content)
		if err != nil {
			return nil, fmt.Errorf("rendering section %q: %w", doc.Sections[i].ID, err)
		}
		doc.Sections[i].HTML = html
	}

	doc.Validation = p.validator.Validate(ctx, doc, run.remaining)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return doc, nil
}
