package propdoc

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-propdoc/internal/pipeline"
	"github.com/alnah/go-propdoc/internal/render"
)

// defaultTimeout bounds the paginated renderer when no timeout is set.
const defaultTimeout = 30 * time.Second

// DocumentSummary condenses the processed document for the report.
type DocumentSummary struct {
	Sections int      `json:"sections"`
	Tables   int      `json:"tables"`
	Metadata Metadata `json:"metadata"`
}

// RunStats holds per-run timing and size figures.
type RunStats struct {
	ProcessingTimeMS int64 `json:"processingTime"` // milliseconds
	InputLength      int   `json:"inputLength"`
	EstimatedPages   int   `json:"estimatedPages"`
}

// Result is the JSON-serializable report of one generation run.
type Result struct {
	Success    bool             `json:"success"`
	Document   DocumentSummary  `json:"document"`
	Outputs    []FormatResult   `json:"outputs"`
	Validation ValidationResult `json:"validation"`
	Stats      RunStats         `json:"stats"`
	Warnings   []string         `json:"warnings,omitempty"` // non-fatal orchestration warnings
}

// generatorConfig holds internal configuration for Generator.
type generatorConfig struct {
	timeout   time.Duration
	outputDir string
	enforce   bool
	clock     func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithTimeout sets the paginated-renderer timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("propdoc: WithTimeout duration must be positive")
	}
	return func(g *Generator) { g.cfg.timeout = d }
}

// WithOutputDir sets the directory artifacts are written into.
func WithOutputDir(dir string) Option {
	return func(g *Generator) { g.cfg.outputDir = dir }
}

// WithEnforceValidation makes Generate abort before producing any output
// files when the document fails validation.
func WithEnforceValidation() Option {
	return func(g *Generator) { g.cfg.enforce = true }
}

// WithClock overrides the time source used for artifact timestamps.
// Intended for deterministic filenames in tests.
func WithClock(clock func() time.Time) Option {
	return func(g *Generator) { g.cfg.clock = clock }
}

// WithPaginatedRenderer injects the paginated-format renderer, e.g. a
// fake for tests or environments without a browser.
func WithPaginatedRenderer(r PaginatedRenderer) Option {
	return func(g *Generator) { g.pdf = r }
}

// Generator orchestrates the proposal pipeline: input validation,
// structural processing, hypertext rendering, and per-format conversion.
type Generator struct {
	cfg       generatorConfig
	processor *pipeline.Processor
	engine    *render.Engine
	pdf       PaginatedRenderer
}

// NewGenerator creates a Generator with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithOutputDir).
func NewGenerator(opts ...Option) (*Generator, error) {
	engine, err := render.NewEngine()
	if err != nil {
		return nil, fmt.Errorf("initializing template engine: %w", err)
	}

	g := &Generator{
		cfg: generatorConfig{
			timeout:   defaultTimeout,
			outputDir: ".",
			clock:     time.Now,
		},
		processor: pipeline.NewProcessor(),
		engine:    engine,
	}

	for _, opt := range opts {
		opt(g)
	}

	// Create the paginated renderer if not injected (e.g., by tests)
	if g.pdf == nil {
		g.pdf = newRodRenderer(g.cfg.timeout)
	}

	return g, nil
}

// Generate runs the full pipeline for one document and returns the
// multi-format report. Stages run sequentially; per-format conversions
// run in parallel with isolated failures. Recovers from internal panics
// so crashes never propagate to callers.
func (g *Generator) Generate(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	start := time.Now()

	formats, err := g.validateInput(input)
	if err != nil {
		return nil, err
	}

	warnings := stockPhraseWarnings(input.RawText)

	doc, err := g.processor.Process(ctx, input.RawText, pipeline.PlaceholderValues{
		Overview: input.ProjectOverview,
		Duration: input.Duration,
		Pricing:  input.Pricing,
	})
	if err != nil {
		return nil, fmt.Errorf("processing document: %w", err)
	}

	cfg := toRenderConfig(input, doc.Metadata, g.cfg.clock())

	if g.cfg.enforce && !doc.Validation.IsValid {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, strings.Join(doc.Validation.Errors, "; "))
	}

	htmlContent, err := g.engine.Render(ctx, doc, cfg)
	if err != nil {
		return nil, fmt.Errorf("rendering document: %w", err)
	}

	outputs := g.convertAll(ctx, doc, htmlContent, cfg, formats)

	return &Result{
		Success: true,
		Document: DocumentSummary{
			Sections: len(doc.Sections),
			Tables:   len(doc.Tables),
			Metadata: toMetadata(cfg.Metadata),
		},
		Outputs:    outputs,
		Validation: toValidationResult(doc.Validation),
		Stats: RunStats{
			ProcessingTimeMS: time.Since(start).Milliseconds(),
			InputLength:      len(input.RawText),
			EstimatedPages:   doc.Validation.Stats.EstimatedPages,
		},
		Warnings: warnings,
	}, nil
}

// Close releases resources (headless browser).
func (g *Generator) Close() error {
	if g.pdf != nil {
		return g.pdf.Close()
	}
	return nil
}

// validateInput checks the raw text and configuration before any
// processing starts.
//
// This is a TRUST BOUNDARY for direct library users who build Input
// manually; the CLI validates earlier at config load time. Both paths
// converge here.
func (g *Generator) validateInput(input Input) ([]string, error) {
	if input.RawText == "" {
		return nil, ErrEmptyInput
	}
	if len(input.RawText) < minRawTextLength {
		return nil, fmt.Errorf("%w: %d chars (minimum %d)", ErrInputTooShort, len(input.RawText), minRawTextLength)
	}
	if err := input.Layout.Validate(); err != nil {
		return nil, err
	}
	return validateFormats(input.Formats)
}

// stockPhraseWarnings flags obvious unresolved stock phrases still present
// in the raw input. Non-fatal: reported in the result, never aborts.
func stockPhraseWarnings(raw string) []string {
	var warnings []string
	if strings.Contains(raw, pipeline.OverviewStub) {
		warnings = append(warnings, "input still contains the project overview stub")
	}
	if strings.Contains(raw, "X weeks") {
		warnings = append(warnings, "input still contains a placeholder duration")
	}
	if strings.Contains(raw, "$X") {
		warnings = append(warnings, "input still contains placeholder pricing")
	}
	return warnings
}
