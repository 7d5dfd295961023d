package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"

	propdoc "github.com/alnah/go-propdoc"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Sentinel errors for CLI operations.
var (
	ErrInvalidArgs = errors.New("usage: propdoc <input.txt> [flags]")
	ErrReadInput   = errors.New("failed to read input file")
)

func main() {
	flags, args, err := parseFlags(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitUsage)
	}

	if flags.common.version {
		fmt.Printf("propdoc %s\n", Version)
		os.Exit(ExitSuccess)
	}

	// Configure GOMAXPROCS with conditional logging.
	// Error ignored: maxprocs.Set only fails on an invalid GOMAXPROCS env,
	// in which case Go runtime defaults apply.
	if flags.common.verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	if err := run(flags, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}

// run loads config, reads the input file, drives one generation run, and
// prints the JSON report.
func run(flags *generateFlags, args []string) error {
	if len(args) < 1 {
		return ErrInvalidArgs
	}
	inputPath := args[0]

	cfg := DefaultConfig()
	if flags.common.config != "" {
		loaded, err := LoadConfig(flags.common.config)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	raw, err := os.ReadFile(inputPath) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadInput, err)
	}

	input := buildInput(string(raw), cfg, flags)

	var opts []propdoc.Option
	if dir := resolveOutputDir(cfg, flags); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
		opts = append(opts, propdoc.WithOutputDir(dir))
	}
	if flags.timeout > 0 {
		opts = append(opts, propdoc.WithTimeout(flags.timeout))
	}
	if flags.enforce || cfg.Enforce {
		opts = append(opts, propdoc.WithEnforceValidation())
	}

	gen, err := propdoc.NewGenerator(opts...)
	if err != nil {
		return err
	}
	defer func() { _ = gen.Close() }()

	if flags.common.verbose {
		fmt.Fprintln(os.Stderr, "Processing proposal...")
	}

	result, err := gen.Generate(context.Background(), input)
	if err != nil {
		return err
	}

	if !flags.common.quiet {
		report, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		fmt.Println(string(report))
	}

	for _, out := range result.Outputs {
		if out.Success {
			if flags.common.verbose {
				fmt.Fprintf(os.Stderr, "Created %s (%s)\n", out.Filename, out.SizeFormatted)
			}
		} else {
			fmt.Fprintf(os.Stderr, "%s conversion failed: %s\n", out.Format, out.Error)
		}
	}

	return nil
}

// buildInput merges config-file values and flags into the library input.
// Flags win over config.
func buildInput(raw string, cfg *Config, flags *generateFlags) propdoc.Input {
	input := propdoc.Input{
		RawText:         raw,
		Agency:          firstNonEmpty(flags.document.agency, cfg.Document.Agency),
		Client:          firstNonEmpty(flags.document.client, cfg.Document.Client),
		ProjectOverview: firstNonEmpty(flags.placeholders.overview, cfg.Placeholders.ProjectOverview),
		Duration:        firstNonEmpty(flags.placeholders.duration, cfg.Placeholders.Duration),
		Pricing:         firstNonEmpty(flags.placeholders.pricing, cfg.Placeholders.Pricing),
		Formats:         flags.formats,
		Styling: propdoc.Styling{
			Colors: propdoc.Colors{
				Primary:   cfg.Styling.Colors.Primary,
				Secondary: cfg.Styling.Colors.Secondary,
				Accent:    cfg.Styling.Colors.Accent,
				Text:      cfg.Styling.Colors.Text,
			},
			Fonts: propdoc.Fonts{
				Heading: cfg.Styling.Fonts.Heading,
				Body:    cfg.Styling.Fonts.Body,
			},
		},
	}
	if len(input.Formats) == 0 {
		input.Formats = cfg.Formats
	}

	layout := propdoc.DefaultLayout()
	if cfg.Layout.IncludeTOC != nil {
		layout.IncludeTOC = *cfg.Layout.IncludeTOC
	}
	if cfg.Layout.IncludeTitlePage != nil {
		layout.IncludeTitlePage = *cfg.Layout.IncludeTitlePage
	}
	if cfg.Layout.IncludeInvestmentSummary != nil {
		layout.IncludeInvestmentSummary = *cfg.Layout.IncludeInvestmentSummary
	}
	if cfg.Layout.PageSize != "" {
		layout.PageSize = cfg.Layout.PageSize
	}
	if flags.layout.noTOC {
		layout.IncludeTOC = false
	}
	if flags.layout.noTitlePage {
		layout.IncludeTitlePage = false
	}
	if flags.layout.noInvestment {
		layout.IncludeInvestmentSummary = false
	}
	if flags.layout.pageSize != "" {
		layout.PageSize = flags.layout.pageSize
	}
	input.Layout = layout

	return input
}

// resolveOutputDir picks the output directory: flag > config > cwd.
func resolveOutputDir(cfg *Config, flags *generateFlags) string {
	if flags.output != "" {
		return flags.output
	}
	return cfg.Output.Dir
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
