package main

import (
	"fmt"
	"time"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across modes.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
	version bool
}

// documentFlags holds document metadata flags.
type documentFlags struct {
	agency string
	client string
}

// placeholderFlags holds placeholder substitution flags.
type placeholderFlags struct {
	overview string
	duration string
	pricing  string
}

// layoutFlags holds layout flags. The no-* switches disable pages that
// are included by default.
type layoutFlags struct {
	noTOC        bool
	noTitlePage  bool
	noInvestment bool
	pageSize     string
}

// generateFlags holds all flags for a generation run.
type generateFlags struct {
	common       commonFlags
	output       string
	formats      []string
	timeout      time.Duration
	enforce      bool
	document     documentFlags
	placeholders placeholderFlags
	layout       layoutFlags
}

// parseFlags parses command-line arguments. Returns the flags and the
// remaining positional arguments (the input file).
func parseFlags(args []string) (*generateFlags, []string, error) {
	fs := flag.NewFlagSet("propdoc", flag.ContinueOnError)
	f := &generateFlags{}

	fs.StringVarP(&f.common.config, "config", "c", "", "config name or path (YAML)")
	fs.BoolVarP(&f.common.quiet, "quiet", "q", false, "suppress the JSON report")
	fs.BoolVarP(&f.common.verbose, "verbose", "v", false, "verbose progress output on stderr")
	fs.BoolVar(&f.common.version, "version", false, "print version and exit")

	fs.StringVarP(&f.output, "output", "o", "", "output directory (default: current directory)")
	fs.StringSliceVarP(&f.formats, "formats", "f", nil, "output formats: html, pdf, docx")
	fs.DurationVar(&f.timeout, "timeout", 0, "paginated renderer timeout (e.g. 2m)")
	fs.BoolVar(&f.enforce, "enforce-validation", false, "abort when the document fails validation")

	fs.StringVar(&f.document.agency, "agency", "", "issuing agency name")
	fs.StringVar(&f.document.client, "client", "", "client name (overrides extracted metadata)")

	fs.StringVar(&f.placeholders.overview, "overview", "", "replacement for the project overview stub")
	fs.StringVar(&f.placeholders.duration, "duration", "", "replacement for placeholder durations")
	fs.StringVar(&f.placeholders.pricing, "pricing", "", "replacement for placeholder dollar amounts")

	fs.BoolVar(&f.layout.noTOC, "no-toc", false, "omit the table of contents page")
	fs.BoolVar(&f.layout.noTitlePage, "no-title-page", false, "omit the title page")
	fs.BoolVar(&f.layout.noInvestment, "no-investment-summary", false, "omit the Investment Summary page")
	fs.StringVar(&f.layout.pageSize, "page-size", "", "page size: letter, a4, legal")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: propdoc <input.txt> [flags]\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args[1:]); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
