// Package propdoc compiles loosely formatted proposal text into a
// structured document and renders it into client-facing output formats:
// hypertext, paginated PDF via headless Chrome, and DOCX.
//
// # Quick Start
//
// Create a generator, process raw proposal text, and close when done:
//
//	gen, err := propdoc.NewGenerator(propdoc.WithOutputDir("out"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer gen.Close()
//
//	result, err := gen.Generate(ctx, propdoc.Input{
//	    RawText: rawProposalText,
//	    Client:  "Acme Corp",
//	    Formats: []string{propdoc.FormatHTML, propdoc.FormatPDF},
//	})
//
// The result reports per-format artifacts, the validation outcome with a
// 0-100 completeness score, and run statistics.
//
// # Pipeline
//
// One Generate call runs these stages in order:
//
//  1. Raw-text normalization (bullets, separators, blank lines)
//  2. Section segmentation by proposal heading phrases
//  3. Fixed-width pricing table extraction
//  4. Placeholder resolution (overview stub, durations, dollar amounts)
//  5. TOC derivation and completeness validation
//  6. Styled hypertext rendering (title page, TOC, sections, Investment
//     Summary)
//  7. Per-format conversion, run in parallel with isolated failures
//
// Each run builds fresh state, so one Generator may serve sequential
// documents and a GeneratorPool serves concurrent ones.
//
// # Configuration
//
// Use functional options to customize the generator:
//
//	gen, err := propdoc.NewGenerator(
//	    propdoc.WithTimeout(2 * time.Minute),
//	    propdoc.WithOutputDir("/var/proposals"),
//	    propdoc.WithEnforceValidation(),
//	)
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The go-rod library downloads a
// managed Chromium instance on first run. For containers and CI, set
// ROD_BROWSER_BIN to a pre-installed binary. Without a browser the PDF
// format fails with a typed error while HTML and DOCX still succeed.
package propdoc
