package propdoc

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/alnah/go-propdoc/internal/document"
	"github.com/alnah/go-propdoc/internal/render"
)

// FormatResult reports one per-format conversion attempt. A failed
// conversion never aborts sibling formats.
type FormatResult struct {
	Format        string `json:"format"`
	Filename      string `json:"filename,omitempty"`
	DownloadURL   string `json:"downloadUrl,omitempty"`
	Size          int64  `json:"size"`
	SizeFormatted string `json:"sizeFormatted,omitempty"`
	Success       bool   `json:"success"`
	Error         string `json:"error,omitempty"`
}

// convertAll produces one artifact per requested format. Conversions are
// independent (each writes a distinct file) and run in parallel; a
// failure in one is caught and reported without aborting the others.
func (g *Generator) convertAll(ctx context.Context, doc *document.Document, htmlContent string, cfg render.Config, formats []string) []FormatResult {
	now := g.cfg.clock()
	results := make([]FormatResult, len(formats))

	var wg sync.WaitGroup
	for i, format := range formats {
		wg.Add(1)
		go func(i int, format string) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					results[i] = FormatResult{
						Format: format,
						Error:  fmt.Sprintf("internal error: %v", r),
					}
				}
			}()
			results[i] = g.convertOne(ctx, format, doc, htmlContent, cfg, now)
		}(i, format)
	}
	wg.Wait()

	return results
}

// convertOne builds a single format artifact and writes it under the
// output directory. On any failure no partial file is left behind: bytes
// are fully materialized before the file is written.
func (g *Generator) convertOne(ctx context.Context, format string, doc *document.Document, htmlContent string, cfg render.Config, now time.Time) FormatResult {
	res := FormatResult{Format: format}

	var data []byte
	var err error

	switch format {
	case FormatHTML:
		data = []byte(htmlContent)
	case FormatPDF:
		data, err = g.pdf.RenderPDF(ctx, htmlContent, &PageOptions{Size: cfg.Layout.PageSize})
	case FormatDocx:
		data, err = render.WriteDocx(ctx, doc, cfg.Layout.IncludeInvestmentSummary)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		res.Error = fmt.Errorf("%w: %v", ErrConversion, err).Error()
		return res
	}

	name := outputFilename(cfg.Metadata.Client, cfg.Metadata.Title, format, now)
	path := filepath.Join(g.cfg.outputDir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		res.Error = fmt.Errorf("%w: writing %s: %v", ErrConversion, name, err).Error()
		return res
	}

	res.Filename = name
	res.DownloadURL = "/downloads/" + name
	res.Size = int64(len(data))
	res.SizeFormatted = formatBytes(res.Size)
	res.Success = true
	return res
}
