package propdoc

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-propdoc/internal/fileutil"
)

// PaginatedRenderer abstracts the external headless-rendering capability
// that converts hypertext into a fixed-layout paginated file. A missing or
// failing capability is reported as an explicit error; re-invocation is
// left to the caller, never retried automatically.
type PaginatedRenderer interface {
	RenderPDF(ctx context.Context, htmlContent string, opts *PageOptions) ([]byte, error)
	Close() error
}

// PageOptions holds paper settings for the paginated renderer.
type PageOptions struct {
	Size string // "letter", "a4", "legal"
}

// Paper dimensions in inches per page size.
var paperSizes = map[string][2]float64{
	PageSizeLetter: {8.5, 11},
	PageSizeA4:     {8.27, 11.69},
	PageSizeLegal:  {8.5, 14},
}

// pageMarginInches is applied to all sides of the paginated output.
const pageMarginInches = 0.5

// rodRenderer implements PaginatedRenderer using headless Chrome via
// go-rod. Rod downloads a managed Chromium on first run if none is found.
type rodRenderer struct {
	browser *rod.Browser
	timeout time.Duration
}

// Compile-time interface check.
var _ PaginatedRenderer = (*rodRenderer)(nil)

// newRodRenderer creates a rodRenderer with the given per-render timeout.
func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use a pre-installed browser if specified (containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// RenderPDF writes the hypertext to a temp file, opens it in headless
// Chrome, and prints it to PDF bytes. Fails closed on timeout or browser
// unavailability.
func (r *rodRenderer) RenderPDF(ctx context.Context, htmlContent string, opts *PageOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	if err := r.ensureBrowser(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRendererUnavailable, err)
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + tmpPath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(buildPrintOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	return pdfBuf, nil
}

// Close releases browser resources.
func (r *rodRenderer) Close() error {
	if r.browser != nil {
		err := r.browser.Close()
		r.browser = nil
		return err
	}
	return nil
}

// buildPrintOptions constructs proto.PagePrintToPDF for the page size.
func buildPrintOptions(opts *PageOptions) *proto.PagePrintToPDF {
	size := PageSizeLetter
	if opts != nil && opts.Size != "" {
		size = strings.ToLower(opts.Size)
	}
	dims, ok := paperSizes[size]
	if !ok {
		dims = paperSizes[PageSizeLetter]
	}

	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(dims[0]),
		PaperHeight:     floatPtr(dims[1]),
		MarginTop:       floatPtr(pageMarginInches),
		MarginBottom:    floatPtr(pageMarginInches),
		MarginLeft:      floatPtr(pageMarginInches),
		MarginRight:     floatPtr(pageMarginInches),
		PrintBackground: true,
	}
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
