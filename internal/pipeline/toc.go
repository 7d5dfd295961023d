package pipeline

import (
	"context"

	"github.com/alnah/go-propdoc/internal/document"
)

// charsPerPage is the rough layout proxy used for page estimates. The
// formula is part of the output contract and must not be replaced by a
// layout-accurate algorithm.
const charsPerPage = 2000

// TOCBuilder derives a table of contents from parsed sections.
type TOCBuilder interface {
	BuildTOC(ctx context.Context, sections []document.Section) []document.TocItem
}

// EstimatingTOCBuilder produces one entry per section in document order,
// estimating page numbers from content length.
type EstimatingTOCBuilder struct{}

// BuildTOC starts at page 1; for every section after the first the page
// counter advances by ceil(len(content)/charsPerPage) before that
// section's entry is recorded.
func (b *EstimatingTOCBuilder) BuildTOC(ctx context.Context, sections []document.Section) []document.TocItem {
	if ctx.Err() != nil {
		return nil
	}

	toc := make([]document.TocItem, 0, len(sections))
	page := 1
	for i, sec := range sections {
		if i > 0 {
			page += pagesFor(sec.Content)
		}
		toc = append(toc, document.TocItem{
			Title: sec.Title,
			Level: sec.Level,
			Page:  page,
			ID:    sec.ID,
		})
	}
	return toc
}

// pagesFor returns ceil(len(content)/charsPerPage), minimum 0.
func pagesFor(content string) int {
	return (len(content) + charsPerPage - 1) / charsPerPage
}

// EstimatePageCount returns the estimated total page count for a document.
func EstimatePageCount(sections []document.Section) int {
	pages := 1
	for i, sec := range sections {
		if i > 0 {
			pages += pagesFor(sec.Content)
		}
	}
	return pages
}
