package pipeline

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/alnah/go-propdoc/internal/document"
)

// minRowFields is the minimum number of whitespace-run-separated fields
// for a line to qualify as a table data row.
const minRowFields = 3

// tableHeaderKeywords mark a line as a pricing table header when any of
// them appears as a case-insensitive substring.
var tableHeaderKeywords = []string{"role", "description", "hours", "rate", "total"}

// columnBoundary splits fixed-width plain-text table lines: a run of two
// or more whitespace characters is a column boundary. This is a proxy for
// fixed-width alignment, not delimiter parsing.
var columnBoundary = regexp.MustCompile(`\s{2,}`)

// placeholderMarker matches unfilled pricing placeholders: a currency
// placeholder ("$X", "$X,XXX") or a standalone run of X characters. Rows
// still carrying these are not real data and close the table.
var placeholderMarker = regexp.MustCompile(`\$X|\bX[X,]*\b`)

// TableStrategy abstracts table detection so alternative input families
// (true delimited tables) can plug in without touching the rest of the
// pipeline.
type TableStrategy interface {
	ExtractTables(ctx context.Context, sec document.Section) []document.Table
}

// WhitespaceTableStrategy detects fixed-width tabular data by splitting
// lines on runs of 2+ whitespace characters.
type WhitespaceTableStrategy struct{}

// ExtractTables scans a section's content for pricing tables. Multiple
// tables per section are supported; tables with zero data rows are
// discarded.
func (s *WhitespaceTableStrategy) ExtractTables(ctx context.Context, sec document.Section) []document.Table {
	if ctx.Err() != nil {
		return nil
	}

	var tables []document.Table
	var headers []string
	var rows [][]string
	inTable := false

	flush := func() {
		if inTable && len(rows) > 0 {
			tables = append(tables, document.Table{
				ID:        fmt.Sprintf("%s-table-%d", sec.ID, len(tables)),
				SectionID: sec.ID,
				Headers:   headers,
				Rows:      rows,
				Type:      document.TableTypePricing,
			})
		}
		inTable = false
		headers = nil
		rows = nil
	}

	for _, line := range strings.Split(sec.Content, "\n") {
		if !inTable {
			if isTableHeader(line) {
				headers = splitColumns(line)
				rows = nil
				inTable = true
			}
			continue
		}

		if fields, ok := acceptRow(line); ok {
			rows = append(rows, fields)
		} else {
			flush()
			// The closing line may itself start the next table.
			if isTableHeader(line) {
				headers = splitColumns(line)
				rows = nil
				inTable = true
			}
		}
	}
	flush()

	return tables
}

// isTableHeader reports whether a line contains any pricing header keyword.
func isTableHeader(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range tableHeaderKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// acceptRow reports whether a line qualifies as a data row: at least
// minRowFields columns and no unfilled placeholder marker. Any other line
// closes the current table.
func acceptRow(line string) ([]string, bool) {
	if strings.TrimSpace(line) == "" {
		return nil, false
	}
	if placeholderMarker.MatchString(line) {
		return nil, false
	}
	fields := splitColumns(line)
	if len(fields) < minRowFields {
		return nil, false
	}
	return fields, true
}

// splitColumns splits a line on runs of 2+ whitespace and trims each cell.
func splitColumns(line string) []string {
	var cells []string
	for _, c := range columnBoundary.Split(strings.TrimSpace(line), -1) {
		if c != "" {
			cells = append(cells, c)
		}
	}
	return cells
}
