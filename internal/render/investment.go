// Package render turns a processed proposal document into a single styled
// hypertext rendering: title page, optional TOC, per-section pages with
// inline tables, and an optional Investment Summary roll-up.
package render

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/alnah/go-propdoc/internal/document"
)

// TaxRate is the flat tax applied to the investment subtotal. No rounding
// happens until display; this rule is part of the output contract.
const TaxRate = 0.10

// lastColumnNumeric extracts the numeric part of a table cell: digits and
// commas only, any non-numeric trailing text ignored.
var lastColumnNumeric = regexp.MustCompile(`\d[\d,]*`)

// SectionTotal is the per-section roll-up of its pricing tables.
type SectionTotal struct {
	SectionID string
	Title     string
	Subtotal  float64
}

// InvestmentSummary totals all pricing tables plus a flat tax line.
type InvestmentSummary struct {
	Sections []SectionTotal
	Subtotal float64
	Tax      float64
	Total    float64
}

// BuildInvestmentSummary sums, per pricing table, the numeric value of the
// last column of every row to produce per-section subtotals, then applies
// the flat tax on the grand subtotal.
func BuildInvestmentSummary(doc *document.Document) InvestmentSummary {
	sum := InvestmentSummary{}

	for _, sec := range doc.Sections {
		tables := doc.TablesFor(sec.ID)
		if len(tables) == 0 {
			continue
		}
		subtotal := 0.0
		for _, t := range tables {
			subtotal += tableSubtotal(t)
		}
		sum.Sections = append(sum.Sections, SectionTotal{
			SectionID: sec.ID,
			Title:     sec.Title,
			Subtotal:  subtotal,
		})
		sum.Subtotal += subtotal
	}

	sum.Tax = sum.Subtotal * TaxRate
	sum.Total = sum.Subtotal + sum.Tax
	return sum
}

// tableSubtotal sums the numeric value parsed out of the last column of
// every row. Rows whose last cell has no numeric part contribute zero.
func tableSubtotal(t document.Table) float64 {
	subtotal := 0.0
	for _, row := range t.Rows {
		if len(row) == 0 {
			continue
		}
		subtotal += parseAmount(row[len(row)-1])
	}
	return subtotal
}

// parseAmount extracts the first digits-and-commas run from a cell and
// parses it, ignoring currency symbols and trailing text.
func parseAmount(cell string) float64 {
	m := lastColumnNumeric.FindString(cell)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
	if err != nil {
		return 0
	}
	return v
}

// FormatAmount renders a dollar amount for display: rounded to the
// nearest whole dollar with comma grouping.
func FormatAmount(v float64) string {
	n := int64(math.Round(v))
	s := strconv.FormatInt(n, 10)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var out strings.Builder
	for i, d := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(d)
	}
	if neg {
		return "-$" + out.String()
	}
	return "$" + out.String()
}
