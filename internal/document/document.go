// Package document defines the structural model produced by the proposal
// pipeline: titled sections, extracted pricing tables, a table of contents,
// and derived metadata. All values are built fresh for one pipeline run and
// are not mutated after the stage that creates them completes.
package document

// TableTypePricing is the only table type the extractor currently emits.
const TableTypePricing = "pricing"

// Section is a titled block of proposal content at hierarchy level 1-3.
type Section struct {
	ID      string `json:"id"`      // slug derived from the title
	Title   string `json:"title"`   //
	Level   int    `json:"level"`   // 1-3, from the keyword-to-level mapping
	Content string `json:"content"` // cleaned body text
	HTML    string `json:"-"`       // inline-markup rendering of Content
}

// Table holds tabular data extracted from a section's content.
type Table struct {
	ID        string     `json:"id"`
	SectionID string     `json:"sectionId"` // references an existing Section
	Headers   []string   `json:"headers"`
	Rows      [][]string `json:"rows"`
	Type      string     `json:"type"` // always "pricing" today
}

// TocItem is one table-of-contents entry; one per Section, same order.
type TocItem struct {
	Title string `json:"title"`
	Level int    `json:"level"`
	Page  int    `json:"page"` // estimated, not a real layout page
	ID    string `json:"id"`   // back-reference to Section.ID
}

// Metadata holds document-level fields extracted heuristically from the
// first lines of cleaned text, or defaulted.
type Metadata struct {
	Title   string `json:"title"`
	Client  string `json:"client"`
	Date    string `json:"date"`
	Version string `json:"version"`
}

// Stats summarizes one processed document.
type Stats struct {
	TotalSections         int      `json:"totalSections"`
	TotalWords            int      `json:"totalWords"`
	EstimatedPages        int      `json:"estimatedPages"`
	TotalTables           int      `json:"totalTables"`
	RemainingPlaceholders []string `json:"remainingPlaceholders"` // sorted
}

// ValidationResult reports completeness of a processed document.
// IsValid is true iff Errors is empty; warnings never invalidate.
type ValidationResult struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
	Score    int      `json:"score"` // 0-100 completeness heuristic
	Stats    Stats    `json:"stats"`
}

// Document is the structural output of the processing stage, consumed by
// the template engine and the format converters.
type Document struct {
	Metadata   Metadata         `json:"metadata"`
	Sections   []Section        `json:"sections"`
	Tables     []Table          `json:"tables"`
	TOC        []TocItem        `json:"toc"`
	Validation ValidationResult `json:"validation"`
}

// TablesFor returns the tables belonging to the given section, in order.
func (d *Document) TablesFor(sectionID string) []Table {
	var out []Table
	for _, t := range d.Tables {
		if t.SectionID == sectionID {
			out = append(out, t)
		}
	}
	return out
}

// WordCount counts whitespace-separated words across all section content.
func (d *Document) WordCount() int {
	total := 0
	for _, s := range d.Sections {
		total += countWords(s.Content)
	}
	return total
}

func countWords(s string) int {
	count := 0
	inWord := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r':
			inWord = false
		default:
			if !inWord {
				count++
			}
			inWord = true
		}
	}
	return count
}
