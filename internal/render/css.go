package render

import (
	"fmt"
	"strings"
)

// Default styling applied when the caller provides no overrides.
const (
	DefaultPrimaryColor   = "#1a365d"
	DefaultSecondaryColor = "#2b6cb0"
	DefaultAccentColor    = "#ed8936"
	DefaultTextColor      = "#2d3748"
	DefaultHeadingFont    = "Georgia, 'Times New Roman', serif"
	DefaultBodyFont       = "Helvetica, Arial, sans-serif"
)

// Colors configures the palette of the rendered document.
type Colors struct {
	Primary   string `yaml:"primary" json:"primary"`
	Secondary string `yaml:"secondary" json:"secondary"`
	Accent    string `yaml:"accent" json:"accent"`
	Text      string `yaml:"text" json:"text"`
}

// Fonts configures the font stacks of the rendered document.
type Fonts struct {
	Heading string `yaml:"heading" json:"heading"`
	Body    string `yaml:"body" json:"body"`
}

// Styling bundles colors and fonts for the template engine.
type Styling struct {
	Colors Colors `yaml:"colors" json:"colors"`
	Fonts  Fonts  `yaml:"fonts" json:"fonts"`
}

// withDefaults fills unset styling fields with the defaults.
func (s Styling) withDefaults() Styling {
	if s.Colors.Primary == "" {
		s.Colors.Primary = DefaultPrimaryColor
	}
	if s.Colors.Secondary == "" {
		s.Colors.Secondary = DefaultSecondaryColor
	}
	if s.Colors.Accent == "" {
		s.Colors.Accent = DefaultAccentColor
	}
	if s.Colors.Text == "" {
		s.Colors.Text = DefaultTextColor
	}
	if s.Fonts.Heading == "" {
		s.Fonts.Heading = DefaultHeadingFont
	}
	if s.Fonts.Body == "" {
		s.Fonts.Body = DefaultBodyFont
	}
	return s
}

// buildDocumentCSS compiles the styling configuration into the stylesheet
// injected into the rendered document. Values are sanitized for safe use
// inside a <style> block.
func buildDocumentCSS(s Styling, pageSize string) string {
	s = s.withDefaults()

	var buf strings.Builder

	fmt.Fprintf(&buf, `
@page {
  size: %s;
  margin: 0.75in;
}
body {
  font-family: %s;
  color: %s;
  line-height: 1.6;
  margin: 0;
}
h1, h2, h3 {
  font-family: %s;
  color: %s;
}
`, sanitizeCSSValue(pageCSSSize(pageSize)),
		sanitizeCSSValue(s.Fonts.Body),
		sanitizeCSSValue(s.Colors.Text),
		sanitizeCSSValue(s.Fonts.Heading),
		sanitizeCSSValue(s.Colors.Primary))

	fmt.Fprintf(&buf, `
.page {
  page-break-after: always;
  padding: 1em 0;
}
.page:last-child {
  page-break-after: auto;
}
.title-page {
  text-align: center;
  padding-top: 25%%;
}
.title-page h1 {
  font-size: 2.4em;
  margin-bottom: 0.2em;
}
.title-page .client {
  font-size: 1.3em;
  color: %s;
}
.title-page .meta {
  margin-top: 3em;
  color: #718096;
}
`, sanitizeCSSValue(s.Colors.Secondary))

	fmt.Fprintf(&buf, `
.toc-list .toc-item a {
  color: %s;
  text-decoration: none;
}
.toc-item {
  display: flex;
  justify-content: space-between;
  padding: 0.15em 0;
}
.section-banner {
  background: %s;
  color: #fff;
  padding: 0.5em 0.8em;
  border-left: 6px solid %s;
}
`, sanitizeCSSValue(s.Colors.Text),
		sanitizeCSSValue(s.Colors.Primary),
		sanitizeCSSValue(s.Colors.Accent))

	buf.WriteString(`
table {
  border-collapse: collapse;
  width: 100%;
  margin: 1em 0;
}
th, td {
  border: 1px solid #cbd5e0;
  padding: 0.4em 0.6em;
  text-align: left;
}
`)

	fmt.Fprintf(&buf, `
th {
  background: %s;
  color: #fff;
}
.investment-summary .grand-total {
  font-weight: bold;
  color: %s;
}

/* Prevent headings alone at page bottom */
h1, h2, h3, h4, h5, h6 {
  break-after: avoid;
  page-break-after: avoid;
  break-inside: avoid;
  page-break-inside: avoid;
}
`, sanitizeCSSValue(s.Colors.Secondary),
		sanitizeCSSValue(s.Colors.Primary))

	return buf.String()
}

// pageCSSSize maps a page size name to its CSS @page value.
func pageCSSSize(size string) string {
	switch strings.ToLower(size) {
	case "a4":
		return "A4"
	case "legal":
		return "legal"
	default:
		return "letter"
	}
}

// sanitizeCSSValue escapes sequences that could break out of a <style>
// block or a CSS declaration.
func sanitizeCSSValue(v string) string {
	v = strings.ReplaceAll(v, "</", `<\/`)
	v = strings.ReplaceAll(v, ";", "")
	v = strings.ReplaceAll(v, "}", "")
	return v
}
