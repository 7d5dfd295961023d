package render

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/alnah/go-propdoc/internal/document"
)

// Static parts of the OOXML package. The document is composed from
// heading/paragraph/table primitives written into word/document.xml.
const (
	docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
  <Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>
</Types>`

	docxRootRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

	docxDocumentRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
</Relationships>`

	docxStyles = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:style w:type="paragraph" w:styleId="Title"><w:name w:val="Title"/><w:rPr><w:b/><w:sz w:val="56"/></w:rPr></w:style>
  <w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/><w:rPr><w:b/><w:sz w:val="32"/></w:rPr></w:style>
  <w:style w:type="paragraph" w:styleId="Heading2"><w:name w:val="heading 2"/><w:rPr><w:b/><w:sz w:val="28"/></w:rPr></w:style>
  <w:style w:type="paragraph" w:styleId="Heading3"><w:name w:val="heading 3"/><w:rPr><w:b/><w:sz w:val="24"/></w:rPr></w:style>
</w:styles>`
)

// WriteDocx composes a structured word-processor document from the
// document model, independent of the hypertext rendering: title, one
// heading + paragraphs + tables per section in order, then an Investment
// Summary table computed with the same subtotal logic as the hypertext
// renderer.
func WriteDocx(ctx context.Context, doc *document.Document, includeInvestment bool) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var body strings.Builder

	writeParagraph(&body, doc.Metadata.Title, "Title")
	if doc.Metadata.Client != "" {
		writeParagraph(&body, "Prepared for "+doc.Metadata.Client, "")
	}

	for _, sec := range doc.Sections {
		writeParagraph(&body, sec.Title, headingStyle(sec.Level))
		for _, block := range strings.Split(sec.Content, "\n") {
			if strings.TrimSpace(block) == "" {
				continue
			}
			writeParagraph(&body, block, "")
		}
		for _, t := range doc.TablesFor(sec.ID) {
			writeTable(&body, t.Headers, t.Rows)
		}
	}

	if includeInvestment {
		writeParagraph(&body, "Investment Summary", "Heading1")
		sum := BuildInvestmentSummary(doc)
		rows := make([][]string, 0, len(sum.Sections)+3)
		for _, st := range sum.Sections {
			rows = append(rows, []string{st.Title, FormatAmount(st.Subtotal)})
		}
		rows = append(rows,
			[]string{"Subtotal", FormatAmount(sum.Subtotal)},
			[]string{"Tax (10%)", FormatAmount(sum.Tax)},
			[]string{"Total Investment", FormatAmount(sum.Total)},
		)
		writeTable(&body, []string{"Component", "Subtotal"}, rows)
	}

	documentXML := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
%s</w:body>
</w:document>`, body.String())

	return packDocx(documentXML)
}

// headingStyle maps a section level to its paragraph style id.
func headingStyle(level int) string {
	switch level {
	case 1:
		return "Heading1"
	case 2:
		return "Heading2"
	default:
		return "Heading3"
	}
}

// writeParagraph emits one w:p with an optional paragraph style.
func writeParagraph(buf *strings.Builder, text, style string) {
	buf.WriteString("<w:p>")
	if style != "" {
		fmt.Fprintf(buf, `<w:pPr><w:pStyle w:val="%s"/></w:pPr>`, style)
	}
	fmt.Fprintf(buf, `<w:r><w:t xml:space="preserve">%s</w:t></w:r>`, escapeXML(text))
	buf.WriteString("</w:p>\n")
}

// writeTable emits a w:tbl with a header row followed by data rows.
func writeTable(buf *strings.Builder, headers []string, rows [][]string) {
	buf.WriteString(`<w:tbl><w:tblPr><w:tblBorders><w:top w:val="single"/><w:bottom w:val="single"/><w:left w:val="single"/><w:right w:val="single"/><w:insideH w:val="single"/><w:insideV w:val="single"/></w:tblBorders></w:tblPr>`)
	writeTableRow(buf, headers, true)
	for _, row := range rows {
		writeTableRow(buf, row, false)
	}
	buf.WriteString("</w:tbl>\n")
}

func writeTableRow(buf *strings.Builder, cells []string, header bool) {
	buf.WriteString("<w:tr>")
	for _, cell := range cells {
		buf.WriteString("<w:tc><w:p><w:r>")
		if header {
			buf.WriteString("<w:rPr><w:b/></w:rPr>")
		}
		fmt.Fprintf(buf, `<w:t xml:space="preserve">%s</w:t>`, escapeXML(cell))
		buf.WriteString("</w:r></w:p></w:tc>")
	}
	buf.WriteString("</w:tr>")
}

// escapeXML escapes text for safe inclusion in an XML text node.
func escapeXML(s string) string {
	var buf bytes.Buffer
	// EscapeText only fails on writer errors; bytes.Buffer cannot fail.
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// packDocx writes the OOXML package parts into a ZIP archive.
func packDocx(documentXML string) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", docxContentTypes},
		{"_rels/.rels", docxRootRels},
		{"word/_rels/document.xml.rels", docxDocumentRels},
		{"word/styles.xml", docxStyles},
		{"word/document.xml", documentXML},
	}

	for _, p := range parts {
		w, err := zw.Create(p.name)
		if err != nil {
			return nil, fmt.Errorf("creating %s: %w", p.name, err)
		}
		if _, err := w.Write([]byte(p.content)); err != nil {
			return nil, fmt.Errorf("writing %s: %w", p.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing archive: %w", err)
	}
	return buf.Bytes(), nil
}
