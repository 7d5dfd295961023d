package render

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/alnah/go-propdoc/internal/document"
)

//go:embed templates/*
var templateFS embed.FS

// Sentinel errors for template rendering.
var (
	ErrTemplateParse  = errors.New("document template parsing failed")
	ErrTemplateRender = errors.New("document template rendering failed")
)

// componentIDPrefix marks sections rendered with the banner-style header.
const componentIDPrefix = "component"

// Layout controls which generated pages are included and the page size.
type Layout struct {
	IncludeTOC               bool   `yaml:"includeTOC" json:"includeTOC"`
	IncludeTitlePage         bool   `yaml:"includeTitlePage" json:"includeTitlePage"`
	IncludeInvestmentSummary bool   `yaml:"includeInvestmentSummary" json:"includeInvestmentSummary"`
	PageSize                 string `yaml:"pageSize" json:"pageSize"` // "letter", "a4", "legal"
}

// Config is the style configuration for one rendering.
type Config struct {
	Metadata document.Metadata `json:"metadata"`
	Agency   string            `json:"agency"`
	Styling  Styling           `json:"styling"`
	Layout   Layout            `json:"layout"`
}

// Engine renders a processed document into a single styled hypertext
// output: title page, optional TOC, one page per section with its tables
// inline, and an optional Investment Summary page.
type Engine struct {
	tmpl *template.Template
}

// NewEngine parses the embedded page templates.
func NewEngine() (*Engine, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateParse, err)
	}
	return &Engine{tmpl: tmpl}, nil
}

// tocView is one TOC entry with its computed indentation.
type tocView struct {
	document.TocItem
	Indent string
}

// sectionView is one section prepared for the template: rendered content,
// its tables, and whether it gets the component banner header.
type sectionView struct {
	ID     string
	Title  string
	Level  int
	Banner bool
	HTML   template.HTML
	Tables []document.Table
}

// investmentView is the Investment Summary with display-formatted amounts.
type investmentView struct {
	Sections []investmentRow
	Subtotal string
	Tax      string
	Total    string
}

type investmentRow struct {
	Title    string
	Subtotal string
}

// documentView is the root template data.
type documentView struct {
	Meta       document.Metadata
	Agency     string
	CSS        template.CSS
	Layout     Layout
	TOC        []tocView
	Sections   []sectionView
	Investment *investmentView
}

// Render produces the full hypertext document for the given config.
func (e *Engine) Render(ctx context.Context, doc *document.Document, cfg Config) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	view := documentView{
		Meta:   cfg.Metadata,
		Agency: cfg.Agency,
		CSS:    template.CSS(buildDocumentCSS(cfg.Styling, cfg.Layout.PageSize)), // #nosec G203 -- CSS is built from sanitized config values
		Layout: cfg.Layout,
	}

	for _, item := range doc.TOC {
		indent := float64(item.Level-1) * 1.5
		view.TOC = append(view.TOC, tocView{
			TocItem: item,
			Indent:  strconv.FormatFloat(indent, 'f', 1, 64),
		})
	}

	for _, sec := range doc.Sections {
		view.Sections = append(view.Sections, sectionView{
			ID:     sec.ID,
			Title:  sec.Title,
			Level:  sec.Level,
			Banner: strings.HasPrefix(sec.ID, componentIDPrefix),
			HTML:   template.HTML(sec.HTML), // #nosec G203 -- section HTML comes from goldmark without WithUnsafe
			Tables: doc.TablesFor(sec.ID),
		})
	}

	if cfg.Layout.IncludeInvestmentSummary {
		sum := BuildInvestmentSummary(doc)
		iv := &investmentView{
			Subtotal: FormatAmount(sum.Subtotal),
			Tax:      FormatAmount(sum.Tax),
			Total:    FormatAmount(sum.Total),
		}
		for _, st := range sum.Sections {
			iv.Sections = append(iv.Sections, investmentRow{
				Title:    st.Title,
				Subtotal: FormatAmount(st.Subtotal),
			})
		}
		view.Investment = iv
	}

	var buf bytes.Buffer
	if err := e.tmpl.ExecuteTemplate(&buf, "document", view); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	return buf.String(), nil
}
