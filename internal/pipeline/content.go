package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

// ErrContentRender indicates inline-markup rendering failed.
var ErrContentRender = errors.New("content rendering failed")

// bulletToMarkdown rewrites canonical bullet lines back to Markdown list
// markers so goldmark emits proper list containers.
var bulletToMarkdown = regexp.MustCompile(`(?m)^` + BulletGlyph + ` `)

// htmlTagPattern matches HTML tags for stripping from rendered content.
var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// ContentRenderer converts section body text to inline hypertext markup.
type ContentRenderer interface {
	RenderContent(ctx context.Context, content string) (string, error)
}

// GoldmarkRenderer renders section content with goldmark: bullet lines
// become list items, **text** and *text* become emphasis spans, and
// blank-line-delimited blocks become paragraphs.
type GoldmarkRenderer struct {
	md goldmark.Markdown
}

// NewGoldmarkRenderer creates a GoldmarkRenderer with GFM extensions and
// syntax highlighting.
func NewGoldmarkRenderer() *GoldmarkRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithHardWraps(),
			goldmarkhtml.WithXHTML(),
		),
	)
	return &GoldmarkRenderer{md: md}
}

// RenderContent converts one section's body to an HTML fragment. Supports
// context cancellation via goroutine + select since goldmark doesn't
// natively take a context.
func (r *GoldmarkRenderer) RenderContent(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	source := bulletToMarkdown.ReplaceAllString(content, "- ")

	type result struct {
		html string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(source), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrContentRender, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		return res.html, res.err
	}
}

// StripHTMLTags removes tags from rendered content, decodes entities, and
// trims whitespace. Used for markup-free word counts.
func StripHTMLTags(s string) string {
	s = htmlTagPattern.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return strings.TrimSpace(s)
}
