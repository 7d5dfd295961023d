package pipeline

import (
	"context"
	"regexp"
	"strings"

	"github.com/alnah/go-propdoc/internal/document"
)

// Maximum length for a line to be considered a generic header.
const maxHeaderLength = 100

// knownHeading matches the fixed set of proposal heading phrases, with an
// optional trailing colon. Case-insensitive.
var knownHeading = regexp.MustCompile(`(?i)^(project overview|objectives|project phases|phases|pricing summary|pricing|timeline|deliverables|scope of work|next steps|terms|assumptions|investment)\s*:?\s*$`)

// componentHeading identifies top-level component headings, allowing an
// optional numeral and an optional inline title ("Component 2: Rollout").
var componentHeading = regexp.MustCompile(`(?i)^component(\s+\d+)?\s*(:.*)?$`)

// levelTwoHeading lists the named sections mapped to level 2. Everything
// else that classifies as a header gets level 3.
var levelTwoHeading = regexp.MustCompile(`(?i)^(project overview|objectives|project phases|phases|pricing summary)\s*:?\s*$`)

// genericHeading matches a short capitalized phrase with an optional
// trailing colon: "Delivery Schedule:" or "Our Approach". Sentences and
// list lines do not match.
var genericHeading = regexp.MustCompile(`^[A-Z][A-Za-z0-9&/'’-]*(?: [A-Za-z0-9&/'’()-]+)*:?$`)

// nonAlnum matches runs of characters replaced by hyphens in slugs.
var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// SectionParser segments normalized text into titled sections.
type SectionParser interface {
	ParseSections(ctx context.Context, content string) []document.Section
}

// HeadingSectionParser classifies lines as headers by a fixed phrase list
// plus a generic capitalized-phrase shape, and accumulates everything else
// as body content of the currently open section.
type HeadingSectionParser struct{}

// ParseSections walks the text line by line. An input with no recognizable
// headers yields exactly one untitled section holding all content.
func (p *HeadingSectionParser) ParseSections(ctx context.Context, content string) []document.Section {
	if ctx.Err() != nil {
		return nil
	}

	var sections []document.Section
	var title string
	var body []string
	open := false

	flush := func() {
		if !open {
			return
		}
		sections = append(sections, document.Section{
			ID:      Slugify(title),
			Title:   title,
			Level:   headingLevel(title),
			Content: strings.TrimSpace(strings.Join(body, "\n")),
		})
	}

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if isHeader(trimmed) {
			flush()
			title = strings.TrimSuffix(trimmed, ":")
			body = body[:0]
			open = true
			continue
		}
		if trimmed == "" && !open {
			continue
		}
		if !open {
			// Content before any header opens an implicit untitled section.
			title = ""
			body = body[:0]
			open = true
		}
		if trimmed != "" {
			body = append(body, trimmed)
		} else {
			body = append(body, "")
		}
	}
	flush()

	return sections
}

// isHeader reports whether a trimmed line should open a new section.
func isHeader(line string) bool {
	if line == "" || strings.HasPrefix(line, BulletGlyph) {
		return false
	}
	if componentHeading.MatchString(line) || knownHeading.MatchString(line) {
		return true
	}
	return len(line) < maxHeaderLength && genericHeading.MatchString(line)
}

// headingLevel assigns a hierarchy level from the fixed keyword table:
// components are level 1, the named core sections level 2, the rest 3.
func headingLevel(title string) int {
	switch {
	case componentHeading.MatchString(title):
		return 1
	case levelTwoHeading.MatchString(title):
		return 2
	default:
		return 3
	}
}

// Slugify lower-cases a title, replaces non-alphanumeric runs with
// hyphens, and trims leading/trailing hyphens. An empty or fully
// non-alphanumeric title yields "untitled".
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = nonAlnum.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "untitled"
	}
	return slug
}
