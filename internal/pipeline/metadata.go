package pipeline

import (
	"regexp"
	"strings"

	"github.com/alnah/go-propdoc/internal/document"
)

// metadataScanLines bounds how far into the cleaned text the extractor
// looks for document metadata.
const metadataScanLines = 10

// Default metadata values used when extraction finds nothing.
const (
	DefaultTitle   = "Project Proposal"
	DefaultVersion = "1.0"
)

// Labeled metadata lines near the top of the document.
var (
	clientLabel  = regexp.MustCompile(`(?i)^(?:client|prepared for)\s*:\s*(.+)$`)
	dateLabel    = regexp.MustCompile(`(?i)^date\s*:\s*(.+)$`)
	versionLabel = regexp.MustCompile(`(?i)^version\s*:\s*(.+)$`)
	titleLine    = regexp.MustCompile(`(?i)\bproposal\b`)
)

// ExtractMetadata scans the first few lines of cleaned text for a title,
// client, date, and version. Fields it cannot find are defaulted; the date
// is left empty for the caller to fill.
func ExtractMetadata(content string) document.Metadata {
	meta := document.Metadata{}

	lines := strings.Split(content, "\n")
	if len(lines) > metadataScanLines {
		lines = lines[:metadataScanLines]
	}

	var firstNonEmpty string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if firstNonEmpty == "" {
			firstNonEmpty = line
		}
		if m := clientLabel.FindStringSubmatch(line); m != nil && meta.Client == "" {
			meta.Client = strings.TrimSpace(m[1])
			continue
		}
		if m := dateLabel.FindStringSubmatch(line); m != nil && meta.Date == "" {
			meta.Date = strings.TrimSpace(m[1])
			continue
		}
		if m := versionLabel.FindStringSubmatch(line); m != nil && meta.Version == "" {
			meta.Version = strings.TrimSpace(m[1])
			continue
		}
		if meta.Title == "" && titleLine.MatchString(line) {
			meta.Title = line
		}
	}

	if meta.Title == "" {
		if firstNonEmpty != "" && isHeader(firstNonEmpty) {
			meta.Title = strings.TrimSuffix(firstNonEmpty, ":")
		} else {
			meta.Title = DefaultTitle
		}
	}
	if meta.Version == "" {
		meta.Version = DefaultVersion
	}
	return meta
}
