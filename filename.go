package propdoc

import (
	"fmt"
	"time"

	"github.com/alnah/go-propdoc/internal/pipeline"
)

// filenameTimestamp is the timestamp layout used in artifact names.
const filenameTimestamp = "20060102-150405"

// outputFilename builds the deterministic artifact name
// "{client-slug}-{title-slug}-{timestamp}.{ext}".
func outputFilename(client, title, ext string, t time.Time) string {
	return fmt.Sprintf("%s-%s-%s.%s",
		pipeline.Slugify(client),
		pipeline.Slugify(title),
		t.Format(filenameTimestamp),
		ext,
	)
}

// formatBytes renders a byte count for the report, e.g. "12.4 KB".
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
