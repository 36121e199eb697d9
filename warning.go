package docnorm

import (
	"strings"

	"github.com/tsawler/docnorm/model"
)

// Warning records a unit whose enrichment was skipped or failed. The
// extraction itself still succeeded.
type Warning = model.Warning

// Warning stages.
const (
	StageOptions  = "options"
	StageOpen     = "open"
	StageText     = "text"
	StageOCR      = "ocr"
	StageGeometry = "geometry"
	StageImages   = "images"
)

// FormatWarnings renders warnings one per line.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
