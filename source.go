package docnorm

import (
	"log/slog"

	"github.com/tsawler/docnorm/format"
	"github.com/tsawler/docnorm/model"
	"github.com/tsawler/docnorm/ocr"
)

// FormatReader is an open document seen as an ordered list of units: pages,
// sheets, or the whole document. The orchestrator drives every format
// through this interface.
type FormatReader interface {
	// Units returns the number of units. Unit numbers run from 1.
	Units() int
	// Unit extracts unit n. Degraded enrichments are reported through
	// the run; a unit is always returned.
	Unit(n int, r *runState) *model.Unit
	Metadata() model.Metadata
	Close() error
}

// textStatser is implemented by readers with plain text statistics.
type textStatser interface {
	Stats() *model.TextStats
}

// opener opens one format. Warnings describe parts of the file that were
// skipped while opening.
type opener func(path string, cfg Config) (FormatReader, []Warning, error)

// openers is the closed set of supported formats.
var openers = map[format.Format]opener{
	format.PDF:  openPDFSource,
	format.DOCX: openDOCXSource,
	format.XLSX: openXLSXSource,
	format.TXT:  openTXTSource,
}

// runState carries the per-extraction state shared by all units.
type runState struct {
	opts     ExtractOptions
	ocr      *ocr.Session
	logger   *slog.Logger
	warnings []Warning
}

func (r *runState) warn(unit int, stage, reason string) {
	r.logger.Warn("degraded unit", "unit", unit, "stage", stage, "reason", reason)
	r.warnings = append(r.warnings, Warning{Unit: unit, Stage: stage, Reason: reason})
}
