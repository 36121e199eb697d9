package docnorm

import (
	"context"
	"fmt"

	"github.com/tsawler/docnorm/chunk"
	"github.com/tsawler/docnorm/format"
	"github.com/tsawler/docnorm/model"
	"github.com/tsawler/docnorm/ocr"
)

// Extractor provides a fluent interface for extracting one document.
// Each configuration method returns a new Extractor instance, making it
// safe for concurrent use and allowing method chaining.
type Extractor struct {
	pipeline *Pipeline
	filename string
	options  ExtractOptions
}

// clone creates a copy of the Extractor. Each chain method returns a new
// instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		pipeline: e.pipeline,
		filename: e.filename,
		options:  e.options,
	}
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// IncludeImages controls whether image references are attached to units.
// Enabled by default.
//
// Example:
//
//	doc, _, err := docnorm.Open("doc.pdf").IncludeImages(false).Extract(ctx)
func (e *Extractor) IncludeImages(on bool) *Extractor {
	newExt := e.clone()
	newExt.options.includeImages = on
	return newExt
}

// IncludeTables controls table detection: PDF table estimates, DOCX tables
// and tab-delimited text tables. Sheets are always tables. Enabled by
// default.
func (e *Extractor) IncludeTables(on bool) *Extractor {
	newExt := e.clone()
	newExt.options.includeTables = on
	return newExt
}

// UseOCR controls OCR recovery of PDF pages without a text layer. It has
// no effect when the pipeline has no OCR capability. Enabled by default.
func (e *Extractor) UseOCR(on bool) *Extractor {
	newExt := e.clone()
	newExt.options.useOCR = on
	return newExt
}

// PageRange restricts a PDF extraction to pages start through end
// (1-indexed, inclusive). The range is clamped to the document; an empty
// result fails with ErrInvalidRange. Other formats ignore the range with a
// warning.
//
// Example:
//
//	doc, _, err := docnorm.Open("big.pdf").PageRange(31, 60).Extract(ctx)
func (e *Extractor) PageRange(start, end int) *Extractor {
	newExt := e.clone()
	newExt.options.ranged = true
	newExt.options.startPage = start
	newExt.options.endPage = end
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Extract reads the document unit by unit. Context cancellation is checked
// between units. Degraded units are returned as warnings, which are also
// recorded on the document.
//
// Example:
//
//	doc, warnings, err := docnorm.Open("report.docx").Extract(ctx)
func (e *Extractor) Extract(ctx context.Context) (*model.Document, []Warning, error) {
	p := e.pipeline
	src, err := p.open(e.filename)
	if err != nil {
		return nil, nil, err
	}
	defer src.close(p.logger)

	run := &runState{
		opts:     e.options,
		ocr:      p.cfg.OCR.NewSession(),
		logger:   p.logger,
		warnings: src.warnings,
	}
	defer run.ocr.Close()

	doc := &model.Document{
		FileName:     src.name,
		SizeBytes:    src.size,
		Format:       src.format,
		Metadata:     src.reader.Metadata(),
		OCRAvailable: p.cfg.OCR.Available(),
	}

	total := src.reader.Units()
	first, last := 1, total
	if e.options.ranged {
		if src.format == format.PDF {
			first, last, err = chunk.Clamp(e.options.startPage, e.options.endPage, total)
			if err != nil {
				return nil, nil, &Error{Kind: KindInvalidRange, Path: e.filename, Err: err}
			}
			doc.Chunk = &model.ChunkInfo{
				StartPage:  first,
				EndPage:    last,
				Pages:      last - first + 1,
				TotalPages: total,
			}
		} else {
			run.warn(0, StageOptions, fmt.Sprintf("page range ignored for %s", src.format))
		}
	}

	for n := first; n <= last; n++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, fmt.Errorf("extracting %s: %w", e.filename, err)
		}
		u := src.reader.Unit(n, run)
		p.logger.Debug("extracted unit", "file", src.name, "unit", n, "words", u.WordCount, "ocr", u.OCRUsed)
		doc.AddUnitAt(u)
	}

	if doc.OCRUsed {
		doc.Metadata.Engine += "+" + ocr.EngineName
	}
	if ts, ok := src.reader.(textStatser); ok {
		doc.Text = ts.Stats()
	}
	doc.Warnings = run.warnings
	return doc, run.warnings, nil
}
