package docnorm

import (
	"errors"
	"fmt"

	"github.com/tsawler/docnorm/layout"
	"github.com/tsawler/docnorm/model"
	"github.com/tsawler/docnorm/reader"
)

// openPDF opens the PDF engine. Tests replace it.
var openPDF = reader.Open

type pdfSource struct {
	r *reader.Reader
	// noStructure is set once the page objects proved unreadable; rotation
	// and images are skipped from then on.
	noStructure error
}

func openPDFSource(path string, _ Config) (FormatReader, []Warning, error) {
	r, err := openPDF(path)
	if err != nil {
		return nil, nil, err
	}
	return &pdfSource{r: r}, nil, nil
}

func (s *pdfSource) Units() int { return s.r.PageCount() }

func (s *pdfSource) Metadata() model.Metadata { return s.r.Metadata() }

func (s *pdfSource) Close() error { return s.r.Close() }

// Unit extracts page n. An empty text layer is recovered with OCR when the
// run allows it.
func (s *pdfSource) Unit(n int, run *runState) *model.Unit {
	u := &model.Unit{Index: n}

	text, err := s.r.PageText(n)
	if err != nil {
		run.warn(n, StageText, err.Error())
		text = ""
	}
	if layout.CountWords(text) == 0 && run.opts.useOCR {
		outcome := run.ocr.Recover(func() ([]byte, error) { return s.r.RenderPNG(n) })
		if outcome.Recovered() {
			text = outcome.Text
			u.OCRUsed = true
		} else {
			run.warn(n, StageOCR, fmt.Sprintf("%s: %s", outcome.Status, outcome.Reason))
		}
	}
	u.Text = text
	u.WordCount = layout.CountWords(text)

	if w, h, err := s.r.PageSize(n); err != nil {
		run.warn(n, StageGeometry, err.Error())
	} else {
		u.Width, u.Height = w, h
	}
	if s.noStructure == nil {
		if rot, err := s.r.PageRotation(n); err != nil {
			s.structureFailed(n, run, StageGeometry, err)
		} else {
			u.Rotation = rot
		}
	}

	if run.opts.includeImages && s.noStructure == nil {
		images, err := s.r.PageImages(n)
		if err != nil {
			s.structureFailed(n, run, StageImages, err)
		}
		for i, img := range images {
			u.Images = append(u.Images, model.ImageRef{
				Index:     i + 1,
				Format:    img.Format,
				Width:     img.Width,
				Height:    img.Height,
				SizeBytes: img.Size,
				XRef:      img.ObjNr,
				Name:      img.Name,
			})
		}
	}

	blocks := layout.TextBlocks(text)
	u.Elements = layout.PageElements(blocks)
	if run.opts.includeTables {
		u.Estimate = layout.EstimateTables(blocks)
	}
	return u
}

// structureFailed records a failed structure call. An unreadable document is
// reported once and disables structure calls for the remaining pages.
func (s *pdfSource) structureFailed(n int, run *runState, stage string, err error) {
	if errors.Is(err, reader.ErrStructure) {
		s.noStructure = err
		run.warn(n, stage, err.Error()+"; rotation and images skipped for remaining pages")
		return
	}
	run.warn(n, stage, err.Error())
}
