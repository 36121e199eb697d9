package docnorm

import (
	"github.com/tsawler/docnorm/layout"
	"github.com/tsawler/docnorm/model"
	"github.com/tsawler/docnorm/xlsx"
)

type xlsxSource struct {
	r *xlsx.Reader
}

// openXLSXSource opens a workbook. Sheets that could not be read become
// document-level warnings.
func openXLSXSource(path string, _ Config) (FormatReader, []Warning, error) {
	r, err := xlsx.Open(path)
	if err != nil {
		return nil, nil, err
	}
	var warnings []Warning
	for _, reason := range r.Skipped() {
		warnings = append(warnings, Warning{Stage: StageOpen, Reason: reason})
	}
	return &xlsxSource{r: r}, warnings, nil
}

func (s *xlsxSource) Units() int { return s.r.SheetCount() }

func (s *xlsxSource) Metadata() model.Metadata { return s.r.Metadata() }

func (s *xlsxSource) Close() error { return s.r.Close() }

// Unit returns sheet n as a single table.
func (s *xlsxSource) Unit(n int, run *runState) *model.Unit {
	sheet, err := s.r.Sheet(n - 1)
	if err != nil {
		run.warn(n, StageText, err.Error())
		return &model.Unit{Index: n}
	}
	text := sheet.Text()
	return &model.Unit{
		Index:        n,
		Name:         sheet.Name,
		Text:         text,
		WordCount:    layout.CountWords(text),
		Elements:     []model.Element{layout.BuildTable(sheet.Grid())},
		FormulaCount: sheet.FormulaCount,
	}
}
