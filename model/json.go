package model

import (
	"encoding/json"

	"github.com/tsawler/docnorm/format"
)

type pageJSON struct {
	PageNumber int            `json:"page_number"`
	Width      float64        `json:"width"`
	Height     float64        `json:"height"`
	Rotation   int            `json:"rotation"`
	Text       string         `json:"text"`
	WordCount  int            `json:"word_count"`
	OCRUsed    bool           `json:"ocr_used"`
	Images     []ImageRef     `json:"images"`
	Tables     *TableEstimate `json:"tables,omitempty"`
	Elements   []Element      `json:"elements"`
}

type sheetJSON struct {
	Name         string            `json:"name"`
	Rows         int               `json:"rows"`
	Columns      int               `json:"columns"`
	HasHeader    bool              `json:"has_header"`
	Headers      []string          `json:"headers"`
	Data         [][]Cell          `json:"data"`
	Records      []map[string]Cell `json:"records"`
	FormulaCount int               `json:"formula_count"`
	WordCount    int               `json:"word_count"`
}

// MarshalJSON renders the format-independent counters followed by the
// format-specific unit view: pages for PDF, sheets for XLSX, and a flat
// paragraph/heading/table view for DOCX and TXT.
func (d *Document) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"file_name":       d.FileName,
		"file_size_bytes": d.SizeBytes,
		"format":          d.Format.String(),
		"total_words":     d.TotalWords,
		"total_images":    d.TotalImages,
		"total_tables":    d.TotalTables,
		"ocr_used":        d.OCRUsed,
		"ocr_available":   d.OCRAvailable,
		"metadata":        d.Metadata,
		"warnings":        nonNil(d.Warnings),
	}

	switch d.Format {
	case format.PDF:
		pages := make([]pageJSON, 0, len(d.Units))
		for _, u := range d.Units {
			pages = append(pages, pageJSON{
				PageNumber: u.Index,
				Width:      u.Width,
				Height:     u.Height,
				Rotation:   u.Rotation,
				Text:       u.Text,
				WordCount:  u.WordCount,
				OCRUsed:    u.OCRUsed,
				Images:     nonNil(u.Images),
				Tables:     u.Estimate,
				Elements:   nonNil(u.Elements),
			})
		}
		out["page_count"] = len(d.Units)
		out["pages"] = pages
		if d.Chunk != nil {
			out["chunk_info"] = d.Chunk
			out["page_count"] = d.Chunk.TotalPages
		}

	case format.XLSX:
		sheets := make([]sheetJSON, 0, len(d.Units))
		var rows, cells, formulas int
		for _, u := range d.Units {
			s := sheetJSON{Name: u.Name, FormulaCount: u.FormulaCount, WordCount: u.WordCount}
			if t := u.Sheet(); t != nil {
				s.Rows, s.Columns, s.HasHeader = t.Rows, t.Columns, t.HasHeader
				s.Headers, s.Data, s.Records = t.Headers, t.Data, t.Records
			}
			s.Headers = nonNil(s.Headers)
			s.Data = nonNil(s.Data)
			s.Records = nonNil(s.Records)
			rows += s.Rows
			cells += s.Rows * s.Columns
			formulas += s.FormulaCount
			sheets = append(sheets, s)
		}
		out["sheet_count"] = len(sheets)
		out["sheets"] = sheets
		out["total_rows"] = rows
		out["total_cells"] = cells
		out["total_formulas"] = formulas

	default:
		var (
			paragraphs []*Paragraph
			headings   []*Heading
			tables     []*Table
			images     []ImageRef
		)
		for _, u := range d.Units {
			paragraphs = append(paragraphs, u.Paragraphs()...)
			headings = append(headings, u.Headings()...)
			tables = append(tables, u.Tables()...)
			images = append(images, u.Images...)
		}
		out["paragraph_count"] = len(paragraphs)
		out["paragraphs"] = nonNil(paragraphs)
		out["heading_count"] = len(headings)
		out["headings"] = nonNil(headings)
		out["table_count"] = len(tables)
		out["tables"] = nonNil(tables)
		out["images"] = nonNil(images)
		out["content"] = d.Content()
		if d.Text != nil {
			out["line_count"] = d.Text.Lines
			out["char_count"] = d.Text.Chars
			out["char_count_no_spaces"] = d.Text.CharsNoSpaces
			out["detected_structure"] = map[string]any{
				"has_headings":         d.Text.HasHeadings,
				"has_paragraphs":       d.Text.HasParagraphs,
				"avg_paragraph_length": d.Text.AvgParagraphLength,
			}
		}
	}

	return json.Marshal(out)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
