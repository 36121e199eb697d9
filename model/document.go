package model

import (
	"strconv"
	"strings"

	"github.com/tsawler/docnorm/format"
)

// Document represents one extracted input file
type Document struct {
	FileName     string
	SizeBytes    int64
	Format       format.Format
	Metadata     Metadata
	Units        []*Unit
	TotalWords   int
	TotalImages  int
	TotalTables  int
	OCRUsed      bool
	OCRAvailable bool

	// Chunk is set when only a page range of a PDF was extracted.
	Chunk *ChunkInfo
	// Text is set for plain text documents.
	Text *TextStats

	Warnings []Warning
}

// Unit is one extraction granule: a PDF page, a sheet, or a whole
// DOCX/TXT document.
type Unit struct {
	Index     int // 1-indexed
	Name      string
	Text      string
	WordCount int
	Elements  []Element
	Images    []ImageRef
	OCRUsed   bool

	// PDF page geometry in points.
	Width    float64
	Height   float64
	Rotation int
	Estimate *TableEstimate

	// Sheet statistics.
	FormulaCount int
}

// Metadata contains document-level information
type Metadata struct {
	Title          string `json:"title"`
	Author         string `json:"author"`
	Subject        string `json:"subject,omitempty"`
	Keywords       string `json:"keywords,omitempty"`
	Creator        string `json:"creator,omitempty"`
	Producer       string `json:"producer,omitempty"`
	Created        string `json:"created,omitempty"`
	Modified       string `json:"modified,omitempty"`
	LastModifiedBy string `json:"last_modified_by,omitempty"`
	Revision       string `json:"revision,omitempty"`
	PDFVersion     string `json:"pdf_version,omitempty"`
	Engine         string `json:"engine,omitempty"`
	Encoding       string `json:"encoding,omitempty"`
}

// ChunkInfo describes the page range of a chunked PDF extraction.
type ChunkInfo struct {
	StartPage  int `json:"start_page"`
	EndPage    int `json:"end_page"`
	Pages      int `json:"pages_in_chunk"`
	TotalPages int `json:"total_document_pages"`
}

// TextStats holds plain text statistics.
type TextStats struct {
	Lines              int     `json:"line_count"`
	Chars              int     `json:"char_count"`
	CharsNoSpaces      int     `json:"char_count_no_spaces"`
	HasHeadings        bool    `json:"has_headings"`
	HasParagraphs      bool    `json:"has_paragraphs"`
	AvgParagraphLength float64 `json:"avg_paragraph_length"`
}

// Warning records a degraded unit: an enrichment step that was skipped or
// failed without aborting the extraction. Unit is 0 for document-level
// warnings.
type Warning struct {
	Unit   int    `json:"unit,omitempty"`
	Stage  string `json:"stage"`
	Reason string `json:"reason"`
}

func (w Warning) String() string {
	var sb strings.Builder
	if w.Unit > 0 {
		sb.WriteString("unit ")
		sb.WriteString(strconv.Itoa(w.Unit))
		sb.WriteString(": ")
	}
	sb.WriteString(w.Stage)
	sb.WriteString(": ")
	sb.WriteString(w.Reason)
	return sb.String()
}

// AddUnitAt appends a unit, which keeps its own index as for a page range,
// and folds its counts into the document totals.
func (d *Document) AddUnitAt(u *Unit) {
	d.Units = append(d.Units, u)
	d.TotalWords += u.WordCount
	d.TotalImages += len(u.Images)
	if u.Estimate != nil {
		d.TotalTables += u.Estimate.Candidates
	} else {
		d.TotalTables += len(u.Tables())
	}
	if u.OCRUsed {
		d.OCRUsed = true
	}
}

// Content returns the text of all units separated by blank lines.
func (d *Document) Content() string {
	parts := make([]string, 0, len(d.Units))
	for _, u := range d.Units {
		parts = append(parts, u.Text)
	}
	return strings.Join(parts, "\n\n")
}

// Headings returns all heading elements in document order.
func (u *Unit) Headings() []*Heading {
	var out []*Heading
	for _, e := range u.Elements {
		if h, ok := e.(*Heading); ok {
			out = append(out, h)
		}
	}
	return out
}

// Paragraphs returns all paragraph elements in document order.
func (u *Unit) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, e := range u.Elements {
		if p, ok := e.(*Paragraph); ok {
			out = append(out, p)
		}
	}
	return out
}

// Tables returns all table elements in document order.
func (u *Unit) Tables() []*Table {
	var out []*Table
	for _, e := range u.Elements {
		if t, ok := e.(*Table); ok {
			out = append(out, t)
		}
	}
	return out
}

// Sheet returns the table of a spreadsheet unit, or nil.
func (u *Unit) Sheet() *Table {
	tables := u.Tables()
	if len(tables) == 0 {
		return nil
	}
	return tables[0]
}
