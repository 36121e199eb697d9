// Package xlsx provides XLSX (Office Open XML Spreadsheet) document parsing.
package xlsx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tsawler/docnorm/model"
)

// Reader provides access to XLSX document content.
type Reader struct {
	zipReader     *zip.ReadCloser
	workbook      *workbookXML
	sharedStrings []string
	numFmts       map[int]string // custom numFmtId -> format code
	xfNumFmts     []int          // style index -> numFmtId
	date1904      bool
	coreProps     *corePropertiesXML
	appProps      *appPropertiesXML
	sheets        []*Sheet
	sheetRels     map[string]string // RID -> target path
	skipped       []string
}

// Open opens an XLSX file for reading.
func Open(filename string) (*Reader, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	r := &Reader{
		zipReader: zr,
		numFmts:   make(map[int]string),
		sheetRels: make(map[string]string),
	}

	if err := r.validate(); err != nil {
		zr.Close()
		return nil, err
	}

	if err := r.parseRelationships(); err != nil {
		zr.Close()
		return nil, fmt.Errorf("parsing relationships: %w", err)
	}

	if err := r.parseWorkbook(); err != nil {
		zr.Close()
		return nil, fmt.Errorf("parsing workbook: %w", err)
	}

	// Shared strings and styles are optional parts.
	_ = r.parseSharedStrings()
	_ = r.parseStyles()

	if err := r.parseWorksheets(); err != nil {
		zr.Close()
		return nil, fmt.Errorf("parsing worksheets: %w", err)
	}

	r.parseCoreProperties()
	r.parseAppProperties()

	return r, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	if r.zipReader != nil {
		err := r.zipReader.Close()
		r.zipReader = nil
		return err
	}
	return nil
}

// validate checks that required XLSX files exist.
func (r *Reader) validate() error {
	required := []string{
		"[Content_Types].xml",
		"xl/workbook.xml",
	}

	fileMap := make(map[string]bool)
	for _, f := range r.zipReader.File {
		fileMap[f.Name] = true
	}

	for _, name := range required {
		if !fileMap[name] {
			return fmt.Errorf("missing required file: %s", name)
		}
	}
	return nil
}

// getFileContent reads the content of a file from the ZIP archive.
func (r *Reader) getFileContent(name string) ([]byte, error) {
	for _, f := range r.zipReader.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("file not found: %s", name)
}

// parseRelationships parses the workbook relationships file.
func (r *Reader) parseRelationships() error {
	data, err := r.getFileContent("xl/_rels/workbook.xml.rels")
	if err != nil {
		return nil // Relationships are optional
	}

	var rels relationshipsXML
	if err := xml.Unmarshal(data, &rels); err != nil {
		return err
	}
	for _, rel := range rels.Relationship {
		r.sheetRels[rel.ID] = rel.Target
	}
	return nil
}

// parseWorkbook parses the main workbook file.
func (r *Reader) parseWorkbook() error {
	data, err := r.getFileContent("xl/workbook.xml")
	if err != nil {
		return err
	}

	r.workbook = &workbookXML{}
	if err := xml.Unmarshal(data, r.workbook); err != nil {
		return err
	}
	if pr := r.workbook.WorkbookPr; pr != nil {
		r.date1904 = pr.Date1904 == "1" || strings.EqualFold(pr.Date1904, "true")
	}
	return nil
}

// parseSharedStrings parses the shared strings table.
func (r *Reader) parseSharedStrings() error {
	data, err := r.getFileContent("xl/sharedStrings.xml")
	if err != nil {
		return err
	}

	var sst sharedStringsXML
	if err := xml.Unmarshal(data, &sst); err != nil {
		return err
	}

	r.sharedStrings = make([]string, len(sst.SI))
	for i, si := range sst.SI {
		r.sharedStrings[i] = richText(si.T, si.R)
	}
	return nil
}

// richText returns simple text, or the concatenated runs when it is empty.
func richText(t string, runs []rXML) string {
	if t != "" || len(runs) == 0 {
		return t
	}
	var sb strings.Builder
	for _, run := range runs {
		sb.WriteString(run.T)
	}
	return sb.String()
}

// parseStyles parses the number formats referenced by cell styles.
func (r *Reader) parseStyles() error {
	data, err := r.getFileContent("xl/styles.xml")
	if err != nil {
		return err
	}

	var styles stylesXML
	if err := xml.Unmarshal(data, &styles); err != nil {
		return err
	}
	if styles.NumFmts != nil {
		for _, nf := range styles.NumFmts.NumFmt {
			r.numFmts[nf.NumFmtID] = nf.FormatCode
		}
	}
	if styles.CellXfs != nil {
		for _, xf := range styles.CellXfs.Xf {
			r.xfNumFmts = append(r.xfNumFmts, xf.NumFmtID)
		}
	}
	return nil
}

// dateKindForStyle classifies the number format of a cell style.
func (r *Reader) dateKindForStyle(style int) dateKind {
	if style < 0 || style >= len(r.xfNumFmts) {
		return notDate
	}
	id := r.xfNumFmts[style]
	return classifyFormat(id, r.numFmts[id])
}

// parseWorksheets parses all worksheet files. A sheet that cannot be read is
// skipped and recorded; the workbook fails only when no sheet is readable.
func (r *Reader) parseWorksheets() error {
	r.sheets = make([]*Sheet, 0, len(r.workbook.Sheets.Sheet))

	for i, sheetRef := range r.workbook.Sheets.Sheet {
		target := r.sheetRels[sheetRef.RID]
		if target == "" {
			target = fmt.Sprintf("worksheets/sheet%d.xml", i+1)
		}
		if strings.HasPrefix(target, "/") {
			target = strings.TrimPrefix(target, "/")
		} else if !strings.HasPrefix(target, "xl/") {
			target = "xl/" + target
		}

		data, err := r.getFileContent(target)
		if err != nil {
			r.skipped = append(r.skipped, fmt.Sprintf("%s: %v", sheetRef.Name, err))
			continue
		}

		sheet, err := r.parseWorksheet(data, sheetRef.Name, len(r.sheets))
		if err != nil {
			r.skipped = append(r.skipped, fmt.Sprintf("%s: %v", sheetRef.Name, err))
			continue
		}
		r.sheets = append(r.sheets, sheet)
	}

	if len(r.sheets) == 0 && len(r.workbook.Sheets.Sheet) > 0 {
		return fmt.Errorf("no readable worksheets")
	}
	return nil
}

// parseWorksheet parses a single worksheet into a dense grid spanning the
// non-empty cells. Rows and cells without a reference follow the previous
// one. Blank cells only widen the grid when something follows them.
func (r *Reader) parseWorksheet(data []byte, name string, index int) (*Sheet, error) {
	var ws worksheetXML
	if err := xml.Unmarshal(data, &ws); err != nil {
		return nil, err
	}

	sheet := &Sheet{Name: name, Index: index}

	var cells []Cell
	maxRow, maxCol := -1, -1

	rowIdx := -1
	for _, row := range ws.SheetData.Rows {
		if row.R > 0 {
			rowIdx = row.R - 1
		} else {
			rowIdx++
		}
		colIdx := -1
		for _, c := range row.Cells {
			if col, _, err := ParseCellRef(c.R); err == nil {
				colIdx = col
			} else {
				colIdx++
			}
			if rowIdx >= MaxRows || colIdx >= MaxColumns {
				return nil, fmt.Errorf("cell at row %d, column %d is outside the sheet limits", rowIdx+1, colIdx+1)
			}

			cell := Cell{Row: rowIdx, Col: colIdx}
			r.populateCell(&cell, c)
			if cell.IsEmpty() && !cell.IsFormula {
				continue
			}
			cells = append(cells, cell)
			maxRow = max(maxRow, rowIdx)
			maxCol = max(maxCol, colIdx)
		}
	}

	if size := int64(maxRow+1) * int64(maxCol+1); size > MaxGridCells {
		return nil, fmt.Errorf("sheet spans %d rows by %d columns, more than %d cells", maxRow+1, maxCol+1, MaxGridCells)
	}

	sheet.MaxCol = maxCol
	sheet.Rows = make([][]Cell, maxRow+1)
	for i := range sheet.Rows {
		sheet.Rows[i] = make([]Cell, maxCol+1)
		for j := range sheet.Rows[i] {
			sheet.Rows[i][j] = Cell{Row: i, Col: j}
		}
	}

	for _, cell := range cells {
		sheet.Rows[cell.Row][cell.Col] = cell
		if cell.IsFormula {
			sheet.FormulaCount++
		}
	}
	return sheet, nil
}

// populateCell fills in a cell's type and display value.
func (r *Reader) populateCell(cell *Cell, c cellXML) {
	cell.RawValue = c.V
	cell.StyleIndex = c.S
	if c.F != nil {
		cell.Formula = strings.TrimSpace(c.F.Text)
		cell.IsFormula = true
	}

	switch c.T {
	case "s":
		cell.Type = CellTypeString
		idx, err := strconv.Atoi(c.V)
		if err == nil && idx >= 0 && idx < len(r.sharedStrings) {
			cell.Value = r.sharedStrings[idx]
		}
	case "b":
		cell.Type = CellTypeBoolean
		if c.V == "1" {
			cell.Value = "TRUE"
		} else {
			cell.Value = "FALSE"
		}
	case "e":
		cell.Type = CellTypeError
		cell.Value = c.V
	case "str":
		cell.Type = CellTypeString
		cell.Value = c.V
	case "inlineStr":
		cell.Type = CellTypeString
		if c.Is != nil {
			cell.Value = richText(c.Is.T, c.Is.R)
		}
	case "d":
		cell.Type = CellTypeDate
		cell.Value = c.V
	default:
		if c.V == "" {
			break
		}
		f, err := strconv.ParseFloat(c.V, 64)
		if err != nil {
			cell.Type = CellTypeString
			cell.Value = c.V
			break
		}
		if kind := r.dateKindForStyle(c.S); kind != notDate {
			cell.Type = CellTypeDate
			cell.Value = formatSerial(f, r.date1904, kind)
			break
		}
		cell.Type = CellTypeNumber
		cell.Number = f
		cell.Value = strconv.FormatFloat(f, 'f', -1, 64)
	}

	if cell.Type == CellTypeString && cell.Value == "" && !cell.IsFormula {
		cell.Type = CellTypeEmpty
	}
}

// parseCoreProperties parses Dublin Core metadata.
func (r *Reader) parseCoreProperties() {
	data, err := r.getFileContent("docProps/core.xml")
	if err != nil {
		return
	}
	r.coreProps = &corePropertiesXML{}
	xml.Unmarshal(data, r.coreProps)
}

// parseAppProperties parses application metadata.
func (r *Reader) parseAppProperties() {
	data, err := r.getFileContent("docProps/app.xml")
	if err != nil {
		return
	}
	r.appProps = &appPropertiesXML{}
	xml.Unmarshal(data, r.appProps)
}

// SheetCount returns the number of sheets in the workbook.
func (r *Reader) SheetCount() int {
	return len(r.sheets)
}

// SheetNames returns the names of all sheets.
func (r *Reader) SheetNames() []string {
	names := make([]string, len(r.sheets))
	for i, s := range r.sheets {
		names[i] = s.Name
	}
	return names
}

// Sheet returns the sheet at the given index (0-indexed).
func (r *Reader) Sheet(index int) (*Sheet, error) {
	if index < 0 || index >= len(r.sheets) {
		return nil, fmt.Errorf("sheet index %d out of range (0-%d)", index, len(r.sheets)-1)
	}
	return r.sheets[index], nil
}

// SheetByName returns the sheet with the given name.
func (r *Reader) SheetByName(name string) (*Sheet, error) {
	for _, s := range r.sheets {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("sheet not found: %s", name)
}

// Skipped describes the sheets that could not be read.
func (r *Reader) Skipped() []string {
	return r.skipped
}

// Metadata returns workbook properties.
func (r *Reader) Metadata() model.Metadata {
	meta := model.Metadata{Engine: "ooxml"}
	if r.coreProps != nil {
		meta.Title = r.coreProps.Title
		meta.Author = r.coreProps.Creator
		meta.Subject = r.coreProps.Subject
		meta.Keywords = r.coreProps.Keywords
		meta.LastModifiedBy = r.coreProps.LastModBy
		meta.Created = strings.TrimSpace(r.coreProps.Created)
		meta.Modified = strings.TrimSpace(r.coreProps.Modified)
	}
	if r.appProps != nil {
		meta.Creator = r.appProps.Application
	}
	return meta
}
