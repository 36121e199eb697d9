package docx

import (
	"strconv"
	"strings"

	"github.com/tsawler/docnorm/layout"
	"github.com/tsawler/docnorm/model"
)

// ParsedTable represents a parsed table laid out on its column grid.
type ParsedTable struct {
	Rows     []ParsedTableRow
	GridCols int // Columns declared by tblGrid
	StyleID  string
}

// ParsedTableRow represents a parsed table row.
type ParsedTableRow struct {
	Cells []ParsedTableCell
}

// ParsedTableCell represents a parsed table cell.
type ParsedTableCell struct {
	Text                 string // Combined text from all paragraphs, trimmed
	ColSpan              int    // Number of columns spanned (gridSpan)
	IsMergedContinuation bool   // True if this is a continuation of a vertical merge
}

// ColCount returns the number of grid columns: the declared grid or the
// widest row, whichever is larger.
func (pt *ParsedTable) ColCount() int {
	count := pt.GridCols
	for _, row := range pt.Rows {
		n := 0
		for _, cell := range row.Cells {
			n += cell.ColSpan
		}
		count = max(count, n)
	}
	return count
}

// Grid returns the cell text on the column grid. A spanned cell repeats its
// text in every column it covers; a vertically merged cell repeats the text
// of the cell that starts the merge.
func (pt *ParsedTable) Grid() [][]string {
	cols := pt.ColCount()
	grid := make([][]string, len(pt.Rows))
	for r, row := range pt.Rows {
		grid[r] = make([]string, cols)
		col := 0
		for _, cell := range row.Cells {
			text := cell.Text
			if cell.IsMergedContinuation && r > 0 && col < cols {
				text = grid[r-1][col]
			}
			for i := 0; i < cell.ColSpan && col < cols; i++ {
				grid[r][col] = text
				col++
			}
		}
	}
	return grid
}

// ToModelTable converts a ParsedTable to a model.Table with header and
// record views.
func (pt *ParsedTable) ToModelTable() *model.Table {
	return layout.TextTable(pt.Grid())
}

// TableParser handles parsing of DOCX tables.
type TableParser struct{}

// NewTableParser creates a new table parser.
func NewTableParser() *TableParser {
	return &TableParser{}
}

// ParseTable parses a table XML element into a ParsedTable.
func (tp *TableParser) ParseTable(tbl tableXML) ParsedTable {
	parsed := ParsedTable{
		GridCols: len(tbl.Grid.Cols),
		StyleID:  tbl.Properties.Style.Val,
	}
	for _, row := range tbl.Rows {
		parsed.Rows = append(parsed.Rows, tp.parseRow(row))
	}
	return parsed
}

// parseRow parses a table row.
func (tp *TableParser) parseRow(row tableRowXML) ParsedTableRow {
	var parsed ParsedTableRow
	for _, cell := range row.Cells {
		parsed.Cells = append(parsed.Cells, tp.parseCell(cell))
	}
	return parsed
}

// parseCell parses a table cell.
func (tp *TableParser) parseCell(cell tableCellXML) ParsedTableCell {
	parsed := ParsedTableCell{ColSpan: 1}

	props := cell.Properties
	if props.GridSpan.Val != "" {
		if span, err := strconv.Atoi(props.GridSpan.Val); err == nil && span > 0 {
			parsed.ColSpan = span
		}
	}
	// An empty vMerge value continues the merge above.
	if props.VMerge != nil && props.VMerge.Val != "restart" {
		parsed.IsMergedContinuation = true
	}

	parts := make([]string, 0, len(cell.Paragraphs))
	for i := range cell.Paragraphs {
		parts = append(parts, cell.Paragraphs[i].Text())
	}
	parsed.Text = strings.TrimSpace(strings.Join(parts, "\n"))
	return parsed
}
