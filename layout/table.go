package layout

import (
	"fmt"
	"strings"

	"github.com/tsawler/docnorm/model"
)

// HasHeader reports whether rows has more than one row and a first row with
// at least one non-blank cell.
func HasHeader(rows [][]model.Cell) bool {
	if len(rows) <= 1 {
		return false
	}
	for _, c := range rows[0] {
		if strings.TrimSpace(c.DisplayValue) != "" {
			return true
		}
	}
	return false
}

// ColumnLabel returns the record key for column i: the header text, or
// Column_N when the header is blank or missing.
func ColumnLabel(headers []string, i int) string {
	if i < len(headers) && strings.TrimSpace(headers[i]) != "" {
		return headers[i]
	}
	return fmt.Sprintf("Column_%d", i+1)
}

// BuildTable wraps a cell grid in a table, filling in the header and record
// views when the first row is a header.
func BuildTable(rows [][]model.Cell) *model.Table {
	t := &model.Table{Rows: len(rows), Data: rows}
	for _, row := range rows {
		if len(row) > t.Columns {
			t.Columns = len(row)
		}
	}
	if !HasHeader(rows) {
		return t
	}

	t.HasHeader = true
	t.Headers = make([]string, len(rows[0]))
	for i, c := range rows[0] {
		t.Headers[i] = c.DisplayValue
	}
	for _, row := range rows[1:] {
		rec := make(map[string]model.Cell, len(row))
		for i, c := range row {
			rec[ColumnLabel(t.Headers, i)] = c
		}
		t.Records = append(t.Records, rec)
	}
	return t
}

// TextTable builds a table from rows of plain strings.
func TextTable(rows [][]string) *model.Table {
	cells := make([][]model.Cell, len(rows))
	for i, row := range rows {
		cells[i] = make([]model.Cell, len(row))
		for j, s := range row {
			cells[i][j] = model.TextCell(s)
		}
	}
	return BuildTable(cells)
}

// DelimitedRows splits a block into tab-separated fields. It succeeds only
// when the block has at least two lines and every line has the same number
// of fields, at least two.
func DelimitedRows(b Block) ([][]string, bool) {
	if len(b.Lines) < 2 {
		return nil, false
	}
	rows := make([][]string, 0, len(b.Lines))
	width := -1
	for _, line := range b.Lines {
		fields := strings.Split(line, "\t")
		if len(fields) < 2 || (width >= 0 && len(fields) != width) {
			return nil, false
		}
		width = len(fields)
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		rows = append(rows, fields)
	}
	return rows, true
}
