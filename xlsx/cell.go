package xlsx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tsawler/docnorm/model"
)

// Worksheet limits. MaxRows and MaxColumns are the format's own bounds;
// MaxGridCells bounds the dense grid built for one sheet.
const (
	MaxRows      = 1 << 20
	MaxColumns   = 1 << 14
	MaxGridCells = 1 << 22
)

// CellType represents the type of data in a cell.
type CellType int

const (
	// CellTypeEmpty indicates an empty cell.
	CellTypeEmpty CellType = iota
	// CellTypeString indicates a string value.
	CellTypeString
	// CellTypeNumber indicates a numeric value.
	CellTypeNumber
	// CellTypeBoolean indicates a boolean value.
	CellTypeBoolean
	// CellTypeDate indicates a date-formatted number, already converted
	// to ISO-8601.
	CellTypeDate
	// CellTypeError indicates an error value such as #DIV/0!.
	CellTypeError
)

// String returns the string representation of the cell type.
func (t CellType) String() string {
	switch t {
	case CellTypeString:
		return "string"
	case CellTypeNumber:
		return "number"
	case CellTypeBoolean:
		return "boolean"
	case CellTypeDate:
		return "date"
	case CellTypeError:
		return "error"
	default:
		return "empty"
	}
}

// Cell represents a cell in a worksheet.
type Cell struct {
	Value      string   // Display value; ISO-8601 for dates
	RawValue   string   // The raw value from XML
	Type       CellType // The type of data
	Number     float64  // Parsed value of numeric cells
	Row        int      // 0-indexed row
	Col        int      // 0-indexed column
	StyleIndex int      // Index into styles
	Formula    string   // Formula text without the leading '='
	IsFormula  bool     // Set for shared formula cells with no formula text
}

// IsEmpty returns true if the cell has no value.
func (c *Cell) IsEmpty() bool {
	return c.Type == CellTypeEmpty || c.Value == ""
}

// Model converts the cell to its JSON-safe model form.
func (c *Cell) Model() model.Cell {
	mc := model.Cell{DisplayValue: c.Value, IsFormula: c.IsFormula || c.Formula != ""}
	if c.Formula != "" {
		mc.Formula = "=" + c.Formula
	}
	switch c.Type {
	case CellTypeString:
		mc.Value, mc.DataType = c.Value, model.DataTypeString
	case CellTypeNumber:
		mc.Value, mc.DataType = c.Number, model.DataTypeNumeric
	case CellTypeBoolean:
		mc.Value, mc.DataType = c.RawValue == "1", model.DataTypeBoolean
	case CellTypeDate:
		mc.Value, mc.DataType = c.Value, model.DataTypeDateTime
	case CellTypeError:
		mc.Value, mc.DataType = c.Value, model.DataTypeError
	default:
		mc.DataType = model.DataTypeEmpty
	}
	return mc
}

// Sheet represents a worksheet in the workbook.
type Sheet struct {
	Name         string
	Index        int
	Rows         [][]Cell
	MaxCol       int // Maximum column index (0-indexed)
	FormulaCount int
}

// Cell returns the cell at the given row and column (0-indexed).
// Returns nil if the cell doesn't exist.
func (s *Sheet) Cell(row, col int) *Cell {
	if row < 0 || row >= len(s.Rows) {
		return nil
	}
	if col < 0 || col >= len(s.Rows[row]) {
		return nil
	}
	return &s.Rows[row][col]
}

// CellByRef returns the cell at the given reference (e.g., "A1").
// Returns nil if the cell doesn't exist.
func (s *Sheet) CellByRef(ref string) *Cell {
	col, row, err := ParseCellRef(ref)
	if err != nil {
		return nil
	}
	return s.Cell(row, col)
}

// RowCount returns the number of rows in the sheet.
func (s *Sheet) RowCount() int {
	return len(s.Rows)
}

// ColCount returns the number of columns in the sheet.
func (s *Sheet) ColCount() int {
	if len(s.Rows) == 0 {
		return 0
	}
	return s.MaxCol + 1
}

// Grid returns the sheet's cells in model form, row by row.
func (s *Sheet) Grid() [][]model.Cell {
	grid := make([][]model.Cell, len(s.Rows))
	for i := range s.Rows {
		grid[i] = make([]model.Cell, len(s.Rows[i]))
		for j := range s.Rows[i] {
			grid[i][j] = s.Rows[i][j].Model()
		}
	}
	return grid
}

// Text returns the display values, tab separated, one row per line.
func (s *Sheet) Text() string {
	var sb strings.Builder
	for _, row := range s.Rows {
		vals := make([]string, len(row))
		for i := range row {
			vals[i] = row[i].Value
		}
		sb.WriteString(strings.Join(vals, "\t"))
		sb.WriteString("\n")
	}
	return sb.String()
}

// ParseCellRef parses a cell reference like "A1" or "AA100" into column and row indices (0-indexed).
func ParseCellRef(ref string) (col, row int, err error) {
	if ref == "" {
		return 0, 0, fmt.Errorf("empty cell reference")
	}

	i := 0
	for i < len(ref) && isLetter(ref[i]) {
		i++
	}
	if i == 0 {
		return 0, 0, fmt.Errorf("invalid cell reference: no column letters")
	}
	if i == len(ref) {
		return 0, 0, fmt.Errorf("invalid cell reference: no row number")
	}

	col = ColumnToIndex(ref[:i])
	if col < 0 {
		return 0, 0, fmt.Errorf("invalid column: %s", ref[:i])
	}

	rowNum, err := strconv.Atoi(ref[i:])
	if err != nil || rowNum < 1 {
		return 0, 0, fmt.Errorf("invalid row: %s", ref[i:])
	}
	return col, rowNum - 1, nil
}

// ColumnToIndex converts a column letter(s) to a 0-indexed column number.
// A=0, B=1, ..., Z=25, AA=26, AB=27, etc.
func ColumnToIndex(col string) int {
	col = strings.ToUpper(col)
	result := 0
	for _, c := range col {
		if c < 'A' || c > 'Z' {
			return -1
		}
		result = result*26 + int(c-'A') + 1
	}
	return result - 1
}

// IndexToColumn converts a 0-indexed column number to column letter(s).
func IndexToColumn(index int) string {
	if index < 0 {
		return ""
	}
	result := ""
	index++
	for index > 0 {
		index--
		result = string(rune('A'+index%26)) + result
		index /= 26
	}
	return result
}

// CellRef creates a cell reference string from column and row indices (0-indexed).
func CellRef(col, row int) string {
	return fmt.Sprintf("%s%d", IndexToColumn(col), row+1)
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
