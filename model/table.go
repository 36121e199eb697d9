package model

import (
	"encoding/json"
	"strings"
)

// DataType is the inferred type of a cell value.
type DataType string

const (
	DataTypeString   DataType = "string"
	DataTypeNumeric  DataType = "numeric"
	DataTypeBoolean  DataType = "boolean"
	DataTypeDateTime DataType = "datetime"
	DataTypeError    DataType = "error"
	DataTypeEmpty    DataType = "empty"
)

// Cell represents a table cell. Value is always JSON-safe: a string,
// float64, bool or nil. Dates are carried as ISO-8601 strings.
type Cell struct {
	Value        any      `json:"value"`
	DataType     DataType `json:"data_type"`
	Formula      string   `json:"formula,omitempty"`
	IsFormula    bool     `json:"is_formula"`
	DisplayValue string   `json:"display_value"`
}

// TextCell returns a string cell, or an empty cell for blank text.
func TextCell(s string) Cell {
	if s == "" {
		return Cell{DataType: DataTypeEmpty}
	}
	return Cell{Value: s, DataType: DataTypeString, DisplayValue: s}
}

// Table represents a table with cells organized in rows and columns
type Table struct {
	Rows      int               `json:"rows"`
	Columns   int               `json:"columns"`
	HasHeader bool              `json:"has_header"`
	Headers   []string          `json:"headers"`
	Data      [][]Cell          `json:"data"`
	Records   []map[string]Cell `json:"records"`
}

func (t *Table) Type() ElementType { return ElementTypeTable }

// GetText returns the display values, tab separated, one row per line.
func (t *Table) GetText() string {
	var sb strings.Builder
	for _, row := range t.Data {
		for j, cell := range row {
			sb.WriteString(cell.DisplayValue)
			if j < len(row)-1 {
				sb.WriteString("\t")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// MarshalJSON tags the table with its element kind.
func (t *Table) MarshalJSON() ([]byte, error) {
	type alias Table
	a := *(*alias)(t)
	if a.Headers == nil {
		a.Headers = []string{}
	}
	if a.Records == nil {
		a.Records = []map[string]Cell{}
	}
	if a.Data == nil {
		a.Data = [][]Cell{}
	}
	return json.Marshal(struct {
		Element string `json:"element"`
		alias
	}{"table", a})
}
