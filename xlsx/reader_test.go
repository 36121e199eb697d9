package xlsx

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsawler/docnorm/model"
)

type testSheet struct {
	name    string
	rows    string // <row> elements
	missing bool   // omit the worksheet part
}

type testWorkbook struct {
	sheets        []testSheet
	sharedStrings []string
	styles        string // xl/styles.xml, optional
	core          string // docProps/core.xml, optional
	date1904      bool
}

// createTestXLSX writes a minimal XLSX file to a temp dir and returns its path.
func createTestXLSX(t *testing.T, wb testWorkbook) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.xlsx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)

	writeZipFile(t, zw, "[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="xml" ContentType="application/xml"/>
</Types>`)

	var rels, sheets strings.Builder
	rels.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	for i, s := range wb.sheets {
		fmt.Fprintf(&rels, `<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="worksheets/sheet%d.xml"/>`, i+1, i+1)
		fmt.Fprintf(&sheets, `<sheet name="%s" sheetId="%d" r:id="rId%d"/>`, s.name, i+1, i+1)
	}
	rels.WriteString(`</Relationships>`)
	writeZipFile(t, zw, "xl/_rels/workbook.xml.rels", rels.String())

	pr := ""
	if wb.date1904 {
		pr = `<workbookPr date1904="1"/>`
	}
	writeZipFile(t, zw, "xl/workbook.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">`+
		pr+`<sheets>`+sheets.String()+`</sheets></workbook>`)

	if len(wb.sharedStrings) > 0 {
		var ss strings.Builder
		ss.WriteString(`<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">`)
		for _, s := range wb.sharedStrings {
			fmt.Fprintf(&ss, "<si><t>%s</t></si>", s)
		}
		ss.WriteString(`</sst>`)
		writeZipFile(t, zw, "xl/sharedStrings.xml", ss.String())
	}

	if wb.styles != "" {
		writeZipFile(t, zw, "xl/styles.xml", wb.styles)
	}
	if wb.core != "" {
		writeZipFile(t, zw, "docProps/core.xml", wb.core)
	}

	for i, s := range wb.sheets {
		if s.missing {
			continue
		}
		writeZipFile(t, zw, fmt.Sprintf("xl/worksheets/sheet%d.xml", i+1),
			`<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><sheetData>`+
				s.rows+`</sheetData></worksheet>`)
	}

	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to close zip writer: %v", err)
	}
	return path
}

func writeZipFile(t *testing.T, zw *zip.Writer, name, content string) {
	t.Helper()
	w, err := zw.Create(name)
	if err != nil {
		t.Fatalf("Failed to create %s in zip: %v", name, err)
	}
	if _, err := w.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
}

// nameAgeWorkbook is the Name/Age sheet with one data row.
func nameAgeWorkbook() testWorkbook {
	return testWorkbook{
		sheets: []testSheet{{
			name: "People",
			rows: `<row r="1"><c r="A1" t="s"><v>0</v></c><c r="B1" t="s"><v>1</v></c></row>
<row r="2"><c r="A2" t="s"><v>2</v></c><c r="B2"><v>36</v></c></row>`,
		}},
		sharedStrings: []string{"Name", "Age", "Ada"},
	}
}

func openTestXLSX(t *testing.T, wb testWorkbook) *Reader {
	t.Helper()
	r, err := Open(createTestXLSX(t, wb))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestOpen(t *testing.T) {
	r := openTestXLSX(t, nameAgeWorkbook())
	if r.SheetCount() != 1 {
		t.Errorf("SheetCount() = %d, want 1", r.SheetCount())
	}
	if names := r.SheetNames(); len(names) != 1 || names[0] != "People" {
		t.Errorf("SheetNames() = %v", names)
	}
}

func TestOpen_NotFound(t *testing.T) {
	if _, err := Open("/nonexistent/file.xlsx"); err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestOpen_InvalidZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.xlsx")
	os.WriteFile(path, []byte("not a zip file"), 0o644)

	if _, err := Open(path); err == nil {
		t.Error("Expected error for invalid ZIP")
	}
}

func TestOpen_MissingWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.xlsx")
	f, _ := os.Create(path)
	zw := zip.NewWriter(f)
	writeZipFile(t, zw, "[Content_Types].xml", `<Types/>`)
	zw.Close()
	f.Close()

	if _, err := Open(path); err == nil || !strings.Contains(err.Error(), "xl/workbook.xml") {
		t.Errorf("Open() error = %v, want missing workbook", err)
	}
}

func TestOpen_SkipsMissingSheet(t *testing.T) {
	wb := nameAgeWorkbook()
	wb.sheets = append(wb.sheets, testSheet{name: "Gone", missing: true})
	r := openTestXLSX(t, wb)

	if r.SheetCount() != 1 {
		t.Errorf("SheetCount() = %d, want 1", r.SheetCount())
	}
	skipped := r.Skipped()
	if len(skipped) != 1 || !strings.HasPrefix(skipped[0], "Gone:") {
		t.Errorf("Skipped() = %v", skipped)
	}
}

func TestOpen_NoReadableSheets(t *testing.T) {
	wb := testWorkbook{sheets: []testSheet{{name: "Gone", missing: true}}}
	if _, err := Open(createTestXLSX(t, wb)); err == nil {
		t.Error("Open() succeeded with no readable sheets")
	}
}

func TestReader_Close(t *testing.T) {
	r, err := Open(createTestXLSX(t, nameAgeWorkbook()))
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestReader_NameAgeCells(t *testing.T) {
	r := openTestXLSX(t, nameAgeWorkbook())
	sheet, err := r.Sheet(0)
	if err != nil {
		t.Fatal(err)
	}

	if sheet.RowCount() != 2 || sheet.ColCount() != 2 {
		t.Fatalf("dimensions = %dx%d, want 2x2", sheet.RowCount(), sheet.ColCount())
	}

	age := sheet.CellByRef("B2").Model()
	if age.Value != 36.0 || age.DataType != model.DataTypeNumeric || age.IsFormula {
		t.Errorf("B2 = %+v, want numeric 36 without formula", age)
	}
	if age.DisplayValue != "36" {
		t.Errorf("B2 display = %q, want 36", age.DisplayValue)
	}
	if name := sheet.CellByRef("A2").Model(); name.Value != "Ada" || name.DataType != model.DataTypeString {
		t.Errorf("A2 = %+v", name)
	}
	if sheet.FormulaCount != 0 {
		t.Errorf("FormulaCount = %d", sheet.FormulaCount)
	}
}

func TestReader_SheetByName(t *testing.T) {
	r := openTestXLSX(t, testWorkbook{sheets: []testSheet{
		{name: "First", rows: `<row r="1"><c r="A1" t="inlineStr"><is><t>a</t></is></c></row>`},
		{name: "Second", rows: `<row r="1"><c r="A1" t="inlineStr"><is><r><t>b</t></r><r><t>c</t></r></is></c></row>`},
	}})

	s, err := r.SheetByName("Second")
	if err != nil {
		t.Fatal(err)
	}
	if s.Index != 1 || s.Cell(0, 0).Value != "bc" {
		t.Errorf("Second sheet = index %d, A1 %q", s.Index, s.Cell(0, 0).Value)
	}
	if _, err := r.SheetByName("Missing"); err == nil {
		t.Error("SheetByName(Missing) succeeded")
	}
	if _, err := r.Sheet(5); err == nil {
		t.Error("Sheet(5) succeeded")
	}
}

func TestCellTypeHandling(t *testing.T) {
	r := openTestXLSX(t, testWorkbook{sheets: []testSheet{{
		name: "Types",
		rows: `<row r="1">
<c r="A1" t="b"><v>1</v></c>
<c r="B1" t="b"><v>0</v></c>
<c r="C1" t="e"><v>#DIV/0!</v></c>
<c r="D1" t="str"><f>CONCAT("a","b")</f><v>ab</v></c>
<c r="E1"><f>SUM(1,2)</f><v>3</v></c>
<c r="F1"><f t="shared" si="0"/><v>4</v></c>
<c r="G1"><v>2.5</v></c>
</row>`,
	}}})
	s, _ := r.Sheet(0)

	tests := []struct {
		ref       string
		wantType  CellType
		wantValue string
		formula   bool
	}{
		{"A1", CellTypeBoolean, "TRUE", false},
		{"B1", CellTypeBoolean, "FALSE", false},
		{"C1", CellTypeError, "#DIV/0!", false},
		{"D1", CellTypeString, "ab", true},
		{"E1", CellTypeNumber, "3", true},
		{"F1", CellTypeNumber, "4", true},
		{"G1", CellTypeNumber, "2.5", false},
	}
	for _, tt := range tests {
		c := s.CellByRef(tt.ref)
		if c.Type != tt.wantType || c.Value != tt.wantValue || c.IsFormula != tt.formula {
			t.Errorf("%s = {%v %q formula=%v}, want {%v %q formula=%v}",
				tt.ref, c.Type, c.Value, c.IsFormula, tt.wantType, tt.wantValue, tt.formula)
		}
	}
	if s.FormulaCount != 3 {
		t.Errorf("FormulaCount = %d, want 3", s.FormulaCount)
	}
	if f := s.CellByRef("E1").Model().Formula; f != "=SUM(1,2)" {
		t.Errorf("E1 formula = %q", f)
	}
	if b := s.CellByRef("B1").Model(); b.Value != false {
		t.Errorf("B1 value = %#v, want false", b.Value)
	}
}

const dateStyles = `<styleSheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
<numFmts count="2">
  <numFmt numFmtId="164" formatCode="yyyy\-mm\-dd\ hh:mm"/>
  <numFmt numFmtId="165" formatCode="&quot;Qty&quot;\ 0"/>
</numFmts>
<cellXfs count="5">
  <xf numFmtId="0"/>
  <xf numFmtId="14"/>
  <xf numFmtId="164"/>
  <xf numFmtId="21"/>
  <xf numFmtId="165"/>
</cellXfs>
</styleSheet>`

func TestDateCells(t *testing.T) {
	r := openTestXLSX(t, testWorkbook{
		styles: dateStyles,
		sheets: []testSheet{{
			name: "Dates",
			rows: `<row r="1">
<c r="A1" s="1"><v>45306</v></c>
<c r="B1" s="2"><v>45306.5</v></c>
<c r="C1" s="3"><v>0.75</v></c>
<c r="D1" s="4"><v>12</v></c>
<c r="E1" t="d"><v>2024-01-15T00:00:00</v></c>
</row>`,
		}},
	})
	s, _ := r.Sheet(0)

	want := map[string]string{
		"A1": "2024-01-15",
		"B1": "2024-01-15T12:00:00",
		"C1": "18:00:00",
		"E1": "2024-01-15T00:00:00",
	}
	for ref, v := range want {
		c := s.CellByRef(ref)
		if c.Type != CellTypeDate || c.Value != v {
			t.Errorf("%s = {%v %q}, want date %q", ref, c.Type, c.Value, v)
		}
		if m := c.Model(); m.DataType != model.DataTypeDateTime || m.Value != v {
			t.Errorf("%s model = %+v", ref, m)
		}
	}
	if c := s.CellByRef("D1"); c.Type != CellTypeNumber {
		t.Errorf("D1 with quoted literal format = %v, want number", c.Type)
	}
}

func TestDate1904(t *testing.T) {
	r := openTestXLSX(t, testWorkbook{
		date1904: true,
		styles:   dateStyles,
		sheets:   []testSheet{{name: "S", rows: `<row r="1"><c r="A1" s="1"><v>0</v></c></row>`}},
	})
	s, _ := r.Sheet(0)
	if got := s.CellByRef("A1").Value; got != "1904-01-01" {
		t.Errorf("A1 = %q, want 1904-01-01", got)
	}
}

func TestSparseRowsAndCells(t *testing.T) {
	r := openTestXLSX(t, testWorkbook{sheets: []testSheet{{
		name: "Sparse",
		rows: `<row r="2"><c r="C2"><v>1</v></c></row><row><c><v>2</v></c><c><v>3</v></c></row>`,
	}}})
	s, _ := r.Sheet(0)

	if s.RowCount() != 3 || s.ColCount() != 3 {
		t.Fatalf("dimensions = %dx%d, want 3x3", s.RowCount(), s.ColCount())
	}
	if s.Cell(0, 0).Type != CellTypeEmpty {
		t.Errorf("A1 should be empty")
	}
	if s.CellByRef("C2").Value != "1" || s.CellByRef("A3").Value != "2" || s.CellByRef("B3").Value != "3" {
		t.Errorf("unexpected sparse grid: %q", s.Text())
	}
}

func TestBlankCellsDoNotWidenGrid(t *testing.T) {
	r := openTestXLSX(t, testWorkbook{sheets: []testSheet{{
		name: "Styled",
		rows: `<row r="1"><c r="A1" t="inlineStr"><is><t>x</t></is></c><c r="B1" s="1"/><c r="Z1" s="1"/></row>
<row r="40"><c r="A40" s="1"/></row>`,
	}}})
	s, _ := r.Sheet(0)

	if s.RowCount() != 1 || s.ColCount() != 1 {
		t.Errorf("dimensions = %dx%d, want 1x1", s.RowCount(), s.ColCount())
	}
}

func TestOversizedSheetSkipped(t *testing.T) {
	r := openTestXLSX(t, testWorkbook{sheets: []testSheet{
		{name: "Huge", rows: `<row r="1"><c r="A1"><v>1</v></c></row><row r="1048576"><c r="XFD1048576"><v>2</v></c></row>`},
		{name: "Small", rows: `<row r="1"><c r="A1"><v>1</v></c></row>`},
		{name: "Beyond", rows: `<row r="1"><c r="XFE1"><v>1</v></c></row>`},
	}})

	if r.SheetCount() != 1 {
		t.Fatalf("SheetCount() = %d, want 1", r.SheetCount())
	}
	if s, _ := r.Sheet(0); s.Name != "Small" {
		t.Errorf("sheet = %q, want Small", s.Name)
	}
	skipped := r.Skipped()
	if len(skipped) != 2 || !strings.HasPrefix(skipped[0], "Huge: ") || !strings.HasPrefix(skipped[1], "Beyond: ") {
		t.Errorf("Skipped() = %q", skipped)
	}
}

func TestReader_Metadata(t *testing.T) {
	wb := nameAgeWorkbook()
	wb.core = `<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/">
<dc:title>Roster</dc:title><dc:creator>Grace</dc:creator><dc:subject>Staff</dc:subject>
<dcterms:created>2024-01-02T03:04:05Z</dcterms:created><dcterms:modified>2024-02-03T04:05:06Z</dcterms:modified>
</cp:coreProperties>`
	r := openTestXLSX(t, wb)

	meta := r.Metadata()
	if meta.Title != "Roster" || meta.Author != "Grace" || meta.Subject != "Staff" {
		t.Errorf("Metadata() = %+v", meta)
	}
	if meta.Created != "2024-01-02T03:04:05Z" || meta.Modified != "2024-02-03T04:05:06Z" {
		t.Errorf("timestamps = %q / %q", meta.Created, meta.Modified)
	}
}

func TestSheet_Grid(t *testing.T) {
	r := openTestXLSX(t, nameAgeWorkbook())
	s, _ := r.Sheet(0)

	grid := s.Grid()
	if len(grid) != 2 || len(grid[0]) != 2 {
		t.Fatalf("grid = %v", grid)
	}
	if grid[0][0].DisplayValue != "Name" || grid[1][1].Value != 36.0 {
		t.Errorf("grid = %+v", grid)
	}
	if got := s.Text(); got != "Name\tAge\nAda\t36\n" {
		t.Errorf("Text() = %q", got)
	}
}
