package reports

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

func TestExcelColumnWidth(t *testing.T) {
	table := &ExportTable{
		Headers: []string{"Customer", "X"},
		Rows: [][]string{
			{"Acme", "a"},
			{"A very long customer name", "b"},
		},
	}

	// Longest cell wins over the header.
	if got := excelColumnWidth(table, 0); got != len("A very long customer name")+excelColPadding {
		t.Fatalf("unexpected width %d", got)
	}
	// Header wins when cells are shorter.
	if got := excelColumnWidth(table, 1); got != len("X")+excelColPadding {
		t.Fatalf("unexpected width %d", got)
	}
}

// Accented text is wider in bytes than in characters; the width must
// follow the character count.
func TestExcelColumnWidthCountsCharacters(t *testing.T) {
	remark := "qualità già verificata però"
	table := &ExportTable{
		Headers: []string{"Remark"},
		Rows:    [][]string{{remark}},
	}
	want := utf8.RuneCountInString(remark) + excelColPadding
	if want == len(remark)+excelColPadding {
		t.Fatal("fixture must contain multibyte characters")
	}
	if got := excelColumnWidth(table, 0); got != want {
		t.Fatalf("expected width %d, got %d", want, got)
	}
}

func TestExcelColumnWidthIsCapped(t *testing.T) {
	table := &ExportTable{
		Headers: []string{"Remark"},
		Rows:    [][]string{{strings.Repeat("x", 500)}},
	}
	if got := excelColumnWidth(table, 0); got != excelMaxColWidth {
		t.Fatalf("expected cap %d, got %d", excelMaxColWidth, got)
	}
}

func TestRenderExcelRoundTrip(t *testing.T) {
	table := smallTable()
	data, err := RenderExcel(table)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a valid workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(excelSheetName)
	if err != nil {
		t.Fatalf("missing sheet: %v", err)
	}
	if len(rows) != len(table.Rows)+1 {
		t.Fatalf("expected %d rows, got %d", len(table.Rows)+1, len(rows))
	}
	for i, h := range table.Headers {
		if rows[0][i] != h {
			t.Fatalf("header %d: expected %q, got %q", i, h, rows[0][i])
		}
	}
	if rows[1][1] != "Acme" {
		t.Fatalf("expected first data row to carry Acme, got %q", rows[1][1])
	}
}

func TestRenderExcelEmptyTable(t *testing.T) {
	table := &ExportTable{Headers: []string{"Sr", "Customer"}}
	data, err := RenderExcel(table)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected a non-empty workbook")
	}
}
