package reports

import (
	"bytes"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

const (
	excelSheetName   = "MIS Data"
	excelColPadding  = 2
	excelMaxColWidth = 60
)

// RenderExcel writes the table as one sheet: a header row, one row per
// record, and auto-sized columns. A column is as wide as its longest
// cell (or its header, whichever is longer) plus padding, capped so a
// single long remark cannot produce a degenerate layout.
func RenderExcel(table *ExportTable) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(excelSheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for c, h := range table.Headers {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(excelSheetName, cell, h); err != nil {
			return nil, err
		}
	}

	for r, row := range table.Rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(excelSheetName, cell, value); err != nil {
				return nil, err
			}
		}
	}

	for c := range table.Headers {
		width := excelColumnWidth(table, c)
		name, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(excelSheetName, name, name, float64(width)); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Width is measured in characters, not bytes, so accented text does not
// inflate the column.
func excelColumnWidth(table *ExportTable, col int) int {
	width := utf8.RuneCountInString(table.Headers[col])
	for _, row := range table.Rows {
		if col < len(row) {
			if n := utf8.RuneCountInString(row[col]); n > width {
				width = n
			}
		}
	}
	width += excelColPadding
	if width > excelMaxColWidth {
		width = excelMaxColWidth
	}
	return width
}
