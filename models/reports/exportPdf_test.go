package reports

import (
	"bytes"
	"strings"
	"testing"
)

// charMeasure approximates text width as a fixed fraction of the font
// size per character. Deterministic and monotonic in both arguments,
// which is all the fit loop relies on.
func charMeasure(text string, fontSize float64) float64 {
	return float64(len(text)) * fontSize * 0.5
}

func smallTable() *ExportTable {
	return &ExportTable{
		Title:   "test",
		Headers: []string{"Sr", "Customer", "Description"},
		Rows: [][]string{
			{"1", "Acme", "first shipment"},
			{"2", "Beta Corp", "second shipment"},
		},
	}
}

func widthSum(widths []float64) float64 {
	total := 0.0
	for _, w := range widths {
		total += w
	}
	return total
}

func TestFitColumnsNeverExceedsPageWidth(t *testing.T) {
	pageWidth := 700.0
	layout := FitColumns(smallTable(), pageWidth, charMeasure)

	if len(layout.Widths) != 3 {
		t.Fatalf("expected 3 widths, got %d", len(layout.Widths))
	}
	if total := widthSum(layout.Widths); total > pageWidth {
		t.Fatalf("widths sum %f exceeds page width %f", total, pageWidth)
	}
	if layout.FontSize > pdfFontStart || layout.FontSize < pdfFontMin {
		t.Fatalf("font size %f outside [%f, %f]", layout.FontSize, pdfFontMin, pdfFontStart)
	}
}

func TestFitColumnsLongCellsFallBackToEqualWidths(t *testing.T) {
	// Eight columns pinned at the band maximum exceed 700pt at every
	// candidate font size, so only the equal-width fallback fits.
	long := strings.Repeat("x", 500)
	table := &ExportTable{
		Headers: []string{"A", "B", "C", "D", "E", "F", "G", "H"},
		Rows: [][]string{
			{long, long, long, long, long, long, long, long},
		},
	}
	pageWidth := 700.0

	layout := FitColumns(table, pageWidth, charMeasure)

	if total := widthSum(layout.Widths); total > pageWidth+1e-9 {
		t.Fatalf("fallback widths sum %f exceeds page width %f", total, pageWidth)
	}
	if layout.FontSize != pdfFontMin {
		t.Fatalf("expected floor font size %f, got %f", pdfFontMin, layout.FontSize)
	}
	for i, w := range layout.Widths {
		if w < pdfMinColWidth {
			t.Fatalf("column %d width %f below minimum %f", i, w, pdfMinColWidth)
		}
	}
}

func TestFitColumnsClampsOutlierColumns(t *testing.T) {
	table := &ExportTable{
		Headers: []string{"A", "B"},
		Rows: [][]string{
			{strings.Repeat("y", 200), "z"},
		},
	}

	layout := FitColumns(table, 10000, charMeasure)

	for i, w := range layout.Widths {
		if w > pdfMaxColWidth {
			t.Fatalf("column %d width %f exceeds band maximum %f", i, w, pdfMaxColWidth)
		}
		if w < pdfMinColWidth {
			t.Fatalf("column %d width %f below band minimum %f", i, w, pdfMinColWidth)
		}
	}
}

func TestFitColumnsIsDeterministic(t *testing.T) {
	pageWidth := 700.0
	first := FitColumns(smallTable(), pageWidth, charMeasure)
	second := FitColumns(smallTable(), pageWidth, charMeasure)

	if first.FontSize != second.FontSize {
		t.Fatalf("font sizes differ: %f vs %f", first.FontSize, second.FontSize)
	}
	for i := range first.Widths {
		if first.Widths[i] != second.Widths[i] {
			t.Fatalf("width %d differs: %f vs %f", i, first.Widths[i], second.Widths[i])
		}
	}
}

func TestFitColumnsEmptyTable(t *testing.T) {
	layout := FitColumns(&ExportTable{}, 700, charMeasure)
	if len(layout.Widths) != 0 {
		t.Fatalf("expected no widths for empty table, got %v", layout.Widths)
	}
}

func TestRenderPdfProducesDocument(t *testing.T) {
	data, err := RenderPdf(smallTable())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatal("output is not a PDF document")
	}
}

func TestRenderPdfManyRowsPaginates(t *testing.T) {
	table := smallTable()
	for i := 0; i < 200; i++ {
		table.Rows = append(table.Rows, []string{"9", "Filler", "row content"})
	}
	data, err := RenderPdf(table)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	// More than one page object in a 200-row landscape document.
	if bytes.Count(data, []byte("/Page")) < 2 {
		t.Fatal("expected a multi-page document")
	}
}

func TestRenderPdfHeaderOnly(t *testing.T) {
	table := &ExportTable{Headers: []string{"Sr", "Customer"}}
	data, err := RenderPdf(table)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected a non-empty document")
	}
}
