package reports

import (
	"bytes"

	"bitbucket.org/mmdatafocus/mis_backend/utils"
	"github.com/go-pdf/fpdf"
)

// Layout parameters for the fixed-page export. Units are points.
const (
	pdfFontStart   = 10.0
	pdfFontMin     = 6.0
	pdfFontStep    = 0.5
	pdfCellPadding = 2.0
	pdfMinColWidth = 18.0
	pdfMaxColWidth = 120.0
	pdfFontFamily  = "Helvetica"
)

// MeasureFunc returns the rendered width of text at a font size.
// Production uses the PDF engine's own metrics; tests inject a cheap
// deterministic stand-in.
type MeasureFunc func(text string, fontSize float64) float64

// PdfLayout is one accepted fit: a font size and one width per column
// whose sum never exceeds the printable page width.
type PdfLayout struct {
	FontSize float64
	Widths   []float64
}

// FitColumns finds the largest font size at which every column fits the
// printable width. At each candidate size the widest cell of each
// column is measured, padded, and clamped into the per-column band so
// one outlier cell cannot blow out the whole layout. If no size down to
// the floor fits, equal widths at the floor size are used: that always
// terminates and always fits, trading readability for non-overlap.
func FitColumns(table *ExportTable, pageWidth float64, measure MeasureFunc) PdfLayout {
	cols := len(table.Headers)
	if cols == 0 {
		return PdfLayout{FontSize: pdfFontMin}
	}

	for size := pdfFontStart; size >= pdfFontMin-1e-9; size -= pdfFontStep {
		widths := make([]float64, cols)
		total := 0.0
		for c := 0; c < cols; c++ {
			w := measure(table.Headers[c], size)
			for _, row := range table.Rows {
				if c >= len(row) {
					continue
				}
				if m := measure(row[c], size); m > w {
					w = m
				}
			}
			w += 2 * pdfCellPadding
			if w < pdfMinColWidth {
				w = pdfMinColWidth
			}
			if w > pdfMaxColWidth {
				w = pdfMaxColWidth
			}
			widths[c] = w
			total += w
		}
		if total <= pageWidth {
			return PdfLayout{FontSize: size, Widths: widths}
		}
	}

	widths := make([]float64, cols)
	for c := range widths {
		widths[c] = pageWidth / float64(cols)
	}
	return PdfLayout{FontSize: pdfFontMin, Widths: widths}
}

// RenderPdf writes the table as a landscape document. Cell content is
// wrapped rather than clipped, the header row is repeated at the top of
// every physical page, and column widths come from FitColumns.
//
// A failing PDF engine degrades to RenderUnavailable; it never panics
// into the caller.
func RenderPdf(table *ExportTable) ([]byte, error) {
	pdf := fpdf.New("L", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)

	pageWidth, pageHeight := pdf.GetPageSize()
	left, top, right, bottom := pdf.GetMargins()
	printable := pageWidth - left - right

	measure := func(text string, fontSize float64) float64 {
		pdf.SetFont(pdfFontFamily, "", fontSize)
		return pdf.GetStringWidth(text)
	}
	layout := FitColumns(table, printable, measure)

	lineHeight := layout.FontSize * 1.2
	y := top

	// splitRow wraps every cell to its column width and returns the
	// shared row height.
	splitRow := func(cells []string, style string) ([][]string, float64) {
		pdf.SetFont(pdfFontFamily, style, layout.FontSize)
		lines := make([][]string, len(layout.Widths))
		maxLines := 1
		for c := range layout.Widths {
			text := ""
			if c < len(cells) {
				text = cells[c]
			}
			wrapped := pdf.SplitText(text, layout.Widths[c]-2*pdfCellPadding)
			if len(wrapped) == 0 {
				wrapped = []string{""}
			}
			lines[c] = wrapped
			if len(wrapped) > maxLines {
				maxLines = len(wrapped)
			}
		}
		return lines, float64(maxLines)*lineHeight + 2*pdfCellPadding
	}

	drawRow := func(lines [][]string, rowHeight float64) {
		x := left
		for c := range layout.Widths {
			pdf.Rect(x, y, layout.Widths[c], rowHeight, "D")
			for i, line := range lines[c] {
				baseline := y + pdfCellPadding + float64(i+1)*lineHeight - lineHeight*0.3
				pdf.Text(x+pdfCellPadding, baseline, line)
			}
			x += layout.Widths[c]
		}
		y += rowHeight
	}

	drawHeader := func() {
		lines, rowHeight := splitRow(table.Headers, "B")
		drawRow(lines, rowHeight)
		pdf.SetFont(pdfFontFamily, "", layout.FontSize)
	}

	pdf.AddPage()
	drawHeader()

	for _, row := range table.Rows {
		lines, rowHeight := splitRow(row, "")
		if y+rowHeight > pageHeight-bottom {
			pdf.AddPage()
			y = top
			drawHeader()
		}
		drawRow(lines, rowHeight)
	}

	if pdf.Err() {
		return nil, utils.ErrorRenderUnavailable
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, utils.ErrorRenderUnavailable
	}
	return buf.Bytes(), nil
}
