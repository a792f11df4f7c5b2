package reports

import (
	"strconv"
	"time"

	"bitbucket.org/mmdatafocus/mis_backend/models"
)

// ExportTable is the render-ready form of the currently filtered view:
// a header row plus one string row per record. Both export formats
// consume this, so what the user downloads is exactly what the table
// screen shows, derived columns included.
type ExportTable struct {
	Title   string     `json:"title"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

var exportHeaders = []string{
	"Sr",
	"Customer",
	"Financial Year",
	"PO No",
	"PO Date",
	"OC No",
	"OC Date",
	"Transport",
	"Scadenza",
	"Description",
	"Rate",
	"Ordered Qty",
	"Invoice No",
	"Invoice Qty",
	"Invoice Date",
	"BL Date",
	"Term Days",
	"Due Date",
	"Payment",
	"Amount",
	"Invoice Doc",
	"Packing List",
	"COA",
	"Health Cert",
	"Origin Cert",
	"Insurance",
	"Remark",
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatTermDays(days *int) string {
	if days == nil {
		return ""
	}
	return strconv.Itoa(*days)
}

// BuildExportTable flattens annotated rows into strings, preserving the
// order the caller already filtered and sorted.
func BuildExportTable(company models.Company, views []*models.RowView) *ExportTable {
	table := &ExportTable{
		Title:   company.Name,
		Headers: exportHeaders,
		Rows:    make([][]string, 0, len(views)),
	}
	for _, v := range views {
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(v.Sr),
			v.Customer,
			v.FinancialYear,
			v.PoNo,
			v.PoDate.Format(),
			v.OcNo,
			v.OcDate.Format(),
			string(v.TransportMode),
			v.Scadenza.Format(),
			v.Description,
			v.Rate.String(),
			v.OrderedQty.String(),
			v.InvoiceNo,
			v.InvoiceQty.String(),
			v.InvoiceDate.Format(),
			v.BlDate.Format(),
			formatTermDays(v.PaymentTermDays),
			formatDate(v.DueDate),
			string(v.PaymentStatus),
			v.Amount.String(),
			string(v.DocInvoice),
			string(v.DocPackingList),
			string(v.DocCoa),
			string(v.DocHealthCert),
			string(v.DocOriginCert),
			string(v.DocInsurance),
			v.Remark,
		})
	}
	return table
}
