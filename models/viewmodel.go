package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RowView is a MisRow annotated with its view-time derived fields.
// Derived values are recomputed on every read and never persisted.
type RowView struct {
	*MisRow
	DueDate *time.Time      `json:"due_date"`
	Overdue bool            `json:"overdue"`
	Amount  decimal.Decimal `json:"amount"`
}

// BuildRowViews annotates a snapshot, preserving store order.
func BuildRowViews(rows []*MisRow, today time.Time) []*RowView {
	views := make([]*RowView, 0, len(rows))
	for _, row := range rows {
		var bl *time.Time
		if row.BlDate != nil {
			bl = row.BlDate.Time()
		}
		due := ComputeDueDate(bl, row.PaymentTermDays)
		views = append(views, &RowView{
			MisRow:  row,
			DueDate: due,
			Overdue: IsOverdue(due, row.PaymentStatus, today),
			Amount:  ComputeAmount(row.Rate, row.InvoiceQty),
		})
	}
	return views
}

// ViewCriteria is one user-supplied filter set. Zero value means
// "no criteria": ApplyCriteria is the identity then.
type ViewCriteria struct {
	Search          string
	Customers       []string
	TransportModes  []string
	PaymentStatuses []string
	DateFrom        *time.Time
	DateTo          *time.Time
}

func (c ViewCriteria) active() bool {
	return c.Search != "" || len(c.Customers) > 0 || len(c.TransportModes) > 0 ||
		len(c.PaymentStatuses) > 0 || c.DateFrom != nil || c.DateTo != nil
}

// ApplyCriteria reduces the snapshot to the rows matching every active
// criterion. The result is a stable subsequence of the input: relative
// order is never changed.
//
// The free-text search matches case-insensitively against the
// concatenation of all displayed fields. Categorical filters are OR
// within a field and AND across fields. The date range applies to the
// scadenza date, inclusive on both ends; rows without a parsable
// scadenza are excluded only while a range is active.
func ApplyCriteria(rows []*RowView, c ViewCriteria) []*RowView {
	if !c.active() {
		return rows
	}

	search := strings.ToLower(strings.TrimSpace(c.Search))
	out := make([]*RowView, 0, len(rows))
	for _, row := range rows {
		if search != "" && !strings.Contains(strings.ToLower(row.searchText()), search) {
			continue
		}
		if len(c.Customers) > 0 && !containsFold(c.Customers, row.Customer) {
			continue
		}
		if len(c.TransportModes) > 0 && !containsFold(c.TransportModes, string(row.TransportMode)) {
			continue
		}
		if len(c.PaymentStatuses) > 0 && !containsFold(c.PaymentStatuses, string(row.PaymentStatus)) {
			continue
		}
		if c.DateFrom != nil || c.DateTo != nil {
			if row.Scadenza == nil {
				continue
			}
			d := truncateToDate(*row.Scadenza.Time())
			if c.DateFrom != nil && d.Before(truncateToDate(*c.DateFrom)) {
				continue
			}
			if c.DateTo != nil && d.After(truncateToDate(*c.DateTo)) {
				continue
			}
		}
		out = append(out, row)
	}
	return out
}

func containsFold(values []string, v string) bool {
	for _, candidate := range values {
		if strings.EqualFold(candidate, v) {
			return true
		}
	}
	return false
}

// searchText is the concatenation of every displayed field, including
// the derived ones, so free text matches what the user sees.
func (r *RowView) searchText() string {
	due := ""
	if r.DueDate != nil {
		due = r.DueDate.Format("2006-01-02")
	}
	parts := []string{
		strconv.Itoa(r.Sr),
		r.Customer,
		r.FinancialYear,
		r.PoNo,
		r.PoDate.Format(),
		r.OcNo,
		r.OcDate.Format(),
		string(r.TransportMode),
		r.Scadenza.Format(),
		r.Description,
		r.Rate.String(),
		r.OrderedQty.String(),
		r.InvoiceNo,
		r.InvoiceQty.String(),
		r.InvoiceDate.Format(),
		r.BlDate.Format(),
		due,
		string(r.PaymentStatus),
		r.Remark,
		r.Amount.String(),
	}
	return strings.Join(parts, " ")
}
