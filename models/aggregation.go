package models

import (
	"github.com/shopspring/decimal"
)

// GroupSumRow is one (key, sum) pair for chart/table consumption.
type GroupSumRow struct {
	Key string          `json:"key"`
	Sum decimal.Decimal `json:"sum"`
}

// GroupSum groups items by keyFn and sums valueFn per key. Keys keep
// first-seen order: the dashboard shows category breakdowns, where a
// stable order matters more than top-N ranking.
func GroupSum[T any](items []T, keyFn func(T) string, valueFn func(T) decimal.Decimal) []GroupSumRow {
	sums := make(map[string]decimal.Decimal)
	order := make([]string, 0)
	for _, item := range items {
		key := keyFn(item)
		if _, seen := sums[key]; !seen {
			order = append(order, key)
		}
		sums[key] = sums[key].Add(valueFn(item))
	}

	out := make([]GroupSumRow, 0, len(order))
	for _, key := range order {
		out = append(out, GroupSumRow{Key: key, Sum: sums[key]})
	}
	return out
}

// DashboardReport carries the KPI numbers and chart rows for the
// currently filtered view.
type DashboardReport struct {
	TotalRecords     int             `json:"total_records"`
	TotalOrderedQty  decimal.Decimal `json:"total_ordered_qty"`
	OpenCount        int             `json:"open_count"`
	OverdueCount     int             `json:"overdue_count"`
	AmountByCustomer []GroupSumRow   `json:"amount_by_customer"`
	QtyByTransport   []GroupSumRow   `json:"qty_by_transport"`
	StatusCounts     []GroupSumRow   `json:"status_counts"`
}

func BuildDashboard(rows []*RowView) *DashboardReport {
	report := &DashboardReport{
		TotalRecords:    len(rows),
		TotalOrderedQty: decimal.Zero,
	}
	for _, row := range rows {
		report.TotalOrderedQty = report.TotalOrderedQty.Add(row.OrderedQty)
		if row.PaymentStatus != Yes {
			report.OpenCount++
		}
		if row.Overdue {
			report.OverdueCount++
		}
	}

	report.AmountByCustomer = GroupSum(rows,
		func(r *RowView) string { return r.Customer },
		func(r *RowView) decimal.Decimal { return r.Amount })
	report.QtyByTransport = GroupSum(rows,
		func(r *RowView) string { return string(r.TransportMode) },
		func(r *RowView) decimal.Decimal { return r.OrderedQty })
	report.StatusCounts = GroupSum(rows,
		func(r *RowView) string { return string(r.PaymentStatus) },
		func(r *RowView) decimal.Decimal { return decimal.NewFromInt(1) })

	return report
}
