package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func viewRow(customer string, rate int64, invQty int64) *RowView {
	row := &MisRow{
		Customer:   customer,
		Rate:       decimal.NewFromInt(rate),
		InvoiceQty: decimal.NewFromInt(invQty),
	}
	return &RowView{
		MisRow: row,
		Amount: ComputeAmount(row.Rate, row.InvoiceQty),
	}
}

func TestGroupSumByCustomer(t *testing.T) {
	rows := []*RowView{
		viewRow("A", 2, 10),
		viewRow("A", 2, 5),
		viewRow("B", 10, 1),
	}

	got := GroupSum(rows,
		func(r *RowView) string { return r.Customer },
		func(r *RowView) decimal.Decimal { return r.Amount })

	if len(got) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(got))
	}
	if got[0].Key != "A" || !got[0].Sum.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("expected (A, 30), got (%s, %s)", got[0].Key, got[0].Sum)
	}
	if got[1].Key != "B" || !got[1].Sum.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("expected (B, 10), got (%s, %s)", got[1].Key, got[1].Sum)
	}
}

func TestGroupSumConservation(t *testing.T) {
	rows := []*RowView{
		viewRow("A", 3, 7),
		viewRow("B", 5, 2),
		viewRow("C", 1, 11),
		viewRow("A", 4, 4),
	}

	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Amount)
	}

	grouped := GroupSum(rows,
		func(r *RowView) string { return r.Customer },
		func(r *RowView) decimal.Decimal { return r.Amount })

	groupedTotal := decimal.Zero
	for _, g := range grouped {
		groupedTotal = groupedTotal.Add(g.Sum)
	}

	if !total.Equal(groupedTotal) {
		t.Fatalf("group sums must conserve the total: %s != %s", groupedTotal, total)
	}
}

func TestGroupSumEmptyInput(t *testing.T) {
	got := GroupSum([]*RowView{},
		func(r *RowView) string { return r.Customer },
		func(r *RowView) decimal.Decimal { return r.Amount })
	if len(got) != 0 {
		t.Fatalf("expected no groups, got %v", got)
	}
}

func TestBuildDashboard(t *testing.T) {
	paid := viewRow("A", 2, 10)
	paid.PaymentStatus = Yes
	open := viewRow("B", 10, 1)
	open.PaymentStatus = No
	overdue := viewRow("B", 1, 1)
	overdue.PaymentStatus = No
	overdue.Overdue = true

	report := BuildDashboard([]*RowView{paid, open, overdue})

	if report.TotalRecords != 3 {
		t.Fatalf("expected 3 records, got %d", report.TotalRecords)
	}
	if report.OpenCount != 2 {
		t.Fatalf("expected 2 open rows, got %d", report.OpenCount)
	}
	if report.OverdueCount != 1 {
		t.Fatalf("expected 1 overdue row, got %d", report.OverdueCount)
	}
	if len(report.AmountByCustomer) != 2 {
		t.Fatalf("expected 2 customer groups, got %d", len(report.AmountByCustomer))
	}
	if len(report.StatusCounts) != 2 {
		t.Fatalf("expected 2 status groups, got %d", len(report.StatusCounts))
	}
	for _, g := range report.StatusCounts {
		switch g.Key {
		case string(Yes):
			if !g.Sum.Equal(decimal.NewFromInt(1)) {
				t.Fatalf("expected 1 paid row, got %s", g.Sum)
			}
		case string(No):
			if !g.Sum.Equal(decimal.NewFromInt(2)) {
				t.Fatalf("expected 2 unpaid rows, got %s", g.Sum)
			}
		default:
			t.Fatalf("unexpected status group %q", g.Key)
		}
	}
}
