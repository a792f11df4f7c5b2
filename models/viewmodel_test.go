package models

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func sampleRows() []*MisRow {
	term := 30
	return []*MisRow{
		{
			ID: 1, Sr: 1, Customer: "Acme", TransportMode: TransportModeSea,
			Scadenza:      NewDateString(date(2024, time.March, 10)),
			Rate:          decimal.NewFromInt(2),
			InvoiceQty:    decimal.NewFromInt(10),
			BlDate:        NewDateString(date(2024, time.January, 1)),
			PaymentTermDays: &term,
			PaymentStatus: No,
		},
		{
			ID: 2, Sr: 2, Customer: "Beta Corp", TransportMode: TransportModeAir,
			Scadenza:      NewDateString(date(2024, time.April, 20)),
			Rate:          decimal.NewFromInt(5),
			InvoiceQty:    decimal.NewFromInt(3),
			PaymentStatus: Yes,
		},
		{
			ID: 3, Sr: 3, Customer: "Acme", TransportMode: TransportModeSea,
			Description:   "spare parts shipment",
			PaymentStatus: No,
		},
	}
}

func TestBuildRowViewsAnnotatesDerivedFields(t *testing.T) {
	today := date(2024, time.February, 1)
	views := BuildRowViews(sampleRows(), today)

	if len(views) != 3 {
		t.Fatalf("expected 3 views, got %d", len(views))
	}
	if views[0].DueDate == nil || !views[0].DueDate.Equal(date(2024, time.January, 31)) {
		t.Fatalf("expected due date 2024-01-31, got %v", views[0].DueDate)
	}
	if !views[0].Overdue {
		t.Fatal("row 1 must be overdue on 2024-02-01")
	}
	if !views[0].Amount.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("expected amount 20, got %s", views[0].Amount)
	}
	if views[2].DueDate != nil {
		t.Fatal("row without BL date must have no due date")
	}
	if views[2].Overdue {
		t.Fatal("row without due date must not be overdue")
	}
}

func TestApplyCriteriaNoCriteriaIsIdentity(t *testing.T) {
	views := BuildRowViews(sampleRows(), date(2024, time.February, 1))
	got := ApplyCriteria(views, ViewCriteria{})
	if len(got) != len(views) {
		t.Fatalf("no criteria must pass all rows: got %d of %d", len(got), len(views))
	}
	for i := range got {
		if got[i] != views[i] {
			t.Fatalf("identity filter must preserve order at index %d", i)
		}
	}
}

func TestApplyCriteriaFreeTextSearch(t *testing.T) {
	views := BuildRowViews(sampleRows(), date(2024, time.February, 1))

	got := ApplyCriteria(views, ViewCriteria{Search: "SPARE"})
	if len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("expected only row 3, got %v", got)
	}

	// Derived fields are searchable too.
	got = ApplyCriteria(views, ViewCriteria{Search: "2024-01-31"})
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("due date must be searchable, got %v", got)
	}
}

func TestApplyCriteriaCategoricalFilters(t *testing.T) {
	views := BuildRowViews(sampleRows(), date(2024, time.February, 1))

	got := ApplyCriteria(views, ViewCriteria{Customers: []string{"acme"}})
	if len(got) != 2 {
		t.Fatalf("customer filter is case-insensitive, expected 2 rows, got %d", len(got))
	}

	// AND across fields, OR within a field.
	got = ApplyCriteria(views, ViewCriteria{
		Customers:       []string{"Acme", "Beta Corp"},
		TransportModes:  []string{"SEA"},
		PaymentStatuses: []string{"NO"},
	})
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Fatalf("expected rows 1 and 3, got %v", got)
	}
}

func TestApplyCriteriaDateRange(t *testing.T) {
	views := BuildRowViews(sampleRows(), date(2024, time.February, 1))

	from := date(2024, time.March, 10)
	to := date(2024, time.April, 20)
	got := ApplyCriteria(views, ViewCriteria{DateFrom: &from, DateTo: &to})

	// Inclusive on both ends; the row without a scadenza is excluded
	// while a range is active.
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("expected rows 1 and 2, got %v", got)
	}

	later := date(2024, time.April, 1)
	got = ApplyCriteria(views, ViewCriteria{DateFrom: &later})
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("expected only row 2, got %v", got)
	}
}

func TestApplyCriteriaOutputIsVerifiableSubsequence(t *testing.T) {
	views := BuildRowViews(sampleRows(), date(2024, time.February, 1))
	crit := ViewCriteria{Search: "acme", PaymentStatuses: []string{"NO"}}
	got := ApplyCriteria(views, crit)

	// Subsequence: relative order of survivors matches the input.
	idx := 0
	for _, v := range got {
		found := false
		for ; idx < len(views); idx++ {
			if views[idx] == v {
				found = true
				idx++
				break
			}
		}
		if !found {
			t.Fatal("output is not a subsequence of the input")
		}
	}

	// Every survivor satisfies every active predicate.
	for _, v := range got {
		if !strings.Contains(strings.ToLower(v.searchText()), "acme") {
			t.Fatalf("row %d fails the search predicate", v.ID)
		}
		if v.PaymentStatus != No {
			t.Fatalf("row %d fails the payment filter", v.ID)
		}
	}
}

func TestApplyCriteriaEmptyInput(t *testing.T) {
	got := ApplyCriteria([]*RowView{}, ViewCriteria{Search: "anything"})
	if len(got) != 0 {
		t.Fatalf("empty input must yield empty output, got %v", got)
	}
}
