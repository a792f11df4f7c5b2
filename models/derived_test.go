package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeDueDate(t *testing.T) {
	bl := date(2024, time.January, 1)
	term := 30

	due := ComputeDueDate(&bl, &term)
	if due == nil {
		t.Fatal("expected a due date")
	}
	if !due.Equal(date(2024, time.January, 31)) {
		t.Fatalf("expected 2024-01-31, got %v", due)
	}

	if ComputeDueDate(nil, &term) != nil {
		t.Fatal("missing BL date must yield no due date")
	}
	if ComputeDueDate(&bl, nil) != nil {
		t.Fatal("missing term must yield no due date")
	}
	if ComputeDueDate(nil, nil) != nil {
		t.Fatal("missing both inputs must yield no due date")
	}
}

func TestIsOverdue(t *testing.T) {
	due := date(2024, time.January, 31)
	today := date(2024, time.February, 1)

	cases := []struct {
		name   string
		due    *time.Time
		status YesNo
		today  time.Time
		want   bool
	}{
		{"past due and unpaid", &due, No, today, true},
		{"past due but paid", &due, Yes, today, false},
		{"no due date", nil, No, today, false},
		{"no due date and paid", nil, Yes, today, false},
		{"due today is not overdue", &due, No, due, false},
		{"day before due", &due, No, date(2024, time.January, 30), false},
	}
	for _, tc := range cases {
		if got := IsOverdue(tc.due, tc.status, tc.today); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestIsOverdueComparesAtDatePrecision(t *testing.T) {
	due := date(2024, time.January, 31)
	lateOnDueDay := time.Date(2024, time.January, 31, 23, 59, 0, 0, time.UTC)
	if IsOverdue(&due, No, lateOnDueDay) {
		t.Fatal("same calendar day must not be overdue regardless of time of day")
	}
}

func TestComputeAmount(t *testing.T) {
	rate := decimal.NewFromInt(2)
	qty := decimal.NewFromInt(10)
	if got := ComputeAmount(rate, qty); !got.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("expected 20, got %s", got)
	}
	if got := ComputeAmount(decimal.Zero, qty); !got.IsZero() {
		t.Fatalf("zero rate must yield zero amount, got %s", got)
	}
}
