package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ComputeDueDate returns blDate + termDays calendar days, or nil when
// either input is missing. Malformed entry data never errors here; it
// simply yields an absent due date.
func ComputeDueDate(blDate *time.Time, termDays *int) *time.Time {
	if blDate == nil || termDays == nil {
		return nil
	}
	due := blDate.AddDate(0, 0, *termDays)
	return &due
}

// IsOverdue is the view-time predicate: payment still outstanding and
// today strictly past the due date. Paid rows and rows without a due
// date are never overdue. Compared at date precision.
func IsOverdue(dueDate *time.Time, paymentStatus YesNo, today time.Time) bool {
	if paymentStatus == Yes {
		return false
	}
	if dueDate == nil {
		return false
	}
	t := truncateToDate(today)
	d := truncateToDate(*dueDate)
	return t.After(d)
}

// ComputeAmount is rate x invoice quantity. Zero-valued decimals cover
// the missing/non-numeric input cases upstream parsing maps to zero.
func ComputeAmount(rate decimal.Decimal, qty decimal.Decimal) decimal.Decimal {
	return rate.Mul(qty)
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
