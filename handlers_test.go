package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func queryContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/records?"+rawQuery, nil)
	return c
}

func TestCriteriaFromQueryBindsAllFilters(t *testing.T) {
	c := queryContext(t, "search=acme&customer=Acme&transport=SEA&payment=NO&from=2026-01-01&to=2026-03-31")
	crit := criteriaFromQuery(c)

	if crit.Search != "acme" {
		t.Fatalf("expected search 'acme', got %q", crit.Search)
	}
	if len(crit.Customers) != 1 || crit.Customers[0] != "Acme" {
		t.Fatalf("unexpected customers %v", crit.Customers)
	}
	if len(crit.TransportModes) != 1 || crit.TransportModes[0] != "SEA" {
		t.Fatalf("unexpected transport modes %v", crit.TransportModes)
	}
	if len(crit.PaymentStatuses) != 1 || crit.PaymentStatuses[0] != "NO" {
		t.Fatalf("unexpected payment statuses %v", crit.PaymentStatuses)
	}
	if crit.DateFrom == nil || crit.DateTo == nil {
		t.Fatal("expected both range bounds to be set")
	}
}

// "status" is accepted as an alias of the payment filter and merges
// with explicit "payment" values.
func TestCriteriaFromQueryStatusAliasesPayment(t *testing.T) {
	c := queryContext(t, "status=YES")
	crit := criteriaFromQuery(c)
	if len(crit.PaymentStatuses) != 1 || crit.PaymentStatuses[0] != "YES" {
		t.Fatalf("unexpected payment statuses %v", crit.PaymentStatuses)
	}

	c = queryContext(t, "payment=NO&status=YES")
	crit = criteriaFromQuery(c)
	if len(crit.PaymentStatuses) != 2 {
		t.Fatalf("expected merged payment statuses, got %v", crit.PaymentStatuses)
	}
}

func TestIntQueryDefaults(t *testing.T) {
	cases := []struct {
		query string
		want  int
	}{
		{"", 10},
		{"page_size=25", 25},
		{"page_size=abc", 10},
		{"page_size=%20", 10},
	}
	for _, tc := range cases {
		c := queryContext(t, tc.query)
		if got := intQuery(c, "page_size", 10); got != tc.want {
			t.Fatalf("query %q: expected %d, got %d", tc.query, tc.want, got)
		}
	}
}
