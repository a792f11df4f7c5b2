package models

import "testing"

func TestCompaniesForRole(t *testing.T) {
	if got := CompaniesForRole(UserRoleAdmin); len(got) != 2 {
		t.Fatalf("admin must see every company, got %d", len(got))
	}
	got := CompaniesForRole(UserRoleIPS)
	if len(got) != 1 || got[0].ID != "IPS" {
		t.Fatalf("IPS role must see only IPS, got %v", got)
	}
}

func TestResolveCompanyForRole(t *testing.T) {
	// Single-company roles resolve an empty request to their own table.
	c, err := ResolveCompanyForRole(UserRoleTrio, "")
	if err != nil || c.ID != "TRIO" {
		t.Fatalf("expected TRIO, got %v (%v)", c, err)
	}

	// Admins must name the company.
	if _, err := ResolveCompanyForRole(UserRoleAdmin, ""); err == nil {
		t.Fatal("admin with no company must be rejected")
	}
	c, err = ResolveCompanyForRole(UserRoleAdmin, "IPS")
	if err != nil || c.Table != "mis_rows_ips" {
		t.Fatalf("expected mis_rows_ips, got %v (%v)", c, err)
	}

	// Cross-company access is denied.
	if _, err := ResolveCompanyForRole(UserRoleIPS, "TRIO"); err == nil {
		t.Fatal("IPS role must not resolve TRIO")
	}
}
