package models

import (
	"errors"
)

// Company maps a logical company to its physical MIS table. All MIS row
// operations are parametrized by a Company; there is exactly one generic
// implementation of every operation, never a per-company copy.
type Company struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Table string `json:"-"`
}

var companies = []Company{
	{ID: "IPS", Name: "IPS INDUSTRIAL PACKAGING SOLUTION SRL", Table: "mis_rows_ips"},
	{ID: "TRIO", Name: "TRIOWORLD APELDOORN B.V.", Table: "mis_rows_trio"},
}

func AllCompanies() []Company {
	out := make([]Company, len(companies))
	copy(out, companies)
	return out
}

func GetCompany(id string) (Company, error) {
	for _, c := range companies {
		if c.ID == id {
			return c, nil
		}
	}
	return Company{}, errors.New("unknown company")
}

// CompaniesForRole returns the companies a role may operate on.
// ADMIN sees every company; other roles see exactly their own table.
func CompaniesForRole(role UserRole) []Company {
	if role == UserRoleAdmin {
		return AllCompanies()
	}
	for _, c := range companies {
		if c.ID == string(role) {
			return []Company{c}
		}
	}
	return nil
}

// ResolveCompanyForRole validates that the requested company is visible
// to the role. An empty request resolves to the role's only company when
// it has exactly one.
func ResolveCompanyForRole(role UserRole, companyId string) (Company, error) {
	visible := CompaniesForRole(role)
	if len(visible) == 0 {
		return Company{}, errors.New("role has no company access")
	}
	if companyId == "" {
		if len(visible) == 1 {
			return visible[0], nil
		}
		return Company{}, errors.New("company is required")
	}
	for _, c := range visible {
		if c.ID == companyId {
			return c, nil
		}
	}
	return Company{}, errors.New("company not accessible")
}
