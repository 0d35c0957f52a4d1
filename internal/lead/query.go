package lead

import (
	"cmp"
	"slices"
	"strings"
)

// BranchKeywords mark a company name or address as a branch office rather
// than a head office.
var BranchKeywords = []string{
	"営業所", "支店", "出張所", "サービスセンター", "営業部", "支社", "営業拠点",
}

// IsBranchOffice reports whether r's company name or address contains a
// branch keyword.
func IsBranchOffice(r Record) bool {
	for _, kw := range BranchKeywords {
		if strings.Contains(r.CompanyName, kw) || strings.Contains(r.Address, kw) {
			return true
		}
	}
	return false
}

// Filter is a conjunction of optional predicates. Zero-valued fields
// match everything.
type Filter struct {
	Text            string        // substring of company, contact, industry, email or phone
	Status          Status        // exact status
	Industry        string        // exact industry
	ProspectLevel   ProspectLevel // exact prospect level
	ExcludeBranches bool
}

// Match reports whether r satisfies every set predicate.
func (f Filter) Match(r Record) bool {
	if f.Text != "" {
		needle := fold(f.Text)
		hit := false
		for _, field := range []string{r.CompanyName, r.ContactPerson, r.Industry, r.Email, r.Phone} {
			if strings.Contains(fold(field), needle) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	if f.Industry != "" && r.Industry != f.Industry {
		return false
	}
	if f.ProspectLevel != "" && r.ProspectLevel != f.ProspectLevel {
		return false
	}
	if f.ExcludeBranches && IsBranchOffice(r) {
		return false
	}
	return true
}

// SortField names a sortable record attribute.
type SortField string

const (
	SortNone          SortField = ""
	SortCompanyName   SortField = "companyName"
	SortContactPerson SortField = "contactPerson"
	SortIndustry      SortField = "industry"
	SortPhone         SortField = "phone"
	SortEmail         SortField = "email"
	SortAddress       SortField = "address"
	SortStatus        SortField = "status"
	SortProspectLevel SortField = "prospectLevel"
	SortLastContact   SortField = "lastContact"
	SortCreatedAt     SortField = "createdAt"
	SortUpdatedAt     SortField = "updatedAt"
)

var sortFields = []SortField{
	SortCompanyName, SortContactPerson, SortIndustry, SortPhone, SortEmail,
	SortAddress, SortStatus, SortProspectLevel, SortLastContact,
	SortCreatedAt, SortUpdatedAt,
}

// ParseSortField resolves a field name case-insensitively.
func ParseSortField(s string) (SortField, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return SortNone, true
	}
	for _, f := range sortFields {
		if strings.EqualFold(string(f), s) {
			return f, true
		}
	}
	return SortNone, false
}

// Sort orders records by one field. Ties keep insertion order.
type Sort struct {
	Field SortField
	Desc  bool
}

func (s Sort) compare(a, b Record) int {
	var c int
	switch s.Field {
	case SortCompanyName:
		c = strings.Compare(a.CompanyName, b.CompanyName)
	case SortContactPerson:
		c = strings.Compare(a.ContactPerson, b.ContactPerson)
	case SortIndustry:
		c = strings.Compare(a.Industry, b.Industry)
	case SortPhone:
		c = strings.Compare(a.Phone, b.Phone)
	case SortEmail:
		c = strings.Compare(a.Email, b.Email)
	case SortAddress:
		c = strings.Compare(a.Address, b.Address)
	case SortStatus:
		c = cmp.Compare(a.Status.rank(), b.Status.rank())
	case SortProspectLevel:
		c = cmp.Compare(a.ProspectLevel.rank(), b.ProspectLevel.rank())
	case SortLastContact:
		c = a.LastContact.Compare(b.LastContact)
	case SortCreatedAt:
		c = a.CreatedAt.Compare(b.CreatedAt)
	case SortUpdatedAt:
		c = a.UpdatedAt.Compare(b.UpdatedAt)
	}
	if s.Desc {
		return -c
	}
	return c
}

// Query combines a filter with an optional sort.
type Query struct {
	Filter Filter
	Sort   Sort
}

// Apply returns the records matching q.Filter, ordered by q.Sort.
// The input slice is never modified.
func Apply(records []Record, q Query) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if q.Filter.Match(r) {
			out = append(out, r)
		}
	}
	if q.Sort.Field != SortNone {
		slices.SortStableFunc(out, q.Sort.compare)
	}
	return out
}
