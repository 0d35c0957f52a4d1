// Package schema defines the CSV column contract for lead lists.
//
// Header labels are Japanese and fixed; files exported by this program and
// by the earlier browser version share the same layout.
package schema

import "github.com/JonMunkholm/leadlist/internal/lead"

// Column labels, in export order.
const (
	CompanyName   = "会社名"
	ContactPerson = "担当者名"
	Phone         = "電話番号"
	Email         = "メールアドレス"
	Address       = "住所"
	Industry      = "業種"
	Status        = "ステータス"
	ProspectLevel = "見込み度"
	LastContact   = "最終接触日"
	Notes         = "メモ"
)

// RequiredHeaders must all be present in an imported header row.
var RequiredHeaders = []string{CompanyName, ContactPerson, Industry}

// Column maps one CSV column to a record attribute.
type Column struct {
	Label    string
	Required bool
	Value    func(lead.Record) string
}

// Columns is the full lead layout in export order.
var Columns = []Column{
	{Label: CompanyName, Required: true, Value: func(r lead.Record) string { return r.CompanyName }},
	{Label: ContactPerson, Required: true, Value: func(r lead.Record) string { return r.ContactPerson }},
	{Label: Phone, Value: func(r lead.Record) string { return r.Phone }},
	{Label: Email, Value: func(r lead.Record) string { return r.Email }},
	{Label: Address, Value: func(r lead.Record) string { return r.Address }},
	{Label: Industry, Required: true, Value: func(r lead.Record) string { return r.Industry }},
	{Label: Status, Value: func(r lead.Record) string { return string(r.Status) }},
	{Label: ProspectLevel, Value: func(r lead.Record) string { return string(r.ProspectLevel) }},
	{Label: LastContact, Value: func(r lead.Record) string { return r.LastContact.String() }},
	{Label: Notes, Value: func(r lead.Record) string { return r.Notes }},
}

// Labels returns the header labels of cols.
func Labels(cols []Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Label
	}
	return out
}

// MissingHeaders returns the required labels absent from header, in
// RequiredHeaders order.
func MissingHeaders(header []string) []string {
	present := make(map[string]struct{}, len(header))
	for _, h := range header {
		present[h] = struct{}{}
	}
	var missing []string
	for _, req := range RequiredHeaders {
		if _, ok := present[req]; !ok {
			missing = append(missing, req)
		}
	}
	return missing
}
