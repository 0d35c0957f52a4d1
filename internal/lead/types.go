package lead

import (
	"strings"
	"time"
)

// Status is the sales pipeline stage of a lead.
// Values are the Japanese labels used in storage and CSV files.
type Status string

const (
	StatusUntouched   Status = "未接触"
	StatusNegotiating Status = "商談中"
	StatusClosed      Status = "成約"
	StatusLost        Status = "失注"
)

// ProspectLevel is the qualitative sales-likelihood rating of a lead,
// independent of its pipeline Status.
type ProspectLevel string

const (
	ProspectPromising     ProspectLevel = "脈あり"
	ProspectNeedsFollowUp ProspectLevel = "要フォロー"
	ProspectUnpromising   ProspectLevel = "脈なし"
	ProspectUnrated       ProspectLevel = "未評価"
)

type enumEntry[T ~string] struct {
	value T
	key   string
}

// Declaration order is pipeline order and is used for sorting.
var statusEntries = []enumEntry[Status]{
	{StatusUntouched, "untouched"},
	{StatusNegotiating, "negotiating"},
	{StatusClosed, "closed"},
	{StatusLost, "lost"},
}

var prospectEntries = []enumEntry[ProspectLevel]{
	{ProspectPromising, "promising"},
	{ProspectNeedsFollowUp, "needs-follow-up"},
	{ProspectUnpromising, "unpromising"},
	{ProspectUnrated, "unrated"},
}

func lookup[T ~string](entries []enumEntry[T], s string) (T, int, bool) {
	s = strings.TrimSpace(s)
	for i, e := range entries {
		if string(e.value) == s || strings.EqualFold(e.key, s) {
			return e.value, i, true
		}
	}
	var zero T
	return zero, -1, false
}

// Statuses returns every Status in pipeline order.
func Statuses() []Status {
	out := make([]Status, len(statusEntries))
	for i, e := range statusEntries {
		out[i] = e.value
	}
	return out
}

// LookupStatus resolves a Japanese label or an English key ("closed").
func LookupStatus(s string) (Status, bool) {
	v, _, ok := lookup(statusEntries, s)
	return v, ok
}

// ParseStatus is LookupStatus with unrecognized input coerced to StatusUntouched.
func ParseStatus(s string) Status {
	if v, ok := LookupStatus(s); ok {
		return v
	}
	return StatusUntouched
}

// Valid reports whether s is exactly one of the enumerated labels.
func (s Status) Valid() bool {
	v, ok := LookupStatus(string(s))
	return ok && v == s
}

// Key returns the English identifier of the status.
func (s Status) Key() string {
	if _, i, ok := lookup(statusEntries, string(s)); ok {
		return statusEntries[i].key
	}
	return ""
}

func (s Status) rank() int {
	_, i, _ := lookup(statusEntries, string(s))
	return i
}

// LookupProspectLevel resolves a Japanese label or an English key ("promising").
func LookupProspectLevel(s string) (ProspectLevel, bool) {
	v, _, ok := lookup(prospectEntries, s)
	return v, ok
}

// ParseProspectLevel is LookupProspectLevel with unrecognized input coerced
// to ProspectUnrated.
func ParseProspectLevel(s string) ProspectLevel {
	if v, ok := LookupProspectLevel(s); ok {
		return v
	}
	return ProspectUnrated
}

// Key returns the English identifier of the prospect level.
func (p ProspectLevel) Key() string {
	if _, i, ok := lookup(prospectEntries, string(p)); ok {
		return prospectEntries[i].key
	}
	return ""
}

// Valid reports whether p is exactly one of the enumerated labels.
func (p ProspectLevel) Valid() bool {
	v, ok := LookupProspectLevel(string(p))
	return ok && v == p
}

func (p ProspectLevel) rank() int {
	_, i, _ := lookup(prospectEntries, string(p))
	return i
}

// Record is one tracked prospective business contact.
// JSON field names match the persisted document format.
type Record struct {
	ID            string        `json:"id"`
	CompanyName   string        `json:"companyName"`
	ContactPerson string        `json:"contactPerson"`
	Phone         string        `json:"phone"`
	Email         string        `json:"email"`
	Address       string        `json:"address"`
	Industry      string        `json:"industry"`
	Status        Status        `json:"status"`
	ProspectLevel ProspectLevel `json:"prospectLevel"`
	LastContact   Date          `json:"lastContact"`
	Notes         string        `json:"notes"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// Fields returns the mutable portion of the record.
func (r Record) Fields() Fields {
	return Fields{
		CompanyName:   r.CompanyName,
		ContactPerson: r.ContactPerson,
		Phone:         r.Phone,
		Email:         r.Email,
		Address:       r.Address,
		Industry:      r.Industry,
		Status:        r.Status,
		ProspectLevel: r.ProspectLevel,
		LastContact:   r.LastContact,
		Notes:         r.Notes,
	}
}

// Fields is the input for creating a record.
type Fields struct {
	CompanyName   string        `json:"companyName" validate:"notblank"`
	ContactPerson string        `json:"contactPerson" validate:"notblank"`
	Phone         string        `json:"phone"`
	Email         string        `json:"email"`
	Address       string        `json:"address"`
	Industry      string        `json:"industry" validate:"notblank"`
	Status        Status        `json:"status"`
	ProspectLevel ProspectLevel `json:"prospectLevel"`
	LastContact   Date          `json:"lastContact"`
	Notes         string        `json:"notes"`
}

// normalized coerces the enum fields to valid values.
func (f Fields) normalized() Fields {
	f.Status = ParseStatus(string(f.Status))
	f.ProspectLevel = ParseProspectLevel(string(f.ProspectLevel))
	return f
}

func newRecord(id string, f Fields, now time.Time) Record {
	f = f.normalized()
	return Record{
		ID:            id,
		CompanyName:   f.CompanyName,
		ContactPerson: f.ContactPerson,
		Phone:         f.Phone,
		Email:         f.Email,
		Address:       f.Address,
		Industry:      f.Industry,
		Status:        f.Status,
		ProspectLevel: f.ProspectLevel,
		LastContact:   f.LastContact,
		Notes:         f.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Patch is a partial update. Nil fields are left unchanged; a non-nil
// LastContact pointing at the zero Date clears the contact date.
type Patch struct {
	CompanyName   *string        `json:"companyName,omitempty"`
	ContactPerson *string        `json:"contactPerson,omitempty"`
	Phone         *string        `json:"phone,omitempty"`
	Email         *string        `json:"email,omitempty"`
	Address       *string        `json:"address,omitempty"`
	Industry      *string        `json:"industry,omitempty"`
	Status        *Status        `json:"status,omitempty"`
	ProspectLevel *ProspectLevel `json:"prospectLevel,omitempty"`
	LastContact   *Date          `json:"lastContact,omitempty"`
	Notes         *string        `json:"notes,omitempty"`
}

func (p Patch) apply(r Record) Record {
	setString(&r.CompanyName, p.CompanyName)
	setString(&r.ContactPerson, p.ContactPerson)
	setString(&r.Phone, p.Phone)
	setString(&r.Email, p.Email)
	setString(&r.Address, p.Address)
	setString(&r.Industry, p.Industry)
	setString(&r.Notes, p.Notes)
	if p.Status != nil {
		r.Status = ParseStatus(string(*p.Status))
	}
	if p.ProspectLevel != nil {
		r.ProspectLevel = ParseProspectLevel(string(*p.ProspectLevel))
	}
	if p.LastContact != nil {
		r.LastContact = *p.LastContact
	}
	return r
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
