package lead

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// MatchRule identifies which duplicate rule matched.
type MatchRule int

const (
	RuleNone MatchRule = iota
	// RulePhone: phone digits equal, both non-empty.
	RulePhone
	// RuleNameAddress: company names equal and addresses equal, both non-empty.
	RuleNameAddress
	// RuleNameNoAddress: company names equal and both addresses empty.
	RuleNameNoAddress
)

func (r MatchRule) String() string {
	switch r {
	case RulePhone:
		return "phone"
	case RuleNameAddress:
		return "name+address"
	case RuleNameNoAddress:
		return "name+no-address"
	default:
		return "none"
	}
}

// fold returns s trimmed and case-folded for comparison. A Caser holds
// state, so each call gets its own.
func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// PhoneDigits strips every non-digit from a phone number.
func PhoneDigits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else if unicode.IsDigit(r) && r >= '０' && r <= '９' {
			// full-width digits as typed on Japanese keyboards
			b.WriteRune('0' + (r - '０'))
		}
	}
	return b.String()
}

// Match reports which rule, if any, makes candidate a duplicate of existing.
// Rules are tried in order: phone, name+address, name+no-address.
func Match(candidate Fields, existing Record) MatchRule {
	if d := PhoneDigits(candidate.Phone); d != "" && d == PhoneDigits(existing.Phone) {
		return RulePhone
	}

	if fold(candidate.CompanyName) != fold(existing.CompanyName) {
		return RuleNone
	}

	ca, ea := fold(candidate.Address), fold(existing.Address)
	switch {
	case ca != "" && ea != "" && ca == ea:
		return RuleNameAddress
	case ca == "" && ea == "":
		return RuleNameNoAddress
	}
	return RuleNone
}

// DuplicateOf returns the first existing record that candidate duplicates
// and the rule that matched, or RuleNone.
func DuplicateOf(candidate Fields, existing []Record) (Record, MatchRule) {
	for _, r := range existing {
		if rule := Match(candidate, r); rule != RuleNone {
			return r, rule
		}
	}
	return Record{}, RuleNone
}

// IsDuplicate reports whether candidate duplicates any existing record.
func IsDuplicate(candidate Fields, existing []Record) bool {
	_, rule := DuplicateOf(candidate, existing)
	return rule != RuleNone
}
