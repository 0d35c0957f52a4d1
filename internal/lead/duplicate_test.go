package lead

import "testing"

func TestPhoneDigits(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"03-1234-5678", "0312345678"},
		{"(03) 1234 5678", "0312345678"},
		{"０３－１２３４－５６７８", "0312345678"},
		{"+81 3-1234-5678", "81312345678"},
		{"なし", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := PhoneDigits(tt.in); got != tt.want {
			t.Errorf("PhoneDigits(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMatch(t *testing.T) {
	existing := Record{
		CompanyName: "Sample Corp",
		Phone:       "03-1111-2222",
		Address:     "Tokyo 1-2-3",
	}
	noAddress := Record{CompanyName: "Sample Corp"}

	tests := []struct {
		name      string
		candidate Fields
		existing  Record
		want      MatchRule
	}{
		{
			name:      "same phone digits different formatting",
			candidate: Fields{CompanyName: "Other", Phone: "0311112222"},
			existing:  existing,
			want:      RulePhone,
		},
		{
			name:      "both phones empty does not match by phone",
			candidate: Fields{CompanyName: "Other"},
			existing:  Record{CompanyName: "Different"},
			want:      RuleNone,
		},
		{
			name:      "name and address equal ignoring case",
			candidate: Fields{CompanyName: "SAMPLE corp", Address: "tokyo 1-2-3"},
			existing:  existing,
			want:      RuleNameAddress,
		},
		{
			name:      "name equal but address differs",
			candidate: Fields{CompanyName: "Sample Corp", Address: "Osaka 4-5-6"},
			existing:  existing,
			want:      RuleNone,
		},
		{
			name:      "name equal both addresses empty",
			candidate: Fields{CompanyName: "sample corp"},
			existing:  noAddress,
			want:      RuleNameNoAddress,
		},
		{
			name:      "candidate has address existing does not",
			candidate: Fields{CompanyName: "Sample Corp", Address: "Tokyo 1-2-3"},
			existing:  noAddress,
			want:      RuleNone,
		},
		{
			name:      "existing has address candidate does not",
			candidate: Fields{CompanyName: "Sample Corp"},
			existing:  existing,
			want:      RuleNone,
		},
		{
			name:      "whitespace around name is ignored",
			candidate: Fields{CompanyName: " Sample Corp "},
			existing:  noAddress,
			want:      RuleNameNoAddress,
		},
		{
			name:      "japanese company names",
			candidate: Fields{CompanyName: "株式会社山田建設", Address: "大阪府大阪市北区1-1"},
			existing:  Record{CompanyName: "株式会社山田建設", Address: "大阪府大阪市北区1-1"},
			want:      RuleNameAddress,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Match(tt.candidate, tt.existing)
			if got != tt.want {
				t.Errorf("Match() = %v, want %v", got, tt.want)
			}
			if dup := IsDuplicate(tt.candidate, []Record{tt.existing}); dup != (tt.want != RuleNone) {
				t.Errorf("IsDuplicate() = %v, want %v", dup, tt.want != RuleNone)
			}
		})
	}
}

func TestDuplicateOf_FirstMatchWins(t *testing.T) {
	records := []Record{
		{ID: "a", CompanyName: "Alpha"},
		{ID: "b", CompanyName: "Beta", Phone: "090-0000-0000"},
		{ID: "c", CompanyName: "Beta"},
	}

	got, rule := DuplicateOf(Fields{CompanyName: "beta", Phone: "09000000000"}, records)
	if got.ID != "b" || rule != RulePhone {
		t.Errorf("DuplicateOf() = (%q, %v), want (b, phone)", got.ID, rule)
	}

	if _, rule := DuplicateOf(Fields{CompanyName: "Gamma"}, records); rule != RuleNone {
		t.Errorf("DuplicateOf(Gamma) rule = %v, want none", rule)
	}
	if IsDuplicate(Fields{CompanyName: "Gamma"}, nil) {
		t.Error("IsDuplicate against empty collection should be false")
	}
}

func TestMatch_TrimsAndFoldsWidth(t *testing.T) {
	existing := Record{CompanyName: "ACME 商事", Phone: "03-1111-2222"}

	if got := Match(Fields{CompanyName: "  acme 商事 "}, existing); got != RuleNameNoAddress {
		t.Errorf("padded, differently cased name: rule = %v, want %v", got, RuleNameNoAddress)
	}
	if got := Match(Fields{CompanyName: "別会社", Phone: "０３（１１１１）２２２２"}, existing); got != RulePhone {
		t.Errorf("full-width phone: rule = %v, want %v", got, RulePhone)
	}
}
