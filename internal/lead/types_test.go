package lead

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want Status
	}{
		{"成約", StatusClosed},
		{" 商談中 ", StatusNegotiating},
		{"closed", StatusClosed},
		{"Lost", StatusLost},
		{"", StatusUntouched},
		{"保留", StatusUntouched},
	}
	for _, tt := range tests {
		if got := ParseStatus(tt.in); got != tt.want {
			t.Errorf("ParseStatus(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseProspectLevel(t *testing.T) {
	tests := []struct {
		in   string
		want ProspectLevel
	}{
		{"脈あり", ProspectPromising},
		{"needs-follow-up", ProspectNeedsFollowUp},
		{"脈なし", ProspectUnpromising},
		{"とても良い", ProspectUnrated},
	}
	for _, tt := range tests {
		if got := ParseProspectLevel(tt.in); got != tt.want {
			t.Errorf("ParseProspectLevel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if ProspectNeedsFollowUp.Key() != "needs-follow-up" {
		t.Errorf("Key() = %q", ProspectNeedsFollowUp.Key())
	}
}

func TestStatusValid(t *testing.T) {
	if !StatusLost.Valid() {
		t.Error("StatusLost should be valid")
	}
	if Status("closed").Valid() {
		t.Error("English key is an alias, not a stored value")
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"2024-03-05", "2024-03-05", false},
		{"2024/3/5", "2024-03-05", false},
		{"2024/03/05", "2024-03-05", false},
		{"2024年3月5日", "2024-03-05", false},
		{"2024-03-05T10:00:00+09:00", "2024-03-05", false},
		{"", "", false},
		{"  ", "", false},
		{"来週", "", true},
		{"2024-13-01", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDate(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got.String() != tt.want {
			t.Errorf("ParseDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDateJSON(t *testing.T) {
	var r struct {
		A Date `json:"a"`
		B Date `json:"b"`
		C Date `json:"c"`
	}
	if err := json.Unmarshal([]byte(`{"a":"2024-01-31","b":"","c":null}`), &r); err != nil {
		t.Fatal(err)
	}
	if r.A != NewDate(2024, 1, 31) || !r.B.IsZero() || !r.C.IsZero() {
		t.Errorf("unmarshal = %+v", r)
	}

	out, err := json.Marshal(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"a":"2024-01-31","b":"","c":""}` {
		t.Errorf("marshal = %s", out)
	}

	if err := json.Unmarshal([]byte(`{"a":"yesterday"}`), &r); err == nil {
		t.Error("expected error for invalid date")
	}
}

func TestDateOf_UsesOwnLocation(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)
	ts := time.Date(2024, 6, 1, 1, 0, 0, 0, jst) // still May 31 in UTC
	if got := DateOf(ts).String(); got != "2024-06-01" {
		t.Errorf("DateOf() = %s, want 2024-06-01", got)
	}
}
