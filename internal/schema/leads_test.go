package schema

import (
	"slices"
	"testing"
)

func TestMissingHeaders(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		want   []string
	}{
		{"full layout", Labels(Columns), nil},
		{"required only, any order", []string{Industry, CompanyName, ContactPerson}, nil},
		{"missing industry", []string{CompanyName, ContactPerson, Phone}, []string{Industry}},
		{"nothing recognized", []string{"name", "tel"}, RequiredHeaders},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MissingHeaders(tt.header); !slices.Equal(got, tt.want) {
				t.Errorf("MissingHeaders() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestColumnsRequiredMatchesRequiredHeaders(t *testing.T) {
	var required []string
	for _, c := range Columns {
		if c.Required {
			required = append(required, c.Label)
		}
	}
	if !slices.Equal(required, RequiredHeaders) {
		t.Errorf("required columns = %v, RequiredHeaders = %v", required, RequiredHeaders)
	}
}
