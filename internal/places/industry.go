package places

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/JonMunkholm/leadlist/internal/lead"
)

// IndustryMap maps a provider category tag to an industry label.
type IndustryMap map[string]string

// defaultIndustries is keyed by industry so the table reads like the
// override file format.
var defaultIndustries = map[string][]string{
	"建築": {"general_contractor", "roofing_contractor", "electrician", "plumber", "painter", "home_improvement_store"},
	"運送": {"moving_company", "logistics", "courier_service", "trucking_company"},
	"現場": {"construction_company", "excavating_contractor", "demolition_contractor"},
	"医療・介護": {
		"hospital", "doctor", "dentist", "pharmacy", "physiotherapist",
		"nursing_home", "health", "medical_clinic",
	},
	"飲食・サービス": {
		"restaurant", "cafe", "bar", "meal_takeaway", "meal_delivery", "bakery",
		"beauty_salon", "hair_care", "spa", "gym", "laundry", "car_wash",
	},
	"製造・工場": {"factory", "manufacturer", "industrial", "warehouse"},
	"食品工場":  {"food_processing", "food_manufacturer", "brewery", "winery"},
}

// DefaultIndustryMap returns a fresh copy of the built-in tag table.
func DefaultIndustryMap() IndustryMap {
	m, _ := invert(defaultIndustries)
	return m
}

// IndustryFor returns the industry of the first tag in types that has a
// mapping, or lead.DefaultCategory when none does.
func (m IndustryMap) IndustryFor(types []string) string {
	for _, t := range types {
		if industry, ok := m[t]; ok {
			return industry
		}
	}
	return lead.DefaultCategory
}

// LoadIndustryMap reads a YAML file of the form
//
//	建築:
//	  - general_contractor
//	  - plumber
//
// and returns the default table with the file's entries layered on top.
// A tag listed under two industries in the file is an error.
func LoadIndustryMap(path string) (IndustryMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read industry map: %w", err)
	}
	return ParseIndustryMap(data)
}

// ParseIndustryMap is LoadIndustryMap over raw YAML.
func ParseIndustryMap(data []byte) (IndustryMap, error) {
	var byIndustry map[string][]string
	if err := yaml.Unmarshal(data, &byIndustry); err != nil {
		return nil, fmt.Errorf("parse industry map: %w", err)
	}
	overrides, err := invert(byIndustry)
	if err != nil {
		return nil, err
	}

	m := DefaultIndustryMap()
	for tag, industry := range overrides {
		m[tag] = industry
	}
	return m, nil
}

func invert(byIndustry map[string][]string) (IndustryMap, error) {
	m := make(IndustryMap)
	for industry, tags := range byIndustry {
		industry = strings.TrimSpace(industry)
		if industry == "" {
			return nil, fmt.Errorf("industry map: empty industry name")
		}
		for _, tag := range tags {
			tag = strings.TrimSpace(tag)
			if prev, dup := m[tag]; dup && prev != industry {
				return nil, fmt.Errorf("industry map: tag %q listed under %q and %q", tag, prev, industry)
			}
			m[tag] = industry
		}
	}
	return m, nil
}
