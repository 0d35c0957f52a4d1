// Package places connects a places-search provider to the lead store.
//
// The provider itself (geocoding, paging through results) lives behind the
// Searcher interface. This package owns what the lead list does with its
// results: mapping category tags to an industry, normalizing phone
// numbers, admitting candidates through duplicate detection, pacing
// searches and metering monthly usage.
package places

import (
	"context"
	"errors"
)

// ErrSearchUnavailable is returned when no search may be made, either
// because no provider or API key is configured or the monthly cap is spent.
var ErrSearchUnavailable = errors.New("places search unavailable")

// Location is a WGS84 coordinate.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Candidate is one place returned by a search.
type Candidate struct {
	PlaceID     string   `json:"id"`
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	Phone       string   `json:"phone,omitempty"`
	Rating      float64  `json:"rating"`
	RatingCount int      `json:"userRatingsTotal"`
	Types       []string `json:"types"`
	Location    Location `json:"location"`
}

// Searcher finds places matching keyword around area.
type Searcher interface {
	Search(ctx context.Context, area, keyword string) ([]Candidate, error)
}

// Settings gates and meters searches.
type Settings interface {
	// SearchAvailable returns nil when a search may be made, otherwise an
	// error wrapping ErrSearchUnavailable.
	SearchAvailable(ctx context.Context) error
	// RecordSearch counts one completed search.
	RecordSearch(ctx context.Context) error
}
