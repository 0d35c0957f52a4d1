package places

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/time/rate"

	"github.com/JonMunkholm/leadlist/internal/lead"
	"github.com/JonMunkholm/leadlist/internal/logging"
)

// Service runs searches against a Searcher, gated and metered by Settings
// and paced so bursts of requests do not hit the provider at once.
type Service struct {
	searcher Searcher
	settings Settings
	pace     *rate.Limiter
}

// NewService returns a Service. perSecond <= 0 disables pacing. A nil
// searcher makes every search fail with ErrSearchUnavailable.
func NewService(searcher Searcher, settings Settings, perSecond float64) *Service {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	return &Service{
		searcher: searcher,
		settings: settings,
		pace:     rate.NewLimiter(limit, 1),
	}
}

// Search returns candidates for keyword around area. The search is
// counted only when the provider answers without error.
func (s *Service) Search(ctx context.Context, area, keyword string) ([]Candidate, error) {
	area, keyword = strings.TrimSpace(area), strings.TrimSpace(keyword)
	var missing []string
	if area == "" {
		missing = append(missing, "area")
	}
	if keyword == "" {
		missing = append(missing, "keyword")
	}
	if len(missing) > 0 {
		return nil, &lead.ValidationError{Fields: missing}
	}

	if s.searcher == nil {
		return nil, fmt.Errorf("%w: no provider configured", ErrSearchUnavailable)
	}
	if err := s.settings.SearchAvailable(ctx); err != nil {
		return nil, err
	}
	if err := s.pace.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for search slot: %w", err)
	}

	logger := logging.WithFields(ctx, "area", area, "keyword", keyword)
	found, err := s.searcher.Search(ctx, area, keyword)
	if err != nil {
		logger.Error("places search failed", "error", err)
		return nil, fmt.Errorf("places search: %w", err)
	}
	if err := s.settings.RecordSearch(ctx); err != nil {
		logger.Warn("failed to record search usage", "error", err)
	}

	logger.Info("places search finished", "results", len(found))
	return found, nil
}
