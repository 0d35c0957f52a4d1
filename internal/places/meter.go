package places

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/JonMunkholm/leadlist/internal/logging"
	"github.com/JonMunkholm/leadlist/internal/storage"
)

const (
	// CostPerSearch is the estimated provider charge in USD for one search
	// (geocoding plus one nearby search).
	CostPerSearch = 0.037
	// FreeQuota is the provider's monthly free credit in USD.
	FreeQuota = 200.0
)

// Usage is the persisted monthly search counter. Month is zero-based
// (January = 0) so documents written by the browser client load as-is.
type Usage struct {
	Month       int `json:"month"`
	Year        int `json:"year"`
	SearchCount int `json:"searchCount"`
}

func usageFor(t time.Time) Usage {
	return Usage{Month: int(t.Month()) - 1, Year: t.Year()}
}

func (u Usage) sameMonth(o Usage) bool {
	return u.Month == o.Month && u.Year == o.Year
}

// UsageReport is Usage with cost figures and availability.
type UsageReport struct {
	Usage
	EstimatedCost      float64 `json:"estimatedCost"`
	FreeQuotaRemaining float64 `json:"freeQuotaRemaining"`
	MonthlyCap         int     `json:"monthlyCap,omitempty"`
	APIKeyConfigured   bool    `json:"apiKeyConfigured"`
	Available          bool    `json:"available"`
}

// Meter implements Settings: it knows whether an API key is configured
// and keeps the monthly search count in a storage.Document.
type Meter struct {
	doc        storage.Document
	apiKey     string
	monthlyCap int
	now        func() time.Time

	mu sync.Mutex
}

// MeterOption configures a Meter.
type MeterOption func(*Meter)

// WithMonthlyCap refuses searches once count reaches limit. Zero means no cap.
func WithMonthlyCap(limit int) MeterOption {
	return func(m *Meter) { m.monthlyCap = limit }
}

// WithMeterClock overrides the time source used to pick the month.
func WithMeterClock(now func() time.Time) MeterOption {
	return func(m *Meter) { m.now = now }
}

// NewMeter returns a Meter persisting to doc.
func NewMeter(doc storage.Document, apiKey string, opts ...MeterOption) *Meter {
	m := &Meter{
		doc:    doc,
		apiKey: strings.TrimSpace(apiKey),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// HasAPIKey reports whether a provider key is configured.
func (m *Meter) HasAPIKey() bool {
	return m.apiKey != ""
}

// load returns the counter for the current month. A stored counter from
// an earlier month reads as zero.
func (m *Meter) load(ctx context.Context) (Usage, error) {
	current := usageFor(m.now())

	data, err := m.doc.Read(ctx)
	if err != nil {
		return Usage{}, fmt.Errorf("read usage: %w", err)
	}
	if len(data) == 0 {
		return current, nil
	}

	var stored Usage
	if err := json.Unmarshal(data, &stored); err != nil {
		logging.FromContext(ctx).Warn("discarding unreadable usage document", "error", err)
		return current, nil
	}
	if !stored.sameMonth(current) {
		return current, nil
	}
	return stored, nil
}

// Usage returns the counter for the current month.
func (m *Meter) Usage(ctx context.Context) (Usage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load(ctx)
}

// SearchAvailable implements Settings.
func (m *Meter) SearchAvailable(ctx context.Context) error {
	if !m.HasAPIKey() {
		return fmt.Errorf("%w: no API key configured", ErrSearchUnavailable)
	}
	if m.monthlyCap <= 0 {
		return nil
	}

	u, err := m.Usage(ctx)
	if err != nil {
		return err
	}
	if u.SearchCount >= m.monthlyCap {
		return fmt.Errorf("%w: monthly cap of %d searches reached", ErrSearchUnavailable, m.monthlyCap)
	}
	return nil
}

// RecordSearch implements Settings. The counter resets when the month
// changes.
func (m *Meter) RecordSearch(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, err := m.load(ctx)
	if err != nil {
		return err
	}
	u.SearchCount++

	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode usage: %w", err)
	}
	if err := m.doc.Write(ctx, data); err != nil {
		return fmt.Errorf("write usage: %w", err)
	}
	return nil
}

// Report returns the current counter with cost estimates.
func (m *Meter) Report(ctx context.Context) (UsageReport, error) {
	u, err := m.Usage(ctx)
	if err != nil {
		return UsageReport{}, err
	}
	cost := float64(u.SearchCount) * CostPerSearch
	return UsageReport{
		Usage:              u,
		EstimatedCost:      roundCents(cost),
		FreeQuotaRemaining: roundCents(math.Max(0, FreeQuota-cost)),
		MonthlyCap:         m.monthlyCap,
		APIKeyConfigured:   m.HasAPIKey(),
		Available:          m.SearchAvailable(ctx) == nil,
	}, nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
