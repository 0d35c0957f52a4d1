package places

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/JonMunkholm/leadlist/internal/lead"
	"github.com/JonMunkholm/leadlist/internal/logging"
)

// PlaceholderContact fills the required contact person of an admitted
// place until someone enters the real name.
const PlaceholderContact = "未設定"

// AdmitResult counts what happened to each candidate.
type AdmitResult struct {
	Added      int           `json:"added"`
	Skipped    int           `json:"skipped"`
	Invalid    int           `json:"invalid"`
	Duplicates []string      `json:"duplicates"`
	Records    []lead.Record `json:"records"`
}

// Text renders the result the way the list UI announces it.
func (r AdmitResult) Text() string {
	var b strings.Builder
	b.WriteString("インポート完了\n\n")
	fmt.Fprintf(&b, "✅ 新規追加: %d件\n", r.Added)
	if r.Skipped > 0 {
		fmt.Fprintf(&b, "⏭️ スキップ（重複）: %d件\n", r.Skipped)
	}
	if r.Invalid > 0 {
		fmt.Fprintf(&b, "❌ エラー: %d件\n", r.Invalid)
	}
	return b.String()
}

// Admitter turns search candidates into lead records.
type Admitter struct {
	store      *lead.Store
	industries IndustryMap
	region     string
}

// NewAdmitter returns an Admitter writing to store. A nil industries map
// uses DefaultIndustryMap; an empty region uses DefaultRegion.
func NewAdmitter(store *lead.Store, industries IndustryMap, region string) *Admitter {
	if industries == nil {
		industries = DefaultIndustryMap()
	}
	if region == "" {
		region = DefaultRegion
	}
	return &Admitter{store: store, industries: industries, region: region}
}

// Fields builds the lead fields for c.
func (a *Admitter) Fields(c Candidate) lead.Fields {
	return lead.Fields{
		CompanyName:   strings.TrimSpace(c.Name),
		ContactPerson: PlaceholderContact,
		Phone:         NormalizePhone(c.Phone, a.region),
		Address:       strings.TrimSpace(c.Address),
		Industry:      a.industries.IndustryFor(c.Types),
		Status:        lead.StatusUntouched,
		ProspectLevel: lead.ProspectUnrated,
		Notes:         ratingNote(c),
	}
}

func ratingNote(c Candidate) string {
	if c.Rating > 0 {
		return fmt.Sprintf("評価: ⭐%s (%d件)", strconv.FormatFloat(c.Rating, 'f', -1, 64), c.RatingCount)
	}
	return "評価: なし"
}

// Admit offers each candidate to the store in order. Candidates that
// duplicate an existing lead, or one admitted earlier in the same call,
// are skipped. A candidate with no name is counted as invalid. A storage
// failure stops the call and returns the partial result with the error.
func (a *Admitter) Admit(ctx context.Context, candidates []Candidate) (AdmitResult, error) {
	res := AdmitResult{Duplicates: []string{}, Records: []lead.Record{}}

	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		rec, created, err := a.store.CreateUnlessDuplicate(ctx, a.Fields(c))
		var ve *lead.ValidationError
		switch {
		case errors.As(err, &ve):
			res.Invalid++
		case err != nil:
			return res, fmt.Errorf("admit %q: %w", c.Name, err)
		case created:
			res.Added++
			res.Records = append(res.Records, rec)
		default:
			res.Skipped++
			res.Duplicates = append(res.Duplicates, c.Name)
		}
	}

	logging.FromContext(ctx).Info("places admitted",
		slog.Int("candidates", len(candidates)),
		slog.Int("added", res.Added),
		slog.Int("skipped", res.Skipped),
		slog.Int("invalid", res.Invalid),
	)
	return res, nil
}
