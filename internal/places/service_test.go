package places

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/leadlist/internal/lead"
	"github.com/JonMunkholm/leadlist/internal/storage"
)

type stubSearcher struct {
	results []Candidate
	err     error
	calls   int
}

func (s *stubSearcher) Search(ctx context.Context, area, keyword string) ([]Candidate, error) {
	s.calls++
	return s.results, s.err
}

func TestService_Search(t *testing.T) {
	ctx := context.Background()
	meter := NewMeter(storage.NewMemory(nil), "key")
	searcher := &stubSearcher{results: []Candidate{{PlaceID: "a", Name: "A"}}}
	svc := NewService(searcher, meter, 0)

	got, err := svc.Search(ctx, "渋谷区", "工務店")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	u, err := meter.Usage(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, u.SearchCount)
}

func TestService_SearchValidation(t *testing.T) {
	searcher := &stubSearcher{}
	svc := NewService(searcher, NewMeter(storage.NewMemory(nil), "key"), 0)

	_, err := svc.Search(context.Background(), " ", "")
	var ve *lead.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"area", "keyword"}, ve.Fields)
	assert.Zero(t, searcher.calls)
}

func TestService_Unavailable(t *testing.T) {
	ctx := context.Background()

	_, err := NewService(nil, NewMeter(storage.NewMemory(nil), "key"), 0).Search(ctx, "a", "b")
	assert.ErrorIs(t, err, ErrSearchUnavailable)

	searcher := &stubSearcher{}
	_, err = NewService(searcher, NewMeter(storage.NewMemory(nil), ""), 0).Search(ctx, "a", "b")
	assert.ErrorIs(t, err, ErrSearchUnavailable)
	assert.Zero(t, searcher.calls)
	assert.Equal(t, "PLC001", lead.MapError(err).Code)
}

func TestService_ProviderErrorNotCounted(t *testing.T) {
	ctx := context.Background()
	meter := NewMeter(storage.NewMemory(nil), "key")
	svc := NewService(&stubSearcher{err: errors.New("OVER_QUERY_LIMIT")}, meter, 0)

	_, err := svc.Search(ctx, "a", "b")
	assert.ErrorContains(t, err, "OVER_QUERY_LIMIT")

	u, _ := meter.Usage(ctx)
	assert.Zero(t, u.SearchCount)
}

func TestService_PacingHonorsContext(t *testing.T) {
	svc := NewService(&stubSearcher{}, NewMeter(storage.NewMemory(nil), "key"), 0.001)

	_, err := svc.Search(context.Background(), "a", "b")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = svc.Search(ctx, "a", "b")
	assert.Error(t, err)
}
