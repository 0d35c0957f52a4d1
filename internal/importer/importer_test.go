package importer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/leadlist/internal/lead"
	"github.com/JonMunkholm/leadlist/internal/leadcsv"
	"github.com/JonMunkholm/leadlist/internal/schema"
	"github.com/JonMunkholm/leadlist/internal/storage"
)

func newStore(t *testing.T) (*lead.Store, *storage.Memory) {
	t.Helper()
	doc := storage.NewMemory(nil)
	s, err := lead.Open(context.Background(), doc)
	require.NoError(t, err)
	return s, doc
}

func TestImportBatch_DuplicateWithinBatch(t *testing.T) {
	store, _ := newStore(t)
	im := New(store)

	csv := "会社名,担当者名,業種\n" +
		`"A Co","Taro","Retail"` + "\n" +
		`"A Co","Taro","Retail"` + "\n"

	rep, err := im.ImportBatch(context.Background(), csv)
	require.NoError(t, err)

	assert.Equal(t, 1, rep.Admitted)
	assert.Equal(t, 1, rep.DuplicateSkipped)
	assert.Equal(t, 0, rep.Invalid)
	assert.Equal(t, []string{"A Co"}, rep.Duplicates)
	assert.Empty(t, rep.Errors)
	assert.Equal(t, 1, store.Len())
}

func TestImportBatch_MissingHeader(t *testing.T) {
	store, doc := newStore(t)
	im := New(store)

	rep, err := im.ImportBatch(context.Background(), "会社名,担当者名\nA Co,Taro\n")

	var se *lead.SchemaError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, []string{"業種"}, se.Missing)
	assert.Zero(t, rep.Admitted+rep.DuplicateSkipped+rep.Invalid)
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, 0, doc.Writes())
}

func TestImportBatch_NoData(t *testing.T) {
	store, _ := newStore(t)
	_, err := New(store).ImportBatch(context.Background(), "会社名,担当者名,業種\n")
	assert.ErrorIs(t, err, leadcsv.ErrNoData)
	assert.Equal(t, "FILE005", lead.MapError(err).Code)
}

func TestImportBatch_MixedRows(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()
	_, err := store.Create(ctx, lead.Fields{
		CompanyName: "既存商事", ContactPerson: "既存", Industry: "建築", Phone: "03-0000-0000",
	})
	require.NoError(t, err)

	csv := strings.Join([]string{
		"会社名,担当者名,電話番号,住所,業種,最終接触日",
		"新規建設,佐藤,,大阪,建築,2024-01-05",
		"別名商事,鈴木,(03) 0000-0000,,運送,",
		",田中,,,建築,",
		"新規建設,佐藤,,大阪,建築,",
		"日付不正,伊藤,,,建築,昨日",
	}, "\n")

	rep, err := New(store).ImportBatch(ctx, csv)
	require.NoError(t, err)

	assert.Equal(t, 1, rep.Admitted)
	assert.Equal(t, 2, rep.DuplicateSkipped)
	assert.Equal(t, []string{"別名商事", "新規建設"}, rep.Duplicates)
	assert.Equal(t, 2, rep.Invalid)
	require.Len(t, rep.Errors, 2)
	assert.Equal(t, 4, rep.Errors[0].Line)
	assert.Equal(t, 6, rep.Errors[1].Line)
	assert.Equal(t, 2, store.Len())
}

func TestPreview_DoesNotPersist(t *testing.T) {
	store, doc := newStore(t)
	im := New(store)

	csv := "会社名,担当者名,業種\nA,B,C\nA,B,C\nD,E,F\n"
	rep, err := im.Preview(context.Background(), csv)
	require.NoError(t, err)

	assert.True(t, rep.DryRun)
	assert.Equal(t, 2, rep.Admitted)
	assert.Equal(t, 1, rep.DuplicateSkipped)
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, 0, doc.Writes())

	real, err := im.ImportBatch(context.Background(), csv)
	require.NoError(t, err)
	rep.DryRun = false
	assert.Equal(t, rep, real)
}

func TestImportReader(t *testing.T) {
	store, _ := newStore(t)
	var body bytes.Buffer
	require.NoError(t, leadcsv.Encode(&body, []lead.Record{
		{CompanyName: "A", ContactPerson: "B", Industry: "C", Status: lead.StatusClosed},
	}, schema.Columns))

	rep, err := New(store).ImportReader(context.Background(), &body)
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Admitted)
	assert.Equal(t, leadcsv.EncodingUTF8, rep.Encoding)
	assert.Equal(t, lead.StatusClosed, store.List()[0].Status)
}

// failAfter lets n writes succeed, then fails every write.
type failAfter struct {
	*storage.Memory
	n int
}

func (f *failAfter) Write(ctx context.Context, data []byte) error {
	if f.n <= 0 {
		return errors.New("disk full")
	}
	f.n--
	return f.Memory.Write(ctx, data)
}

func TestImportBatch_PersistenceFailureKeepsPartialReport(t *testing.T) {
	doc := &failAfter{Memory: storage.NewMemory(nil), n: 2}
	store, err := lead.Open(context.Background(), doc)
	require.NoError(t, err)

	var rows []string
	for i := range 5 {
		rows = append(rows, fmt.Sprintf("会社%d,担当%d,建築", i, i))
	}
	csv := "会社名,担当者名,業種\n" + strings.Join(rows, "\n")

	rep, err := New(store).ImportBatch(context.Background(), csv)

	var pe *lead.PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 2, rep.Admitted)
	assert.Equal(t, 2, store.Len())
}

func TestImportBatch_CanceledContext(t *testing.T) {
	store, _ := newStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rep, err := New(store).ImportBatch(ctx, "会社名,担当者名,業種\nA,B,C\n")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, rep.Admitted)
	assert.Equal(t, 0, store.Len())
}
