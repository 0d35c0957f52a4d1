package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile_ReadMissingIsEmpty(t *testing.T) {
	f := NewFile(t.TempDir(), DefaultLeadsKey)
	data, err := f.Read(context.Background())
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestFile_WriteRead(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	f := NewFile(dir, DefaultLeadsKey)
	ctx := context.Background()

	require.NoError(t, f.Write(ctx, []byte(`[{"id":"1"}]`)))
	require.NoError(t, f.Write(ctx, []byte(`[]`)))

	data, err := f.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
	assert.Equal(t, filepath.Join(dir, "salesListData.json"), f.Path())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files are cleaned up")
}

func TestFile_CanceledContext(t *testing.T) {
	f := NewFile(t.TempDir(), "k")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, f.Write(ctx, []byte("x")), context.Canceled)
}

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(nil)

	data, err := m.Read(ctx)
	require.NoError(t, err)
	assert.Nil(t, data)

	buf := []byte("abc")
	require.NoError(t, m.Write(ctx, buf))
	buf[0] = 'z'

	data, err = m.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(data), "write copies its input")
	assert.Equal(t, 1, m.Writes())

	require.NoError(t, m.Write(ctx, []byte{}))
	data, err = m.Read(ctx)
	require.NoError(t, err)
	assert.NotNil(t, data, "an empty write is not the same as never written")
}
