package embedding

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/cortex/internal/model"
)

func openTestCache(t *testing.T) *SQLiteCache {
	t.Helper()
	cache, err := OpenSQLiteCache(filepath.Join(t.TempDir(), "knowledge.db"))
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestSQLiteCache_PutGetRoundTrip(t *testing.T) {
	cache := openTestCache(t)
	ctx := context.Background()

	emb := Embedding{
		FileID:      "doc-1",
		Vector:      []float32{0.1, -0.5, 2},
		Model:       "test-model",
		ContentHash: "abc123",
		CreatedAt:   time.Now().UTC().Truncate(time.Millisecond),
	}
	require.NoError(t, cache.Put(ctx, emb))

	got, err := cache.Get(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, emb.Vector, got.Vector)
	assert.Equal(t, emb.Model, got.Model)
	assert.Equal(t, emb.ContentHash, got.ContentHash)
	assert.True(t, emb.CreatedAt.Equal(got.CreatedAt))
}

func TestSQLiteCache_GetMissing(t *testing.T) {
	cache := openTestCache(t)

	_, err := cache.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestSQLiteCache_PutReplaces(t *testing.T) {
	cache := openTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, Embedding{FileID: "doc", Vector: []float32{1}, Model: "m", ContentHash: "h1"}))
	require.NoError(t, cache.Put(ctx, Embedding{FileID: "doc", Vector: []float32{2}, Model: "m", ContentHash: "h2"}))

	got, err := cache.Get(ctx, "doc")
	require.NoError(t, err)
	assert.Equal(t, []float32{2}, got.Vector)
	assert.Equal(t, "h2", got.ContentHash)
}

func TestSQLiteCache_GetBatch(t *testing.T) {
	cache := openTestCache(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, cache.Put(ctx, Embedding{FileID: id, Vector: []float32{1, 2}, Model: "m", ContentHash: "h"}))
	}

	got, err := cache.GetBatch(ctx, []string{"a", "c", "missing"})
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Contains(t, got, "a")
	assert.Contains(t, got, "c")

	got, err = cache.GetBatch(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSQLiteCache_All(t *testing.T) {
	cache := openTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, Embedding{FileID: "a", Vector: []float32{1}, Model: "m", ContentHash: "h"}))
	require.NoError(t, cache.Put(ctx, Embedding{FileID: "b", Vector: []float32{2}, Model: "m", ContentHash: "h"}))

	got, err := cache.All(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestVectorEncoding_RoundTrip(t *testing.T) {
	vec := []float32{0, -1.5, 3.25, 1e-7}
	decoded := bytesToFloat32Slice(float32SliceToBytes(vec))
	assert.Equal(t, vec, decoded)
}
