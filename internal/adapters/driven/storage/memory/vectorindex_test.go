package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reportqa/internal/core/domain"
)

func TestVectorIndex_AddAndSearch(t *testing.T) {
	ctx := context.Background()
	idx := NewVectorIndex(3)

	require.NoError(t, idx.Add(ctx, "x", []float32{1, 0, 0}))
	require.NoError(t, idx.Add(ctx, "y", []float32{0, 1, 0}))
	require.NoError(t, idx.Add(ctx, "xy", []float32{1, 1, 0}))
	assert.Equal(t, 3, idx.Len())

	hits, err := idx.Search(ctx, []float32{2, 0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	assert.Equal(t, "x", hits[0].ChunkID)
	assert.InDelta(t, 1.0, hits[0].Similarity, 1e-6)
	assert.Equal(t, "xy", hits[1].ChunkID)
	assert.InDelta(t, 0.7071, hits[1].Similarity, 1e-3)
}

func TestVectorIndex_TiesKeepInsertionOrder(t *testing.T) {
	ctx := context.Background()
	idx := NewVectorIndex(2)

	for _, id := range []string{"first", "second", "third", "fourth"} {
		require.NoError(t, idx.Add(ctx, id, []float32{1, 1}))
	}

	for i := 0; i < 5; i++ {
		hits, err := idx.Search(ctx, []float32{1, 1}, 3)
		require.NoError(t, err)
		require.Len(t, hits, 3)
		assert.Equal(t, "first", hits[0].ChunkID)
		assert.Equal(t, "second", hits[1].ChunkID)
		assert.Equal(t, "third", hits[2].ChunkID)
	}
}

func TestVectorIndex_KLargerThanIndex(t *testing.T) {
	ctx := context.Background()
	idx := NewVectorIndex(2)
	require.NoError(t, idx.Add(ctx, "only", []float32{1, 0}))

	hits, err := idx.Search(ctx, []float32{1, 0}, 4)
	require.NoError(t, err)
	assert.Len(t, hits, 1)
}

func TestVectorIndex_EmptyAndZeroK(t *testing.T) {
	ctx := context.Background()
	idx := NewVectorIndex(2)

	hits, err := idx.Search(ctx, []float32{1, 0}, 4)
	require.NoError(t, err)
	assert.Empty(t, hits)

	require.NoError(t, idx.Add(ctx, "a", []float32{1, 0}))
	hits, err = idx.Search(ctx, []float32{1, 0}, 0)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestVectorIndex_ZeroVector(t *testing.T) {
	ctx := context.Background()
	idx := NewVectorIndex(2)
	require.NoError(t, idx.Add(ctx, "zero", []float32{0, 0}))

	hits, err := idx.Search(ctx, []float32{1, 0}, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Zero(t, hits[0].Similarity)
}

func TestVectorIndex_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("dimension mismatch on add", func(t *testing.T) {
		idx := NewVectorIndex(3)
		err := idx.Add(ctx, "a", []float32{1, 0})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("dimension mismatch on search", func(t *testing.T) {
		idx := NewVectorIndex(2)
		require.NoError(t, idx.Add(ctx, "a", []float32{1, 0}))
		_, err := idx.Search(ctx, []float32{1, 0, 0}, 1)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("empty id", func(t *testing.T) {
		idx := NewVectorIndex(2)
		assert.ErrorIs(t, idx.Add(ctx, "", []float32{1, 0}), domain.ErrInvalidInput)
	})

	t.Run("empty embedding", func(t *testing.T) {
		idx := NewVectorIndex(2)
		assert.ErrorIs(t, idx.Add(ctx, "a", nil), domain.ErrInvalidInput)
	})

	t.Run("cancelled context", func(t *testing.T) {
		idx := NewVectorIndex(2)
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := idx.Search(cctx, []float32{1, 0}, 1)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestVectorIndex_DimensionFromFirstAdd(t *testing.T) {
	ctx := context.Background()
	idx := NewVectorIndex(0)

	require.NoError(t, idx.Add(ctx, "a", []float32{1, 2, 3}))
	assert.Equal(t, 3, idx.Dimensions())
	assert.ErrorIs(t, idx.Add(ctx, "b", []float32{1}), domain.ErrInvalidInput)
}

func TestVectorIndex_ReAddKeepsPosition(t *testing.T) {
	ctx := context.Background()
	idx := NewVectorIndex(2)
	require.NoError(t, idx.Add(ctx, "a", []float32{1, 0}))
	require.NoError(t, idx.Add(ctx, "b", []float32{1, 0}))
	require.NoError(t, idx.Add(ctx, "a", []float32{1, 0}))

	assert.Equal(t, 2, idx.Len())
	hits, err := idx.Search(ctx, []float32{1, 0}, 2)
	require.NoError(t, err)
	assert.Equal(t, "a", hits[0].ChunkID)
}

func TestVectorIndex_CopiesInput(t *testing.T) {
	ctx := context.Background()
	idx := NewVectorIndex(2)
	vec := []float32{1, 0}
	require.NoError(t, idx.Add(ctx, "a", vec))

	vec[0], vec[1] = 0, 1

	hits, err := idx.Search(ctx, []float32{1, 0}, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, hits[0].Similarity, 1e-6)
}

func TestVectorIndex_ConcurrentSearch(t *testing.T) {
	ctx := context.Background()
	idx := NewVectorIndex(2)
	require.NoError(t, idx.Add(ctx, "a", []float32{1, 0}))
	require.NoError(t, idx.Add(ctx, "b", []float32{0, 1}))

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hits, err := idx.Search(ctx, []float32{1, 0.1}, 1)
			assert.NoError(t, err)
			assert.Equal(t, "a", hits[0].ChunkID)
		}()
	}
	wg.Wait()
}

func TestVectorIndexFactory_Independent(t *testing.T) {
	ctx := context.Background()
	factory := NewVectorIndexFactory()

	a := factory(2)
	b := factory(2)
	require.NoError(t, a.Add(ctx, "only-in-a", []float32{1, 0}))

	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 0, b.Len())
}

func TestVectorIndex_Close(t *testing.T) {
	ctx := context.Background()
	idx := NewVectorIndex(2)
	require.NoError(t, idx.Add(ctx, "a", []float32{1, 0}))

	require.NoError(t, idx.Close())
	assert.Equal(t, 0, idx.Len())
}
