package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.values)
	assert.Equal(t, ":memory:", store.Path())
}

func TestNewConfigStore_Seeded(t *testing.T) {
	seed := map[string]any{"llm.provider": "ollama", "retrieval.top_k": 3}
	store := NewConfigStore(seed)

	assert.Equal(t, "ollama", store.GetString("llm.provider"))
	assert.Equal(t, 3, store.GetInt("retrieval.top_k"))

	// Seed is copied, not aliased.
	seed["llm.provider"] = "openai"
	assert.Equal(t, "ollama", store.GetString("llm.provider"))
}

func TestConfigStore_Set_Update(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("key1", "original"))
	require.NoError(t, store.Set("key1", "updated"))

	val, ok := store.Get("key1")
	assert.True(t, ok)
	assert.Equal(t, "updated", val)
}

func TestConfigStore_Get_NotFound(t *testing.T) {
	store := NewConfigStore()

	val, ok := store.Get("nonexistent")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore(map[string]any{
		"str":        "value",
		"int":        42,
		"int64":      int64(123),
		"float":      float64(0.25),
		"float_int":  float64(123.7),
		"bool":       true,
		"strings":    []string{"a", "b"},
		"any_slice":  []any{"x", 1, "y"},
		"wrong_type": struct{}{},
	})

	t.Run("string", func(t *testing.T) {
		assert.Equal(t, "value", store.GetString("str"))
		assert.Equal(t, "", store.GetString("int"))
		assert.Equal(t, "", store.GetString("missing"))
	})

	t.Run("int", func(t *testing.T) {
		assert.Equal(t, 42, store.GetInt("int"))
		assert.Equal(t, 123, store.GetInt("int64"))
		assert.Equal(t, 123, store.GetInt("float_int"))
		assert.Equal(t, 0, store.GetInt("str"))
		assert.Equal(t, 0, store.GetInt("missing"))
	})

	t.Run("float", func(t *testing.T) {
		assert.InDelta(t, 0.25, store.GetFloat("float"), 1e-9)
		assert.InDelta(t, 42.0, store.GetFloat("int"), 1e-9)
		assert.InDelta(t, 123.0, store.GetFloat("int64"), 1e-9)
		assert.Zero(t, store.GetFloat("str"))
	})

	t.Run("bool", func(t *testing.T) {
		assert.True(t, store.GetBool("bool"))
		assert.False(t, store.GetBool("str"))
		assert.False(t, store.GetBool("missing"))
	})

	t.Run("string slice", func(t *testing.T) {
		assert.Equal(t, []string{"a", "b"}, store.GetStringSlice("strings"))
		assert.Equal(t, []string{"x", "y"}, store.GetStringSlice("any_slice"))
		assert.Nil(t, store.GetStringSlice("wrong_type"))
		assert.Nil(t, store.GetStringSlice("missing"))
	})
}

func TestConfigStore_SaveLoad_NoOp(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("key1", "value1")

	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, "value1", store.GetString("key1"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := "key-" + string(rune('A'+id))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_ = store.GetString("shared")
		}(i)
	}
	wg.Wait()

	for i := 0; i < 50; i++ {
		assert.Equal(t, i, store.GetInt("key-"+string(rune('A'+i))))
	}
}
