package cart

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	mug   = Product{ID: 1, Slug: "stoneware-mug", Name: "Stoneware Mug", Price: 14.50, Image: "/img/mug.jpg"}
	shirt = Product{ID: 2, Slug: "mens-t-shirt", Name: "Men's T-Shirt", Price: 19.99}
)

func TestStoreAdd(t *testing.T) {
	t.Run("adding the same product twice grows one line", func(t *testing.T) {
		s := Open(NewMemoryStorage(), "cart:test")
		s.Add(mug, 1)
		s.Add(mug, 1)

		lines := s.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, 2, lines[0].Quantity)
	})

	t.Run("new lines are prepended with a price snapshot", func(t *testing.T) {
		s := Open(NewMemoryStorage(), "cart:test")
		s.Add(mug, 1)
		s.Add(shirt, 3)

		lines := s.Lines()
		require.Len(t, lines, 2)
		assert.Equal(t, shirt.ID, lines[0].ProductID)
		assert.Equal(t, 19.99, lines[0].Price)
		assert.Equal(t, mug.ID, lines[1].ProductID)
	})

	t.Run("quantity is clamped to 99", func(t *testing.T) {
		s := Open(NewMemoryStorage(), "cart:test")
		s.Add(mug, 150)
		assert.Equal(t, 99, s.Lines()[0].Quantity)

		s.Add(mug, 150)
		assert.Equal(t, 99, s.Lines()[0].Quantity)
	})

	t.Run("zero or negative quantity counts as one", func(t *testing.T) {
		s := Open(NewMemoryStorage(), "cart:test")
		s.Add(mug, 0)
		assert.Equal(t, 1, s.Lines()[0].Quantity)

		s.Add(shirt, -4)
		assert.Equal(t, 1, s.Lines()[0].Quantity)
	})
}

func TestStoreSetQuantity(t *testing.T) {
	s := Open(NewMemoryStorage(), "cart:test")
	s.Add(mug, 2)

	s.SetQuantity(mug.ID, 5)
	assert.Equal(t, 5, s.Lines()[0].Quantity)

	s.SetQuantity(mug.ID, -5)
	assert.Equal(t, 1, s.Lines()[0].Quantity)

	// Zero is below the range too, not a removal.
	s.SetQuantity(mug.ID, 0)
	assert.Equal(t, 1, s.Lines()[0].Quantity)

	s.SetQuantity(mug.ID, 400)
	assert.Equal(t, 99, s.Lines()[0].Quantity)

	// Absent product is a no-op.
	s.SetQuantity(42, 10)
	require.Len(t, s.Lines(), 1)
}

func TestStoreRemove(t *testing.T) {
	s := Open(NewMemoryStorage(), "cart:test")
	s.Add(mug, 1)
	s.Add(shirt, 1)

	s.Remove(mug.ID)
	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, shirt.ID, lines[0].ProductID)

	// Removing an absent id leaves state unchanged.
	s.Remove(999)
	assert.Len(t, s.Lines(), 1)
}

func TestStoreDerivedTotals(t *testing.T) {
	s := Open(NewMemoryStorage(), "cart:test")
	assert.Equal(t, 0, s.Count())
	assert.Equal(t, 0.0, s.Subtotal())

	s.Add(mug, 2)
	s.Add(shirt, 3)
	assert.Equal(t, 5, s.Count())
	assert.InDelta(t, 14.50*2+19.99*3, s.Subtotal(), 1e-9)

	s.SetQuantity(shirt.ID, 1)
	s.Remove(mug.ID)
	assert.Equal(t, 1, s.Count())
	assert.InDelta(t, 19.99, s.Subtotal(), 1e-9)

	s.Clear()
	assert.Equal(t, 0, s.Count())
	assert.Equal(t, 0.0, s.Subtotal())
}

func TestStorePersistence(t *testing.T) {
	t.Run("round trip through storage", func(t *testing.T) {
		storage := NewMemoryStorage()
		s := Open(storage, "cart:7")
		s.Add(mug, 2)
		s.Add(shirt, 1)

		reloaded := Open(storage, "cart:7")
		lines := reloaded.Lines()
		require.Len(t, lines, 2)
		assert.Equal(t, shirt.ID, lines[0].ProductID)
		assert.Equal(t, 3, reloaded.Count())
	})

	t.Run("stored payload is a plain JSON array", func(t *testing.T) {
		storage := NewMemoryStorage()
		s := Open(storage, "cart:7")
		s.Add(mug, 1)

		raw, err := storage.Load("cart:7")
		require.NoError(t, err)

		var lines []map[string]interface{}
		require.NoError(t, json.Unmarshal(raw, &lines))
		require.Len(t, lines, 1)
		assert.Equal(t, "stoneware-mug", lines[0]["slug"])
	})

	t.Run("corrupt state yields an empty cart", func(t *testing.T) {
		storage := NewMemoryStorage()
		require.NoError(t, storage.Save("cart:7", []byte("{not json")))

		s := Open(storage, "cart:7")
		assert.Empty(t, s.Lines())
		assert.Equal(t, 0, s.Count())
	})

	t.Run("non-array content yields an empty cart", func(t *testing.T) {
		storage := NewMemoryStorage()
		require.NoError(t, storage.Save("cart:7", []byte(`{"product_id":1}`)))

		s := Open(storage, "cart:7")
		assert.Empty(t, s.Lines())
	})
}
