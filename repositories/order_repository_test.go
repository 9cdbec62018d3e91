package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidStatusTransition(t *testing.T) {
	t.Run("forward flow is allowed", func(t *testing.T) {
		assert.True(t, ValidStatusTransition("pending", "processing"))
		assert.True(t, ValidStatusTransition("processing", "shipped"))
		assert.True(t, ValidStatusTransition("shipped", "delivered"))
	})

	t.Run("cancelling is allowed until shipment", func(t *testing.T) {
		assert.True(t, ValidStatusTransition("pending", "cancelled"))
		assert.True(t, ValidStatusTransition("processing", "cancelled"))
		assert.False(t, ValidStatusTransition("shipped", "cancelled"))
		assert.False(t, ValidStatusTransition("delivered", "cancelled"))
	})

	t.Run("no backward moves", func(t *testing.T) {
		assert.False(t, ValidStatusTransition("delivered", "pending"))
		assert.False(t, ValidStatusTransition("shipped", "processing"))
		assert.False(t, ValidStatusTransition("processing", "pending"))
	})

	t.Run("cancelled is terminal, stock stays restored", func(t *testing.T) {
		assert.False(t, ValidStatusTransition("cancelled", "pending"))
		assert.False(t, ValidStatusTransition("cancelled", "processing"))
	})

	t.Run("unknown statuses go nowhere", func(t *testing.T) {
		assert.False(t, ValidStatusTransition("refunded", "pending"))
		assert.False(t, ValidStatusTransition("pending", "refunded"))
	})
}
