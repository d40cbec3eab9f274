package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewAvailability(t *testing.T) {
	productID := uuid.New()

	t.Run("available is on-hand minus reserved", func(t *testing.T) {
		a := NewAvailability(productID, decimal.NewFromInt(100), decimal.NewFromInt(30))
		assert.True(t, a.Available.Equal(decimal.NewFromInt(70)))
	})

	t.Run("available can go negative when overbooked", func(t *testing.T) {
		a := NewAvailability(productID, decimal.NewFromInt(10), decimal.NewFromInt(25))
		assert.True(t, a.Available.Equal(decimal.NewFromInt(-15)))
		assert.False(t, a.CanFulfil(decimal.NewFromInt(1)))
	})

	t.Run("can fulfil exactly the available quantity", func(t *testing.T) {
		a := NewAvailability(productID, decimal.NewFromInt(50), decimal.NewFromInt(20))
		assert.True(t, a.CanFulfil(decimal.NewFromInt(30)))
		assert.False(t, a.CanFulfil(decimal.NewFromInt(31)))
	})
}
