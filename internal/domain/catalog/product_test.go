package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates active product with uppercased code", func(t *testing.T) {
		p, err := NewProduct("sku-001", "Frozen Peas 1kg", "bag")
		require.NoError(t, err)

		assert.Equal(t, "SKU-001", p.Code)
		assert.Equal(t, "Frozen Peas 1kg", p.Name)
		assert.Equal(t, "bag", p.Unit)
		assert.Equal(t, ProductStatusActive, p.Status)
		assert.True(t, p.ReorderLevel.IsZero())
		assert.NotEqual(t, p.ID.String(), "00000000-0000-0000-0000-000000000000")
	})

	t.Run("defaults unit to pcs", func(t *testing.T) {
		p, err := NewProduct("SKU-002", "Label Roll", "")
		require.NoError(t, err)
		assert.Equal(t, "pcs", p.Unit)
	})

	t.Run("rejects empty code", func(t *testing.T) {
		_, err := NewProduct("", "No Code", "pcs")
		assert.Error(t, err)
	})

	t.Run("rejects code with invalid characters", func(t *testing.T) {
		_, err := NewProduct("SKU 001", "Spaced Code", "pcs")
		assert.Error(t, err)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewProduct("SKU-003", "", "pcs")
		assert.Error(t, err)
	})
}

func TestProduct_StatusTransitions(t *testing.T) {
	newProduct := func(t *testing.T) *Product {
		p, err := NewProduct("SKU-010", "Widget", "pcs")
		require.NoError(t, err)
		return p
	}

	t.Run("deactivate then reactivate", func(t *testing.T) {
		p := newProduct(t)
		require.NoError(t, p.Deactivate())
		assert.Equal(t, ProductStatusInactive, p.Status)

		require.NoError(t, p.Activate())
		assert.Equal(t, ProductStatusActive, p.Status)
	})

	t.Run("cannot activate an already active product", func(t *testing.T) {
		p := newProduct(t)
		assert.Error(t, p.Activate())
	})

	t.Run("discontinued products cannot be reactivated", func(t *testing.T) {
		p := newProduct(t)
		require.NoError(t, p.Discontinue())
		assert.Equal(t, ProductStatusDiscontinued, p.Status)
		assert.Error(t, p.Activate())
	})

	t.Run("cannot discontinue twice", func(t *testing.T) {
		p := newProduct(t)
		require.NoError(t, p.Discontinue())
		assert.Error(t, p.Discontinue())
	})
}

func TestProduct_SetReorderLevel(t *testing.T) {
	p, err := NewProduct("SKU-020", "Bolt M6", "box")
	require.NoError(t, err)

	require.NoError(t, p.SetReorderLevel(decimal.NewFromInt(50)))
	assert.True(t, p.ReorderLevel.Equal(decimal.NewFromInt(50)))

	assert.Error(t, p.SetReorderLevel(decimal.NewFromInt(-1)))
}

func TestProduct_Update(t *testing.T) {
	p, err := NewProduct("SKU-030", "Old Name", "pcs")
	require.NoError(t, err)
	initialVersion := p.Version

	require.NoError(t, p.Update("New Name", "updated description", "carton"))
	assert.Equal(t, "New Name", p.Name)
	assert.Equal(t, "carton", p.Unit)
	assert.Equal(t, initialVersion+1, p.Version)

	assert.Error(t, p.Update("", "", "pcs"))
	assert.Error(t, p.Update("Valid", "", ""))
}
