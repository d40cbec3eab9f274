package partner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	c, err := NewCustomer("cust-01", "Acme Retail")
	require.NoError(t, err)
	assert.Equal(t, "CUST-01", c.Code)
	assert.Equal(t, CustomerStatusActive, c.Status)

	_, err = NewCustomer("", "No Code")
	assert.Error(t, err)

	_, err = NewCustomer("CUST-02", "")
	assert.Error(t, err)
}

func TestCustomer_Update(t *testing.T) {
	c, err := NewCustomer("CUST-10", "Acme Retail")
	require.NoError(t, err)

	require.NoError(t, c.Update("Acme Retail Ltd", "Jane Doe", "jane@acme.example", "+44 1234 567", "1 High St"))
	assert.Equal(t, "Acme Retail Ltd", c.Name)
	assert.Equal(t, "jane@acme.example", c.Email)

	assert.Error(t, c.Update("Acme", "", "not-an-email", "", ""))
}

func TestCustomer_Lifecycle(t *testing.T) {
	c, err := NewCustomer("CUST-20", "Acme")
	require.NoError(t, err)

	assert.Error(t, c.Activate())
	require.NoError(t, c.Deactivate())
	assert.False(t, c.IsActive())
	assert.Error(t, c.Deactivate())
	require.NoError(t, c.Activate())
	assert.True(t, c.IsActive())
}

func TestNewSupplier(t *testing.T) {
	s, err := NewSupplier("sup-01", "Fresh Farms")
	require.NoError(t, err)
	assert.Equal(t, "SUP-01", s.Code)
	assert.Equal(t, SupplierStatusActive, s.Status)
	assert.Equal(t, 0, s.LeadTimeDays)
}

func TestSupplier_Update(t *testing.T) {
	s, err := NewSupplier("SUP-10", "Fresh Farms")
	require.NoError(t, err)

	require.NoError(t, s.Update("Fresh Farms Co", "Bob", "bob@farms.example", "", "", 3))
	assert.Equal(t, 3, s.LeadTimeDays)

	assert.Error(t, s.Update("Fresh Farms", "", "", "", "", -1))
}

func TestNewStorageLocation(t *testing.T) {
	t.Run("defaults to ambient", func(t *testing.T) {
		l, err := NewStorageLocation("a-01-01", "Aisle 1 Bay 1", "")
		require.NoError(t, err)
		assert.Equal(t, "A-01-01", l.Code)
		assert.Equal(t, LocationKindAmbient, l.Kind)
	})

	t.Run("accepts frozen kind", func(t *testing.T) {
		l, err := NewStorageLocation("FZ-01", "Freezer 1", LocationKindFrozen)
		require.NoError(t, err)
		assert.Equal(t, LocationKindFrozen, l.Kind)
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		_, err := NewStorageLocation("X-01", "Mystery", LocationKind("underwater"))
		assert.Error(t, err)
	})
}

func TestStorageLocation_Lifecycle(t *testing.T) {
	l, err := NewStorageLocation("A-02-01", "Aisle 2 Bay 1", LocationKindChilled)
	require.NoError(t, err)

	require.NoError(t, l.Deactivate())
	assert.False(t, l.IsActive())
	require.NoError(t, l.Activate())
	assert.True(t, l.IsActive())
}
