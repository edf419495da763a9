package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylelens/backend/internal/domain"
)

func TestNewLocalCatalog_Embedded(t *testing.T) {
	c, err := NewLocalCatalog()
	require.NoError(t, err)

	assert.Equal(t, 63, c.Size())

	products, err := c.Products(context.Background())
	require.NoError(t, err)

	first := products[0]
	assert.Equal(t, "amz-casual-001", first.ID)
	assert.True(t, first.Price.Valid)
	assert.Equal(t, 499.0, first.Price.Amount)
	assert.Equal(t, []string{"casual", "cotton", "comfortable", "everyday"}, first.Tags)

	for _, p := range products {
		assert.NotEqual(t, domain.CategoryUnknown, domain.ParseCategory(p.Category), "product %s has unknown category %q", p.ID, p.Category)
	}
}

func TestProducts_ReturnsCopy(t *testing.T) {
	c, err := ParseLocalCatalog([]byte(`
- id: a
  title: First
  price: 100
- id: b
  title: Second
`))
	require.NoError(t, err)

	products, _ := c.Products(context.Background())
	products[0].Title = "changed"

	again, _ := c.Products(context.Background())
	assert.Equal(t, "First", again[0].Title)
	assert.False(t, again[1].Price.Valid, "missing price should be invalid")
}

func TestParseLocalCatalog_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not yaml list", "products: {"},
		{"missing id", "- title: No id\n"},
		{"missing title", "- id: x\n"},
		{"duplicate id", "- id: x\n  title: A\n- id: x\n  title: B\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLocalCatalog([]byte(tt.data))
			assert.ErrorIs(t, err, domain.ErrMalformedCatalog)
		})
	}
}

func TestParseLocalCatalog_NegativePriceIsInvalid(t *testing.T) {
	c, err := ParseLocalCatalog([]byte("- id: x\n  title: A\n  price: -5\n"))
	require.NoError(t, err)

	products, _ := c.Products(context.Background())
	assert.False(t, products[0].Price.Valid)
}

func TestLoadLocalCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- id: x\n  title: A\n  price: 10\n"), 0o600))

	c, err := LoadLocalCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Size())

	_, err = LoadLocalCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
