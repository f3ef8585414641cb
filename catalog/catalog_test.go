package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `{
  "products": [
    {"id": 1, "name": "Oxford Shirt", "description": "Crisp cotton shirt", "price": 1299, "category": "menswear", "subcategory": "shirts", "brand": "Harbor Lane", "style_tags": ["Classic", "formal"], "colors": ["White"], "sizes": ["M"], "rating": 4.5, "discount": 10},
    {"id": 2, "name": "Chinos", "description": "Slim fit chinos", "price": 1599, "category": "menswear", "subcategory": "pants", "brand": "Harbor Lane", "style_tags": ["casual"], "colors": ["Beige"], "sizes": ["32"], "rating": 4.3, "discount": 0},
    {"id": 3, "name": "Wrap Top", "description": "Floral wrap top", "price": 899, "category": "womenswear", "subcategory": "tops", "brand": "Meadow", "style_tags": ["bohemian"], "colors": ["Red"], "sizes": ["S"], "rating": 4.2, "discount": 5}
  ]
}`

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReader_ListAll(t *testing.T) {
	reader := NewReader(writeFixture(t, fixture))

	products, err := reader.ListAll()
	require.NoError(t, err)
	require.Len(t, products, 3)

	// Insertion order preserved.
	assert.Equal(t, 1, products[0].ID)
	assert.Equal(t, 2, products[1].ID)
	assert.Equal(t, 3, products[2].ID)
}

func TestReader_ListAll_MissingFile(t *testing.T) {
	reader := NewReader(filepath.Join(t.TempDir(), "missing.json"))

	_, err := reader.ListAll()
	assert.Error(t, err)
}

func TestReader_ListAll_MalformedFile(t *testing.T) {
	reader := NewReader(writeFixture(t, "{not json"))

	_, err := reader.ListAll()
	assert.Error(t, err)
}

func TestReader_GetByID(t *testing.T) {
	reader := NewReader(writeFixture(t, fixture))

	product, err := reader.GetByID(2)
	require.NoError(t, err)
	assert.Equal(t, "Chinos", product.Name)

	_, err = reader.GetByID(99)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestFilters(t *testing.T) {
	reader := NewReader(writeFixture(t, fixture))
	products, err := reader.ListAll()
	require.NoError(t, err)

	assert.Len(t, FilterByCategory(products, "menswear"), 2)
	assert.Len(t, FilterBySubcategory(products, "tops"), 1)
	assert.Len(t, FilterByMinPrice(products, 1000), 2)
	assert.Len(t, FilterByMaxPrice(products, 1000), 1)

	// Style matching is case-insensitive.
	styled := FilterByStyle(products, "classic")
	require.Len(t, styled, 1)
	assert.Equal(t, 1, styled[0].ID)
}

func TestSearch(t *testing.T) {
	reader := NewReader(writeFixture(t, fixture))
	products, err := reader.ListAll()
	require.NoError(t, err)

	// Matches name, description and brand, case-insensitively.
	assert.Len(t, Search(products, "OXFORD"), 1)
	assert.Len(t, Search(products, "slim fit"), 1)
	assert.Len(t, Search(products, "harbor"), 2)
	assert.Empty(t, Search(products, "nonexistent"))
}

func TestIsValidCategory(t *testing.T) {
	assert.True(t, IsValidCategory("menswear"))
	assert.True(t, IsValidCategory("JEWELRY"))
	assert.False(t, IsValidCategory("petwear"))
}

func TestCategories(t *testing.T) {
	reader := NewReader(writeFixture(t, fixture))

	tree, err := reader.Categories()
	require.NoError(t, err)

	require.Contains(t, tree, "menswear")
	require.Len(t, tree["menswear"]["shirts"], 1)
	assert.Equal(t, "Oxford Shirt", tree["menswear"]["shirts"][0].Name)
	assert.Empty(t, tree["kidswear"]["boys"])
}
