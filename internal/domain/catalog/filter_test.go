// internal/domain/catalog/filter_test.go
package catalog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProducts() []Product {
	return []Product{
		{Name: "Classic Tee", Description: "Soft cotton t-shirt", Price: 1000, Rating: 4.5, Tags: "clothing,cotton", Category: Category{Name: "Clothing"}},
		{Name: "Noise Cancelling Headphones", Description: "Over-ear", Price: 19900, Rating: 4.8, Tags: "audio,electronics", Category: Category{Name: "Electronics"}},
		{Name: "Ceramic Mug", Description: "Holds coffee", Price: 1500, Rating: 3.9, Tags: "kitchen", Category: Category{Name: "Home & Garden"}},
		{Name: "Paperback Novel", Description: "A gripping story", Price: 899, Rating: 4.1, Tags: "fiction", Category: Category{Name: "Books"}},
	}
}

func TestFilter_EmptySpecMatchesEverything(t *testing.T) {
	products := testProducts()

	assert.Len(t, Filter(products, FilterSpec{}), len(products))
}

func TestFilter_SearchMatchesNameDescriptionAndTags(t *testing.T) {
	products := testProducts()

	byName := Filter(products, FilterSpec{Search: "mug"})
	require.Len(t, byName, 1)
	assert.Equal(t, "Ceramic Mug", byName[0].Name)

	byDescription := Filter(products, FilterSpec{Search: "gripping"})
	require.Len(t, byDescription, 1)
	assert.Equal(t, "Paperback Novel", byDescription[0].Name)

	byTag := Filter(products, FilterSpec{Search: "audio"})
	require.Len(t, byTag, 1)
	assert.Equal(t, "Noise Cancelling Headphones", byTag[0].Name)
}

func TestFilter_SearchIsCaseInsensitive(t *testing.T) {
	matched := Filter(testProducts(), FilterSpec{Search: "CLASSIC"})

	require.Len(t, matched, 1)
	assert.Equal(t, "Classic Tee", matched[0].Name)
}

func TestFilter_CategoryUnion(t *testing.T) {
	matched := Filter(testProducts(), FilterSpec{Categories: []string{"Clothing", "Books"}})

	require.Len(t, matched, 2)
	assert.Equal(t, "Classic Tee", matched[0].Name)
	assert.Equal(t, "Paperback Novel", matched[1].Name)
}

func TestFilter_PriceBoundsInclusive(t *testing.T) {
	matched := Filter(testProducts(), FilterSpec{MinPrice: 1000, MaxPrice: 1500})

	require.Len(t, matched, 2)
	assert.Equal(t, "Classic Tee", matched[0].Name)
	assert.Equal(t, "Ceramic Mug", matched[1].Name)
}

func TestFilter_ZeroMaxPriceMeansNoUpperBound(t *testing.T) {
	matched := Filter(testProducts(), FilterSpec{MinPrice: 1500})

	require.Len(t, matched, 2)
	assert.Equal(t, "Noise Cancelling Headphones", matched[0].Name)
	assert.Equal(t, "Ceramic Mug", matched[1].Name)
}

func TestFilter_MinRating(t *testing.T) {
	matched := Filter(testProducts(), FilterSpec{MinRating: 4.5})

	require.Len(t, matched, 2)
}

func TestFilter_ConditionsCombineWithAnd(t *testing.T) {
	matched := Filter(testProducts(), FilterSpec{
		Search:     "t-shirt",
		Categories: []string{"Electronics"},
	})

	assert.Empty(t, matched)
}

func makeProducts(n int) []Product {
	products := make([]Product, n)
	for i := range products {
		products[i] = Product{Name: fmt.Sprintf("Product %02d", i+1)}
	}
	return products
}

func TestPaginate_PartialLastPage(t *testing.T) {
	products := makeProducts(17)

	assert.Equal(t, 3, TotalPages(len(products), 8))

	page, err := Paginate(products, 8, 3)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Product 17", page[0].Name)
}

func TestPaginate_FullPagePreservesOrder(t *testing.T) {
	page, err := Paginate(makeProducts(17), 8, 2)

	require.NoError(t, err)
	require.Len(t, page, 8)
	assert.Equal(t, "Product 09", page[0].Name)
	assert.Equal(t, "Product 16", page[7].Name)
}

func TestPaginate_PageOutOfRange(t *testing.T) {
	products := makeProducts(17)

	_, err := Paginate(products, 8, 0)
	assert.ErrorIs(t, err, ErrPageOutOfRange)

	_, err = Paginate(products, 8, 4)
	assert.ErrorIs(t, err, ErrPageOutOfRange)
}

func TestPaginate_PageOneOfEmptySetIsValid(t *testing.T) {
	page, err := Paginate(nil, 8, 1)

	require.NoError(t, err)
	assert.Empty(t, page)

	_, err = Paginate(nil, 8, 2)
	assert.ErrorIs(t, err, ErrPageOutOfRange)
}
