// internal/domain/cart/service_test.go
package cart

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/catalog"
)

// memoryLineStore is an in-memory LineStore for tests
type memoryLineStore struct {
	carts map[string][]Line
}

func newMemoryLineStore() *memoryLineStore {
	return &memoryLineStore{carts: make(map[string][]Line)}
}

func (s *memoryLineStore) Load(ctx context.Context, sessionID string) ([]Line, error) {
	return s.carts[sessionID], nil
}

func (s *memoryLineStore) Save(ctx context.Context, sessionID string, lines []Line) error {
	s.carts[sessionID] = lines
	return nil
}

func (s *memoryLineStore) Clear(ctx context.Context, sessionID string) error {
	delete(s.carts, sessionID)
	return nil
}

// stubFinder resolves products by SKU from a fixed set
type stubFinder struct {
	products map[string]*catalog.Product
}

func (f *stubFinder) GetBySKU(sku string) (*catalog.Product, error) {
	if p, ok := f.products[sku]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("product %s not found", sku)
}

func newTestService(products ...*catalog.Product) (*Service, *stubFinder) {
	finder := &stubFinder{products: make(map[string]*catalog.Product)}
	for _, p := range products {
		finder.products[p.SKU] = p
	}
	return NewService(newMemoryLineStore(), finder, &config.Config{}), finder
}

func simpleProduct(sku string, price int64, stock int) *catalog.Product {
	return &catalog.Product{
		ID:       1,
		SKU:      sku,
		Name:     "Test Product " + sku,
		Price:    price,
		Stock:    stock,
		IsActive: true,
	}
}

func variantProduct(sku string, price int64, stock int) *catalog.Product {
	p := simpleProduct(sku, price, stock)
	p.VariantGroups = catalog.VariantGroups{
		{
			Name: "Size",
			Options: []catalog.VariantOption{
				{Value: "M"},
				{Value: "XL", AdditionalPrice: 200},
			},
		},
	}
	return p
}

func TestAdd_NewLine(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	key, err := svc.Add(ctx, "sess", simpleProduct("MUG-1", 1500, 10), 2, nil)
	require.NoError(t, err)
	assert.Equal(t, "MUG-1", key)

	response, err := svc.Get(ctx, "sess")
	require.NoError(t, err)
	require.Len(t, response.Lines, 1)
	assert.Equal(t, 2, response.Lines[0].Quantity)
	assert.Equal(t, int64(1500), response.Lines[0].UnitPrice)
	assert.Equal(t, int64(3000), response.Totals.Subtotal)
}

func TestAdd_MergesSameConfiguration(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	product := variantProduct("TSHIRT-1", 1000, 10)
	selected := map[string]string{"Size": "M"}

	key1, err := svc.Add(ctx, "sess", product, 2, selected)
	require.NoError(t, err)
	key2, err := svc.Add(ctx, "sess", product, 3, selected)
	require.NoError(t, err)
	assert.Equal(t, key1, key2)

	response, err := svc.Get(ctx, "sess")
	require.NoError(t, err)
	require.Len(t, response.Lines, 1)
	assert.Equal(t, 5, response.Lines[0].Quantity)
}

func TestAdd_DistinctSelectionsStaySeparate(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	product := variantProduct("TSHIRT-1", 1000, 10)

	_, err := svc.Add(ctx, "sess", product, 1, map[string]string{"Size": "M"})
	require.NoError(t, err)
	_, err = svc.Add(ctx, "sess", product, 1, map[string]string{"Size": "XL"})
	require.NoError(t, err)

	response, err := svc.Get(ctx, "sess")
	require.NoError(t, err)
	require.Len(t, response.Lines, 2)
	assert.Equal(t, 2, response.Totals.LineCount)
	assert.Equal(t, 2, response.Totals.ItemCount)
	// The XL option carries a price delta
	assert.Equal(t, int64(1000+1200), response.Totals.Subtotal)
}

func TestAdd_IncompleteSelectionRejected(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Add(context.Background(), "sess", variantProduct("TSHIRT-1", 1000, 10), 1, nil)
	assert.ErrorIs(t, err, ErrIncompleteSelection)
}

func TestAdd_ClampsToStock(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Add(ctx, "sess", simpleProduct("MUG-1", 1500, 3), 10, nil)
	require.NoError(t, err)

	response, err := svc.Get(ctx, "sess")
	require.NoError(t, err)
	require.Len(t, response.Lines, 1)
	assert.Equal(t, 3, response.Lines[0].Quantity)
}

func TestAdd_MergeClampsCombinedQuantity(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	product := simpleProduct("MUG-1", 1500, 5)

	_, err := svc.Add(ctx, "sess", product, 4, nil)
	require.NoError(t, err)
	_, err = svc.Add(ctx, "sess", product, 4, nil)
	require.NoError(t, err)

	response, err := svc.Get(ctx, "sess")
	require.NoError(t, err)
	require.Len(t, response.Lines, 1)
	assert.Equal(t, 5, response.Lines[0].Quantity)
}

func TestAdd_OutOfStockAddsNothing(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Add(ctx, "sess", simpleProduct("MUG-1", 1500, 0), 1, nil)
	require.NoError(t, err)

	response, err := svc.Get(ctx, "sess")
	require.NoError(t, err)
	assert.Empty(t, response.Lines)
}

func TestUpdateQuantity_ClampsToLiveStock(t *testing.T) {
	product := simpleProduct("MUG-1", 1500, 10)
	svc, finder := newTestService(product)
	ctx := context.Background()

	key, err := svc.Add(ctx, "sess", product, 2, nil)
	require.NoError(t, err)

	// Stock dropped since the line was added
	finder.products["MUG-1"].Stock = 4

	require.NoError(t, svc.UpdateQuantity(ctx, "sess", key, 9))

	response, err := svc.Get(ctx, "sess")
	require.NoError(t, err)
	require.Len(t, response.Lines, 1)
	assert.Equal(t, 4, response.Lines[0].Quantity)
}

func TestUpdateQuantity_RemovesLineWhenOutOfStock(t *testing.T) {
	product := simpleProduct("MUG-1", 1500, 10)
	svc, finder := newTestService(product)
	ctx := context.Background()

	key, err := svc.Add(ctx, "sess", product, 2, nil)
	require.NoError(t, err)

	finder.products["MUG-1"].Stock = 0

	require.NoError(t, svc.UpdateQuantity(ctx, "sess", key, 5))

	response, err := svc.Get(ctx, "sess")
	require.NoError(t, err)
	assert.Empty(t, response.Lines)
}

func TestUpdateQuantity_UnknownKeyIsNoOp(t *testing.T) {
	svc, _ := newTestService()

	assert.NoError(t, svc.UpdateQuantity(context.Background(), "sess", "NOPE", 3))
}

func TestRemove_Idempotent(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	key, err := svc.Add(ctx, "sess", simpleProduct("MUG-1", 1500, 10), 1, nil)
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, "sess", key))
	require.NoError(t, svc.Remove(ctx, "sess", key))

	response, err := svc.Get(ctx, "sess")
	require.NoError(t, err)
	assert.Empty(t, response.Lines)
}

func TestClear_EmptiesCart(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Add(ctx, "sess", simpleProduct("MUG-1", 1500, 10), 2, nil)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, "sess"))

	count, err := svc.ItemCount(ctx, "sess")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCalculateTotals(t *testing.T) {
	lines := []Line{
		{UnitPrice: 1000, Quantity: 2},
		{UnitPrice: 2500, Quantity: 1},
	}

	totals := CalculateTotals(lines)

	assert.Equal(t, 2, totals.LineCount)
	assert.Equal(t, 3, totals.ItemCount)
	assert.Equal(t, int64(4500), totals.Subtotal)
}
