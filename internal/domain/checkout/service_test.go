// internal/domain/checkout/service_test.go
package checkout

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/order"
)

type memoryLineStore struct {
	carts map[string][]cart.Line
}

func (s *memoryLineStore) Load(ctx context.Context, sessionID string) ([]cart.Line, error) {
	return s.carts[sessionID], nil
}

func (s *memoryLineStore) Save(ctx context.Context, sessionID string, lines []cart.Line) error {
	s.carts[sessionID] = lines
	return nil
}

func (s *memoryLineStore) Clear(ctx context.Context, sessionID string) error {
	delete(s.carts, sessionID)
	return nil
}

type stubFinder struct {
	products map[string]*catalog.Product
}

func (f *stubFinder) GetBySKU(sku string) (*catalog.Product, error) {
	if p, ok := f.products[sku]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("product %s not found", sku)
}

type stubOrderStore struct {
	created *order.Order
	fail    bool
}

func (s *stubOrderStore) Create(o *order.Order) (*order.Order, error) {
	if s.fail {
		return nil, fmt.Errorf("write failed")
	}
	o.ID = 1
	o.OrderNumber = "ORD-20260831-00001"
	s.created = o
	return o, nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Checkout.ShippingFee = 500
	cfg.Checkout.Currency = "USD"
	return cfg
}

func testSetup(products ...*catalog.Product) (*Service, *memoryLineStore, *stubFinder, *stubOrderStore) {
	store := &memoryLineStore{carts: make(map[string][]cart.Line)}
	finder := &stubFinder{products: make(map[string]*catalog.Product)}
	for _, p := range products {
		finder.products[p.SKU] = p
	}
	orders := &stubOrderStore{}
	cfg := testConfig()
	cartService := cart.NewService(store, finder, cfg)
	return NewService(cartService, finder, orders, cfg), store, finder, orders
}

func testForm() order.CheckoutForm {
	return order.CheckoutForm{
		Email: "shopper@example.com",
		Billing: order.Address{
			FirstName:    "Jane",
			LastName:     "Doe",
			AddressLine1: "1 Main St",
			City:         "Springfield",
			PostalCode:   "12345",
			Country:      "US",
		},
	}
}

func mug(stock int) *catalog.Product {
	return &catalog.Product{
		ID:       2,
		SKU:      "MUG-1",
		Name:     "Ceramic Mug",
		Price:    1500,
		Stock:    stock,
		IsActive: true,
	}
}

func TestGetSummary_EmptyCartHasNoShippingFee(t *testing.T) {
	svc, _, _, _ := testSetup()

	summary, err := svc.GetSummary(context.Background(), "sess")
	require.NoError(t, err)

	assert.Zero(t, summary.ItemCount)
	assert.Zero(t, summary.Subtotal)
	assert.Zero(t, summary.ShippingFee)
	assert.Zero(t, summary.Total)
	assert.Equal(t, "USD", summary.Currency)
}

func TestGetSummary_Totals(t *testing.T) {
	svc, store, _, _ := testSetup(mug(10))
	store.carts["sess"] = []cart.Line{
		{Key: "MUG-1", SKU: "MUG-1", Name: "Ceramic Mug", UnitPrice: 1500, Quantity: 2},
	}

	summary, err := svc.GetSummary(context.Background(), "sess")
	require.NoError(t, err)

	assert.Equal(t, 1, summary.LineCount)
	assert.Equal(t, 2, summary.ItemCount)
	assert.Equal(t, int64(3000), summary.Subtotal)
	assert.Equal(t, int64(500), summary.ShippingFee)
	assert.Equal(t, int64(3500), summary.Total)
	assert.Empty(t, summary.Warnings)
}

func TestGetSummary_WarnsOnLowStock(t *testing.T) {
	svc, store, _, _ := testSetup(mug(1))
	store.carts["sess"] = []cart.Line{
		{Key: "MUG-1", SKU: "MUG-1", Name: "Ceramic Mug", UnitPrice: 1500, Quantity: 3},
	}

	summary, err := svc.GetSummary(context.Background(), "sess")
	require.NoError(t, err)

	require.Len(t, summary.Warnings, 1)
	assert.Contains(t, summary.Warnings[0], "Limited stock")
}

func TestGetSummary_WarnsOnMissingProduct(t *testing.T) {
	svc, store, _, _ := testSetup()
	store.carts["sess"] = []cart.Line{
		{Key: "GONE-1", SKU: "GONE-1", Name: "Discontinued Thing", UnitPrice: 900, Quantity: 1},
	}

	summary, err := svc.GetSummary(context.Background(), "sess")
	require.NoError(t, err)

	require.Len(t, summary.Warnings, 1)
	assert.Contains(t, summary.Warnings[0], "no longer available")
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	svc, _, _, _ := testSetup()

	_, err := svc.PlaceOrder(context.Background(), "sess", testForm(), nil)
	assert.ErrorContains(t, err, "cart is empty")
}

func TestPlaceOrder_Success(t *testing.T) {
	svc, store, _, orders := testSetup(mug(10))
	store.carts["sess"] = []cart.Line{
		{Key: "MUG-1", ProductID: 2, SKU: "MUG-1", Name: "Ceramic Mug", UnitPrice: 1500, Quantity: 2},
	}

	response, err := svc.PlaceOrder(context.Background(), "sess", testForm(), nil)
	require.NoError(t, err)

	require.NotNil(t, orders.created)
	assert.Equal(t, "ORD-20260831-00001", response.Order.OrderNumber)
	assert.Equal(t, int64(3000), orders.created.SubtotalAmount)
	assert.Equal(t, int64(500), orders.created.ShippingAmount)
	assert.Equal(t, int64(3500), orders.created.TotalAmount)
	assert.Equal(t, order.StatusPending, orders.created.Status)
	assert.Equal(t, "USD", orders.created.Currency)
	assert.Nil(t, orders.created.UserID)

	// The cart is cleared only after the order commits
	assert.Empty(t, store.carts["sess"])
}

func TestPlaceOrder_AttachesUser(t *testing.T) {
	svc, store, _, orders := testSetup(mug(10))
	store.carts["sess"] = []cart.Line{
		{Key: "MUG-1", ProductID: 2, SKU: "MUG-1", Name: "Ceramic Mug", UnitPrice: 1500, Quantity: 1},
	}

	userID := uint(7)
	_, err := svc.PlaceOrder(context.Background(), "sess", testForm(), &userID)
	require.NoError(t, err)

	require.NotNil(t, orders.created.UserID)
	assert.Equal(t, uint(7), *orders.created.UserID)
}

func TestPlaceOrder_RefreshesPrices(t *testing.T) {
	product := mug(10)
	svc, store, _, orders := testSetup(product)
	// Price captured at add time is stale
	store.carts["sess"] = []cart.Line{
		{Key: "MUG-1", ProductID: 2, SKU: "MUG-1", Name: "Ceramic Mug", UnitPrice: 1200, Quantity: 1},
	}
	product.Price = 1800

	_, err := svc.PlaceOrder(context.Background(), "sess", testForm(), nil)
	require.NoError(t, err)

	require.Len(t, orders.created.Items, 1)
	assert.Equal(t, int64(1800), orders.created.Items[0].Price)
}

func TestPlaceOrder_InsufficientStock(t *testing.T) {
	svc, store, _, orders := testSetup(mug(1))
	store.carts["sess"] = []cart.Line{
		{Key: "MUG-1", ProductID: 2, SKU: "MUG-1", Name: "Ceramic Mug", UnitPrice: 1500, Quantity: 3},
	}

	_, err := svc.PlaceOrder(context.Background(), "sess", testForm(), nil)
	assert.ErrorContains(t, err, "insufficient stock")
	assert.Nil(t, orders.created)

	// A failed checkout leaves the cart untouched
	assert.Len(t, store.carts["sess"], 1)
}

func TestPlaceOrder_StoreFailureKeepsCart(t *testing.T) {
	svc, store, _, orders := testSetup(mug(10))
	orders.fail = true
	store.carts["sess"] = []cart.Line{
		{Key: "MUG-1", ProductID: 2, SKU: "MUG-1", Name: "Ceramic Mug", UnitPrice: 1500, Quantity: 1},
	}

	_, err := svc.PlaceOrder(context.Background(), "sess", testForm(), nil)
	assert.ErrorContains(t, err, "failed to place order")
	assert.Len(t, store.carts["sess"], 1)
}
