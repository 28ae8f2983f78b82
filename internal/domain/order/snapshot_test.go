// internal/domain/order/snapshot_test.go
package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront/internal/domain/cart"
)

func testForm() CheckoutForm {
	return CheckoutForm{
		Email: "shopper@example.com",
		Billing: Address{
			FirstName:    "Jane",
			LastName:     "Doe",
			AddressLine1: "1 Main St",
			City:         "Springfield",
			PostalCode:   "12345",
			Country:      "US",
		},
	}
}

func testLines() []cart.Line {
	return []cart.Line{
		{
			Key:              "TSHIRT-1::Size-XL",
			ProductID:        1,
			SKU:              "TSHIRT-1",
			Name:             "Classic Tee",
			UnitPrice:        1200,
			Quantity:         2,
			SelectedVariants: map[string]string{"Size": "XL"},
			StockCeiling:     10,
		},
		{
			Key:       "MUG-1",
			ProductID: 2,
			SKU:       "MUG-1",
			Name:      "Ceramic Mug",
			UnitPrice: 1500,
			Quantity:  1,
		},
	}
}

func TestBuildOrder_Totals(t *testing.T) {
	o := BuildOrder(testLines(), testForm(), 500)

	assert.Equal(t, int64(3900), o.SubtotalAmount)
	assert.Equal(t, int64(500), o.ShippingAmount)
	assert.Equal(t, int64(4400), o.TotalAmount)
	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, "shopper@example.com", o.Email)
}

func TestBuildOrder_FreezesLineData(t *testing.T) {
	o := BuildOrder(testLines(), testForm(), 500)

	require.Len(t, o.Items, 2)

	first := o.Items[0]
	assert.Equal(t, uint(1), first.ProductID)
	assert.Equal(t, "TSHIRT-1", first.SKU)
	assert.Equal(t, "Classic Tee", first.Name)
	assert.Equal(t, 2, first.Quantity)
	assert.Equal(t, int64(1200), first.Price)
	assert.Equal(t, int64(2400), first.TotalPrice)
	assert.Equal(t, VariantSelection{"Size": "XL"}, first.SelectedVariants)

	second := o.Items[1]
	assert.Equal(t, "MUG-1", second.SKU)
	assert.Empty(t, second.SelectedVariants)
}

func TestBuildOrder_EmptyCartSkipsShippingFee(t *testing.T) {
	o := BuildOrder(nil, testForm(), 500)

	assert.Zero(t, o.SubtotalAmount)
	assert.Zero(t, o.ShippingAmount)
	assert.Zero(t, o.TotalAmount)
	assert.Empty(t, o.Items)
}

func TestBuildOrder_ShippingDefaultsToBilling(t *testing.T) {
	o := BuildOrder(testLines(), testForm(), 500)

	assert.False(t, o.ShipToDifferentAddress)
	assert.Equal(t, o.BillingAddress, o.ShippingAddress)
}

func TestBuildOrder_SeparateShippingAddress(t *testing.T) {
	form := testForm()
	form.ShipToDifferentAddress = true
	form.Shipping = &Address{
		FirstName:    "John",
		LastName:     "Doe",
		AddressLine1: "2 Oak Ave",
		City:         "Shelbyville",
		PostalCode:   "54321",
		Country:      "US",
	}

	o := BuildOrder(testLines(), form, 500)

	assert.True(t, o.ShipToDifferentAddress)
	assert.Equal(t, "2 Oak Ave", o.ShippingAddress.AddressLine1)
	assert.Equal(t, "1 Main St", o.BillingAddress.AddressLine1)
}

func TestBuildOrder_ShipFlagWithoutAddressFallsBack(t *testing.T) {
	form := testForm()
	form.ShipToDifferentAddress = true
	form.Shipping = nil

	o := BuildOrder(testLines(), form, 500)

	assert.False(t, o.ShipToDifferentAddress)
	assert.Equal(t, o.BillingAddress, o.ShippingAddress)
}
