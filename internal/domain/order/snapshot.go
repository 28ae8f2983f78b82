// internal/domain/order/snapshot.go
package order

import (
	"time"

	"github.com/your-org/storefront/internal/domain/cart"
)

// CheckoutForm carries the billing and shipping data submitted at checkout
type CheckoutForm struct {
	Email                  string   `json:"email" binding:"required,email"`
	Billing                Address  `json:"billing_address" binding:"required"`
	ShipToDifferentAddress bool     `json:"ship_to_different_address"`
	Shipping               *Address `json:"shipping_address,omitempty"`
	Notes                  string   `json:"notes,omitempty"`
	PaymentMethod          string   `json:"payment_method,omitempty"`
}

// BuildOrder freezes cart lines plus checkout form data into an order
// snapshot. Each line becomes an item with a point-in-time copy of name,
// price, image and selection; the cart-session-only stock ceiling is
// dropped. The flat shipping fee applies only to non-empty carts, and the
// initial status is always pending. The caller persists the returned value
// through the order store.
func BuildOrder(lines []cart.Line, form CheckoutForm, shippingFee int64) Order {
	items := make([]Item, len(lines))
	var subtotal int64
	for i, line := range lines {
		items[i] = Item{
			ProductID:        line.ProductID,
			SKU:              line.SKU,
			Name:             line.Name,
			ImageURL:         line.ImageURL,
			SelectedVariants: VariantSelection(line.SelectedVariants),
			Quantity:         line.Quantity,
			Price:            line.UnitPrice,
			TotalPrice:       line.LineTotal(),
		}
		subtotal += line.LineTotal()
	}

	if len(lines) == 0 {
		shippingFee = 0
	}

	shipping := form.Billing
	if form.ShipToDifferentAddress && form.Shipping != nil {
		shipping = *form.Shipping
	}

	return Order{
		Email:                  form.Email,
		Status:                 StatusPending,
		SubtotalAmount:         subtotal,
		ShippingAmount:         shippingFee,
		TotalAmount:            subtotal + shippingFee,
		BillingAddress:         form.Billing,
		ShipToDifferentAddress: form.ShipToDifferentAddress && form.Shipping != nil,
		ShippingAddress:        shipping,
		Notes:                  form.Notes,
		PaymentMethod:          form.PaymentMethod,
		CreatedAt:              time.Now().UTC(),
		Items:                  items,
	}
}
