// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"fmt"

	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/order"
)

// OrderStore persists a built order snapshot.
type OrderStore interface {
	Create(o *order.Order) (*order.Order, error)
}

// Service drives the checkout flow: it re-validates the cart against live
// catalog data, freezes it into an order snapshot, persists it and clears
// the cart. The cart is cleared only after the order commits, so a failed
// checkout leaves the session exactly as it was.
type Service struct {
	cartService *cart.Service
	products    cart.ProductFinder
	orders      OrderStore
	config      *config.Config
}

// NewService creates a new checkout service
func NewService(cartService *cart.Service, products cart.ProductFinder, orders OrderStore, cfg *config.Config) *Service {
	return &Service{
		cartService: cartService,
		products:    products,
		orders:      orders,
		config:      cfg,
	}
}

// Summary represents the pricing preview shown before placing an order
type Summary struct {
	Lines       []cart.Line `json:"lines"`
	LineCount   int         `json:"line_count"`
	ItemCount   int         `json:"item_count"`
	Subtotal    int64       `json:"subtotal"`
	ShippingFee int64       `json:"shipping_fee"`
	Total       int64       `json:"total"`
	Currency    string      `json:"currency"`
	Warnings    []string    `json:"warnings,omitempty"`
}

// PlaceOrderResponse represents a successful checkout
type PlaceOrderResponse struct {
	Order   *order.Order `json:"order"`
	Message string       `json:"message"`
}

// GetSummary builds the checkout preview for the session's cart. Lines are
// re-checked against live stock so the preview reflects what would actually
// be ordered; quantities that no longer fit produce warnings, not errors.
func (s *Service) GetSummary(ctx context.Context, sessionID string) (*Summary, error) {
	cartResponse, err := s.cartService.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	lines := cartResponse.Lines

	summary := &Summary{
		Lines:    lines,
		Currency: s.config.Checkout.Currency,
	}

	for _, line := range lines {
		summary.ItemCount += line.Quantity
		summary.Subtotal += line.LineTotal()

		product, err := s.products.GetBySKU(line.SKU)
		if err != nil {
			summary.Warnings = append(summary.Warnings,
				fmt.Sprintf("%s is no longer available", line.Name))
			continue
		}
		if product.Stock < line.Quantity {
			summary.Warnings = append(summary.Warnings,
				fmt.Sprintf("Limited stock for %s. Available: %d", line.Name, product.Stock))
		}
	}
	summary.LineCount = len(lines)

	if summary.ItemCount > 0 {
		summary.ShippingFee = s.config.Checkout.ShippingFee
	}
	summary.Total = summary.Subtotal + summary.ShippingFee

	return summary, nil
}

// PlaceOrder validates the cart, freezes it into an order and persists it.
// Stock is reserved inside the order store's transaction, so two concurrent
// checkouts cannot both take the last unit.
func (s *Service) PlaceOrder(ctx context.Context, sessionID string, form order.CheckoutForm, userID *uint) (*PlaceOrderResponse, error) {
	cartResponse, err := s.cartService.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	lines := cartResponse.Lines
	if len(lines) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}

	// Refresh each line against the live catalog before freezing it. A
	// price change since the item was added is taken at the current price.
	for i := range lines {
		product, err := s.products.GetBySKU(lines[i].SKU)
		if err != nil {
			return nil, fmt.Errorf("%s is no longer available", lines[i].Name)
		}
		if !product.IsInStock() || product.Stock < lines[i].Quantity {
			return nil, fmt.Errorf("insufficient stock for %s", lines[i].Name)
		}
		lines[i].UnitPrice = catalog.ResolveUnitPrice(product.Price, product.VariantGroups, lines[i].SelectedVariants)
	}

	o := order.BuildOrder(lines, form, s.config.Checkout.ShippingFee)
	o.UserID = userID
	o.Currency = s.config.Checkout.Currency

	created, err := s.orders.Create(&o)
	if err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	// Clear the cart only once the order is committed
	if err := s.cartService.Clear(ctx, sessionID); err != nil {
		return nil, fmt.Errorf("order %s placed but cart not cleared: %w", created.OrderNumber, err)
	}

	return &PlaceOrderResponse{
		Order:   created,
		Message: "Order placed successfully",
	}, nil
}
