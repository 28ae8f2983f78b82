// internal/domain/cart/service.go
package cart

import (
	"context"
	"errors"
	"time"

	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/catalog"
)

// ErrIncompleteSelection is returned when a variant-bearing product is added
// without a value for every declared variant group.
var ErrIncompleteSelection = errors.New("variant selection incomplete")

// ProductFinder resolves live product data for stock ceiling refreshes
type ProductFinder interface {
	GetBySKU(sku string) (*catalog.Product, error)
}

// Service is the cart aggregator. It keeps an ordered sequence of lines per
// session, merged by the composite line key, and persists through the line
// store after every mutation. Quantity mutations clamp rather than error so
// the cart is always left in a valid state.
type Service struct {
	store    LineStore
	products ProductFinder
	config   *config.Config
}

// NewService creates a new cart service
func NewService(store LineStore, products ProductFinder, cfg *config.Config) *Service {
	return &Service{
		store:    store,
		products: products,
		config:   cfg,
	}
}

// Response represents a cart with its lines and derived totals
type Response struct {
	SessionID string `json:"session_id"`
	Lines     []Line `json:"lines"`
	Totals    Totals `json:"totals"`
}

// AddRequest represents add-to-cart data
type AddRequest struct {
	ProductID        uint              `json:"product_id" binding:"required"`
	Quantity         int               `json:"quantity" binding:"required,min=1"`
	SelectedVariants map[string]string `json:"selected_variants"`
}

// UpdateQuantityRequest represents a cart line quantity update
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// Get retrieves the session's cart with totals
func (s *Service) Get(ctx context.Context, sessionID string) (*Response, error) {
	lines, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return &Response{
		SessionID: sessionID,
		Lines:     lines,
		Totals:    CalculateTotals(lines),
	}, nil
}

// Add puts a product configuration into the cart, merging with an existing
// line under the same key. The total quantity is clamped to the product's
// current stock; excess is truncated silently. Returns the line key.
func (s *Service) Add(ctx context.Context, sessionID string, product *catalog.Product, quantity int, selected map[string]string) (string, error) {
	if product.HasVariants() && !product.SelectionComplete(selected) {
		return "", ErrIncompleteSelection
	}

	key := BuildLineKey(product.SKU, selected)

	lines, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return "", err
	}

	ceiling := product.Stock
	unitPrice := catalog.ResolveUnitPrice(product.Price, product.VariantGroups, selected)

	merged := false
	for i := range lines {
		if lines[i].Key != key {
			continue
		}
		clamped := clampQuantity(lines[i].Quantity+quantity, ceiling)
		if clamped < 1 {
			// Product went out of stock since the line was added
			lines = append(lines[:i], lines[i+1:]...)
		} else {
			lines[i].Quantity = clamped
			lines[i].UnitPrice = unitPrice // Refresh in case the price changed
			lines[i].StockCeiling = ceiling
		}
		merged = true
		break
	}

	if !merged {
		clamped := clampQuantity(quantity, ceiling)
		if clamped < 1 {
			// Out of stock: nothing to add, cart stays valid
			return key, nil
		}
		lines = append(lines, Line{
			Key:              key,
			ProductID:        product.ID,
			SKU:              product.SKU,
			Name:             product.Name,
			ImageURL:         product.PrimaryImageURL(),
			UnitPrice:        unitPrice,
			Quantity:         clamped,
			SelectedVariants: selected,
			StockCeiling:     ceiling,
			AddedAt:          time.Now().UTC(),
		})
	}

	if err := s.store.Save(ctx, sessionID, lines); err != nil {
		return "", err
	}

	return key, nil
}

// UpdateQuantity sets a line's quantity, clamped to [1, stock ceiling]. The
// ceiling is re-resolved against live product data when available, falling
// back to the value captured at add time. Updating an absent key is a no-op.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID, key string, quantity int) error {
	lines, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return err
	}

	updated := false
	for i := range lines {
		if lines[i].Key != key {
			continue
		}
		ceiling := s.resolveCeiling(&lines[i])
		clamped := clampQuantity(quantity, ceiling)
		if clamped < 1 {
			lines = append(lines[:i], lines[i+1:]...)
		} else {
			lines[i].Quantity = clamped
			lines[i].StockCeiling = ceiling
		}
		updated = true
		break
	}

	if !updated {
		return nil
	}

	return s.store.Save(ctx, sessionID, lines)
}

// Remove deletes a line by key. Removing an absent key is not an error.
func (s *Service) Remove(ctx context.Context, sessionID, key string) error {
	lines, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return err
	}

	kept := lines[:0]
	removed := false
	for _, line := range lines {
		if line.Key == key {
			removed = true
			continue
		}
		kept = append(kept, line)
	}

	if !removed {
		return nil
	}

	return s.store.Save(ctx, sessionID, kept)
}

// Clear empties the session's cart
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.store.Clear(ctx, sessionID)
}

// ItemCount returns the sum of quantities across all lines
func (s *Service) ItemCount(ctx context.Context, sessionID string) (int, error) {
	lines, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return CalculateTotals(lines).ItemCount, nil
}

// Subtotal returns the sum of unit price x quantity across all lines
func (s *Service) Subtotal(ctx context.Context, sessionID string) (int64, error) {
	lines, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return CalculateTotals(lines).Subtotal, nil
}

// resolveCeiling prefers live stock data over the add-time snapshot
func (s *Service) resolveCeiling(line *Line) int {
	if s.products != nil {
		if product, err := s.products.GetBySKU(line.SKU); err == nil {
			return product.Stock
		}
	}
	return line.StockCeiling
}

// clampQuantity bounds a requested quantity to [1, ceiling]. A ceiling
// below 1 yields 0, meaning nothing can be held.
func clampQuantity(quantity, ceiling int) int {
	if ceiling < 1 {
		return 0
	}
	if quantity < 1 {
		return 1
	}
	if quantity > ceiling {
		return ceiling
	}
	return quantity
}
