// internal/domain/cart/entity.go
package cart

import "time"

// Line represents one distinct purchasable configuration in a cart. Lines
// are keyed by the composite identity key and live only in the session's
// durable store until checkout freezes them into an order.
type Line struct {
	Key              string            `json:"key"`
	ProductID        uint              `json:"product_id"`
	SKU              string            `json:"sku"`
	Name             string            `json:"name"`
	ImageURL         string            `json:"image_url,omitempty"`
	UnitPrice        int64             `json:"unit_price"` // Base price plus selected option deltas, in cents
	Quantity         int               `json:"quantity"`
	SelectedVariants map[string]string `json:"selected_variants,omitempty"`
	StockCeiling     int               `json:"stock_ceiling"` // Available stock captured at add time
	AddedAt          time.Time         `json:"added_at"`
}

// LineTotal returns unit price times quantity
func (l *Line) LineTotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// Totals represents derived cart aggregates
type Totals struct {
	LineCount int   `json:"line_count"` // Number of distinct lines
	ItemCount int   `json:"item_count"` // Sum of all quantities
	Subtotal  int64 `json:"subtotal"`   // Sum of unit price x quantity, in cents
}

// CalculateTotals derives the cart aggregates from its lines
func CalculateTotals(lines []Line) Totals {
	var totals Totals
	totals.LineCount = len(lines)
	for i := range lines {
		totals.ItemCount += lines[i].Quantity
		totals.Subtotal += lines[i].LineTotal()
	}
	return totals
}
