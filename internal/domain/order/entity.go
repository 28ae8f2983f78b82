// internal/domain/order/entity.go
package order

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Status represents the order status
type Status string

const (
	StatusPending        Status = "pending"
	StatusPendingPayment Status = "pending_payment" // Vestigial; kept for legacy orders
	StatusProcessing     Status = "processing"
	StatusShipped        Status = "shipped"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
)

// ErrInvalidTransition is returned when a status update would violate the
// transition table.
var ErrInvalidTransition = errors.New("invalid status transition")

// statusTransitions defines the allowed admin-driven transitions. Delivered
// and cancelled are terminal; cancelled is reachable from any other state.
var statusTransitions = map[Status][]Status{
	StatusPending:        {StatusPendingPayment, StatusProcessing, StatusCancelled},
	StatusPendingPayment: {StatusProcessing, StatusCancelled},
	StatusProcessing:     {StatusShipped, StatusCancelled},
	StatusShipped:        {StatusDelivered, StatusCancelled},
}

// IsTerminal reports whether no further transitions are allowed
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo reports whether the transition table allows moving to the
// given status.
func (s Status) CanTransitionTo(to Status) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsValid reports whether the value is a known status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPendingPayment, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// VariantSelection is the point-in-time copy of a line's selected variants,
// stored as a JSONB column on order items.
type VariantSelection map[string]string

// Value implements driver.Valuer for JSONB storage
func (v VariantSelection) Value() (driver.Value, error) {
	if len(v) == 0 {
		return nil, nil
	}
	return json.Marshal(v)
}

// Scan implements sql.Scanner for JSONB storage
func (v *VariantSelection) Scan(src interface{}) error {
	switch data := src.(type) {
	case nil:
		*v = nil
		return nil
	case []byte:
		return json.Unmarshal(data, v)
	case string:
		return json.Unmarshal([]byte(data), v)
	default:
		return fmt.Errorf("unsupported type for VariantSelection: %T", src)
	}
}

// Order is the immutable snapshot created at checkout. Items carry their own
// copy of name, price and image so later catalog edits never alter history.
// Only status transitions mutate an order after creation.
type Order struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	OrderNumber string `gorm:"uniqueIndex;not null;size:50" json:"order_number"`
	UserID      *uint  `gorm:"index" json:"user_id"` // Nullable for guest checkout
	Email       string `gorm:"not null;size:255" json:"email"`
	Status      Status `gorm:"not null;default:'pending'" json:"status"`

	// Financial information, in cents
	SubtotalAmount int64 `gorm:"not null" json:"subtotal_amount"`
	ShippingAmount int64 `gorm:"default:0" json:"shipping_amount"`
	TotalAmount    int64 `gorm:"not null" json:"total_amount"`

	// Billing is always present; shipping fields are distinct only when the
	// shopper asked to ship to a different address.
	BillingAddress         Address `gorm:"embedded;embeddedPrefix:billing_" json:"billing_address"`
	ShipToDifferentAddress bool    `gorm:"default:false" json:"ship_to_different_address"`
	ShippingAddress        Address `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`

	Currency      string `gorm:"size:3;default:'USD'" json:"currency"`
	Notes         string `gorm:"type:text" json:"notes,omitempty"`
	PaymentMethod string `gorm:"size:50" json:"payment_method,omitempty"`

	// Timestamps
	ProcessedAt *time.Time     `json:"processed_at,omitempty"`
	ShippedAt   *time.Time     `json:"shipped_at,omitempty"`
	DeliveredAt *time.Time     `json:"delivered_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Items         []Item          `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
	StatusHistory []StatusHistory `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"status_history,omitempty"`
}

// Item represents one frozen line in an order
type Item struct {
	ID               uint             `gorm:"primaryKey" json:"id"`
	OrderID          uint             `gorm:"not null;index" json:"order_id"`
	ProductID        uint             `gorm:"not null;index" json:"product_id"`
	SKU              string           `gorm:"not null;size:100" json:"sku"`
	Name             string           `gorm:"not null;size:255" json:"name"`
	ImageURL         string           `gorm:"size:500" json:"image_url,omitempty"`
	SelectedVariants VariantSelection `gorm:"type:jsonb" json:"selected_variants,omitempty"`
	Quantity         int              `gorm:"not null" json:"quantity"`
	Price            int64            `gorm:"not null" json:"price"`       // Unit price at checkout, in cents
	TotalPrice       int64            `gorm:"not null" json:"total_price"` // Quantity x Price
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// StatusHistory tracks order status changes
type StatusHistory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;index" json:"order_id"`
	Status    Status    `gorm:"not null" json:"status"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedBy uint      `gorm:"index" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// Address represents billing/shipping address fields (embedded in Order)
type Address struct {
	FirstName    string `gorm:"size:100" json:"first_name"`
	LastName     string `gorm:"size:100" json:"last_name"`
	AddressLine1 string `gorm:"size:255" json:"address_line1"`
	AddressLine2 string `gorm:"size:255" json:"address_line2"`
	City         string `gorm:"size:100" json:"city"`
	State        string `gorm:"size:100" json:"state"`
	PostalCode   string `gorm:"size:20" json:"postal_code"`
	Country      string `gorm:"size:2" json:"country"`
	Phone        string `gorm:"size:20" json:"phone"`
}

// TableName overrides
func (Order) TableName() string         { return "orders" }
func (Item) TableName() string          { return "order_items" }
func (StatusHistory) TableName() string { return "order_status_history" }

// Business methods for Order

// GetFormattedTotal returns total amount as float
func (o *Order) GetFormattedTotal() float64 {
	return float64(o.TotalAmount) / 100
}

// CanBeCancelled reports whether the order may still be cancelled
func (o *Order) CanBeCancelled() bool {
	return !o.Status.IsTerminal()
}

// AddStatusHistory appends a status change record
func (o *Order) AddStatusHistory(status Status, comment string, createdBy uint) {
	o.StatusHistory = append(o.StatusHistory, StatusHistory{
		OrderID:   o.ID,
		Status:    status,
		Comment:   comment,
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC(),
	})
}
