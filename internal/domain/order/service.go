// internal/domain/order/service.go
package order

import (
	"fmt"
	"time"

	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/catalog"
	"gorm.io/gorm"
)

// Service is the order store: transactional creation, lookups, status
// transitions and the aggregate queries behind the admin dashboard.
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new order service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// ListRequest represents order list query parameters
type ListRequest struct {
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=20"`
	Status    Status `form:"status"`
	UserID    uint   `form:"user_id"`
	Email     string `form:"email"`
	SortBy    string `form:"sort_by,default=created_at"`
	SortOrder string `form:"sort_order,default=desc"`
}

// ListResponse represents orders with pagination
type ListResponse struct {
	Orders     []Order            `json:"orders"`
	Pagination catalog.Pagination `json:"pagination"`
}

// Create persists an order snapshot. The order, its items, the initial
// status history row and the stock decrement commit together or not at all:
// a failed write never leaves partial order lines behind.
func (s *Service) Create(o *Order) (*Order, error) {
	if len(o.Items) == 0 {
		return nil, fmt.Errorf("order has no items")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		items := o.Items
		history := o.StatusHistory
		o.Items = nil
		o.StatusHistory = nil

		if err := tx.Create(o).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		o.OrderNumber = s.generateOrderNumber(o.ID)
		if err := tx.Model(o).Update("order_number", o.OrderNumber).Error; err != nil {
			return fmt.Errorf("failed to update order number: %w", err)
		}

		for i := range items {
			items[i].OrderID = o.ID
			if err := tx.Create(&items[i]).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}

			result := tx.Model(&catalog.Product{}).
				Where("id = ? AND stock >= ?", items[i].ProductID, items[i].Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", items[i].Quantity))
			if result.Error != nil {
				return fmt.Errorf("failed to reserve stock: %w", result.Error)
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("insufficient stock for %s", items[i].Name)
			}
		}
		o.Items = items

		initial := StatusHistory{
			OrderID:   o.ID,
			Status:    o.Status,
			Comment:   "Order created",
			CreatedAt: time.Now().UTC(),
		}
		if err := tx.Create(&initial).Error; err != nil {
			return fmt.Errorf("failed to create status history: %w", err)
		}
		o.StatusHistory = append(history, initial)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return o, nil
}

// List retrieves orders with filtering and pagination
func (s *Service) List(req *ListRequest) (*ListResponse, error) {
	var orders []Order
	var total int64

	query := s.db.Model(&Order{}).
		Preload("Items").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		})

	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}

	if req.UserID > 0 {
		query = query.Where("user_id = ?", req.UserID)
	}

	if req.Email != "" {
		query = query.Where("email = ?", req.Email)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	query = query.Order(s.buildOrderClause(req.SortBy, req.SortOrder))

	offset := (req.Page - 1) * req.Limit
	if err := query.Offset(offset).Limit(req.Limit).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	pagination := catalog.Pagination{
		Page:       req.Page,
		Limit:      req.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    req.Page < totalPages,
		HasPrev:    req.Page > 1,
	}

	return &ListResponse{
		Orders:     orders,
		Pagination: pagination,
	}, nil
}

// Get retrieves a single order by ID
func (s *Service) Get(id uint) (*Order, error) {
	var o Order
	result := s.db.
		Preload("Items").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Where("id = ?", id).
		First(&o)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", result.Error)
	}

	return &o, nil
}

// GetByNumber retrieves a single order by order number
func (s *Service) GetByNumber(orderNumber string) (*Order, error) {
	var o Order
	result := s.db.
		Preload("Items").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Where("order_number = ?", orderNumber).
		First(&o)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", result.Error)
	}

	return &o, nil
}

// GetUserOrders retrieves orders for a specific user
func (s *Service) GetUserOrders(userID uint, page, limit int) (*ListResponse, error) {
	return s.List(&ListRequest{
		Page:   page,
		Limit:  limit,
		UserID: userID,
	})
}

// UpdateStatus transitions an order's status. Illegal transitions per the
// transition table are rejected with ErrInvalidTransition and leave the
// order untouched.
func (s *Service) UpdateStatus(orderID uint, status Status, comment string, updatedBy uint) error {
	if !status.IsValid() {
		return fmt.Errorf("unknown order status: %s", status)
	}

	var o Order
	if err := s.db.First(&o, orderID).Error; err != nil {
		return fmt.Errorf("order not found: %w", err)
	}

	if !o.Status.CanTransitionTo(status) {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, o.Status, status)
	}

	updates := map[string]interface{}{
		"status": status,
	}

	now := time.Now().UTC()
	switch status {
	case StatusProcessing:
		updates["processed_at"] = now
	case StatusShipped:
		updates["shipped_at"] = now
	case StatusDelivered:
		updates["delivered_at"] = now
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&o).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}

		history := StatusHistory{
			OrderID:   orderID,
			Status:    status,
			Comment:   comment,
			CreatedBy: updatedBy,
			CreatedAt: now,
		}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("failed to create status history: %w", err)
		}

		return nil
	})
}

// Cancel cancels an order and restores the reserved stock
func (s *Service) Cancel(orderID uint, reason string, cancelledBy uint) error {
	var o Order
	if err := s.db.First(&o, orderID).Error; err != nil {
		return fmt.Errorf("order not found: %w", err)
	}

	if !o.CanBeCancelled() {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, o.Status, StatusCancelled)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var items []Item
		if err := tx.Where("order_id = ?", orderID).Find(&items).Error; err != nil {
			return fmt.Errorf("failed to get order items: %w", err)
		}

		for _, item := range items {
			err := tx.Model(&catalog.Product{}).
				Where("id = ?", item.ProductID).
				UpdateColumn("stock", gorm.Expr("stock + ?", item.Quantity)).Error
			if err != nil {
				return fmt.Errorf("failed to restore stock: %w", err)
			}
		}

		if err := tx.Model(&o).Update("status", StatusCancelled).Error; err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}

		history := StatusHistory{
			OrderID:   orderID,
			Status:    StatusCancelled,
			Comment:   fmt.Sprintf("Order cancelled: %s", reason),
			CreatedBy: cancelledBy,
			CreatedAt: time.Now().UTC(),
		}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("failed to create status history: %w", err)
		}

		return nil
	})
}

// Aggregate queries for the admin dashboard

// CountAll returns the total number of orders
func (s *Service) CountAll() (int64, error) {
	var count int64
	if err := s.db.Model(&Order{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}

// RevenueWhereStatus sums the total amount of orders in the given status
func (s *Service) RevenueWhereStatus(status Status) (int64, error) {
	var revenue int64
	err := s.db.Model(&Order{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Where("status = ?", status).
		Scan(&revenue).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum revenue: %w", err)
	}
	return revenue, nil
}

// DistinctEmailCount counts distinct customer emails across all orders
func (s *Service) DistinctEmailCount() (int64, error) {
	var count int64
	err := s.db.Model(&Order{}).
		Distinct("email").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return count, nil
}

// Private helpers

func (s *Service) generateOrderNumber(orderID uint) string {
	// Format: ORD-YYYYMMDD-XXXXX
	return fmt.Sprintf("ORD-%s-%05d", time.Now().Format("20060102"), orderID)
}

func (s *Service) buildOrderClause(sortBy, sortOrder string) string {
	validSortFields := map[string]bool{
		"created_at":   true,
		"updated_at":   true,
		"total_amount": true,
		"status":       true,
		"order_number": true,
	}

	if !validSortFields[sortBy] {
		sortBy = "created_at"
	}

	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	return fmt.Sprintf("%s %s", sortBy, sortOrder)
}
