// internal/domain/analytics/service.go
package analytics

import (
	"time"

	"github.com/your-org/storefront/internal/config"
	"gorm.io/gorm"
)

// Service handles admin analytics queries
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new analytics service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// DashboardStats represents overall dashboard statistics
type DashboardStats struct {
	// Revenue metrics
	TotalRevenue     int64   `json:"total_revenue"` // In cents
	RevenueToday     int64   `json:"revenue_today"`
	RevenueThisMonth int64   `json:"revenue_this_month"`
	RevenueGrowth    float64 `json:"revenue_growth"` // Percentage vs last month

	// Order metrics
	TotalOrders     int64 `json:"total_orders"`
	OrdersToday     int64 `json:"orders_today"`
	OrdersThisMonth int64 `json:"orders_this_month"`
	PendingOrders   int64 `json:"pending_orders"`

	// Customer metrics
	TotalCustomers int64 `json:"total_customers"` // Distinct order emails

	// Catalog metrics
	TotalProducts      int64 `json:"total_products"`
	ActiveProducts     int64 `json:"active_products"`
	OutOfStockProducts int64 `json:"out_of_stock_products"`
	LowStockProducts   int64 `json:"low_stock_products"`

	AvgOrderValue int64 `json:"avg_order_value"` // In cents
}

// StatusData represents order counts and value grouped by status
type StatusData struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
	Value  int64  `json:"value"`
}

// ProductSalesData represents per-product sales totals
type ProductSalesData struct {
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	SKU         string `json:"sku"`
	TotalSold   int64  `json:"total_sold"`
	Revenue     int64  `json:"revenue"`
}

// TimeSeriesData represents a dated revenue point
type TimeSeriesData struct {
	Date  string `json:"date"`
	Value int64  `json:"value"`
	Count int64  `json:"count"`
}

// GetDashboardStats retrieves overall dashboard statistics. Cancelled
// orders never count toward revenue.
func (s *Service) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}
	now := time.Now()

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonth := thisMonth.AddDate(0, -1, 0)

	// Revenue metrics
	s.db.Raw("SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE status <> 'cancelled'").Scan(&stats.TotalRevenue)
	s.db.Raw("SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE status <> 'cancelled' AND created_at >= ?", today).Scan(&stats.RevenueToday)
	s.db.Raw("SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE status <> 'cancelled' AND created_at >= ?", thisMonth).Scan(&stats.RevenueThisMonth)

	var lastMonthRevenue int64
	s.db.Raw("SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE status <> 'cancelled' AND created_at >= ? AND created_at < ?", lastMonth, thisMonth).Scan(&lastMonthRevenue)
	if lastMonthRevenue > 0 {
		stats.RevenueGrowth = float64(stats.RevenueThisMonth-lastMonthRevenue) / float64(lastMonthRevenue) * 100
	}

	// Order metrics
	s.db.Raw("SELECT COUNT(*) FROM orders").Scan(&stats.TotalOrders)
	s.db.Raw("SELECT COUNT(*) FROM orders WHERE created_at >= ?", today).Scan(&stats.OrdersToday)
	s.db.Raw("SELECT COUNT(*) FROM orders WHERE created_at >= ?", thisMonth).Scan(&stats.OrdersThisMonth)
	s.db.Raw("SELECT COUNT(*) FROM orders WHERE status = 'pending'").Scan(&stats.PendingOrders)

	// Customer metrics: carts are anonymous, so a customer is a distinct
	// order email
	s.db.Raw("SELECT COUNT(DISTINCT email) FROM orders").Scan(&stats.TotalCustomers)

	// Catalog metrics
	s.db.Raw("SELECT COUNT(*) FROM products WHERE deleted_at IS NULL").Scan(&stats.TotalProducts)
	s.db.Raw("SELECT COUNT(*) FROM products WHERE deleted_at IS NULL AND is_active = true").Scan(&stats.ActiveProducts)
	s.db.Raw("SELECT COUNT(*) FROM products WHERE deleted_at IS NULL AND stock <= 0").Scan(&stats.OutOfStockProducts)
	s.db.Raw("SELECT COUNT(*) FROM products WHERE deleted_at IS NULL AND stock > 0 AND stock <= 5").Scan(&stats.LowStockProducts)

	if stats.TotalOrders > 0 {
		stats.AvgOrderValue = stats.TotalRevenue / stats.TotalOrders
	}

	return stats, nil
}

// GetSalesByStatus groups orders by status with counts and total value
func (s *Service) GetSalesByStatus() ([]StatusData, error) {
	var data []StatusData
	err := s.db.Raw(`
		SELECT status, COUNT(*) as count, COALESCE(SUM(total_amount), 0) as value
		FROM orders
		GROUP BY status
		ORDER BY count DESC`).Scan(&data).Error
	if err != nil {
		return nil, err
	}
	return data, nil
}

// GetTopProducts returns best-selling products by quantity sold
func (s *Service) GetTopProducts(limit int) ([]ProductSalesData, error) {
	if limit < 1 {
		limit = 10
	}

	var data []ProductSalesData
	err := s.db.Raw(`
		SELECT oi.product_id, oi.name as product_name, oi.sku,
		       SUM(oi.quantity) as total_sold, SUM(oi.total_price) as revenue
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.status <> 'cancelled'
		GROUP BY oi.product_id, oi.name, oi.sku
		ORDER BY total_sold DESC
		LIMIT ?`, limit).Scan(&data).Error
	if err != nil {
		return nil, err
	}
	return data, nil
}

// GetDailyRevenue returns revenue per day for the last N days
func (s *Service) GetDailyRevenue(days int) ([]TimeSeriesData, error) {
	if days < 1 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)

	var data []TimeSeriesData
	err := s.db.Raw(`
		SELECT DATE(created_at) as date,
		       COALESCE(SUM(total_amount), 0) as value,
		       COUNT(*) as count
		FROM orders
		WHERE status <> 'cancelled' AND created_at >= ?
		GROUP BY DATE(created_at)
		ORDER BY date`, since).Scan(&data).Error
	if err != nil {
		return nil, err
	}
	return data, nil
}
