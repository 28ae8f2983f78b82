// internal/interfaces/http/handlers/analytics.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/analytics"
)

// AnalyticsHandler handles admin analytics endpoints
type AnalyticsHandler struct {
	analyticsService *analytics.Service
	config           *config.Config
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(db *gorm.DB, cfg *config.Config) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analytics.NewService(db, cfg),
		config:           cfg,
	}
}

// GetDashboard handles GET /admin/analytics/dashboard
func (h *AnalyticsHandler) GetDashboard(c *gin.Context) {
	stats, err := h.analyticsService.GetDashboardStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve dashboard statistics",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Dashboard statistics retrieved successfully",
		"data":    stats,
	})
}

// GetSalesByStatus handles GET /admin/analytics/sales-by-status
func (h *AnalyticsHandler) GetSalesByStatus(c *gin.Context) {
	data, err := h.analyticsService.GetSalesByStatus()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve sales breakdown",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Sales breakdown retrieved successfully",
		"data":    data,
	})
}

// GetTopProducts handles GET /admin/analytics/top-products
func (h *AnalyticsHandler) GetTopProducts(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 10
	}

	data, err := h.analyticsService.GetTopProducts(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve top products",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Top products retrieved successfully",
		"data":    data,
	})
}

// GetDailyRevenue handles GET /admin/analytics/daily-revenue
func (h *AnalyticsHandler) GetDailyRevenue(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil || days < 1 || days > 365 {
		days = 30
	}

	data, err := h.analyticsService.GetDailyRevenue(days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve revenue data",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Daily revenue retrieved successfully",
		"data":    data,
	})
}
