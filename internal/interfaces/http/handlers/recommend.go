// internal/interfaces/http/handlers/recommend.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/recommend"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
)

// RecommendHandler handles product recommendation endpoints
type RecommendHandler struct {
	recommendService *recommend.Service
	cartService      *cart.Service
	config           *config.Config
}

// NewRecommendHandler creates a new recommendation handler
func NewRecommendHandler(db *gorm.DB, cartService *cart.Service, cfg *config.Config) *RecommendHandler {
	return &RecommendHandler{
		recommendService: recommend.NewService(db, cfg),
		cartService:      cartService,
		config:           cfg,
	}
}

// GetCartRecommendations handles GET /recommendations. Suggestions are
// derived from the session's cart and never fail the request: an empty
// list is a valid answer.
func (h *RecommendHandler) GetCartRecommendations(c *gin.Context) {
	sessionID := middleware.GetSessionIDFromContext(c)

	maxCount, err := strconv.Atoi(c.DefaultQuery("limit", "4"))
	if err != nil || maxCount < 1 {
		maxCount = 4
	}

	response, err := h.cartService.Get(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve cart",
		})
		return
	}

	products := h.recommendService.ForCart(response.Lines, maxCount)

	c.JSON(http.StatusOK, gin.H{
		"message": "Recommendations retrieved successfully",
		"data": gin.H{
			"products": products,
			"count":    len(products),
		},
	})
}
