// internal/domain/catalog/review_service.go
package catalog

import (
	"fmt"

	"github.com/your-org/storefront/internal/config"
	"gorm.io/gorm"
)

// ReviewService handles product review submission and listing
type ReviewService struct {
	db     *gorm.DB
	config *config.Config
}

// NewReviewService creates a new review service
func NewReviewService(db *gorm.DB, cfg *config.Config) *ReviewService {
	return &ReviewService{
		db:     db,
		config: cfg,
	}
}

// SubmitReviewRequest represents review submission data
type SubmitReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ReviewListResponse represents reviews with pagination
type ReviewListResponse struct {
	Reviews    []Review   `json:"reviews"`
	Pagination Pagination `json:"pagination"`
}

// SubmitReview records a review and recomputes the product's denormalized
// rating and review count in the same transaction.
func (s *ReviewService) SubmitReview(productID, userID uint, req *SubmitReviewRequest) (*Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5")
	}

	var product Product
	if err := s.db.Where("id = ? AND is_active = ?", productID, true).First(&product).Error; err != nil {
		return nil, fmt.Errorf("product not found")
	}

	var existing Review
	if result := s.db.Where("product_id = ? AND user_id = ?", productID, userID).First(&existing); result.Error == nil {
		return nil, fmt.Errorf("you have already reviewed this product")
	}

	review := Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    req.Rating,
		Title:     req.Title,
		Content:   req.Content,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return fmt.Errorf("failed to create review: %w", err)
		}
		return s.recomputeRating(tx, productID)
	})
	if err != nil {
		return nil, err
	}

	return &review, nil
}

// ListReviews retrieves reviews for a product, newest first
func (s *ReviewService) ListReviews(productID uint, page, limit int) (*ReviewListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var reviews []Review
	var total int64

	query := s.db.Model(&Review{}).Where("product_id = ?", productID)

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count reviews: %w", err)
	}

	offset := (page - 1) * limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve reviews: %w", err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &ReviewListResponse{
		Reviews: reviews,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
			HasPrev:    page > 1,
		},
	}, nil
}

// recomputeRating refreshes the product's average rating and review count
func (s *ReviewService) recomputeRating(tx *gorm.DB, productID uint) error {
	var stats struct {
		Avg   float64
		Count int64
	}

	err := tx.Model(&Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("product_id = ?", productID).
		Scan(&stats).Error
	if err != nil {
		return fmt.Errorf("failed to aggregate reviews: %w", err)
	}

	err = tx.Model(&Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"rating":       stats.Avg,
			"review_count": stats.Count,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update product rating: %w", err)
	}

	return nil
}
