// internal/domain/catalog/service.go
package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/your-org/storefront/internal/config"
	"gorm.io/gorm"
)

// Service is the product store: it owns catalog reads and the admin CRUD
// surface against postgres.
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new catalog service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// ListRequest represents catalog list query parameters
type ListRequest struct {
	Page       int      `form:"page,default=1"`
	Limit      int      `form:"limit,default=8"`
	Search     string   `form:"search"`
	Categories []string `form:"categories"`
	MinPrice   int64    `form:"min_price"`
	MaxPrice   int64    `form:"max_price"`
	MinRating  float64  `form:"min_rating"`
	SortBy     string   `form:"sort_by,default=created_at"`
	SortOrder  string   `form:"sort_order,default=desc"`
	IsActive   *bool    `form:"is_active"`
}

// CreateRequest represents product creation data
type CreateRequest struct {
	SKU             string        `json:"sku" binding:"required"`
	Name            string        `json:"name" binding:"required"`
	Description     string        `json:"description"`
	LongDescription string        `json:"long_description"`
	Price           int64         `json:"price" binding:"required"`
	ComparePrice    int64         `json:"compare_price"`
	CategoryID      uint          `json:"category_id" binding:"required"`
	Stock           int           `json:"stock"`
	Tags            string        `json:"tags"`
	IsActive        bool          `json:"is_active"`
	VariantGroups   VariantGroups `json:"variant_groups"`
	ImageURLs       []string      `json:"image_urls"`
}

// UpdateRequest represents product update data; nil fields are left unchanged
type UpdateRequest struct {
	Name            *string        `json:"name"`
	Description     *string        `json:"description"`
	LongDescription *string        `json:"long_description"`
	Price           *int64         `json:"price"`
	ComparePrice    *int64         `json:"compare_price"`
	CategoryID      *uint          `json:"category_id"`
	Stock           *int           `json:"stock"`
	Tags            *string        `json:"tags"`
	IsActive        *bool          `json:"is_active"`
	VariantGroups   *VariantGroups `json:"variant_groups"`
}

// ListResponse represents products with pagination
type ListResponse struct {
	Products   []Product  `json:"products"`
	Pagination Pagination `json:"pagination"`
}

// Pagination represents pagination information
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// List retrieves products with server-side filtering and pagination
func (s *Service) List(req *ListRequest) (*ListResponse, error) {
	var products []Product
	var total int64

	query := s.db.Model(&Product{}).
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("is_primary DESC, sort_order ASC, id ASC")
		})

	if req.Search != "" {
		search := "%" + strings.ToLower(req.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(tags) LIKE ?", search, search, search)
	}

	if len(req.Categories) > 0 {
		query = query.Where("category_id IN (?)",
			s.db.Model(&Category{}).Select("id").Where("name IN ?", req.Categories))
	}

	if req.MinPrice > 0 {
		query = query.Where("price >= ?", req.MinPrice)
	}

	if req.MaxPrice > 0 {
		query = query.Where("price <= ?", req.MaxPrice)
	}

	if req.MinRating > 0 {
		query = query.Where("rating >= ?", req.MinRating)
	}

	if req.IsActive != nil {
		query = query.Where("is_active = ?", *req.IsActive)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	// Pages are 1-based and never clamped: asking for a page beyond the
	// result set is an error, except page 1 of an empty set.
	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	if req.Page < 1 || (req.Page > totalPages && !(req.Page == 1 && total == 0)) {
		return nil, ErrPageOutOfRange
	}

	query = query.Order(s.buildOrderClause(req.SortBy, req.SortOrder))

	offset := (req.Page - 1) * req.Limit
	if err := query.Offset(offset).Limit(req.Limit).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}

	pagination := Pagination{
		Page:       req.Page,
		Limit:      req.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    req.Page < totalPages,
		HasPrev:    req.Page > 1,
	}

	return &ListResponse{
		Products:   products,
		Pagination: pagination,
	}, nil
}

// ListByCategory retrieves all active products in a category
func (s *Service) ListByCategory(categoryName string) ([]Product, error) {
	var products []Product
	err := s.db.
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("is_primary DESC, sort_order ASC, id ASC")
		}).
		Joins("JOIN categories ON categories.id = products.category_id").
		Where("categories.name = ? AND products.is_active = ?", categoryName, true).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve products by category: %w", err)
	}
	return products, nil
}

// Get retrieves a single product by ID
func (s *Service) Get(id uint) (*Product, error) {
	var product Product
	result := s.db.
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("is_primary DESC, sort_order ASC, id ASC")
		}).
		Where("id = ?", id).
		First(&product)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", result.Error)
	}

	return &product, nil
}

// GetBySlug retrieves a single active product by slug
func (s *Service) GetBySlug(slug string) (*Product, error) {
	var product Product
	result := s.db.
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("is_primary DESC, sort_order ASC, id ASC")
		}).
		Where("slug = ? AND is_active = ?", slug, true).
		First(&product)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", result.Error)
	}

	return &product, nil
}

// GetBySKU retrieves a single product by SKU. The cart uses this to
// re-resolve stock ceilings against live data.
func (s *Service) GetBySKU(sku string) (*Product, error) {
	var product Product
	result := s.db.
		Preload("Category").
		Preload("Images").
		Where("sku = ?", sku).
		First(&product)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", result.Error)
	}

	return &product, nil
}

// Create creates a new product
func (s *Service) Create(req *CreateRequest) (*Product, error) {
	var existing Product
	if result := s.db.Where("sku = ?", req.SKU).First(&existing); result.Error == nil {
		return nil, fmt.Errorf("product with SKU %s already exists", req.SKU)
	}

	product := Product{
		SKU:             req.SKU,
		Name:            req.Name,
		Slug:            s.generateSlug(req.Name),
		Description:     req.Description,
		LongDescription: req.LongDescription,
		Price:           req.Price,
		ComparePrice:    req.ComparePrice,
		CategoryID:      req.CategoryID,
		Stock:           req.Stock,
		Tags:            req.Tags,
		IsActive:        req.IsActive,
		VariantGroups:   req.VariantGroups,
	}

	if err := s.db.Create(&product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	for i, url := range req.ImageURLs {
		image := ProductImage{
			ProductID: product.ID,
			URL:       url,
			SortOrder: i,
			IsPrimary: i == 0,
		}
		if err := s.db.Create(&image).Error; err != nil {
			return nil, fmt.Errorf("failed to create product image: %w", err)
		}
	}

	s.db.Preload("Category").Preload("Images").First(&product, product.ID)

	return &product, nil
}

// Update updates an existing product
func (s *Service) Update(id uint, req *UpdateRequest) (*Product, error) {
	var product Product
	result := s.db.Where("id = ?", id).First(&product)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to find product: %w", result.Error)
	}

	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = *req.Name
		updates["slug"] = s.generateSlug(*req.Name)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.LongDescription != nil {
		updates["long_description"] = *req.LongDescription
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.ComparePrice != nil {
		updates["compare_price"] = *req.ComparePrice
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if req.Stock != nil {
		updates["stock"] = *req.Stock
	}
	if req.Tags != nil {
		updates["tags"] = *req.Tags
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.VariantGroups != nil {
		updates["variant_groups"] = *req.VariantGroups
	}

	if err := s.db.Model(&product).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.db.Preload("Category").Preload("Images").First(&product, product.ID)

	return &product, nil
}

// Delete soft deletes a product
func (s *Service) Delete(id uint) error {
	result := s.db.Where("id = ?", id).Delete(&Product{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("product not found")
	}
	return nil
}

// UpdateInventory sets a product's stock level
func (s *Service) UpdateInventory(productID uint, stock int) error {
	if stock < 0 {
		return fmt.Errorf("stock cannot be negative")
	}

	result := s.db.Model(&Product{}).
		Where("id = ?", productID).
		Update("stock", stock)

	if result.Error != nil {
		return fmt.Errorf("failed to update inventory: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("product not found")
	}
	return nil
}

// ListCategories retrieves all active categories ordered for display
func (s *Service) ListCategories() ([]Category, error) {
	var categories []Category
	err := s.db.
		Where("is_active = ?", true).
		Order("sort_order ASC, name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve categories: %w", err)
	}
	return categories, nil
}

// buildOrderClause builds ORDER BY clause for sorting
func (s *Service) buildOrderClause(sortBy, sortOrder string) string {
	validSortFields := map[string]bool{
		"name":       true,
		"price":      true,
		"rating":     true,
		"created_at": true,
		"updated_at": true,
	}

	if !validSortFields[sortBy] {
		sortBy = "created_at"
	}

	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	return fmt.Sprintf("%s %s", sortBy, sortOrder)
}

// generateSlug generates URL-friendly slug from name
func (s *Service) generateSlug(name string) string {
	slug := strings.ToLower(name)
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = strings.ReplaceAll(slug, "_", "-")

	return slug + "-" + fmt.Sprintf("%d", time.Now().Unix())
}
