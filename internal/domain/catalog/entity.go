// internal/domain/catalog/entity.go
package catalog

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// VariantOption is a selectable value within a variant group
type VariantOption struct {
	Value           string `json:"value"`
	AdditionalPrice int64  `json:"additional_price,omitempty"` // Added to base price, in cents
}

// VariantGroup is a named axis of product customization (e.g. "Size")
type VariantGroup struct {
	Name    string          `json:"name"`
	Options []VariantOption `json:"options"`
}

// VariantGroups is stored as a JSONB column on products
type VariantGroups []VariantGroup

// Value implements driver.Valuer for JSONB storage
func (v VariantGroups) Value() (driver.Value, error) {
	if len(v) == 0 {
		return nil, nil
	}
	return json.Marshal(v)
}

// Scan implements sql.Scanner for JSONB storage
func (v *VariantGroups) Scan(src interface{}) error {
	switch data := src.(type) {
	case nil:
		*v = nil
		return nil
	case []byte:
		return json.Unmarshal(data, v)
	case string:
		return json.Unmarshal([]byte(data), v)
	default:
		return fmt.Errorf("unsupported type for VariantGroups: %T", src)
	}
}

// Product represents the catalog product entity
type Product struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	SKU             string         `gorm:"uniqueIndex;not null;size:100" json:"sku"`
	Name            string         `gorm:"not null;size:255" json:"name"`
	Slug            string         `gorm:"uniqueIndex;not null;size:255" json:"slug"`
	Description     string         `gorm:"type:text" json:"description"`
	LongDescription string         `gorm:"type:text" json:"long_description,omitempty"`
	Price           int64          `gorm:"not null" json:"price"` // Price in cents
	ComparePrice    int64          `json:"compare_price"`         // Original price for discount display
	CategoryID      uint           `gorm:"not null;index" json:"category_id"`
	Rating          float64        `gorm:"default:0" json:"rating"` // Denormalized average, 0-5
	ReviewCount     int            `gorm:"default:0" json:"review_count"`
	Stock           int            `gorm:"default:0" json:"stock"`
	Tags            string         `gorm:"size:500" json:"tags"` // Comma-separated tags
	IsActive        bool           `gorm:"default:true" json:"is_active"`
	VariantGroups   VariantGroups  `gorm:"type:jsonb" json:"variant_groups,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category Category       `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"category"`
	Images   []ProductImage `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"images,omitempty"`
	Reviews  []Review       `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"reviews,omitempty"`
}

// Category represents product categories
type Category struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"uniqueIndex;not null;size:255" json:"name"`
	Slug        string         `gorm:"uniqueIndex;not null;size:255" json:"slug"`
	Description string         `gorm:"size:500" json:"description"`
	SortOrder   int            `gorm:"default:0" json:"sort_order"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Products []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}

// ProductImage represents product images; the primary image is displayed first
type ProductImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	URL       string    `gorm:"not null;size:500" json:"url"`
	AltText   string    `gorm:"size:255" json:"alt_text"`
	SortOrder int       `gorm:"default:0" json:"sort_order"`
	IsPrimary bool      `gorm:"default:false" json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Review represents a customer product review
type Review struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ProductID uint           `gorm:"not null;index" json:"product_id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Rating    int            `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Title     string         `gorm:"size:255" json:"title"`
	Content   string         `gorm:"type:text" json:"content"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides
func (Product) TableName() string      { return "products" }
func (Category) TableName() string     { return "categories" }
func (ProductImage) TableName() string { return "product_images" }
func (Review) TableName() string       { return "product_reviews" }

// Business methods for Product

func (p *Product) IsInStock() bool {
	return p.Stock > 0
}

func (p *Product) GetFormattedPrice() float64 {
	return float64(p.Price) / 100
}

func (p *Product) GetDiscountPercentage() int {
	if p.ComparePrice > 0 && p.Price < p.ComparePrice {
		return int(((p.ComparePrice - p.Price) * 100) / p.ComparePrice)
	}
	return 0
}

// PrimaryImageURL returns the primary image, falling back to the first image
func (p *Product) PrimaryImageURL() string {
	for _, img := range p.Images {
		if img.IsPrimary {
			return img.URL
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0].URL
	}
	return ""
}

// TagList splits the comma-separated tags field
func (p *Product) TagList() []string {
	if p.Tags == "" {
		return nil
	}
	parts := strings.Split(p.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func (p *Product) HasVariants() bool {
	return len(p.VariantGroups) > 0
}

// SelectionComplete reports whether every declared variant group has a selection
func (p *Product) SelectionComplete(selected map[string]string) bool {
	for _, group := range p.VariantGroups {
		if _, ok := selected[group.Name]; !ok {
			return false
		}
	}
	return true
}
