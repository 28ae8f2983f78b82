// internal/domain/catalog/filter.go
package catalog

import (
	"errors"
	"strings"
)

// ErrPageOutOfRange is returned by Paginate for pages outside [1, TotalPages].
// The caller decides how to react; Paginate never clamps.
var ErrPageOutOfRange = errors.New("page out of range")

// DefaultPageSize is the storefront's fixed catalog page size
const DefaultPageSize = 8

// FilterSpec describes the storefront's catalog constraints. It is a value
// object rebuilt per query; a zero FilterSpec with MaxPrice unset matches
// every active product.
type FilterSpec struct {
	Search     string   `form:"search" json:"search"`
	Categories []string `form:"categories" json:"categories"`
	MinPrice   int64    `form:"min_price" json:"min_price"`
	MaxPrice   int64    `form:"max_price" json:"max_price"` // 0 means no upper bound
	MinRating  float64  `form:"min_rating" json:"min_rating"`
}

// Matches reports whether a product satisfies every filter condition.
func (spec FilterSpec) Matches(p *Product) bool {
	if !spec.matchesSearch(p) {
		return false
	}
	if !spec.matchesCategory(p) {
		return false
	}
	if p.Price < spec.MinPrice {
		return false
	}
	if spec.MaxPrice > 0 && p.Price > spec.MaxPrice {
		return false
	}
	if p.Rating < spec.MinRating {
		return false
	}
	return true
}

func (spec FilterSpec) matchesSearch(p *Product) bool {
	search := strings.ToLower(strings.TrimSpace(spec.Search))
	if search == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Name), search) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), search) {
		return true
	}
	for _, tag := range p.TagList() {
		if strings.Contains(strings.ToLower(tag), search) {
			return true
		}
	}
	return false
}

func (spec FilterSpec) matchesCategory(p *Product) bool {
	if len(spec.Categories) == 0 {
		return true
	}
	for _, name := range spec.Categories {
		if strings.EqualFold(p.Category.Name, name) {
			return true
		}
	}
	return false
}

// Filter returns the products matching the spec, preserving input order.
func Filter(products []Product, spec FilterSpec) []Product {
	matched := make([]Product, 0, len(products))
	for i := range products {
		if spec.Matches(&products[i]) {
			matched = append(matched, products[i])
		}
	}
	return matched
}

// TotalPages returns ceil(count / pageSize).
func TotalPages(count, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}

// Paginate slices a filtered subset into a fixed-size page. Pages are
// 1-based; requesting a page outside [1, TotalPages] returns
// ErrPageOutOfRange.
func Paginate(products []Product, pageSize, page int) ([]Product, error) {
	if pageSize <= 0 {
		return nil, ErrPageOutOfRange
	}
	totalPages := TotalPages(len(products), pageSize)
	if page < 1 {
		return nil, ErrPageOutOfRange
	}
	// Page 1 of an empty set is a valid empty page; anything past the
	// last page is an error, never clamped.
	if page > totalPages && !(page == 1 && len(products) == 0) {
		return nil, ErrPageOutOfRange
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start >= len(products) {
		return []Product{}, nil
	}
	if end > len(products) {
		end = len(products)
	}
	return products[start:end], nil
}
