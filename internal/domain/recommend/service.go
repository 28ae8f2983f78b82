// internal/domain/recommend/service.go
package recommend

import (
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/catalog"
	"gorm.io/gorm"
)

// Service suggests products related to what is already in the cart.
// Recommendations are best-effort: any failure degrades to an empty list
// so the storefront page still renders.
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new recommendation service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// scored pairs a candidate with its relevance to the cart
type scored struct {
	product catalog.Product
	score   int
}

// ForCart returns up to maxCount active, in-stock products related to the
// cart lines, ranked by shared category and tag overlap. Products already
// in the cart are never suggested.
func (s *Service) ForCart(lines []cart.Line, maxCount int) []catalog.Product {
	if len(lines) == 0 || maxCount < 1 {
		return []catalog.Product{}
	}

	inCart := make(map[string]bool, len(lines))
	skus := make([]string, 0, len(lines))
	for _, line := range lines {
		inCart[line.SKU] = true
		skus = append(skus, line.SKU)
	}

	var cartProducts []catalog.Product
	err := s.db.Where("sku IN ?", skus).Find(&cartProducts).Error
	if err != nil {
		logrus.WithError(err).Warn("Failed to load cart products for recommendations")
		return []catalog.Product{}
	}
	if len(cartProducts) == 0 {
		return []catalog.Product{}
	}

	categoryIDs := make(map[uint]bool)
	cartTags := make(map[string]bool)
	for _, p := range cartProducts {
		categoryIDs[p.CategoryID] = true
		for _, tag := range p.TagList() {
			cartTags[strings.ToLower(tag)] = true
		}
	}

	ids := make([]uint, 0, len(categoryIDs))
	for id := range categoryIDs {
		ids = append(ids, id)
	}

	var candidates []catalog.Product
	err = s.db.
		Preload("Images").
		Where("is_active = ?", true).
		Where("stock > 0").
		Where("sku NOT IN ?", skus).
		Where("category_id IN ?", ids).
		Limit(100).
		Find(&candidates).Error
	if err != nil {
		logrus.WithError(err).Warn("Failed to load recommendation candidates")
		return []catalog.Product{}
	}

	ranked := make([]scored, 0, len(candidates))
	for _, candidate := range candidates {
		if inCart[candidate.SKU] {
			continue
		}
		ranked = append(ranked, scored{
			product: candidate,
			score:   s.relevance(candidate, categoryIDs, cartTags),
		})
	}

	// Stable sort keeps catalog order for equal scores, so results are
	// deterministic for the same cart.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if maxCount > len(ranked) {
		maxCount = len(ranked)
	}
	result := make([]catalog.Product, 0, maxCount)
	for _, r := range ranked[:maxCount] {
		result = append(result, r.product)
	}
	return result
}

func (s *Service) relevance(candidate catalog.Product, categoryIDs map[uint]bool, cartTags map[string]bool) int {
	score := 0
	if categoryIDs[candidate.CategoryID] {
		score += 3
	}
	for _, tag := range candidate.TagList() {
		if cartTags[strings.ToLower(tag)] {
			score++
		}
	}
	return score
}
