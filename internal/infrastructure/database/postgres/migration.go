// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/domain/upload"
	"github.com/your-org/storefront/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	logrus.Info("🔄 Running database auto-migrations...")

	// Models in dependency order
	models := []interface{}{
		&user.User{},

		&catalog.Category{},
		&catalog.Product{},
		&catalog.ProductImage{},
		&catalog.Review{},

		&order.Order{},
		&order.Item{},
		&order.StatusHistory{},

		&upload.UploadedFile{},
	}

	for _, model := range models {
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	logrus.Info("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_email_active ON users(email, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_users_created_at ON users(created_at DESC)",

		// Product indexes
		"CREATE INDEX IF NOT EXISTS idx_products_category_active ON products(category_id, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_price ON products(price)",
		"CREATE INDEX IF NOT EXISTS idx_products_rating ON products(rating DESC)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",

		// Category indexes
		"CREATE INDEX IF NOT EXISTS idx_categories_sort_order ON categories(sort_order)",

		// Product image indexes
		"CREATE INDEX IF NOT EXISTS idx_product_images_product_primary ON product_images(product_id, is_primary)",

		// Review indexes
		"CREATE INDEX IF NOT EXISTS idx_product_reviews_product ON product_reviews(product_id, created_at DESC)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_product_reviews_user_product ON product_reviews(user_id, product_id) WHERE deleted_at IS NULL",

		// Order indexes
		"CREATE INDEX IF NOT EXISTS idx_orders_user_status ON orders(user_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_orders_status_created ON orders(status, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_email ON orders(email)",
		"CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC)",

		// Order items indexes
		"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_product ON order_items(product_id)",

		// Order status history indexes
		"CREATE INDEX IF NOT EXISTS idx_order_status_history_order ON order_status_history(order_id, created_at DESC)",
	}

	successCount := 0
	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			logrus.WithError(err).Warn("Failed to create index")
		} else {
			successCount++
		}
	}

	logrus.Infof("✅ Created %d of %d indexes", successCount, len(indexes))
	return nil
}

// SeedInitialData inserts initial data into the database
func (m *Migration) SeedInitialData() error {
	logrus.Info("🌱 Seeding initial data...")

	if err := m.seedCategories(); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	if err := m.seedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	if err := m.seedDevProducts(); err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	logrus.Info("✅ Initial data seeded successfully")
	return nil
}

func (m *Migration) seedCategories() error {
	categories := []catalog.Category{
		{
			Name:        "Electronics",
			Slug:        "electronics",
			Description: "Electronic devices, gadgets, and accessories",
			SortOrder:   1,
			IsActive:    true,
		},
		{
			Name:        "Clothing",
			Slug:        "clothing",
			Description: "Fashion, apparel, and accessories",
			SortOrder:   2,
			IsActive:    true,
		},
		{
			Name:        "Books",
			Slug:        "books",
			Description: "Books, eBooks, and educational materials",
			SortOrder:   3,
			IsActive:    true,
		},
		{
			Name:        "Home & Garden",
			Slug:        "home-garden",
			Description: "Home improvement, furniture, and garden supplies",
			SortOrder:   4,
			IsActive:    true,
		},
	}

	for _, category := range categories {
		var existing catalog.Category
		result := m.db.Where("slug = ?", category.Slug).First(&existing)
		if result.Error != nil {
			if err := m.db.Create(&category).Error; err != nil {
				return err
			}
			logrus.Infof("Created category: %s", category.Name)
		}
	}

	return nil
}

func (m *Migration) seedAdminUser() error {
	var existing user.User
	result := m.db.Where("email = ?", "admin@example.com").First(&existing)
	if result.Error == nil {
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("admin123"), 10)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	adminUser := user.User{
		Email:     "admin@example.com",
		Password:  string(hashedPassword),
		FirstName: "Admin",
		LastName:  "User",
		IsActive:  true,
		IsAdmin:   true,
	}

	if err := m.db.Create(&adminUser).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logrus.Info("Created admin user: admin@example.com")
	return nil
}

func (m *Migration) seedDevProducts() error {
	var productCount int64
	m.db.Model(&catalog.Product{}).Count(&productCount)
	if productCount > 0 {
		return nil
	}

	products := []catalog.Product{
		{
			SKU:         "TSHIRT-CLASSIC",
			Name:        "Classic Cotton T-Shirt",
			Slug:        "classic-cotton-t-shirt",
			Description: "Soft 100% cotton tee with a relaxed fit",
			Price:       1999, // $19.99
			CategoryID:  2,    // Clothing
			Stock:       120,
			Tags:        "clothing,tshirt,cotton,basics",
			IsActive:    true,
			VariantGroups: catalog.VariantGroups{
				{
					Name: "Size",
					Options: []catalog.VariantOption{
						{Value: "S"},
						{Value: "M"},
						{Value: "L"},
						{Value: "XL", AdditionalPrice: 200},
					},
				},
				{
					Name: "Color",
					Options: []catalog.VariantOption{
						{Value: "Black"},
						{Value: "White"},
						{Value: "Navy"},
					},
				},
			},
		},
		{
			SKU:          "HEADPHONES-ANC",
			Name:         "Noise-Cancelling Headphones",
			Slug:         "noise-cancelling-headphones",
			Description:  "Wireless over-ear headphones with active noise cancellation",
			Price:        15999, // $159.99
			ComparePrice: 19999,
			CategoryID:   1, // Electronics
			Stock:        30,
			Tags:         "electronics,audio,headphones,wireless",
			IsActive:     true,
		},
		{
			SKU:         "MUG-CERAMIC",
			Name:        "Ceramic Coffee Mug",
			Slug:        "ceramic-coffee-mug",
			Description: "Stoneware mug that keeps drinks warm longer",
			Price:       1299, // $12.99
			CategoryID:  4,    // Home & Garden
			Stock:       200,
			Tags:        "home,kitchen,coffee,mug",
			IsActive:    true,
			VariantGroups: catalog.VariantGroups{
				{
					Name: "Color",
					Options: []catalog.VariantOption{
						{Value: "Sand"},
						{Value: "Forest", AdditionalPrice: 100},
					},
				},
			},
		},
	}

	for _, p := range products {
		if err := m.db.Create(&p).Error; err != nil {
			logrus.WithError(err).Warnf("Failed to seed product %s", p.SKU)
		}
	}

	logrus.Infof("Seeded %d products", len(products))
	return nil
}

// DropAllTables drops all tables (use with extreme caution)
func (m *Migration) DropAllTables() error {
	logrus.Warn("⚠️ Dropping all database tables...")

	// Reverse dependency order
	tables := []string{
		"order_status_history",
		"order_items",
		"orders",
		"product_reviews",
		"product_images",
		"products",
		"categories",
		"uploaded_files",
		"users",
	}

	for _, table := range tables {
		if err := m.db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)).Error; err != nil {
			logrus.WithError(err).Warnf("Failed to drop table %s", table)
		}
	}

	return nil
}
