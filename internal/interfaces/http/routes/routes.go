// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/checkout"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/interfaces/http/handlers"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
)

// SetupRoutes wires all API routes. Storefront endpoints are public (the
// cart rides on the session cookie), account endpoints require a valid
// access token and everything under /admin additionally requires the
// admin flag.
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	// Shared services. The cart, checkout and recommendation handlers all
	// operate on the same cart service so line keys stay consistent.
	catalogService := catalog.NewService(db, cfg)
	cartStore := cart.NewRedisLineStore(redisClient, cfg.Checkout.CartTTL)
	cartService := cart.NewService(cartStore, catalogService, cfg)
	orderService := order.NewService(db, cfg)
	checkoutService := checkout.NewService(cartService, catalogService, orderService, cfg)

	productHandler := handlers.NewProductHandler(db, cfg)
	reviewHandler := handlers.NewReviewHandler(db, cfg)
	cartHandler := handlers.NewCartHandler(cartService, catalogService, cfg)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, cfg)
	recommendHandler := handlers.NewRecommendHandler(db, cartService, cfg)
	orderHandler := handlers.NewOrderHandler(db, cfg)
	invoiceHandler := handlers.NewInvoiceHandler(db, cfg)
	authHandler := handlers.NewAuthHandler(db, cfg)
	analyticsHandler := handlers.NewAnalyticsHandler(db, cfg)
	uploadHandler := handlers.NewUploadHandler(db, cfg)

	// Public catalog
	products := rg.Group("/products")
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/:id", productHandler.GetProduct)
		products.GET("/slug/:slug", productHandler.GetProductBySlug)
		products.GET("/:id/reviews", reviewHandler.GetReviews)
	}

	categories := rg.Group("/categories")
	{
		categories.GET("", productHandler.GetCategories)
		categories.GET("/:name/products", productHandler.GetProductsByCategory)
	}

	// Cart and checkout ride on the session cookie
	session := rg.Group("")
	session.Use(middleware.CartSession())
	{
		cartGroup := session.Group("/cart")
		{
			cartGroup.GET("", cartHandler.GetCart)
			cartGroup.DELETE("", cartHandler.ClearCart)
			cartGroup.POST("/items", cartHandler.AddItem)
			cartGroup.PUT("/items/:key", cartHandler.UpdateItem)
			cartGroup.DELETE("/items/:key", cartHandler.RemoveItem)
		}

		checkoutGroup := session.Group("/checkout")
		checkoutGroup.Use(middleware.OptionalAuthMiddleware(cfg))
		{
			checkoutGroup.GET("/summary", checkoutHandler.GetSummary)
			checkoutGroup.POST("", checkoutHandler.PlaceOrder)
		}

		session.GET("/recommendations", recommendHandler.GetCartRecommendations)
	}

	// Guest order tracking
	rg.GET("/orders/track", orderHandler.TrackOrder)

	// Authentication
	auth := rg.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)

		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.GET("/profile", authHandler.GetProfile)
			protected.PUT("/password", authHandler.ChangePassword)
		}
	}

	// Account endpoints
	account := rg.Group("")
	account.Use(middleware.AuthMiddleware(cfg))
	{
		account.GET("/orders", orderHandler.GetUserOrders)
		account.GET("/orders/:id", orderHandler.GetUserOrder)
		account.GET("/orders/:id/invoice", invoiceHandler.GetUserInvoice)
		account.POST("/products/:id/reviews", reviewHandler.SubmitReview)
	}

	// Admin endpoints
	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg))
	admin.Use(middleware.AdminMiddleware())
	{
		adminProducts := admin.Group("/products")
		{
			adminProducts.GET("", productHandler.AdminGetProducts)
			adminProducts.POST("", productHandler.AdminCreateProduct)
			adminProducts.GET("/:id", productHandler.AdminGetProduct)
			adminProducts.PUT("/:id", productHandler.AdminUpdateProduct)
			adminProducts.DELETE("/:id", productHandler.AdminDeleteProduct)
			adminProducts.PUT("/:id/inventory", productHandler.AdminUpdateInventory)
		}

		adminOrders := admin.Group("/orders")
		{
			adminOrders.GET("", orderHandler.AdminListOrders)
			adminOrders.GET("/:id", orderHandler.AdminGetOrder)
			adminOrders.PUT("/:id/status", orderHandler.AdminUpdateStatus)
			adminOrders.POST("/:id/cancel", orderHandler.AdminCancelOrder)
			adminOrders.GET("/:id/invoice", invoiceHandler.AdminGetInvoice)
		}

		adminAnalytics := admin.Group("/analytics")
		{
			adminAnalytics.GET("/dashboard", analyticsHandler.GetDashboard)
			adminAnalytics.GET("/sales-by-status", analyticsHandler.GetSalesByStatus)
			adminAnalytics.GET("/top-products", analyticsHandler.GetTopProducts)
			adminAnalytics.GET("/daily-revenue", analyticsHandler.GetDailyRevenue)
		}

		adminUploads := admin.Group("/uploads")
		{
			adminUploads.POST("", uploadHandler.UploadImage)
			adminUploads.GET("", uploadHandler.ListImages)
			adminUploads.DELETE("/:id", uploadHandler.DeleteImage)
		}

		adminUsers := admin.Group("/users")
		{
			adminUsers.GET("", authHandler.AdminListUsers)
			adminUsers.PUT("/:id/active", authHandler.AdminSetUserActive)
		}
	}
}
