package routes

import (
	"time"

	"fitstore-backend/firebase"
	"fitstore-backend/handlers"
	"fitstore-backend/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, storage firebase.StorageClient) {
	authHandler := &handlers.AuthHandler{DB: db}
	productHandler := &handlers.ProductHandler{DB: db, Storage: storage}
	cartHandler := &handlers.CartHandler{DB: db}
	stockHandler := &handlers.StockHandler{DB: db}
	feedbackHandler := &handlers.FeedbackHandler{DB: db, Storage: storage}
	bannerHandler := &handlers.BannerHandler{DB: db, Storage: storage}

	// Brute-force protection on credential endpoints
	authLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Public routes
	api := r.Group("/api")
	{
		api.POST("/auth/register", authLimiter.Middleware(), authHandler.Register)
		api.POST("/auth/login", authLimiter.Middleware(), authHandler.Login)

		api.GET("/products", productHandler.GetProducts)
		api.GET("/products/search", productHandler.SearchProducts)
		api.GET("/products/:id", productHandler.GetProduct)

		api.GET("/feedback/:productId", feedbackHandler.ListFeedbackByProduct)

		api.GET("/banners", bannerHandler.GetBanners)
	}

	// Protected routes (require authentication)
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/auth/profile", authHandler.GetProfile)
		protected.PUT("/auth/password", authHandler.ChangePassword)

		protected.GET("/cart", cartHandler.GetCart)
		protected.POST("/cart", cartHandler.ReconcileCart)

		protected.POST("/stock/decrement", stockHandler.DecrementStock)

		protected.POST("/feedback", feedbackHandler.CreateFeedback)
	}

	// Admin routes (require admin role)
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.AdminMiddleware())
	{
		admin.POST("/products", productHandler.CreateProduct)
		admin.PUT("/products/:id", productHandler.UpdateProduct)
		admin.DELETE("/products/:id", productHandler.DeleteProduct)

		admin.POST("/products/bulk", productHandler.BatchImportProducts)
		admin.GET("/products/bulk/:id", productHandler.GetBatchJobStatus)

		admin.POST("/banners", bannerHandler.UploadBanner)
		admin.PUT("/banners/:id", bannerHandler.EditBanner)
		admin.DELETE("/banners/:id", bannerHandler.DeleteBanner)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
