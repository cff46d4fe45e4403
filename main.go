package main

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yash9424/first-night-api/config"
	"github.com/yash9424/first-night-api/controllers"
	"github.com/yash9424/first-night-api/middleware"
	"github.com/yash9424/first-night-api/models"
	"github.com/yash9424/first-night-api/services"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
		logrus.SetLevel(level)
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})

	if err := config.ConnectDatabase(cfg); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Contact{},
		&models.ContactNote{},
		&models.PasswordResetToken{},
	); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}
	logger.Info("Database migration completed")

	if cfg.AWSS3Bucket != "" {
		if _, err := services.InitS3Service(); err != nil {
			logger.Warnf("S3 service unavailable, image uploads disabled: %v", err)
		}
	}
	services.InitEmailService()
	if cfg.RazorpayKeyID != "" {
		services.InitPaymentService()
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, logger)

	addr := ":" + cfg.Port
	logger.Infof("Server listening on %s", addr)
	if err := router.Run(addr); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter wires middleware and every route group onto a fresh engine.
func setupRouter(cfg *config.Config, logger *logrus.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Metrics())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.CORSOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Idempotency-Key"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", healthCheck)
	router.GET("/metrics", middleware.MetricsHandler())

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		auth.Use(middleware.RateLimit(20, time.Minute))
		{
			auth.POST("/register", controllers.Register)
			auth.POST("/login", controllers.Login)
			auth.POST("/forgot-password", controllers.ForgotPassword)
			auth.POST("/reset-password/:token", controllers.ResetPassword)
		}

		api.GET("/products", controllers.ListProducts)
		api.GET("/products/search", controllers.SearchProducts)
		api.GET("/products/stats", middleware.RequireAuth(), middleware.RequireAdmin(), controllers.ProductStats)
		api.GET("/products/:id", controllers.GetProduct)
		api.POST("/products", middleware.RequireAuth(), middleware.RequireAdmin(), controllers.CreateProduct)
		api.PUT("/products/:id", middleware.RequireAuth(), middleware.RequireAdmin(), controllers.UpdateProduct)
		api.DELETE("/products/:id", middleware.RequireAuth(), middleware.RequireAdmin(), controllers.DeleteProduct)

		api.GET("/categories", controllers.ListCategories)
		api.GET("/categories/:id", controllers.GetCategory)
		api.POST("/categories", middleware.RequireAuth(), middleware.RequireAdmin(), controllers.CreateCategory)
		api.PUT("/categories/:id", middleware.RequireAuth(), middleware.RequireAdmin(), controllers.UpdateCategory)
		api.DELETE("/categories/:id", middleware.RequireAuth(), middleware.RequireAdmin(), controllers.DeleteCategory)

		cart := api.Group("/cart", middleware.RequireAuth())
		{
			cart.GET("", controllers.GetCart)
			cart.POST("", controllers.AddToCart)
			cart.PUT("/:productId", controllers.UpdateCartItem)
			cart.DELETE("/:productId", controllers.RemoveCartItem)
			cart.DELETE("", controllers.ClearCart)
		}

		orders := api.Group("/orders")
		{
			orders.POST("/track", middleware.RateLimit(30, time.Minute), controllers.TrackOrder)
			orders.POST("/validate-stock", controllers.ValidateStock)

			orders.POST("", middleware.RequireAuth(), controllers.CreateOrder)
			orders.GET("/my-orders", middleware.RequireAuth(), controllers.MyOrders)
			orders.GET("/:id", middleware.RequireAuth(), controllers.GetOrder)
			orders.PATCH("/:id/cancel-request", middleware.RequireAuth(), controllers.CancelRequest)
			orders.POST("/:id/verify-payment", middleware.RequireAuth(), controllers.VerifyPayment)

			orders.GET("", middleware.RequireAuth(), middleware.RequireAdmin(), controllers.ListOrders)
			orders.GET("/export", middleware.RequireAuth(), middleware.RequireAdmin(), controllers.ExportOrders)
			orders.GET("/by-number/:orderNumber", middleware.RequireAuth(), middleware.RequireAdmin(), controllers.GetOrderByNumber)
			orders.PATCH("/bulk-status", middleware.RequireAuth(), middleware.RequireAdmin(), controllers.BulkUpdateStatus)
			orders.PATCH("/:id/status", middleware.RequireAuth(), middleware.RequireAdmin(), controllers.UpdateOrderStatus)
			orders.PATCH("/:id/payment-status", middleware.RequireAuth(), middleware.RequireAdmin(), controllers.UpdatePaymentStatus)
			orders.DELETE("/:id", middleware.RequireAuth(), middleware.RequireAdmin(), controllers.DeleteOrder)
		}

		users := api.Group("/users", middleware.RequireAuth())
		{
			users.GET("/profile", controllers.GetProfile)
			users.PUT("/profile", controllers.UpdateProfile)

			users.GET("", middleware.RequireAdmin(), controllers.ListUsers)
			users.GET("/:id", middleware.RequireAdmin(), controllers.GetUser)
			users.PUT("/:id", middleware.RequireAdmin(), controllers.AdminUpdateUser)
			users.DELETE("/:id", middleware.RequireAdmin(), controllers.DeleteUser)
		}

		contact := api.Group("/contact")
		{
			contact.POST("", middleware.RateLimit(10, time.Minute), controllers.CreateContact)
			contact.GET("", middleware.RequireAuth(), middleware.RequireAdmin(), controllers.ListContacts)
			contact.GET("/:id", middleware.RequireAuth(), middleware.RequireAdmin(), controllers.GetContact)
			contact.PUT("/:id", middleware.RequireAuth(), middleware.RequireAdmin(), controllers.UpdateContact)
			contact.PUT("/:id/status", middleware.RequireAuth(), middleware.RequireAdmin(), controllers.UpdateContactStatus)
			contact.POST("/:id/notes", middleware.RequireAuth(), middleware.RequireAdmin(), controllers.AddContactNote)
			contact.DELETE("/:id", middleware.RequireAuth(), middleware.RequireAdmin(), controllers.DeleteContact)
		}

		uploads := api.Group("/uploads", middleware.RequireAuth(), middleware.RequireAdmin())
		{
			uploads.POST("/product-image", controllers.UploadProductImage)
			uploads.DELETE("/product-image/*key", controllers.DeleteProductImage)
		}

		api.GET("/dashboard/stats", middleware.RequireAuth(), middleware.RequireAdmin(), controllers.DashboardStats)
	}

	return router
}

// healthCheck reports liveness plus database connectivity
func healthCheck(c *gin.Context) {
	status := gin.H{
		"success": true,
		"status":  "ok",
	}

	if db := config.GetDB(); db != nil {
		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Ping(); err == nil {
				status["database"] = "connected"
			} else {
				status["database"] = "unreachable"
			}
		}
	}

	c.JSON(200, status)
}
