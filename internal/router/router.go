// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/shopworks/storefront-backend/internal/cache"
	"github.com/shopworks/storefront-backend/internal/config"
	"github.com/shopworks/storefront-backend/internal/events"
	"github.com/shopworks/storefront-backend/internal/handlers"
	"github.com/shopworks/storefront-backend/internal/middleware"
	"github.com/shopworks/storefront-backend/internal/services"
	"github.com/shopworks/storefront-backend/internal/utils"
)

// Initialize wires services and handlers and lays out the route table.
// Every route carries exactly one capability tag, evaluated by
// middleware.Require before the handler body.
func Initialize(db *gorm.DB, cfg *config.Config, productCache *cache.ProductCache, publisher *events.Publisher) (*gin.Engine, error) {
	// Initialize services
	authService := services.NewAuthService(db, cfg)
	userService := services.NewUserService(db)
	productService := services.NewProductService(db, productCache, cfg.Catalog)
	paymentService := services.NewPaymentService()
	orderService := services.NewOrderService(db, paymentService, publisher)
	uploadService, err := services.NewUploadService(cfg.Upload)
	if err != nil {
		return nil, err
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, cfg.JWT)
	userHandler := handlers.NewUserHandler(userService)
	productHandler := handlers.NewProductHandler(productService)
	orderHandler := handlers.NewOrderHandler(orderService)
	uploadHandler := handlers.NewUploadHandler(uploadService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	authed := middleware.Require(middleware.Authenticated, db, cfg.JWT)
	adminOnly := middleware.Require(middleware.AdminOnly, db, cfg.JWT)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.Server.CORSOrigins))
	r.Use(middleware.GeneralRateLimit())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("", middleware.AuthRateLimit(), authHandler.Register)
			users.POST("/login", middleware.AuthRateLimit(), authHandler.Login)
			users.POST("/logout", authHandler.Logout)

			users.GET("/profile", append(authed, userHandler.GetProfile)...)
			users.PUT("/profile", append(authed, userHandler.UpdateProfile)...)

			users.GET("", append(adminOnly, userHandler.List)...)
			users.GET("/:id", append(adminOnly, userHandler.Get)...)
			users.PUT("/:id", append(adminOnly, userHandler.Update)...)
			users.DELETE("/:id", append(adminOnly, userHandler.Delete)...)
		}

		products := api.Group("/products")
		{
			products.GET("", productHandler.List)
			products.GET("/top", productHandler.Top)
			products.GET("/:id", productHandler.Get)

			products.POST("", append(adminOnly, productHandler.Create)...)
			products.PUT("/:id", append(adminOnly, productHandler.Update)...)
			products.DELETE("/:id", append(adminOnly, productHandler.Delete)...)

			products.POST("/:id/reviews", append(authed, productHandler.CreateReview)...)
		}

		orders := api.Group("/orders")
		{
			orders.POST("", append(authed, orderHandler.Create)...)
			orders.GET("/mine", append(authed, orderHandler.ListMine)...)
			orders.GET("/:id", append(authed, orderHandler.Get)...)
			orders.PUT("/:id/pay", append(authed, orderHandler.Pay)...)

			orders.PUT("/:id/deliver", append(adminOnly, orderHandler.Deliver)...)
			orders.GET("", append(adminOnly, orderHandler.ListAll)...)
		}

		api.POST("/upload", append(adminOnly, uploadHandler.UploadImage)...)
	}

	// Uploaded images
	r.Static(cfg.Upload.PublicPath, cfg.Upload.Dir)

	return r, nil
}
