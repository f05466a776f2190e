package routes

import (
	"net/http"

	"elango-backend/controllers"
	"elango-backend/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Setup configures and returns the Gin engine.
func Setup(ctrl *controllers.Controller, env string) *gin.Engine {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middleware.RequestID())

	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:8000"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(config))

	auth := middleware.Auth(ctrl.PasetoSecretKey)

	api := r.Group("/api")
	{
		api.GET("/health", ctrl.HealthCheck)

		// Authentication
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", ctrl.Register)
			authGroup.POST("/login", ctrl.Login)
			authGroup.GET("/me", auth, ctrl.Me)
		}

		// Public catalog
		api.GET("/products", ctrl.GetProducts)
		api.GET("/products/category/:categoryName", ctrl.GetProductsByCategory)
		api.GET("/products/:id", ctrl.GetProduct)
		api.GET("/categories", ctrl.GetCategories)
		api.GET("/categories/:id", ctrl.GetCategory)

		// Orders
		orders := api.Group("/orders", auth)
		{
			orders.POST("", ctrl.CreateOrder)
			orders.GET("/my-orders", ctrl.GetMyOrders)
			orders.GET("/:id", ctrl.GetOrder)
		}

		// Site configuration: public reads, admin writes
		api.GET("/config/site-name", ctrl.GetSiteName)
		api.PUT("/config/site-name", auth, middleware.AdminOnly(), ctrl.UpdateSiteName)
		api.GET("/config", ctrl.GetConfig)
		api.PUT("/config", auth, middleware.AdminOnly(), ctrl.UpdateConfig)

		// Admin console
		admin := api.Group("/admin", auth, middleware.AdminOnly())
		{
			admin.POST("/product", ctrl.CreateProduct)
			admin.PUT("/product/:id", ctrl.UpdateProduct)
			admin.DELETE("/product/:id", ctrl.DeleteProduct)
			admin.GET("/products", ctrl.GetAllProducts)
			admin.POST("/category", ctrl.CreateCategory)
			admin.GET("/orders", ctrl.GetOrders)
			admin.PUT("/order/:id/status", ctrl.UpdateOrderStatus)
			admin.GET("/stats", ctrl.GetStats)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Endpoint not found"})
	})
	return r
}
