package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/verdupulse/internal/middleware"
)

// NewRouter creates a Gin engine with routes configured.
// It receives a Handler instance with all business logic already injected.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, RateLimiter).
//   - Adds request timeout handling (10 seconds).
//   - Mounts Swagger docs (/swagger/*any).
//   - Configures API v1 routes (/api/v1).
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in app.InitializeApp().
//
// Parameters:
//   - handler (*Handler): The HTTP handler with business logic.
//
// Returns:
//   - *gin.Engine: Configured Gin router.
func NewRouter(handler *Handler) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.RateLimiter(),
	)

	// Per-request timeout
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/reports/summary", handler.GetSummary)
		v1.GET("/reports/summary/latest", handler.GetLatestSummary)
		v1.GET("/reports/dashboard", handler.GetDashboard)

		v1.GET("/products", handler.ListProducts)
		v1.POST("/products", handler.CreateProduct)
		v1.PUT("/products/:id", handler.UpdateProduct)
		v1.DELETE("/products/:id", handler.DeleteProduct)

		v1.GET("/customers", handler.ListCustomers)
		v1.POST("/customers", handler.CreateCustomer)
		v1.PUT("/customers/:id", handler.UpdateCustomer)
		v1.DELETE("/customers/:id", handler.DeleteCustomer)

		v1.GET("/orders", handler.ListOrders)
		v1.POST("/orders", handler.CreateOrder)
		v1.GET("/orders/:id", handler.GetOrder)
		v1.PATCH("/orders/:id/status", handler.UpdateOrderStatus)

		v1.GET("/expenses", handler.ListExpenses)
		v1.POST("/expenses", handler.CreateExpense)
	}

	return router
}
