// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ledgerly/backend/internal/integration/entrypoint/controller"
	"github.com/ledgerly/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	accountingController  *controller.AccountingController
	categoryController    *controller.CategoryController
	transactionController *controller.TransactionController
	reportController      *controller.ReportController
	exportController      *controller.ExportController
	assistantController   *controller.AssistantController
	assistantRateLimiter  *middleware.RateLimiter
	authMiddleware        *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	accountingController *controller.AccountingController,
	categoryController *controller.CategoryController,
	transactionController *controller.TransactionController,
	reportController *controller.ReportController,
	exportController *controller.ExportController,
	assistantController *controller.AssistantController,
	assistantRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:      healthController,
		accountingController:  accountingController,
		categoryController:    categoryController,
		transactionController: transactionController,
		reportController:      reportController,
		exportController:      exportController,
		assistantController:   assistantController,
		assistantRateLimiter:  assistantRateLimiter,
		authMiddleware:        authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes. Every /api/v1 route
// requires a bearer token; the user identity comes from the claims.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	v1.Use(r.authMiddleware.Authenticate())
	{
		accounting := v1.Group("/accounting")
		{
			accounting.POST("/refresh", r.accountingController.Refresh)
			accounting.DELETE("/session", r.accountingController.DeleteSession)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", r.categoryController.List)
			categories.POST("", r.categoryController.Create)
			categories.DELETE("/:id", r.categoryController.Delete)
		}

		transactions := v1.Group("/transactions")
		{
			transactions.GET("", r.transactionController.List)
			transactions.POST("", r.transactionController.Create)
			transactions.PATCH("/:id", r.transactionController.Update)
			transactions.DELETE("/:id", r.transactionController.Delete)
		}

		reports := v1.Group("/reports")
		{
			reports.GET("/summary", r.reportController.Summary)
			reports.GET("/breakdown", r.reportController.Breakdown)
		}

		exports := v1.Group("/export")
		{
			exports.GET("/transactions.csv", r.exportController.TransactionsCSV)
			exports.GET("/transactions.json", r.exportController.TransactionsJSON)
			exports.GET("/categories.json", r.exportController.CategoriesJSON)
		}

		assistant := v1.Group("/assistant")
		if r.assistantRateLimiter != nil {
			assistant.Use(r.assistantRateLimiter.Middleware())
		}
		{
			assistant.POST("/chat", r.assistantController.Chat)
			assistant.POST("/receipt", r.assistantController.Receipt)
			assistant.GET("/history", r.assistantController.GetHistory)
			assistant.DELETE("/history", r.assistantController.ClearHistory)
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
