package routes

import (
	"net/http"

	"github.com/fazli/printshop-api/internal/config"
	domainRepo "github.com/fazli/printshop-api/internal/domain/repository"
	"github.com/fazli/printshop-api/internal/infrastructure/metrics"
	"github.com/fazli/printshop-api/internal/presentation/http/handler"
	"github.com/fazli/printshop-api/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Product     *handler.ProductHandler
	Transaction *handler.TransactionHandler
	Ledger      *handler.LedgerHandler
	Remaining   *handler.RemainingHandler
	Dashboard   *handler.DashboardHandler
	Report      *handler.ReportHandler
	Printer     *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	Log             *zap.Logger
	Metrics         *metrics.Metrics
	RateLimiter     *middleware.ClientRateLimiter
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	handler.RegisterValidation()

	router := gin.New()

	// Global middleware
	router.Use(middleware.RecoveryMiddleware(deps.Log))
	router.Use(middleware.LoggerMiddleware(deps.Log))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))
	if deps.Metrics != nil {
		router.Use(middleware.MetricsMiddleware(deps.Metrics))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	v1 := router.Group("/api/v1")
	if deps.RateLimiter != nil {
		v1.Use(deps.RateLimiter.Middleware())
	}

	var idempotent gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if deps.IdempotencyRepo != nil {
		idempotent = middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
			Log:  deps.Log,
		})
	}

	registerProductRoutes(v1, h, idempotent)
	registerTransactionRoutes(v1, h, idempotent)
	registerLedgerRoutes(v1, h, idempotent)
	registerRemainingRoutes(v1, h, idempotent)

	v1.GET("/dashboard", h.Dashboard.Get)

	reports := v1.Group("/reports")
	{
		reports.GET("/dashboard.xlsx", h.Report.Dashboard)
		reports.GET("/ledger.xlsx", h.Report.Ledger)
	}

	printerGroup := v1.Group("/printer")
	{
		printerGroup.GET("/status", h.Printer.GetStatus)
		printerGroup.POST("/test", h.Printer.TestPrint)
	}

	return router
}

func registerProductRoutes(v1 *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	products := v1.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", idempotent, h.Product.Create)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
		products.POST("/:id/work-status", h.Product.SetWorkStatus)
		products.POST("/:id/payments", idempotent, h.Product.AddPayment)
		products.POST("/:id/mark-paid", h.Product.MarkPaid)
		products.POST("/:id/undo-payment", h.Product.UndoPayment)
		products.POST("/:id/receipt", h.Product.PrintReceipt)
	}
}

func registerTransactionRoutes(v1 *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	transactions := v1.Group("/transactions")
	{
		transactions.GET("", h.Transaction.List)
		transactions.POST("", idempotent, h.Transaction.Create)
		transactions.POST("/reconcile", h.Transaction.Reconcile)
		transactions.GET("/:id", h.Transaction.Get)
		transactions.PUT("/:id", h.Transaction.Update)
		transactions.DELETE("/:id", h.Transaction.Delete)
	}
}

func registerLedgerRoutes(v1 *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	ledger := v1.Group("/ledger")
	{
		ledger.GET("", h.Ledger.List)
		ledger.POST("", idempotent, h.Ledger.Create)
		ledger.GET("/:id", h.Ledger.Get)
		ledger.PUT("/:id", h.Ledger.Update)
		ledger.DELETE("/:id", h.Ledger.Delete)
	}
}

func registerRemainingRoutes(v1 *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	remaining := v1.Group("/remaining")
	{
		remaining.GET("", h.Remaining.List)
		remaining.POST("", idempotent, h.Remaining.Create)
		remaining.GET("/:id", h.Remaining.Get)
		remaining.PUT("/:id", h.Remaining.Update)
		remaining.DELETE("/:id", h.Remaining.Delete)
	}
}
