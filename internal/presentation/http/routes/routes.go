package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/groenwerk/hovenier-api/internal/config"
	domainRepo "github.com/groenwerk/hovenier-api/internal/domain/repository"
	"github.com/groenwerk/hovenier-api/internal/presentation/http/handler"
	"github.com/groenwerk/hovenier-api/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Quote    *handler.QuoteHandler
	Invoice  *handler.InvoiceHandler
	Project  *handler.ProjectHandler
	Customer *handler.CustomerHandler
	Settings *handler.SettingsHandler
	NormHour *handler.NormHourHandler
	Workflow *handler.WorkflowHandler
	Public   *handler.PublicHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public share-link routes, rate limited per client IP
		rateLimiter := middleware.NewIPRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})

		public := v1.Group("/public")
		public.Use(rateLimiter.Middleware())
		{
			public.GET("/quotes/:token", h.Public.GetQuote)
			public.POST("/quotes/:token/respond", h.Public.Respond)
		}

		registerQuoteRoutes(v1, h)
		registerProjectRoutes(v1, h, deps)
		registerInvoiceRoutes(v1, h)
		registerCustomerRoutes(v1, h)

		// Settings
		v1.GET("/settings", h.Settings.Get)
		v1.PUT("/settings", h.Settings.Update)

		// Norm hours
		v1.GET("/norm-hours", h.NormHour.List)
		v1.PUT("/norm-hours", h.NormHour.Upsert)
		v1.DELETE("/norm-hours/:id", h.NormHour.Delete)
	}

	return router
}

func registerQuoteRoutes(v1 *gin.RouterGroup, h *Handlers) {
	quotes := v1.Group("/quotes")
	{
		quotes.GET("", h.Quote.List)
		quotes.POST("", h.Quote.Create)
		quotes.GET("/:id", h.Quote.Get)
		quotes.PUT("/:id", h.Quote.Update)

		quotes.POST("/:id/line-items", h.Quote.AddLineItem)
		quotes.PUT("/:id/line-items/:itemId", h.Quote.UpdateLineItem)
		quotes.DELETE("/:id/line-items/:itemId", h.Quote.RemoveLineItem)

		quotes.PUT("/:id/estimation", h.Quote.SaveEstimation)
		quotes.PUT("/:id/estimation/draft", h.Quote.UpdateDraft)
		quotes.GET("/:id/estimation/draft", h.Quote.DraftStatus)
		quotes.POST("/:id/estimation/draft/flush", h.Quote.FlushDraft)

		quotes.POST("/:id/send", h.Quote.Send)
		quotes.POST("/:id/reopen", h.Quote.Reopen)
		quotes.POST("/:id/recalculate", h.Quote.Recalculate)

		quotes.GET("/:id/workflow", h.Workflow.Get)
	}
}

func registerProjectRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	projects := v1.Group("/projects")
	{
		projects.GET("", h.Project.List)
		projects.GET("/:id", h.Project.Get)
		projects.PUT("/:id", h.Project.Update)
		projects.PUT("/:id/status", h.Project.UpdateStatus)

		// Invoice generation is replayable with an Idempotency-Key
		generate := projects.Group("")
		generate.Use(middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}))
		generate.POST("/:id/invoice", h.Invoice.Generate)
	}
}

func registerInvoiceRoutes(v1 *gin.RouterGroup, h *Handlers) {
	invoices := v1.Group("/invoices")
	{
		invoices.GET("", h.Invoice.List)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.POST("/:id/corrections", h.Invoice.AddCorrection)
		invoices.POST("/:id/finalize", h.Invoice.Finalize)
		invoices.POST("/:id/send", h.Invoice.MarkSent)
		invoices.POST("/:id/pay", h.Invoice.MarkPaid)
		invoices.POST("/sweep-overdue", h.Invoice.SweepOverdue)
	}
}

func registerCustomerRoutes(v1 *gin.RouterGroup, h *Handlers) {
	customers := v1.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}
}
