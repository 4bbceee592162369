package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/groenwerk/hovenier-api/internal/application/autosave"
	"github.com/groenwerk/hovenier-api/internal/application/service"
	"github.com/groenwerk/hovenier-api/internal/config"
	"github.com/groenwerk/hovenier-api/internal/domain/estimation"
	"github.com/groenwerk/hovenier-api/internal/infrastructure/database"
	"github.com/groenwerk/hovenier-api/internal/infrastructure/repository"
	"github.com/groenwerk/hovenier-api/internal/presentation/http/handler"
	"github.com/groenwerk/hovenier-api/internal/presentation/http/routes"
	"github.com/groenwerk/hovenier-api/pkg/sharetoken"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed norm hours and default settings
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize share token manager for customer quote links
	shareTokens := sharetoken.NewManager(cfg.Share.Secret, cfg.Share.Expiry)

	// Initialize repositories
	quoteRepo := repository.NewQuoteRepository(db)
	quoteLineItemRepo := repository.NewQuoteLineItemRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	invoiceLineItemRepo := repository.NewInvoiceLineItemRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	normHourRepo := repository.NewNormHourRepository(db)
	sequenceRepo := repository.NewNumberSequenceRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	txManager := repository.NewTransactionManager(db)

	// Initialize services
	quoteService := service.NewQuoteService(
		quoteRepo, quoteLineItemRepo, customerRepo, projectRepo,
		settingsRepo, normHourRepo, sequenceRepo, txManager, shareTokens,
	)
	invoiceService := service.NewInvoiceService(
		invoiceRepo, invoiceLineItemRepo, projectRepo, quoteRepo,
		settingsRepo, sequenceRepo, txManager,
	)
	projectService := service.NewProjectService(projectRepo)
	customerService := service.NewCustomerService(customerRepo, quoteRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	normHourService := service.NewNormHourService(normHourRepo)
	workflowService := service.NewWorkflowService(quoteRepo, projectRepo, invoiceRepo)

	// Estimation drafts autosave through the quote service
	drafts := autosave.NewDraftStore(func(ctx context.Context, quoteID uuid.UUID, input estimation.Input) error {
		_, err := quoteService.SaveEstimation(ctx, quoteID, input)
		return err
	}, cfg.Workflow.AutosaveDebounce)
	defer drafts.Close()

	// Initialize handlers
	handlers := &routes.Handlers{
		Quote:    handler.NewQuoteHandler(quoteService, drafts),
		Invoice:  handler.NewInvoiceHandler(invoiceService),
		Project:  handler.NewProjectHandler(projectService),
		Customer: handler.NewCustomerHandler(customerService),
		Settings: handler.NewSettingsHandler(settingsService),
		NormHour: handler.NewNormHourHandler(normHourService),
		Workflow: handler.NewWorkflowHandler(workflowService),
		Public:   handler.NewPublicHandler(quoteService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
