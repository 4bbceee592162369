package database

import (
	"fmt"
	"log"

	"github.com/groenwerk/hovenier-api/internal/config"
	"github.com/groenwerk/hovenier-api/internal/domain/entity"
	"github.com/groenwerk/hovenier-api/internal/domain/enum"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// CRM entities
		&entity.Customer{},

		// Quote-to-cash entities
		&entity.Quote{},
		&entity.QuoteLineItem{},
		&entity.Project{},
		&entity.Invoice{},
		&entity.InvoiceLineItem{},

		// Collaborator tables
		&entity.CompanySettings{},
		&entity.NormHour{},
		&entity.NumberSequence{},
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the norm-hours table and the company settings row
// so a fresh install can price and estimate right away.
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	desc := func(s string) *string { return &s }
	norms := []entity.NormHour{
		{Scope: enum.ScopeBestrating, HoursPerUnit: 0.75, Unit: "m2", Description: desc("Bestrating leggen incl. voorbereiding")},
		{Scope: enum.ScopeSchutting, HoursPerUnit: 1.2, Unit: "m", Description: desc("Schutting plaatsen incl. palen zetten")},
		{Scope: enum.ScopeGazon, HoursPerUnit: 0.15, Unit: "m2", Description: desc("Gazon aanleggen (zoden)")},
		{Scope: enum.ScopeBeplanting, HoursPerUnit: 0.25, Unit: "m2", Description: desc("Borders beplanten")},
		{Scope: enum.ScopeVijver, HoursPerUnit: 2.5, Unit: "m2", Description: desc("Vijver aanleggen incl. folie")},
		{Scope: enum.ScopeSnoeien, HoursPerUnit: 0.5, Unit: "m2", Description: desc("Snoeiwerk hagen en heesters")},
		{Scope: enum.ScopeGrondwerk, HoursPerUnit: 0.4, Unit: "m3", Description: desc("Grondwerk en afvoer")},
	}

	for i := range norms {
		var existing entity.NormHour
		if err := db.Where("scope = ?", norms[i].Scope).First(&existing).Error; err != nil {
			if err := db.Create(&norms[i]).Error; err != nil {
				log.Printf("Warning: failed to seed norm hours for %s: %v", norms[i].Scope, err)
			}
		}
	}

	var settings entity.CompanySettings
	if err := db.First(&settings).Error; err != nil {
		settings = entity.CompanySettings{
			DefaultMarginPercent: 15,
			VatPercent:           21,
			DefaultHourlyRate:    45,
			PaymentTermDays:      30,
		}
		if err := db.Create(&settings).Error; err != nil {
			log.Printf("Warning: failed to seed company settings: %v", err)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
