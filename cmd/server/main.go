package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	httpapi "winetour-backend/internal/api/http"
	"winetour-backend/internal/config"
	"winetour-backend/internal/logger"
	"winetour-backend/internal/repository/postgres"
	"winetour-backend/internal/security"
	"winetour-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Winetour Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	logger.Debug("Connecting to database...", "connection_string", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database))
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret)

	// Initialize Email Service
	emailSvc := service.NewEmailService(
		cfg.SendGrid.APIKey,
		cfg.SendGrid.FromEmail,
		cfg.SendGrid.FromName,
	)

	// Initialize Services
	availabilitySvc := service.NewAvailabilityService(store.BookingRepository, store.HoldRepository)
	holdSvc := service.NewHoldService(
		store.HoldRepository,
		store.VehicleRepository,
		time.Duration(cfg.Holds.ExpiryMinutes)*time.Minute,
	)
	complianceSvc := service.NewComplianceService(store.ComplianceRepository, service.HoursOfServiceLimits{
		DailyMinutes:  cfg.Compliance.DailyLimitMinutes,
		WeeklyMinutes: cfg.Compliance.WeeklyLimitMinutes,
	})
	bookingSvc := service.NewBookingService(
		store.BookingRepository,
		store.CustomerRepository,
		store.DriverRepository,
		store.VehicleRepository,
		store.TimelineRepository,
		holdSvc,
		availabilitySvc,
		complianceSvc,
		emailSvc,
	)
	paymentSvc := service.NewPaymentService(
		store.PaymentRepository,
		store.BookingRepository,
		store.TimelineRepository,
		emailSvc,
	)

	// Set up HTTP router
	router := httpapi.NewRouter(httpapi.Handlers{
		Bookings:     bookingSvc,
		Holds:        holdSvc,
		Availability: availabilitySvc,
		Compliance:   complianceSvc,
		Payments:     paymentSvc,
	}, tokenManager)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
