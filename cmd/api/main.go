package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/pharmacare/pharmacare-api/internal/application/service"
	"github.com/pharmacare/pharmacare-api/internal/config"
	"github.com/pharmacare/pharmacare-api/internal/domain/interaction"
	"github.com/pharmacare/pharmacare-api/internal/infrastructure/database"
	"github.com/pharmacare/pharmacare-api/internal/infrastructure/repository"
	"github.com/pharmacare/pharmacare-api/internal/presentation/http/handler"
	"github.com/pharmacare/pharmacare-api/internal/presentation/http/routes"
	"github.com/pharmacare/pharmacare-api/pkg/email"
	"github.com/pharmacare/pharmacare-api/pkg/oauth"
	"github.com/pharmacare/pharmacare-api/pkg/printer"
	"github.com/pharmacare/pharmacare-api/pkg/utils"
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

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	permissionRepo := repository.NewPermissionRepository(db)
	branchRepo := repository.NewBranchRepository(db)
	medicineRepo := repository.NewMedicineRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	unitRepo := repository.NewUnitRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	saleItemRepo := repository.NewSaleItemRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	purchaseDetailRepo := repository.NewPurchaseDetailRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	prescriptionRepo := repository.NewPrescriptionRepository(db)
	prescriptionItemRepo := repository.NewPrescriptionItemRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	passwordResetRepo := repository.NewPasswordResetTokenRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
		FrontendURL:  cfg.Email.FrontendURL,
	})

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
		FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
	})

	// Initialize services
	authService := service.NewAuthService(userRepo, roleRepo, passwordResetRepo, jwtManager, emailService, googleOAuthService)
	branchService := service.NewBranchService(branchRepo)
	medicineService := service.NewMedicineService(medicineRepo, categoryRepo, unitRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	unitService := service.NewUnitService(unitRepo)
	cartService := service.NewCartService(medicineRepo, branchRepo, cfg.Pharmacy.DefaultTaxRate)
	interactionChecker := interaction.NewChecker()
	checkoutService := service.NewCheckoutService(
		cartService,
		medicineRepo,
		saleRepo,
		saleItemRepo,
		patientRepo,
		branchRepo,
		interactionChecker,
		cfg.Pharmacy.InvoicePrefix,
		cfg.Pharmacy.BlockOnInteraction,
	)
	saleService := service.NewSaleService(saleRepo, saleItemRepo, medicineRepo)
	purchaseService := service.NewPurchaseService(purchaseRepo, purchaseDetailRepo, medicineRepo, supplierRepo)
	patientService := service.NewPatientService(patientRepo)
	supplierService := service.NewSupplierService(supplierRepo)
	prescriptionService := service.NewPrescriptionService(prescriptionRepo, prescriptionItemRepo, medicineRepo, patientRepo, cartService)
	dashboardService := service.NewDashboardService(analyticsRepo, saleRepo, purchaseRepo, cfg.Pharmacy.NearExpiryDays)
	settingsService := service.NewSettingsService(settingsRepo)
	userService := service.NewUserService(userRepo, roleRepo, permissionRepo)

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}
	printerService := service.NewPrinterService(thermalPrinter, saleRepo, branchRepo, emailService, cfg.Printer.Type, cfg.Pharmacy.Currency)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		Branch:       handler.NewBranchHandler(branchService),
		Medicine:     handler.NewMedicineHandler(medicineService),
		Category:     handler.NewCategoryHandler(categoryService),
		Unit:         handler.NewUnitHandler(unitService),
		POS:          handler.NewPOSHandler(cartService, checkoutService),
		Sale:         handler.NewSaleHandler(saleService),
		Purchase:     handler.NewPurchaseHandler(purchaseService),
		Patient:      handler.NewPatientHandler(patientService),
		Supplier:     handler.NewSupplierHandler(supplierService),
		Prescription: handler.NewPrescriptionHandler(prescriptionService),
		Dashboard:    handler.NewDashboardHandler(dashboardService),
		Settings:     handler.NewSettingsHandler(settingsService),
		User:         handler.NewUserHandler(userService),
		Printer:      handler.NewPrinterHandler(printerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		BranchRepo:      branchRepo,
	})

	// Get port from environment or use default
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
