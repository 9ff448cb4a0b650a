package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pharmacare/pharmacare-api/internal/config"
	domainRepo "github.com/pharmacare/pharmacare-api/internal/domain/repository"
	"github.com/pharmacare/pharmacare-api/internal/presentation/http/handler"
	"github.com/pharmacare/pharmacare-api/internal/presentation/http/middleware"
	"github.com/pharmacare/pharmacare-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth         *handler.AuthHandler
	Branch       *handler.BranchHandler
	Medicine     *handler.MedicineHandler
	Category     *handler.CategoryHandler
	Unit         *handler.UnitHandler
	POS          *handler.POSHandler
	Sale         *handler.SaleHandler
	Purchase     *handler.PurchaseHandler
	Patient      *handler.PatientHandler
	Supplier     *handler.SupplierHandler
	Prescription *handler.PrescriptionHandler
	Dashboard    *handler.DashboardHandler
	Settings     *handler.SettingsHandler
	User         *handler.UserHandler
	Printer      *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	BranchRepo      domainRepo.BranchRepository
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
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Resolve the active branch from subdomain or X-Branch-ID header
		protected.Use(middleware.BranchMiddleware(deps.BranchRepo))

		// Per-branch rate limiter
		rateLimiter := middleware.NewBranchRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/reset-password", h.Auth.ResetPassword)
		// Google OAuth routes
		auth.GET("/google", h.Auth.GoogleAuth)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile", h.Auth.UpdateProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Settings
	protected.GET("/settings", h.Settings.GetSettings)
	protected.PUT("/settings", h.Settings.UpdateSettings)
	protected.POST("/settings/reset", h.Settings.ResetSettings)

	// Dashboard
	protected.GET("/dashboard", h.Dashboard.GetStats)

	// Branches
	registerBranchRoutes(protected, h)

	// Medicines
	registerMedicineRoutes(protected, h)

	// Categories
	registerCategoryRoutes(protected, h)

	// Units
	registerUnitRoutes(protected, h)

	// POS cart and checkout
	registerPOSRoutes(protected, h, deps)

	// Sales
	registerSaleRoutes(protected, h)

	// Purchases
	registerPurchaseRoutes(protected, h)

	// Patients
	registerPatientRoutes(protected, h)

	// Suppliers
	registerSupplierRoutes(protected, h)

	// Prescriptions
	registerPrescriptionRoutes(protected, h)

	// Reports
	registerReportRoutes(protected)

	// Users (Admin)
	registerUserRoutes(protected, h)

	// Roles (Admin)
	registerRoleRoutes(protected, h)

	// Permissions (Admin)
	registerPermissionRoutes(protected, h)

	// Super Admin routes
	registerAdminRoutes(protected, h)

	// Printer
	registerPrinterRoutes(protected, h)
}

func registerBranchRoutes(protected *gin.RouterGroup, h *Handlers) {
	branches := protected.Group("/branches")
	{
		branches.GET("", h.Branch.List)
		branches.POST("", h.Branch.Create)
		branches.GET("/current", h.Branch.GetCurrentBranch)
		branches.PUT("/current", h.Branch.Update)
		branches.GET("/current/settings", h.Branch.GetSettings)
		branches.PUT("/current/settings", h.Branch.UpdateSettings)
		branches.GET("/current/members", h.Branch.ListMembers)
		branches.POST("/current/members", h.Branch.AddMember)
		branches.PUT("/current/members/:user_id", h.Branch.UpdateMemberRole)
		branches.DELETE("/current/members/:user_id", h.Branch.RemoveMember)
	}
}

func registerMedicineRoutes(protected *gin.RouterGroup, h *Handlers) {
	medicines := protected.Group("/medicines")
	medicines.Use(middleware.RequirePermission("manage-medicines"))
	{
		medicines.GET("", h.Medicine.List)
		medicines.POST("", h.Medicine.Create)
		medicines.POST("/import", h.Medicine.Import)
		medicines.GET("/export", h.Medicine.Export)
		medicines.GET("/low-stock", h.Medicine.GetLowStock)
		medicines.GET("/expiring", h.Medicine.GetExpiring)
		medicines.GET("/:slug", h.Medicine.Get)
		medicines.PUT("/:slug", h.Medicine.Update)
		medicines.DELETE("/:slug", h.Medicine.Delete)
	}
}

func registerCategoryRoutes(protected *gin.RouterGroup, h *Handlers) {
	categories := protected.Group("/categories")
	categories.Use(middleware.RequirePermission("manage-medicines"))
	{
		categories.GET("", h.Category.List)
		categories.POST("", h.Category.Create)
		categories.GET("/:id", h.Category.Get)
		categories.PUT("/:id", h.Category.Update)
		categories.DELETE("/:id", h.Category.Delete)
	}
}

func registerUnitRoutes(protected *gin.RouterGroup, h *Handlers) {
	units := protected.Group("/units")
	units.Use(middleware.RequirePermission("manage-medicines"))
	{
		units.GET("", h.Unit.List)
		units.POST("", h.Unit.Create)
		units.GET("/:id", h.Unit.Get)
		units.PUT("/:id", h.Unit.Update)
		units.DELETE("/:id", h.Unit.Delete)
	}
}

func registerPOSRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	pos := protected.Group("/pos")
	pos.Use(middleware.RequirePermission("manage-sales"))
	{
		pos.GET("/cart", h.POS.GetCart)
		pos.POST("/cart/items", h.POS.AddItem)
		pos.PUT("/cart/items/:medicine_id", h.POS.UpdateItemQuantity)
		pos.DELETE("/cart/items/:medicine_id", h.POS.RemoveItem)
		pos.DELETE("/cart", h.POS.ClearCart)
		pos.PUT("/cart/discount", h.POS.SetDiscount)
		pos.PUT("/cart/items/:medicine_id/discount", h.POS.SetLineDiscount)
		pos.GET("/checkout/state", h.POS.GetCheckoutState)
		pos.GET("/recent", h.POS.GetRecentSales)
		// Checkout uses idempotency middleware to prevent duplicate sales
		pos.POST("/checkout", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.POS.Checkout)
	}
}

func registerSaleRoutes(protected *gin.RouterGroup, h *Handlers) {
	sales := protected.Group("/sales")
	sales.Use(middleware.RequirePermission("manage-sales"))
	{
		sales.GET("", h.Sale.List)
		sales.GET("/due", h.Sale.GetDueSales)
		sales.GET("/invoice/:invoice_no", h.Sale.GetByInvoice)
		sales.GET("/:id", h.Sale.Get)
		sales.POST("/:id/cancel", h.Sale.Cancel)
		sales.POST("/:id/pay", h.Sale.PayDue)
		sales.DELETE("/:id", h.Sale.Delete)
	}
}

func registerPurchaseRoutes(protected *gin.RouterGroup, h *Handlers) {
	purchases := protected.Group("/purchases")
	purchases.Use(middleware.RequirePermission("manage-purchases"))
	{
		purchases.GET("", h.Purchase.List)
		purchases.POST("", h.Purchase.Create)
		purchases.GET("/pending", h.Purchase.GetPending)
		purchases.GET("/:id", h.Purchase.Get)
		purchases.POST("/:id/approve", h.Purchase.Approve)
		purchases.POST("/:id/receive", h.Purchase.Receive)
		purchases.POST("/:id/cancel", h.Purchase.Cancel)
		purchases.DELETE("/:id", h.Purchase.Delete)
	}
}

func registerPatientRoutes(protected *gin.RouterGroup, h *Handlers) {
	patients := protected.Group("/patients")
	patients.Use(middleware.RequirePermission("manage-patients"))
	{
		patients.GET("", h.Patient.List)
		patients.POST("", h.Patient.Create)
		patients.GET("/:id", h.Patient.Get)
		patients.PUT("/:id", h.Patient.Update)
		patients.DELETE("/:id", h.Patient.Delete)
	}
}

func registerSupplierRoutes(protected *gin.RouterGroup, h *Handlers) {
	suppliers := protected.Group("/suppliers")
	suppliers.Use(middleware.RequirePermission("manage-suppliers"))
	{
		suppliers.GET("", h.Supplier.List)
		suppliers.POST("", h.Supplier.Create)
		suppliers.GET("/:id", h.Supplier.Get)
		suppliers.PUT("/:id", h.Supplier.Update)
		suppliers.DELETE("/:id", h.Supplier.Delete)
	}
}

func registerPrescriptionRoutes(protected *gin.RouterGroup, h *Handlers) {
	prescriptions := protected.Group("/prescriptions")
	prescriptions.Use(middleware.RequirePermission("manage-prescriptions"))
	{
		prescriptions.GET("", h.Prescription.List)
		prescriptions.POST("", h.Prescription.Create)
		prescriptions.GET("/:id", h.Prescription.Get)
		prescriptions.POST("/:id/dispense", h.Prescription.Dispense)
		prescriptions.POST("/:id/cancel", h.Prescription.Cancel)
		prescriptions.DELETE("/:id", h.Prescription.Delete)
	}
}

func registerReportRoutes(protected *gin.RouterGroup) {
	reports := protected.Group("/reports")
	reports.Use(middleware.RequirePermission("view-reports"))
	{
		reports.GET("/sales", func(c *gin.Context) {
			c.JSON(200, gin.H{"message": "Sales report - Coming soon"})
		})
		reports.GET("/purchases", func(c *gin.Context) {
			c.JSON(200, gin.H{"message": "Purchases report - Coming soon"})
		})
		reports.GET("/inventory", func(c *gin.Context) {
			c.JSON(200, gin.H{"message": "Inventory report - Coming soon"})
		})
	}
}

func registerUserRoutes(protected *gin.RouterGroup, h *Handlers) {
	users := protected.Group("/users")
	users.Use(middleware.RequirePermission("manage-users"))
	{
		users.GET("", h.User.List)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id/roles", h.User.UpdateRoles)
		users.DELETE("/:id", h.User.Delete)
	}
}

func registerRoleRoutes(protected *gin.RouterGroup, h *Handlers) {
	roles := protected.Group("/roles")
	roles.Use(middleware.RequirePermission("manage-users"))
	{
		roles.GET("", h.User.ListRoles)
		roles.POST("", h.User.CreateRole)
		roles.GET("/:id", h.User.GetRole)
		roles.PUT("/:id", h.User.UpdateRole)
		roles.DELETE("/:id", h.User.DeleteRole)
	}
}

func registerPermissionRoutes(protected *gin.RouterGroup, h *Handlers) {
	permissions := protected.Group("/permissions")
	permissions.Use(middleware.RequirePermission("manage-users"))
	{
		permissions.GET("", h.User.ListPermissions)
	}
}

func registerAdminRoutes(protected *gin.RouterGroup, h *Handlers) {
	admin := protected.Group("/admin")
	admin.Use(middleware.RequireRole("super-admin"))
	{
		admin.POST("/branches/assign-user", h.Branch.AssignUserToBranch)
		admin.DELETE("/branches/:id", h.Branch.Delete)
	}
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	printerGroup := protected.Group("/printer")
	{
		printerGroup.GET("/status", h.Printer.GetStatus)
		printerGroup.POST("/test", h.Printer.TestPrint)
		printerGroup.POST("/receipt", h.Printer.PrintReceipt)
		printerGroup.GET("/receipt/:id", h.Printer.GetReceipt)
		printerGroup.POST("/receipt/:id/email", h.Printer.EmailReceipt)
	}
}
