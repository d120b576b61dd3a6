package routes

import (
	"retail-backend/config"
	"retail-backend/controllers"
	"retail-backend/services"
	"retail-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const methodPrefix = "retail_app.api."

// Dependencies are the long-lived objects the router wires into handlers.
type Dependencies struct {
	DB       *gorm.DB
	Config   *config.Config
	Logger   *zap.Logger
	Notifier services.Notifier
	ErrorLog *services.ErrorLogService
}

func SetupRouter(deps Dependencies) *gin.Engine {
	cfg := deps.Config
	log := deps.Logger

	r := gin.New()
	r.Use(config.Recovery(log))
	r.Use(config.PerformanceLogger(log, cfg.HTTP.SlowRequest))
	r.Use(cors.New(corsConfig(cfg.HTTP.CORSAllowOrigins)))

	utils.SetupValidator()

	errorLog := deps.ErrorLog
	if errorLog == nil {
		errorLog = services.NewErrorLogService(deps.DB, log)
	}

	authService := services.NewAuthService(deps.DB, utils.NewSecretBox(cfg.Auth.EncryptionKey), cfg.Auth.JWTSecret, cfg.Auth.SessionTTL())
	settingsService := services.NewSettingsService(deps.DB, cfg.App.DefaultCurrency)
	catalogService := services.NewCatalogService(deps.DB)
	customerService := services.NewCustomerService(deps.DB, settingsService)
	invoiceService := services.NewInvoiceService(deps.DB, settingsService, services.InvoiceOptions{
		DefaultWarehouse:   cfg.Stock.DefaultWarehouse,
		ReceivableAccount:  cfg.Accounts.Receivable,
		IncomeAccount:      cfg.Accounts.Income,
		AllowNegativeStock: cfg.Stock.AllowNegativeStock,
	})
	paymentService := services.NewPaymentService(deps.DB, settingsService, deps.Notifier, log)

	authController := controllers.NewAuthController(authService, log, cfg.Auth.CookieSecure)
	settingsController := controllers.NewSettingsController(settingsService, log)
	catalogController := controllers.NewCatalogController(catalogService, log)
	customerController := controllers.NewCustomerController(customerService, errorLog, log)
	invoiceController := controllers.NewInvoiceController(invoiceService, errorLog)
	paymentController := controllers.NewPaymentController(paymentService, errorLog)

	guest := utils.AuthMiddleware(authService, true)
	member := utils.AuthMiddleware(authService, false)

	api := r.Group("/api/method")
	{
		api.GET("/ping", controllers.Ping)
		api.POST(methodPrefix+"custom_login", authController.Login)
		api.POST("/logout", member, authController.Logout)
		api.GET("/frappe.auth.get_logged_user", member, authController.LoggedUser)
	}

	open := api.Group("", guest)
	{
		open.POST(methodPrefix+"create_sales_invoice", invoiceController.CreateSalesInvoice)
		open.GET(methodPrefix+"get_sales_invoices", invoiceController.GetSalesInvoices)
		open.GET(methodPrefix+"get_customers_with_balances", customerController.GetCustomersWithBalances)
		open.POST(methodPrefix+"make_customer_payment_entry", paymentController.MakeCustomerPaymentEntry)
	}

	protected := api.Group("", member)
	{
		protected.GET(methodPrefix+"get_settings", settingsController.GetSettings)
		protected.POST(methodPrefix+"update_settings", settingsController.UpdateSettings)
		protected.GET(methodPrefix+"get_customers", customerController.GetCustomers)
		protected.GET(methodPrefix+"get_item_prices", catalogController.GetItemPrices)
		protected.GET(methodPrefix+"get_items", catalogController.GetItems)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", config.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", config.RequestIDHeader},
		AllowCredentials: true,
	}
	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
