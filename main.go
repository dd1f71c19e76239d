package main

import (
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/padhaihub/padhai_backend/config"
	"github.com/padhaihub/padhai_backend/controllers"
	"github.com/padhaihub/padhai_backend/middleware"
	"github.com/padhaihub/padhai_backend/routes"
	"github.com/padhaihub/padhai_backend/services"
)

// CustomValidator is a custom validator for Echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates the request body
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found")
	}

	// Connect to Redis (optional: settings cache degrades gracefully)
	rdb := config.ConnectRedis()

	// Connect to database
	client := config.ConnectDB()
	db := client.Database(config.DatabaseName())

	// Create a new Echo instance
	e := echo.New()

	// Initialize custom validator
	customValidator := &CustomValidator{validator: validator.New()}
	e.Validator = customValidator

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter()

	// Middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.Secure())
	e.Use(rateLimiter.RateLimit())
	e.Use(middleware.SecurityHeadersWithConfig(middleware.SecurityConfig{
		AllowedDomains: []string{"*"},
		AllowInlineJS:  false,
		AllowEval:      false,
	}))

	e.Match([]string{"GET", "HEAD"}, "/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":  "OK",
			"message": "Padhai Backend is running",
			"version": "1.0",
		})
	})

	e.Match([]string{"GET", "HEAD"}, "/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":   "healthy",
			"database": "connected",
		})
	})

	// Initialize services
	razorpayService := services.NewRazorpayService()
	settingsService := services.NewSettingsService(db, rdb)
	commissionService := services.NewCommissionService(db, rdb)

	// Initialize controllers
	authController := controllers.NewAuthController(db)
	subscriptionController := controllers.NewSubscriptionController(db, razorpayService, commissionService)
	coursePurchaseController := controllers.NewCoursePurchaseController(db, razorpayService, commissionService)
	commissionController := controllers.NewCommissionController(db, settingsService)
	walletController := controllers.NewWalletController(db)
	catalogController := controllers.NewCatalogController(db)

	// Register routes
	routes.RegisterAuthRoutes(e, authController)
	routes.RegisterStudentRoutes(e, subscriptionController, coursePurchaseController)
	routes.RegisterWalletRoutes(e, walletController)
	routes.RegisterAdminRoutes(e, commissionController)
	routes.RegisterCatalogRoutes(e, catalogController)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Starting server on port %s", port)
	e.Logger.Fatal(e.Start(":" + port))
}
