package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/padhaihub/padhai_backend/controllers"
	"github.com/padhaihub/padhai_backend/middleware"
)

// RegisterAdminRoutes sets up commission settings and reporting routes
func RegisterAdminRoutes(e *echo.Echo, commissionController *controllers.CommissionController) {
	admin := e.Group("/api/admin")
	admin.Use(middleware.JWTMiddleware())
	admin.Use(middleware.RequireAdmin())

	admin.GET("/commission-settings", commissionController.GetCommissionSettings)
	admin.PUT("/commission-settings", commissionController.UpdateCommissionSettings)
	admin.GET("/commissions/summary", commissionController.GetCommissionSummary)
}
