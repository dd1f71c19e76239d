package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/padhaihub/padhai_backend/controllers"
	"github.com/padhaihub/padhai_backend/middleware"
)

// RegisterAuthRoutes sets up signup, login and account creation routes
func RegisterAuthRoutes(e *echo.Echo, authController *controllers.AuthController) {
	auth := e.Group("/api/auth")
	auth.POST("/login", authController.Login)
	auth.POST("/student/signup", authController.StudentSignup)

	// Subordinate account creation requires an authenticated creator
	accounts := e.Group("/api/accounts")
	accounts.Use(middleware.JWTMiddleware())
	accounts.POST("", authController.CreateRoleAccount)
}
