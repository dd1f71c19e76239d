package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/padhaihub/padhai_backend/controllers"
	"github.com/padhaihub/padhai_backend/middleware"
	"github.com/padhaihub/padhai_backend/models"
)

// RegisterStudentRoutes sets up checkout and verification routes
func RegisterStudentRoutes(e *echo.Echo, subscriptionController *controllers.SubscriptionController, coursePurchaseController *controllers.CoursePurchaseController) {
	student := e.Group("/api/student")
	student.Use(middleware.JWTMiddleware())
	student.Use(middleware.RequireUserType(string(models.RoleStudent)))

	student.POST("/subscription", subscriptionController.CreateSubscription)
	student.POST("/subscription/verify", subscriptionController.VerifySubscriptionPayment)
	student.GET("/subscriptions", subscriptionController.GetMySubscriptions)

	student.POST("/course/purchase", coursePurchaseController.CreateCoursePurchase)
	student.POST("/course/purchase/verify", coursePurchaseController.VerifyCoursePurchasePayment)
}
