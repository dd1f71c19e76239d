package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/padhaihub/padhai_backend/controllers"
	"github.com/padhaihub/padhai_backend/middleware"
)

// RegisterCatalogRoutes sets up catalog browsing and admin CRUD routes
func RegisterCatalogRoutes(e *echo.Echo, catalogController *controllers.CatalogController) {
	// Browsing is open to any authenticated principal
	catalog := e.Group("/api/catalog")
	catalog.Use(middleware.JWTMiddleware())

	catalog.GET("/categories", catalogController.GetCategories)
	catalog.GET("/subjects", catalogController.GetSubjects)
	catalog.GET("/chapters", catalogController.GetChapters)
	catalog.GET("/courses", catalogController.GetCourses)

	// Mutation is admin-only
	admin := e.Group("/api/admin/catalog")
	admin.Use(middleware.JWTMiddleware())
	admin.Use(middleware.RequireAdmin())

	admin.POST("/categories", catalogController.CreateCategory)
	admin.PUT("/categories/:id", catalogController.UpdateCategory)
	admin.DELETE("/categories/:id", catalogController.DeleteCategory)

	admin.POST("/subjects", catalogController.CreateSubject)
	admin.DELETE("/subjects/:id", catalogController.DeleteSubject)

	admin.POST("/chapters", catalogController.CreateChapter)
	admin.DELETE("/chapters/:id", catalogController.DeleteChapter)

	admin.POST("/courses", catalogController.CreateCourse)
	admin.PUT("/courses/:id", catalogController.UpdateCourse)
	admin.DELETE("/courses/:id", catalogController.DeleteCourse)
}
