// controllers/catalog_controller.go
package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/padhaihub/padhai_backend/models"
)

// CatalogController handles the content catalog: categories, subjects,
// chapters and courses
type CatalogController struct {
	DB *mongo.Database
}

// NewCatalogController creates a new catalog controller
func NewCatalogController(db *mongo.Database) *CatalogController {
	return &CatalogController{DB: db}
}

func (cc *CatalogController) list(c echo.Context, collName string, out interface{}) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := cc.DB.Collection(collName).Find(ctx, bson.M{"isActive": true})
	if err != nil {
		log.Printf("Failed to list %s: %v", collName, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve " + collName,
		})
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, out); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode " + collName,
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Retrieved " + collName,
		Data:    out,
	})
}

func (cc *CatalogController) create(c echo.Context, collName string, doc interface{}) error {
	if err := c.Bind(doc); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(doc); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Missing required fields",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := cc.DB.Collection(collName).InsertOne(ctx, doc)
	if err != nil {
		log.Printf("Failed to insert into %s: %v", collName, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create record",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Created",
		Data:    map[string]interface{}{"id": result.InsertedID},
	})
}

func (cc *CatalogController) update(c echo.Context, collName string, fields bson.M) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid ID",
		})
	}

	fields["updatedAt"] = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := cc.DB.Collection(collName).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		log.Printf("Failed to update %s %s: %v", collName, id.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update record",
		})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Record not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Updated",
	})
}

// delete soft-deletes by clearing isActive; catalog rows referenced by past
// purchases must stay resolvable.
func (cc *CatalogController) delete(c echo.Context, collName string) error {
	return cc.update(c, collName, bson.M{"isActive": false})
}

// Categories

func (cc *CatalogController) GetCategories(c echo.Context) error {
	var categories []models.Category = []models.Category{}
	return cc.list(c, "categories", &categories)
}

func (cc *CatalogController) CreateCategory(c echo.Context) error {
	category := models.Category{
		ID:        primitive.NewObjectID(),
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	return cc.create(c, "categories", &category)
}

func (cc *CatalogController) UpdateCategory(c echo.Context) error {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{Status: http.StatusBadRequest, Message: "Invalid request body"})
	}
	fields := bson.M{}
	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.Description != "" {
		fields["description"] = req.Description
	}
	return cc.update(c, "categories", fields)
}

func (cc *CatalogController) DeleteCategory(c echo.Context) error {
	return cc.delete(c, "categories")
}

// Subjects

func (cc *CatalogController) GetSubjects(c echo.Context) error {
	var subjects []models.Subject = []models.Subject{}
	return cc.list(c, "subjects", &subjects)
}

func (cc *CatalogController) CreateSubject(c echo.Context) error {
	subject := models.Subject{
		ID:        primitive.NewObjectID(),
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	return cc.create(c, "subjects", &subject)
}

func (cc *CatalogController) DeleteSubject(c echo.Context) error {
	return cc.delete(c, "subjects")
}

// Chapters

func (cc *CatalogController) GetChapters(c echo.Context) error {
	var chapters []models.Chapter = []models.Chapter{}
	return cc.list(c, "chapters", &chapters)
}

func (cc *CatalogController) CreateChapter(c echo.Context) error {
	chapter := models.Chapter{
		ID:        primitive.NewObjectID(),
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	return cc.create(c, "chapters", &chapter)
}

func (cc *CatalogController) DeleteChapter(c echo.Context) error {
	return cc.delete(c, "chapters")
}

// Courses

func (cc *CatalogController) GetCourses(c echo.Context) error {
	var courses []models.Course = []models.Course{}
	return cc.list(c, "courses", &courses)
}

func (cc *CatalogController) CreateCourse(c echo.Context) error {
	course := models.Course{
		ID:        primitive.NewObjectID(),
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	return cc.create(c, "courses", &course)
}

func (cc *CatalogController) UpdateCourse(c echo.Context) error {
	var req struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Price       *float64 `json:"price"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{Status: http.StatusBadRequest, Message: "Invalid request body"})
	}
	fields := bson.M{}
	if req.Title != "" {
		fields["title"] = req.Title
	}
	if req.Description != "" {
		fields["description"] = req.Description
	}
	if req.Price != nil && *req.Price >= 0 {
		fields["price"] = *req.Price
	}
	return cc.update(c, "courses", fields)
}

func (cc *CatalogController) DeleteCourse(c echo.Context) error {
	return cc.delete(c, "courses")
}
