// controllers/course_purchase_controller.go
package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/padhaihub/padhai_backend/middleware"
	"github.com/padhaihub/padhai_backend/models"
	"github.com/padhaihub/padhai_backend/services"
)

// CoursePurchaseController handles one-off course checkout and verification
type CoursePurchaseController struct {
	DB          *mongo.Database
	Razorpay    *services.RazorpayService
	Commissions *services.CommissionService
}

// NewCoursePurchaseController creates a new course purchase controller
func NewCoursePurchaseController(db *mongo.Database, razorpay *services.RazorpayService, commissions *services.CommissionService) *CoursePurchaseController {
	return &CoursePurchaseController{DB: db, Razorpay: razorpay, Commissions: commissions}
}

// CreateCoursePurchase opens a PENDING purchase priced from the course record
func (cc *CoursePurchaseController) CreateCoursePurchase(c echo.Context) error {
	studentID, err := middleware.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid authentication token",
		})
	}

	var req models.CreateCoursePurchaseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Course ID is required",
		})
	}

	courseID, err := primitive.ObjectIDFromHex(req.CourseID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid course ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var course models.Course
	err = cc.DB.Collection("courses").FindOne(ctx, bson.M{"_id": courseID, "isActive": true}).Decode(&course)
	if err == mongo.ErrNoDocuments {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Course not found",
		})
	}
	if err != nil {
		log.Printf("Failed to load course %s: %v", req.CourseID, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load course",
		})
	}

	receipt := "course_" + uuid.New().String()
	order, err := cc.Razorpay.CreateOrder(course.Price, "INR", receipt)
	if err != nil {
		log.Printf("Failed to create Razorpay order for course %s: %v", courseID.Hex(), err)
		return c.JSON(http.StatusBadGateway, models.Response{
			Status:  http.StatusBadGateway,
			Message: "Failed to create payment order",
		})
	}

	purchase := models.CoursePurchase{
		Student:         studentID,
		Course:          courseID,
		Amount:          course.Price,
		PaymentStatus:   models.PaymentStatusPending,
		RazorpayOrderID: order.ID,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	result, err := cc.DB.Collection("coursePurchases").InsertOne(ctx, purchase)
	if err != nil {
		log.Printf("Failed to insert course purchase for student %s: %v", studentID.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create purchase",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Course purchase created, awaiting payment",
		Data: map[string]interface{}{
			"purchaseId":      result.InsertedID,
			"razorpayOrderId": order.ID,
			"amount":          course.Price,
			"currency":        "INR",
		},
	})
}

// VerifyCoursePurchasePayment confirms the gateway callback, marks the
// purchase complete and triggers commission distribution. As with
// subscriptions, a distribution failure never blocks the student's access.
func (cc *CoursePurchaseController) VerifyCoursePurchasePayment(c echo.Context) error {
	studentID, err := middleware.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid authentication token",
		})
	}

	var req models.VerifyPaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Order ID, payment ID and signature are required",
		})
	}

	if !cc.Razorpay.VerifyPaymentSignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Payment signature verification failed",
		})
	}

	payment, err := cc.Razorpay.GetPaymentDetails(req.RazorpayPaymentID)
	if err != nil {
		log.Printf("Failed to fetch payment %s: %v", req.RazorpayPaymentID, err)
		return c.JSON(http.StatusBadGateway, models.Response{
			Status:  http.StatusBadGateway,
			Message: "Failed to confirm payment with gateway",
		})
	}
	if payment.Status != "captured" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Payment is not captured yet",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var purchase models.CoursePurchase
	err = cc.DB.Collection("coursePurchases").FindOne(ctx, bson.M{
		"razorpayOrderId": req.RazorpayOrderID,
		"student":         studentID,
	}).Decode(&purchase)
	if err == mongo.ErrNoDocuments {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Purchase not found for this order",
		})
	}
	if err != nil {
		log.Printf("Failed to load purchase for order %s: %v", req.RazorpayOrderID, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load purchase",
		})
	}

	if purchase.PaymentStatus != models.PaymentStatusCompleted {
		now := time.Now()
		update := bson.M{"$set": bson.M{
			"paymentStatus":     models.PaymentStatusCompleted,
			"razorpayPaymentId": req.RazorpayPaymentID,
			"purchasedAt":       now,
			"updatedAt":         now,
		}}
		_, err = cc.DB.Collection("coursePurchases").UpdateOne(ctx, bson.M{"_id": purchase.ID}, update)
		if err != nil {
			log.Printf("Failed to complete purchase %s: %v", purchase.ID.Hex(), err)
			return c.JSON(http.StatusInternalServerError, models.Response{
				Status:  http.StatusInternalServerError,
				Message: "Failed to complete purchase",
			})
		}
	}

	distribution := cc.Commissions.DistributeCommissions(ctx, studentID, purchase.Amount,
		models.RelatedTransactionCoursePurchase, purchase.ID)
	if !distribution.Success {
		log.Printf("Commission distribution incomplete for course purchase %s: %s",
			purchase.ID.Hex(), distribution.Message)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Course purchase completed",
		Data: map[string]interface{}{
			"purchaseId": purchase.ID,
			"courseId":   purchase.Course,
		},
	})
}
