// controllers/subscription_controller.go
package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/padhaihub/padhai_backend/middleware"
	"github.com/padhaihub/padhai_backend/models"
	"github.com/padhaihub/padhai_backend/services"
)

// SubscriptionController handles student subscription checkout and
// gateway verification
type SubscriptionController struct {
	DB          *mongo.Database
	Razorpay    *services.RazorpayService
	Commissions *services.CommissionService
}

// NewSubscriptionController creates a new subscription controller
func NewSubscriptionController(db *mongo.Database, razorpay *services.RazorpayService, commissions *services.CommissionService) *SubscriptionController {
	return &SubscriptionController{DB: db, Razorpay: razorpay, Commissions: commissions}
}

// CreateSubscription opens a PENDING subscription and a gateway order for it
func (sc *SubscriptionController) CreateSubscription(c echo.Context) error {
	studentID, err := middleware.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid authentication token",
		})
	}

	var req models.CreateSubscriptionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Plan name, a positive amount and duration are required",
		})
	}

	receipt := "sub_" + uuid.New().String()
	order, err := sc.Razorpay.CreateOrder(req.Amount, "INR", receipt)
	if err != nil {
		log.Printf("Failed to create Razorpay order for student %s: %v", studentID.Hex(), err)
		return c.JSON(http.StatusBadGateway, models.Response{
			Status:  http.StatusBadGateway,
			Message: "Failed to create payment order",
		})
	}

	subscription := models.Subscription{
		Student:         studentID,
		PlanName:        req.PlanName,
		Amount:          req.Amount,
		DurationDays:    req.DurationDays,
		PaymentStatus:   models.PaymentStatusPending,
		RazorpayOrderID: order.ID,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := sc.DB.Collection("subscriptions").InsertOne(ctx, subscription)
	if err != nil {
		log.Printf("Failed to insert subscription for student %s: %v", studentID.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create subscription",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Subscription created, awaiting payment",
		Data: map[string]interface{}{
			"subscriptionId":  result.InsertedID,
			"razorpayOrderId": order.ID,
			"amount":          req.Amount,
			"currency":        "INR",
		},
	})
}

// VerifySubscriptionPayment confirms the gateway callback, activates the
// subscription and triggers commission distribution. Distribution failures
// are logged for reconciliation but never fail the student's activation.
func (sc *SubscriptionController) VerifySubscriptionPayment(c echo.Context) error {
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

	if !sc.Razorpay.VerifyPaymentSignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Payment signature verification failed",
		})
	}

	payment, err := sc.Razorpay.GetPaymentDetails(req.RazorpayPaymentID)
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

	var subscription models.Subscription
	err = sc.DB.Collection("subscriptions").FindOne(ctx, bson.M{
		"razorpayOrderId": req.RazorpayOrderID,
		"student":         studentID,
	}).Decode(&subscription)
	if err == mongo.ErrNoDocuments {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Subscription not found for this order",
		})
	}
	if err != nil {
		log.Printf("Failed to load subscription for order %s: %v", req.RazorpayOrderID, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load subscription",
		})
	}

	alreadyCompleted := subscription.PaymentStatus == models.PaymentStatusCompleted

	startDate := time.Now()
	endDate := startDate.AddDate(0, 0, subscription.DurationDays)
	if !alreadyCompleted {
		update := bson.M{"$set": bson.M{
			"paymentStatus":     models.PaymentStatusCompleted,
			"razorpayPaymentId": req.RazorpayPaymentID,
			"startDate":         startDate,
			"endDate":           endDate,
			"updatedAt":         time.Now(),
		}}
		_, err = sc.DB.Collection("subscriptions").UpdateOne(ctx, bson.M{"_id": subscription.ID}, update)
		if err != nil {
			log.Printf("Failed to activate subscription %s: %v", subscription.ID.Hex(), err)
			return c.JSON(http.StatusInternalServerError, models.Response{
				Status:  http.StatusInternalServerError,
				Message: "Failed to activate subscription",
			})
		}
	}

	// The dedup ledger index makes a retried verify call a no-op here.
	distribution := sc.Commissions.DistributeCommissions(ctx, studentID, subscription.Amount,
		models.RelatedTransactionSubscription, subscription.ID)
	if !distribution.Success {
		log.Printf("Commission distribution incomplete for subscription %s: %s",
			subscription.ID.Hex(), distribution.Message)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Subscription activated",
		Data: map[string]interface{}{
			"subscriptionId": subscription.ID,
			"startDate":      startDate,
			"endDate":        endDate,
		},
	})
}

// GetMySubscriptions lists the authenticated student's subscriptions
func (sc *SubscriptionController) GetMySubscriptions(c echo.Context) error {
	studentID, err := middleware.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid authentication token",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := sc.DB.Collection("subscriptions").Find(ctx, bson.M{"student": studentID})
	if err != nil {
		log.Printf("Failed to list subscriptions for student %s: %v", studentID.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve subscriptions",
		})
	}
	defer cursor.Close(ctx)

	var subscriptions []models.Subscription = []models.Subscription{}
	if err = cursor.All(ctx, &subscriptions); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode subscriptions",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Subscriptions retrieved",
		Data:    subscriptions,
	})
}
