package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

// Subscription is a student's plan purchase. Distribution fires when
// PaymentStatus flips to COMPLETED after gateway verification.
type Subscription struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Student           primitive.ObjectID `bson:"student" json:"student"`
	PlanName          string             `bson:"planName" json:"planName"`
	Amount            float64            `bson:"amount" json:"amount"`
	DurationDays      int                `bson:"durationDays" json:"durationDays"`
	PaymentStatus     PaymentStatus      `bson:"paymentStatus" json:"paymentStatus"`
	RazorpayOrderID   string             `bson:"razorpayOrderId" json:"razorpayOrderId"`
	RazorpayPaymentID string             `bson:"razorpayPaymentId,omitempty" json:"razorpayPaymentId,omitempty"`
	StartDate         *time.Time         `bson:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate           *time.Time         `bson:"endDate,omitempty" json:"endDate,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type CoursePurchase struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Student           primitive.ObjectID `bson:"student" json:"student"`
	Course            primitive.ObjectID `bson:"course" json:"course"`
	Amount            float64            `bson:"amount" json:"amount"`
	PaymentStatus     PaymentStatus      `bson:"paymentStatus" json:"paymentStatus"`
	RazorpayOrderID   string             `bson:"razorpayOrderId" json:"razorpayOrderId"`
	RazorpayPaymentID string             `bson:"razorpayPaymentId,omitempty" json:"razorpayPaymentId,omitempty"`
	PurchasedAt       *time.Time         `bson:"purchasedAt,omitempty" json:"purchasedAt,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// VerifyPaymentRequest is the gateway callback payload for both checkout flows.
type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpayOrderId" validate:"required"`
	RazorpayPaymentID string `json:"razorpayPaymentId" validate:"required"`
	RazorpaySignature string `json:"razorpaySignature" validate:"required"`
}

type CreateSubscriptionRequest struct {
	PlanName     string  `json:"planName" validate:"required"`
	Amount       float64 `json:"amount" validate:"required,gt=0"`
	DurationDays int     `json:"durationDays" validate:"required,gt=0"`
}

type CreateCoursePurchaseRequest struct {
	CourseID string `json:"courseId" validate:"required"`
}
