package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TransactionType string

const (
	TransactionTypeCommission TransactionType = "COMMISSION"
	TransactionTypeWithdrawal TransactionType = "WITHDRAWAL"
	TransactionTypeAdjustment TransactionType = "ADJUSTMENT"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
	TransactionStatusCancelled TransactionStatus = "CANCELLED"
)

type RelatedTransactionType string

const (
	RelatedTransactionSubscription   RelatedTransactionType = "SUBSCRIPTION"
	RelatedTransactionCoursePurchase RelatedTransactionType = "COURSE_PURCHASE"
)

// RelatedTransaction links a ledger entry back to the purchase that caused it.
type RelatedTransaction struct {
	Type          RelatedTransactionType `bson:"type" json:"type"`
	TransactionID primitive.ObjectID     `bson:"transactionId" json:"transactionId"`
	Student       primitive.ObjectID     `bson:"student" json:"student"`
	Amount        float64                `bson:"amount" json:"amount"`
}

type CommissionDetails struct {
	Percentage float64 `bson:"percentage" json:"percentage"`
	BaseAmount float64 `bson:"baseAmount" json:"baseAmount"`
}

// WalletTransaction is one immutable ledger entry. Rows are only ever
// inserted; BalanceAfter snapshots the wallet balance at write time.
// A unique index on (relatedTransaction.transactionId, user, type) rejects
// a second commission entry for the same purchase and user.
type WalletTransaction struct {
	ID                 primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	User               primitive.ObjectID  `bson:"user" json:"user"`
	UserModel          Role                `bson:"userModel" json:"userModel"`
	Type               TransactionType     `bson:"type" json:"type"`
	Amount             float64             `bson:"amount" json:"amount"`
	BalanceAfter       float64             `bson:"balanceAfter" json:"balanceAfter"`
	RelatedTransaction *RelatedTransaction `bson:"relatedTransaction,omitempty" json:"relatedTransaction,omitempty"`
	CommissionDetails  *CommissionDetails  `bson:"commissionDetails,omitempty" json:"commissionDetails,omitempty"`
	Description        string              `bson:"description" json:"description"`
	Status             TransactionStatus   `bson:"status" json:"status"`
	CreatedAt          time.Time           `bson:"createdAt" json:"createdAt"`
}

// SkipReason records why a hierarchy role did or did not receive a payout.
type SkipReason string

const (
	SkipReasonNone        SkipReason = "OK"
	SkipReasonInactive    SkipReason = "SKIPPED_INACTIVE"
	SkipReasonMissing     SkipReason = "SKIPPED_MISSING"
	SkipReasonZeroPercent SkipReason = "SKIPPED_ZERO_PERCENT"
	SkipReasonDuplicate   SkipReason = "SKIPPED_DUPLICATE"
)

// Distribution is one role's share of a single purchase.
type Distribution struct {
	User       primitive.ObjectID `json:"user"`
	Role       Role               `json:"role"`
	Amount     float64            `json:"amount"`
	Percentage float64            `json:"percentage"`
	Reason     SkipReason         `json:"reason"`
}

// DistributionResult is the outcome of one full distribution run.
type DistributionResult struct {
	Success          bool           `json:"success"`
	Message          string         `json:"message,omitempty"`
	Distributions    []Distribution `json:"distributions"`
	Skipped          []Distribution `json:"skipped,omitempty"`
	TotalDistributed float64        `json:"totalDistributed"`
}

// CommissionSummaryRow is one bucket of the admin commission aggregation.
type CommissionSummaryRow struct {
	Role        Role    `bson:"_id" json:"role"`
	TotalAmount float64 `bson:"totalAmount" json:"totalAmount"`
	Count       int64   `bson:"count" json:"count"`
}
