// repositories/ledger_repository.go
package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/padhaihub/padhai_backend/models"
)

// ErrDuplicateTransaction means a ledger entry for the same purchase, user
// and type already exists. The unique index raises this, never the caller.
var ErrDuplicateTransaction = errors.New("ledger entry already exists for this transaction")

type LedgerRepository struct {
	DB *mongo.Database
}

func NewLedgerRepository(db *mongo.Database) *LedgerRepository {
	return &LedgerRepository{DB: db}
}

// RecordTransactionParams carries everything needed for one ledger row.
type RecordTransactionParams struct {
	User               primitive.ObjectID
	UserModel          models.Role
	Type               models.TransactionType
	Amount             float64
	BalanceAfter       float64
	RelatedTransaction *models.RelatedTransaction
	CommissionDetails  *models.CommissionDetails
	Description        string
	Status             models.TransactionStatus
}

// RecordTransaction appends one immutable ledger entry. Rows are never
// updated or deleted afterwards.
func (r *LedgerRepository) RecordTransaction(ctx context.Context, params RecordTransactionParams) (*models.WalletTransaction, error) {
	status := params.Status
	if status == "" {
		status = models.TransactionStatusCompleted
	}

	entry := models.WalletTransaction{
		ID:                 primitive.NewObjectID(),
		User:               params.User,
		UserModel:          params.UserModel,
		Type:               params.Type,
		Amount:             params.Amount,
		BalanceAfter:       params.BalanceAfter,
		RelatedTransaction: params.RelatedTransaction,
		CommissionDetails:  params.CommissionDetails,
		Description:        params.Description,
		Status:             status,
		CreatedAt:          time.Now(),
	}

	_, err := r.DB.Collection("walletTransactions").InsertOne(ctx, entry)
	if mongo.IsDuplicateKeyError(err) {
		return nil, ErrDuplicateTransaction
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert wallet transaction: %w", err)
	}
	return &entry, nil
}

// HasEntry reports whether a ledger row already exists for the given
// purchase, user and type. Used as the cheap idempotence pre-check before
// touching the wallet.
func (r *LedgerRepository) HasEntry(ctx context.Context, transactionID, user primitive.ObjectID, txType models.TransactionType) (bool, error) {
	filter := bson.M{
		"relatedTransaction.transactionId": transactionID,
		"user":                             user,
		"type":                             txType,
	}
	count, err := r.DB.Collection("walletTransactions").CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check for existing ledger entry: %w", err)
	}
	return count > 0, nil
}

// ListByUser returns a page of a wallet owner's ledger, newest first.
func (r *LedgerRepository) ListByUser(ctx context.Context, user primitive.ObjectID, page, limit int64) ([]models.WalletTransaction, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	filter := bson.M{"user": user}
	coll := r.DB.Collection("walletTransactions")

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count wallet transactions: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find wallet transactions: %w", err)
	}
	defer cursor.Close(ctx)

	var transactions []models.WalletTransaction = []models.WalletTransaction{}
	if err = cursor.All(ctx, &transactions); err != nil {
		return nil, 0, fmt.Errorf("failed to decode wallet transactions: %w", err)
	}
	return transactions, total, nil
}

// SummarizeCommissions groups completed commission entries by role.
func (r *LedgerRepository) SummarizeCommissions(ctx context.Context) ([]models.CommissionSummaryRow, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"type":   models.TransactionTypeCommission,
			"status": models.TransactionStatusCompleted,
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":         "$userModel",
			"totalAmount": bson.M{"$sum": "$amount"},
			"count":       bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "totalAmount", Value: -1}}}},
	}

	cursor, err := r.DB.Collection("walletTransactions").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate commissions: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []models.CommissionSummaryRow = []models.CommissionSummaryRow{}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode commission summary: %w", err)
	}
	return rows, nil
}
