// services/commission_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/padhaihub/padhai_backend/models"
	"github.com/padhaihub/padhai_backend/repositories"
	"github.com/padhaihub/padhai_backend/utils"
)

// SettingsProvider serves the active commission split.
type SettingsProvider interface {
	GetActiveSettings(ctx context.Context) (models.CommissionPercentages, error)
}

// HierarchyResolver loads a student's referral chain and its accounts.
type HierarchyResolver interface {
	ResolveHierarchy(ctx context.Context, studentID primitive.ObjectID) (*repositories.ResolvedHierarchy, error)
}

// WalletStore mutates wallets atomically.
type WalletStore interface {
	CreditWallet(ctx context.Context, role models.Role, id primitive.ObjectID, amount float64) (*models.RoleAccount, error)
	ReverseCredit(ctx context.Context, role models.Role, id primitive.ObjectID, amount float64) error
}

// LedgerWriter appends immutable wallet transactions.
type LedgerWriter interface {
	RecordTransaction(ctx context.Context, params repositories.RecordTransactionParams) (*models.WalletTransaction, error)
	HasEntry(ctx context.Context, transactionID, user primitive.ObjectID, txType models.TransactionType) (bool, error)
}

// CommissionService distributes a completed purchase's commissions up the
// student's referral chain: read the active split, resolve the chain, then
// per eligible role credit the wallet and append a ledger entry.
type CommissionService struct {
	Settings  SettingsProvider
	Hierarchy HierarchyResolver
	Wallets   WalletStore
	Ledger    LedgerWriter
}

// NewCommissionService wires the engine to its MongoDB-backed collaborators.
func NewCommissionService(db *mongo.Database, rdb *redis.Client) *CommissionService {
	return &CommissionService{
		Settings:  NewSettingsService(db, rdb),
		Hierarchy: repositories.NewHierarchyRepository(db),
		Wallets:   repositories.NewRoleRepository(db),
		Ledger:    repositories.NewLedgerRepository(db),
	}
}

// DistributeCommissions runs one full distribution for a completed purchase.
// The referring field employee gates the run: without one (or with it
// missing/inactive) nothing is paid to anyone. Team leader, district
// coordinator and coordinator are then credited independently of each other,
// so a sparse chain still pays every role that is present and active.
//
// The run never fails the purchase that triggered it; any error is reported
// in the result and left to reconciliation.
func (s *CommissionService) DistributeCommissions(ctx context.Context, studentID primitive.ObjectID, amount float64, txType models.RelatedTransactionType, transactionID primitive.ObjectID) models.DistributionResult {
	result := models.DistributionResult{
		Success:       true,
		Distributions: []models.Distribution{},
	}

	settings, err := s.Settings.GetActiveSettings(ctx)
	if err != nil {
		log.Printf("Commission distribution for transaction %s failed: %v", transactionID.Hex(), err)
		return failedResult(err)
	}

	resolved, err := s.Hierarchy.ResolveHierarchy(ctx, studentID)
	if err == repositories.ErrStudentNotFound {
		return failedResult(err)
	}
	if err != nil {
		log.Printf("Commission distribution for transaction %s failed: %v", transactionID.Hex(), err)
		return failedResult(err)
	}

	feRef := resolved.Chain.RefFor(models.RoleFieldEmployee)
	if feRef == nil {
		// No referring field employee means the student entered the platform
		// outside the referral program. Nothing to pay, nothing wrong.
		return result
	}

	fieldEmployee := resolved.Accounts[models.RoleFieldEmployee]
	if fieldEmployee == nil {
		result.Skipped = append(result.Skipped, models.Distribution{
			User: *feRef, Role: models.RoleFieldEmployee, Reason: models.SkipReasonMissing,
		})
		return result
	}
	if !fieldEmployee.IsActive {
		result.Skipped = append(result.Skipped, models.Distribution{
			User: fieldEmployee.ID, Role: models.RoleFieldEmployee, Reason: models.SkipReasonInactive,
		})
		return result
	}

	related := models.RelatedTransaction{
		Type:          txType,
		TransactionID: transactionID,
		Student:       studentID,
		Amount:        amount,
	}

	for _, role := range models.CommissionRoles {
		ref := resolved.Chain.RefFor(role)
		if ref == nil {
			continue
		}

		account := resolved.Accounts[role]
		if account == nil {
			result.Skipped = append(result.Skipped, models.Distribution{
				User: *ref, Role: role, Reason: models.SkipReasonMissing,
			})
			continue
		}
		if !account.IsActive {
			result.Skipped = append(result.Skipped, models.Distribution{
				User: account.ID, Role: role, Reason: models.SkipReasonInactive,
			})
			continue
		}

		percentage := settings.PercentageFor(role)
		commission := utils.CalculateCommission(amount, percentage)
		if commission <= 0 {
			result.Skipped = append(result.Skipped, models.Distribution{
				User: account.ID, Role: role, Percentage: percentage, Reason: models.SkipReasonZeroPercent,
			})
			continue
		}

		distribution, err := s.creditRole(ctx, account, role, commission, percentage, related)
		if err != nil {
			log.Printf("Commission distribution for transaction %s failed at %s %s: %v",
				transactionID.Hex(), role, account.ID.Hex(), err)
			result.Success = false
			result.Message = fmt.Sprintf("distribution failed at %s: %v", role, err)
			return result
		}

		if distribution.Reason == models.SkipReasonNone {
			result.Distributions = append(result.Distributions, *distribution)
			result.TotalDistributed += distribution.Amount
		} else {
			result.Skipped = append(result.Skipped, *distribution)
		}
	}

	log.Printf("Distributed %.2f across %d roles for transaction %s (%s)",
		result.TotalDistributed, len(result.Distributions), transactionID.Hex(), txType)
	return result
}

// creditRole applies one role's payout: ledger dedup pre-check, atomic wallet
// credit, then the ledger append with the post-credit balance snapshot. If
// the append loses a race against a concurrent duplicate, the credit is
// reversed so the wallet never drifts from its ledger.
func (s *CommissionService) creditRole(ctx context.Context, account *models.RoleAccount, role models.Role, commission, percentage float64, related models.RelatedTransaction) (*models.Distribution, error) {
	exists, err := s.Ledger.HasEntry(ctx, related.TransactionID, account.ID, models.TransactionTypeCommission)
	if err != nil {
		return nil, err
	}
	if exists {
		return &models.Distribution{
			User: account.ID, Role: role, Amount: commission,
			Percentage: percentage, Reason: models.SkipReasonDuplicate,
		}, nil
	}

	updated, err := s.Wallets.CreditWallet(ctx, role, account.ID, commission)
	if err != nil {
		return nil, err
	}

	_, err = s.Ledger.RecordTransaction(ctx, repositories.RecordTransactionParams{
		User:               account.ID,
		UserModel:          role,
		Type:               models.TransactionTypeCommission,
		Amount:             commission,
		BalanceAfter:       updated.Wallet.Balance,
		RelatedTransaction: &related,
		CommissionDetails: &models.CommissionDetails{
			Percentage: percentage,
			BaseAmount: related.Amount,
		},
		Description: fmt.Sprintf("%.1f%% commission on %s %s", percentage, related.Type, related.TransactionID.Hex()),
		Status:      models.TransactionStatusCompleted,
	})
	if errors.Is(err, repositories.ErrDuplicateTransaction) {
		if reverseErr := s.Wallets.ReverseCredit(ctx, role, account.ID, commission); reverseErr != nil {
			return nil, fmt.Errorf("duplicate ledger entry and credit reversal failed: %w", reverseErr)
		}
		return &models.Distribution{
			User: account.ID, Role: role, Amount: commission,
			Percentage: percentage, Reason: models.SkipReasonDuplicate,
		}, nil
	}
	if err != nil {
		// The wallet moved but the ledger write failed. Reverse so the
		// wallet and its audit trail stay consistent.
		if reverseErr := s.Wallets.ReverseCredit(ctx, role, account.ID, commission); reverseErr != nil {
			return nil, fmt.Errorf("ledger write failed (%v) and credit reversal failed: %w", err, reverseErr)
		}
		return nil, err
	}

	return &models.Distribution{
		User: account.ID, Role: role, Amount: commission,
		Percentage: percentage, Reason: models.SkipReasonNone,
	}, nil
}

func failedResult(err error) models.DistributionResult {
	return models.DistributionResult{
		Success:       false,
		Message:       err.Error(),
		Distributions: []models.Distribution{},
	}
}
