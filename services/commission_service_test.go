package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/padhaihub/padhai_backend/models"
	"github.com/padhaihub/padhai_backend/repositories"
)

type fakeSettings struct {
	percentages models.CommissionPercentages
	err         error
}

func (f *fakeSettings) GetActiveSettings(ctx context.Context) (models.CommissionPercentages, error) {
	return f.percentages, f.err
}

type fakeHierarchy struct {
	resolved *repositories.ResolvedHierarchy
	err      error
}

func (f *fakeHierarchy) ResolveHierarchy(ctx context.Context, studentID primitive.ObjectID) (*repositories.ResolvedHierarchy, error) {
	return f.resolved, f.err
}

type walletKey struct {
	role models.Role
	id   primitive.ObjectID
}

type fakeWallets struct {
	wallets map[walletKey]*models.Wallet
	credits int
}

func newFakeWallets() *fakeWallets {
	return &fakeWallets{wallets: make(map[walletKey]*models.Wallet)}
}

func (f *fakeWallets) CreditWallet(ctx context.Context, role models.Role, id primitive.ObjectID, amount float64) (*models.RoleAccount, error) {
	key := walletKey{role, id}
	w, ok := f.wallets[key]
	if !ok {
		w = &models.Wallet{}
		f.wallets[key] = w
	}
	w.Balance += amount
	w.TotalEarned += amount
	f.credits++
	return &models.RoleAccount{ID: id, IsActive: true, Wallet: *w}, nil
}

func (f *fakeWallets) ReverseCredit(ctx context.Context, role models.Role, id primitive.ObjectID, amount float64) error {
	key := walletKey{role, id}
	if w, ok := f.wallets[key]; ok {
		w.Balance -= amount
		w.TotalEarned -= amount
	}
	return nil
}

type ledgerKey struct {
	txID primitive.ObjectID
	user primitive.ObjectID
	typ  models.TransactionType
}

type fakeLedger struct {
	entries  map[ledgerKey]repositories.RecordTransactionParams
	failRole models.Role
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{entries: make(map[ledgerKey]repositories.RecordTransactionParams)}
}

func (f *fakeLedger) RecordTransaction(ctx context.Context, params repositories.RecordTransactionParams) (*models.WalletTransaction, error) {
	if f.failRole != "" && params.UserModel == f.failRole {
		return nil, fmt.Errorf("insert failed for %s", params.UserModel)
	}
	key := ledgerKey{params.RelatedTransaction.TransactionID, params.User, params.Type}
	if _, ok := f.entries[key]; ok {
		return nil, repositories.ErrDuplicateTransaction
	}
	f.entries[key] = params
	return &models.WalletTransaction{User: params.User, Amount: params.Amount}, nil
}

func (f *fakeLedger) HasEntry(ctx context.Context, transactionID, user primitive.ObjectID, txType models.TransactionType) (bool, error) {
	_, ok := f.entries[ledgerKey{transactionID, user, txType}]
	return ok, nil
}

func oid() primitive.ObjectID { return primitive.NewObjectID() }

func fullChain() (*repositories.ResolvedHierarchy, map[models.Role]primitive.ObjectID) {
	ids := map[models.Role]primitive.ObjectID{
		models.RoleFieldEmployee:       oid(),
		models.RoleTeamLeader:          oid(),
		models.RoleDistrictCoordinator: oid(),
		models.RoleCoordinator:         oid(),
	}

	fe, tl, dc, co := ids[models.RoleFieldEmployee], ids[models.RoleTeamLeader], ids[models.RoleDistrictCoordinator], ids[models.RoleCoordinator]
	chain := &models.ReferralHierarchy{
		ReferringFieldEmployee: &fe,
		TeamLeader:             &tl,
		DistrictCoordinator:    &dc,
		Coordinator:            &co,
	}

	accounts := make(map[models.Role]*models.RoleAccount)
	for role, id := range ids {
		accounts[role] = &models.RoleAccount{ID: id, IsActive: true}
	}

	return &repositories.ResolvedHierarchy{
		Student:  &models.Student{ID: oid(), ReferralHierarchy: chain},
		Chain:    chain,
		Accounts: accounts,
	}, ids
}

func defaultService(resolved *repositories.ResolvedHierarchy) (*CommissionService, *fakeWallets, *fakeLedger) {
	wallets := newFakeWallets()
	ledger := newFakeLedger()
	svc := &CommissionService{
		Settings:  &fakeSettings{percentages: models.DefaultCommissionSettings},
		Hierarchy: &fakeHierarchy{resolved: resolved},
		Wallets:   wallets,
		Ledger:    ledger,
	}
	return svc, wallets, ledger
}

func TestDistributeCommissions_FullHierarchy(t *testing.T) {
	resolved, ids := fullChain()
	svc, wallets, ledger := defaultService(resolved)

	result := svc.DistributeCommissions(context.Background(), resolved.Student.ID, 1000,
		models.RelatedTransactionSubscription, oid())

	require.True(t, result.Success)
	require.Len(t, result.Distributions, 4)
	assert.Equal(t, 700.0, result.TotalDistributed)

	expected := map[models.Role]float64{
		models.RoleFieldEmployee:       100,
		models.RoleTeamLeader:          100,
		models.RoleDistrictCoordinator: 100,
		models.RoleCoordinator:         400,
	}
	for _, d := range result.Distributions {
		assert.Equal(t, expected[d.Role], d.Amount, "wrong amount for %s", d.Role)
		assert.Equal(t, models.SkipReasonNone, d.Reason)
	}

	// One ledger entry per credited role, balance snapshot matches the wallet
	assert.Len(t, ledger.entries, 4)
	for role, id := range ids {
		w := wallets.wallets[walletKey{role, id}]
		require.NotNil(t, w, "wallet missing for %s", role)
		assert.Equal(t, expected[role], w.Balance)
		assert.Equal(t, w.Balance, w.TotalEarned-w.TotalWithdrawn)
	}
}

func TestDistributeCommissions_FieldEmployeeOnly(t *testing.T) {
	feID := oid()
	chain := &models.ReferralHierarchy{ReferringFieldEmployee: &feID}
	resolved := &repositories.ResolvedHierarchy{
		Student: &models.Student{ID: oid(), ReferralHierarchy: chain},
		Chain:   chain,
		Accounts: map[models.Role]*models.RoleAccount{
			models.RoleFieldEmployee: {ID: feID, IsActive: true},
		},
	}
	svc, wallets, _ := defaultService(resolved)

	result := svc.DistributeCommissions(context.Background(), resolved.Student.ID, 1000,
		models.RelatedTransactionCoursePurchase, oid())

	require.True(t, result.Success)
	require.Len(t, result.Distributions, 1)
	assert.Equal(t, models.RoleFieldEmployee, result.Distributions[0].Role)
	assert.Equal(t, 100.0, result.Distributions[0].Amount)
	assert.Equal(t, 100.0, result.TotalDistributed)
	assert.Equal(t, 1, wallets.credits)
}

func TestDistributeCommissions_InactiveTeamLeaderSkipped(t *testing.T) {
	resolved, _ := fullChain()
	resolved.Accounts[models.RoleTeamLeader].IsActive = false
	svc, _, _ := defaultService(resolved)

	result := svc.DistributeCommissions(context.Background(), resolved.Student.ID, 1000,
		models.RelatedTransactionSubscription, oid())

	require.True(t, result.Success)
	assert.Len(t, result.Distributions, 3)
	assert.Equal(t, 600.0, result.TotalDistributed)

	require.Len(t, result.Skipped, 1)
	assert.Equal(t, models.RoleTeamLeader, result.Skipped[0].Role)
	assert.Equal(t, models.SkipReasonInactive, result.Skipped[0].Reason)
}

func TestDistributeCommissions_NoReferringFieldEmployee(t *testing.T) {
	resolved := &repositories.ResolvedHierarchy{
		Student:  &models.Student{ID: oid()},
		Chain:    nil,
		Accounts: map[models.Role]*models.RoleAccount{},
	}
	svc, wallets, ledger := defaultService(resolved)

	result := svc.DistributeCommissions(context.Background(), resolved.Student.ID, 1000,
		models.RelatedTransactionSubscription, oid())

	require.True(t, result.Success)
	assert.Empty(t, result.Distributions)
	assert.Zero(t, result.TotalDistributed)
	assert.Zero(t, wallets.credits)
	assert.Empty(t, ledger.entries)
}

func TestDistributeCommissions_InactiveFieldEmployeeBlocksAll(t *testing.T) {
	resolved, _ := fullChain()
	resolved.Accounts[models.RoleFieldEmployee].IsActive = false
	svc, wallets, _ := defaultService(resolved)

	result := svc.DistributeCommissions(context.Background(), resolved.Student.ID, 1000,
		models.RelatedTransactionSubscription, oid())

	require.True(t, result.Success)
	assert.Empty(t, result.Distributions)
	assert.Zero(t, wallets.credits)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, models.SkipReasonInactive, result.Skipped[0].Reason)
}

func TestDistributeCommissions_ZeroPercentageSkipsRole(t *testing.T) {
	resolved, _ := fullChain()
	wallets := newFakeWallets()
	ledger := newFakeLedger()
	svc := &CommissionService{
		Settings: &fakeSettings{percentages: models.CommissionPercentages{
			Coordinator:         40,
			DistrictCoordinator: 10,
			TeamLeader:          0,
			FieldEmployee:       10,
		}},
		Hierarchy: &fakeHierarchy{resolved: resolved},
		Wallets:   wallets,
		Ledger:    ledger,
	}

	result := svc.DistributeCommissions(context.Background(), resolved.Student.ID, 1000,
		models.RelatedTransactionSubscription, oid())

	require.True(t, result.Success)
	assert.Len(t, result.Distributions, 3)
	assert.Equal(t, 600.0, result.TotalDistributed)
	assert.Len(t, ledger.entries, 3)

	require.Len(t, result.Skipped, 1)
	assert.Equal(t, models.RoleTeamLeader, result.Skipped[0].Role)
	assert.Equal(t, models.SkipReasonZeroPercent, result.Skipped[0].Reason)
}

func TestDistributeCommissions_MissingAccountSkipped(t *testing.T) {
	resolved, _ := fullChain()
	delete(resolved.Accounts, models.RoleDistrictCoordinator)
	svc, _, _ := defaultService(resolved)

	result := svc.DistributeCommissions(context.Background(), resolved.Student.ID, 1000,
		models.RelatedTransactionSubscription, oid())

	require.True(t, result.Success)
	assert.Len(t, result.Distributions, 3)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, models.SkipReasonMissing, result.Skipped[0].Reason)
}

func TestDistributeCommissions_RepeatCallDoesNotDoubleCredit(t *testing.T) {
	resolved, ids := fullChain()
	svc, wallets, _ := defaultService(resolved)
	txID := oid()

	first := svc.DistributeCommissions(context.Background(), resolved.Student.ID, 1000,
		models.RelatedTransactionSubscription, txID)
	require.True(t, first.Success)
	require.Len(t, first.Distributions, 4)

	second := svc.DistributeCommissions(context.Background(), resolved.Student.ID, 1000,
		models.RelatedTransactionSubscription, txID)
	require.True(t, second.Success)
	assert.Empty(t, second.Distributions)
	assert.Zero(t, second.TotalDistributed)
	assert.Len(t, second.Skipped, 4)
	for _, d := range second.Skipped {
		assert.Equal(t, models.SkipReasonDuplicate, d.Reason)
	}

	// Wallets hold exactly one credit each
	feWallet := wallets.wallets[walletKey{models.RoleFieldEmployee, ids[models.RoleFieldEmployee]}]
	assert.Equal(t, 100.0, feWallet.Balance)
	coWallet := wallets.wallets[walletKey{models.RoleCoordinator, ids[models.RoleCoordinator]}]
	assert.Equal(t, 400.0, coWallet.Balance)
}

func TestDistributeCommissions_LedgerFailureReversesCredit(t *testing.T) {
	resolved, ids := fullChain()
	wallets := newFakeWallets()
	ledger := newFakeLedger()
	ledger.failRole = models.RoleDistrictCoordinator
	svc := &CommissionService{
		Settings:  &fakeSettings{percentages: models.DefaultCommissionSettings},
		Hierarchy: &fakeHierarchy{resolved: resolved},
		Wallets:   wallets,
		Ledger:    ledger,
	}

	result := svc.DistributeCommissions(context.Background(), resolved.Student.ID, 1000,
		models.RelatedTransactionSubscription, oid())

	require.False(t, result.Success)
	// Field employee and team leader were paid before the failure and stay paid
	assert.Len(t, result.Distributions, 2)
	assert.Equal(t, 200.0, result.TotalDistributed)

	// The failed role's credit was reversed, wallet and ledger agree
	dcWallet := wallets.wallets[walletKey{models.RoleDistrictCoordinator, ids[models.RoleDistrictCoordinator]}]
	require.NotNil(t, dcWallet)
	assert.Zero(t, dcWallet.Balance)
	assert.Zero(t, dcWallet.TotalEarned)
}

func TestDistributeCommissions_StudentNotFound(t *testing.T) {
	svc := &CommissionService{
		Settings:  &fakeSettings{percentages: models.DefaultCommissionSettings},
		Hierarchy: &fakeHierarchy{err: repositories.ErrStudentNotFound},
		Wallets:   newFakeWallets(),
		Ledger:    newFakeLedger(),
	}

	result := svc.DistributeCommissions(context.Background(), oid(), 1000,
		models.RelatedTransactionSubscription, oid())

	assert.False(t, result.Success)
	assert.Empty(t, result.Distributions)
}

func TestDistributeCommissions_SettingsError(t *testing.T) {
	svc := &CommissionService{
		Settings:  &fakeSettings{err: errors.New("settings store unavailable")},
		Hierarchy: &fakeHierarchy{},
		Wallets:   newFakeWallets(),
		Ledger:    newFakeLedger(),
	}

	result := svc.DistributeCommissions(context.Background(), oid(), 1000,
		models.RelatedTransactionSubscription, oid())

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "settings store unavailable")
}

func TestDistributeCommissions_CommissionDetailsRecorded(t *testing.T) {
	resolved, ids := fullChain()
	svc, _, ledger := defaultService(resolved)
	txID := oid()

	result := svc.DistributeCommissions(context.Background(), resolved.Student.ID, 2499.50,
		models.RelatedTransactionCoursePurchase, txID)
	require.True(t, result.Success)

	coID := ids[models.RoleCoordinator]
	entry, ok := ledger.entries[ledgerKey{txID, coID, models.TransactionTypeCommission}]
	require.True(t, ok)
	assert.Equal(t, 40.0, entry.CommissionDetails.Percentage)
	assert.Equal(t, 2499.50, entry.CommissionDetails.BaseAmount)
	assert.Equal(t, 999.80, entry.Amount)
	assert.Equal(t, models.RelatedTransactionCoursePurchase, entry.RelatedTransaction.Type)
	assert.Equal(t, resolved.Student.ID, entry.RelatedTransaction.Student)
}
