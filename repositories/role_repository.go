// repositories/role_repository.go
package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/padhaihub/padhai_backend/models"
)

// roleCollections is the closed dispatch table from commission role to its
// collection. Anything not listed here cannot hold a wallet.
var roleCollections = map[models.Role]string{
	models.RoleCoordinator:         "coordinators",
	models.RoleDistrictCoordinator: "districtCoordinators",
	models.RoleTeamLeader:          "teamLeaders",
	models.RoleFieldEmployee:       "fieldEmployees",
}

// referralPrefixes maps a referral code prefix to the role that issued it.
var referralPrefixes = map[string]models.Role{
	"CO": models.RoleCoordinator,
	"DC": models.RoleDistrictCoordinator,
	"TL": models.RoleTeamLeader,
	"FE": models.RoleFieldEmployee,
}

var (
	ErrUnknownRole         = errors.New("unknown commission role")
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
)

type RoleRepository struct {
	DB *mongo.Database
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{DB: db}
}

// CollectionForRole resolves a role to its collection name.
func CollectionForRole(role models.Role) (string, error) {
	coll, ok := roleCollections[role]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownRole, role)
	}
	return coll, nil
}

// RoleForReferralCode derives the issuing role from a referral code prefix.
func RoleForReferralCode(code string) (models.Role, error) {
	parts := strings.SplitN(code, "-", 2)
	if len(parts) != 2 {
		return "", fmt.Errorf("malformed referral code: %s", code)
	}
	role, ok := referralPrefixes[parts[0]]
	if !ok {
		return "", fmt.Errorf("%w: referral prefix %s", ErrUnknownRole, parts[0])
	}
	return role, nil
}

// FindByID loads one commission-eligible account.
func (r *RoleRepository) FindByID(ctx context.Context, role models.Role, id primitive.ObjectID) (*models.RoleAccount, error) {
	collName, err := CollectionForRole(role)
	if err != nil {
		return nil, err
	}

	var account models.RoleAccount
	err = r.DB.Collection(collName).FindOne(ctx, bson.M{"_id": id}).Decode(&account)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// FindByReferralCode looks up the account that owns a referral code.
func (r *RoleRepository) FindByReferralCode(ctx context.Context, code string) (models.Role, *models.RoleAccount, error) {
	role, err := RoleForReferralCode(code)
	if err != nil {
		return "", nil, err
	}

	collName, err := CollectionForRole(role)
	if err != nil {
		return "", nil, err
	}

	var account models.RoleAccount
	err = r.DB.Collection(collName).FindOne(ctx, bson.M{"referralCode": code}).Decode(&account)
	if err != nil {
		return "", nil, err
	}
	return role, &account, nil
}

// CreditWallet atomically adds a commission to an account's wallet. The $inc
// both credits the spendable balance and grows totalEarned, so the invariant
// balance == totalEarned - totalWithdrawn holds through concurrent credits.
// Returns the post-update account so callers can snapshot balanceAfter.
func (r *RoleRepository) CreditWallet(ctx context.Context, role models.Role, id primitive.ObjectID, amount float64) (*models.RoleAccount, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("credit amount must be positive, got %.2f", amount)
	}

	collName, err := CollectionForRole(role)
	if err != nil {
		return nil, err
	}

	update := bson.M{
		"$inc": bson.M{
			"wallet.balance":     amount,
			"wallet.totalEarned": amount,
		},
		"$set": bson.M{"updatedAt": time.Now()},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var account models.RoleAccount
	err = r.DB.Collection(collName).FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&account)
	if err != nil {
		return nil, fmt.Errorf("failed to credit %s wallet: %w", role, err)
	}
	return &account, nil
}

// ReverseCredit undoes a credit that could not be recorded in the ledger.
func (r *RoleRepository) ReverseCredit(ctx context.Context, role models.Role, id primitive.ObjectID, amount float64) error {
	collName, err := CollectionForRole(role)
	if err != nil {
		return err
	}

	update := bson.M{
		"$inc": bson.M{
			"wallet.balance":     -amount,
			"wallet.totalEarned": -amount,
		},
		"$set": bson.M{"updatedAt": time.Now()},
	}

	_, err = r.DB.Collection(collName).UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to reverse %s wallet credit: %w", role, err)
	}
	return nil
}

// ApplyWithdrawal debits the spendable balance and grows totalWithdrawn.
// The filter guards against overdraft: no matching document means the balance
// was below the requested amount at the time of the update.
func (r *RoleRepository) ApplyWithdrawal(ctx context.Context, role models.Role, id primitive.ObjectID, amount float64) (*models.RoleAccount, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("withdrawal amount must be positive, got %.2f", amount)
	}

	collName, err := CollectionForRole(role)
	if err != nil {
		return nil, err
	}

	filter := bson.M{
		"_id":            id,
		"wallet.balance": bson.M{"$gte": amount},
	}
	update := bson.M{
		"$inc": bson.M{
			"wallet.balance":        -amount,
			"wallet.totalWithdrawn": amount,
		},
		"$set": bson.M{"updatedAt": time.Now()},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var account models.RoleAccount
	err = r.DB.Collection(collName).FindOneAndUpdate(ctx, filter, update, opts).Decode(&account)
	if err == mongo.ErrNoDocuments {
		return nil, ErrInsufficientBalance
	}
	if err != nil {
		return nil, fmt.Errorf("failed to apply withdrawal to %s wallet: %w", role, err)
	}
	return &account, nil
}
