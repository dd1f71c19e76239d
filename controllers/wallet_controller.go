// controllers/wallet_controller.go
package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/padhaihub/padhai_backend/middleware"
	"github.com/padhaihub/padhai_backend/models"
	"github.com/padhaihub/padhai_backend/repositories"
	"github.com/padhaihub/padhai_backend/utils"
)

// WalletController serves wallet balances, the ledger, and withdrawals
type WalletController struct {
	DB     *mongo.Database
	Roles  *repositories.RoleRepository
	Ledger *repositories.LedgerRepository
}

// NewWalletController creates a new wallet controller
func NewWalletController(db *mongo.Database) *WalletController {
	return &WalletController{
		DB:     db,
		Roles:  repositories.NewRoleRepository(db),
		Ledger: repositories.NewLedgerRepository(db),
	}
}

func (wc *WalletController) walletOwner(c echo.Context) (models.Role, primitive.ObjectID, error) {
	role := models.Role(middleware.ExtractUserType(c))
	id, err := middleware.GetUserIDFromToken(c)
	if err != nil {
		return "", primitive.ObjectID{}, err
	}
	if _, err := repositories.CollectionForRole(role); err != nil {
		return "", primitive.ObjectID{}, err
	}
	return role, id, nil
}

// GetWallet returns the authenticated account's wallet state
func (wc *WalletController) GetWallet(c echo.Context) error {
	role, id, err := wc.walletOwner(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "Only commission-eligible accounts have a wallet",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	account, err := wc.Roles.FindByID(ctx, role, id)
	if err != nil {
		log.Printf("Failed to load %s %s: %v", role, id.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve wallet",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Wallet retrieved",
		Data:    account.Wallet,
	})
}

// GetWalletTransactions returns a page of the account's ledger, newest first
func (wc *WalletController) GetWalletTransactions(c echo.Context) error {
	_, id, err := wc.walletOwner(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "Only commission-eligible accounts have a wallet",
		})
	}

	page, _ := strconv.ParseInt(c.QueryParam("page"), 10, 64)
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	transactions, total, err := wc.Ledger.ListByUser(ctx, id, page, limit)
	if err != nil {
		log.Printf("Failed to list wallet transactions for %s: %v", id.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve wallet transactions",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Wallet transactions retrieved",
		Data: map[string]interface{}{
			"transactions": transactions,
			"total":        total,
		},
	})
}

// RequestWithdrawal opens a pending withdrawal for admin review. The wallet
// is only debited on approval.
func (wc *WalletController) RequestWithdrawal(c echo.Context) error {
	role, id, err := wc.walletOwner(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "Only commission-eligible accounts have a wallet",
		})
	}

	var req models.WithdrawalRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "A positive withdrawal amount is required",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	account, err := wc.Roles.FindByID(ctx, role, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load wallet",
		})
	}
	if account.Wallet.Balance < req.Amount {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Withdrawal amount exceeds wallet balance",
		})
	}

	withdrawal := models.Withdrawal{
		ID:        primitive.NewObjectID(),
		UserID:    id,
		UserModel: role,
		Amount:    req.Amount,
		Status:    "pending",
		UserNote:  req.UserNote,
		CreatedAt: time.Now(),
	}

	_, err = wc.DB.Collection("withdrawals").InsertOne(ctx, withdrawal)
	if err != nil {
		log.Printf("Failed to insert withdrawal for %s %s: %v", role, id.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create withdrawal request",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Withdrawal request submitted",
		Data:    withdrawal,
	})
}

// GetPendingWithdrawals lists withdrawal requests awaiting admin review
func (wc *WalletController) GetPendingWithdrawals(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := wc.DB.Collection("withdrawals").Find(ctx, bson.M{"status": "pending"})
	if err != nil {
		log.Printf("Failed to list pending withdrawals: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve withdrawal requests",
		})
	}
	defer cursor.Close(ctx)

	var withdrawals []models.Withdrawal = []models.Withdrawal{}
	if err = cursor.All(ctx, &withdrawals); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode withdrawal requests",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Pending withdrawals retrieved",
		Data:    withdrawals,
	})
}

// ProcessWithdrawal approves or rejects a pending withdrawal. Approval
// debits the wallet, writes a WITHDRAWAL ledger entry with the post-debit
// balance, and emails the wallet owner.
func (wc *WalletController) ProcessWithdrawal(c echo.Context) error {
	adminID, err := middleware.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid authentication token",
		})
	}

	withdrawalID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid withdrawal ID",
		})
	}

	var req struct {
		Approve bool   `json:"approve"`
		Note    string `json:"note,omitempty"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var withdrawal models.Withdrawal
	err = wc.DB.Collection("withdrawals").FindOne(ctx, bson.M{"_id": withdrawalID, "status": "pending"}).Decode(&withdrawal)
	if err == mongo.ErrNoDocuments {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Pending withdrawal not found",
		})
	}
	if err != nil {
		log.Printf("Failed to load withdrawal %s: %v", withdrawalID.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load withdrawal",
		})
	}

	now := time.Now()
	if !req.Approve {
		update := bson.M{"$set": bson.M{
			"status":          "rejected",
			"processedAt":     now,
			"adminId":         adminID,
			"rejectionReason": req.Note,
		}}
		_, err = wc.DB.Collection("withdrawals").UpdateOne(ctx, bson.M{"_id": withdrawalID}, update)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.Response{
				Status:  http.StatusInternalServerError,
				Message: "Failed to reject withdrawal",
			})
		}
		wc.notifyOwner(ctx, &withdrawal, false, req.Note)
		return c.JSON(http.StatusOK, models.Response{
			Status:  http.StatusOK,
			Message: "Withdrawal rejected",
		})
	}

	account, err := wc.Roles.ApplyWithdrawal(ctx, withdrawal.UserModel, withdrawal.UserID, withdrawal.Amount)
	if errors.Is(err, repositories.ErrInsufficientBalance) {
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: "Wallet balance no longer covers this withdrawal",
		})
	}
	if err != nil {
		log.Printf("Failed to debit wallet for withdrawal %s: %v", withdrawalID.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to process withdrawal",
		})
	}

	_, err = wc.Ledger.RecordTransaction(ctx, repositories.RecordTransactionParams{
		User:         withdrawal.UserID,
		UserModel:    withdrawal.UserModel,
		Type:         models.TransactionTypeWithdrawal,
		Amount:       -withdrawal.Amount,
		BalanceAfter: account.Wallet.Balance,
		Description:  "Withdrawal approved by admin",
		Status:       models.TransactionStatusCompleted,
	})
	if err != nil {
		log.Printf("Failed to record withdrawal ledger entry for %s: %v", withdrawalID.Hex(), err)
	}

	update := bson.M{"$set": bson.M{
		"status":      "approved",
		"processedAt": now,
		"adminId":     adminID,
		"adminNote":   req.Note,
	}}
	_, err = wc.DB.Collection("withdrawals").UpdateOne(ctx, bson.M{"_id": withdrawalID}, update)
	if err != nil {
		log.Printf("Failed to mark withdrawal %s approved: %v", withdrawalID.Hex(), err)
	}

	wc.notifyOwner(ctx, &withdrawal, true, req.Note)

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Withdrawal approved",
		Data: map[string]interface{}{
			"balanceAfter": account.Wallet.Balance,
		},
	})
}

func (wc *WalletController) notifyOwner(ctx context.Context, withdrawal *models.Withdrawal, approved bool, note string) {
	account, err := wc.Roles.FindByID(ctx, withdrawal.UserModel, withdrawal.UserID)
	if err != nil {
		log.Printf("Failed to load wallet owner for withdrawal email: %v", err)
		return
	}
	if err := utils.SendWithdrawalProcessedEmail(account.Email, account.FullName, withdrawal.Amount, approved, note); err != nil {
		log.Printf("Failed to send withdrawal email to %s: %v", account.Email, err)
	}
}
