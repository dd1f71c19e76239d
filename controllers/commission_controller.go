// controllers/commission_controller.go
package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/padhaihub/padhai_backend/middleware"
	"github.com/padhaihub/padhai_backend/models"
	"github.com/padhaihub/padhai_backend/repositories"
	"github.com/padhaihub/padhai_backend/services"
)

// CommissionController exposes the admin surface for commission settings
// and reporting
type CommissionController struct {
	DB       *mongo.Database
	Settings *services.SettingsService
	Ledger   *repositories.LedgerRepository
}

// NewCommissionController creates a new commission controller
func NewCommissionController(db *mongo.Database, settings *services.SettingsService) *CommissionController {
	return &CommissionController{
		DB:       db,
		Settings: settings,
		Ledger:   repositories.NewLedgerRepository(db),
	}
}

// GetCommissionSettings returns the active percentage split
func (cc *CommissionController) GetCommissionSettings(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	percentages, err := cc.Settings.GetActiveSettings(ctx)
	if err != nil {
		log.Printf("Failed to load commission settings: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve commission settings",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Commission settings retrieved",
		Data:    percentages,
	})
}

// UpdateCommissionSettings replaces the active settings record. Omitted
// fields keep their previous values.
func (cc *CommissionController) UpdateCommissionSettings(c echo.Context) error {
	adminID, err := middleware.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid authentication token",
		})
	}

	var req models.UpdateCommissionSettingsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	settings, err := cc.Settings.ReplaceSettings(ctx, req, adminID)
	if errors.Is(err, services.ErrInvalidPercentage) {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Each commission percentage must be between 0 and 100",
		})
	}
	if err != nil {
		log.Printf("Failed to replace commission settings: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update commission settings",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Commission settings updated",
		Data:    settings,
	})
}

// GetCommissionSummary aggregates paid commissions per role
func (cc *CommissionController) GetCommissionSummary(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rows, err := cc.Ledger.SummarizeCommissions(ctx)
	if err != nil {
		log.Printf("Failed to summarize commissions: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve commission summary",
		})
	}

	var total float64
	for _, row := range rows {
		total += row.TotalAmount
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Commission summary retrieved",
		Data: map[string]interface{}{
			"byRole": rows,
			"total":  total,
		},
	})
}
