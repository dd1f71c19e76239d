package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/padhaihub/padhai_backend/controllers"
	"github.com/padhaihub/padhai_backend/middleware"
	"github.com/padhaihub/padhai_backend/models"
)

// RegisterWalletRoutes sets up wallet, ledger and withdrawal routes
func RegisterWalletRoutes(e *echo.Echo, walletController *controllers.WalletController) {
	commissionRoles := []string{
		string(models.RoleCoordinator),
		string(models.RoleDistrictCoordinator),
		string(models.RoleTeamLeader),
		string(models.RoleFieldEmployee),
	}

	wallet := e.Group("/api/wallet")
	wallet.Use(middleware.JWTMiddleware())
	wallet.Use(middleware.RequireUserType(commissionRoles...))

	wallet.GET("", walletController.GetWallet)
	wallet.GET("/transactions", walletController.GetWalletTransactions)
	wallet.POST("/withdraw", walletController.RequestWithdrawal)

	admin := e.Group("/api/admin/withdrawals")
	admin.Use(middleware.JWTMiddleware())
	admin.Use(middleware.RequireAdmin())

	admin.GET("/pending", walletController.GetPendingWithdrawals)
	admin.POST("/:id/process", walletController.ProcessWithdrawal)
}
