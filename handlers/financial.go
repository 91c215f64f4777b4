// handlers/financial.go
package handlers

import (
	"traffic-manager-system/middleware"
	"traffic-manager-system/models"
	"traffic-manager-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupFinancialRoutes(app *fiber.App, financialService *services.FinancialService) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Get("/financial", financialService.GetFinancial)
	secured.Get("/financial/transactions", financialService.GetTransactions)

	canEdit := middleware.RequirePermission(financialService.DB, models.ResourceFinancial)
	secured.Put("/financial", canEdit, financialService.UpdateFinancial)
}
