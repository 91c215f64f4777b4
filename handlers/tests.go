// handlers/tests.go
package handlers

import (
	"traffic-manager-system/middleware"
	"traffic-manager-system/models"
	"traffic-manager-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupTestRoutes(app *fiber.App, testService *services.TestService) {
	// 🔐 All test routes require user context from the Gateway
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Get("/tests", testService.GetAllTests)
	secured.Get("/tests/:id", testService.GetTestByID)
	secured.Get("/dashboard", testService.GetDashboard)

	// Mutations additionally require the edit_tests capability
	canEdit := middleware.RequirePermission(testService.DB, models.ResourceTests)
	secured.Post("/tests", canEdit, testService.CreateTest)
	secured.Put("/tests/:id", canEdit, testService.UpdateTest)
	secured.Patch("/tests/:id", canEdit, testService.UpdateTest)
	secured.Delete("/tests/:id", canEdit, testService.DeleteTest)
	secured.Post("/tests/:id/recompute", canEdit, testService.RecomputeTest)
	secured.Post("/tests/:id/attachments", canEdit, testService.UploadTestAttachment)
}
