// handlers/offers.go
package handlers

import (
	"traffic-manager-system/middleware"
	"traffic-manager-system/models"
	"traffic-manager-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupOfferRoutes(app *fiber.App, offerService *services.OfferService) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Get("/offers", offerService.GetAllOffers)

	canEdit := middleware.RequirePermission(offerService.DB, models.ResourceOffers)
	secured.Post("/offers", canEdit, offerService.CreateOffer)
	secured.Put("/offers/:id", canEdit, offerService.UpdateOffer)
	secured.Delete("/offers/:id", canEdit, offerService.DeleteOffer)
}
