package services

import (
	"errors"
	"log"

	"traffic-manager-system/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type OfferService struct {
	DB *gorm.DB
}

func NewOfferService(db *gorm.DB) *OfferService {
	return &OfferService{DB: db}
}

type offerRequest struct {
	Name            string `json:"name"`
	LibraryLink     string `json:"library_link"`
	LandingPageLink string `json:"landing_page_link"`
	CheckoutLink    string `json:"checkout_link"`
	Niche           string `json:"niche"`
}

func (s *OfferService) CreateOffer(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var req offerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if req.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "name is required"})
	}

	offer := models.Offer{
		ID:              uuid.NewString(),
		UserID:          userID,
		Name:            req.Name,
		Slug:            slug.Make(req.Name),
		LibraryLink:     req.LibraryLink,
		LandingPageLink: req.LandingPageLink,
		CheckoutLink:    req.CheckoutLink,
		Niche:           req.Niche,
	}
	if err := s.DB.Create(&offer).Error; err != nil {
		log.Printf("ERROR creating offer for user %s: %v", userID, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to create offer"})
	}
	return c.Status(201).JSON(offer)
}

func (s *OfferService) GetAllOffers(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	offers := []models.Offer{}
	err := s.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&offers).Error
	if err != nil {
		log.Printf("ERROR fetching offers for user %s: %v", userID, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch offers"})
	}
	return c.JSON(offers)
}

func (s *OfferService) UpdateOffer(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	id := c.Params("id")

	var req offerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}

	var offer models.Offer
	if err := s.DB.Where("id = ? AND user_id = ?", id, userID).First(&offer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "offer not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}

	if req.Name != "" && req.Name != offer.Name {
		offer.Name = req.Name
		offer.Slug = slug.Make(req.Name)
	}
	offer.LibraryLink = req.LibraryLink
	offer.LandingPageLink = req.LandingPageLink
	offer.CheckoutLink = req.CheckoutLink
	offer.Niche = req.Niche

	if err := s.DB.Save(&offer).Error; err != nil {
		log.Printf("ERROR updating offer %s: %v", id, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to update offer"})
	}
	return c.JSON(offer)
}

// DeleteOffer removes the offer only. Tests referencing it keep their
// offer_id: the reference is weak and a dangling one is tolerated.
func (s *OfferService) DeleteOffer(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	id := c.Params("id")

	result := s.DB.Where("user_id = ?", userID).Delete(&models.Offer{}, "id = ?", id)
	if result.Error != nil {
		log.Printf("ERROR deleting offer %s: %v", id, result.Error)
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}
	if result.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "offer not found"})
	}
	return c.JSON(fiber.Map{"message": "offer deleted"})
}
