package services

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"traffic-manager-system/models"
	"traffic-manager-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TestService struct {
	DB *gorm.DB
}

func NewTestService(db *gorm.DB) *TestService {
	return &TestService{DB: db}
}

type testRequest struct {
	StartDate      string  `json:"start_date"`
	ProductName    string  `json:"product_name"`
	Niche          string  `json:"niche"`
	OfferSource    string  `json:"offer_source"`
	LandingPageURL string  `json:"landing_page_url"`
	InvestedAmount float64 `json:"invested_amount"`
	Clicks         int     `json:"clicks"`
	ReturnValue    float64 `json:"return_value"`
	Impressions    int     `json:"impressions"`
	Conversions    int     `json:"conversions"`
	Status         string  `json:"status"`
	Observations   string  `json:"observations"`
	OfferID        *string `json:"offer_id"`
}

// CreateTest records a new experiment. The derived ratios are computed here,
// once, and stored; the ledger gets one investment entry (always) plus one
// revenue entry when the test already returned money; and the financial
// snapshot is re-derived — all inside one transaction so a partial write
// cannot leave the ledger and the snapshot disagreeing.
func (s *TestService) CreateTest(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var req testRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON", "details": err.Error()})
	}
	if req.ProductName == "" {
		return c.Status(400).JSON(fiber.Map{"error": "product_name is required"})
	}
	if err := ValidateTestAmounts(req.InvestedAmount, req.ReturnValue, req.Clicks); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	status := req.Status
	if status == "" {
		status = models.TestStatusPause
	}
	switch status {
	case models.TestStatusScale, models.TestStatusPause, models.TestStatusStop:
	default:
		return c.Status(400).JSON(fiber.Map{"error": "status must be one of Escalar, Pausar, Encerrar"})
	}

	// Weak FK: the offer must exist at create time, but later offer deletion
	// leaves the reference dangling on purpose.
	if req.OfferID != nil && *req.OfferID != "" {
		if err := s.DB.First(&models.Offer{}, "id = ? AND user_id = ?", *req.OfferID, userID).Error; err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "offer_id not found"})
		}
	} else {
		req.OfferID = nil
	}

	test := models.Test{
		ID:             uuid.NewString(),
		UserID:         userID,
		OfferID:        req.OfferID,
		StartDate:      req.StartDate,
		ProductName:    req.ProductName,
		Niche:          req.Niche,
		OfferSource:    req.OfferSource,
		LandingPageURL: req.LandingPageURL,
		InvestedAmount: req.InvestedAmount,
		Clicks:         req.Clicks,
		ReturnValue:    req.ReturnValue,
		Impressions:    req.Impressions,
		Conversions:    req.Conversions,
		Status:         status,
		Observations:   req.Observations,
	}
	test.ComputeDerived()

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&test).Error; err != nil {
			return err
		}
		txns := TransactionsForTest(test, time.Now())
		if err := tx.Create(&txns).Error; err != nil {
			return err
		}
		_, err := ReconcileFinancial(tx, userID)
		return err
	})
	if err != nil {
		log.Printf("ERROR creating test for user %s: %v", userID, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to create test"})
	}

	return c.Status(201).JSON(test)
}

// GetAllTests lists the caller's tests, newest first.
func (s *TestService) GetAllTests(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	tests := []models.Test{}
	err := s.DB.Where("user_id = ?", userID).
		Preload("Attachments", func(db *gorm.DB) *gorm.DB {
			return db.Order("\"sort_order\" ASC")
		}).
		Order("created_at DESC").
		Find(&tests).Error
	if err != nil {
		log.Printf("ERROR fetching tests for user %s: %v", userID, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch tests"})
	}
	return c.JSON(tests)
}

func (s *TestService) GetTestByID(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	id := c.Params("id")

	var test models.Test
	err := s.DB.Where("id = ? AND user_id = ?", id, userID).
		Preload("Attachments", func(db *gorm.DB) *gorm.DB {
			return db.Order("\"sort_order\" ASC")
		}).
		First(&test).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "test not found"})
		}
		log.Printf("ERROR fetching test %s: %v", id, err)
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}
	return c.JSON(test)
}

// UpdateTest overwrites the stored fields with whatever the caller sent,
// derived ratios included — they are stored verbatim and never silently
// recomputed here. Callers that changed the raw figures follow up with
// RecomputeTest. The financial snapshot is re-derived either way.
func (s *TestService) UpdateTest(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	id := c.Params("id")

	type updateRequest struct {
		testRequest
		CPA  *float64 `json:"cpa"`
		ROI  *float64 `json:"roi"`
		ROAS *float64 `json:"roas"`
	}
	var req updateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if err := ValidateTestAmounts(req.InvestedAmount, req.ReturnValue, req.Clicks); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	var test models.Test
	if err := s.DB.Where("id = ? AND user_id = ?", id, userID).First(&test).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "test not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}

	test.StartDate = req.StartDate
	test.ProductName = req.ProductName
	test.Niche = req.Niche
	test.OfferSource = req.OfferSource
	test.LandingPageURL = req.LandingPageURL
	test.InvestedAmount = req.InvestedAmount
	test.Clicks = req.Clicks
	test.ReturnValue = req.ReturnValue
	test.Impressions = req.Impressions
	test.Conversions = req.Conversions
	test.Observations = req.Observations
	if req.Status != "" {
		test.Status = req.Status
	}
	test.OfferID = req.OfferID
	if req.CPA != nil {
		test.CPA = *req.CPA
	}
	if req.ROI != nil {
		test.ROI = *req.ROI
	}
	if req.ROAS != nil {
		test.ROAS = *req.ROAS
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&test).Error; err != nil {
			return err
		}
		_, err := ReconcileFinancial(tx, userID)
		return err
	})
	if err != nil {
		log.Printf("ERROR updating test %s: %v", id, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to update test"})
	}
	return c.JSON(test)
}

// RecomputeTest re-derives the stored ratios from the current raw figures.
// This is the explicit path for fixing staleness after a manual edit.
func (s *TestService) RecomputeTest(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	id := c.Params("id")

	var test models.Test
	if err := s.DB.Where("id = ? AND user_id = ?", id, userID).First(&test).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "test not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}

	test.ComputeDerived()
	if err := s.DB.Save(&test).Error; err != nil {
		log.Printf("ERROR recomputing test %s: %v", id, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to recompute test"})
	}
	return c.JSON(test)
}

// DeleteTest removes a test together with its ledger entries and
// attachments. Children go first inside the transaction so no orphaned rows
// survive a failure, then the snapshot is re-derived without the deleted
// amounts.
func (s *TestService) DeleteTest(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	id := c.Params("id")

	attachments := []models.TestAttachment{}
	if err := s.DB.Where("test_id = ?", id).Find(&attachments).Error; err != nil {
		log.Printf("ERROR loading attachments for test %s: %v", id, err)
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("test_id = ?", id).Delete(&models.Transaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("test_id = ?", id).Delete(&models.TestAttachment{}).Error; err != nil {
			return err
		}
		result := tx.Where("user_id = ?", userID).Delete(&models.Test{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fiber.NewError(404, "test not found")
		}
		_, err := ReconcileFinancial(tx, userID)
		return err
	})
	if err != nil {
		var ferr *fiber.Error
		if errors.As(err, &ferr) {
			return c.Status(ferr.Code).JSON(fiber.Map{"error": ferr.Message})
		}
		log.Printf("ERROR deleting test %s: %v", id, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to delete test"})
	}

	// Best effort: the DB rows are gone, orphaned objects only waste storage.
	for _, a := range attachments {
		if a.ObjectKey == "" {
			continue
		}
		if err := utils.DeleteFileFromR2(a.ObjectKey); err != nil {
			log.Printf("WARN failed to delete R2 object %s: %v", a.ObjectKey, err)
		}
	}
	return c.JSON(fiber.Map{"message": "test deleted"})
}

// UploadTestAttachment stores a creative/screenshot in R2 and links it to
// the test. Up to 5 files per request under attachments[0..4].
func (s *TestService) UploadTestAttachment(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	id := c.Params("id")

	var test models.Test
	if err := s.DB.Where("id = ? AND user_id = ?", id, userID).First(&test).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "test not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}

	var attachments []models.TestAttachment
	for i := 0; i < 5; i++ {
		key := fmt.Sprintf("attachments[%d]", i)
		file, err := c.FormFile(key)
		if err != nil || file.Size == 0 {
			break
		}
		ext := filepath.Ext(file.Filename)
		if ext == "" {
			ext = ".png"
		}
		objectKey := "tests/attachments/" + uuid.NewString() + ext
		url, err := utils.UploadFileToR2(file, objectKey)
		if err != nil {
			log.Printf("ERROR uploading attachment for test %s: %v", id, err)
			return c.Status(500).JSON(fiber.Map{"error": "failed to upload attachment"})
		}
		attachments = append(attachments, models.TestAttachment{
			ID:        uuid.NewString(),
			TestID:    test.ID,
			URL:       url,
			ObjectKey: objectKey,
			FileName:  file.Filename,
			SortOrder: i,
		})
	}
	if len(attachments) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "no attachment files provided"})
	}

	if err := s.DB.Create(&attachments).Error; err != nil {
		log.Printf("ERROR saving attachments for test %s: %v", id, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to save attachments"})
	}
	return c.Status(201).JSON(attachments)
}

// GetDashboard serves the UI's single first-render payload: tests, the
// aggregate metrics, and chart-ready points, all derived from one read.
func (s *TestService) GetDashboard(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	tests := []models.Test{}
	if err := s.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&tests).Error; err != nil {
		log.Printf("ERROR fetching dashboard tests for user %s: %v", userID, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch dashboard"})
	}

	return c.JSON(fiber.Map{
		"tests":      tests,
		"metrics":    CalculateMetrics(tests),
		"chart_data": BuildChartData(tests),
	})
}
