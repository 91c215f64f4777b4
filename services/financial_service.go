package services

import (
	"log"

	"traffic-manager-system/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FinancialService struct {
	DB *gorm.DB
}

func NewFinancialService(db *gorm.DB) *FinancialService {
	return &FinancialService{DB: db}
}

// GetFinancial returns the caller's financial snapshot with the full ledger,
// most recent first. The row is created lazily on first access: the write is
// an upsert keyed on user_id, so two simultaneous first accesses still leave
// exactly one row (plain insert-after-check-miss would race).
func (s *FinancialService) GetFinancial(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	fd := models.FinancialData{UserID: userID}
	if err := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&fd).Error; err != nil {
		log.Printf("ERROR ensuring financial row for user %s: %v", userID, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to load financial data"})
	}

	if err := s.DB.Where("user_id = ?", userID).First(&fd).Error; err != nil {
		log.Printf("ERROR fetching financial row for user %s: %v", userID, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to load financial data"})
	}

	transactions, err := s.loadTransactions(userID)
	if err != nil {
		log.Printf("ERROR fetching transactions for user %s: %v", userID, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to load transactions"})
	}
	fd.Transactions = transactions

	return c.JSON(fd)
}

// UpdateFinancial lets the caller change initial capital. Everything else on
// the snapshot is derived, so the update re-runs the reconciliation instead
// of trusting aggregates sent by the client.
func (s *FinancialService) UpdateFinancial(c *fiber.Ctx) error {
	type Req struct {
		InitialCapital *float64 `json:"initial_capital"`
	}
	userID := c.Locals("user_id").(string)

	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if req.InitialCapital == nil {
		return c.Status(400).JSON(fiber.Map{"error": "initial_capital is required"})
	}
	if *req.InitialCapital < 0 {
		return c.Status(400).JSON(fiber.Map{"error": "initial_capital must not be negative"})
	}

	var fd models.FinancialData
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		row := models.FinancialData{UserID: userID, InitialCapital: *req.InitialCapital}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"initial_capital"}),
		}).Create(&row).Error; err != nil {
			return err
		}
		var rerr error
		fd, rerr = ReconcileFinancial(tx, userID)
		return rerr
	})
	if err != nil {
		log.Printf("ERROR updating financial data for user %s: %v", userID, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to update financial data"})
	}

	fd.Transactions, err = s.loadTransactions(userID)
	if err != nil {
		log.Printf("ERROR fetching transactions for user %s: %v", userID, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to load transactions"})
	}
	return c.JSON(fd)
}

// GetTransactions lists the caller's ledger, most recent first.
func (s *FinancialService) GetTransactions(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	transactions, err := s.loadTransactions(userID)
	if err != nil {
		log.Printf("ERROR fetching transactions for user %s: %v", userID, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to load transactions"})
	}
	return c.JSON(transactions)
}

func (s *FinancialService) loadTransactions(userID string) ([]models.Transaction, error) {
	transactions := []models.Transaction{}
	err := s.DB.Where("user_id = ?", userID).
		Order("date DESC").
		Find(&transactions).Error
	return transactions, err
}
