package services

import (
	"errors"
	"fmt"
	"time"

	"traffic-manager-system/models"
	"traffic-manager-system/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Validation failures surfaced before anything touches the database.
var (
	ErrNegativeInvestment = errors.New("invested amount must not be negative")
	ErrNegativeReturn     = errors.New("return value must not be negative")
	ErrNegativeClicks     = errors.New("clicks must not be negative")
)

// ValidateTestAmounts rejects out-of-range raw figures. Negative money is a
// caller error, never clamped.
func ValidateTestAmounts(invested, returned float64, clicks int) error {
	if invested < 0 {
		return ErrNegativeInvestment
	}
	if returned < 0 {
		return ErrNegativeReturn
	}
	if clicks < 0 {
		return ErrNegativeClicks
	}
	return nil
}

// RecomputeFinancial projects the aggregate equations over the test
// collection. Pure: initial capital and the transaction list pass through
// untouched, and running it twice on the same input is bit-identical.
func RecomputeFinancial(tests []models.Test, fd models.FinancialData) models.FinancialData {
	var totalInvestment, totalRevenue float64
	for _, t := range tests {
		totalInvestment += t.InvestedAmount
		totalRevenue += t.ReturnValue
	}

	fd.TotalInvestment = totalInvestment
	fd.TotalRevenue = totalRevenue
	fd.NetProfit = totalRevenue - totalInvestment
	fd.CurrentBalance = fd.InitialCapital + totalRevenue - totalInvestment
	return fd
}

// TransactionsForTest emits the ledger entries a freshly created test owes:
// one investment entry unconditionally, one revenue entry only when the test
// already returned money.
func TransactionsForTest(t models.Test, now time.Time) []models.Transaction {
	txns := []models.Transaction{{
		ID:          uuid.NewString(),
		UserID:      t.UserID,
		TestID:      &t.ID,
		Type:        models.TransactionTypeInvestment,
		Amount:      t.InvestedAmount,
		Description: fmt.Sprintf("Investimento - %s (%s)", t.ProductName, utils.FormatBRL(t.InvestedAmount)),
		Date:        now,
	}}

	if t.ReturnValue > 0 {
		txns = append(txns, models.Transaction{
			ID:          uuid.NewString(),
			UserID:      t.UserID,
			TestID:      &t.ID,
			Type:        models.TransactionTypeRevenue,
			Amount:      t.ReturnValue,
			Description: fmt.Sprintf("Receita - %s (%s)", t.ProductName, utils.FormatBRL(t.ReturnValue)),
			Date:        now,
		})
	}
	return txns
}

// Columns the reconciliation upsert is allowed to overwrite. initial_capital
// stays caller-owned.
var financialAggregateColumns = []string{
	"current_balance",
	"total_investment",
	"total_revenue",
	"net_profit",
}

// ReconcileFinancial re-derives one user's snapshot from the authoritative
// test collection and upserts it keyed on user_id. Safe to run after any
// mutation or partial failure: it never depends on accumulated state, so a
// later pass always converges to the invariant equations. Call it inside the
// same transaction as the mutation it follows.
func ReconcileFinancial(tx *gorm.DB, userID string) (models.FinancialData, error) {
	var tests []models.Test
	if err := tx.Where("user_id = ?", userID).Find(&tests).Error; err != nil {
		return models.FinancialData{}, fmt.Errorf("failed to load tests for reconciliation: %w", err)
	}

	fd := models.FinancialData{UserID: userID}
	if err := tx.Where("user_id = ?", userID).First(&fd).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.FinancialData{}, fmt.Errorf("failed to load financial snapshot: %w", err)
	}

	fd = RecomputeFinancial(tests, fd)

	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns(financialAggregateColumns),
	}).Create(&fd).Error; err != nil {
		return models.FinancialData{}, fmt.Errorf("failed to upsert financial snapshot: %w", err)
	}
	return fd, nil
}
