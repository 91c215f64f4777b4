package models

import (
	"time"
)

// Transaction types recorded in the ledger.
const (
	TransactionTypeInvestment = "investment"
	TransactionTypeRevenue    = "revenue"
	TransactionTypeExpense    = "expense"
)

// FinancialData is the per-user financial snapshot. One row per user
// (user_id is the primary key); created lazily on first access via upsert.
// The aggregate columns are always re-derivable from the test collection:
//
//	total_investment = Σ tests.invested_amount
//	total_revenue    = Σ tests.return_value
//	net_profit       = total_revenue − total_investment
//	current_balance  = initial_capital + total_revenue − total_investment
type FinancialData struct {
	UserID          string  `json:"user_id" gorm:"column:user_id;primaryKey"`
	InitialCapital  float64 `json:"initial_capital" gorm:"column:initial_capital;default:0"`
	CurrentBalance  float64 `json:"current_balance" gorm:"column:current_balance;default:0"`
	TotalInvestment float64 `json:"total_investment" gorm:"column:total_investment;default:0"`
	TotalRevenue    float64 `json:"total_revenue" gorm:"column:total_revenue;default:0"`
	NetProfit       float64 `json:"net_profit" gorm:"column:net_profit;default:0"`

	// Assembled from the transactions table on read, most recent first.
	Transactions []Transaction `json:"transactions" gorm:"-"`
}

func (FinancialData) TableName() string {
	return "financial_data"
}

// Transaction is an immutable ledger entry. Rows are created as a side
// effect of test creation and removed only by the cascade when their test
// is deleted. They are never updated.
type Transaction struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	UserID      string    `json:"user_id" gorm:"column:user_id;not null;index"`
	TestID      *string   `json:"test_id,omitempty" gorm:"column:test_id;index"`
	Type        string    `json:"type" gorm:"not null"`
	Amount      float64   `json:"amount" gorm:"not null"`
	Description string    `json:"description"`
	Date        time.Time `json:"date" gorm:"not null"`
}
