package services

import (
	"testing"
	"time"

	"traffic-manager-system/models"
	"traffic-manager-system/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTestAmounts(t *testing.T) {
	assert.NoError(t, ValidateTestAmounts(0, 0, 0))
	assert.NoError(t, ValidateTestAmounts(100.50, 250, 42))

	assert.ErrorIs(t, ValidateTestAmounts(-1, 0, 0), ErrNegativeInvestment)
	assert.ErrorIs(t, ValidateTestAmounts(0, -1, 0), ErrNegativeReturn)
	assert.ErrorIs(t, ValidateTestAmounts(0, 0, -1), ErrNegativeClicks)
}

func TestRecomputeFinancialInvariants(t *testing.T) {
	tests := []models.Test{
		{InvestedAmount: 100, ReturnValue: 150},
		{InvestedAmount: 200, ReturnValue: 0},
		{InvestedAmount: 50, ReturnValue: 300},
	}
	fd := models.FinancialData{UserID: "u1", InitialCapital: 1000}

	out := RecomputeFinancial(tests, fd)

	assert.InDelta(t, 350.0, out.TotalInvestment, 1e-9)
	assert.InDelta(t, 450.0, out.TotalRevenue, 1e-9)
	assert.InDelta(t, out.TotalRevenue-out.TotalInvestment, out.NetProfit, 1e-9)
	assert.InDelta(t, out.InitialCapital+out.TotalRevenue-out.TotalInvestment, out.CurrentBalance, 1e-9)
	// Initial capital passes through untouched
	assert.InDelta(t, 1000.0, out.InitialCapital, 1e-9)
}

func TestRecomputeFinancialIdempotent(t *testing.T) {
	tests := []models.Test{{InvestedAmount: 75, ReturnValue: 120}}
	fd := models.FinancialData{UserID: "u1", InitialCapital: 500}

	once := RecomputeFinancial(tests, fd)
	twice := RecomputeFinancial(tests, once)

	assert.Equal(t, once.TotalInvestment, twice.TotalInvestment)
	assert.Equal(t, once.TotalRevenue, twice.TotalRevenue)
	assert.Equal(t, once.NetProfit, twice.NetProfit)
	assert.Equal(t, once.CurrentBalance, twice.CurrentBalance)
}

func TestRecomputeFinancialEmptyCollection(t *testing.T) {
	fd := models.FinancialData{UserID: "u1", InitialCapital: 250}

	out := RecomputeFinancial(nil, fd)

	assert.Zero(t, out.TotalInvestment)
	assert.Zero(t, out.TotalRevenue)
	assert.Zero(t, out.NetProfit)
	assert.InDelta(t, 250.0, out.CurrentBalance, 1e-9)
}

func TestTransactionsForTestWithReturn(t *testing.T) {
	now := time.Now()
	test := models.Test{
		ID:             "t1",
		UserID:         "u1",
		ProductName:    "Produto X",
		InvestedAmount: 100,
		ReturnValue:    150,
	}

	txns := TransactionsForTest(test, now)
	require.Len(t, txns, 2)

	inv, rev := txns[0], txns[1]
	assert.Equal(t, models.TransactionTypeInvestment, inv.Type)
	assert.InDelta(t, 100.0, inv.Amount, 1e-9)
	assert.Equal(t, "Investimento - Produto X ("+utils.FormatBRL(100)+")", inv.Description)
	require.NotNil(t, inv.TestID)
	assert.Equal(t, "t1", *inv.TestID)
	assert.Equal(t, now, inv.Date)

	assert.Equal(t, models.TransactionTypeRevenue, rev.Type)
	assert.InDelta(t, 150.0, rev.Amount, 1e-9)
	assert.Equal(t, "Receita - Produto X ("+utils.FormatBRL(150)+")", rev.Description)
}

func TestTransactionsForTestZeroReturn(t *testing.T) {
	test := models.Test{
		ID:          "t2",
		UserID:      "u1",
		ProductName: "Produto Y",
	}

	txns := TransactionsForTest(test, time.Now())
	require.Len(t, txns, 1)
	assert.Equal(t, models.TransactionTypeInvestment, txns[0].Type)
}
