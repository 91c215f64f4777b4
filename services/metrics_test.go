package services

import (
	"testing"
	"time"

	"traffic-manager-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateMetricsEmptyCollection(t *testing.T) {
	m := CalculateMetrics(nil)

	assert.Equal(t, 0, m.TotalTests)
	assert.Zero(t, m.TotalInvestment)
	assert.Zero(t, m.NetResult)
	assert.Zero(t, m.SuccessRate)
	assert.Zero(t, m.AvgROI)
	assert.Zero(t, m.AvgCPA)
}

func TestCalculateMetrics(t *testing.T) {
	tests := []models.Test{
		{InvestedAmount: 100, ReturnValue: 200, ROI: 100, CPA: 2},
		{InvestedAmount: 100, ReturnValue: 50, ROI: -50, CPA: 4},
		{InvestedAmount: 300, ReturnValue: 450, ROI: 50, CPA: 6},
		{InvestedAmount: 0, ReturnValue: 0, ROI: 0, CPA: 0},
	}

	m := CalculateMetrics(tests)

	assert.Equal(t, 4, m.TotalTests)
	assert.InDelta(t, 500.0, m.TotalInvestment, 1e-9)
	assert.InDelta(t, 200.0, m.NetResult, 1e-9)
	// Two of four tests have ROI > 0; zero ROI does not count as success
	assert.InDelta(t, 50.0, m.SuccessRate, 1e-9)
	assert.InDelta(t, 25.0, m.AvgROI, 1e-9)
	assert.InDelta(t, 3.0, m.AvgCPA, 1e-9)
}

func TestBuildChartDataOrdering(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tests := []models.Test{
		{StartDate: "2025-06-03", InvestedAmount: 30, CreatedAt: base},
		{StartDate: "2025-06-01", InvestedAmount: 10, CreatedAt: base.Add(2 * time.Hour)},
		{StartDate: "2025-06-01", InvestedAmount: 20, CreatedAt: base.Add(1 * time.Hour)},
	}

	points := BuildChartData(tests)
	require.Len(t, points, 3)

	assert.Equal(t, "2025-06-01", points[0].Date)
	assert.InDelta(t, 20.0, points[0].Investment, 1e-9) // earlier CreatedAt wins the tie
	assert.InDelta(t, 10.0, points[1].Investment, 1e-9)
	assert.Equal(t, "2025-06-03", points[2].Date)

	// Input slice is left untouched
	assert.Equal(t, "2025-06-03", tests[0].StartDate)
}

func TestBuildChartDataEmpty(t *testing.T) {
	points := BuildChartData(nil)
	assert.Empty(t, points)
}
