package services

import (
	"sort"

	"traffic-manager-system/models"
)

// CalculateMetrics derives the dashboard rollup from a test collection.
// Pure and deterministic: the same collection always yields the same
// metrics, and an empty collection yields all zeroes.
func CalculateMetrics(tests []models.Test) models.Metrics {
	m := models.Metrics{TotalTests: len(tests)}
	if len(tests) == 0 {
		return m
	}

	var totalReturn, roiSum, cpaSum float64
	var positive int
	for _, t := range tests {
		m.TotalInvestment += t.InvestedAmount
		totalReturn += t.ReturnValue
		roiSum += t.ROI
		cpaSum += t.CPA
		if t.ROI > 0 {
			positive++
		}
	}

	m.NetResult = totalReturn - m.TotalInvestment
	m.SuccessRate = float64(positive) / float64(len(tests)) * 100
	m.AvgROI = roiSum / float64(len(tests))
	m.AvgCPA = cpaSum / float64(len(tests))
	return m
}

// BuildChartData maps each test to a chart-ready point, ordered by start
// date (ties broken by creation time so the order stays deterministic).
func BuildChartData(tests []models.Test) []models.ChartPoint {
	ordered := make([]models.Test, len(tests))
	copy(ordered, tests)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].StartDate != ordered[j].StartDate {
			return ordered[i].StartDate < ordered[j].StartDate
		}
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	points := make([]models.ChartPoint, 0, len(ordered))
	for _, t := range ordered {
		points = append(points, models.ChartPoint{
			Date:       t.StartDate,
			ROI:        t.ROI,
			Investment: t.InvestedAmount,
			Revenue:    t.ReturnValue,
		})
	}
	return points
}
