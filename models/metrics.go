package models

// Metrics is the aggregate dashboard rollup derived from the test
// collection. All fields are 0 (never NaN) for an empty collection.
type Metrics struct {
	TotalInvestment float64 `json:"total_investment"`
	TotalTests      int     `json:"total_tests"`
	SuccessRate     float64 `json:"success_rate"`
	NetResult       float64 `json:"net_result"`
	AvgROI          float64 `json:"avg_roi"`
	AvgCPA          float64 `json:"avg_cpa"`
}

// ChartPoint is one chart-ready row per test, ordered by start date.
type ChartPoint struct {
	Date       string  `json:"date"`
	ROI        float64 `json:"roi"`
	Investment float64 `json:"investment"`
	Revenue    float64 `json:"revenue"`
}
