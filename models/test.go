package models

import (
	"time"
)

// Test status values shown in the dashboard status selector.
const (
	TestStatusScale = "Escalar"
	TestStatusPause = "Pausar"
	TestStatusStop  = "Encerrar"
)

// Test is a single paid-traffic experiment with its spend/return figures.
// Derived fields (cpa, roi, roas, ctr, conversion_rate, cpc) are computed
// once at write time and stored verbatim; reads never recompute them.
type Test struct {
	ID             string  `json:"id" gorm:"primaryKey"`
	UserID         string  `json:"user_id" gorm:"column:user_id;not null;index"`
	OfferID        *string `json:"offer_id,omitempty" gorm:"column:offer_id;index"`
	StartDate      string  `json:"start_date" gorm:"column:start_date"`
	ProductName    string  `json:"product_name" gorm:"column:product_name;not null"`
	Niche          string  `json:"niche"`
	OfferSource    string  `json:"offer_source" gorm:"column:offer_source"`
	LandingPageURL string  `json:"landing_page_url" gorm:"column:landing_page_url"`
	InvestedAmount float64 `json:"invested_amount" gorm:"column:invested_amount;default:0"`
	Clicks         int     `json:"clicks" gorm:"default:0"`
	ReturnValue    float64 `json:"return_value" gorm:"column:return_value;default:0"`
	CPA            float64 `json:"cpa" gorm:"column:cpa;default:0"`
	ROI            float64 `json:"roi" gorm:"column:roi;default:0"`
	ROAS           float64 `json:"roas" gorm:"column:roas;default:0"`
	CTR            float64 `json:"ctr" gorm:"column:ctr;default:0"`
	ConversionRate float64 `json:"conversion_rate" gorm:"column:conversion_rate;default:0"`
	CPC            float64 `json:"cpc" gorm:"column:cpc;default:0"`
	Impressions    int     `json:"impressions" gorm:"default:0"`
	Conversions    int     `json:"conversions" gorm:"default:0"`
	Status         string  `json:"status" gorm:"default:'Pausar'"`
	Observations   string  `json:"observations" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Relationships
	Attachments []TestAttachment `json:"attachments,omitempty" gorm:"foreignKey:TestID"`
}

// ComputeDerived fills every derived ratio from the raw figures, guarding
// each division. Zero denominators leave the ratio at 0 rather than NaN.
func (t *Test) ComputeDerived() {
	t.CPA = 0
	t.CPC = 0
	if t.Clicks > 0 {
		t.CPA = t.InvestedAmount / float64(t.Clicks)
		t.CPC = t.InvestedAmount / float64(t.Clicks)
	}

	t.ROI = 0
	t.ROAS = 0
	if t.InvestedAmount > 0 {
		t.ROI = (t.ReturnValue - t.InvestedAmount) / t.InvestedAmount * 100
		t.ROAS = t.ReturnValue / t.InvestedAmount * 100
	}

	t.CTR = 0
	if t.Impressions > 0 {
		t.CTR = float64(t.Clicks) / float64(t.Impressions) * 100
	}

	t.ConversionRate = 0
	if t.Clicks > 0 {
		t.ConversionRate = float64(t.Conversions) / float64(t.Clicks) * 100
	}
}

// TestAttachment is a creative/screenshot stored in object storage, owned by
// a test and deleted with it.
type TestAttachment struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	TestID    string    `json:"test_id" gorm:"column:test_id;not null;index"`
	URL       string    `json:"url"`
	ObjectKey string    `json:"-" gorm:"column:object_key"`
	FileName  string    `json:"file_name" gorm:"column:file_name"`
	SortOrder int       `json:"sort_order" gorm:"column:sort_order;default:0"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
