package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeDerived(t *testing.T) {
	test := Test{
		InvestedAmount: 100,
		ReturnValue:    150,
		Clicks:         50,
		Impressions:    1000,
		Conversions:    5,
	}
	test.ComputeDerived()

	assert.InDelta(t, 2.0, test.CPA, 1e-9)
	assert.InDelta(t, 2.0, test.CPC, 1e-9)
	assert.InDelta(t, 50.0, test.ROI, 1e-9)
	assert.InDelta(t, 150.0, test.ROAS, 1e-9)
	assert.InDelta(t, 5.0, test.CTR, 1e-9)
	assert.InDelta(t, 10.0, test.ConversionRate, 1e-9)
}

func TestComputeDerivedZeroDenominators(t *testing.T) {
	test := Test{ReturnValue: 150}
	test.ComputeDerived()

	assert.Zero(t, test.CPA)
	assert.Zero(t, test.CPC)
	assert.Zero(t, test.ROI)
	assert.Zero(t, test.ROAS)
	assert.Zero(t, test.CTR)
	assert.Zero(t, test.ConversionRate)
}

func TestComputeDerivedOverwritesStaleValues(t *testing.T) {
	test := Test{CPA: 99, ROI: 99, ROAS: 99, CTR: 99, ConversionRate: 99, CPC: 99}
	test.ComputeDerived()

	assert.Zero(t, test.CPA)
	assert.Zero(t, test.ROI)
	assert.Zero(t, test.ROAS)
	assert.Zero(t, test.CTR)
	assert.Zero(t, test.ConversionRate)
	assert.Zero(t, test.CPC)
}

func TestComputeDerivedTotalLoss(t *testing.T) {
	test := Test{InvestedAmount: 200, ReturnValue: 0, Clicks: 10}
	test.ComputeDerived()

	assert.InDelta(t, -100.0, test.ROI, 1e-9)
	assert.Zero(t, test.ROAS)
	assert.InDelta(t, 20.0, test.CPA, 1e-9)
}
