package businessflow

import (
	"context"
	"testing"

	"github.com/hidrosim/hidrosim/app/dto"
	"github.com/hidrosim/hidrosim/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPricingConfig() *config.PricingConfig {
	return &config.PricingConfig{
		SteelPricePerKG:     45.0,
		ChromePlatingPerCM2: 0.8,
		SealKitBasePrice:    250.0,
		LaborCostPerHour:    350.0,
		SteelDensity:        7.85,
		AluminumDensity:     2.70,
		StainlessDensity:    8.00,
		ProfitMargin:        0.25,
	}
}

func baseCostRequest() *dto.ManualCostRequest {
	return &dto.ManualCostRequest{
		BoreDiameter: 80,
		RodDiameter:  45,
		StrokeLength: 500,
		Material:     "steel",
		CylinderType: "double_acting",
		Mounting:     "clevis",
	}
}

func TestEstimateBreakdownConsistency(t *testing.T) {
	flow := NewCostBreakdownFlow(testPricingConfig())

	out, err := flow.Estimate(context.Background(), baseCostRequest(), testMetadata())
	require.NoError(t, err)

	b := out.Breakdown
	for name, v := range map[string]float64{
		"tube":     b.TubeCost,
		"rod":      b.RodCost,
		"piston":   b.PistonCost,
		"seal":     b.SealCost,
		"end caps": b.EndCapsCost,
		"chrome":   b.ChromePlatingCost,
		"machine":  b.MachiningCost,
		"assembly": b.AssemblyCost,
		"mounting": b.MountingCost,
	} {
		assert.Greater(t, v, 0.0, "%s cost must be positive", name)
	}

	sum := b.TubeCost + b.RodCost + b.PistonCost + b.SealCost + b.EndCapsCost +
		b.ChromePlatingCost + b.MachiningCost + b.AssemblyCost + b.MountingCost
	assert.InDelta(t, out.Subtotal, sum, 0.1)
	assert.InDelta(t, out.Subtotal*1.25, out.Total, 0.1)
	assert.Equal(t, "TRY", out.Currency)
}

func TestEstimateFixedRateComponents(t *testing.T) {
	flow := NewCostBreakdownFlow(testPricingConfig())

	out, err := flow.Estimate(context.Background(), baseCostRequest(), testMetadata())
	require.NoError(t, err)

	// 1.5h assembly at 350/h, clevis hardware at its list cost.
	assert.InDelta(t, 525.0, out.Breakdown.AssemblyCost, 1e-9)
	assert.InDelta(t, 380.0, out.Breakdown.MountingCost, 1e-9)

	// Seal kit: 250 * (1 + (80-40)/100) * 1.3 for double acting.
	assert.InDelta(t, 455.0, out.Breakdown.SealCost, 1e-9)
}

func TestEstimateSingleActingSealKit(t *testing.T) {
	flow := NewCostBreakdownFlow(testPricingConfig())

	req := baseCostRequest()
	req.CylinderType = "single_acting"
	out, err := flow.Estimate(context.Background(), req, testMetadata())
	require.NoError(t, err)

	// No type factor for single acting: 250 * 1.4.
	assert.InDelta(t, 350.0, out.Breakdown.SealCost, 1e-9)
}

func TestEstimateMaterialScaling(t *testing.T) {
	flow := NewCostBreakdownFlow(testPricingConfig())
	ctx := context.Background()

	steel, err := flow.Estimate(ctx, baseCostRequest(), testMetadata())
	require.NoError(t, err)

	req := baseCostRequest()
	req.Material = "stainless"
	stainless, err := flow.Estimate(ctx, req, testMetadata())
	require.NoError(t, err)

	assert.Greater(t, stainless.Breakdown.TubeCost, steel.Breakdown.TubeCost)
	assert.Greater(t, stainless.Total, steel.Total)
	// Chrome plating depends on geometry only.
	assert.InDelta(t, steel.Breakdown.ChromePlatingCost, stainless.Breakdown.ChromePlatingCost, 1e-9)
}

func TestEstimateTelescopicMachining(t *testing.T) {
	flow := NewCostBreakdownFlow(testPricingConfig())
	ctx := context.Background()

	double, err := flow.Estimate(ctx, baseCostRequest(), testMetadata())
	require.NoError(t, err)

	req := baseCostRequest()
	req.CylinderType = "telescopic"
	telescopic, err := flow.Estimate(ctx, req, testMetadata())
	require.NoError(t, err)

	// 2.5x machining multiplier against 1.0 for double acting.
	assert.InDelta(t, double.Breakdown.MachiningCost*2.5, telescopic.Breakdown.MachiningCost, 0.1)
}

func TestEstimateValidation(t *testing.T) {
	flow := NewCostBreakdownFlow(testPricingConfig())
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*dto.ManualCostRequest)
		target error
	}{
		{"UnknownMaterial", func(r *dto.ManualCostRequest) { r.Material = "titanium" }, ErrInvalidMaterial},
		{"UnknownCylinderType", func(r *dto.ManualCostRequest) { r.CylinderType = "triple_acting" }, ErrInvalidCylinderType},
		{"UnknownMounting", func(r *dto.ManualCostRequest) { r.Mounting = "magnetic" }, ErrInvalidMounting},
		{"RodNotSmallerThanBore", func(r *dto.ManualCostRequest) { r.RodDiameter = 80 }, ErrRodExceedsBore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseCostRequest()
			tt.mutate(req)
			_, err := flow.Estimate(ctx, req, testMetadata())
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestParametersExposeRates(t *testing.T) {
	flow := NewCostBreakdownFlow(testPricingConfig())

	out, err := flow.Parameters(context.Background())
	require.NoError(t, err)

	assert.InDelta(t, 45.0, out.SteelPricePerKG, 1e-9)
	assert.InDelta(t, 350.0, out.LaborCostPerHour, 1e-9)
	assert.InDelta(t, 0.25, out.ProfitMargin, 1e-9)
	assert.InDelta(t, 2.8, out.MaterialMultipliers["stainless"], 1e-9)
	assert.InDelta(t, 2.5, out.CylinderTypeFactors["telescopic"], 1e-9)
	assert.InDelta(t, 450.0, out.MountingCosts["flange"], 1e-9)
}
