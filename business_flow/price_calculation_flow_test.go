package businessflow

import (
	"context"
	"testing"

	"github.com/hidrosim/hidrosim/app/dto"
	"github.com/hidrosim/hidrosim/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCalcFlow(t *testing.T, columns models.PricingColumnList) PriceCalculationFlow {
	t.Helper()
	repo := newFakePricingTableRepo()
	if columns != nil {
		tableFlow := NewPricingTableFlow(repo, nil, nil)
		_, err := tableFlow.Replace(context.Background(), columns, FormatMultiSheet, models.HistoryChangeIngest, "ingest")
		require.NoError(t, err)
	}
	return NewPriceCalculationFlow(repo)
}

func TestCalculateMeterBasedLine(t *testing.T) {
	flow := newTestCalcFlow(t, sampleCatalog())

	out, err := flow.Calculate(context.Background(), &dto.CalculatePriceRequest{
		Selections: map[string]string{"boru": "60x50"},
		StrokeMM:   500,
	}, testMetadata())
	require.NoError(t, err)

	require.Len(t, out.Items, 1)
	item := out.Items[0]
	assert.Equal(t, "Boru", item.Category)
	assert.Equal(t, UnitPerMeter, item.Unit)
	require.NotNil(t, item.LengthM)
	// (500 + 120) / 1000 with the tube-family default offset.
	assert.InDelta(t, 0.62, *item.LengthM, 1e-9)
	assert.InDelta(t, 18.18, item.PriceBeforeDiscount, 1e-9)
	assert.InDelta(t, 16.37, item.Price, 1e-9)
	assert.InDelta(t, 16.37, out.Total, 1e-9)
	assert.Equal(t, "TRY", out.Currency)
}

func TestCalculateMixedSelections(t *testing.T) {
	flow := newTestCalcFlow(t, sampleCatalog())

	out, err := flow.Calculate(context.Background(), &dto.CalculatePriceRequest{
		Selections: map[string]string{"boru": "60x50", "kapak": "standart"},
		StrokeMM:   500,
	}, testMetadata())
	require.NoError(t, err)

	require.Len(t, out.Items, 2)
	// Items follow catalog column order, not map order.
	assert.Equal(t, "Boru", out.Items[0].Category)
	assert.Equal(t, "Kapak", out.Items[1].Category)
	assert.Equal(t, UnitPerPiece, out.Items[1].Unit)
	assert.InDelta(t, 85.0, out.Items[1].Price, 1e-9)
	assert.InDelta(t, 101.37, out.Total, 1e-9)
}

func TestCalculateAdditionalLength(t *testing.T) {
	flow := newTestCalcFlow(t, sampleCatalog())

	out, err := flow.Calculate(context.Background(), &dto.CalculatePriceRequest{
		Selections:         map[string]string{"boru": "60x50"},
		StrokeMM:           500,
		AdditionalLengthMM: 80,
	}, testMetadata())
	require.NoError(t, err)

	require.Len(t, out.Items, 1)
	assert.InDelta(t, 0.7, *out.Items[0].LengthM, 1e-9)
}

func TestCalculateOptionOffsetWins(t *testing.T) {
	catalog := sampleCatalog()
	catalog[0].Options[0].OffsetMM = 200
	flow := newTestCalcFlow(t, catalog)

	out, err := flow.Calculate(context.Background(), &dto.CalculatePriceRequest{
		Selections: map[string]string{"boru": "60x50"},
		StrokeMM:   500,
	}, testMetadata())
	require.NoError(t, err)

	require.Len(t, out.Items, 1)
	assert.InDelta(t, 0.7, *out.Items[0].LengthM, 1e-9)
}

func TestCalculateZeroLengthFallsBackToUnitPrice(t *testing.T) {
	flow := newTestCalcFlow(t, sampleCatalog())

	out, err := flow.Calculate(context.Background(), &dto.CalculatePriceRequest{
		Selections: map[string]string{"boru": "60x50"},
	}, testMetadata())
	require.NoError(t, err)

	require.Len(t, out.Items, 1)
	item := out.Items[0]
	assert.Equal(t, UnitPerPiece, item.Unit)
	assert.Nil(t, item.LengthM)
	assert.InDelta(t, 29.33, item.PriceBeforeDiscount, 1e-9)
}

func TestCalculateSkipsNoneSentinel(t *testing.T) {
	flow := newTestCalcFlow(t, sampleCatalog())

	for _, sentinel := range []string{"YOK", "yok", "Yok"} {
		out, err := flow.Calculate(context.Background(), &dto.CalculatePriceRequest{
			Selections: map[string]string{"boru": sentinel, "kapak": "standart"},
			StrokeMM:   500,
		}, testMetadata())
		require.NoError(t, err)
		assert.True(t, out.Success)
		require.Len(t, out.Items, 1)
		assert.Equal(t, "Kapak", out.Items[0].Category)
	}
}

func TestCalculateSkipsUnknownValues(t *testing.T) {
	flow := newTestCalcFlow(t, sampleCatalog())

	out, err := flow.Calculate(context.Background(), &dto.CalculatePriceRequest{
		Selections: map[string]string{"boru": "999x999", "vana": "dn25", "kapak": "standart"},
		StrokeMM:   500,
	}, testMetadata())
	require.NoError(t, err)

	assert.True(t, out.Success)
	require.Len(t, out.Items, 1)
	assert.InDelta(t, 85.0, out.Total, 1e-9)
}

func TestCalculateManualPriceOverride(t *testing.T) {
	flow := newTestCalcFlow(t, sampleCatalog())

	out, err := flow.Calculate(context.Background(), &dto.CalculatePriceRequest{
		Selections:   map[string]string{"boru": "60x50"},
		StrokeMM:     500,
		ManualPrices: map[string]float64{"boru:60x50": 40},
	}, testMetadata())
	require.NoError(t, err)

	require.Len(t, out.Items, 1)
	item := out.Items[0]
	assert.InDelta(t, 40.0, item.UnitPrice, 1e-9)
	// Catalog discount still applies on top of the override.
	assert.InDelta(t, 24.8, item.PriceBeforeDiscount, 1e-9)
	assert.InDelta(t, 22.32, item.Price, 1e-9)
}

func TestCalculateWithoutCatalog(t *testing.T) {
	flow := newTestCalcFlow(t, nil)

	_, err := flow.Calculate(context.Background(), &dto.CalculatePriceRequest{
		Selections: map[string]string{"boru": "60x50"},
	}, testMetadata())
	require.Error(t, err)
	assert.True(t, IsNoPricingTable(err))
}

func TestCalculateRequiresSelections(t *testing.T) {
	flow := newTestCalcFlow(t, sampleCatalog())

	_, err := flow.Calculate(context.Background(), &dto.CalculatePriceRequest{
		Selections: map[string]string{},
	}, testMetadata())
	require.Error(t, err)

	var bizErr *BusinessError
	require.ErrorAs(t, err, &bizErr)
	assert.Equal(t, "VALIDATION_ERROR", bizErr.Code)
}
