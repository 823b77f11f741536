package businessflow

import (
	"context"
	"testing"

	"github.com/hidrosim/hidrosim/app/dto"
	"github.com/hidrosim/hidrosim/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func newTestSettingsFlow() (FormulaSettingsFlow, PricingTableFlow, *fakeFormulaSettingsRepo) {
	pricingRepo := newFakePricingTableRepo()
	settingsRepo := newFakeFormulaSettingsRepo()
	tableFlow := NewPricingTableFlow(pricingRepo, nil, nil)
	return NewFormulaSettingsFlow(settingsRepo, pricingRepo, tableFlow), tableFlow, settingsRepo
}

func TestGetSettingsDefaults(t *testing.T) {
	flow, _, _ := newTestSettingsFlow()

	out, err := flow.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 120, out.BoruOffsetMM)
	assert.Equal(t, 150, out.MilOffsetMM)
}

func TestUpdateSettingsRequiresAField(t *testing.T) {
	flow, _, _ := newTestSettingsFlow()

	_, err := flow.Update(context.Background(), &dto.UpdateFormulaSettingsRequest{}, testMetadata())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoSettingsFields)
}

func TestUpdateSettingsPersists(t *testing.T) {
	flow, _, settingsRepo := newTestSettingsFlow()
	ctx := context.Background()

	out, err := flow.Update(ctx, &dto.UpdateFormulaSettingsRequest{
		BoruOffsetMM: intPtr(200),
	}, testMetadata())
	require.NoError(t, err)
	assert.Equal(t, 200, out.BoruOffsetMM)
	assert.Equal(t, 150, out.MilOffsetMM)

	stored, err := settingsRepo.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 200, stored.BoruOffsetMM)

	// Second update patches the existing row.
	out, err = flow.Update(ctx, &dto.UpdateFormulaSettingsRequest{
		MilOffsetMM: intPtr(180),
	}, testMetadata())
	require.NoError(t, err)
	assert.Equal(t, 200, out.BoruOffsetMM)
	assert.Equal(t, 180, out.MilOffsetMM)
}

func TestUpdateSettingsReappliesToCatalog(t *testing.T) {
	flow, tableFlow, _ := newTestSettingsFlow()
	ctx := context.Background()

	_, err := tableFlow.Replace(ctx, sampleCatalog(), FormatMultiSheet, models.HistoryChangeIngest, "ingest")
	require.NoError(t, err)

	_, err = flow.Update(ctx, &dto.UpdateFormulaSettingsRequest{
		BoruOffsetMM: intPtr(200),
	}, testMetadata())
	require.NoError(t, err)

	options, err := tableFlow.Options(ctx)
	require.NoError(t, err)
	assert.Equal(t, 200, options.Columns[0].FormulaAddMM)
	// The retroactive rewrite counts as a catalog mutation.
	assert.Equal(t, 2, options.Version)

	status, err := tableFlow.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, FormatMultiSheet, status.Format)
}

func TestUpdateSettingsNoCatalogLoaded(t *testing.T) {
	flow, tableFlow, _ := newTestSettingsFlow()
	ctx := context.Background()

	_, err := flow.Update(ctx, &dto.UpdateFormulaSettingsRequest{
		BoruOffsetMM: intPtr(200),
	}, testMetadata())
	require.NoError(t, err)

	status, err := tableFlow.Status(ctx)
	require.NoError(t, err)
	assert.False(t, status.Loaded)
}

func TestUpdateSettingsNoopWhenOffsetsMatch(t *testing.T) {
	flow, tableFlow, _ := newTestSettingsFlow()
	ctx := context.Background()

	_, err := tableFlow.Replace(ctx, sampleCatalog(), FormatMultiSheet, models.HistoryChangeIngest, "ingest")
	require.NoError(t, err)

	// Catalog already carries the 120mm tube default.
	_, err = flow.Update(ctx, &dto.UpdateFormulaSettingsRequest{
		BoruOffsetMM: intPtr(120),
	}, testMetadata())
	require.NoError(t, err)

	options, err := tableFlow.Options(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, options.Version)
}

func TestReapplyOffsets(t *testing.T) {
	settings := &models.FormulaSettings{BoruOffsetMM: 200, MilOffsetMM: 180}

	columns := models.PricingColumnList{
		{Name: "boru", IsMeterBased: true, FormulaAddMM: 120},
		{Name: "mil", IsMeterBased: true, FormulaAddMM: 150},
		{Name: "kapak", FormulaAddMM: 0},
	}

	out, changed := ReapplyOffsets(columns, settings)
	assert.True(t, changed)
	assert.Equal(t, 200, out[0].FormulaAddMM)
	assert.Equal(t, 180, out[1].FormulaAddMM)
	assert.Equal(t, 0, out[2].FormulaAddMM)

	// Source columns are not mutated.
	assert.Equal(t, 120, columns[0].FormulaAddMM)

	// Re-running against matching offsets reports no change.
	_, changed = ReapplyOffsets(out, settings)
	assert.False(t, changed)
}

func TestReapplyOffsetsIgnoresPerPieceCategories(t *testing.T) {
	settings := &models.FormulaSettings{BoruOffsetMM: 200, MilOffsetMM: 180}

	columns := models.PricingColumnList{
		// Tube-named but per-piece: family offset does not apply.
		{Name: "boru_kelepce", IsMeterBased: false, FormulaAddMM: 0},
	}

	out, changed := ReapplyOffsets(columns, settings)
	assert.False(t, changed)
	assert.Equal(t, 0, out[0].FormulaAddMM)
}

func TestUpdateSettingsRejectsNegativeOffset(t *testing.T) {
	flow, _, _ := newTestSettingsFlow()

	_, err := flow.Update(context.Background(), &dto.UpdateFormulaSettingsRequest{
		BoruOffsetMM: intPtr(-10),
	}, testMetadata())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOffsetNegative)
}
