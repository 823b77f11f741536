// Package tests contains test cases for models and repository packages to avoid circular imports
package tests

import (
	"fmt"
	"testing"

	"github.com/hidrosim/hidrosim/models"
	"github.com/hidrosim/hidrosim/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePricingTable() *models.PricingTable {
	return &models.PricingTable{
		Version:      1,
		SourceFormat: "multi_sheet",
		Columns: models.PricingColumnList{
			{
				Name:         "boru",
				DisplayName:  "Boru",
				IsMeterBased: true,
				FormulaAddMM: 120,
				Options: []models.PricingOption{
					{Value: "60x50", Label: "60x50 Honlu Boru", Price: 29.33, Discount: 10},
				},
			},
			{
				Name:        "kapak",
				DisplayName: "Kapak",
				Options: []models.PricingOption{
					{Value: "standart", Label: "Standart Kapak", Price: 85},
					{Value: "flansli", Label: "Flansli Kapak", Price: 140, Discount: 5},
				},
			},
		},
		UpdateHistory: models.PricingHistoryList{
			{Version: 1, ChangeType: models.HistoryChangeIngest, Description: "Initial catalog"},
		},
	}
}

func TestPricingTableBumpVersion(t *testing.T) {
	table := samplePricingTable()

	table.BumpVersion(models.HistoryChangeManualEdit, "Updated boru option")

	assert.Equal(t, 2, table.Version)
	require.Len(t, table.UpdateHistory, 2)
	last := table.UpdateHistory[len(table.UpdateHistory)-1]
	assert.Equal(t, 2, last.Version)
	assert.Equal(t, models.HistoryChangeManualEdit, last.ChangeType)
	assert.Equal(t, "Updated boru option", last.Description)
	assert.False(t, last.Timestamp.IsZero())
}

func TestPricingTableHistoryCap(t *testing.T) {
	table := samplePricingTable()

	for i := 0; i < utils.PricingHistoryLimit+10; i++ {
		table.BumpVersion(models.HistoryChangeIngest, fmt.Sprintf("Ingest %d", i))
	}

	assert.Len(t, table.UpdateHistory, utils.PricingHistoryLimit)
	// Oldest entries fall off the front, the newest version is kept.
	assert.Equal(t, table.Version, table.UpdateHistory[len(table.UpdateHistory)-1].Version)
	assert.Greater(t, table.UpdateHistory[0].Version, 1)
}

func TestPricingTableLookups(t *testing.T) {
	table := samplePricingTable()

	boru := table.FindColumn("boru")
	require.NotNil(t, boru)
	assert.Equal(t, "Boru", boru.DisplayName)
	assert.Nil(t, table.FindColumn("mil"))

	option := boru.FindOption("60x50")
	require.NotNil(t, option)
	assert.InDelta(t, 29.33, option.Price, 1e-9)
	assert.Nil(t, boru.FindOption("80x70"))

	assert.Equal(t, 3, table.TotalOptions())
}

func TestPricingColumnListScanValue(t *testing.T) {
	original := samplePricingTable().Columns

	value, err := original.Value()
	require.NoError(t, err)

	var scanned models.PricingColumnList
	require.NoError(t, scanned.Scan(value))

	require.Len(t, scanned, 2)
	assert.Equal(t, "boru", scanned[0].Name)
	assert.True(t, scanned[0].IsMeterBased)
	assert.Equal(t, 120, scanned[0].FormulaAddMM)
	assert.InDelta(t, 29.33, scanned[0].Options[0].Price, 1e-9)

	var empty models.PricingColumnList
	require.NoError(t, empty.Scan(nil))
	assert.Empty(t, empty)
}

func TestDefaultFormulaSettings(t *testing.T) {
	settings := models.DefaultFormulaSettings()

	assert.Equal(t, utils.DefaultBoruOffsetMM, settings.BoruOffsetMM)
	assert.Equal(t, utils.DefaultMilOffsetMM, settings.MilOffsetMM)
	assert.NotNil(t, settings.Formulas)
}

func TestCylinderEnums(t *testing.T) {
	assert.True(t, models.MaterialType("steel").Valid())
	assert.True(t, models.MaterialType("stainless").Valid())
	assert.False(t, models.MaterialType("titanium").Valid())

	assert.True(t, models.CylinderType("double_acting").Valid())
	assert.False(t, models.CylinderType("triple_acting").Valid())

	assert.True(t, models.MountingType("clevis").Valid())
	assert.False(t, models.MountingType("magnetic").Valid())

	_, err := models.MaterialType("titanium").Value()
	assert.Error(t, err)
}
