// Package testing provides test utilities and database setup for testing the pricing service
package testing

import (
	"fmt"

	"github.com/hidrosim/hidrosim/models"
)

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// SampleColumns returns a small catalog with one meter-based and one
// per-piece category, mirroring a typical supplier price list.
func SampleColumns() models.PricingColumnList {
	return models.PricingColumnList{
		{
			Name:         "boru",
			DisplayName:  "Boru",
			IsMeterBased: true,
			FormulaAddMM: 120,
			Options: []models.PricingOption{
				{Value: "60x50", Label: "60x50 Honlu Boru", Price: 29.33, Discount: 10},
				{Value: "70x60", Label: "70x60 Honlu Boru", Price: 35.10, Discount: 10},
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
	}
}

// CreateTestPricingTable persists a catalog built from SampleColumns
func (tf *TestFixtures) CreateTestPricingTable() (*models.PricingTable, error) {
	table := &models.PricingTable{
		Columns:      SampleColumns(),
		Version:      1,
		SourceFormat: "multi_sheet",
		UpdateHistory: models.PricingHistoryList{
			{Version: 1, ChangeType: models.HistoryChangeIngest, Description: "Initial test catalog"},
		},
	}

	if err := tf.DB.DB.Create(table).Error; err != nil {
		return nil, fmt.Errorf("failed to create test pricing table: %w", err)
	}
	return table, nil
}

// CreateTestFormulaSettings persists formula settings with the given offsets
func (tf *TestFixtures) CreateTestFormulaSettings(boruOffset, milOffset int) (*models.FormulaSettings, error) {
	settings := &models.FormulaSettings{
		BoruOffsetMM: boruOffset,
		MilOffsetMM:  milOffset,
		Formulas:     models.FormulaMap{},
	}

	if err := tf.DB.DB.Create(settings).Error; err != nil {
		return nil, fmt.Errorf("failed to create test formula settings: %w", err)
	}
	return settings, nil
}
