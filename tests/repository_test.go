// Package tests contains test cases for models and repository packages to avoid circular imports
package tests

import (
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/hidrosim/hidrosim/models"
	"github.com/hidrosim/hidrosim/repository"
	testingutil "github.com/hidrosim/hidrosim/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Database tests need a reachable PostgreSQL server. They only run when
// TEST_DB_HOST is set explicitly.
func requireTestDB(t *testing.T) {
	t.Helper()
	if os.Getenv("TEST_DB_HOST") == "" {
		t.Skip("TEST_DB_HOST not set, skipping database tests")
	}
}

func TestPricingTableRepository(t *testing.T) {
	requireTestDB(t)

	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		repo := repository.NewPricingTableRepository(testDB.DB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		t.Run("Save", func(t *testing.T) {
			table, err := fixtures.CreateTestPricingTable()
			require.NoError(t, err)
			assert.NotZero(t, table.ID)
			assert.NotEqual(t, uuid.Nil, table.UUID)
		})

		t.Run("ByID", func(t *testing.T) {
			original, err := fixtures.CreateTestPricingTable()
			require.NoError(t, err)

			table, err := repo.ByID(ctx, original.ID)
			require.NoError(t, err)
			require.NotNil(t, table)
			assert.Equal(t, original.ID, table.ID)
			assert.Equal(t, original.UUID, table.UUID)
		})

		t.Run("ByIDNotFound", func(t *testing.T) {
			table, err := repo.ByID(ctx, 99999)
			assert.NoError(t, err)
			assert.Nil(t, table)
		})

		t.Run("ByUUID", func(t *testing.T) {
			original, err := fixtures.CreateTestPricingTable()
			require.NoError(t, err)

			table, err := repo.ByUUID(ctx, original.UUID.String())
			require.NoError(t, err)
			require.NotNil(t, table)
			assert.Equal(t, original.ID, table.ID)
		})

		t.Run("ColumnsRoundTrip", func(t *testing.T) {
			original, err := fixtures.CreateTestPricingTable()
			require.NoError(t, err)

			table, err := repo.ByID(ctx, original.ID)
			require.NoError(t, err)
			require.NotNil(t, table)
			require.Len(t, table.Columns, 2)

			boru := table.FindColumn("boru")
			require.NotNil(t, boru)
			assert.True(t, boru.IsMeterBased)
			assert.Equal(t, 120, boru.FormulaAddMM)
			require.Len(t, boru.Options, 2)
			assert.Equal(t, "60x50", boru.Options[0].Value)
			assert.InDelta(t, 29.33, boru.Options[0].Price, 1e-9)
			assert.InDelta(t, 10.0, boru.Options[0].Discount, 1e-9)

			require.Len(t, table.UpdateHistory, 1)
			assert.Equal(t, models.HistoryChangeIngest, table.UpdateHistory[0].ChangeType)
		})

		t.Run("Current", func(t *testing.T) {
			require.NoError(t, testDB.ClearAllTables())

			table, err := repo.Current(ctx)
			require.NoError(t, err)
			assert.Nil(t, table)

			first, err := fixtures.CreateTestPricingTable()
			require.NoError(t, err)
			second, err := fixtures.CreateTestPricingTable()
			require.NoError(t, err)

			table, err = repo.Current(ctx)
			require.NoError(t, err)
			require.NotNil(t, table)
			assert.Equal(t, second.ID, table.ID)
			assert.NotEqual(t, first.ID, table.ID)
		})

		t.Run("Update", func(t *testing.T) {
			original, err := fixtures.CreateTestPricingTable()
			require.NoError(t, err)

			original.BumpVersion(models.HistoryChangeManualEdit, "Adjusted boru prices")
			original.Columns[0].Options[0].Price = 31.50
			require.NoError(t, repo.Update(ctx, original))

			table, err := repo.ByID(ctx, original.ID)
			require.NoError(t, err)
			require.NotNil(t, table)
			assert.Equal(t, 2, table.Version)
			assert.InDelta(t, 31.50, table.Columns[0].Options[0].Price, 1e-9)
			require.Len(t, table.UpdateHistory, 2)
			assert.Equal(t, models.HistoryChangeManualEdit, table.UpdateHistory[1].ChangeType)
		})

		t.Run("ByFilter", func(t *testing.T) {
			require.NoError(t, testDB.ClearAllTables())

			original, err := fixtures.CreateTestPricingTable()
			require.NoError(t, err)

			format := "multi_sheet"
			tables, err := repo.ByFilter(ctx, models.PricingTableFilter{SourceFormat: &format}, "", 0, 0)
			require.NoError(t, err)
			require.Len(t, tables, 1)
			assert.Equal(t, original.ID, tables[0].ID)

			minVersion := 2
			tables, err = repo.ByFilter(ctx, models.PricingTableFilter{MinVersion: &minVersion}, "", 0, 0)
			require.NoError(t, err)
			assert.Empty(t, tables)
		})

		t.Run("CountAndExists", func(t *testing.T) {
			require.NoError(t, testDB.ClearAllTables())

			_, err := fixtures.CreateTestPricingTable()
			require.NoError(t, err)

			count, err := repo.Count(ctx, models.PricingTableFilter{})
			require.NoError(t, err)
			assert.Equal(t, int64(1), count)

			exists, err := repo.Exists(ctx, models.PricingTableFilter{})
			require.NoError(t, err)
			assert.True(t, exists)
		})

		t.Run("DeleteAll", func(t *testing.T) {
			_, err := fixtures.CreateTestPricingTable()
			require.NoError(t, err)

			require.NoError(t, repo.DeleteAll(ctx))

			count, err := repo.Count(ctx, models.PricingTableFilter{})
			require.NoError(t, err)
			assert.Zero(t, count)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestFormulaSettingsRepository(t *testing.T) {
	requireTestDB(t)

	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		repo := repository.NewFormulaSettingsRepository(testDB.DB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		t.Run("CurrentEmpty", func(t *testing.T) {
			settings, err := repo.Current(ctx)
			require.NoError(t, err)
			assert.Nil(t, settings)
		})

		t.Run("SaveAndCurrent", func(t *testing.T) {
			original, err := fixtures.CreateTestFormulaSettings(120, 150)
			require.NoError(t, err)
			assert.NotZero(t, original.ID)
			assert.NotEqual(t, uuid.Nil, original.UUID)

			settings, err := repo.Current(ctx)
			require.NoError(t, err)
			require.NotNil(t, settings)
			assert.Equal(t, 120, settings.BoruOffsetMM)
			assert.Equal(t, 150, settings.MilOffsetMM)
		})

		t.Run("Update", func(t *testing.T) {
			settings, err := repo.Current(ctx)
			require.NoError(t, err)
			require.NotNil(t, settings)

			settings.BoruOffsetMM = 200
			settings.Formulas = models.FormulaMap{"kapak_carpan": 1.15}
			require.NoError(t, repo.Update(ctx, settings))

			reloaded, err := repo.Current(ctx)
			require.NoError(t, err)
			require.NotNil(t, reloaded)
			assert.Equal(t, 200, reloaded.BoruOffsetMM)
			assert.InDelta(t, 1.15, reloaded.Formulas["kapak_carpan"], 1e-9)
		})

		return nil
	})
	require.NoError(t, err)
}
