package businessflow

import (
	"context"

	"github.com/google/uuid"
	"github.com/hidrosim/hidrosim/models"
	"github.com/hidrosim/hidrosim/utils"
)

// fakePricingTableRepo is an in-memory stand-in for the gorm-backed
// repository. It mimics database semantics by handing out copies.
type fakePricingTableRepo struct {
	tables []*models.PricingTable
	nextID uint
}

func newFakePricingTableRepo() *fakePricingTableRepo {
	return &fakePricingTableRepo{nextID: 1}
}

func copyTable(t *models.PricingTable) *models.PricingTable {
	cp := *t
	cp.Columns = make(models.PricingColumnList, len(t.Columns))
	for i := range t.Columns {
		cp.Columns[i] = t.Columns[i]
		cp.Columns[i].Options = append([]models.PricingOption(nil), t.Columns[i].Options...)
	}
	cp.UpdateHistory = append(models.PricingHistoryList(nil), t.UpdateHistory...)
	return &cp
}

func (r *fakePricingTableRepo) ByID(ctx context.Context, id uint) (*models.PricingTable, error) {
	for _, t := range r.tables {
		if t.ID == id {
			return copyTable(t), nil
		}
	}
	return nil, nil
}

func (r *fakePricingTableRepo) ByFilter(ctx context.Context, filter models.PricingTableFilter, orderBy string, limit, offset int) ([]*models.PricingTable, error) {
	out := []*models.PricingTable{}
	for _, t := range r.tables {
		if filter.ID != nil && t.ID != *filter.ID {
			continue
		}
		if filter.UUID != nil && t.UUID != *filter.UUID {
			continue
		}
		if filter.SourceFormat != nil && t.SourceFormat != *filter.SourceFormat {
			continue
		}
		if filter.MinVersion != nil && t.Version < *filter.MinVersion {
			continue
		}
		out = append(out, copyTable(t))
	}
	return out, nil
}

func (r *fakePricingTableRepo) Save(ctx context.Context, table *models.PricingTable) error {
	table.ID = r.nextID
	r.nextID++
	if table.UUID == uuid.Nil {
		table.UUID = uuid.New()
	}
	now := utils.UTCNow()
	if table.CreatedAt.IsZero() {
		table.CreatedAt = now
	}
	if table.UpdatedAt.IsZero() {
		table.UpdatedAt = now
	}
	r.tables = append(r.tables, copyTable(table))
	return nil
}

func (r *fakePricingTableRepo) Count(ctx context.Context, filter models.PricingTableFilter) (int64, error) {
	rows, _ := r.ByFilter(ctx, filter, "", 0, 0)
	return int64(len(rows)), nil
}

func (r *fakePricingTableRepo) Exists(ctx context.Context, filter models.PricingTableFilter) (bool, error) {
	count, _ := r.Count(ctx, filter)
	return count > 0, nil
}

func (r *fakePricingTableRepo) ByUUID(ctx context.Context, id string) (*models.PricingTable, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	for _, t := range r.tables {
		if t.UUID == parsed {
			return copyTable(t), nil
		}
	}
	return nil, nil
}

func (r *fakePricingTableRepo) Current(ctx context.Context) (*models.PricingTable, error) {
	if len(r.tables) == 0 {
		return nil, nil
	}
	latest := r.tables[0]
	for _, t := range r.tables[1:] {
		if t.ID > latest.ID {
			latest = t
		}
	}
	return copyTable(latest), nil
}

func (r *fakePricingTableRepo) Update(ctx context.Context, table *models.PricingTable) error {
	for i, t := range r.tables {
		if t.ID == table.ID {
			r.tables[i] = copyTable(table)
			return nil
		}
	}
	r.tables = append(r.tables, copyTable(table))
	return nil
}

func (r *fakePricingTableRepo) DeleteAll(ctx context.Context) error {
	r.tables = nil
	return nil
}

// fakeFormulaSettingsRepo keeps at most one settings row in memory.
type fakeFormulaSettingsRepo struct {
	settings *models.FormulaSettings
	nextID   uint
}

func newFakeFormulaSettingsRepo() *fakeFormulaSettingsRepo {
	return &fakeFormulaSettingsRepo{nextID: 1}
}

func copySettings(s *models.FormulaSettings) *models.FormulaSettings {
	cp := *s
	cp.Formulas = make(models.FormulaMap, len(s.Formulas))
	for k, v := range s.Formulas {
		cp.Formulas[k] = v
	}
	return &cp
}

func (r *fakeFormulaSettingsRepo) ByID(ctx context.Context, id uint) (*models.FormulaSettings, error) {
	if r.settings != nil && r.settings.ID == id {
		return copySettings(r.settings), nil
	}
	return nil, nil
}

func (r *fakeFormulaSettingsRepo) ByFilter(ctx context.Context, filter models.FormulaSettingsFilter, orderBy string, limit, offset int) ([]*models.FormulaSettings, error) {
	if r.settings == nil {
		return nil, nil
	}
	if filter.ID != nil && r.settings.ID != *filter.ID {
		return nil, nil
	}
	if filter.UUID != nil && r.settings.UUID != *filter.UUID {
		return nil, nil
	}
	return []*models.FormulaSettings{copySettings(r.settings)}, nil
}

func (r *fakeFormulaSettingsRepo) Save(ctx context.Context, settings *models.FormulaSettings) error {
	settings.ID = r.nextID
	r.nextID++
	if settings.UUID == uuid.Nil {
		settings.UUID = uuid.New()
	}
	r.settings = copySettings(settings)
	return nil
}

func (r *fakeFormulaSettingsRepo) Count(ctx context.Context, filter models.FormulaSettingsFilter) (int64, error) {
	rows, _ := r.ByFilter(ctx, filter, "", 0, 0)
	return int64(len(rows)), nil
}

func (r *fakeFormulaSettingsRepo) Exists(ctx context.Context, filter models.FormulaSettingsFilter) (bool, error) {
	count, _ := r.Count(ctx, filter)
	return count > 0, nil
}

func (r *fakeFormulaSettingsRepo) Current(ctx context.Context) (*models.FormulaSettings, error) {
	if r.settings == nil {
		return nil, nil
	}
	return copySettings(r.settings), nil
}

func (r *fakeFormulaSettingsRepo) Update(ctx context.Context, settings *models.FormulaSettings) error {
	r.settings = copySettings(settings)
	return nil
}

// sampleCatalog is the canonical two-category fixture used across the
// flow tests.
func sampleCatalog() models.PricingColumnList {
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

func testMetadata() *ClientMetadata {
	return NewClientMetadata("127.0.0.1", "go-test")
}
