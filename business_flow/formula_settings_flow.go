package businessflow

import (
	"context"
	"fmt"

	"github.com/hidrosim/hidrosim/app/dto"
	"github.com/hidrosim/hidrosim/models"
	"github.com/hidrosim/hidrosim/repository"
	"github.com/hidrosim/hidrosim/utils"
)

// FormulaSettingsFlow manages the default stroke offsets.
type FormulaSettingsFlow interface {
	Get(ctx context.Context) (*dto.FormulaSettingsResponse, error)
	Update(ctx context.Context, req *dto.UpdateFormulaSettingsRequest, metadata *ClientMetadata) (*dto.FormulaSettingsResponse, error)
}

// FormulaSettingsFlowImpl implements FormulaSettingsFlow.
type FormulaSettingsFlowImpl struct {
	settingsRepo repository.FormulaSettingsRepository
	pricingRepo  repository.PricingTableRepository
	tableFlow    PricingTableFlow
}

// NewFormulaSettingsFlow creates a new formula settings flow.
func NewFormulaSettingsFlow(
	settingsRepo repository.FormulaSettingsRepository,
	pricingRepo repository.PricingTableRepository,
	tableFlow PricingTableFlow,
) FormulaSettingsFlow {
	return &FormulaSettingsFlowImpl{
		settingsRepo: settingsRepo,
		pricingRepo:  pricingRepo,
		tableFlow:    tableFlow,
	}
}

// Get returns the active settings, falling back to the defaults when
// nothing has ever been persisted.
func (f *FormulaSettingsFlowImpl) Get(ctx context.Context) (*dto.FormulaSettingsResponse, error) {
	settings, err := f.settingsRepo.Current(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = models.DefaultFormulaSettings()
	}
	return toSettingsResponse(settings), nil
}

// Update persists the new offsets, then rewrites the category-level
// default offsets of the loaded catalog for the affected families and
// persists the catalog with a version bump.
func (f *FormulaSettingsFlowImpl) Update(ctx context.Context, req *dto.UpdateFormulaSettingsRequest, metadata *ClientMetadata) (*dto.FormulaSettingsResponse, error) {
	if req == nil {
		return nil, NewBusinessError("INVALID_REQUEST", "request is required", nil)
	}
	if req.BoruOffsetMM == nil && req.MilOffsetMM == nil {
		return nil, NewBusinessError("VALIDATION_ERROR", "At least one offset field must be provided", ErrNoSettingsFields)
	}
	if (req.BoruOffsetMM != nil && *req.BoruOffsetMM < 0) || (req.MilOffsetMM != nil && *req.MilOffsetMM < 0) {
		return nil, NewBusinessError("VALIDATION_ERROR", "Offsets must not be negative", ErrOffsetNegative)
	}

	settings, err := f.settingsRepo.Current(ctx)
	if err != nil {
		return nil, err
	}

	if settings == nil {
		settings = models.DefaultFormulaSettings()
		applySettingsPatch(settings, req)
		if err := f.settingsRepo.Save(ctx, settings); err != nil {
			return nil, err
		}
	} else {
		applySettingsPatch(settings, req)
		settings.UpdatedAt = utils.UTCNow()
		if err := f.settingsRepo.Update(ctx, settings); err != nil {
			return nil, err
		}
	}

	if err := f.reapplyToCatalog(ctx, settings); err != nil {
		return nil, err
	}

	return toSettingsResponse(settings), nil
}

// reapplyToCatalog pushes the new defaults into the loaded catalog. A
// missing catalog is not an error; there is nothing to patch.
func (f *FormulaSettingsFlowImpl) reapplyToCatalog(ctx context.Context, settings *models.FormulaSettings) error {
	table, err := f.pricingRepo.Current(ctx)
	if err != nil {
		return err
	}
	if table == nil {
		return nil
	}

	columns, changed := ReapplyOffsets(table.Columns, settings)
	if !changed {
		return nil
	}

	description := fmt.Sprintf("Default offsets updated: boru %dmm, mil %dmm", settings.BoruOffsetMM, settings.MilOffsetMM)
	_, err = f.tableFlow.Replace(ctx, columns, table.SourceFormat, models.HistoryChangeSettingsUpdate, description)
	return err
}

// ReapplyOffsets returns a copy of the columns with family default
// offsets rewritten from the settings. Per-option offsets are left
// untouched; they win at calculation time.
func ReapplyOffsets(columns models.PricingColumnList, settings *models.FormulaSettings) (models.PricingColumnList, bool) {
	out := make(models.PricingColumnList, len(columns))
	copy(out, columns)

	changed := false
	for i := range out {
		if !out[i].IsMeterBased {
			continue
		}
		switch {
		case containsAny(out[i].Name, tubeFamilyTokens):
			if out[i].FormulaAddMM != settings.BoruOffsetMM {
				out[i].FormulaAddMM = settings.BoruOffsetMM
				changed = true
			}
		case containsAny(out[i].Name, rodFamilyTokens):
			if out[i].FormulaAddMM != settings.MilOffsetMM {
				out[i].FormulaAddMM = settings.MilOffsetMM
				changed = true
			}
		}
	}
	return out, changed
}

func applySettingsPatch(settings *models.FormulaSettings, req *dto.UpdateFormulaSettingsRequest) {
	if req.BoruOffsetMM != nil {
		settings.BoruOffsetMM = *req.BoruOffsetMM
	}
	if req.MilOffsetMM != nil {
		settings.MilOffsetMM = *req.MilOffsetMM
	}
}

func toSettingsResponse(settings *models.FormulaSettings) *dto.FormulaSettingsResponse {
	formulas := map[string]float64(settings.Formulas)
	if formulas == nil {
		formulas = map[string]float64{}
	}
	return &dto.FormulaSettingsResponse{
		BoruOffsetMM: settings.BoruOffsetMM,
		MilOffsetMM:  settings.MilOffsetMM,
		Formulas:     formulas,
	}
}
