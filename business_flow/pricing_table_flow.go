package businessflow

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hidrosim/hidrosim/app/dto"
	"github.com/hidrosim/hidrosim/config"
	"github.com/hidrosim/hidrosim/models"
	"github.com/hidrosim/hidrosim/repository"
	"github.com/hidrosim/hidrosim/utils"
	"github.com/redis/go-redis/v9"
)

// PricingTableFlow defines operations on the active price catalog.
type PricingTableFlow interface {
	Options(ctx context.Context) (*dto.PricingOptionsResponse, error)
	Replace(ctx context.Context, columns models.PricingColumnList, sourceFormat, changeType, description string) (*models.PricingTable, error)
	Update(ctx context.Context, req *dto.UpdatePricingRequest, metadata *ClientMetadata) (*dto.UpdatePricingResponse, error)
	UpsertOption(ctx context.Context, req *dto.UpsertPricingOptionRequest, metadata *ClientMetadata) (*dto.UpsertPricingOptionResponse, error)
	Clear(ctx context.Context) (*dto.ClearPricingResponse, error)
	Status(ctx context.Context) (*dto.PricingStatusResponse, error)
}

// PricingTableFlowImpl implements PricingTableFlow.
type PricingTableFlowImpl struct {
	pricingRepo repository.PricingTableRepository
	rc          *redis.Client
	cacheConfig *config.CacheConfig
}

// NewPricingTableFlow creates a new pricing table flow.
func NewPricingTableFlow(
	pricingRepo repository.PricingTableRepository,
	rc *redis.Client,
	cacheConfig *config.CacheConfig,
) PricingTableFlow {
	return &PricingTableFlowImpl{
		pricingRepo: pricingRepo,
		rc:          rc,
		cacheConfig: cacheConfig,
	}
}

// Options returns the full active pricing table.
func (f *PricingTableFlowImpl) Options(ctx context.Context) (*dto.PricingOptionsResponse, error) {
	if f.cacheEnabled() {
		cacheKey := redisKey(*f.cacheConfig, utils.PricingOptionsCacheKey)
		if bs, err := f.rc.Get(ctx, cacheKey).Bytes(); err == nil && len(bs) > 0 {
			var out dto.PricingOptionsResponse
			if err := json.Unmarshal(bs, &out); err == nil {
				return &out, nil
			}
		}
	}

	table, err := f.pricingRepo.Current(ctx)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, NewBusinessError("NO_PRICING_TABLE", "No pricing table is loaded. Upload an Excel catalog first.", ErrNoPricingTable)
	}

	out := &dto.PricingOptionsResponse{
		Message:     "Pricing options retrieved",
		Columns:     ToColumnItems(table.Columns),
		Version:     table.Version,
		Format:      table.SourceFormat,
		LastUpdated: table.UpdatedAt.Format(time.RFC3339),
	}

	if f.cacheEnabled() {
		cacheKey := redisKey(*f.cacheConfig, utils.PricingOptionsCacheKey)
		if bs, err := json.Marshal(out); err == nil {
			_ = f.rc.Set(ctx, cacheKey, bs, f.cacheConfig.DefaultTTL).Err()
		}
	}

	return out, nil
}

// Replace installs a new set of columns, bumping the version and
// appending a history entry. The previous columns are discarded.
func (f *PricingTableFlowImpl) Replace(ctx context.Context, columns models.PricingColumnList, sourceFormat, changeType, description string) (*models.PricingTable, error) {
	if len(columns) == 0 {
		return nil, NewBusinessError("NO_CATEGORIES_FOUND", "At least one pricing category is required.", ErrEmptyColumns)
	}

	table, err := f.pricingRepo.Current(ctx)
	if err != nil {
		return nil, err
	}

	if table == nil {
		table = &models.PricingTable{
			Columns:       columns,
			SourceFormat:  sourceFormat,
			UpdateHistory: models.PricingHistoryList{},
		}
		table.BumpVersion(changeType, description)
		if err := f.pricingRepo.Save(ctx, table); err != nil {
			return nil, err
		}
	} else {
		table.Columns = columns
		table.SourceFormat = sourceFormat
		table.UpdatedAt = utils.UTCNow()
		table.BumpVersion(changeType, description)
		if err := f.pricingRepo.Update(ctx, table); err != nil {
			return nil, err
		}
	}

	f.invalidateCache(ctx)
	return table, nil
}

// Update fully replaces the catalog with manually edited columns.
func (f *PricingTableFlowImpl) Update(ctx context.Context, req *dto.UpdatePricingRequest, metadata *ClientMetadata) (*dto.UpdatePricingResponse, error) {
	if req == nil {
		return nil, NewBusinessError("INVALID_REQUEST", "request is required", nil)
	}

	description := req.Description
	if description == "" {
		description = fmt.Sprintf("Manual replace with %d categories", len(req.Columns))
	}

	table, err := f.Replace(ctx, ToModelColumns(req.Columns), "manual", models.HistoryChangeManualEdit, description)
	if err != nil {
		return nil, err
	}

	return &dto.UpdatePricingResponse{
		Message: "Pricing table updated successfully",
		Version: table.Version,
	}, nil
}

// UpsertOption updates one option in place or appends a new one.
func (f *PricingTableFlowImpl) UpsertOption(ctx context.Context, req *dto.UpsertPricingOptionRequest, metadata *ClientMetadata) (*dto.UpsertPricingOptionResponse, error) {
	if req == nil {
		return nil, NewBusinessError("INVALID_REQUEST", "request is required", nil)
	}
	if req.Value == "" {
		return nil, NewBusinessError("VALIDATION_ERROR", "option value is required", ErrOptionValueMissing)
	}

	table, err := f.pricingRepo.Current(ctx)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, NewBusinessError("NO_PRICING_TABLE", "No pricing table is loaded. Upload an Excel catalog first.", ErrNoPricingTable)
	}

	column := table.FindColumn(req.CategoryKey)
	if column == nil {
		return nil, NewBusinessErrorf("CATEGORY_NOT_FOUND", "Category %q does not exist in the pricing table", ErrCategoryNotFound, req.CategoryKey)
	}

	label := req.Label
	if label == "" {
		label = req.Value
	}

	action := "added"
	if existing := column.FindOption(req.Value); existing != nil {
		existing.Label = label
		existing.Price = req.Price
		existing.Discount = req.Discount
		existing.OffsetMM = req.Offset
		action = "updated"
	} else {
		column.Options = append(column.Options, models.PricingOption{
			Value:    req.Value,
			Label:    label,
			Price:    req.Price,
			Discount: req.Discount,
			OffsetMM: req.Offset,
		})
	}

	description := fmt.Sprintf("Option %q in %q %s: price %.2f, discount %.1f%%",
		req.Value, req.CategoryKey, action, req.Price, req.Discount)
	table.UpdatedAt = utils.UTCNow()
	table.BumpVersion(models.HistoryChangeManualEdit, description)

	if err := f.pricingRepo.Update(ctx, table); err != nil {
		return nil, err
	}

	f.invalidateCache(ctx)

	return &dto.UpsertPricingOptionResponse{
		Message:                "Pricing option saved successfully",
		Action:                 action,
		TotalOptionsInCategory: len(column.Options),
		Version:                table.Version,
	}, nil
}

// Clear removes the active pricing table entirely. No history entry is
// written because nothing remains to attach it to.
func (f *PricingTableFlowImpl) Clear(ctx context.Context) (*dto.ClearPricingResponse, error) {
	if err := f.pricingRepo.DeleteAll(ctx); err != nil {
		return nil, err
	}

	f.invalidateCache(ctx)

	return &dto.ClearPricingResponse{
		Message: "Pricing table cleared",
	}, nil
}

// Status reports whether a catalog is loaded and summarizes it.
func (f *PricingTableFlowImpl) Status(ctx context.Context) (*dto.PricingStatusResponse, error) {
	table, err := f.pricingRepo.Current(ctx)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return &dto.PricingStatusResponse{
			Loaded:  false,
			Columns: []dto.PricingStatusColumn{},
		}, nil
	}

	columns := make([]dto.PricingStatusColumn, 0, len(table.Columns))
	for i := range table.Columns {
		columns = append(columns, dto.PricingStatusColumn{
			Name:         table.Columns[i].Name,
			DisplayName:  table.Columns[i].DisplayName,
			OptionsCount: len(table.Columns[i].Options),
			IsMeterBased: table.Columns[i].IsMeterBased,
		})
	}

	return &dto.PricingStatusResponse{
		Loaded:      true,
		Columns:     columns,
		Version:     table.Version,
		Format:      table.SourceFormat,
		LastUpdated: table.UpdatedAt.Format(time.RFC3339),
	}, nil
}

func (f *PricingTableFlowImpl) cacheEnabled() bool {
	return f.rc != nil && f.cacheConfig != nil && f.cacheConfig.Enabled
}

func (f *PricingTableFlowImpl) invalidateCache(ctx context.Context) {
	if !f.cacheEnabled() {
		return
	}
	cacheKey := redisKey(*f.cacheConfig, utils.PricingOptionsCacheKey)
	_ = f.rc.Del(ctx, cacheKey).Err()
}

// ToColumnItems converts model columns to their DTO shape.
func ToColumnItems(columns models.PricingColumnList) []dto.PricingColumnItem {
	items := make([]dto.PricingColumnItem, 0, len(columns))
	for i := range columns {
		options := make([]dto.PricingOptionItem, 0, len(columns[i].Options))
		for _, opt := range columns[i].Options {
			options = append(options, dto.PricingOptionItem{
				Value:    opt.Value,
				Label:    opt.Label,
				Price:    opt.Price,
				Discount: opt.Discount,
				Offset:   opt.OffsetMM,
			})
		}
		items = append(items, dto.PricingColumnItem{
			Name:         columns[i].Name,
			DisplayName:  columns[i].DisplayName,
			Options:      options,
			IsMeterBased: columns[i].IsMeterBased,
			FormulaAddMM: columns[i].FormulaAddMM,
		})
	}
	return items
}

// ToModelColumns converts DTO columns to their model shape.
func ToModelColumns(items []dto.PricingColumnItem) models.PricingColumnList {
	columns := make(models.PricingColumnList, 0, len(items))
	for i := range items {
		options := make([]models.PricingOption, 0, len(items[i].Options))
		for _, opt := range items[i].Options {
			options = append(options, models.PricingOption{
				Value:    opt.Value,
				Label:    opt.Label,
				Price:    opt.Price,
				Discount: opt.Discount,
				OffsetMM: opt.Offset,
			})
		}
		name := items[i].Name
		if name == "" {
			name = utils.Slugify(items[i].DisplayName)
		}
		columns = append(columns, models.PricingColumn{
			Name:         name,
			DisplayName:  items[i].DisplayName,
			Options:      options,
			IsMeterBased: items[i].IsMeterBased,
			FormulaAddMM: items[i].FormulaAddMM,
		})
	}
	return columns
}
