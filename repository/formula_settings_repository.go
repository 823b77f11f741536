package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hidrosim/hidrosim/models"
	"gorm.io/gorm"
)

// FormulaSettingsRepositoryImpl implements FormulaSettingsRepository interface.
type FormulaSettingsRepositoryImpl struct {
	*BaseRepository[models.FormulaSettings, models.FormulaSettingsFilter]
}

// NewFormulaSettingsRepository creates a new formula settings repository.
func NewFormulaSettingsRepository(db *gorm.DB) FormulaSettingsRepository {
	return &FormulaSettingsRepositoryImpl{
		BaseRepository: NewBaseRepository[models.FormulaSettings, models.FormulaSettingsFilter](db),
	}
}

// Current retrieves the active formula settings. Returns nil when no
// settings row has been persisted yet.
func (r *FormulaSettingsRepositoryImpl) Current(ctx context.Context) (*models.FormulaSettings, error) {
	db := r.getDB(ctx)
	var row models.FormulaSettings
	if err := db.Order("id DESC").First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load formula settings: %w", err)
	}
	return &row, nil
}

// Update persists mutations to an existing settings row.
func (r *FormulaSettingsRepositoryImpl) Update(ctx context.Context, settings *models.FormulaSettings) error {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	err = db.Save(settings).Error
	if err != nil {
		return fmt.Errorf("failed to update formula settings: %w", err)
	}

	return nil
}

// applyFilter applies filter criteria to a GORM query.
func (r *FormulaSettingsRepositoryImpl) applyFilter(query *gorm.DB, filter models.FormulaSettingsFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		query = query.Where("uuid = ?", *filter.UUID)
	}
	return query
}

// ByFilter retrieves formula settings based on filter criteria.
func (r *FormulaSettingsRepositoryImpl) ByFilter(ctx context.Context, filter models.FormulaSettingsFilter, orderBy string, limit, offset int) ([]*models.FormulaSettings, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.FormulaSettings{})

	query = r.applyFilter(query, filter)

	if orderBy == "" {
		orderBy = "id DESC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.FormulaSettings
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns number of settings rows matching filter.
func (r *FormulaSettingsRepositoryImpl) Count(ctx context.Context, filter models.FormulaSettingsFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.FormulaSettings{})
	query = r.applyFilter(query, filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any settings row matches the filter.
func (r *FormulaSettingsRepositoryImpl) Exists(ctx context.Context, filter models.FormulaSettingsFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
