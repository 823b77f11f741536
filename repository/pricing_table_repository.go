package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hidrosim/hidrosim/models"
	"github.com/hidrosim/hidrosim/utils"
	"gorm.io/gorm"
)

// PricingTableRepositoryImpl implements PricingTableRepository interface.
type PricingTableRepositoryImpl struct {
	*BaseRepository[models.PricingTable, models.PricingTableFilter]
}

// NewPricingTableRepository creates a new pricing table repository.
func NewPricingTableRepository(db *gorm.DB) PricingTableRepository {
	return &PricingTableRepositoryImpl{
		BaseRepository: NewBaseRepository[models.PricingTable, models.PricingTableFilter](db),
	}
}

// ByUUID retrieves a pricing table by UUID.
func (r *PricingTableRepositoryImpl) ByUUID(ctx context.Context, uuidStr string) (*models.PricingTable, error) {
	parsed, err := utils.ParseUUID(uuidStr)
	if err != nil {
		return nil, err
	}
	rows, err := r.ByFilter(ctx, models.PricingTableFilter{UUID: &parsed}, "", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// Current retrieves the active pricing table. Returns nil when no table
// has been ingested yet.
func (r *PricingTableRepositoryImpl) Current(ctx context.Context) (*models.PricingTable, error) {
	db := r.getDB(ctx)
	var row models.PricingTable
	if err := db.Order("id DESC").First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load current pricing table: %w", err)
	}
	return &row, nil
}

// Update persists mutations to an existing pricing table row.
func (r *PricingTableRepositoryImpl) Update(ctx context.Context, table *models.PricingTable) error {
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

	err = db.Save(table).Error
	if err != nil {
		return fmt.Errorf("failed to update pricing table: %w", err)
	}

	return nil
}

// DeleteAll removes every stored pricing table row.
func (r *PricingTableRepositoryImpl) DeleteAll(ctx context.Context) error {
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

	err = db.Where("1 = 1").Delete(&models.PricingTable{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete pricing tables: %w", err)
	}

	return nil
}

// applyFilter applies filter criteria to a GORM query.
func (r *PricingTableRepositoryImpl) applyFilter(query *gorm.DB, filter models.PricingTableFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		query = query.Where("uuid = ?", *filter.UUID)
	}
	if filter.SourceFormat != nil {
		query = query.Where("source_format = ?", *filter.SourceFormat)
	}
	if filter.MinVersion != nil {
		query = query.Where("version >= ?", *filter.MinVersion)
	}
	return query
}

// ByFilter retrieves pricing tables based on filter criteria.
func (r *PricingTableRepositoryImpl) ByFilter(ctx context.Context, filter models.PricingTableFilter, orderBy string, limit, offset int) ([]*models.PricingTable, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.PricingTable{})

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

	var rows []*models.PricingTable
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns number of pricing tables matching filter.
func (r *PricingTableRepositoryImpl) Count(ctx context.Context, filter models.PricingTableFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.PricingTable{})
	query = r.applyFilter(query, filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any pricing table matches the filter.
func (r *PricingTableRepositoryImpl) Exists(ctx context.Context, filter models.PricingTableFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
