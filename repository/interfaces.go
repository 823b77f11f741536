// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"

	"github.com/hidrosim/hidrosim/models"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// PricingTableRepository defines operations for the persisted pricing table
type PricingTableRepository interface {
	Repository[models.PricingTable, models.PricingTableFilter]
	ByUUID(ctx context.Context, uuid string) (*models.PricingTable, error)
	Current(ctx context.Context) (*models.PricingTable, error)
	Update(ctx context.Context, table *models.PricingTable) error
	DeleteAll(ctx context.Context) error
}

// FormulaSettingsRepository defines operations for formula settings
type FormulaSettingsRepository interface {
	Repository[models.FormulaSettings, models.FormulaSettingsFilter]
	Current(ctx context.Context) (*models.FormulaSettings, error)
	Update(ctx context.Context, settings *models.FormulaSettings) error
}
