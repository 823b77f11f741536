package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hidrosim/hidrosim/utils"
	"gorm.io/gorm"
)

// History change types recorded on the pricing table.
const (
	HistoryChangeIngest         = "ingest"
	HistoryChangeManualEdit     = "manual-edit"
	HistoryChangeSettingsUpdate = "settings-update"
)

// PricingOption is one selectable value inside a pricing category.
type PricingOption struct {
	Value    string  `json:"value"`
	Label    string  `json:"label"`
	Price    float64 `json:"price"`
	Discount float64 `json:"discount"`
	OffsetMM int     `json:"offset"`
}

// PricingColumn is one category of the price catalog. Options keep the
// order they had in the source spreadsheet.
type PricingColumn struct {
	Name         string          `json:"name"`
	DisplayName  string          `json:"display_name"`
	Options      []PricingOption `json:"options"`
	IsMeterBased bool            `json:"is_meter_based"`
	FormulaAddMM int             `json:"formula_add_mm"`
}

// FindOption returns the option matching value exactly, or nil.
func (c *PricingColumn) FindOption(value string) *PricingOption {
	for i := range c.Options {
		if c.Options[i].Value == value {
			return &c.Options[i]
		}
	}
	return nil
}

// PricingColumnList is the ordered category list persisted as jsonb.
type PricingColumnList []PricingColumn

// Value implements the driver.Valuer interface for PricingColumnList.
func (l PricingColumnList) Value() (driver.Value, error) {
	if l == nil {
		l = PricingColumnList{}
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface for PricingColumnList.
func (l *PricingColumnList) Scan(value any) error {
	if value == nil {
		*l = PricingColumnList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into PricingColumnList", value)
	}

	return json.Unmarshal(bytes, l)
}

// PricingHistoryEntry is one audit record of a pricing table mutation.
type PricingHistoryEntry struct {
	Version     int       `json:"version"`
	ChangeType  string    `json:"change_type"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// PricingHistoryList is the chronological update history persisted as jsonb.
type PricingHistoryList []PricingHistoryEntry

// Value implements the driver.Valuer interface for PricingHistoryList.
func (l PricingHistoryList) Value() (driver.Value, error) {
	if l == nil {
		l = PricingHistoryList{}
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface for PricingHistoryList.
func (l *PricingHistoryList) Scan(value any) error {
	if value == nil {
		*l = PricingHistoryList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into PricingHistoryList", value)
	}

	return json.Unmarshal(bytes, l)
}

// PricingTable is the single active price catalog. At most one row
// exists; every mutation rewrites the full row.
type PricingTable struct {
	ID            uint               `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID          uuid.UUID          `gorm:"type:uuid;uniqueIndex;not null" json:"uuid"`
	Columns       PricingColumnList  `gorm:"type:jsonb;not null" json:"columns"`
	Version       int                `gorm:"not null;default:1" json:"version"`
	SourceFormat  string             `gorm:"type:varchar(40);not null;default:''" json:"format"`
	UpdateHistory PricingHistoryList `gorm:"type:jsonb;not null;default:'[]'" json:"update_history"`
	CreatedAt     time.Time          `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time          `gorm:"not null;default:CURRENT_TIMESTAMP" json:"last_updated"`
}

func (PricingTable) TableName() string { return "pricing_tables" }

// BeforeCreate ensures UUID and timestamps are set.
func (t *PricingTable) BeforeCreate(tx *gorm.DB) error {
	if t.UUID == uuid.Nil {
		t.UUID = uuid.New()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = utils.UTCNow()
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = utils.UTCNow()
	}
	return nil
}

// FindColumn returns the category with the given machine key, or nil.
func (t *PricingTable) FindColumn(key string) *PricingColumn {
	for i := range t.Columns {
		if t.Columns[i].Name == key {
			return &t.Columns[i]
		}
	}
	return nil
}

// TotalOptions counts options across all categories.
func (t *PricingTable) TotalOptions() int {
	total := 0
	for i := range t.Columns {
		total += len(t.Columns[i].Options)
	}
	return total
}

// BumpVersion advances the table version and appends a history entry,
// dropping the oldest entries beyond the history cap.
func (t *PricingTable) BumpVersion(changeType, description string) {
	t.Version++
	t.appendHistory(changeType, description)
}

func (t *PricingTable) appendHistory(changeType, description string) {
	t.UpdateHistory = append(t.UpdateHistory, PricingHistoryEntry{
		Version:     t.Version,
		ChangeType:  changeType,
		Description: description,
		Timestamp:   utils.UTCNow(),
	})
	if over := len(t.UpdateHistory) - utils.PricingHistoryLimit; over > 0 {
		t.UpdateHistory = t.UpdateHistory[over:]
	}
}

// PricingTableFilter represents filter criteria for pricing table queries.
type PricingTableFilter struct {
	ID           *uint      `json:"id,omitempty"`
	UUID         *uuid.UUID `json:"uuid,omitempty"`
	SourceFormat *string    `json:"format,omitempty"`
	MinVersion   *int       `json:"min_version,omitempty"`
}
