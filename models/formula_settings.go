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

// FormulaMap holds named tuning values for auxiliary formulas as jsonb.
type FormulaMap map[string]float64

// Value implements the driver.Valuer interface for FormulaMap.
func (m FormulaMap) Value() (driver.Value, error) {
	if m == nil {
		m = FormulaMap{}
	}
	return json.Marshal(m)
}

// Scan implements the sql.Scanner interface for FormulaMap.
func (m *FormulaMap) Scan(value any) error {
	if value == nil {
		*m = FormulaMap{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into FormulaMap", value)
	}

	return json.Unmarshal(bytes, m)
}

// FormulaSettings is the durable singleton holding the default stroke
// offsets applied to meter-based categories that carry no per-option
// offset of their own.
type FormulaSettings struct {
	ID           uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID         uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"uuid"`
	BoruOffsetMM int        `gorm:"not null;default:120" json:"boru_offset_mm"`
	MilOffsetMM  int        `gorm:"not null;default:150" json:"mil_offset_mm"`
	Formulas     FormulaMap `gorm:"type:jsonb;not null;default:'{}'" json:"formulas"`
	CreatedAt    time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (FormulaSettings) TableName() string { return "formula_settings" }

// BeforeCreate ensures UUID and timestamps are set.
func (s *FormulaSettings) BeforeCreate(tx *gorm.DB) error {
	if s.UUID == uuid.Nil {
		s.UUID = uuid.New()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = utils.UTCNow()
	}
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = utils.UTCNow()
	}
	return nil
}

// DefaultFormulaSettings returns the settings used before any update
// has ever been persisted.
func DefaultFormulaSettings() *FormulaSettings {
	return &FormulaSettings{
		BoruOffsetMM: utils.DefaultBoruOffsetMM,
		MilOffsetMM:  utils.DefaultMilOffsetMM,
		Formulas:     FormulaMap{},
	}
}

// FormulaSettingsFilter represents filter criteria for settings queries.
type FormulaSettingsFilter struct {
	ID   *uint      `json:"id,omitempty"`
	UUID *uuid.UUID `json:"uuid,omitempty"`
}
