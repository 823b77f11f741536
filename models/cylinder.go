package models

import (
	"database/sql/driver"
	"fmt"
)

// MaterialType represents the cylinder body material.
type MaterialType string

const (
	MaterialSteel     MaterialType = "steel"
	MaterialStainless MaterialType = "stainless"
	MaterialAluminum  MaterialType = "aluminum"
)

// Valid checks if the material type is valid.
func (m MaterialType) Valid() bool {
	switch m {
	case MaterialSteel, MaterialStainless, MaterialAluminum:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for MaterialType.
func (m *MaterialType) Scan(value any) error {
	if value == nil {
		*m = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*m = MaterialType(v)
	case []byte:
		*m = MaterialType(string(v))
	default:
		return fmt.Errorf("cannot scan %T into MaterialType", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for MaterialType.
func (m MaterialType) Value() (driver.Value, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("invalid MaterialType: %s", m)
	}
	return string(m), nil
}

// CylinderType represents the cylinder working principle.
type CylinderType string

const (
	CylinderSingleActing CylinderType = "single_acting"
	CylinderDoubleActing CylinderType = "double_acting"
	CylinderTelescopic   CylinderType = "telescopic"
)

// Valid checks if the cylinder type is valid.
func (c CylinderType) Valid() bool {
	switch c {
	case CylinderSingleActing, CylinderDoubleActing, CylinderTelescopic:
		return true
	default:
		return false
	}
}

// MountingType represents how the cylinder is attached.
type MountingType string

const (
	MountingFlange   MountingType = "flange"
	MountingClevis   MountingType = "clevis"
	MountingTrunnion MountingType = "trunnion"
	MountingFoot     MountingType = "foot"
	MountingTieRod   MountingType = "tie_rod"
)

// Valid checks if the mounting type is valid.
func (m MountingType) Valid() bool {
	switch m {
	case MountingFlange, MountingClevis, MountingTrunnion, MountingFoot, MountingTieRod:
		return true
	default:
		return false
	}
}

// CylinderDimensions holds the measured geometry of a cylinder (mm/bar).
// WallThickness may be zero, in which case a pressure-derived minimum is
// used during costing.
type CylinderDimensions struct {
	BoreDiameter    float64 `json:"bore_diameter"`
	RodDiameter     float64 `json:"rod_diameter"`
	StrokeLength    float64 `json:"stroke_length"`
	WallThickness   float64 `json:"wall_thickness,omitempty"`
	WorkingPressure float64 `json:"working_pressure,omitempty"`
}

// CostBreakdown itemizes a geometric cost estimate (TL).
type CostBreakdown struct {
	TubeCost          float64 `json:"tube_cost"`
	RodCost           float64 `json:"rod_cost"`
	PistonCost        float64 `json:"piston_cost"`
	SealCost          float64 `json:"seal_cost"`
	EndCapsCost       float64 `json:"end_caps_cost"`
	ChromePlatingCost float64 `json:"chrome_plating_cost"`
	MachiningCost     float64 `json:"machining_cost"`
	AssemblyCost      float64 `json:"assembly_cost"`
	MountingCost      float64 `json:"mounting_cost"`
}
