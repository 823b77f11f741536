package dto

// ManualCostRequest represents manually entered cylinder geometry for a
// weight-based cost estimate. Dimensions are millimeters, pressure is bar.
type ManualCostRequest struct {
	BoreDiameter    float64 `json:"bore_diameter" validate:"required,gt=0"`
	RodDiameter     float64 `json:"rod_diameter" validate:"required,gt=0"`
	StrokeLength    float64 `json:"stroke_length" validate:"required,gt=0"`
	WallThickness   float64 `json:"wall_thickness" validate:"gte=0"`
	WorkingPressure float64 `json:"working_pressure" validate:"gte=0"`
	Material        string  `json:"material" validate:"required,oneof=steel stainless aluminum"`
	CylinderType    string  `json:"cylinder_type" validate:"required,oneof=single_acting double_acting telescopic"`
	Mounting        string  `json:"mounting" validate:"required,oneof=flange clevis trunnion foot tie_rod"`
}

// CostBreakdownItem itemizes a geometric cost estimate.
type CostBreakdownItem struct {
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

// ManualCostResponse carries the full estimate including profit margin.
type ManualCostResponse struct {
	Message   string            `json:"message"`
	Breakdown CostBreakdownItem `json:"breakdown"`
	Subtotal  float64           `json:"subtotal"`
	Total     float64           `json:"total"`
	Currency  string            `json:"currency"`
}

// PricingParametersResponse exposes the rates the cost engine runs with.
type PricingParametersResponse struct {
	SteelPricePerKG     float64            `json:"steel_price_per_kg"`
	LaborCostPerHour    float64            `json:"labor_cost_per_hour"`
	ChromePlatingPerCM2 float64            `json:"chrome_plating_per_cm2"`
	SealKitBasePrice    float64            `json:"seal_kit_base_price"`
	ProfitMargin        float64            `json:"profit_margin"`
	MaterialMultipliers map[string]float64 `json:"material_multipliers"`
	CylinderTypeFactors map[string]float64 `json:"cylinder_type_factors"`
	MountingCosts       map[string]float64 `json:"mounting_costs"`
}
