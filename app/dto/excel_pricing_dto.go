package dto

// PricingOptionItem represents one selectable option inside a pricing category.
type PricingOptionItem struct {
	Value    string  `json:"value" validate:"required"`
	Label    string  `json:"label"`
	Price    float64 `json:"price" validate:"gte=0"`
	Discount float64 `json:"discount" validate:"gte=0,lte=100"`
	Offset   int     `json:"offset" validate:"gte=0"`
}

// PricingColumnItem represents one category of the pricing table.
type PricingColumnItem struct {
	Name         string              `json:"name" validate:"required"`
	DisplayName  string              `json:"display_name"`
	Options      []PricingOptionItem `json:"options" validate:"dive"`
	IsMeterBased bool                `json:"is_meter_based"`
	FormulaAddMM int                 `json:"formula_add_mm" validate:"gte=0"`
}

// UploadPricingResponse summarizes a successful catalog ingestion.
type UploadPricingResponse struct {
	Message              string   `json:"message"`
	Filename             string   `json:"filename"`
	CategoriesFound      int      `json:"categories_found"`
	TotalOptions         int      `json:"total_options"`
	MeterBasedCategories []string `json:"meter_based_categories"`
	Version              int      `json:"version"`
}

// PricingOptionsResponse carries the full active pricing table.
type PricingOptionsResponse struct {
	Message     string              `json:"message"`
	Columns     []PricingColumnItem `json:"columns"`
	Version     int                 `json:"version"`
	Format      string              `json:"format"`
	LastUpdated string              `json:"last_updated"`
}

// CalculatePriceRequest represents the payload for itemized price calculation.
type CalculatePriceRequest struct {
	Selections         map[string]string  `json:"selections" validate:"required,min=1"`
	StrokeMM           float64            `json:"stroke_mm" validate:"gte=0"`
	AdditionalLengthMM float64            `json:"additional_length_mm" validate:"gte=0"`
	ManualPrices       map[string]float64 `json:"manual_prices"`
}

// PriceLineItem is one priced selection in a calculation result.
type PriceLineItem struct {
	Category            string   `json:"category"`
	Value               string   `json:"value"`
	UnitPrice           float64  `json:"unit_price"`
	Unit                string   `json:"unit"`
	LengthM             *float64 `json:"length_m,omitempty"`
	Discount            float64  `json:"discount"`
	PriceBeforeDiscount float64  `json:"price_before_discount"`
	Price               float64  `json:"price"`
}

// CalculatePriceResponse carries the itemized, totaled calculation result.
type CalculatePriceResponse struct {
	Success  bool            `json:"success"`
	Items    []PriceLineItem `json:"items"`
	Total    float64         `json:"total"`
	StrokeMM float64         `json:"stroke_mm"`
	Currency string          `json:"currency"`
}

// UpdatePricingRequest represents a manual bulk replace of the pricing table.
type UpdatePricingRequest struct {
	Columns     []PricingColumnItem `json:"columns" validate:"required,min=1,dive"`
	Description string              `json:"description"`
}

type UpdatePricingResponse struct {
	Message string `json:"message"`
	Version int    `json:"version"`
}

// UpsertPricingOptionRequest adds or updates a single option of a category.
type UpsertPricingOptionRequest struct {
	CategoryKey string  `json:"category_key" validate:"required"`
	Value       string  `json:"value" validate:"required"`
	Label       string  `json:"label"`
	Price       float64 `json:"price" validate:"gte=0"`
	Discount    float64 `json:"discount" validate:"gte=0,lte=100"`
	Offset      int     `json:"offset" validate:"gte=0"`
}

type UpsertPricingOptionResponse struct {
	Message                string `json:"message"`
	Action                 string `json:"action"`
	TotalOptionsInCategory int    `json:"total_options_in_category"`
	Version                int    `json:"version"`
}

type ClearPricingResponse struct {
	Message string `json:"message"`
}

// PricingStatusColumn is the per-category summary of the status endpoint.
type PricingStatusColumn struct {
	Name         string `json:"name"`
	DisplayName  string `json:"display_name"`
	OptionsCount int    `json:"options_count"`
	IsMeterBased bool   `json:"is_meter_based"`
}

// PricingStatusResponse reports whether a pricing table is loaded.
type PricingStatusResponse struct {
	Loaded      bool                  `json:"loaded"`
	Columns     []PricingStatusColumn `json:"columns"`
	Version     int                   `json:"version"`
	Format      string                `json:"format"`
	LastUpdated string                `json:"last_updated,omitempty"`
}

// FormulaSettingsResponse carries the stroke-offset settings.
type FormulaSettingsResponse struct {
	BoruOffsetMM int                `json:"boru_offset_mm"`
	MilOffsetMM  int                `json:"mil_offset_mm"`
	Formulas     map[string]float64 `json:"formulas"`
}

// UpdateFormulaSettingsRequest patches one or both default offsets.
type UpdateFormulaSettingsRequest struct {
	BoruOffsetMM *int `json:"boru_offset_mm" validate:"omitempty,gte=0"`
	MilOffsetMM  *int `json:"mil_offset_mm" validate:"omitempty,gte=0"`
}
