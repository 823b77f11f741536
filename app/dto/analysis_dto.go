package dto

// AnalysisDimensions holds the dimensions extracted from a technical drawing.
type AnalysisDimensions struct {
	BoreDiameter  float64 `json:"bore_diameter"`
	RodDiameter   float64 `json:"rod_diameter"`
	StrokeLength  float64 `json:"stroke_length"`
	WallThickness float64 `json:"wall_thickness,omitempty"`
}

// AnalyzeDrawingResponse carries the extraction result for an uploaded drawing.
type AnalyzeDrawingResponse struct {
	Message    string             `json:"message"`
	Filename   string             `json:"filename"`
	Dimensions AnalysisDimensions `json:"dimensions"`
	Confidence float64            `json:"confidence"`
	Provider   string             `json:"provider"`
}
