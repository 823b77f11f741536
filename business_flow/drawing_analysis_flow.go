package businessflow

import (
	"context"

	"github.com/hidrosim/hidrosim/app/dto"
	"github.com/hidrosim/hidrosim/app/services"
)

// DrawingAnalysisFlow extracts cylinder dimensions from an uploaded
// technical drawing via the remote analyzer.
type DrawingAnalysisFlow interface {
	AnalyzeDrawing(ctx context.Context, fileBytes []byte, filename string, metadata *ClientMetadata) (*dto.AnalyzeDrawingResponse, error)
}

// DrawingAnalysisFlowImpl implements DrawingAnalysisFlow.
type DrawingAnalysisFlowImpl struct {
	analyzer services.DrawingAnalyzer
}

// NewDrawingAnalysisFlow creates a new drawing analysis flow.
func NewDrawingAnalysisFlow(analyzer services.DrawingAnalyzer) DrawingAnalysisFlow {
	return &DrawingAnalysisFlowImpl{
		analyzer: analyzer,
	}
}

func (f *DrawingAnalysisFlowImpl) AnalyzeDrawing(ctx context.Context, fileBytes []byte, filename string, metadata *ClientMetadata) (*dto.AnalyzeDrawingResponse, error) {
	if len(fileBytes) == 0 {
		return nil, NewBusinessError("VALIDATION_ERROR", "Uploaded file is empty", ErrEmptyUpload)
	}
	if filename == "" {
		return nil, NewBusinessError("VALIDATION_ERROR", "Filename is required", ErrFilenameRequired)
	}

	result, err := f.analyzer.Analyze(ctx, fileBytes, filename)
	if err != nil {
		return nil, NewBusinessError("ANALYSIS_FAILED", "Drawing analysis failed", err)
	}

	return &dto.AnalyzeDrawingResponse{
		Message:  "Drawing analyzed successfully",
		Filename: filename,
		Dimensions: dto.AnalysisDimensions{
			BoreDiameter:  result.BoreDiameter,
			RodDiameter:   result.RodDiameter,
			StrokeLength:  result.StrokeLength,
			WallThickness: result.WallThickness,
		},
		Confidence: result.Confidence,
		Provider:   result.Provider,
	}, nil
}
