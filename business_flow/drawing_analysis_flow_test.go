package businessflow

import (
	"context"
	"errors"
	"testing"

	"github.com/hidrosim/hidrosim/app/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeDrawingReturnsDimensions(t *testing.T) {
	analyzer := services.NewMockDrawingAnalyzer()
	flow := NewDrawingAnalysisFlow(analyzer)

	out, err := flow.AnalyzeDrawing(context.Background(), []byte{0x89, 0x50, 0x4e, 0x47}, "cizim.png", testMetadata())
	require.NoError(t, err)

	assert.Equal(t, "cizim.png", out.Filename)
	assert.InDelta(t, 80.0, out.Dimensions.BoreDiameter, 1e-9)
	assert.InDelta(t, 45.0, out.Dimensions.RodDiameter, 1e-9)
	assert.InDelta(t, 500.0, out.Dimensions.StrokeLength, 1e-9)
	assert.Equal(t, "mock", out.Provider)
	assert.Equal(t, []string{"cizim.png"}, analyzer.Calls)
}

func TestAnalyzeDrawingProviderFailure(t *testing.T) {
	analyzer := services.NewMockDrawingAnalyzer()
	analyzer.Err = errors.New("provider timeout")
	flow := NewDrawingAnalysisFlow(analyzer)

	_, err := flow.AnalyzeDrawing(context.Background(), []byte{1, 2, 3}, "cizim.png", testMetadata())
	require.Error(t, err)

	var bizErr *BusinessError
	require.ErrorAs(t, err, &bizErr)
	assert.Equal(t, "ANALYSIS_FAILED", bizErr.Code)
}

func TestAnalyzeDrawingValidation(t *testing.T) {
	flow := NewDrawingAnalysisFlow(services.NewMockDrawingAnalyzer())
	ctx := context.Background()

	_, err := flow.AnalyzeDrawing(ctx, nil, "cizim.png", testMetadata())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyUpload)

	_, err = flow.AnalyzeDrawing(ctx, []byte{1}, "", testMetadata())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFilenameRequired)
}
