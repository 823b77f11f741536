// Package services provides external service integrations like technical drawing analysis
package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hidrosim/hidrosim/config"
)

// DrawingAnalyzer extracts cylinder dimensions from technical drawings.
// The extraction itself runs in a remote service; this is only the wire
// client.
type DrawingAnalyzer interface {
	Analyze(ctx context.Context, fileBytes []byte, filename string) (*DrawingAnalysisResult, error)
}

// DrawingAnalysisResult is the extraction outcome.
type DrawingAnalysisResult struct {
	BoreDiameter  float64 `json:"bore_diameter"`
	RodDiameter   float64 `json:"rod_diameter"`
	StrokeLength  float64 `json:"stroke_length"`
	WallThickness float64 `json:"wall_thickness,omitempty"`
	Confidence    float64 `json:"confidence"`
	Provider      string  `json:"provider"`
}

// DrawingAnalyzerImpl implements DrawingAnalyzer against the remote API
type DrawingAnalyzerImpl struct {
	config *config.AnalyzerConfig
	client *http.Client
}

// analyzeRequest is the request payload for the analyzer API
type analyzeRequest struct {
	ImageBase64 string `json:"image_base64"`
	FileName    string `json:"file_name"`
}

// analyzeResponse is the analyzer API response envelope
type analyzeResponse struct {
	Success    bool                   `json:"success"`
	Dimensions *DrawingAnalysisResult `json:"dimensions"`
	Error      string                 `json:"error,omitempty"`
}

// NewDrawingAnalyzer creates a new drawing analyzer client
func NewDrawingAnalyzer(cfg *config.AnalyzerConfig) DrawingAnalyzer {
	return &DrawingAnalyzerImpl{
		config: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Analyze sends the drawing to the remote analyzer and returns the
// extracted dimensions.
func (s *DrawingAnalyzerImpl) Analyze(ctx context.Context, fileBytes []byte, filename string) (*DrawingAnalysisResult, error) {
	payload := analyzeRequest{
		ImageBase64: base64.StdEncoding.EncodeToString(fileBytes),
		FileName:    filename,
	}

	requestBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal analyze request: %w", err)
	}

	url := fmt.Sprintf("%s/analyze", s.config.BaseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.config.APIKey != "" {
		req.Header.Set("x-api-key", s.config.APIKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send analyze request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("analyzer returned status %d", resp.StatusCode)
	}

	var result analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode analyze response: %w", err)
	}
	if !result.Success || result.Dimensions == nil {
		return nil, fmt.Errorf("drawing analysis failed: %s", result.Error)
	}

	result.Dimensions.Provider = s.config.Provider
	return result.Dimensions, nil
}

// MockDrawingAnalyzer implements DrawingAnalyzer for testing and local
// development.
type MockDrawingAnalyzer struct {
	Result DrawingAnalysisResult
	Err    error
	Calls  []string
}

// NewMockDrawingAnalyzer creates a mock analyzer with plausible defaults
func NewMockDrawingAnalyzer() *MockDrawingAnalyzer {
	return &MockDrawingAnalyzer{
		Result: DrawingAnalysisResult{
			BoreDiameter: 80,
			RodDiameter:  45,
			StrokeLength: 500,
			Confidence:   0.9,
			Provider:     "mock",
		},
	}
}

// Analyze records the call and returns the configured result
func (m *MockDrawingAnalyzer) Analyze(ctx context.Context, fileBytes []byte, filename string) (*DrawingAnalysisResult, error) {
	m.Calls = append(m.Calls, filename)
	if m.Err != nil {
		return nil, m.Err
	}
	result := m.Result
	return &result, nil
}
