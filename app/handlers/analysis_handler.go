package handlers

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/hidrosim/hidrosim/app/dto"
	businessflow "github.com/hidrosim/hidrosim/business_flow"
	"github.com/hidrosim/hidrosim/utils"
)

// Accepted technical drawing extensions.
var drawingExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".pdf":  true,
}

// AnalysisHandlerInterface defines the contract for drawing analysis handlers.
type AnalysisHandlerInterface interface {
	Upload(c fiber.Ctx) error
}

// AnalysisHandler handles technical drawing analysis requests.
type AnalysisHandler struct {
	flow businessflow.DrawingAnalysisFlow
}

// NewAnalysisHandler creates a new analysis handler.
func NewAnalysisHandler(flow businessflow.DrawingAnalysisFlow) *AnalysisHandler {
	return &AnalysisHandler{
		flow: flow,
	}
}

func (h *AnalysisHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *AnalysisHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Upload analyzes an uploaded technical drawing.
// @Summary Analyze technical drawing
// @Description Upload a technical drawing and extract cylinder dimensions via the remote analyzer
// @Tags Analysis
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Technical drawing (png/jpg/webp/pdf)"
// @Success 200 {object} dto.APIResponse{data=dto.AnalyzeDrawingResponse} "Analyzed"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 502 {object} dto.APIResponse "Analyzer failure"
// @Router /api/v1/analysis/upload [post]
func (h *AnalysisHandler) Upload(c fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil || fileHeader == nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "file is required", "INVALID_FILE", nil)
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !drawingExtensions[ext] {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Unsupported drawing type", "VALIDATION_ERROR", fileHeader.Filename)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "invalid file", "INVALID_FILE", err.Error())
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "failed to read file", "INVALID_FILE", err.Error())
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	res, err := h.flow.AnalyzeDrawing(h.createRequestContext(c, "/api/v1/analysis/upload"), fileBytes, fileHeader.Filename, metadata)
	if err != nil {
		if be, ok := err.(*businessflow.BusinessError); ok {
			switch be.Code {
			case "VALIDATION_ERROR":
				return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid upload", be.Code, be.Error())
			case "ANALYSIS_FAILED":
				return h.ErrorResponse(c, fiber.StatusBadGateway, "Drawing analysis failed", be.Code, be.Error())
			}
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to analyze drawing", "ANALYSIS_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Drawing analyzed successfully", res)
}

func (h *AnalysisHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return h.createRequestContextWithTimeout(c, endpoint, utils.DefaultHandlerTimeout)
}

func (h *AnalysisHandler) createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.TimeoutKey, timeout)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)
	return ctx
}
