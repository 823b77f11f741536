// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/hidrosim/hidrosim/app/dto"
	businessflow "github.com/hidrosim/hidrosim/business_flow"
	"github.com/hidrosim/hidrosim/utils"
)

// ExcelPricingHandlerInterface defines the contract for pricing catalog handlers.
type ExcelPricingHandlerInterface interface {
	Upload(c fiber.Ctx) error
	Options(c fiber.Ctx) error
	Calculate(c fiber.Ctx) error
	Update(c fiber.Ctx) error
	UpsertOption(c fiber.Ctx) error
	Clear(c fiber.Ctx) error
	Status(c fiber.Ctx) error
	GetSettings(c fiber.Ctx) error
	UpdateSettings(c fiber.Ctx) error
}

// ExcelPricingHandler handles pricing catalog requests.
type ExcelPricingHandler struct {
	ingestFlow   businessflow.ExcelIngestFlow
	tableFlow    businessflow.PricingTableFlow
	calcFlow     businessflow.PriceCalculationFlow
	settingsFlow businessflow.FormulaSettingsFlow
	validator    *validator.Validate
}

// NewExcelPricingHandler creates a new excel pricing handler.
func NewExcelPricingHandler(
	ingestFlow businessflow.ExcelIngestFlow,
	tableFlow businessflow.PricingTableFlow,
	calcFlow businessflow.PriceCalculationFlow,
	settingsFlow businessflow.FormulaSettingsFlow,
) *ExcelPricingHandler {
	return &ExcelPricingHandler{
		ingestFlow:   ingestFlow,
		tableFlow:    tableFlow,
		calcFlow:     calcFlow,
		settingsFlow: settingsFlow,
		validator:    validator.New(),
	}
}

func (h *ExcelPricingHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *ExcelPricingHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Upload ingests an Excel price catalog.
// @Summary Upload price catalog
// @Description Upload an Excel catalog (.xlsx/.xls) replacing the active pricing table
// @Tags Excel Pricing
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Excel catalog"
// @Success 200 {object} dto.APIResponse{data=dto.UploadPricingResponse} "Ingested"
// @Failure 400 {object} dto.APIResponse "Validation or parse error"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/excel-pricing/upload [post]
func (h *ExcelPricingHandler) Upload(c fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil || fileHeader == nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "file is required", "INVALID_FILE", nil)
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != ".xlsx" && ext != ".xls" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Only .xlsx and .xls files are accepted", "VALIDATION_ERROR", fileHeader.Filename)
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
	res, err := h.ingestFlow.Ingest(h.createRequestContext(c, "/api/v1/excel-pricing/upload"), fileBytes, fileHeader.Filename, metadata)
	if err != nil {
		if be, ok := err.(*businessflow.BusinessError); ok {
			switch be.Code {
			case "VALIDATION_ERROR":
				return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid upload", be.Code, be.Error())
			case "EXCEL_PARSE_FAILED", "NO_CATEGORIES_FOUND":
				return h.ErrorResponse(c, fiber.StatusBadRequest, "Catalog could not be parsed", be.Code, be.Error())
			}
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to ingest catalog", "EXCEL_INGEST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Excel catalog ingested successfully", res)
}

// Options returns the active pricing table.
// @Summary Get pricing options
// @Description Get the full active pricing table with all categories and options
// @Tags Excel Pricing
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.PricingOptionsResponse} "Retrieved"
// @Failure 404 {object} dto.APIResponse "No pricing table loaded"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/excel-pricing/options [get]
func (h *ExcelPricingHandler) Options(c fiber.Ctx) error {
	res, err := h.tableFlow.Options(h.createRequestContext(c, "/api/v1/excel-pricing/options"))
	if err != nil {
		if be, ok := err.(*businessflow.BusinessError); ok {
			if be.Code == "NO_PRICING_TABLE" {
				return h.ErrorResponse(c, fiber.StatusNotFound, "No pricing table is loaded", be.Code, be.Error())
			}
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to get pricing options", "PRICING_OPTIONS_FAILED", nil)
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Pricing options retrieved", res)
}

// Calculate evaluates selections against the active pricing table.
// @Summary Calculate price
// @Description Calculate an itemized price for the given selections and stroke length
// @Tags Excel Pricing
// @Accept json
// @Produce json
// @Param request body dto.CalculatePriceRequest true "Calculation payload"
// @Success 200 {object} dto.APIResponse{data=dto.CalculatePriceResponse} "Calculated"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 404 {object} dto.APIResponse "No pricing table loaded"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/excel-pricing/calculate [post]
func (h *ExcelPricingHandler) Calculate(c fiber.Ctx) error {
	var req dto.CalculatePriceRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, e := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(e))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	res, err := h.calcFlow.Calculate(h.createRequestContext(c, "/api/v1/excel-pricing/calculate"), &req, metadata)
	if err != nil {
		if be, ok := err.(*businessflow.BusinessError); ok {
			switch be.Code {
			case "INVALID_REQUEST", "VALIDATION_ERROR":
				return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request", be.Code, be.Error())
			case "NO_PRICING_TABLE":
				return h.ErrorResponse(c, fiber.StatusNotFound, "No pricing table is loaded", be.Code, be.Error())
			}
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to calculate price", "PRICE_CALCULATION_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Price calculated", res)
}

// Update fully replaces the pricing table with manually edited columns.
// @Summary Replace pricing table
// @Description Replace the active pricing table with manually edited categories
// @Tags Excel Pricing
// @Accept json
// @Produce json
// @Param request body dto.UpdatePricingRequest true "Replacement payload"
// @Success 200 {object} dto.APIResponse{data=dto.UpdatePricingResponse} "Updated"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/excel-pricing/update [post]
func (h *ExcelPricingHandler) Update(c fiber.Ctx) error {
	var req dto.UpdatePricingRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, e := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(e))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	res, err := h.tableFlow.Update(h.createRequestContext(c, "/api/v1/excel-pricing/update"), &req, metadata)
	if err != nil {
		if be, ok := err.(*businessflow.BusinessError); ok {
			switch be.Code {
			case "INVALID_REQUEST", "NO_CATEGORIES_FOUND":
				return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request", be.Code, be.Error())
			}
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update pricing table", "PRICING_UPDATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Pricing table updated successfully", res)
}

// UpsertOption adds or updates one option of a category.
// @Summary Upsert pricing option
// @Description Add a new option to a category or update an existing one in place
// @Tags Excel Pricing
// @Accept json
// @Produce json
// @Param request body dto.UpsertPricingOptionRequest true "Option payload"
// @Success 200 {object} dto.APIResponse{data=dto.UpsertPricingOptionResponse} "Saved"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 404 {object} dto.APIResponse "Category or table not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/excel-pricing/option [post]
func (h *ExcelPricingHandler) UpsertOption(c fiber.Ctx) error {
	var req dto.UpsertPricingOptionRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, e := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(e))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	res, err := h.tableFlow.UpsertOption(h.createRequestContext(c, "/api/v1/excel-pricing/option"), &req, metadata)
	if err != nil {
		if be, ok := err.(*businessflow.BusinessError); ok {
			switch be.Code {
			case "INVALID_REQUEST", "VALIDATION_ERROR":
				return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request", be.Code, be.Error())
			case "NO_PRICING_TABLE":
				return h.ErrorResponse(c, fiber.StatusNotFound, "No pricing table is loaded", be.Code, be.Error())
			case "CATEGORY_NOT_FOUND":
				return h.ErrorResponse(c, fiber.StatusNotFound, "Category not found", be.Code, be.Error())
			}
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save pricing option", "PRICING_OPTION_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Pricing option saved successfully", res)
}

// Clear removes the active pricing table.
// @Summary Clear pricing table
// @Description Delete the active pricing table entirely
// @Tags Excel Pricing
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ClearPricingResponse} "Cleared"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/excel-pricing/clear [delete]
func (h *ExcelPricingHandler) Clear(c fiber.Ctx) error {
	res, err := h.tableFlow.Clear(h.createRequestContext(c, "/api/v1/excel-pricing/clear"))
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to clear pricing table", "PRICING_CLEAR_FAILED", nil)
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Pricing table cleared", res)
}

// Status reports whether a pricing table is loaded.
// @Summary Pricing table status
// @Description Report whether a catalog is loaded and summarize its categories
// @Tags Excel Pricing
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.PricingStatusResponse} "Status"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/excel-pricing/status [get]
func (h *ExcelPricingHandler) Status(c fiber.Ctx) error {
	res, err := h.tableFlow.Status(h.createRequestContext(c, "/api/v1/excel-pricing/status"))
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to get pricing status", "PRICING_STATUS_FAILED", nil)
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Pricing status retrieved", res)
}

// GetSettings returns the formula settings.
// @Summary Get formula settings
// @Description Get the default stroke offsets for meter-based categories
// @Tags Excel Pricing
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.FormulaSettingsResponse} "Retrieved"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/excel-pricing/settings [get]
func (h *ExcelPricingHandler) GetSettings(c fiber.Ctx) error {
	res, err := h.settingsFlow.Get(h.createRequestContext(c, "/api/v1/excel-pricing/settings"))
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to get formula settings", "SETTINGS_GET_FAILED", nil)
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Formula settings retrieved", res)
}

// UpdateSettings updates the formula settings and reapplies defaults.
// @Summary Update formula settings
// @Description Update default stroke offsets; loaded catalog defaults are rewritten synchronously
// @Tags Excel Pricing
// @Accept json
// @Produce json
// @Param request body dto.UpdateFormulaSettingsRequest true "Settings payload"
// @Success 200 {object} dto.APIResponse{data=dto.FormulaSettingsResponse} "Updated"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/excel-pricing/settings [put]
func (h *ExcelPricingHandler) UpdateSettings(c fiber.Ctx) error {
	var req dto.UpdateFormulaSettingsRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, e := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(e))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	res, err := h.settingsFlow.Update(h.createRequestContext(c, "/api/v1/excel-pricing/settings"), &req, metadata)
	if err != nil {
		if be, ok := err.(*businessflow.BusinessError); ok {
			switch be.Code {
			case "INVALID_REQUEST", "VALIDATION_ERROR":
				return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request", be.Code, be.Error())
			}
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update formula settings", "SETTINGS_UPDATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Formula settings updated successfully", res)
}

func (h *ExcelPricingHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return h.createRequestContextWithTimeout(c, endpoint, utils.DefaultHandlerTimeout)
}

func (h *ExcelPricingHandler) createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.TimeoutKey, timeout)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)
	return ctx
}
