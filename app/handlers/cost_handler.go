package handlers

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/hidrosim/hidrosim/app/dto"
	businessflow "github.com/hidrosim/hidrosim/business_flow"
	"github.com/hidrosim/hidrosim/utils"
)

// CostHandlerInterface defines the contract for geometric cost handlers.
type CostHandlerInterface interface {
	ManualCost(c fiber.Ctx) error
	Parameters(c fiber.Ctx) error
}

// CostHandler handles geometric cost estimation requests.
type CostHandler struct {
	flow      businessflow.CostBreakdownFlow
	validator *validator.Validate
}

// NewCostHandler creates a new cost handler.
func NewCostHandler(flow businessflow.CostBreakdownFlow) *CostHandler {
	return &CostHandler{
		flow:      flow,
		validator: validator.New(),
	}
}

func (h *CostHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *CostHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ManualCost estimates cost from manually entered geometry.
// @Summary Manual cost estimate
// @Description Estimate manufacturing cost from cylinder dimensions, material, type and mounting
// @Tags Pricing
// @Accept json
// @Produce json
// @Param request body dto.ManualCostRequest true "Geometry payload"
// @Success 200 {object} dto.APIResponse{data=dto.ManualCostResponse} "Estimated"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/pricing/manual [post]
func (h *CostHandler) ManualCost(c fiber.Ctx) error {
	var req dto.ManualCostRequest
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
	res, err := h.flow.Estimate(h.createRequestContext(c, "/api/v1/pricing/manual"), &req, metadata)
	if err != nil {
		if be, ok := err.(*businessflow.BusinessError); ok {
			switch be.Code {
			case "INVALID_REQUEST", "VALIDATION_ERROR":
				return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request", be.Code, be.Error())
			}
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to estimate cost", "COST_ESTIMATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Cost estimate calculated", res)
}

// Parameters exposes the cost engine rates.
// @Summary Pricing parameters
// @Description Get the rates and multipliers the cost engine runs with
// @Tags Pricing
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.PricingParametersResponse} "Parameters"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/pricing/parameters [get]
func (h *CostHandler) Parameters(c fiber.Ctx) error {
	res, err := h.flow.Parameters(h.createRequestContext(c, "/api/v1/pricing/parameters"))
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to get pricing parameters", "PRICING_PARAMETERS_FAILED", nil)
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Pricing parameters retrieved", res)
}

func (h *CostHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return h.createRequestContextWithTimeout(c, endpoint, utils.DefaultHandlerTimeout)
}

func (h *CostHandler) createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.TimeoutKey, timeout)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)
	return ctx
}
