package router

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPricingHandler struct{}

func (stubPricingHandler) Upload(c fiber.Ctx) error         { return c.SendStatus(fiber.StatusOK) }
func (stubPricingHandler) Options(c fiber.Ctx) error        { return c.SendStatus(fiber.StatusOK) }
func (stubPricingHandler) Calculate(c fiber.Ctx) error      { return c.SendStatus(fiber.StatusOK) }
func (stubPricingHandler) Update(c fiber.Ctx) error         { return c.SendStatus(fiber.StatusOK) }
func (stubPricingHandler) UpsertOption(c fiber.Ctx) error   { return c.SendStatus(fiber.StatusOK) }
func (stubPricingHandler) Clear(c fiber.Ctx) error          { return c.SendStatus(fiber.StatusOK) }
func (stubPricingHandler) Status(c fiber.Ctx) error         { return c.SendStatus(fiber.StatusOK) }
func (stubPricingHandler) GetSettings(c fiber.Ctx) error    { return c.SendStatus(fiber.StatusOK) }
func (stubPricingHandler) UpdateSettings(c fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }

type stubCostHandler struct{}

func (stubCostHandler) ManualCost(c fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }
func (stubCostHandler) Parameters(c fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }

type stubAnalysisHandler struct{}

func (stubAnalysisHandler) Upload(c fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }

func newTestRouter() Router {
	return NewFiberRouter(stubPricingHandler{}, stubCostHandler{}, stubAnalysisHandler{})
}

func TestRouterServesHealthCheck(t *testing.T) {
	r := newTestRouter()
	r.SetupRoutes()

	resp, err := r.GetApp().Test(httptest.NewRequest("GET", "/api/v1/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRouterRoutesPricingEndpoints(t *testing.T) {
	r := newTestRouter()
	r.SetupRoutes()
	app := r.GetApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/excel-pricing/status", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/pricing/parameters", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRouterNotFound(t *testing.T) {
	r := newTestRouter()
	r.SetupRoutes()

	resp, err := r.GetApp().Test(httptest.NewRequest("GET", "/api/v1/does-not-exist", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
