// Package router provides HTTP routing, middleware configuration, and server setup for the web application
package router

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cache"
	"github.com/gofiber/fiber/v3/middleware/compress"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/hidrosim/hidrosim/app/dto"
	"github.com/hidrosim/hidrosim/app/handlers"
	"github.com/hidrosim/hidrosim/app/middleware"
	_ "github.com/hidrosim/hidrosim/docs"
	"github.com/hidrosim/hidrosim/utils"
)

// Router interface for HTTP routing
type Router interface {
	SetupRoutes()
	Start(address string) error
	GetApp() *fiber.App
}

// FiberRouter implements Router using Fiber v3
type FiberRouter struct {
	app             *fiber.App
	pricingHandler  handlers.ExcelPricingHandlerInterface
	costHandler     handlers.CostHandlerInterface
	analysisHandler handlers.AnalysisHandlerInterface
}

// NewFiberRouter creates a new Fiber router
func NewFiberRouter(
	pricingHandler handlers.ExcelPricingHandlerInterface,
	costHandler handlers.CostHandlerInterface,
	analysisHandler handlers.AnalysisHandlerInterface,
) Router {
	// Configure Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "HidroSim API",
		ServerHeader: "HidroSim",
		ErrorHandler: errorHandler,
		BodyLimit:    16 * 1024 * 1024, // 16MB, catalogs and drawings
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	return &FiberRouter{
		app:             app,
		pricingHandler:  pricingHandler,
		costHandler:     costHandler,
		analysisHandler: analysisHandler,
	}
}

// SetupRoutes configures all application routes
func (r *FiberRouter) SetupRoutes() {
	log.Println("Setting up routes...")

	// Global middleware
	r.setupMiddleware()

	// API routes
	api := r.app.Group("/api/v1")

	// Health check route (no rate limiting)
	api.Get("/health", r.healthCheck)

	// API documentation route (development only)
	if os.Getenv("APP_ENV") == "development" || os.Getenv("APP_ENV") == "local" {
		api.Get("/docs", r.getAPIDocumentation)
		api.Get("/swagger.json", r.serveSwaggerJSON)
		log.Println("API documentation enabled for development")
	}

	// Apply general rate limiting to all API routes
	api.Use(limiter.New(limiter.Config{
		Max:        600,             // Maximum 600 requests
		Expiration: 1 * time.Minute, // Per minute
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP() // Rate limit by IP
		},
		LimitReached: func(c fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.APIResponse{
				Success: false,
				Message: "Too many requests. Please try again later.",
				Error: dto.ErrorDetail{
					Code: "RATE_LIMIT_EXCEEDED",
				},
			})
		},
		Next: func(c fiber.Ctx) bool {
			// Skip rate limiting for health checks
			return c.Path() == "/api/v1/health"
		},
	}))

	// Excel pricing catalog endpoints
	pricing := api.Group("/excel-pricing")

	// Uploads are expensive; keep them behind a tighter limit
	uploadLimiter := limiter.New(limiter.Config{
		Max:        30,              // Maximum 30 uploads
		Expiration: 1 * time.Minute, // Per minute
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP() // Rate limit by IP
		},
		LimitReached: func(c fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.APIResponse{
				Success: false,
				Message: "Too many uploads. Please try again later.",
				Error: dto.ErrorDetail{
					Code: "RATE_LIMIT_EXCEEDED",
				},
			})
		},
	})

	pricing.Post("/upload", r.pricingHandler.Upload, uploadLimiter)
	pricing.Get("/options", r.pricingHandler.Options)
	pricing.Post("/calculate", r.pricingHandler.Calculate)
	pricing.Post("/update", r.pricingHandler.Update)
	pricing.Post("/option", r.pricingHandler.UpsertOption)
	pricing.Delete("/clear", r.pricingHandler.Clear)
	pricing.Get("/status", r.pricingHandler.Status)
	pricing.Get("/settings", r.pricingHandler.GetSettings)
	pricing.Put("/settings", r.pricingHandler.UpdateSettings)

	// Geometric cost estimation endpoints
	manual := api.Group("/pricing")
	manual.Post("/manual", r.costHandler.ManualCost)
	manual.Get("/parameters", r.costHandler.Parameters)

	// Technical drawing analysis endpoints
	analysis := api.Group("/analysis")
	analysis.Post("/upload", r.analysisHandler.Upload, uploadLimiter)

	// Not found handler
	r.app.Use(r.notFoundHandler)

	log.Println("Routes configured successfully")
}

// SetupMiddleware configures global middleware
func (r *FiberRouter) setupMiddleware() {
	// Request ID middleware - must be first
	r.app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
		Generator: func() string {
			return generateRequestID()
		},
	}))

	// Security headers middleware
	r.app.Use(helmet.New(helmet.Config{
		XSSProtection:             "1; mode=block",
		ContentTypeNosniff:        "nosniff",
		XFrameOptions:             "DENY",
		HSTSMaxAge:                31536000, // 1 year
		HSTSExcludeSubdomains:     false,
		ContentSecurityPolicy:     "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data: https:; font-src 'self' https:; connect-src 'self' https:; frame-ancestors 'none';",
		ReferrerPolicy:            "strict-origin-when-cross-origin",
		CrossOriginEmbedderPolicy: "require-corp",
		CrossOriginOpenerPolicy:   "same-origin",
		CrossOriginResourcePolicy: "cross-origin",
		OriginAgentCluster:        "?1",
		XDNSPrefetchControl:       "off",
		XDownloadOptions:          "noopen",
		XPermittedCrossDomain:     "none",
	}))

	// CORS middleware with production settings
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"https://hidrosim.com",
			"https://api.hidrosim.com",
			"https://app.hidrosim.com",
		},
		AllowMethods: []string{
			"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"X-Requested-With",
			"X-Request-ID",
			"X-API-Key",
			"Cache-Control",
		},
		ExposeHeaders: []string{
			"X-Request-ID",
			"X-Response-Time",
		},
		AllowCredentials: true,
		MaxAge:           utils.CORSMaxAge,
	}))

	// Compression middleware for performance
	r.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
		Next: func(c fiber.Ctx) bool {
			// Skip compression for binary uploads
			contentType := c.Get("Content-Type")
			return contains(contentType, "image/") ||
				contains(contentType, "multipart/")
		},
	}))

	// Cache middleware for static content
	r.app.Use(cache.New(cache.Config{
		Next: func(c fiber.Ctx) bool {
			// Only cache GET requests to specific endpoints
			return c.Method() != "GET" ||
				!contains(c.Path(), "/health") &&
					!contains(c.Path(), "/docs")
		},
		Expiration:          30 * time.Minute,
		DisableCacheControl: false,
	}))

	// Advanced logging middleware
	r.app.Use(logger.New(logger.Config{
		Format:     `{"time":"${time}","pid":"${pid}","request_id":"${locals:requestid}","level":"info","method":"${method}","path":"${path}","protocol":"${protocol}","ip":"${ip}","user_agent":"${ua}","status":${status},"latency":"${latency}","bytes_in":${bytesReceived},"bytes_out":${bytesSent},"referer":"${referer}"}` + "\n",
		TimeFormat: time.RFC3339,
		TimeZone:   "UTC",
		Next: func(c fiber.Ctx) bool {
			// Skip logging for health checks in production
			return c.Path() == "/api/v1/health"
		},
	}))

	// Prometheus metrics middleware
	r.app.Use(middleware.Metrics())

	// Custom security middleware
	r.app.Use(r.securityMiddleware)

	// Recovery middleware with custom error handling
	r.app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e interface{}) {
			// Log panic with request context
			log.Printf(`{"time":"%s","level":"error","request_id":"%s","event":"panic","error":"%v","path":"%s","method":"%s","ip":"%s"}`,
				utils.UTCNow().Format(time.RFC3339),
				c.Locals("requestid"),
				e,
				c.Path(),
				c.Method(),
				c.IP(),
			)
		},
	}))
}

// Custom security middleware
func (r *FiberRouter) securityMiddleware(c fiber.Ctx) error {
	// Add security headers
	c.Set("X-Response-Time", utils.UTCNow().Format(time.RFC3339))
	c.Set("Server", "HidroSim")

	return c.Next()
}

// Start starts the HTTP server
func (r *FiberRouter) Start(address string) error {
	log.Printf("Starting server on %s", address)
	return r.app.Listen(address)
}

// GetApp returns the Fiber app instance
func (r *FiberRouter) GetApp() *fiber.App {
	return r.app
}

// Health check endpoint
func (r *FiberRouter) healthCheck(c fiber.Ctx) error {
	return c.JSON(dto.APIResponse{
		Success: true,
		Message: "Service is healthy",
		Data: fiber.Map{
			"status":    "ok",
			"timestamp": utils.UTCNow().Unix(),
			"version":   "1.0.0",
			"service":   "hidrosim-api",
		},
	})
}

// API documentation endpoint
func (r *FiberRouter) getAPIDocumentation(c fiber.Ctx) error {
	docs := GetRouteDocumentation()
	return c.JSON(dto.APIResponse{
		Success: true,
		Message: "API documentation retrieved successfully",
		Data: fiber.Map{
			"title":       "HidroSim API Documentation",
			"version":     "1.0.0",
			"description": "Hydraulic cylinder cost estimation API",
			"endpoints":   docs,
		},
	})
}

// Serve Swagger JSON specification
func (r *FiberRouter) serveSwaggerJSON(c fiber.Ctx) error {
	// Read the generated swagger.json file
	swaggerData, err := os.ReadFile("docs/swagger.json")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.APIResponse{
			Success: false,
			Message: "Failed to load Swagger documentation",
			Error: dto.ErrorDetail{
				Code: "SWAGGER_LOAD_ERROR",
			},
		})
	}

	c.Set("Content-Type", "application/json")
	return c.Send(swaggerData)
}

// Not found handler
func (r *FiberRouter) notFoundHandler(c fiber.Ctx) error {
	requestID := c.Locals("requestid")

	return c.Status(fiber.StatusNotFound).JSON(dto.APIResponse{
		Success: false,
		Message: "The requested resource was not found",
		Error: dto.ErrorDetail{
			Code: "NOT_FOUND",
			Details: fiber.Map{
				"path":       c.Path(),
				"method":     c.Method(),
				"request_id": requestID,
			},
		},
	})
}

// Global error handler
func errorHandler(c fiber.Ctx, err error) error {
	// Default error code
	code := fiber.StatusInternalServerError

	// Retrieve the custom status code if it's a fiber.*Error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	// Log the error
	log.Printf("Error %d: %v", code, err)

	// Get RequestID for tracing
	requestID := c.Locals("requestid")

	// Return JSON error response
	return c.Status(code).JSON(dto.APIResponse{
		Success: false,
		Message: "An internal server error occurred",
		Error: dto.ErrorDetail{
			Code: "INTERNAL_ERROR",
			Details: fiber.Map{
				"timestamp":  utils.UTCNow().Unix(),
				"request_id": requestID,
			},
		},
	})
}

// Helper functions

// generateRequestID creates a unique request ID
func generateRequestID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// contains checks if a string contains a substring
func contains(str, substr string) bool {
	return strings.Contains(str, substr)
}

// GetRouteDocumentation returns API documentation
func GetRouteDocumentation() []map[string]any {
	return []map[string]any{
		{
			"method":      "POST",
			"path":        "/api/v1/excel-pricing/upload",
			"description": "Upload an Excel price catalog (.xlsx/.xls); fully replaces the active pricing table",
			"parameters": map[string]any{
				"file": "file (required) - Excel catalog in multipart form data",
			},
		},
		{
			"method":      "GET",
			"path":        "/api/v1/excel-pricing/options",
			"description": "Get the full active pricing table",
			"parameters":  map[string]any{},
		},
		{
			"method":      "POST",
			"path":        "/api/v1/excel-pricing/calculate",
			"description": "Calculate an itemized price for the given selections",
			"parameters": map[string]any{
				"selections":           "object (required) - Map of category key to selected value",
				"stroke_mm":            "number (optional) - Stroke length in millimeters",
				"additional_length_mm": "number (optional) - Extra length added to the stroke",
				"manual_prices":        "object (optional) - Map of \"key:value\" to overriding unit price",
			},
		},
		{
			"method":      "POST",
			"path":        "/api/v1/excel-pricing/update",
			"description": "Replace the pricing table with manually edited categories",
			"parameters": map[string]any{
				"columns":     "array (required) - Full category list",
				"description": "string (optional) - History entry description",
			},
		},
		{
			"method":      "POST",
			"path":        "/api/v1/excel-pricing/option",
			"description": "Add or update a single option of a category",
			"parameters": map[string]any{
				"category_key": "string (required) - Machine key of the category",
				"value":        "string (required) - Option value",
				"price":        "number (optional) - Unit price",
				"discount":     "number (optional) - Discount percent 0-100",
				"offset":       "number (optional) - Per-option stroke offset in millimeters",
			},
		},
		{
			"method":      "DELETE",
			"path":        "/api/v1/excel-pricing/clear",
			"description": "Delete the active pricing table",
			"parameters":  map[string]any{},
		},
		{
			"method":      "GET",
			"path":        "/api/v1/excel-pricing/status",
			"description": "Report whether a catalog is loaded",
			"parameters":  map[string]any{},
		},
		{
			"method":      "GET",
			"path":        "/api/v1/excel-pricing/settings",
			"description": "Get the default stroke offsets",
			"parameters":  map[string]any{},
		},
		{
			"method":      "PUT",
			"path":        "/api/v1/excel-pricing/settings",
			"description": "Update default stroke offsets; loaded catalog defaults are rewritten",
			"parameters": map[string]any{
				"boru_offset_mm": "number (optional) - Tube family default offset",
				"mil_offset_mm":  "number (optional) - Rod family default offset",
			},
		},
		{
			"method":      "POST",
			"path":        "/api/v1/pricing/manual",
			"description": "Estimate manufacturing cost from manually entered geometry",
			"parameters": map[string]any{
				"bore_diameter":    "number (required) - Bore diameter in millimeters",
				"rod_diameter":     "number (required) - Rod diameter in millimeters",
				"stroke_length":    "number (required) - Stroke length in millimeters",
				"wall_thickness":   "number (optional) - Wall thickness; derived from pressure when absent",
				"working_pressure": "number (optional) - Working pressure in bar",
				"material":         "string (required) - steel|stainless|aluminum",
				"cylinder_type":    "string (required) - single_acting|double_acting|telescopic",
				"mounting":         "string (required) - flange|clevis|trunnion|foot|tie_rod",
			},
		},
		{
			"method":      "GET",
			"path":        "/api/v1/pricing/parameters",
			"description": "Get the cost engine rates and multipliers",
			"parameters":  map[string]any{},
		},
		{
			"method":      "POST",
			"path":        "/api/v1/analysis/upload",
			"description": "Extract cylinder dimensions from a technical drawing",
			"parameters": map[string]any{
				"file": "file (required) - Drawing (png/jpg/webp/pdf) in multipart form data",
			},
		},
		{
			"method":      "GET",
			"path":        "/api/v1/health",
			"description": "Health check endpoint",
			"parameters":  map[string]any{},
		},
	}
}
