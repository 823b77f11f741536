package utils

import (
	"time"
)

// Pricing constants
const (
	// TRYCurrency is the currency code reported on every price result
	TRYCurrency = "TRY"

	// NoneSelectionSentinel marks a dropdown selection that must not be priced
	NoneSelectionSentinel = "YOK"

	// DefaultBoruOffsetMM is the default stroke offset for tube-family categories (mm)
	DefaultBoruOffsetMM = 120

	// DefaultMilOffsetMM is the default stroke offset for rod-family categories (mm)
	DefaultMilOffsetMM = 150

	// PricingHistoryLimit caps the update history kept on the pricing table
	PricingHistoryLimit = 50
)

// Cache keys
const (
	// PricingOptionsCacheKey stores the serialized options payload
	PricingOptionsCacheKey = "pricing:options"
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)

// Request handling constants
const (
	// DefaultHandlerTimeout bounds a single request's business flow execution
	DefaultHandlerTimeout = 30 * time.Second
)
