// Package dto defines the request and response payloads of the pricing API.
package dto

// APIResponse is the envelope every endpoint returns. Data carries the
// endpoint-specific payload on success, Error is populated on failure.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   any    `json:"error,omitempty"`
}

// ErrorDetail identifies a failure by machine-readable code with
// optional endpoint-specific details.
type ErrorDetail struct {
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}
