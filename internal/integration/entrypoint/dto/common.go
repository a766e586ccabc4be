// Package dto defines data transfer objects for API requests and responses.
package dto

// ErrorResponse is the shape of every error body the API returns.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}
