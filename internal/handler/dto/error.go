// Package dto provides Data Transfer Objects for API requests and responses.
package dto

// ErrorResponse represents an API error. Details maps request fields to
// their validation messages.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code"`
	Details map[string]string `json:"details,omitempty"`
}

// MessageResponse is a plain informational body.
type MessageResponse struct {
	Message string `json:"message"`
}
