// Package error defines domain-specific errors for the Ledgerly backend.
package error

import "errors"

// Assistant domain errors.
var (
	// ErrAssistantUnavailable is returned when the AI service cannot be reached or fails.
	ErrAssistantUnavailable = errors.New("assistant unavailable")

	// ErrReceiptParseFailed is returned when no usable receipt data could be
	// extracted from the assistant's reply.
	ErrReceiptParseFailed = errors.New("failed to parse receipt")

	// ErrEmptyMessage is returned when a chat message has no content.
	ErrEmptyMessage = errors.New("message is required")

	// ErrMissingReceiptImage is returned when a receipt request carries no image.
	ErrMissingReceiptImage = errors.New("receipt image is required")
)

// ReceiptParseUserMessage is the message shown to users when receipt
// parsing fails, inviting manual entry instead.
const ReceiptParseUserMessage = "Failed to parse receipt. Please try again or enter the transaction manually."

// AssistantErrorCode defines error codes for assistant errors.
// Format: AST-XXYYYY where XX is category and YYYY is specific error.
type AssistantErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeEmptyMessage        AssistantErrorCode = "AST-010001"
	ErrCodeMissingReceiptImage AssistantErrorCode = "AST-010002"

	// Upstream errors (02XXXX)
	ErrCodeAssistantUnavailable AssistantErrorCode = "AST-020001"
	ErrCodeReceiptParseFailed   AssistantErrorCode = "AST-020002"
)

// AssistantError represents an assistant error with code and message.
type AssistantError struct {
	Code    AssistantErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AssistantError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AssistantError) Unwrap() error {
	return e.Err
}

// NewAssistantError creates a new AssistantError with the given code and message.
func NewAssistantError(code AssistantErrorCode, message string, err error) *AssistantError {
	return &AssistantError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
