package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"

	// Question pipeline errors
	CodeRemoteService     ErrorCode = "REMOTE_SERVICE_ERROR"
	CodeMalformedResponse ErrorCode = "MALFORMED_RESPONSE"
	CodeDuplicateQuestion ErrorCode = "DUPLICATE_QUESTION"
	CodePersistence       ErrorCode = "PERSISTENCE_ERROR"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

// NewRemoteServiceError wraps a non-success reply from the model endpoint.
// The HTTP status and the provider-reported message travel in Context so the
// caller can log them without parsing the message string.
func NewRemoteServiceError(status int, providerMessage string, cause error) *DomainError {
	err := NewError(CodeRemoteService, "Model endpoint returned an error", cause)
	err.Context = map[string]interface{}{
		"status":           status,
		"provider_message": providerMessage,
	}
	return err
}

// NewMalformedResponseError signals that the model reply contained no usable
// question: no JSON object was found, or a required field is missing.
func NewMalformedResponseError(message string, cause error) *DomainError {
	return NewError(CodeMalformedResponse, message, cause)
}

// NewDuplicateQuestionError is an internal signal only; it triggers
// regeneration and never reaches API callers.
func NewDuplicateQuestionError(questionText string) *DomainError {
	err := NewError(CodeDuplicateQuestion, "Generated question already exists", nil)
	err.Context = map[string]interface{}{"question": questionText}
	return err
}

func NewPersistenceError(message string, cause error) *DomainError {
	return NewError(CodePersistence, message, cause)
}
