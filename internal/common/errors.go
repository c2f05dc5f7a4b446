// Package common provides shared utilities and types used across the application.
package common

import (
	"context"
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Input errors.
	ErrEmptyInput = errors.New("empty or unreadable input text")

	// Extraction errors.
	ErrShopUnresolved      = errors.New("shop could not be identified")
	ErrTemplateApplication = errors.New("template application failed")

	// AI fallback errors.
	ErrAIUnavailable    = errors.New("ai extraction service unavailable")
	ErrAIResponseFormat = errors.New("malformed ai extraction response")
	ErrAIRateLimit      = errors.New("ai rate limit exceeded")

	// Store errors.
	ErrNotFound    = errors.New("not found")
	ErrPersistence = errors.New("persistence failure")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsRetryable determines if an error should trigger a retry. Only transient
// AI transport conditions qualify; extraction and store failures do not.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrAIRateLimit) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}

	return false
}
