// Package errors provides custom error types for the stocksync system.
// These errors enable programmatic error checking at the command boundary
// while the sync core propagates them untouched.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is and As re-export the standard library helpers so callers only need one import.
var (
	Is = errors.Is
	As = errors.As
)

// Common sentinel errors for the stocksync system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrCredentialsRequired indicates that a marketplace token or client id is missing
	ErrCredentialsRequired = errors.New("credentials required")

	// ErrMarketplaceUnavailable indicates that a marketplace API answered with a 5xx
	ErrMarketplaceUnavailable = errors.New("marketplace unavailable")

	// ErrRateLimited indicates that the API rate limit has been exceeded
	ErrRateLimited = errors.New("rate limited")

	// ErrTimeout indicates that an operation timed out
	ErrTimeout = errors.New("operation timed out")

	// ErrTransport indicates a network level failure talking to a collaborator
	ErrTransport = errors.New("transport failure")

	// ErrProtocol indicates an unexpected or malformed response shape
	ErrProtocol = errors.New("protocol violation")
)

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents an invalid argument or configuration value.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// TransportError represents a network or timeout failure from a collaborator call.
type TransportError struct {
	Marketplace string
	Operation   string // "list", "stocks", "prices", "download"
	Timeout     bool
	Err         error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	kind := "connection error"
	if e.Timeout {
		kind = "timeout"
	}
	if e.Marketplace != "" {
		return fmt.Sprintf("%s during %s on %s: %v", kind, e.Operation, e.Marketplace, e.Err)
	}
	return fmt.Sprintf("%s during %s: %v", kind, e.Operation, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *TransportError) Is(target error) bool {
	if target == ErrTransport {
		return true
	}
	return e.Timeout && target == ErrTimeout
}

// ProtocolError represents a response whose shape does not match the API contract.
type ProtocolError struct {
	Marketplace string
	Endpoint    string
	Message     string
	Err         error
}

// Error implements the error interface
func (e *ProtocolError) Error() string {
	switch {
	case e.Marketplace == "" && e.Endpoint == "":
		return fmt.Sprintf("protocol error: %s", e.Message)
	case e.Marketplace == "":
		return fmt.Sprintf("protocol error (%s): %s", e.Endpoint, e.Message)
	case e.Endpoint != "":
		return fmt.Sprintf("protocol error from %s (%s): %s", e.Marketplace, e.Endpoint, e.Message)
	}
	return fmt.Sprintf("protocol error from %s: %s", e.Marketplace, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ProtocolError) Is(target error) bool {
	return target == ErrProtocol
}

// NewProtocolError creates a new ProtocolError
func NewProtocolError(marketplace, endpoint, message string) *ProtocolError {
	return &ProtocolError{Marketplace: marketplace, Endpoint: endpoint, Message: message}
}

// APIError represents a non-success HTTP status from a marketplace API.
// It is a ProtocolError as far as the sync core is concerned.
type APIError struct {
	Marketplace string
	StatusCode  int
	Message     string
	Endpoint    string
	Err         error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Marketplace == "" {
		return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("API error from %s (status %d): %s", e.Marketplace, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error from %s: %s", e.Marketplace, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *APIError) Is(target error) bool {
	switch {
	case target == ErrProtocol:
		return true
	case e.StatusCode == 429:
		return target == ErrRateLimited
	case e.StatusCode >= 500:
		return target == ErrMarketplaceUnavailable
	case e.StatusCode == 401 || e.StatusCode == 403:
		return target == ErrCredentialsRequired
	}
	return false
}

// NewAPIError creates a new APIError
func NewAPIError(marketplace string, statusCode int, message string) *APIError {
	return &APIError{
		Marketplace: marketplace,
		StatusCode:  statusCode,
		Message:     message,
	}
}

// ParseError represents text that cannot be normalized or decoded.
type ParseError struct {
	Format  string // "quantity", "price", "xls", "json", "yaml"
	File    string
	Line    int
	Value   string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("parse error in %s at %s:%d: %s", e.Format, e.File, e.Line, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	if e.Value != "" {
		return fmt.Sprintf("%s parse error for %q: %s", e.Format, e.Value, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "delete", "open", "close", "extract"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// SyncError attaches marketplace and campaign context to a failed sync pass.
type SyncError struct {
	Marketplace string
	Campaign    string
	Stage       string // "catalog", "reconcile", "stocks", "prices"
	Err         error
}

// Error implements the error interface
func (e *SyncError) Error() string {
	if e.Campaign != "" {
		return fmt.Sprintf("sync %s/%s failed at %s: %v", e.Marketplace, e.Campaign, e.Stage, e.Err)
	}
	return fmt.Sprintf("sync %s failed at %s: %v", e.Marketplace, e.Stage, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *SyncError) Unwrap() error {
	return e.Err
}

// NewSyncError creates a new SyncError
func NewSyncError(marketplace, campaign, stage string, err error) *SyncError {
	return &SyncError{
		Marketplace: marketplace,
		Campaign:    campaign,
		Stage:       stage,
		Err:         err,
	}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsRateLimited checks if an error is a rate limit error
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsTimeout checks if an error is a timeout error
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsTransport checks if an error is a network level failure
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsProtocol checks if an error is an unexpected response
func IsProtocol(err error) bool {
	return errors.Is(err, ErrProtocol)
}

// IsParse checks if an error is a ParseError
func IsParse(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// WrapSync wraps an error as a SyncError
func WrapSync(marketplace, campaign, stage string, err error) error {
	if err == nil {
		return nil
	}
	return NewSyncError(marketplace, campaign, stage, err)
}
