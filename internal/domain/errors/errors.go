// Package errors defines the application error taxonomy shared between the
// use case layer and the HTTP delivery.
package errors

import (
	"net/http"

	"edrop/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Validation errors: rejected before any persistence happens.
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	ErrDataWipeRequired = NewBaseError(
		http.StatusBadRequest,
		"DATA_WIPE_REQUIRED",
		"You must confirm data wipe for electronic items",
		"",
	)

	ErrEmptyManifest = NewBaseError(
		http.StatusBadRequest,
		"EMPTY_MANIFEST",
		"A pickup needs at least one item",
		"",
	)

	ErrInvalidCoordinates = NewBaseError(
		http.StatusBadRequest,
		"INVALID_COORDINATES",
		"Location must be a valid latitude/longitude pair",
		"",
	)

	ErrInvalidStatus = NewBaseError(
		http.StatusBadRequest,
		"INVALID_STATUS",
		"Unknown status value",
		"",
	)

	// Authorization errors: rejected before business logic runs.
	ErrCollectorRoleRequired = NewBaseError(
		http.StatusForbidden,
		"COLLECTOR_ROLE_REQUIRED",
		"Access denied. Only collectors can perform this action",
		"",
	)

	ErrNotPickupOwner = NewBaseError(
		http.StatusForbidden,
		"NOT_PICKUP_OWNER",
		"You do not own this pickup",
		"",
	)

	// Not-found errors.
	ErrPickupNotFound = NewBaseError(
		http.StatusNotFound,
		"PICKUP_NOT_FOUND",
		"Pickup request not found",
		"",
	)

	ErrProfileNotFound = NewBaseError(
		http.StatusNotFound,
		"PROFILE_NOT_FOUND",
		"Wallet not found",
		"",
	)

	ErrInventoryNotFound = NewBaseError(
		http.StatusNotFound,
		"INVENTORY_NOT_FOUND",
		"Inventory item not found",
		"",
	)

	ErrCertificateNotFound = NewBaseError(
		http.StatusNotFound,
		"CERTIFICATE_NOT_FOUND",
		"Certificate not found",
		"",
	)

	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"Target user not found",
		"",
	)

	// Conflict errors: the caller can recover from the details.
	ErrPickupAlreadyCollected = NewBaseError(
		http.StatusConflict,
		"PICKUP_ALREADY_COLLECTED",
		"This pickup has already been collected",
		"",
	)

	ErrPickupNotCancellable = NewBaseError(
		http.StatusConflict,
		"PICKUP_NOT_CANCELLABLE",
		"Only scheduled pickups can be cancelled",
		"",
	)

	ErrCertificateExists = NewBaseError(
		http.StatusConflict,
		"CERTIFICATE_EXISTS",
		"A certificate was already issued for this pickup",
		"",
	)

	ErrPickupNotCollected = NewBaseError(
		http.StatusConflict,
		"PICKUP_NOT_COLLECTED",
		"Certificates can only be issued for collected pickups",
		"",
	)

	ErrWalletExists = NewBaseError(
		http.StatusConflict,
		"WALLET_EXISTS",
		"Wallet already exists for this user",
		"",
	)

	ErrInsufficientFunds = NewBaseError(
		http.StatusBadRequest,
		"INSUFFICIENT_FUNDS",
		"Insufficient carbon credits for this reward",
		"",
	)

	// Upstream errors: external collaborators misbehaving.
	ErrClassifierUnavailable = NewBaseError(
		http.StatusBadGateway,
		"CLASSIFIER_UNAVAILABLE",
		"Object detection service failed",
		"",
	)

	// Transaction-related errors
	ErrTransactionFailed = NewBaseError(
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"Database transaction failed",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Access denied",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"Resource conflict",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
