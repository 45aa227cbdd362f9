// Package errors provides custom error types for the Fintrack API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Transaction errors.
var (
	ErrTransactionNotFound = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrZeroAmount          = &AppError{Code: "ZERO_AMOUNT", Message: "Transaction amount must be non-zero", StatusCode: http.StatusBadRequest}
)

// Budget errors.
var (
	ErrBudgetNotFound  = &AppError{Code: "BUDGET_NOT_FOUND", Message: "Budget not found", StatusCode: http.StatusNotFound}
	ErrDuplicateBudget = &AppError{Code: "DUPLICATE_BUDGET", Message: "An active budget already exists for this category", StatusCode: http.StatusConflict}
)

// Goal errors.
var (
	ErrGoalNotFound        = &AppError{Code: "GOAL_NOT_FOUND", Message: "Goal not found", StatusCode: http.StatusNotFound}
	ErrInvalidContribution = &AppError{Code: "INVALID_CONTRIBUTION", Message: "Contribution amount must be positive", StatusCode: http.StatusBadRequest}
)

// Debt errors.
var (
	ErrDebtNotFound   = &AppError{Code: "DEBT_NOT_FOUND", Message: "Debt not found", StatusCode: http.StatusNotFound}
	ErrDebtPaidOff    = &AppError{Code: "DEBT_PAID_OFF", Message: "Debt has already been paid off", StatusCode: http.StatusConflict}
	ErrInvalidPayment = &AppError{Code: "INVALID_PAYMENT", Message: "Payment amount must be positive", StatusCode: http.StatusBadRequest}
)

// Recurring transaction errors.
var (
	ErrRecurringNotFound = &AppError{Code: "RECURRING_NOT_FOUND", Message: "Recurring transaction not found", StatusCode: http.StatusNotFound}
	ErrInvalidFrequency  = &AppError{Code: "INVALID_FREQUENCY", Message: "Unsupported frequency", StatusCode: http.StatusBadRequest}
	ErrEndBeforeStart    = &AppError{Code: "END_BEFORE_START", Message: "End date must not precede start date", StatusCode: http.StatusBadRequest}
)

// Notification errors.
var (
	ErrNotificationNotFound = &AppError{Code: "NOTIFICATION_NOT_FOUND", Message: "Notification not found", StatusCode: http.StatusNotFound}
)
