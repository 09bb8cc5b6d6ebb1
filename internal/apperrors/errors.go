package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the machine-readable category of a failure. UI layers switch on it to pick copy.
type Kind string

const (
	KindInvalidAmount          Kind = "InvalidAmount"
	KindInvalidRate            Kind = "InvalidRate"
	KindInvalidCurrencyPair    Kind = "InvalidCurrencyPair"
	KindRateNotFound           Kind = "RateNotFound"
	KindInsufficientBalance    Kind = "InsufficientBalance"
	KindDailyLimitExceeded     Kind = "DailyLimitExceeded"
	KindMonthlyLimitExceeded   Kind = "MonthlyLimitExceeded"
	KindCurrencyNotFound       Kind = "CurrencyNotFound"
	KindAuthenticationRequired Kind = "AuthenticationRequired"
	KindForbidden              Kind = "Forbidden"
	KindLimitStateNotFound     Kind = "LimitStateNotFound"
	KindQuoteExpired           Kind = "QuoteExpired"
	KindTrustViolation         Kind = "TrustViolation"
	KindLedgerFailure          Kind = "LedgerFailure"
	KindStoreFailure           Kind = "StoreFailure"
	KindProviderUnavailable    Kind = "ProviderUnavailable"
	KindValidation             Kind = "Validation"
	KindInternal               Kind = "Internal"
)

// AppError carries a Kind, a human-readable message and an optional cause.
type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches any *AppError of the same Kind, so callers can use the sentinels below
// with errors.Is regardless of message.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is checks.
var (
	ErrInvalidAmount          = &AppError{Kind: KindInvalidAmount, Message: "amount must be a positive number"}
	ErrInvalidRate            = &AppError{Kind: KindInvalidRate, Message: "exchange rate must be positive"}
	ErrInvalidCurrencyPair    = &AppError{Kind: KindInvalidCurrencyPair, Message: "from and to currencies cannot be the same"}
	ErrRateNotFound           = &AppError{Kind: KindRateNotFound, Message: "no active exchange rate for currency pair"}
	ErrInsufficientBalance    = &AppError{Kind: KindInsufficientBalance, Message: "insufficient balance"}
	ErrDailyLimitExceeded     = &AppError{Kind: KindDailyLimitExceeded, Message: "daily transfer limit exceeded"}
	ErrMonthlyLimitExceeded   = &AppError{Kind: KindMonthlyLimitExceeded, Message: "monthly transfer limit exceeded"}
	ErrCurrencyNotFound       = &AppError{Kind: KindCurrencyNotFound, Message: "currency not found"}
	ErrAuthenticationRequired = &AppError{Kind: KindAuthenticationRequired, Message: "caller identity is required"}
	ErrForbidden              = &AppError{Kind: KindForbidden, Message: "operation not permitted"}
	ErrLimitStateNotFound     = &AppError{Kind: KindLimitStateNotFound, Message: "no transfer limit state for user and currency"}
	ErrQuoteExpired           = &AppError{Kind: KindQuoteExpired, Message: "preview no longer matches current rate, simulate again"}
	ErrTrustViolation         = &AppError{Kind: KindTrustViolation, Message: "ledger applied values differ from the confirmed preview"}
	ErrLedgerFailure          = &AppError{Kind: KindLedgerFailure, Message: "ledger rejected the transfer"}
	ErrStoreFailure           = &AppError{Kind: KindStoreFailure, Message: "storage operation failed"}
	ErrProviderUnavailable    = &AppError{Kind: KindProviderUnavailable, Message: "no rate provider answered"}
)

// New builds an AppError of the given kind.
func New(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

// Newf builds an AppError of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *AppError {
	return &AppError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to a new AppError.
func Wrap(kind Kind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

// NewValidationError creates a Validation error.
func NewValidationError(message string) *AppError {
	return New(KindValidation, message)
}

// NewStoreError wraps a persistence failure. Store failures are never softened into defaults.
func NewStoreError(message string, err error) *AppError {
	return Wrap(KindStoreFailure, message, err)
}

// KindOf extracts the Kind of the first AppError in the chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// MessageOf returns the human-readable message of the first AppError in the chain.
func MessageOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal error"
}

// HTTPStatus maps an error kind to the status code handlers respond with.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindInvalidAmount, KindInvalidRate, KindInvalidCurrencyPair, KindValidation:
		return http.StatusBadRequest
	case KindAuthenticationRequired:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindRateNotFound, KindCurrencyNotFound, KindLimitStateNotFound:
		return http.StatusNotFound
	case KindQuoteExpired:
		return http.StatusConflict
	case KindInsufficientBalance, KindDailyLimitExceeded, KindMonthlyLimitExceeded:
		return http.StatusUnprocessableEntity
	case KindLedgerFailure, KindTrustViolation, KindProviderUnavailable:
		return http.StatusBadGateway
	case KindStoreFailure:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
