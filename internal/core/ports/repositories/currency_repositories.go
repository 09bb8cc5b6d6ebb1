package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/wallet_fx_engine/internal/core/domain"
)

// CurrencyReader defines read operations for currency data
type CurrencyReader interface {
	// FindCurrencyByCode retrieves a specific currency by its code.
	// Returns apperrors.ErrCurrencyNotFound when the code is unknown.
	FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListCurrencies retrieves all currencies, active or not, ordered by code.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencyWriter defines write operations for currency data
type CurrencyWriter interface {
	// SaveCurrency inserts the currency or updates its metadata if it exists.
	SaveCurrency(ctx context.Context, currency domain.Currency) error

	// DeactivateCurrency flips the active flag off. Currencies are never removed.
	DeactivateCurrency(ctx context.Context, currencyCode, actor string, at time.Time) error
}

// CurrencyRepositoryFacade combines all currency-related repository interfaces
type CurrencyRepositoryFacade interface {
	CurrencyReader
	CurrencyWriter
}
