package repositories

import (
	"context"

	"github.com/SscSPs/wallet_fx_engine/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data
type ExchangeRateReader interface {
	// FindActiveRate returns the active rate for the ordered pair or apperrors.ErrRateNotFound.
	FindActiveRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error)

	// ListActiveRates returns every active rate ordered by pair.
	ListActiveRates(ctx context.Context) ([]domain.ExchangeRate, error)

	// ListHistory returns history entries newest first.
	ListHistory(ctx context.Context, filter domain.HistoryFilter) ([]domain.ExchangeRateHistoryEntry, error)
}

// ExchangeRateWriter defines write operations for exchange rate data
type ExchangeRateWriter interface {
	// ReplaceActiveRate deactivates the current active rate of the pair, inserts the
	// new active rate and appends a history entry as one atomic unit. Readers see
	// either the previous or the new rate, never neither and never both.
	ReplaceActiveRate(ctx context.Context, override domain.RateOverride) (*domain.RateOverrideResult, error)
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
