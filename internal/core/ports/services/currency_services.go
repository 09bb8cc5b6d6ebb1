package services

import (
	"context"

	"github.com/SscSPs/wallet_fx_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CurrencyReaderSvc defines read operations for currency data
type CurrencyReaderSvc interface {
	// GetCurrencyByCode retrieves a specific currency by its code.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListCurrencies retrieves the full catalog.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)

	// ListActiveCurrencies retrieves currencies with IsActive set.
	ListActiveCurrencies(ctx context.Context) ([]domain.Currency, error)

	// SearchCurrencies matches query case-insensitively against name, code and country.
	// An empty query returns the full catalog.
	SearchCurrencies(ctx context.Context, query string) ([]domain.Currency, error)

	// FormatAmount renders amount with the currency symbol and precision.
	FormatAmount(ctx context.Context, amount decimal.Decimal, currencyCode string) string
}

// CurrencyWriterSvc defines write operations for currency data
type CurrencyWriterSvc interface {
	// SyncCatalog upserts every reference catalog entry into the store.
	SyncCatalog(ctx context.Context, actor string) (int, error)

	// DeactivateCurrency marks a currency inactive.
	DeactivateCurrency(ctx context.Context, currencyCode, actor string) error
}

// CurrencySvcFacade combines all currency-related service interfaces
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
}

// CountryResolverSvc maps location hints to a default currency. It is a hint only.
type CountryResolverSvc interface {
	// ResolveCountryCurrency returns false when no strategy produced an answer.
	ResolveCountryCurrency(ctx context.Context, signals domain.LocationSignals) (*domain.CountryCurrency, bool)

	// DefaultCurrencyForCountry looks up the static country table.
	DefaultCurrencyForCountry(countryCode string) (string, bool)
}
