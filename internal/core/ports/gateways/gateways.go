// Package gateways declares the external collaborators the engine consumes.
package gateways

import (
	"context"
	"time"

	"github.com/SscSPs/wallet_fx_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// GeoLocation is the result of a geo-IP lookup.
type GeoLocation struct {
	CountryCode string `json:"countryCode"`
	CountryName string `json:"countryName"`
}

// GeoIPLookup resolves an IP address to a country. Callers treat it as best-effort.
type GeoIPLookup interface {
	Lookup(ctx context.Context, ip string) (*GeoLocation, error)
}

// GeoCache stores lookup results keyed by IP.
type GeoCache interface {
	Get(ctx context.Context, ip string) (*GeoLocation, bool, error)
	Set(ctx context.Context, ip string, loc GeoLocation, ttl time.Duration) error
}

// LedgerClient is the external transactional service that moves money.
type LedgerClient interface {
	PerformTransfer(ctx context.Context, transfer domain.LedgerTransfer) (*domain.LedgerTransferResult, error)
}

// ProviderRates is a snapshot of rates quoted against Base.
type ProviderRates struct {
	Base      string
	Rates     map[string]decimal.Decimal
	FetchedAt time.Time
}

// RateProvider fetches rates for a base currency.
type RateProvider interface {
	Name() string
	Source() domain.RateSource
	FetchRates(ctx context.Context, base string) (*ProviderRates, error)
}

// RateEventPublisher announces committed rate overrides.
type RateEventPublisher interface {
	PublishRateChanged(ctx context.Context, event domain.RateChangedEvent) error
	Close() error
}
