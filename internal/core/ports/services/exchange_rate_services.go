package services

import (
	"context"

	"github.com/SscSPs/wallet_fx_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExchangeRateReaderSvc defines read operations for exchange rate data
type ExchangeRateReaderSvc interface {
	// GetActiveRate returns the active rate or a RateNotFound error. Never a default.
	GetActiveRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error)

	// ListActiveRates returns all active rates.
	ListActiveRates(ctx context.Context) ([]domain.ExchangeRate, error)

	// GetHistory returns up to limit entries newest first, plus a token for the next page.
	GetHistory(ctx context.Context, fromCode, toCode string, limit int, pageToken string) ([]domain.ExchangeRateHistoryEntry, string, error)

	// GetRateStatistics summarises the active rate table.
	GetRateStatistics(ctx context.Context) (*domain.RateStatistics, error)
}

// ExchangeRateWriterSvc defines write operations for exchange rate data
type ExchangeRateWriterSvc interface {
	// SetRate replaces the active rate of a pair with a manual override.
	SetRate(ctx context.Context, fromCode, toCode string, rate decimal.Decimal, actor, reason string) (*domain.RateOverrideResult, error)

	// SetManyRates applies manual overrides independently and reports per item.
	SetManyRates(ctx context.Context, updates []domain.RateUpdate, actor, reason string) (*domain.BatchRateUpdateResult, error)

	// ApplySourcedRates is SetManyRates for automated sources (api, fallback).
	ApplySourcedRates(ctx context.Context, updates []domain.RateUpdate, source domain.RateSource, actor, reason string) (*domain.BatchRateUpdateResult, error)
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
}

// RateSyncSvc refreshes rates from external providers.
type RateSyncSvc interface {
	SyncRates(ctx context.Context) (*domain.RateSyncReport, error)
}
