package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSource records where an exchange rate came from.
type RateSource string

const (
	RateSourceManual   RateSource = "manual"
	RateSourceAPI      RateSource = "api"
	RateSourceFallback RateSource = "fallback"
)

// Valid reports whether s is a known source.
func (s RateSource) Valid() bool {
	switch s {
	case RateSourceManual, RateSourceAPI, RateSourceFallback:
		return true
	}
	return false
}

// ExchangeRate is one version of the rate for an ordered currency pair.
// At most one row per (FromCurrencyCode, ToCurrencyCode) is active.
type ExchangeRate struct {
	ExchangeRateID   string          `json:"exchangeRateID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	Source           RateSource      `json:"source"`
	IsActive         bool            `json:"isActive"`
	UpdatedBy        string          `json:"updatedBy"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// ExchangeRateHistoryEntry is an append-only audit record of one override.
// OldRate is nil when the pair had no active rate before the override.
type ExchangeRateHistoryEntry struct {
	HistoryID        string           `json:"historyID"`
	// Sequence is assigned by the store in insertion order and breaks UpdatedAt ties.
	Sequence         int64            `json:"sequence"`
	FromCurrencyCode string           `json:"fromCurrencyCode"`
	ToCurrencyCode   string           `json:"toCurrencyCode"`
	OldRate          *decimal.Decimal `json:"oldRate"`
	NewRate          decimal.Decimal  `json:"newRate"`
	Source           RateSource       `json:"source"`
	UpdatedBy        string           `json:"updatedBy"`
	UpdatedAt        time.Time        `json:"updatedAt"`
	Reason           string           `json:"reason"`
}

// RateOverride is everything the store needs to replace the active rate of a pair.
type RateOverride struct {
	FromCurrencyCode string
	ToCurrencyCode   string
	Rate             decimal.Decimal
	Source           RateSource
	Actor            string
	Reason           string
	At               time.Time
}

// RateOverrideResult is returned after a committed override.
type RateOverrideResult struct {
	OldRate *decimal.Decimal `json:"oldRate"`
	Rate    ExchangeRate     `json:"rate"`
}

// OldRateOrZero returns the previous rate, treating "no previous rate" as zero.
func (r RateOverrideResult) OldRateOrZero() decimal.Decimal {
	if r.OldRate == nil {
		return decimal.Zero
	}
	return *r.OldRate
}

// HistoryFilter narrows a history query. Empty codes match every pair.
type HistoryFilter struct {
	FromCurrencyCode string
	ToCurrencyCode   string
	Limit            int
	// Cursor position: entries strictly older than (BeforeUpdatedAt, BeforeSequence).
	BeforeUpdatedAt *time.Time
	BeforeSequence  int64
}

// RateStatistics summarises the active rate table.
type RateStatistics struct {
	TotalRates         int        `json:"totalRates"`
	ManualRates        int        `json:"manualRates"`
	APIRates           int        `json:"apiRates"`
	FallbackRates      int        `json:"fallbackRates"`
	LastUpdated        *time.Time `json:"lastUpdated"`
	MostActiveCurrency string     `json:"mostActiveCurrency"`
}

// RateDirection describes how a rate moved.
type RateDirection string

const (
	RateUp   RateDirection = "up"
	RateDown RateDirection = "down"
	RateSame RateDirection = "same"
)

// RateChange is the percentage movement between two rates.
type RateChange struct {
	Percentage decimal.Decimal `json:"percentage"`
	Direction  RateDirection   `json:"direction"`
}

// RateChangedEvent is published after a committed override.
type RateChangedEvent struct {
	ExchangeRateID   string           `json:"exchangeRateID"`
	FromCurrencyCode string           `json:"fromCurrencyCode"`
	ToCurrencyCode   string           `json:"toCurrencyCode"`
	OldRate          *decimal.Decimal `json:"oldRate"`
	NewRate          decimal.Decimal  `json:"newRate"`
	Source           RateSource       `json:"source"`
	UpdatedBy        string           `json:"updatedBy"`
	UpdatedAt        time.Time        `json:"updatedAt"`
	Reason           string           `json:"reason"`
}

// RateSyncReport describes one provider sync run.
type RateSyncReport struct {
	Provider     string                `json:"provider"`
	Source       RateSource            `json:"source"`
	BaseCurrency string                `json:"baseCurrency"`
	FetchedAt    time.Time             `json:"fetchedAt"`
	Result       BatchRateUpdateResult `json:"result"`
}
