package domain

import (
	"github.com/SscSPs/wallet_fx_engine/internal/apperrors"
	"github.com/shopspring/decimal"
)

// RateUpdate is one item of a batch override.
type RateUpdate struct {
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
}

// RateUpdateResult is either Ok (Err == nil) or Err for one batch item.
type RateUpdateResult struct {
	FromCurrencyCode string           `json:"fromCurrencyCode"`
	ToCurrencyCode   string           `json:"toCurrencyCode"`
	OK               bool             `json:"ok"`
	OldRate          *decimal.Decimal `json:"oldRate,omitempty"`
	ErrKind          apperrors.Kind   `json:"errorKind,omitempty"`
	ErrReason        string           `json:"errorReason,omitempty"`
}

// OkRateUpdate builds a successful item result.
func OkRateUpdate(u RateUpdate, oldRate *decimal.Decimal) RateUpdateResult {
	return RateUpdateResult{
		FromCurrencyCode: u.FromCurrencyCode,
		ToCurrencyCode:   u.ToCurrencyCode,
		OK:               true,
		OldRate:          oldRate,
	}
}

// ErrRateUpdate builds a failed item result from err.
func ErrRateUpdate(u RateUpdate, err error) RateUpdateResult {
	return RateUpdateResult{
		FromCurrencyCode: u.FromCurrencyCode,
		ToCurrencyCode:   u.ToCurrencyCode,
		ErrKind:          apperrors.KindOf(err),
		ErrReason:        apperrors.MessageOf(err),
	}
}

// BatchRateUpdateResult aggregates a batch override.
type BatchRateUpdateResult struct {
	UpdatedCount int                `json:"updatedCount"`
	Results      []RateUpdateResult `json:"results"`
}
