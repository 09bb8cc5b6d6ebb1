package dto

import (
	"time"

	"github.com/SscSPs/wallet_fx_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SetRateRequest overrides the active rate of the pair named in the path.
// Positivity is checked by the service so the error carries the InvalidRate kind.
type SetRateRequest struct {
	Rate   decimal.Decimal `json:"rate" swaggertype:"string" example:"0.000115"`
	Reason string          `json:"reason" binding:"omitempty,max=256"`
}

// RateUpdateItem is one entry of a batch override.
type RateUpdateItem struct {
	FromCurrencyCode string          `json:"fromCurrencyCode" binding:"required"`
	ToCurrencyCode   string          `json:"toCurrencyCode" binding:"required"`
	Rate             decimal.Decimal `json:"rate" swaggertype:"string"`
}

// BatchRateRequest applies many overrides; items succeed or fail independently.
type BatchRateRequest struct {
	Updates []RateUpdateItem `json:"updates" binding:"required,min=1,max=500,dive"`
	Reason  string           `json:"reason" binding:"omitempty,max=256"`
}

// ToDomainRateUpdates converts batch items for the service.
func (r BatchRateRequest) ToDomainRateUpdates() []domain.RateUpdate {
	out := make([]domain.RateUpdate, len(r.Updates))
	for i, u := range r.Updates {
		out[i] = domain.RateUpdate{
			FromCurrencyCode: u.FromCurrencyCode,
			ToCurrencyCode:   u.ToCurrencyCode,
			Rate:             u.Rate,
		}
	}
	return out
}

// ExchangeRateResponse defines the structure for API responses containing exchange rate details.
type ExchangeRateResponse struct {
	ExchangeRateID   string            `json:"exchangeRateID"`
	FromCurrencyCode string            `json:"fromCurrencyCode"`
	ToCurrencyCode   string            `json:"toCurrencyCode"`
	Rate             decimal.Decimal   `json:"rate" swaggertype:"string"`
	FormattedRate    string            `json:"formattedRate"`
	Source           domain.RateSource `json:"source" swaggertype:"string"`
	IsActive         bool              `json:"isActive"`
	UpdatedBy        string            `json:"updatedBy"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate domain.ExchangeRate, formatted string) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID:   rate.ExchangeRateID,
		FromCurrencyCode: rate.FromCurrencyCode,
		ToCurrencyCode:   rate.ToCurrencyCode,
		Rate:             rate.Rate,
		FormattedRate:    formatted,
		Source:           rate.Source,
		IsActive:         rate.IsActive,
		UpdatedBy:        rate.UpdatedBy,
		UpdatedAt:        rate.UpdatedAt,
	}
}

// RateChangeResponse is the movement from the previous rate.
type RateChangeResponse struct {
	Percentage decimal.Decimal      `json:"percentage" swaggertype:"string"`
	Direction  domain.RateDirection `json:"direction" swaggertype:"string"`
}

// SetRateResponse is returned after an override.
type SetRateResponse struct {
	OldRate *decimal.Decimal     `json:"oldRate" swaggertype:"string"`
	Rate    ExchangeRateResponse `json:"rate"`
	Change  *RateChangeResponse  `json:"change,omitempty"`
}

// HistoryQuery pages through the override audit trail.
type HistoryQuery struct {
	From      string `form:"from" binding:"omitempty,len=3"`
	To        string `form:"to" binding:"omitempty,len=3"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=500"`
	PageToken string `form:"pageToken"`
}

// HistoryResponse is one page of history, newest first.
type HistoryResponse struct {
	Entries       []domain.ExchangeRateHistoryEntry `json:"entries"`
	NextPageToken string                            `json:"nextPageToken,omitempty"`
}
