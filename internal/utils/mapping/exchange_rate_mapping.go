package mapping

import (
	"github.com/SscSPs/wallet_fx_engine/internal/core/domain"
	"github.com/SscSPs/wallet_fx_engine/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelExchangeRate converts a domain ExchangeRate to a model ExchangeRate
func ToModelExchangeRate(d domain.ExchangeRate) models.ExchangeRate {
	return models.ExchangeRate{
		ExchangeRateID:   d.ExchangeRateID,
		FromCurrencyCode: d.FromCurrencyCode,
		ToCurrencyCode:   d.ToCurrencyCode,
		Rate:             d.Rate,
		Source:           string(d.Source),
		IsActive:         d.IsActive,
		UpdatedBy:        d.UpdatedBy,
		UpdatedAt:        d.UpdatedAt,
	}
}

// ToDomainExchangeRate converts a model ExchangeRate to a domain ExchangeRate
func ToDomainExchangeRate(m models.ExchangeRate) domain.ExchangeRate {
	return domain.ExchangeRate{
		ExchangeRateID:   m.ExchangeRateID,
		FromCurrencyCode: m.FromCurrencyCode,
		ToCurrencyCode:   m.ToCurrencyCode,
		Rate:             m.Rate,
		Source:           domain.RateSource(m.Source),
		IsActive:         m.IsActive,
		UpdatedBy:        m.UpdatedBy,
		UpdatedAt:        m.UpdatedAt,
	}
}

// ToModelExchangeRateHistory converts a domain history entry to its row
func ToModelExchangeRateHistory(d domain.ExchangeRateHistoryEntry) models.ExchangeRateHistory {
	old := decimal.NullDecimal{}
	if d.OldRate != nil {
		old = decimal.NewNullDecimal(*d.OldRate)
	}
	return models.ExchangeRateHistory{
		HistoryID:        d.HistoryID,
		Sequence:         d.Sequence,
		FromCurrencyCode: d.FromCurrencyCode,
		ToCurrencyCode:   d.ToCurrencyCode,
		OldRate:          old,
		NewRate:          d.NewRate,
		Source:           string(d.Source),
		UpdatedBy:        d.UpdatedBy,
		UpdatedAt:        d.UpdatedAt,
		Reason:           d.Reason,
	}
}

// ToDomainExchangeRateHistory converts a history row to its domain entry
func ToDomainExchangeRateHistory(m models.ExchangeRateHistory) domain.ExchangeRateHistoryEntry {
	var old *decimal.Decimal
	if m.OldRate.Valid {
		v := m.OldRate.Decimal
		old = &v
	}
	return domain.ExchangeRateHistoryEntry{
		HistoryID:        m.HistoryID,
		Sequence:         m.Sequence,
		FromCurrencyCode: m.FromCurrencyCode,
		ToCurrencyCode:   m.ToCurrencyCode,
		OldRate:          old,
		NewRate:          m.NewRate,
		Source:           domain.RateSource(m.Source),
		UpdatedBy:        m.UpdatedBy,
		UpdatedAt:        m.UpdatedAt,
		Reason:           m.Reason,
	}
}
