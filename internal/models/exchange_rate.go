package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is a row of the exchange_rates table. Rates are NUMERIC(30,12).
type ExchangeRate struct {
	ExchangeRateID   string          `db:"exchange_rate_id"`
	FromCurrencyCode string          `db:"from_currency_code"`
	ToCurrencyCode   string          `db:"to_currency_code"`
	Rate             decimal.Decimal `db:"rate"`
	Source           string          `db:"source"`
	IsActive         bool            `db:"is_active"`
	UpdatedBy        string          `db:"updated_by"`
	UpdatedAt        time.Time       `db:"updated_at"`
}

// ExchangeRateHistory is a row of the append-only exchange_rate_history table.
type ExchangeRateHistory struct {
	HistoryID        string              `db:"history_id"`
	Sequence         int64               `db:"sequence"`
	FromCurrencyCode string              `db:"from_currency_code"`
	ToCurrencyCode   string              `db:"to_currency_code"`
	OldRate          decimal.NullDecimal `db:"old_rate"`
	NewRate          decimal.Decimal     `db:"new_rate"`
	Source           string              `db:"source"`
	UpdatedBy        string              `db:"updated_by"`
	UpdatedAt        time.Time           `db:"updated_at"`
	Reason           string              `db:"reason"`
}
