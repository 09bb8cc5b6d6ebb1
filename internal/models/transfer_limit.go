package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferLimitState is a row of transfer_limit_states, written by the ledger.
type TransferLimitState struct {
	UserID       string          `db:"user_id"`
	CurrencyCode string          `db:"currency_code"`
	Balance      decimal.Decimal `db:"balance"`
	DailyLimit   decimal.Decimal `db:"daily_limit"`
	MonthlyLimit decimal.Decimal `db:"monthly_limit"`
	DailyUsed    decimal.Decimal `db:"daily_used"`
	MonthlyUsed  decimal.Decimal `db:"monthly_used"`
	UpdatedAt    time.Time       `db:"updated_at"`
}
