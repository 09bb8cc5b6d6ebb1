package domain

import (
	"github.com/SscSPs/wallet_fx_engine/internal/apperrors"
	"github.com/shopspring/decimal"
)

// TransferLimitState is the read-only snapshot of a user's allowance in one currency.
// Usage counters are advanced by the ledger only.
type TransferLimitState struct {
	UserID       string          `json:"userID"`
	Currency     string          `json:"currency"`
	Balance      decimal.Decimal `json:"balance"`
	DailyLimit   decimal.Decimal `json:"dailyLimit"`
	MonthlyLimit decimal.Decimal `json:"monthlyLimit"`
	DailyUsed    decimal.Decimal `json:"dailyUsed"`
	MonthlyUsed  decimal.Decimal `json:"monthlyUsed"`
}

// LimitCheckResult reports whether a transfer fits. Remaining values are computed
// before the transfer and are populated on failure too.
type LimitCheckResult struct {
	CanTransfer      bool            `json:"canTransfer"`
	DailyRemaining   decimal.Decimal `json:"dailyRemaining"`
	MonthlyRemaining decimal.Decimal `json:"monthlyRemaining"`
	Reason           apperrors.Kind  `json:"reason,omitempty"`
}

// Err converts a failed check into an error of the matching kind, or nil.
func (r LimitCheckResult) Err() error {
	if r.CanTransfer {
		return nil
	}
	switch r.Reason {
	case apperrors.KindInsufficientBalance:
		return apperrors.ErrInsufficientBalance
	case apperrors.KindDailyLimitExceeded:
		return apperrors.ErrDailyLimitExceeded
	case apperrors.KindMonthlyLimitExceeded:
		return apperrors.ErrMonthlyLimitExceeded
	}
	return apperrors.New(r.Reason, "transfer not allowed")
}
