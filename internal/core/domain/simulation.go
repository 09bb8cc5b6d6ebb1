package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSimulation is the deterministic preview of a transfer. RateID and
// RateUpdatedAt pin the rate version the preview was computed with.
type RateSimulation struct {
	FromCurrency    string          `json:"fromCurrency"`
	ToCurrency      string          `json:"toCurrency"`
	Amount          decimal.Decimal `json:"amount"`
	CurrentRate     decimal.Decimal `json:"currentRate"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
	InternalFees    decimal.Decimal `json:"internalFees"`
	APICommission   decimal.Decimal `json:"apiCommission"`
	TotalFees       decimal.Decimal `json:"totalFees"`
	TotalCharged    decimal.Decimal `json:"totalCharged"`
	PlatformGain    decimal.Decimal `json:"platformGain"`
	RateID          string          `json:"rateID"`
	RateUpdatedAt   time.Time       `json:"rateUpdatedAt"`
}

// SameQuote reports whether two previews describe the same rate version and figures.
func (s RateSimulation) SameQuote(o RateSimulation) bool {
	return s.FromCurrency == o.FromCurrency &&
		s.ToCurrency == o.ToCurrency &&
		s.RateID == o.RateID &&
		s.RateUpdatedAt.Equal(o.RateUpdatedAt) &&
		s.Amount.Equal(o.Amount) &&
		s.CurrentRate.Equal(o.CurrentRate) &&
		s.ConvertedAmount.Equal(o.ConvertedAmount) &&
		s.InternalFees.Equal(o.InternalFees) &&
		s.APICommission.Equal(o.APICommission) &&
		s.TotalFees.Equal(o.TotalFees) &&
		s.TotalCharged.Equal(o.TotalCharged) &&
		s.PlatformGain.Equal(o.PlatformGain)
}
