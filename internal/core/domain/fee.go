package domain

import "github.com/shopspring/decimal"

// FeeStructure is the global fee configuration applied to transfer amounts.
type FeeStructure struct {
	InternalFeePercentage   decimal.Decimal `json:"internalFeePercentage"`
	InternalFeeMin          decimal.Decimal `json:"internalFeeMin"`
	InternalFeeMax          decimal.Decimal `json:"internalFeeMax"`
	APICommissionPercentage decimal.Decimal `json:"apiCommissionPercentage"`
	Currency                string          `json:"currency"`
}

// DefaultFeeStructure is used when configuration does not override it.
func DefaultFeeStructure() FeeStructure {
	return FeeStructure{
		InternalFeePercentage:   decimal.RequireFromString("0.005"),
		InternalFeeMin:          decimal.RequireFromString("0.10"),
		InternalFeeMax:          decimal.RequireFromString("20.00"),
		APICommissionPercentage: decimal.RequireFromString("0.001"),
		Currency:                "USD",
	}
}

// FeeBreakdown is the output of the fee policy.
type FeeBreakdown struct {
	APICommission decimal.Decimal `json:"apiCommission"`
	InternalFee   decimal.Decimal `json:"internalFee"`
	TotalFees     decimal.Decimal `json:"totalFees"`
	TotalCharged  decimal.Decimal `json:"totalCharged"`
	PlatformGain  decimal.Decimal `json:"platformGain"`
}
