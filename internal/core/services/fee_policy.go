package services

import (
	"github.com/SscSPs/wallet_fx_engine/internal/apperrors"
	"github.com/SscSPs/wallet_fx_engine/internal/core/domain"
	portssvc "github.com/SscSPs/wallet_fx_engine/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

type feePolicy struct {
	defaults domain.FeeStructure
}

// NewFeePolicy creates the fee policy with the configured default structure.
func NewFeePolicy(defaults domain.FeeStructure) portssvc.FeePolicySvc {
	return &feePolicy{defaults: defaults}
}

func (p *feePolicy) DefaultFeeStructure() domain.FeeStructure {
	return p.defaults
}

// ComputeFees is pure: exact decimal arithmetic, no rounding, no I/O.
// The internal fee is clamped to [InternalFeeMin, InternalFeeMax].
func (p *feePolicy) ComputeFees(amount decimal.Decimal, fs domain.FeeStructure) (*domain.FeeBreakdown, error) {
	if !amount.IsPositive() {
		return nil, apperrors.Newf(apperrors.KindInvalidAmount, "amount must be greater than zero, got %s", amount.String())
	}

	apiCommission := amount.Mul(fs.APICommissionPercentage)
	internalFee := decimal.Max(decimal.Min(amount.Mul(fs.InternalFeePercentage), fs.InternalFeeMax), fs.InternalFeeMin)
	totalFees := apiCommission.Add(internalFee)

	return &domain.FeeBreakdown{
		APICommission: apiCommission,
		InternalFee:   internalFee,
		TotalFees:     totalFees,
		TotalCharged:  amount.Add(totalFees),
		PlatformGain:  totalFees,
	}, nil
}
