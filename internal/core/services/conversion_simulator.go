package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/wallet_fx_engine/internal/apperrors"
	"github.com/SscSPs/wallet_fx_engine/internal/core/domain"
	portssvc "github.com/SscSPs/wallet_fx_engine/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

type conversionSimulator struct {
	BaseService
	currencySvc portssvc.CurrencyReaderSvc
	rateSvc     portssvc.ExchangeRateReaderSvc
	feePolicy   portssvc.FeePolicySvc
}

// NewConversionSimulator creates the simulator that assembles transfer previews.
func NewConversionSimulator(currencySvc portssvc.CurrencyReaderSvc, rateSvc portssvc.ExchangeRateReaderSvc, feePolicy portssvc.FeePolicySvc) portssvc.ConversionSimulatorSvc {
	return &conversionSimulator{
		currencySvc: currencySvc,
		rateSvc:     rateSvc,
		feePolicy:   feePolicy,
	}
}

// Simulate validates inputs before any rate lookup, then builds the preview.
// For an unchanged active rate the output is identical on every call.
func (s *conversionSimulator) Simulate(ctx context.Context, fromCode, toCode string, amount decimal.Decimal) (*domain.RateSimulation, error) {
	if !amount.IsPositive() {
		return nil, apperrors.Newf(apperrors.KindInvalidAmount, "amount must be greater than zero, got %s", amount.String())
	}
	from, to, err := normalizePair(fromCode, toCode)
	if err != nil {
		return nil, err
	}
	for _, code := range []string{from, to} {
		if err := requireActiveCurrency(ctx, s.currencySvc, code); err != nil {
			return nil, err
		}
	}

	rate, err := s.rateSvc.GetActiveRate(ctx, from, to)
	if err != nil {
		return nil, err
	}

	fees, err := s.feePolicy.ComputeFees(amount, s.feePolicy.DefaultFeeStructure())
	if err != nil {
		return nil, fmt.Errorf("failed to compute fees: %w", err)
	}

	return &domain.RateSimulation{
		FromCurrency:    from,
		ToCurrency:      to,
		Amount:          amount,
		CurrentRate:     rate.Rate,
		ConvertedAmount: amount.Mul(rate.Rate),
		InternalFees:    fees.InternalFee,
		APICommission:   fees.APICommission,
		TotalFees:       fees.TotalFees,
		TotalCharged:    fees.TotalCharged,
		PlatformGain:    fees.PlatformGain,
		RateID:          rate.ExchangeRateID,
		RateUpdatedAt:   rate.UpdatedAt,
	}, nil
}
