package services

import (
	"context"

	"github.com/SscSPs/wallet_fx_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FeePolicySvc computes transfer fees.
type FeePolicySvc interface {
	ComputeFees(amount decimal.Decimal, fs domain.FeeStructure) (*domain.FeeBreakdown, error)
	DefaultFeeStructure() domain.FeeStructure
}

// TransferLimitSvc decides whether a transfer fits the user's allowance.
type TransferLimitSvc interface {
	// CheckLimits is the pure check over a snapshot.
	CheckLimits(state domain.TransferLimitState, amount decimal.Decimal) (*domain.LimitCheckResult, error)

	// CheckUserLimits loads the snapshot for (userID, currency) and checks it.
	CheckUserLimits(ctx context.Context, userID string, amount decimal.Decimal, currencyCode string) (*domain.LimitCheckResult, error)
}

// ConversionSimulatorSvc builds transfer previews.
type ConversionSimulatorSvc interface {
	Simulate(ctx context.Context, fromCode, toCode string, amount decimal.Decimal) (*domain.RateSimulation, error)
}

// TransferSvc commits a confirmed preview through the ledger.
type TransferSvc interface {
	Commit(ctx context.Context, senderID string, req domain.TransferRequest) (*domain.TransferReceipt, error)
}
