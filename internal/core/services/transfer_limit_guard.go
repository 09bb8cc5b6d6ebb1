package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/wallet_fx_engine/internal/apperrors"
	"github.com/SscSPs/wallet_fx_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_fx_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/wallet_fx_engine/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

type transferLimitGuard struct {
	BaseService
	limitRepo portsrepo.TransferLimitReader
}

// NewTransferLimitGuard creates the limit guard. It only ever reads limit snapshots.
func NewTransferLimitGuard(limitRepo portsrepo.TransferLimitReader) portssvc.TransferLimitSvc {
	return &transferLimitGuard{limitRepo: limitRepo}
}

// CheckLimits evaluates balance, then daily, then monthly; the first failure wins.
// Remaining allowances are computed before this transfer and reported either way.
func (g *transferLimitGuard) CheckLimits(state domain.TransferLimitState, amount decimal.Decimal) (*domain.LimitCheckResult, error) {
	if !amount.IsPositive() {
		return nil, apperrors.Newf(apperrors.KindInvalidAmount, "amount must be greater than zero, got %s", amount.String())
	}

	result := &domain.LimitCheckResult{
		CanTransfer:      true,
		DailyRemaining:   state.DailyLimit.Sub(state.DailyUsed),
		MonthlyRemaining: state.MonthlyLimit.Sub(state.MonthlyUsed),
	}

	switch {
	case state.Balance.LessThan(amount):
		result.CanTransfer = false
		result.Reason = apperrors.KindInsufficientBalance
	case state.DailyUsed.Add(amount).GreaterThan(state.DailyLimit):
		result.CanTransfer = false
		result.Reason = apperrors.KindDailyLimitExceeded
	case state.MonthlyUsed.Add(amount).GreaterThan(state.MonthlyLimit):
		result.CanTransfer = false
		result.Reason = apperrors.KindMonthlyLimitExceeded
	}
	return result, nil
}

// CheckUserLimits loads the latest snapshot and checks it. A missing snapshot or a
// store failure is an error, never an approval.
func (g *transferLimitGuard) CheckUserLimits(ctx context.Context, userID string, amount decimal.Decimal, currencyCode string) (*domain.LimitCheckResult, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.ErrAuthenticationRequired
	}
	if !amount.IsPositive() {
		return nil, apperrors.Newf(apperrors.KindInvalidAmount, "amount must be greater than zero, got %s", amount.String())
	}
	code := normalizeCode(currencyCode)

	state, err := g.limitRepo.FindLimitState(ctx, userID, code)
	if err != nil {
		return nil, fmt.Errorf("failed to load transfer limits for %s: %w", code, err)
	}

	result, err := g.CheckLimits(*state, amount)
	if err != nil {
		return nil, err
	}
	if !result.CanTransfer {
		g.LogInfo(ctx, "Transfer rejected by limit guard",
			slog.String("user_id", userID),
			slog.String("currency", code),
			slog.String("amount", amount.String()),
			slog.String("reason", string(result.Reason)))
	}
	return result, nil
}
