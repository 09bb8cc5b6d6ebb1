package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/wallet_fx_engine/internal/apperrors"
	"github.com/SscSPs/wallet_fx_engine/internal/core/domain"
	"github.com/SscSPs/wallet_fx_engine/internal/core/services"
	"github.com/SscSPs/wallet_fx_engine/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func limitState() domain.TransferLimitState {
	return domain.TransferLimitState{
		UserID:       "user-1",
		Currency:     "GNF",
		Balance:      dec("5000000"),
		DailyLimit:   dec("1000000"),
		DailyUsed:    dec("950000"),
		MonthlyLimit: dec("10000000"),
		MonthlyUsed:  dec("2000000"),
	}
}

func TestCheckLimits(t *testing.T) {
	guard := services.NewTransferLimitGuard(memory.NewStore())

	tests := []struct {
		name   string
		mutate func(*domain.TransferLimitState)
		amount string
		ok     bool
		reason apperrors.Kind
	}{
		{name: "fits", amount: "50000", ok: true},
		{name: "daily exceeded", amount: "60000", reason: apperrors.KindDailyLimitExceeded},
		{name: "balance checked first", amount: "60000", reason: apperrors.KindInsufficientBalance,
			mutate: func(s *domain.TransferLimitState) { s.Balance = dec("1000") }},
		{name: "monthly exceeded", amount: "40000", reason: apperrors.KindMonthlyLimitExceeded,
			mutate: func(s *domain.TransferLimitState) { s.MonthlyUsed = dec("9990000") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := limitState()
			if tt.mutate != nil {
				tt.mutate(&state)
			}
			res, err := guard.CheckLimits(state, dec(tt.amount))
			require.NoError(t, err)
			assert.Equal(t, tt.ok, res.CanTransfer)
			assert.Equal(t, tt.reason, res.Reason)
			assert.True(t, res.DailyRemaining.Equal(state.DailyLimit.Sub(state.DailyUsed)))
			assert.True(t, res.MonthlyRemaining.Equal(state.MonthlyLimit.Sub(state.MonthlyUsed)))
		})
	}
}

func TestCheckLimitsDailyScenario(t *testing.T) {
	guard := services.NewTransferLimitGuard(memory.NewStore())
	res, err := guard.CheckLimits(limitState(), dec("60000"))
	require.NoError(t, err)
	assert.False(t, res.CanTransfer)
	assert.Equal(t, apperrors.KindDailyLimitExceeded, res.Reason)
	assert.True(t, res.DailyRemaining.Equal(dec("50000")))
	assert.ErrorIs(t, res.Err(), apperrors.ErrDailyLimitExceeded)
}

func TestCheckLimitsMonotonic(t *testing.T) {
	guard := services.NewTransferLimitGuard(memory.NewStore())
	state := limitState()
	for _, raw := range []string{"50001", "60000", "999999", "4000000"} {
		res, err := guard.CheckLimits(state, dec(raw))
		require.NoError(t, err)
		assert.False(t, res.CanTransfer, raw)
		assert.Equal(t, apperrors.KindDailyLimitExceeded, res.Reason, raw)
	}
}

func TestCheckUserLimits(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	guard := services.NewTransferLimitGuard(store)

	_, err := guard.CheckUserLimits(ctx, "user-1", dec("10"), "gnf")
	assert.Equal(t, apperrors.KindLimitStateNotFound, apperrors.KindOf(err))

	_, err = guard.CheckUserLimits(ctx, "", dec("10"), "GNF")
	assert.ErrorIs(t, err, apperrors.ErrAuthenticationRequired)

	_, err = guard.CheckUserLimits(ctx, "user-1", dec("0"), "GNF")
	assert.Equal(t, apperrors.KindInvalidAmount, apperrors.KindOf(err))

	store.PutLimitState(limitState())
	res, err := guard.CheckUserLimits(ctx, "user-1", dec("10000"), "gnf")
	require.NoError(t, err)
	assert.True(t, res.CanTransfer)
}
