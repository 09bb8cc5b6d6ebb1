package services_test

import (
	"testing"

	"github.com/SscSPs/wallet_fx_engine/internal/apperrors"
	"github.com/SscSPs/wallet_fx_engine/internal/core/domain"
	"github.com/SscSPs/wallet_fx_engine/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeFees(t *testing.T) {
	policy := services.NewFeePolicy(domain.DefaultFeeStructure())
	fs := policy.DefaultFeeStructure()

	tests := []struct {
		name          string
		amount        string
		internalFee   string
		apiCommission string
		totalCharged  string
	}{
		{name: "clamps up to the floor", amount: "10", internalFee: "0.10", apiCommission: "0.01", totalCharged: "10.11"},
		{name: "inside the band", amount: "1000", internalFee: "5", apiCommission: "1", totalCharged: "1006"},
		{name: "clamps down to the ceiling", amount: "100000", internalFee: "20", apiCommission: "100", totalCharged: "100120"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fees, err := policy.ComputeFees(dec(tt.amount), fs)
			require.NoError(t, err)
			assert.True(t, fees.InternalFee.Equal(dec(tt.internalFee)), "internal fee %s", fees.InternalFee)
			assert.True(t, fees.APICommission.Equal(dec(tt.apiCommission)), "api commission %s", fees.APICommission)
			assert.True(t, fees.TotalFees.Equal(fees.InternalFee.Add(fees.APICommission)))
			assert.True(t, fees.TotalCharged.Equal(dec(tt.totalCharged)), "total charged %s", fees.TotalCharged)
			assert.True(t, fees.PlatformGain.Equal(fees.TotalFees))
		})
	}
}

func TestComputeFeesStaysInsideBand(t *testing.T) {
	policy := services.NewFeePolicy(domain.DefaultFeeStructure())
	fs := policy.DefaultFeeStructure()
	for _, raw := range []string{"0.01", "1", "19.99", "20", "21", "3999", "4000", "4001", "1e9"} {
		fees, err := policy.ComputeFees(dec(raw), fs)
		require.NoError(t, err)
		assert.True(t, fees.InternalFee.GreaterThanOrEqual(fs.InternalFeeMin), raw)
		assert.True(t, fees.InternalFee.LessThanOrEqual(fs.InternalFeeMax), raw)
	}
}

func TestComputeFeesRejectsNonPositive(t *testing.T) {
	policy := services.NewFeePolicy(domain.DefaultFeeStructure())
	for _, amount := range []decimal.Decimal{decimal.Zero, dec("-5")} {
		_, err := policy.ComputeFees(amount, policy.DefaultFeeStructure())
		require.Error(t, err)
		assert.Equal(t, apperrors.KindInvalidAmount, apperrors.KindOf(err))
	}
}
