package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/wallet_fx_engine/internal/apperrors"
	"github.com/SscSPs/wallet_fx_engine/internal/core/domain"
	portssvc "github.com/SscSPs/wallet_fx_engine/internal/core/ports/services"
	"github.com/SscSPs/wallet_fx_engine/internal/core/services"
	"github.com/SscSPs/wallet_fx_engine/internal/refdata"
	"github.com/SscSPs/wallet_fx_engine/internal/repositories/memory"
	"github.com/stretchr/testify/suite"
)

type ConversionSimulatorTestSuite struct {
	suite.Suite
	currencies portssvc.CurrencySvcFacade
	rates      portssvc.ExchangeRateSvcFacade
	simulator  portssvc.ConversionSimulatorSvc
}

func (suite *ConversionSimulatorTestSuite) SetupTest() {
	ctx := context.Background()
	store := memory.NewStore()
	currencies := services.NewCurrencyService(store, refdata.MustDefault())
	_, err := currencies.SyncCatalog(ctx, domain.CatalogSyncActor)
	suite.Require().NoError(err)

	suite.currencies = currencies
	suite.rates = services.NewExchangeRateService(store, currencies)
	suite.simulator = services.NewConversionSimulator(currencies, suite.rates, services.NewFeePolicy(domain.DefaultFeeStructure()))

	_, err = suite.rates.SetRate(ctx, "GNF", "USD", dec("0.000115"), "admin-1", "seed")
	suite.Require().NoError(err)
}

func (suite *ConversionSimulatorTestSuite) TestGNFToUSDScenario() {
	sim, err := suite.simulator.Simulate(context.Background(), "GNF", "USD", dec("100000"))
	suite.Require().NoError(err)

	suite.True(sim.ConvertedAmount.Equal(dec("11.5")), sim.ConvertedAmount.String())
	suite.True(sim.InternalFees.Equal(dec("20")))
	suite.True(sim.APICommission.Equal(dec("100")))
	suite.True(sim.TotalFees.Equal(dec("120")))
	suite.True(sim.TotalCharged.Equal(dec("100120")))
	suite.True(sim.PlatformGain.Equal(dec("120")))
	suite.NotEmpty(sim.RateID)
	suite.False(sim.RateUpdatedAt.IsZero())
}

func (suite *ConversionSimulatorTestSuite) TestRejectsDeactivatedCurrency() {
	ctx := context.Background()
	suite.Require().NoError(suite.currencies.DeactivateCurrency(ctx, "USD", "admin-1"))

	sim, err := suite.simulator.Simulate(ctx, "GNF", "USD", dec("100000"))
	suite.Nil(sim)
	suite.Equal(apperrors.KindCurrencyNotFound, apperrors.KindOf(err))

	_, err = suite.rates.SetRate(ctx, "GNF", "USD", dec("0.000116"), "admin-1", "")
	suite.Equal(apperrors.KindCurrencyNotFound, apperrors.KindOf(err))
}

func (suite *ConversionSimulatorTestSuite) TestDeterministicForUnchangedRate() {
	ctx := context.Background()
	first, err := suite.simulator.Simulate(ctx, "gnf", "usd", dec("250000"))
	suite.Require().NoError(err)
	second, err := suite.simulator.Simulate(ctx, "GNF", "USD", dec("250000"))
	suite.Require().NoError(err)
	suite.True(first.SameQuote(*second))

	_, err = suite.rates.SetRate(ctx, "GNF", "USD", dec("0.000116"), "admin-1", "")
	suite.Require().NoError(err)
	third, err := suite.simulator.Simulate(ctx, "GNF", "USD", dec("250000"))
	suite.Require().NoError(err)
	suite.False(first.SameQuote(*third))
}

func (suite *ConversionSimulatorTestSuite) TestErrors() {
	ctx := context.Background()
	tests := []struct {
		name   string
		from   string
		to     string
		amount string
		kind   apperrors.Kind
	}{
		{name: "zero amount", from: "GNF", to: "USD", amount: "0", kind: apperrors.KindInvalidAmount},
		{name: "negative amount", from: "GNF", to: "USD", amount: "-10", kind: apperrors.KindInvalidAmount},
		{name: "same currency", from: "USD", to: "USD", amount: "10", kind: apperrors.KindInvalidCurrencyPair},
		{name: "unknown currency", from: "GNF", to: "ZZZ", amount: "10", kind: apperrors.KindCurrencyNotFound},
		{name: "no rate", from: "GNF", to: "EUR", amount: "10", kind: apperrors.KindRateNotFound},
		{name: "no inverse assumed", from: "USD", to: "GNF", amount: "10", kind: apperrors.KindRateNotFound},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			sim, err := suite.simulator.Simulate(ctx, tt.from, tt.to, dec(tt.amount))
			suite.Nil(sim)
			suite.Equal(tt.kind, apperrors.KindOf(err))
		})
	}
}

func TestConversionSimulatorTestSuite(t *testing.T) {
	suite.Run(t, new(ConversionSimulatorTestSuite))
}
