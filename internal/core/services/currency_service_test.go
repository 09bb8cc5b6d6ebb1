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

type CurrencyServiceTestSuite struct {
	suite.Suite
	catalog *refdata.Catalog
	service portssvc.CurrencySvcFacade
}

func (suite *CurrencyServiceTestSuite) SetupTest() {
	suite.catalog = refdata.MustDefault()
	suite.service = services.NewCurrencyService(memory.NewStore(), suite.catalog)
	n, err := suite.service.SyncCatalog(context.Background(), domain.CatalogSyncActor)
	suite.Require().NoError(err)
	suite.Require().Equal(len(suite.catalog.Currencies), n)
}

func (suite *CurrencyServiceTestSuite) TestSearchByCode() {
	res, err := suite.service.SearchCurrencies(context.Background(), "gnf")
	suite.Require().NoError(err)
	codes := make([]string, 0, len(res))
	for _, c := range res {
		codes = append(codes, c.CurrencyCode)
	}
	suite.Contains(codes, "GNF")
}

func (suite *CurrencyServiceTestSuite) TestSearchByCountryName() {
	res, err := suite.service.SearchCurrencies(context.Background(), "  GUINEA ")
	suite.Require().NoError(err)
	suite.NotEmpty(res)
	found := false
	for _, c := range res {
		if c.CurrencyCode == "GNF" {
			found = true
		}
	}
	suite.True(found)
}

func (suite *CurrencyServiceTestSuite) TestEmptySearchReturnsCatalog() {
	res, err := suite.service.SearchCurrencies(context.Background(), "")
	suite.Require().NoError(err)
	suite.Len(res, len(suite.catalog.Currencies))

	none, err := suite.service.SearchCurrencies(context.Background(), "no-such-currency")
	suite.Require().NoError(err)
	suite.Empty(none)
}

func (suite *CurrencyServiceTestSuite) TestGetCurrencyByCode() {
	ctx := context.Background()
	c, err := suite.service.GetCurrencyByCode(ctx, "usd")
	suite.Require().NoError(err)
	suite.Equal("USD", c.CurrencyCode)
	suite.True(c.IsActive)

	_, err = suite.service.GetCurrencyByCode(ctx, "ZZZ")
	suite.Equal(apperrors.KindCurrencyNotFound, apperrors.KindOf(err))

	_, err = suite.service.GetCurrencyByCode(ctx, "US")
	suite.Equal(apperrors.KindCurrencyNotFound, apperrors.KindOf(err))
}

func (suite *CurrencyServiceTestSuite) TestDeactivateSurvivesResync() {
	ctx := context.Background()
	suite.Require().NoError(suite.service.DeactivateCurrency(ctx, "EUR", "admin-1"))

	active, err := suite.service.ListActiveCurrencies(ctx)
	suite.Require().NoError(err)
	suite.Len(active, len(suite.catalog.Currencies)-1)

	_, err = suite.service.SyncCatalog(ctx, domain.CatalogSyncActor)
	suite.Require().NoError(err)
	eur, err := suite.service.GetCurrencyByCode(ctx, "EUR")
	suite.Require().NoError(err)
	suite.False(eur.IsActive)

	suite.ErrorIs(suite.service.DeactivateCurrency(ctx, "EUR", ""), apperrors.ErrAuthenticationRequired)
}

func (suite *CurrencyServiceTestSuite) TestFormatAmount() {
	ctx := context.Background()
	suite.Equal("$ 1 234,50", suite.service.FormatAmount(ctx, dec("1234.5"), "USD"))
	suite.Equal("12 XYZ", suite.service.FormatAmount(ctx, dec("12"), "xyz"))
}

func TestCurrencyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CurrencyServiceTestSuite))
}
