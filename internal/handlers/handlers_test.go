package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/wallet_fx_engine/internal/core/domain"
	portssvc "github.com/SscSPs/wallet_fx_engine/internal/core/ports/services"
	"github.com/SscSPs/wallet_fx_engine/internal/core/services"
	"github.com/SscSPs/wallet_fx_engine/internal/dto"
	"github.com/SscSPs/wallet_fx_engine/internal/handlers"
	"github.com/SscSPs/wallet_fx_engine/internal/middleware"
	"github.com/SscSPs/wallet_fx_engine/internal/platform/config"
	"github.com/SscSPs/wallet_fx_engine/internal/refdata"
	"github.com/SscSPs/wallet_fx_engine/internal/repositories/memory"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	testSecret = "handler-test-secret"
	testIssuer = "fx-test"
)

type MockLedgerClient struct {
	mock.Mock
}

func (m *MockLedgerClient) PerformTransfer(ctx context.Context, t domain.LedgerTransfer) (*domain.LedgerTransferResult, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerTransferResult), args.Error(1)
}

type HandlersTestSuite struct {
	suite.Suite
	router     *gin.Engine
	store      *memory.Store
	services   *portssvc.ServiceContainer
	ledger     *MockLedgerClient
	userToken  string
	adminToken string
}

func (s *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWTSecret:    testSecret,
		JWTIssuer:    testIssuer,
		IsProduction: true,
		Fee:          domain.DefaultFeeStructure(),
		RateSyncBase: "GNF",
	}
	catalog := refdata.MustDefault()
	s.store = memory.NewStore()
	s.ledger = new(MockLedgerClient)
	s.services = services.NewServiceContainer(cfg, catalog, memory.NewRepositoryProvider(s.store), services.Gateways{Ledger: s.ledger})

	ctx := context.Background()
	_, err := s.services.Currency.SyncCatalog(ctx, domain.CatalogSyncActor)
	s.Require().NoError(err)
	_, err = s.services.ExchangeRate.SetRate(ctx, "GNF", "USD", decimal.RequireFromString("0.000115"), "admin-1", "seed")
	s.Require().NoError(err)

	s.router = gin.New()
	s.router.Use(middleware.StructuredLoggingMiddleware(middleware.GetLoggerFromCtx(ctx)))
	handlers.RegisterRoutes(s.router, cfg, s.services, handlers.RouteDeps{})

	s.userToken, err = middleware.IssueToken(testSecret, testIssuer, "user-1", middleware.RoleUser, time.Hour)
	s.Require().NoError(err)
	s.adminToken, err = middleware.IssueToken(testSecret, testIssuer, "admin-1", middleware.RoleAdmin, time.Hour)
	s.Require().NoError(err)
}

func (s *HandlersTestSuite) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlersTestSuite) decodeError(w *httptest.ResponseRecorder) dto.ErrorBody {
	var res dto.ErrorResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	return res.Error
}

func (s *HandlersTestSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("OK", w.Body.String())
}

func (s *HandlersTestSuite) TestRoutesRequireToken() {
	w := s.do(http.MethodGet, "/api/v1/currencies", "", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("AuthenticationRequired", string(s.decodeError(w).Kind))
}

func (s *HandlersTestSuite) TestSearchCurrencies() {
	w := s.do(http.MethodGet, "/api/v1/currencies?q=gnf", s.userToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var res []dto.CurrencyResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	s.Require().NotEmpty(res)
	s.Equal("GNF", res[0].CurrencyCode)

	w = s.do(http.MethodGet, "/api/v1/currencies", s.userToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var all []dto.CurrencyResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &all))
	s.Len(all, len(refdata.MustDefault().Currencies))
}

func (s *HandlersTestSuite) TestGetUnknownCurrency() {
	w := s.do(http.MethodGet, "/api/v1/currencies/ZZZ", s.userToken, nil)
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("CurrencyNotFound", string(s.decodeError(w).Kind))
}

func (s *HandlersTestSuite) TestGetActiveRate() {
	w := s.do(http.MethodGet, "/api/v1/exchange-rates/GNF/USD", s.userToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var res dto.ExchangeRateResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	s.Equal("0.000115", res.Rate.String())
	s.Equal(domain.RateSourceManual, res.Source)

	w = s.do(http.MethodGet, "/api/v1/exchange-rates/GNF/EUR", s.userToken, nil)
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("RateNotFound", string(s.decodeError(w).Kind))

	w = s.do(http.MethodGet, "/api/v1/exchange-rates/USD/USD", s.userToken, nil)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("InvalidCurrencyPair", string(s.decodeError(w).Kind))
}

func (s *HandlersTestSuite) TestSetRateRequiresAdmin() {
	body := map[string]string{"rate": "0.00012"}
	w := s.do(http.MethodPut, "/api/v1/exchange-rates/GNF/USD", s.userToken, body)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.do(http.MethodPut, "/api/v1/exchange-rates/GNF/USD", s.adminToken, body)
	s.Require().Equal(http.StatusOK, w.Code)
	var res dto.SetRateResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	s.Require().NotNil(res.OldRate)
	s.Equal("0.000115", res.OldRate.String())
	s.Require().NotNil(res.Change)
	s.Equal(domain.RateUp, res.Change.Direction)

	w = s.do(http.MethodPut, "/api/v1/exchange-rates/GNF/USD", s.adminToken, map[string]string{"rate": "-1"})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("InvalidRate", string(s.decodeError(w).Kind))
}

func (s *HandlersTestSuite) TestBatchReportsPerItem() {
	body := map[string]any{
		"updates": []map[string]string{
			{"fromCurrencyCode": "GNF", "toCurrencyCode": "EUR", "rate": "0.000106"},
			{"fromCurrencyCode": "GNF", "toCurrencyCode": "ZZZ", "rate": "1"},
		},
	}
	w := s.do(http.MethodPost, "/api/v1/exchange-rates/batch", s.adminToken, body)
	s.Require().Equal(http.StatusOK, w.Code)

	var res domain.BatchRateUpdateResult
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	s.Equal(1, res.UpdatedCount)
	s.Require().Len(res.Results, 2)
	s.True(res.Results[0].OK)
	s.False(res.Results[1].OK)
	s.Equal("CurrencyNotFound", string(res.Results[1].ErrKind))
}

func (s *HandlersTestSuite) TestHistoryPaging() {
	ctx := context.Background()
	for _, r := range []string{"0.00012", "0.000125"} {
		_, err := s.services.ExchangeRate.SetRate(ctx, "GNF", "USD", decimal.RequireFromString(r), "admin-1", "")
		s.Require().NoError(err)
	}

	w := s.do(http.MethodGet, "/api/v1/exchange-rates/history?from=GNF&to=USD&limit=2", s.userToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var page dto.HistoryResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &page))
	s.Len(page.Entries, 2)
	s.NotEmpty(page.NextPageToken)

	w = s.do(http.MethodGet, "/api/v1/exchange-rates/history?from=GNF&to=USD&limit=2&pageToken="+page.NextPageToken, s.userToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var next dto.HistoryResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &next))
	s.Require().Len(next.Entries, 1)
	s.Empty(next.NextPageToken)

	seen := map[string]bool{}
	nilOld := 0
	for _, e := range append(page.Entries, next.Entries...) {
		seen[e.HistoryID] = true
		if e.OldRate == nil {
			nilOld++
		}
	}
	s.Len(seen, 3)
	s.Equal(1, nilOld)
}

func (s *HandlersTestSuite) TestSimulationScenario() {
	body := map[string]string{"fromCurrency": "GNF", "toCurrency": "USD", "amount": "100000"}
	w := s.do(http.MethodPost, "/api/v1/simulations", s.userToken, body)
	s.Require().Equal(http.StatusOK, w.Code)

	var sim dto.SimulationResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &sim))
	s.True(sim.ConvertedAmount.Equal(decimal.RequireFromString("11.5")))
	s.True(sim.InternalFees.Equal(decimal.NewFromInt(20)))
	s.True(sim.APICommission.Equal(decimal.NewFromInt(100)))
	s.True(sim.TotalFees.Equal(decimal.NewFromInt(120)))
	s.True(sim.TotalCharged.Equal(decimal.NewFromInt(100120)))
	s.NotEmpty(sim.RateID)
	s.NotEmpty(sim.FormattedAmount)

	w = s.do(http.MethodPost, "/api/v1/simulations", s.userToken, map[string]string{"fromCurrency": "GNF", "toCurrency": "USD", "amount": "0"})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("InvalidAmount", string(s.decodeError(w).Kind))
}

func (s *HandlersTestSuite) TestLimitCheck() {
	w := s.do(http.MethodPost, "/api/v1/limits/check", s.userToken, map[string]string{"currency": "GNF", "amount": "1000"})
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("LimitStateNotFound", string(s.decodeError(w).Kind))

	s.store.PutLimitState(domain.TransferLimitState{
		UserID: "user-1", Currency: "GNF",
		Balance:    decimal.NewFromInt(1000000),
		DailyLimit: decimal.NewFromInt(500000), DailyUsed: decimal.NewFromInt(450000),
		MonthlyLimit: decimal.NewFromInt(5000000), MonthlyUsed: decimal.Zero,
	})
	w = s.do(http.MethodPost, "/api/v1/limits/check", s.userToken, map[string]string{"currency": "GNF", "amount": "100000"})
	s.Require().Equal(http.StatusOK, w.Code)
	var res domain.LimitCheckResult
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	s.False(res.CanTransfer)
	s.Equal("DailyLimitExceeded", string(res.Reason))
	s.True(res.DailyRemaining.Equal(decimal.NewFromInt(50000)))
}

func (s *HandlersTestSuite) TestCountryCurrencyFromTimezone() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/country-currency", nil)
	req.Header.Set("Authorization", "Bearer "+s.userToken)
	req.Header.Set("X-Timezone", "Africa/Conakry")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Require().Equal(http.StatusOK, w.Code)
	var res dto.CountryCurrencyResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	s.True(res.Resolved)
	s.Equal("GN", res.CountryCode)
	s.Equal("GNF", res.Currency)

	w = s.do(http.MethodGet, "/api/v1/country-currency?timezone=Mars/Olympus", s.userToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var none dto.CountryCurrencyResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &none))
	s.False(none.Resolved)
}

func (s *HandlersTestSuite) TestCommitTransfer() {
	s.store.PutLimitState(domain.TransferLimitState{
		UserID: "user-1", Currency: "GNF",
		Balance:    decimal.NewFromInt(1000000),
		DailyLimit: decimal.NewFromInt(500000), DailyUsed: decimal.Zero,
		MonthlyLimit: decimal.NewFromInt(5000000), MonthlyUsed: decimal.Zero,
	})
	preview, err := s.services.Simulator.Simulate(context.Background(), "GNF", "USD", decimal.NewFromInt(100000))
	s.Require().NoError(err)

	s.ledger.On("PerformTransfer", mock.Anything, mock.MatchedBy(func(t domain.LedgerTransfer) bool {
		return t.SenderID == "user-1" && t.ReceiverID == "user-2" && t.Reference == "ref-1"
	})).Return(&domain.LedgerTransferResult{
		AppliedRate:      preview.CurrentRate,
		AppliedFees:      preview.TotalFees,
		NewSenderBalance: decimal.NewFromInt(899880),
		TransactionID:    "tx-1",
	}, nil).Once()

	body := dto.CreateTransferRequest{
		ReceiverID:   "user-2",
		FromCurrency: "GNF",
		ToCurrency:   "USD",
		Amount:       decimal.NewFromInt(100000),
		Reference:    "ref-1",
		Preview:      *preview,
	}
	w := s.do(http.MethodPost, "/api/v1/transfers", s.userToken, body)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var receipt domain.TransferReceipt
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &receipt))
	s.Equal(domain.TransferCommitted, receipt.Status)
	s.Equal("tx-1", receipt.TransactionID)
	s.ledger.AssertExpectations(s.T())

	// the rate moves after the preview, so the same preview is now stale
	_, err = s.services.ExchangeRate.SetRate(context.Background(), "GNF", "USD", decimal.RequireFromString("0.00012"), "admin-1", "")
	s.Require().NoError(err)
	w = s.do(http.MethodPost, "/api/v1/transfers", s.userToken, body)
	s.Equal(http.StatusConflict, w.Code)
	s.Equal("QuoteExpired", string(s.decodeError(w).Kind))
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}

func TestSwaggerDisabledInProduction(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers.RegisterRoutes(r, &config.Config{IsProduction: true, JWTSecret: testSecret}, &portssvc.ServiceContainer{}, handlers.RouteDeps{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
}
