package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/wallet_fx_engine/internal/core/domain"
	"github.com/SscSPs/wallet_fx_engine/internal/core/ports/gateways"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) FindActiveRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCode, toCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) ListActiveRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) ListHistory(ctx context.Context, filter domain.HistoryFilter) ([]domain.ExchangeRateHistoryEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRateHistoryEntry), args.Error(1)
}

func (m *MockExchangeRateRepository) ReplaceActiveRate(ctx context.Context, o domain.RateOverride) (*domain.RateOverrideResult, error) {
	args := m.Called(ctx, o)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateOverrideResult), args.Error(1)
}

// --- Mock CurrencyService ---
type MockCurrencyService struct {
	mock.Mock
}

func (m *MockCurrencyService) GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) ListActiveCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) SearchCurrencies(ctx context.Context, query string) ([]domain.Currency, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) FormatAmount(ctx context.Context, amount decimal.Decimal, code string) string {
	args := m.Called(ctx, amount, code)
	return args.String(0)
}

// --- Mock gateways ---
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

type MockRatePublisher struct {
	mock.Mock
}

func (m *MockRatePublisher) PublishRateChanged(ctx context.Context, event domain.RateChangedEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockRatePublisher) Close() error {
	return m.Called().Error(0)
}

type MockRateProvider struct {
	mock.Mock
	name   string
	source domain.RateSource
}

func (m *MockRateProvider) Name() string              { return m.name }
func (m *MockRateProvider) Source() domain.RateSource { return m.source }

func (m *MockRateProvider) FetchRates(ctx context.Context, base string) (*gateways.ProviderRates, error) {
	args := m.Called(ctx, base)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateways.ProviderRates), args.Error(1)
}

type MockGeoIPLookup struct {
	mock.Mock
}

func (m *MockGeoIPLookup) Lookup(ctx context.Context, ip string) (*gateways.GeoLocation, error) {
	args := m.Called(ctx, ip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateways.GeoLocation), args.Error(1)
}

type MockGeoCache struct {
	mock.Mock
}

func (m *MockGeoCache) Get(ctx context.Context, ip string) (*gateways.GeoLocation, bool, error) {
	args := m.Called(ctx, ip)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*gateways.GeoLocation), args.Bool(1), args.Error(2)
}

func (m *MockGeoCache) Set(ctx context.Context, ip string, loc gateways.GeoLocation, ttl time.Duration) error {
	return m.Called(ctx, ip, loc, ttl).Error(0)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
