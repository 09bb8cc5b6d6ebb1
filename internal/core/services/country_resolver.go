package services

import (
	"context"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/SscSPs/wallet_fx_engine/internal/core/domain"
	"github.com/SscSPs/wallet_fx_engine/internal/core/ports/gateways"
	portssvc "github.com/SscSPs/wallet_fx_engine/internal/core/ports/services"
	"github.com/SscSPs/wallet_fx_engine/internal/refdata"
)

// CountryStrategy is one way of guessing where a caller is. It returns false when
// it has no answer; strategies never fail the resolution.
type CountryStrategy interface {
	Name() string
	Resolve(ctx context.Context, signals domain.LocationSignals) (*domain.CountryCurrency, bool)
}

// CountryStrategyFunc adapts a function to CountryStrategy.
type CountryStrategyFunc struct {
	Label string
	Fn    func(ctx context.Context, signals domain.LocationSignals) (*domain.CountryCurrency, bool)
}

func (f CountryStrategyFunc) Name() string { return f.Label }

func (f CountryStrategyFunc) Resolve(ctx context.Context, signals domain.LocationSignals) (*domain.CountryCurrency, bool) {
	return f.Fn(ctx, signals)
}

// FirstSuccess runs strategies in order and returns the first answer.
func FirstSuccess(ctx context.Context, signals domain.LocationSignals, strategies ...CountryStrategy) (*domain.CountryCurrency, string, bool) {
	for _, strategy := range strategies {
		if ctx.Err() != nil {
			return nil, "", false
		}
		if result, ok := strategy.Resolve(ctx, signals); ok {
			return result, strategy.Name(), true
		}
	}
	return nil, "", false
}

// countryFromCatalog maps a country code to a CountryCurrency when both tables know it.
func countryFromCatalog(catalog *refdata.Catalog, countryCode, countryName string) (*domain.CountryCurrency, bool) {
	countryCode = normalizeCode(countryCode)
	if countryCode == "" {
		return nil, false
	}
	currencyCode, ok := catalog.CurrencyForCountry(countryCode)
	if !ok {
		return nil, false
	}
	currency, ok := catalog.Currency(currencyCode)
	if !ok {
		return nil, false
	}
	if countryName == "" {
		countryName = catalog.CountryName(countryCode)
	}
	return &domain.CountryCurrency{
		Country:     countryName,
		CountryCode: countryCode,
		Currency:    currencyCode,
		Flag:        currency.Flag,
	}, true
}

// GeoIPStrategy asks a geo-IP lookup for the caller's country.
type GeoIPStrategy struct {
	BaseService
	lookup   gateways.GeoIPLookup
	catalog  *refdata.Catalog
	timeout  time.Duration
	cache    gateways.GeoCache
	cacheTTL time.Duration
}

// GeoIPStrategyOption configures a GeoIPStrategy.
type GeoIPStrategyOption func(*GeoIPStrategy)

// WithGeoCache caches successful lookups for ttl.
func WithGeoCache(cache gateways.GeoCache, ttl time.Duration) GeoIPStrategyOption {
	return func(s *GeoIPStrategy) {
		s.cache = cache
		s.cacheTTL = ttl
	}
}

// WithGeoTimeout bounds every lookup.
func WithGeoTimeout(timeout time.Duration) GeoIPStrategyOption {
	return func(s *GeoIPStrategy) {
		s.timeout = timeout
	}
}

// NewGeoIPStrategy builds the geo-IP step of the resolver chain.
func NewGeoIPStrategy(lookup gateways.GeoIPLookup, catalog *refdata.Catalog, opts ...GeoIPStrategyOption) *GeoIPStrategy {
	s := &GeoIPStrategy{
		lookup:  lookup,
		catalog: catalog,
		timeout: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *GeoIPStrategy) Name() string { return "geoip" }

func (s *GeoIPStrategy) Resolve(ctx context.Context, signals domain.LocationSignals) (*domain.CountryCurrency, bool) {
	if s.lookup == nil {
		return nil, false
	}
	ip := strings.TrimSpace(signals.IP)
	if net.ParseIP(ip) == nil {
		return nil, false
	}

	if s.cache != nil {
		loc, hit, err := s.cache.Get(ctx, ip)
		if err != nil {
			s.LogWarn(ctx, "Geo cache read failed", slog.String("error", err.Error()))
		} else if hit {
			return countryFromCatalog(s.catalog, loc.CountryCode, loc.CountryName)
		}
	}

	lookupCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		lookupCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	loc, err := s.lookup.Lookup(lookupCtx, ip)
	if err != nil {
		s.LogWarn(ctx, "Geo-IP lookup failed, falling back", slog.String("error", err.Error()))
		return nil, false
	}
	if loc == nil || loc.CountryCode == "" {
		return nil, false
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, ip, *loc, s.cacheTTL); err != nil {
			s.LogWarn(ctx, "Geo cache write failed", slog.String("error", err.Error()))
		}
	}
	return countryFromCatalog(s.catalog, loc.CountryCode, loc.CountryName)
}

// TimezoneStrategy derives the country from an IANA timezone name.
type TimezoneStrategy struct {
	catalog *refdata.Catalog
}

// NewTimezoneStrategy builds the timezone step of the resolver chain.
func NewTimezoneStrategy(catalog *refdata.Catalog) *TimezoneStrategy {
	return &TimezoneStrategy{catalog: catalog}
}

func (s *TimezoneStrategy) Name() string { return "timezone" }

func (s *TimezoneStrategy) Resolve(_ context.Context, signals domain.LocationSignals) (*domain.CountryCurrency, bool) {
	tz := strings.TrimSpace(signals.Timezone)
	if tz == "" {
		return nil, false
	}
	countryCode, ok := s.catalog.CountryForTimezone(tz)
	if !ok {
		return nil, false
	}
	return countryFromCatalog(s.catalog, countryCode, "")
}

type countryResolver struct {
	BaseService
	catalog    *refdata.Catalog
	strategies []CountryStrategy
}

// NewCountryResolver composes strategies with FirstSuccess, in the given order.
func NewCountryResolver(catalog *refdata.Catalog, strategies ...CountryStrategy) portssvc.CountryResolverSvc {
	return &countryResolver{
		catalog:    catalog,
		strategies: strategies,
	}
}

func (r *countryResolver) ResolveCountryCurrency(ctx context.Context, signals domain.LocationSignals) (*domain.CountryCurrency, bool) {
	result, strategy, ok := FirstSuccess(ctx, signals, r.strategies...)
	if !ok {
		r.LogDebug(ctx, "No country strategy produced a currency")
		return nil, false
	}
	r.LogDebug(ctx, "Resolved country currency",
		slog.String("strategy", strategy),
		slog.String("country_code", result.CountryCode),
		slog.String("currency", result.Currency))
	return result, true
}

func (r *countryResolver) DefaultCurrencyForCountry(countryCode string) (string, bool) {
	return r.catalog.CurrencyForCountry(countryCode)
}
