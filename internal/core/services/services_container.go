package services

import (
	"github.com/SscSPs/wallet_fx_engine/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/wallet_fx_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/wallet_fx_engine/internal/core/ports/services"
	"github.com/SscSPs/wallet_fx_engine/internal/platform/config"
	"github.com/SscSPs/wallet_fx_engine/internal/refdata"
)

// Gateways groups the external collaborators the services talk to.
// Nil GeoIP, GeoCache and RatePublisher are allowed and disable those features.
type Gateways struct {
	GeoIP         gateways.GeoIPLookup
	GeoCache      gateways.GeoCache
	Ledger        gateways.LedgerClient
	RatePublisher gateways.RateEventPublisher
	RateProviders []gateways.RateProvider
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, catalog *refdata.Catalog, repos portsrepo.RepositoryProvider, gw Gateways) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Currency = NewCurrencyService(repos.CurrencyRepo, catalog)

	strategies := make([]CountryStrategy, 0, 2)
	if gw.GeoIP != nil {
		geoOpts := []GeoIPStrategyOption{WithGeoTimeout(cfg.GeoIPTimeout)}
		if gw.GeoCache != nil {
			geoOpts = append(geoOpts, WithGeoCache(gw.GeoCache, cfg.GeoIPCacheTTL))
		}
		strategies = append(strategies, NewGeoIPStrategy(gw.GeoIP, catalog, geoOpts...))
	}
	strategies = append(strategies, NewTimezoneStrategy(catalog))
	container.CountryResolver = NewCountryResolver(catalog, strategies...)

	rateOpts := []ExchangeRateServiceOption{WithBaseCurrency(cfg.RateSyncBase)}
	if gw.RatePublisher != nil {
		rateOpts = append(rateOpts, WithRateEventPublisher(gw.RatePublisher))
	}
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo, container.Currency, rateOpts...)

	container.FeePolicy = NewFeePolicy(cfg.Fee)
	container.TransferLimit = NewTransferLimitGuard(repos.TransferLimitRepo)
	container.Simulator = NewConversionSimulator(container.Currency, container.ExchangeRate, container.FeePolicy)
	container.Transfer = NewTransferCoordinator(container.Simulator, container.TransferLimit, gw.Ledger)
	container.RateSync = NewRateSyncService(container.ExchangeRate, container.Currency, cfg.RateSyncBase, gw.RateProviders...)

	return container
}
