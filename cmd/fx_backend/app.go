package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/SscSPs/wallet_fx_engine/internal/adapters/cache"
	"github.com/SscSPs/wallet_fx_engine/internal/adapters/events"
	"github.com/SscSPs/wallet_fx_engine/internal/adapters/geoip"
	"github.com/SscSPs/wallet_fx_engine/internal/adapters/ledger"
	"github.com/SscSPs/wallet_fx_engine/internal/adapters/ratesource"
	"github.com/SscSPs/wallet_fx_engine/internal/core/domain"
	"github.com/SscSPs/wallet_fx_engine/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/wallet_fx_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/wallet_fx_engine/internal/core/ports/services"
	"github.com/SscSPs/wallet_fx_engine/internal/core/services"
	"github.com/SscSPs/wallet_fx_engine/internal/platform/config"
	"github.com/SscSPs/wallet_fx_engine/internal/refdata"
	"github.com/SscSPs/wallet_fx_engine/internal/repositories/database/pgsql"
	"github.com/SscSPs/wallet_fx_engine/internal/repositories/memory"
	"github.com/SscSPs/wallet_fx_engine/pkg/database"
	"github.com/redis/go-redis/v9"
)

// application is everything the commands share, plus the cleanups to run on exit.
type application struct {
	cfg      *config.Config
	logger   *slog.Logger
	catalog  *refdata.Catalog
	services *portssvc.ServiceContainer
	redis    *redis.Client
	closers  []func()
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

// buildApplication wires storage, gateways and services from cfg. Optional
// collaborators (redis, geo-ip, kafka) are skipped when not configured.
func buildApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{cfg: cfg, logger: logger}

	catalog, err := refdata.Load(cfg.RefDataPath)
	if err != nil {
		return nil, err
	}
	app.catalog = catalog
	logger.Info("Reference catalog loaded",
		slog.String("version", catalog.Version),
		slog.Int("currencies", len(catalog.Currencies)))

	repos, err := app.repositories(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}

	gw := services.Gateways{
		RateProviders: []gateways.RateProvider{
			ratesource.NewExchangeRateAPI(cfg.RateSyncURL, cfg.RateSyncTimeout),
			ratesource.NewStaticFallback(catalog),
		},
	}

	if cfg.RedisURL != "" {
		client, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.redis = client
		app.closers = append(app.closers, func() { _ = client.Close() })
		gw.GeoCache = cache.NewRedisGeoCache(client)
		logger.Info("Redis connected")
	}

	if cfg.GeoIPDBPath != "" {
		lookup, err := geoip.OpenMaxMind(cfg.GeoIPDBPath)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.closers = append(app.closers, func() { _ = lookup.Close() })
		gw.GeoIP = lookup
	} else if cfg.GeoIPHTTPURL != "" {
		gw.GeoIP = geoip.NewHTTPLookup(cfg.GeoIPHTTPURL, cfg.GeoIPTimeout)
	}

	if len(cfg.KafkaBrokers) > 0 {
		publisher := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaRateTopic, logger)
		app.closers = append(app.closers, func() {
			if err := publisher.Close(); err != nil {
				logger.Warn("Failed to close kafka publisher", slog.String("error", err.Error()))
			}
		})
		gw.RatePublisher = publisher
	}

	if cfg.LedgerURL != "" {
		gw.Ledger = ledger.NewHTTPClient(cfg.LedgerURL, cfg.LedgerTimeout)
	}

	app.services = services.NewServiceContainer(cfg, catalog, repos, gw)

	if cfg.StorageDriver == config.StorageDriverMemory {
		n, err := app.services.Currency.SyncCatalog(ctx, domain.CatalogSyncActor)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to seed memory store: %w", err)
		}
		logger.Warn("Using in-memory storage, data is lost on restart", slog.Int("currencies", n))
	}
	return app, nil
}

func (a *application) repositories(ctx context.Context) (portsrepo.RepositoryProvider, error) {
	if a.cfg.StorageDriver == config.StorageDriverMemory {
		return memory.NewRepositoryProvider(memory.NewStore()), nil
	}
	pool, err := database.NewPgxPool(ctx, a.cfg.DatabaseURL, a.cfg.EnableDBCheck)
	if err != nil {
		return portsrepo.RepositoryProvider{}, fmt.Errorf("failed to initialize database pool: %w", err)
	}
	a.closers = append(a.closers, func() { database.ClosePgxPool(pool) })
	a.logger.Info("Database connection pool established.")
	return pgsql.NewRepositoryProvider(pool), nil
}

// Close releases resources in reverse order of acquisition.
func (a *application) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
