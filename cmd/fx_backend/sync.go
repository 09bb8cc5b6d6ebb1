package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/wallet_fx_engine/internal/core/domain"
	"github.com/SscSPs/wallet_fx_engine/internal/platform/config"
	"github.com/spf13/cobra"
)

var (
	syncCurrenciesCmd = &cobra.Command{
		Use:   "sync-currencies",
		Short: "Upsert the reference currency catalog into the store",
		RunE:  runSyncCurrencies,
	}

	syncRatesCmd = &cobra.Command{
		Use:   "sync-rates",
		Short: "Fetch rates from the configured providers and store both directions",
		RunE:  runSyncRates,
	}
)

func withApplication(fn func(ctx context.Context, app *application) error) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("cannot load config: %w", err)
	}
	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx := context.Background()
	app, err := buildApplication(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()
	return fn(ctx, app)
}

func runSyncCurrencies(cmd *cobra.Command, args []string) error {
	return withApplication(func(ctx context.Context, app *application) error {
		n, err := app.services.Currency.SyncCatalog(ctx, domain.CatalogSyncActor)
		if err != nil {
			return err
		}
		app.logger.Info("Currencies synced", slog.Int("count", n), slog.String("catalog_version", app.catalog.Version))
		return nil
	})
}

func runSyncRates(cmd *cobra.Command, args []string) error {
	return withApplication(func(ctx context.Context, app *application) error {
		report, err := app.services.RateSync.SyncRates(ctx)
		if err != nil {
			return err
		}
		failed := len(report.Result.Results) - report.Result.UpdatedCount
		app.logger.Info("Rates synced",
			slog.String("provider", report.Provider),
			slog.String("base", report.BaseCurrency),
			slog.Int("updated", report.Result.UpdatedCount),
			slog.Int("failed", failed))
		return nil
	})
}
