package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/SscSPs/wallet_fx_engine/internal/apperrors"
	"github.com/SscSPs/wallet_fx_engine/internal/core/domain"
	"github.com/SscSPs/wallet_fx_engine/internal/core/ports/gateways"
	portssvc "github.com/SscSPs/wallet_fx_engine/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

type rateSyncService struct {
	BaseService
	providers    []gateways.RateProvider
	rateSvc      portssvc.ExchangeRateWriterSvc
	currencySvc  portssvc.CurrencyReaderSvc
	baseCurrency string
}

// NewRateSyncService creates the sync job. Providers are tried in order; the first
// that answers wins.
func NewRateSyncService(rateSvc portssvc.ExchangeRateWriterSvc, currencySvc portssvc.CurrencyReaderSvc, baseCurrency string, providers ...gateways.RateProvider) portssvc.RateSyncSvc {
	return &rateSyncService{
		providers:    providers,
		rateSvc:      rateSvc,
		currencySvc:  currencySvc,
		baseCurrency: normalizeCode(baseCurrency),
	}
}

// SyncRates writes both directions of every base/quote pair the registry knows.
func (s *rateSyncService) SyncRates(ctx context.Context) (*domain.RateSyncReport, error) {
	var errs []error
	for _, provider := range s.providers {
		snapshot, err := provider.FetchRates(ctx, s.baseCurrency)
		if err != nil {
			s.LogWarn(ctx, "Rate provider failed, trying next",
				slog.String("provider", provider.Name()),
				slog.String("error", err.Error()))
			errs = append(errs, fmt.Errorf("%s: %w", provider.Name(), err))
			continue
		}

		updates, rejected := s.bidirectionalUpdates(ctx, snapshot)
		result, err := s.rateSvc.ApplySourcedRates(ctx, updates, provider.Source(), domain.RateSyncActor,
			fmt.Sprintf("sync from %s", provider.Name()))
		if err != nil {
			return nil, err
		}
		result.Results = append(result.Results, rejected...)
		return &domain.RateSyncReport{
			Provider:     provider.Name(),
			Source:       provider.Source(),
			BaseCurrency: snapshot.Base,
			FetchedAt:    snapshot.FetchedAt,
			Result:       *result,
		}, nil
	}
	if len(errs) == 0 {
		return nil, apperrors.New(apperrors.KindProviderUnavailable, "no rate providers configured")
	}
	return nil, apperrors.Wrap(apperrors.KindProviderUnavailable, "all rate providers failed", errors.Join(errs...))
}

// bidirectionalUpdates builds base->quote and quote->base updates, skipping codes the
// registry does not price and non-positive quotes. Lookups that fail for any other
// reason come back as failed results for both directions.
func (s *rateSyncService) bidirectionalUpdates(ctx context.Context, snapshot *gateways.ProviderRates) ([]domain.RateUpdate, []domain.RateUpdateResult) {
	codes := make([]string, 0, len(snapshot.Rates))
	for code := range snapshot.Rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	one := decimal.NewFromInt(1)
	updates := make([]domain.RateUpdate, 0, 2*len(codes))
	var rejected []domain.RateUpdateResult
	for _, code := range codes {
		rate := snapshot.Rates[code]
		if code == snapshot.Base || !rate.IsPositive() {
			continue
		}
		forward := domain.RateUpdate{FromCurrencyCode: snapshot.Base, ToCurrencyCode: code, Rate: rate}
		inverse := domain.RateUpdate{FromCurrencyCode: code, ToCurrencyCode: snapshot.Base, Rate: one.DivRound(rate, 12)}
		if err := requireActiveCurrency(ctx, s.currencySvc, code); err != nil {
			if apperrors.KindOf(err) == apperrors.KindCurrencyNotFound {
				continue
			}
			s.LogError(ctx, err, "Currency lookup failed during rate sync", slog.String("currency", code))
			rejected = append(rejected, domain.ErrRateUpdate(forward, err), domain.ErrRateUpdate(inverse, err))
			continue
		}
		updates = append(updates, forward, inverse)
	}
	return updates, rejected
}
