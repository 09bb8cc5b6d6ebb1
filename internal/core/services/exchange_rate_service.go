package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/wallet_fx_engine/internal/apperrors"
	"github.com/SscSPs/wallet_fx_engine/internal/core/domain"
	"github.com/SscSPs/wallet_fx_engine/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/wallet_fx_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/wallet_fx_engine/internal/core/ports/services"
	"github.com/SscSPs/wallet_fx_engine/internal/utils"
	"github.com/SscSPs/wallet_fx_engine/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

const (
	defaultOverrideReason = "manual update"
	defaultHistoryLimit   = 50
	maxHistoryLimit       = 500
)

type exchangeRateService struct {
	BaseService
	rateRepo     portsrepo.ExchangeRateRepositoryFacade
	currencySvc  portssvc.CurrencyReaderSvc
	publisher    gateways.RateEventPublisher
	baseCurrency string
	now          func() time.Time
}

// ExchangeRateServiceOption configures the exchange rate service.
type ExchangeRateServiceOption func(*exchangeRateService)

// WithRateEventPublisher publishes a RateChanged event after each committed override.
func WithRateEventPublisher(p gateways.RateEventPublisher) ExchangeRateServiceOption {
	return func(s *exchangeRateService) {
		s.publisher = p
	}
}

// WithBaseCurrency sets the currency reported as most active when no rates exist.
func WithBaseCurrency(code string) ExchangeRateServiceOption {
	return func(s *exchangeRateService) {
		s.baseCurrency = normalizeCode(code)
	}
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) ExchangeRateServiceOption {
	return func(s *exchangeRateService) {
		s.now = now
	}
}

// NewExchangeRateService creates the exchange rate store service.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, currencySvc portssvc.CurrencyReaderSvc, opts ...ExchangeRateServiceOption) portssvc.ExchangeRateSvcFacade {
	s := &exchangeRateService{
		rateRepo:     rateRepo,
		currencySvc:  currencySvc,
		baseCurrency: "GNF",
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

// GetActiveRate retrieves the active rate for an ordered pair.
func (s *exchangeRateService) GetActiveRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	from, to, err := normalizePair(fromCode, toCode)
	if err != nil {
		return nil, err
	}
	rate, err := s.rateRepo.FindActiveRate(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange rate %s/%s: %w", from, to, err)
	}
	return rate, nil
}

func (s *exchangeRateService) ListActiveRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	rates, err := s.rateRepo.ListActiveRates(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list active exchange rates")
		return nil, fmt.Errorf("failed to list exchange rates: %w", err)
	}
	if rates == nil {
		return []domain.ExchangeRate{}, nil
	}
	return rates, nil
}

func (s *exchangeRateService) GetHistory(ctx context.Context, fromCode, toCode string, limit int, pageToken string) ([]domain.ExchangeRateHistoryEntry, string, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	filter := domain.HistoryFilter{
		FromCurrencyCode: normalizeCode(fromCode),
		ToCurrencyCode:   normalizeCode(toCode),
		Limit:            limit + 1,
	}
	if pageToken != "" {
		before, seq, err := pagination.DecodeToken(pageToken)
		if err != nil {
			return nil, "", apperrors.Wrap(apperrors.KindValidation, "invalid page token", err)
		}
		sequence, err := strconv.ParseInt(seq, 10, 64)
		if err != nil {
			return nil, "", apperrors.Wrap(apperrors.KindValidation, "invalid page token", err)
		}
		filter.BeforeUpdatedAt = &before
		filter.BeforeSequence = sequence
	}

	entries, err := s.rateRepo.ListHistory(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list exchange rate history")
		return nil, "", fmt.Errorf("failed to get exchange rate history: %w", err)
	}

	nextToken := ""
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		nextToken = pagination.EncodeToken(last.UpdatedAt, strconv.FormatInt(last.Sequence, 10))
	}
	if entries == nil {
		entries = []domain.ExchangeRateHistoryEntry{}
	}
	return entries, nextToken, nil
}

func (s *exchangeRateService) GetRateStatistics(ctx context.Context) (*domain.RateStatistics, error) {
	rates, err := s.ListActiveRates(ctx)
	if err != nil {
		return nil, err
	}

	stats := &domain.RateStatistics{TotalRates: len(rates), MostActiveCurrency: s.baseCurrency}
	counts := make(map[string]int)
	for _, r := range rates {
		switch r.Source {
		case domain.RateSourceManual:
			stats.ManualRates++
		case domain.RateSourceAPI:
			stats.APIRates++
		case domain.RateSourceFallback:
			stats.FallbackRates++
		}
		if stats.LastUpdated == nil || r.UpdatedAt.After(*stats.LastUpdated) {
			updated := r.UpdatedAt
			stats.LastUpdated = &updated
		}
		counts[r.FromCurrencyCode]++
	}

	codes := make([]string, 0, len(counts))
	for code := range counts {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	best := 0
	for _, code := range codes {
		if counts[code] > best {
			best = counts[code]
			stats.MostActiveCurrency = code
		}
	}
	return stats, nil
}

// SetRate replaces the active rate of a pair with a manual override.
func (s *exchangeRateService) SetRate(ctx context.Context, fromCode, toCode string, rate decimal.Decimal, actor, reason string) (*domain.RateOverrideResult, error) {
	return s.setRate(ctx, domain.RateUpdate{FromCurrencyCode: fromCode, ToCurrencyCode: toCode, Rate: rate}, domain.RateSourceManual, actor, reason)
}

func (s *exchangeRateService) SetManyRates(ctx context.Context, updates []domain.RateUpdate, actor, reason string) (*domain.BatchRateUpdateResult, error) {
	return s.ApplySourcedRates(ctx, updates, domain.RateSourceManual, actor, reason)
}

// ApplySourcedRates applies each update independently. A failing item never rolls
// back the others; only a missing actor fails the whole call.
func (s *exchangeRateService) ApplySourcedRates(ctx context.Context, updates []domain.RateUpdate, source domain.RateSource, actor, reason string) (*domain.BatchRateUpdateResult, error) {
	if strings.TrimSpace(actor) == "" {
		return nil, apperrors.ErrAuthenticationRequired
	}
	if !source.Valid() {
		return nil, apperrors.Newf(apperrors.KindValidation, "unknown rate source %q", source)
	}

	result := &domain.BatchRateUpdateResult{Results: make([]domain.RateUpdateResult, 0, len(updates))}
	for _, u := range updates {
		res, err := s.setRate(ctx, u, source, actor, reason)
		if err != nil {
			result.Results = append(result.Results, domain.ErrRateUpdate(u, err))
			continue
		}
		result.UpdatedCount++
		result.Results = append(result.Results, domain.OkRateUpdate(u, res.OldRate))
	}

	s.LogInfo(ctx, "Batch exchange rate update finished",
		slog.String("source", string(source)),
		slog.Int("requested", len(updates)),
		slog.Int("updated", result.UpdatedCount))
	return result, nil
}

func (s *exchangeRateService) setRate(ctx context.Context, u domain.RateUpdate, source domain.RateSource, actor, reason string) (*domain.RateOverrideResult, error) {
	if strings.TrimSpace(actor) == "" {
		return nil, apperrors.ErrAuthenticationRequired
	}
	if !u.Rate.IsPositive() {
		return nil, apperrors.Newf(apperrors.KindInvalidRate, "exchange rate must be positive, got %s", u.Rate.String())
	}
	from, to, err := normalizePair(u.FromCurrencyCode, u.ToCurrencyCode)
	if err != nil {
		return nil, err
	}
	for _, code := range []string{from, to} {
		if err := requireActiveCurrency(ctx, s.currencySvc, code); err != nil {
			return nil, err
		}
	}
	if strings.TrimSpace(reason) == "" {
		reason = defaultOverrideReason
	}

	override := domain.RateOverride{
		FromCurrencyCode: from,
		ToCurrencyCode:   to,
		Rate:             u.Rate,
		Source:           source,
		Actor:            actor,
		Reason:           reason,
		At:               s.now().UTC(),
	}
	result, err := s.rateRepo.ReplaceActiveRate(ctx, override)
	if err != nil {
		s.LogError(ctx, err, "Failed to replace active exchange rate",
			slog.String("from", from), slog.String("to", to))
		return nil, fmt.Errorf("failed to set exchange rate %s/%s: %w", from, to, err)
	}

	change := CalculateRateChange(result.OldRateOrZero(), u.Rate)
	s.LogInfo(ctx, "Exchange rate updated",
		slog.String("from", from),
		slog.String("to", to),
		slog.String("old_rate", result.OldRateOrZero().String()),
		slog.String("new_rate", u.Rate.String()),
		slog.String("change_pct", change.Percentage.StringFixed(4)),
		slog.String("direction", string(change.Direction)),
		slog.String("source", string(source)),
		slog.String("actor", actor))

	s.publish(ctx, result, reason)
	return result, nil
}

// publish is best-effort: the override is already committed.
func (s *exchangeRateService) publish(ctx context.Context, result *domain.RateOverrideResult, reason string) {
	if s.publisher == nil {
		return
	}
	event := domain.RateChangedEvent{
		ExchangeRateID:   result.Rate.ExchangeRateID,
		FromCurrencyCode: result.Rate.FromCurrencyCode,
		ToCurrencyCode:   result.Rate.ToCurrencyCode,
		OldRate:          result.OldRate,
		NewRate:          result.Rate.Rate,
		Source:           result.Rate.Source,
		UpdatedBy:        result.Rate.UpdatedBy,
		UpdatedAt:        result.Rate.UpdatedAt,
		Reason:           reason,
	}
	if err := s.publisher.PublishRateChanged(ctx, event); err != nil {
		s.LogWarn(ctx, "Failed to publish rate changed event",
			slog.String("exchange_rate_id", event.ExchangeRateID),
			slog.String("error", err.Error()))
	}
}

// normalizePair upper-cases both codes and rejects malformed or identical codes.
func normalizePair(fromCode, toCode string) (string, string, error) {
	from, to := normalizeCode(fromCode), normalizeCode(toCode)
	if len(from) != 3 || len(to) != 3 {
		return "", "", apperrors.NewValidationError("currency codes must be 3 letters")
	}
	if from == to {
		return "", "", apperrors.Newf(apperrors.KindInvalidCurrencyPair, "from and to currencies cannot both be %s", from)
	}
	return from, to, nil
}

var hundred = decimal.NewFromInt(100)

// CalculateRateChange returns the absolute percentage move from oldRate to newRate.
// A zero old rate (first rate for a pair) reports no change.
func CalculateRateChange(oldRate, newRate decimal.Decimal) domain.RateChange {
	if oldRate.IsZero() {
		return domain.RateChange{Percentage: decimal.Zero, Direction: domain.RateSame}
	}
	pct := newRate.Sub(oldRate).Div(oldRate).Mul(hundred)
	direction := domain.RateSame
	switch pct.Sign() {
	case 1:
		direction = domain.RateUp
	case -1:
		direction = domain.RateDown
	}
	return domain.RateChange{Percentage: pct.Abs(), Direction: direction}
}

// FormatRate renders a rate so the larger side reads as the whole number:
// "1 USD = 8695.6522 GNF" rather than "1 GNF = 0.0001 USD".
func FormatRate(rate decimal.Decimal, fromCode, toCode string) string {
	if !rate.IsPositive() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Sprintf("1 %s = %s %s", fromCode, utils.FormatWithPrecision(rate, 4), toCode)
	}
	return fmt.Sprintf("1 %s = %s %s", toCode, utils.FormatWithPrecision(decimal.NewFromInt(1).Div(rate), 4), fromCode)
}
