package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/wallet_fx_engine/internal/apperrors"
	"github.com/SscSPs/wallet_fx_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_fx_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/wallet_fx_engine/internal/core/ports/services"
	"github.com/SscSPs/wallet_fx_engine/internal/refdata"
	"github.com/SscSPs/wallet_fx_engine/internal/utils"
	"github.com/shopspring/decimal"
)

type currencyService struct {
	BaseService
	currencyRepo portsrepo.CurrencyRepositoryFacade
	catalog      *refdata.Catalog
	now          func() time.Time
}

// NewCurrencyService creates the currency registry over the given store and reference catalog.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade, catalog *refdata.Catalog) portssvc.CurrencySvcFacade {
	return &currencyService{
		currencyRepo: currencyRepo,
		catalog:      catalog,
		now:          time.Now,
	}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

func (s *currencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	code := normalizeCode(currencyCode)
	if len(code) != 3 {
		return nil, apperrors.Newf(apperrors.KindCurrencyNotFound, "currency code %q is not a 3-letter code", currencyCode)
	}
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get currency %s: %w", code, err)
	}
	return currency, nil
}

func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list currencies")
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}

func (s *currencyService) ListActiveCurrencies(ctx context.Context) ([]domain.Currency, error) {
	all, err := s.ListCurrencies(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]domain.Currency, 0, len(all))
	for _, c := range all {
		if c.IsActive {
			active = append(active, c)
		}
	}
	return active, nil
}

func (s *currencyService) SearchCurrencies(ctx context.Context, query string) ([]domain.Currency, error) {
	all, err := s.ListCurrencies(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return all, nil
	}
	matches := make([]domain.Currency, 0)
	for _, c := range all {
		if strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(strings.ToLower(c.CurrencyCode), q) ||
			strings.Contains(strings.ToLower(c.Country), q) {
			matches = append(matches, c)
		}
	}
	return matches, nil
}

func (s *currencyService) FormatAmount(ctx context.Context, amount decimal.Decimal, currencyCode string) string {
	currency, err := s.GetCurrencyByCode(ctx, currencyCode)
	if err != nil {
		if c, ok := s.catalog.Currency(currencyCode); ok {
			return utils.FormatAmount(amount, c.Symbol, c.DecimalPlaces)
		}
		return amount.String() + " " + normalizeCode(currencyCode)
	}
	return utils.FormatAmount(amount, currency.Symbol, currency.DecimalPlaces)
}

func (s *currencyService) SyncCatalog(ctx context.Context, actor string) (int, error) {
	if strings.TrimSpace(actor) == "" {
		return 0, apperrors.ErrAuthenticationRequired
	}
	now := s.now().UTC()
	synced := 0
	for _, c := range s.catalog.DomainCurrencies() {
		c.AuditFields = domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		}
		if err := s.currencyRepo.SaveCurrency(ctx, c); err != nil {
			s.LogError(ctx, err, "Failed to sync currency", slog.String("currency_code", c.CurrencyCode))
			return synced, fmt.Errorf("failed to sync currency %s: %w", c.CurrencyCode, err)
		}
		synced++
	}
	s.LogInfo(ctx, "Currency catalog synced",
		slog.String("catalog_version", s.catalog.Version),
		slog.Int("count", synced))
	return synced, nil
}

func (s *currencyService) DeactivateCurrency(ctx context.Context, currencyCode, actor string) error {
	if strings.TrimSpace(actor) == "" {
		return apperrors.ErrAuthenticationRequired
	}
	currency, err := s.GetCurrencyByCode(ctx, currencyCode)
	if err != nil {
		return err
	}
	if !currency.IsActive {
		return nil
	}
	if err := s.currencyRepo.DeactivateCurrency(ctx, currency.CurrencyCode, actor, s.now().UTC()); err != nil {
		return fmt.Errorf("failed to deactivate currency %s: %w", currency.CurrencyCode, err)
	}
	s.LogInfo(ctx, "Currency deactivated", slog.String("currency_code", currency.CurrencyCode), slog.String("actor", actor))
	return nil
}

// requireActiveCurrency treats a deactivated currency as unknown to pricing.
func requireActiveCurrency(ctx context.Context, currencies portssvc.CurrencyReaderSvc, code string) error {
	currency, err := currencies.GetCurrencyByCode(ctx, code)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindCurrencyNotFound {
			return apperrors.Newf(apperrors.KindCurrencyNotFound, "currency %s not found", code)
		}
		return fmt.Errorf("failed to validate currency %s: %w", code, err)
	}
	if !currency.IsActive {
		return apperrors.Newf(apperrors.KindCurrencyNotFound, "currency %s is not active", code)
	}
	return nil
}
