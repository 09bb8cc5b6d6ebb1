// Package memory is an in-process implementation of the repository ports, used by
// the memory storage driver and by tests. A single RWMutex makes every override
// atomic with respect to readers.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/wallet_fx_engine/internal/apperrors"
	"github.com/SscSPs/wallet_fx_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_fx_engine/internal/core/ports/repositories"
	"github.com/google/uuid"
)

type pairKey struct {
	from, to string
}

// Store holds currencies, rates, rate history and limit snapshots.
type Store struct {
	mu         sync.RWMutex
	currencies map[string]domain.Currency
	active     map[pairKey]domain.ExchangeRate
	archived   []domain.ExchangeRate
	history    []domain.ExchangeRateHistoryEntry
	historySeq int64
	limits     map[pairKey]domain.TransferLimitState
}

var (
	_ portsrepo.CurrencyRepositoryFacade     = (*Store)(nil)
	_ portsrepo.ExchangeRateRepositoryFacade = (*Store)(nil)
	_ portsrepo.TransferLimitReader          = (*Store)(nil)
)

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		currencies: make(map[string]domain.Currency),
		active:     make(map[pairKey]domain.ExchangeRate),
		limits:     make(map[pairKey]domain.TransferLimitState),
	}
}

// NewRepositoryProvider exposes one store through every repository port.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CurrencyRepo:      store,
		ExchangeRateRepo:  store,
		TransferLimitRepo: store,
	}
}

func (s *Store) FindCurrencyByCode(_ context.Context, currencyCode string) (*domain.Currency, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.currencies[currencyCode]
	if !ok {
		return nil, apperrors.Newf(apperrors.KindCurrencyNotFound, "currency %s not found", currencyCode)
	}
	return &c, nil
}

func (s *Store) ListCurrencies(_ context.Context) ([]domain.Currency, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Currency, 0, len(s.currencies))
	for _, c := range s.currencies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CurrencyCode < out[j].CurrencyCode })
	return out, nil
}

// SaveCurrency upserts metadata. An existing row keeps its active flag and creation audit.
func (s *Store) SaveCurrency(_ context.Context, currency domain.Currency) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.currencies[currency.CurrencyCode]; ok {
		currency.IsActive = existing.IsActive
		currency.CreatedAt = existing.CreatedAt
		currency.CreatedBy = existing.CreatedBy
	}
	s.currencies[currency.CurrencyCode] = currency
	return nil
}

func (s *Store) DeactivateCurrency(_ context.Context, currencyCode, actor string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.currencies[currencyCode]
	if !ok {
		return apperrors.Newf(apperrors.KindCurrencyNotFound, "currency %s not found", currencyCode)
	}
	c.IsActive = false
	c.LastUpdatedAt = at
	c.LastUpdatedBy = actor
	s.currencies[currencyCode] = c
	return nil
}

func (s *Store) FindActiveRate(_ context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.active[pairKey{fromCurrencyCode, toCurrencyCode}]
	if !ok {
		return nil, apperrors.Newf(apperrors.KindRateNotFound, "no active rate for %s to %s", fromCurrencyCode, toCurrencyCode)
	}
	return &r, nil
}

func (s *Store) ListActiveRates(_ context.Context) ([]domain.ExchangeRate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ExchangeRate, 0, len(s.active))
	for _, r := range s.active {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FromCurrencyCode != out[j].FromCurrencyCode {
			return out[i].FromCurrencyCode < out[j].FromCurrencyCode
		}
		return out[i].ToCurrencyCode < out[j].ToCurrencyCode
	})
	return out, nil
}

// ListHistory returns entries ordered by (UpdatedAt, Sequence) descending.
func (s *Store) ListHistory(_ context.Context, filter domain.HistoryFilter) ([]domain.ExchangeRateHistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.ExchangeRateHistoryEntry, 0)
	for _, h := range s.history {
		if filter.FromCurrencyCode != "" && h.FromCurrencyCode != filter.FromCurrencyCode {
			continue
		}
		if filter.ToCurrencyCode != "" && h.ToCurrencyCode != filter.ToCurrencyCode {
			continue
		}
		if filter.BeforeUpdatedAt != nil && !olderThan(h, *filter.BeforeUpdatedAt, filter.BeforeSequence) {
			continue
		}
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].Sequence > out[j].Sequence
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func olderThan(h domain.ExchangeRateHistoryEntry, at time.Time, seq int64) bool {
	if h.UpdatedAt.Before(at) {
		return true
	}
	return h.UpdatedAt.Equal(at) && h.Sequence < seq
}

// ReplaceActiveRate archives the active rate, installs the new one and appends a
// history entry under one write lock.
func (s *Store) ReplaceActiveRate(_ context.Context, o domain.RateOverride) (*domain.RateOverrideResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairKey{o.FromCurrencyCode, o.ToCurrencyCode}
	result := &domain.RateOverrideResult{}
	if current, ok := s.active[key]; ok {
		old := current.Rate
		result.OldRate = &old
		current.IsActive = false
		s.archived = append(s.archived, current)
	}

	next := domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: o.FromCurrencyCode,
		ToCurrencyCode:   o.ToCurrencyCode,
		Rate:             o.Rate,
		Source:           o.Source,
		IsActive:         true,
		UpdatedBy:        o.Actor,
		UpdatedAt:        o.At,
	}
	s.active[key] = next
	s.historySeq++
	s.history = append(s.history, domain.ExchangeRateHistoryEntry{
		HistoryID:        uuid.NewString(),
		Sequence:         s.historySeq,
		FromCurrencyCode: o.FromCurrencyCode,
		ToCurrencyCode:   o.ToCurrencyCode,
		OldRate:          result.OldRate,
		NewRate:          o.Rate,
		Source:           o.Source,
		UpdatedBy:        o.Actor,
		UpdatedAt:        o.At,
		Reason:           o.Reason,
	})
	result.Rate = next
	return result, nil
}

// ArchivedRates returns inactive rate versions, oldest first.
func (s *Store) ArchivedRates() []domain.ExchangeRate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.ExchangeRate(nil), s.archived...)
}

func (s *Store) FindLimitState(_ context.Context, userID, currencyCode string) (*domain.TransferLimitState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.limits[pairKey{userID, currencyCode}]
	if !ok {
		return nil, apperrors.Newf(apperrors.KindLimitStateNotFound, "no limit state for user %s in %s", userID, currencyCode)
	}
	return &st, nil
}

// PutLimitState seeds or replaces a limit snapshot. The ledger owns these in
// production; the memory driver lets tests and local runs provide them.
func (s *Store) PutLimitState(state domain.TransferLimitState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limits[pairKey{state.UserID, state.Currency}] = state
}
