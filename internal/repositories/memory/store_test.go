package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/wallet_fx_engine/internal/apperrors"
	"github.com/SscSPs/wallet_fx_engine/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func override(rate string, at time.Time) domain.RateOverride {
	return domain.RateOverride{
		FromCurrencyCode: "GNF",
		ToCurrencyCode:   "USD",
		Rate:             decimal.RequireFromString(rate),
		Source:           domain.RateSourceManual,
		Actor:            "admin",
		Reason:           "manual update",
		At:               at,
	}
}

func TestReplaceActiveRateArchivesPrevious(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	first, err := s.ReplaceActiveRate(ctx, override("0.000115", t0))
	require.NoError(t, err)
	assert.Nil(t, first.OldRate)

	second, err := s.ReplaceActiveRate(ctx, override("0.00012", t0.Add(time.Minute)))
	require.NoError(t, err)
	require.NotNil(t, second.OldRate)
	assert.Equal(t, "0.000115", second.OldRate.String())

	active, err := s.FindActiveRate(ctx, "GNF", "USD")
	require.NoError(t, err)
	assert.Equal(t, second.Rate.ExchangeRateID, active.ExchangeRateID)
	assert.True(t, active.IsActive)

	archived := s.ArchivedRates()
	require.Len(t, archived, 1)
	assert.False(t, archived[0].IsActive)
	assert.Equal(t, first.Rate.ExchangeRateID, archived[0].ExchangeRateID)

	hist, err := s.ListHistory(ctx, domain.HistoryFilter{FromCurrencyCode: "GNF", ToCurrencyCode: "USD"})
	require.NoError(t, err)
	require.Len(t, hist, 2)
	assert.Equal(t, "0.00012", hist[0].NewRate.String())
	assert.Nil(t, hist[1].OldRate)
}

func TestFindActiveRateNotFound(t *testing.T) {
	_, err := NewStore().FindActiveRate(context.Background(), "GNF", "EUR")
	assert.ErrorIs(t, err, apperrors.ErrRateNotFound)
}

func TestListHistoryCursor(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := s.ReplaceActiveRate(ctx, override(fmt.Sprintf("0.0001%d", i+1), t0.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, err)
	}

	page1, err := s.ListHistory(ctx, domain.HistoryFilter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page1, 2)
	assert.Equal(t, "0.00015", page1[0].NewRate.String())

	last := page1[len(page1)-1]
	page2, err := s.ListHistory(ctx, domain.HistoryFilter{Limit: 10, BeforeUpdatedAt: &last.UpdatedAt, BeforeSequence: last.Sequence})
	require.NoError(t, err)
	require.Len(t, page2, 3)
	assert.Equal(t, "0.00013", page2[0].NewRate.String())
}

func TestListHistorySameTimestampNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, rate := range []string{"0.00011", "0.00012", "0.00013"} {
		_, err := s.ReplaceActiveRate(ctx, override(rate, at))
		require.NoError(t, err)
	}

	page1, err := s.ListHistory(ctx, domain.HistoryFilter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, page1, 1)
	assert.Equal(t, "0.00013", page1[0].NewRate.String())

	page2, err := s.ListHistory(ctx, domain.HistoryFilter{Limit: 10, BeforeUpdatedAt: &at, BeforeSequence: page1[0].Sequence})
	require.NoError(t, err)
	require.Len(t, page2, 2)
	assert.Equal(t, "0.00012", page2[0].NewRate.String())
	assert.Equal(t, "0.00011", page2[1].NewRate.String())
}

func TestConcurrentOverridesNeverExposeGap(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	t0 := time.Now().UTC()
	_, err := s.ReplaceActiveRate(ctx, override("0.0001", t0))
	require.NoError(t, err)

	var wg sync.WaitGroup
	stop := make(chan struct{})
	misses := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			if _, err := s.FindActiveRate(ctx, "GNF", "USD"); err != nil {
				select {
				case misses <- err:
				default:
				}
				return
			}
		}
	}()

	var writers sync.WaitGroup
	for i := 0; i < 20; i++ {
		writers.Add(1)
		go func(i int) {
			defer writers.Done()
			_, err := s.ReplaceActiveRate(ctx, override(fmt.Sprintf("0.0001%d", i), t0.Add(time.Duration(i+1)*time.Second)))
			assert.NoError(t, err)
		}(i)
	}
	writers.Wait()
	close(stop)
	wg.Wait()

	select {
	case err := <-misses:
		t.Fatalf("reader saw no active rate: %v", err)
	default:
	}

	rates, err := s.ListActiveRates(ctx)
	require.NoError(t, err)
	assert.Len(t, rates, 1)
	assert.Len(t, s.ArchivedRates(), 20)
	hist, err := s.ListHistory(ctx, domain.HistoryFilter{})
	require.NoError(t, err)
	assert.Len(t, hist, 21)
}

func TestSaveCurrencyKeepsActiveFlag(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.SaveCurrency(ctx, domain.Currency{CurrencyCode: "GNF", Name: "Franc", IsActive: true}))
	require.NoError(t, s.DeactivateCurrency(ctx, "GNF", "admin", time.Now()))
	require.NoError(t, s.SaveCurrency(ctx, domain.Currency{CurrencyCode: "GNF", Name: "Franc guinéen", IsActive: true}))

	c, err := s.FindCurrencyByCode(ctx, "GNF")
	require.NoError(t, err)
	assert.False(t, c.IsActive)
	assert.Equal(t, "Franc guinéen", c.Name)

	assert.ErrorIs(t, s.DeactivateCurrency(ctx, "XXX", "admin", time.Now()), apperrors.ErrCurrencyNotFound)
}

func TestLimitState(t *testing.T) {
	s := NewStore()
	_, err := s.FindLimitState(context.Background(), "u1", "GNF")
	assert.ErrorIs(t, err, apperrors.ErrLimitStateNotFound)

	s.PutLimitState(domain.TransferLimitState{UserID: "u1", Currency: "GNF", Balance: decimal.NewFromInt(100)})
	st, err := s.FindLimitState(context.Background(), "u1", "GNF")
	require.NoError(t, err)
	assert.Equal(t, "100", st.Balance.String())
}
