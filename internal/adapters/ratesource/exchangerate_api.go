// Package ratesource provides RateProvider implementations for rate sync.
package ratesource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/wallet_fx_engine/internal/core/domain"
	"github.com/SscSPs/wallet_fx_engine/internal/core/ports/gateways"
	"github.com/shopspring/decimal"
)

// ExchangeRateAPI fetches GET {baseURL}/{BASE} from an exchangerate-api.com style endpoint.
type ExchangeRateAPI struct {
	baseURL string
	client  *http.Client
	now     func() time.Time
}

var _ gateways.RateProvider = (*ExchangeRateAPI)(nil)

type latestResponse struct {
	Base  string                     `json:"base"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

func NewExchangeRateAPI(baseURL string, timeout time.Duration) *ExchangeRateAPI {
	return &ExchangeRateAPI{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		now:     time.Now,
	}
}

func (p *ExchangeRateAPI) Name() string { return "exchangerate-api" }

func (p *ExchangeRateAPI) Source() domain.RateSource { return domain.RateSourceAPI }

func (p *ExchangeRateAPI) FetchRates(ctx context.Context, base string) (*gateways.ProviderRates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/"+strings.ToUpper(base), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rate provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rate provider returned status %d", resp.StatusCode)
	}

	var body latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode rate provider response: %w", err)
	}
	if len(body.Rates) == 0 {
		return nil, fmt.Errorf("rate provider returned no rates")
	}
	if body.Base == "" {
		body.Base = strings.ToUpper(base)
	}
	return &gateways.ProviderRates{
		Base:      strings.ToUpper(body.Base),
		Rates:     body.Rates,
		FetchedAt: p.now().UTC(),
	}, nil
}
