package ratesource

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/wallet_fx_engine/internal/core/domain"
	"github.com/SscSPs/wallet_fx_engine/internal/core/ports/gateways"
	"github.com/SscSPs/wallet_fx_engine/internal/refdata"
)

// StaticFallback serves the fallback rate table shipped with the reference catalog.
// It is registered last so it only runs when every live provider failed.
type StaticFallback struct {
	catalog *refdata.Catalog
	now     func() time.Time
}

var _ gateways.RateProvider = (*StaticFallback)(nil)

func NewStaticFallback(catalog *refdata.Catalog) *StaticFallback {
	return &StaticFallback{catalog: catalog, now: time.Now}
}

func (p *StaticFallback) Name() string { return "static-fallback" }

func (p *StaticFallback) Source() domain.RateSource { return domain.RateSourceFallback }

func (p *StaticFallback) FetchRates(_ context.Context, base string) (*gateways.ProviderRates, error) {
	fbBase, rates, err := p.catalog.Fallback()
	if err != nil {
		return nil, err
	}
	if fbBase == "" || len(rates) == 0 {
		return nil, fmt.Errorf("catalog has no fallback rates")
	}
	if !strings.EqualFold(fbBase, base) {
		return nil, fmt.Errorf("fallback rates are quoted against %s, not %s", fbBase, base)
	}
	return &gateways.ProviderRates{
		Base:      fbBase,
		Rates:     rates,
		FetchedAt: p.now().UTC(),
	}, nil
}
