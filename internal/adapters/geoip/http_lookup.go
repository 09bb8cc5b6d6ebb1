package geoip

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SscSPs/wallet_fx_engine/internal/core/ports/gateways"
)

// HTTPLookup queries an ipapi.co compatible service: GET {baseURL}/{ip}/json.
type HTTPLookup struct {
	baseURL string
	client  *http.Client
}

var _ gateways.GeoIPLookup = (*HTTPLookup)(nil)

type ipapiResponse struct {
	CountryCode string `json:"country_code"`
	CountryName string `json:"country_name"`
	Error       bool   `json:"error"`
	Reason      string `json:"reason"`
}

func NewHTTPLookup(baseURL string, timeout time.Duration) *HTTPLookup {
	return &HTTPLookup{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (h *HTTPLookup) Lookup(ctx context.Context, ip string) (*gateways.GeoLocation, error) {
	endpoint := fmt.Sprintf("%s/%s/json", h.baseURL, url.PathEscape(ip))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geoip request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geoip service returned status %d", resp.StatusCode)
	}

	var body ipapiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode geoip response: %w", err)
	}
	if body.Error {
		return nil, fmt.Errorf("geoip service error: %s", body.Reason)
	}
	if body.CountryCode == "" {
		return nil, nil
	}
	return &gateways.GeoLocation{
		CountryCode: strings.ToUpper(body.CountryCode),
		CountryName: body.CountryName,
	}, nil
}
