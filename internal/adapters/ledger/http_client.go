// Package ledger talks to the external ledger service that moves money.
package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/wallet_fx_engine/internal/apperrors"
	"github.com/SscSPs/wallet_fx_engine/internal/core/domain"
	"github.com/SscSPs/wallet_fx_engine/internal/core/ports/gateways"
)

// HTTPClient posts transfers to {baseURL}/transfers.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

var _ gateways.LedgerClient = (*HTTPClient)(nil)

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type ledgerError struct {
	Error string `json:"error"`
}

// PerformTransfer returns a LedgerFailure for transport errors and non-2xx answers.
// The reference doubles as the idempotency key.
func (c *HTTPClient) PerformTransfer(ctx context.Context, transfer domain.LedgerTransfer) (*domain.LedgerTransferResult, error) {
	payload, err := json.Marshal(transfer)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to encode ledger request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transfers", bytes.NewReader(payload))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindLedgerFailure, "failed to build ledger request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if transfer.Reference != "" {
		req.Header.Set("Idempotency-Key", transfer.Reference)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindLedgerFailure, "ledger unreachable", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindLedgerFailure, "failed to read ledger response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var le ledgerError
		if json.Unmarshal(body, &le) == nil && le.Error != "" {
			return nil, apperrors.Newf(apperrors.KindLedgerFailure, "ledger returned %d: %s", resp.StatusCode, le.Error)
		}
		return nil, apperrors.Newf(apperrors.KindLedgerFailure, "ledger returned %d", resp.StatusCode)
	}

	var result domain.LedgerTransferResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, apperrors.Wrap(apperrors.KindLedgerFailure, "failed to decode ledger response", err)
	}
	return &result, nil
}

// String is used in startup logs.
func (c *HTTPClient) String() string {
	return fmt.Sprintf("ledger(%s)", c.baseURL)
}
