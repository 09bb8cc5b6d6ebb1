package ledger

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/wallet_fx_engine/internal/apperrors"
	"github.com/SscSPs/wallet_fx_engine/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerformTransfer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/transfers", r.URL.Path)
		assert.Equal(t, "ref-1", r.Header.Get("Idempotency-Key"))

		var in domain.LedgerTransfer
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "sender", in.SenderID)
		assert.True(t, in.Amount.Equal(decimal.NewFromInt(100000)))

		_, _ = w.Write([]byte(`{"appliedRate":"0.000115","appliedFees":"120","newSenderBalance":"899880","transactionId":"tx-9"}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second)
	res, err := c.PerformTransfer(context.Background(), domain.LedgerTransfer{
		SenderID:     "sender",
		ReceiverID:   "receiver",
		Amount:       decimal.NewFromInt(100000),
		FromCurrency: "GNF",
		ToCurrency:   "USD",
		Reference:    "ref-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "tx-9", res.TransactionID)
	assert.True(t, res.AppliedFees.Equal(decimal.NewFromInt(120)))
}

func TestPerformTransferRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"duplicate reference"}`))
	}))
	defer srv.Close()

	_, err := NewHTTPClient(srv.URL, time.Second).PerformTransfer(context.Background(), domain.LedgerTransfer{Reference: "ref-1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrLedgerFailure)
	assert.Contains(t, err.Error(), "duplicate reference")
}
