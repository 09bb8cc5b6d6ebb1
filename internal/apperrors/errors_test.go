package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("service: %w", Newf(KindRateNotFound, "no rate for %s/%s", "GNF", "EUR"))

	assert.Equal(t, KindRateNotFound, KindOf(err))
	assert.Equal(t, "no rate for GNF/EUR", MessageOf(err))
	assert.ErrorIs(t, err, ErrRateNotFound)
	assert.NotErrorIs(t, err, ErrCurrencyNotFound)
}

func TestUnknownErrorsAreInternal(t *testing.T) {
	err := errors.New("boom")
	assert.Equal(t, KindInternal, KindOf(err))
	assert.Equal(t, "internal error", MessageOf(err))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(KindOf(err)))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewStoreError("failed to load rate", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Equal(t, KindStoreFailure, KindOf(err))
}

func TestHTTPStatus(t *testing.T) {
	tests := map[Kind]int{
		KindInvalidAmount:          http.StatusBadRequest,
		KindInvalidRate:            http.StatusBadRequest,
		KindAuthenticationRequired: http.StatusUnauthorized,
		KindForbidden:              http.StatusForbidden,
		KindRateNotFound:           http.StatusNotFound,
		KindQuoteExpired:           http.StatusConflict,
		KindDailyLimitExceeded:     http.StatusUnprocessableEntity,
		KindTrustViolation:         http.StatusBadGateway,
		KindProviderUnavailable:    http.StatusBadGateway,
		KindStoreFailure:           http.StatusServiceUnavailable,
	}
	for kind, status := range tests {
		assert.Equal(t, status, HTTPStatus(kind), string(kind))
	}
}
