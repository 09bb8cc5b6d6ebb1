package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	at := time.Date(2025, 5, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(at, "7f1c9a4e-0d7b-4a43-9a57-1f7d2a2c2a11")
	assert.NotEmpty(t, token)
	assert.NotContains(t, token, "=", "cursor must be URL safe")

	decodedAt, id, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, at.Equal(decodedAt))
	assert.Equal(t, "7f1c9a4e-0d7b-4a43-9a57-1f7d2a2c2a11", id)

	// Non-UTC input is normalised.
	paris := time.FixedZone("CET", 3600)
	_, _, err = DecodeToken(EncodeToken(at.In(paris), "x"))
	assert.NoError(t, err)
}

func TestDecodeTokenError(t *testing.T) {
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	noSeparator := base64.RawURLEncoding.EncodeToString([]byte("2025-05-15T00:00:00Z"))
	_, _, err = DecodeToken(noSeparator)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	emptyID := base64.RawURLEncoding.EncodeToString([]byte("2025-05-15T00:00:00Z|"))
	_, _, err = DecodeToken(emptyID)
	assert.Error(t, err)

	badTime := base64.RawURLEncoding.EncodeToString([]byte("notadate|abc"))
	_, _, err = DecodeToken(badTime)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "time parse")
}
