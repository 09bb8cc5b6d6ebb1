package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromEnv(t *testing.T) {
	viper.Reset()
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("FEE_INTERNAL_MAX", "15")
	t.Setenv("LEDGER_TIMEOUT", "3s")
	t.Setenv("RATE_SYNC_BASE", "usd")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, StorageDriverMemory, cfg.StorageDriver)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.Fee.InternalFeeMax.Equal(decimal.NewFromInt(15)))
	assert.Equal(t, 3*time.Second, cfg.LedgerTimeout)
	assert.Equal(t, "USD", cfg.RateSyncBase)
}

func TestLoadConfigFallsBackOnBadValues(t *testing.T) {
	viper.Reset()
	t.Setenv("STORAGE_DRIVER", "mongo")
	t.Setenv("GEOIP_TIMEOUT", "soon")
	t.Setenv("FEE_INTERNAL_MIN", "50")
	t.Setenv("FEE_INTERNAL_MAX", "20")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, StorageDriverPostgres, cfg.StorageDriver)
	assert.Equal(t, 2*time.Second, cfg.GeoIPTimeout)
	assert.True(t, cfg.Fee.InternalFeeMin.LessThanOrEqual(cfg.Fee.InternalFeeMax))
}
