package config

import (
	"log"
	"strings"
	"time"

	"github.com/SscSPs/wallet_fx_engine/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	LogLevel      string
	StorageDriver string
	MigrationsDir string
	RefDataPath   string

	JWTSecret string
	JWTIssuer string
	RateLimit string // ulule format, e.g. "100-M"

	CORSAllowedOrigins []string

	RedisURL string

	GeoIPDBPath   string
	GeoIPHTTPURL  string
	GeoIPTimeout  time.Duration
	GeoIPCacheTTL time.Duration

	KafkaBrokers   []string
	KafkaRateTopic string

	PosthogAPIKey string

	Fee domain.FeeStructure

	LedgerURL     string
	LedgerTimeout time.Duration

	RateSyncURL     string
	RateSyncBase    string
	RateSyncTimeout time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	defaultFee := domain.DefaultFeeStructure()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", true)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("STORAGE_DRIVER", StorageDriverPostgres)
	viper.SetDefault("MIGRATIONS_DIR", "migrations")
	viper.SetDefault("REFDATA_PATH", "")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "wallet-fx-engine")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("GEOIP_DB_PATH", "")
	viper.SetDefault("GEOIP_HTTP_URL", "https://ipapi.co")
	viper.SetDefault("GEOIP_TIMEOUT", "2s")
	viper.SetDefault("GEOIP_CACHE_TTL", "24h")
	viper.SetDefault("KAFKA_BROKERS", "")
	viper.SetDefault("KAFKA_RATE_TOPIC", "fx.rate-changed")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("FEE_INTERNAL_PERCENTAGE", defaultFee.InternalFeePercentage.String())
	viper.SetDefault("FEE_INTERNAL_MIN", defaultFee.InternalFeeMin.String())
	viper.SetDefault("FEE_INTERNAL_MAX", defaultFee.InternalFeeMax.String())
	viper.SetDefault("FEE_API_COMMISSION_PERCENTAGE", defaultFee.APICommissionPercentage.String())
	viper.SetDefault("FEE_CURRENCY", defaultFee.Currency)
	viper.SetDefault("LEDGER_URL", "")
	viper.SetDefault("LEDGER_TIMEOUT", "10s")
	viper.SetDefault("RATE_SYNC_URL", "https://api.exchangerate-api.com/v4/latest")
	viper.SetDefault("RATE_SYNC_BASE", "GNF")
	viper.SetDefault("RATE_SYNC_TIMEOUT", "10s")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.LogLevel = strings.ToLower(viper.GetString("LOG_LEVEL"))
	cfg.MigrationsDir = viper.GetString("MIGRATIONS_DIR")
	cfg.RefDataPath = viper.GetString("REFDATA_PATH")

	cfg.StorageDriver = strings.ToLower(viper.GetString("STORAGE_DRIVER"))
	if cfg.StorageDriver != StorageDriverPostgres && cfg.StorageDriver != StorageDriverMemory {
		log.Printf("Warning: Unknown STORAGE_DRIVER ('%s'). Defaulting to %s.\n", cfg.StorageDriver, StorageDriverPostgres)
		cfg.StorageDriver = StorageDriverPostgres
	}
	if cfg.StorageDriver == StorageDriverPostgres && cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))

	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.GeoIPDBPath = viper.GetString("GEOIP_DB_PATH")
	cfg.GeoIPHTTPURL = viper.GetString("GEOIP_HTTP_URL")
	cfg.GeoIPTimeout = durationOrDefault("GEOIP_TIMEOUT", 2*time.Second)
	cfg.GeoIPCacheTTL = durationOrDefault("GEOIP_CACHE_TTL", 24*time.Hour)

	cfg.KafkaBrokers = splitList(viper.GetString("KAFKA_BROKERS"))
	cfg.KafkaRateTopic = viper.GetString("KAFKA_RATE_TOPIC")

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")

	cfg.Fee = domain.FeeStructure{
		InternalFeePercentage:   decimalOrDefault("FEE_INTERNAL_PERCENTAGE", defaultFee.InternalFeePercentage),
		InternalFeeMin:          decimalOrDefault("FEE_INTERNAL_MIN", defaultFee.InternalFeeMin),
		InternalFeeMax:          decimalOrDefault("FEE_INTERNAL_MAX", defaultFee.InternalFeeMax),
		APICommissionPercentage: decimalOrDefault("FEE_API_COMMISSION_PERCENTAGE", defaultFee.APICommissionPercentage),
		Currency:                strings.ToUpper(viper.GetString("FEE_CURRENCY")),
	}
	if cfg.Fee.InternalFeeMin.GreaterThan(cfg.Fee.InternalFeeMax) {
		log.Printf("Warning: FEE_INTERNAL_MIN (%s) is above FEE_INTERNAL_MAX (%s). Using default fee structure.\n",
			cfg.Fee.InternalFeeMin, cfg.Fee.InternalFeeMax)
		cfg.Fee = defaultFee
	}

	cfg.LedgerURL = viper.GetString("LEDGER_URL")
	if cfg.LedgerURL == "" {
		log.Println("Warning: LEDGER_URL not set. Transfer commits will fail.")
	}
	cfg.LedgerTimeout = durationOrDefault("LEDGER_TIMEOUT", 10*time.Second)

	cfg.RateSyncURL = viper.GetString("RATE_SYNC_URL")
	cfg.RateSyncBase = strings.ToUpper(viper.GetString("RATE_SYNC_BASE"))
	cfg.RateSyncTimeout = durationOrDefault("RATE_SYNC_TIMEOUT", 10*time.Second)

	return cfg, nil
}

func durationOrDefault(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}

func decimalOrDefault(key string, def decimal.Decimal) decimal.Decimal {
	raw := viper.GetString(key)
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
