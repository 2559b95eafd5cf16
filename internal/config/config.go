package config

import (
	"os"
	"strconv"
	"time"
)

// Pricing holds the delivery fee rule constants. Values are whole
// rupees; there are no minor units anywhere in the system.
type Pricing struct {
	FreeShippingThreshold int64
	FlatDeliveryFee       int64
}

// Gateways mirrors the per-gateway credential set. A gateway with
// missing credentials is considered unconfigured and falls back to the
// sandbox branch when the sandbox policy allows it.
type Gateways struct {
	BaseURL            string // payment backend base URL, e.g. https://shop.example.com
	StripePublicKey    string
	GooglePayClientID  string
	JazzCashMerchantID string
	JazzCashPassword   string
	EasypaisaMerchant  string
	EasypaisaPassword  string
	Currency           string
	ForceSandbox       bool
	DevMode            bool
}

type Postgres struct {
	Host              string
	Port              int
	User              string
	Password          string
	DBName            string
	MigrationsDirPath string
}

type Config struct {
	HTTPPort        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	DataDir              string // localstore files live here
	RedisAddr            string
	MongoURI             string // empty means localstore cart repository
	CatalogPath          string // sqlite file
	CatalogMigrationsDir string

	Postgres     *Postgres // nil means no order archive
	KafkaBrokers []string

	Pricing  Pricing
	Gateways Gateways
}

func Load() *Config {
	cfg := &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,

		DataDir:              getEnv("DATA_DIR", "./data"),
		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		MongoURI:             os.Getenv("MONGO_URI"),
		CatalogPath:          getEnv("CATALOG_DB_PATH", "./data/catalog.db"),
		CatalogMigrationsDir: getEnv("CATALOG_MIGRATIONS_DIR", "./internal/catalog/migrations"),

		Pricing: Pricing{
			FreeShippingThreshold: getEnvInt64("FREE_SHIPPING_THRESHOLD", 5000),
			FlatDeliveryFee:       getEnvInt64("FLAT_DELIVERY_FEE", 250),
		},
		Gateways: Gateways{
			BaseURL:            getEnv("PAYMENT_BASE_URL", "http://localhost:8080"),
			StripePublicKey:    os.Getenv("STRIPE_PUBLIC_KEY"),
			GooglePayClientID:  os.Getenv("GOOGLE_PAY_CLIENT_ID"),
			JazzCashMerchantID: os.Getenv("JAZZ_CASH_MERCHANT_ID"),
			JazzCashPassword:   os.Getenv("JAZZ_CASH_PASSWORD"),
			EasypaisaMerchant:  os.Getenv("EASYPAISA_MERCHANT_ID"),
			EasypaisaPassword:  os.Getenv("EASYPAISA_PASSWORD"),
			Currency:           getEnv("CURRENCY", "PKR"),
			ForceSandbox:       getEnvBool("ENABLE_PAYMENT_MOCK", false),
			DevMode:            getEnvBool("DEV_MODE", true),
		},
	}

	if host := os.Getenv("POSTGRES_HOST"); host != "" {
		cfg.Postgres = &Postgres{
			Host:              host,
			Port:              int(getEnvInt64("POSTGRES_PORT", 5432)),
			User:              getEnv("POSTGRES_USER", "postgres"),
			Password:          getEnv("POSTGRES_PASSWORD", "postgres"),
			DBName:            getEnv("POSTGRES_DB", "storefront"),
			MigrationsDirPath: getEnv("ORDERS_MIGRATIONS_DIR", "./internal/order/archive/migrations"),
		}
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = []string{brokers}
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
