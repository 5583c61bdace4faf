package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"storefront/internal/pricing"

	"github.com/shopspring/decimal"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Checkout CheckoutConfig
	Catalog  CatalogConfig
	S3       S3Config
	Images   ImageConfig
	Redis    RedisConfig
	AMQP     AMQPConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host             string
	Port             int
	User             string
	Password         string
	Database         string
	MaxConnections   int
	MinConnections   int
	MaxConnLifetime  int // seconds
	RunMigrations    bool
	ApplicationName  string
	ConnectTimeout   time.Duration
	StatementTimeout time.Duration
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// AuthConfig holds authentication configuration.
// Both secrets are supplied by the environment and have no defaults.
type AuthConfig struct {
	JWTSecret   string
	JWTIssuer   string
	TokenTTL    time.Duration
	AdminAPIKey string
	LoginPath   string
}

// CheckoutConfig holds the pricing rules applied at checkout.
type CheckoutConfig struct {
	TaxRate          decimal.Decimal
	ShippingCharge   decimal.Decimal
	BulkThreshold    int
	BulkDiscountRate decimal.Decimal
	RevalidatePrices bool
}

// CatalogConfig lists the product feeds imported at startup.
type CatalogConfig struct {
	SeedFiles []string
}

// S3Config holds AWS S3 configuration for product images and catalog feeds.
type S3Config struct {
	Enabled       bool
	Bucket        string
	Region        string
	CatalogPrefix string // Path prefix for catalog feeds (e.g., "catalog/")
	ImagePrefix   string // Path prefix for uploaded product images
	PublicBaseURL string
}

// ImageConfig holds configuration for locally stored product images.
type ImageConfig struct {
	Dir      string
	MaxBytes int64
}

// RedisConfig holds configuration for the cart cache.
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
	CartTTL  time.Duration
}

// AMQPConfig holds configuration for order event publishing.
type AMQPConfig struct {
	Enabled  bool
	URL      string
	Exchange string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:             getEnv("DB_HOST", "localhost"),
			Port:             getEnvAsInt("DB_PORT", 5432),
			User:             getEnv("DB_USER", "postgres"),
			Password:         getEnv("DB_PASSWORD", ""),
			Database:         getEnv("DB_NAME", "storefront"),
			MaxConnections:   getEnvAsInt("DB_MAX_CONNECTIONS", 25),
			MinConnections:   getEnvAsInt("DB_MIN_CONNECTIONS", 5),
			MaxConnLifetime:  getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
			RunMigrations:    getEnvAsBool("DB_RUN_MIGRATIONS", true),
			ApplicationName:  getEnv("DB_APPLICATION_NAME", "storefront-api"),
			ConnectTimeout:   getEnvAsDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
			StatementTimeout: getEnvAsDuration("DB_STATEMENT_TIMEOUT", 30*time.Second),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			JWTSecret:   getEnv("JWT_SECRET", ""),
			JWTIssuer:   getEnv("JWT_ISSUER", "storefront"),
			TokenTTL:    getEnvAsDuration("JWT_TOKEN_TTL", 24*time.Hour),
			AdminAPIKey: getEnv("ADMIN_API_KEY", ""),
			LoginPath:   getEnv("LOGIN_PATH", "/login"),
		},
		Checkout: CheckoutConfig{
			TaxRate:          getEnvAsDecimal("CHECKOUT_TAX_RATE", "0.05"),
			ShippingCharge:   getEnvAsDecimal("CHECKOUT_SHIPPING_CHARGE", "50"),
			BulkThreshold:    getEnvAsInt("CHECKOUT_BULK_THRESHOLD", 10),
			BulkDiscountRate: getEnvAsDecimal("CHECKOUT_BULK_DISCOUNT_RATE", "0.10"),
			RevalidatePrices: getEnvAsBool("CHECKOUT_REVALIDATE_PRICES", true),
		},
		Catalog: CatalogConfig{
			SeedFiles: getEnvAsList("CATALOG_SEED_FILES", nil),
		},
		S3: S3Config{
			Enabled:       getEnvAsBool("S3_ENABLED", false),
			Bucket:        getEnv("S3_BUCKET", ""),
			Region:        getEnv("S3_REGION", "us-east-1"),
			CatalogPrefix: getEnv("S3_CATALOG_PREFIX", "catalog/"),
			ImagePrefix:   getEnv("S3_IMAGE_PREFIX", "images/"),
			PublicBaseURL: getEnv("S3_PUBLIC_BASE_URL", ""),
		},
		Images: ImageConfig{
			Dir:      getEnv("IMAGE_DIR", "data/images"),
			MaxBytes: int64(getEnvAsInt("IMAGE_MAX_BYTES", 5<<20)),
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			CartTTL:  getEnvAsDuration("REDIS_CART_TTL", 15*time.Minute),
		},
		AMQP: AMQPConfig{
			Enabled:  getEnvAsBool("AMQP_ENABLED", false),
			URL:      getEnv("AMQP_URL", ""),
			Exchange: getEnv("AMQP_EXCHANGE", "storefront.orders"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Database.Port)
	}

	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Database.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.Database.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.Database.MinConnections > c.Database.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	if c.Database.StatementTimeout < 0 {
		return fmt.Errorf("database statement timeout cannot be negative")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}

	if c.Auth.AdminAPIKey == "" {
		return fmt.Errorf("admin API key is required")
	}

	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("token TTL must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.Checkout.TaxRate.IsNegative() || c.Checkout.TaxRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("invalid tax rate: %s (must be in [0, 1))", c.Checkout.TaxRate)
	}

	if c.Checkout.ShippingCharge.IsNegative() {
		return fmt.Errorf("invalid shipping charge: %s", c.Checkout.ShippingCharge)
	}

	if c.Checkout.BulkThreshold < 1 {
		return fmt.Errorf("bulk discount threshold must be at least 1")
	}

	if c.Checkout.BulkDiscountRate.IsNegative() || c.Checkout.BulkDiscountRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("invalid bulk discount rate: %s (must be in [0, 1])", c.Checkout.BulkDiscountRate)
	}

	if c.S3.Enabled {
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required when S3 is enabled")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required when S3 is enabled")
		}
	}

	if c.Images.MaxBytes < 1 {
		return fmt.Errorf("image max bytes must be at least 1")
	}

	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("redis address is required when redis is enabled")
	}

	if c.AMQP.Enabled {
		if c.AMQP.URL == "" {
			return fmt.Errorf("AMQP URL is required when AMQP is enabled")
		}
		if c.AMQP.Exchange == "" {
			return fmt.Errorf("AMQP exchange is required when AMQP is enabled")
		}
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Rules converts the checkout configuration into pricing rules.
func (c CheckoutConfig) Rules() pricing.Rules {
	return pricing.Rules{
		TaxRate:          c.TaxRate,
		ShippingCharge:   c.ShippingCharge,
		BulkThreshold:    c.BulkThreshold,
		BulkDiscountRate: c.BulkDiscountRate,
	}
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration retrieves an environment variable as a time.Duration or returns a default value.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getEnvAsDecimal retrieves an environment variable as a decimal or returns the parsed default.
func getEnvAsDecimal(key, defaultValue string) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if d, err := decimal.NewFromString(value); err == nil {
			return d
		}
	}
	return decimal.RequireFromString(defaultValue)
}

// getEnvAsList retrieves a comma-separated environment variable as a slice.
func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var items []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}
