package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	GatewayYooKassa = "yookassa"
	GatewayStripe   = "stripe"
)

type Config struct {
	Environment string
	Debug       bool
	TestMode    bool
	Port        string
	LogLevel    string
	Version     string

	DatabaseDriver string
	DatabaseURL    string
	MigrationsPath string

	GeminiAPIKey     string
	GeminiModel      string
	AITemperature    float64
	AIMaxRetries     int
	AIRetryDelay     time.Duration
	AIRequestTimeout time.Duration

	CacheBackend  string
	CacheDir      string
	CacheTTL      time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	StorageBackend string
	StorageDir     string
	S3Bucket       string
	S3Region       string
	S3Endpoint     string
	S3AccessKey    string
	S3SecretKey    string

	PaymentGateway      string
	PaymentCurrency     string
	PaymentReturnURL    string
	YooKassaShopID      string
	YooKassaSecretKey   string
	YooKassaAPIURL      string
	StripeSecretKey     string
	StripeWebhookSecret string

	DefaultBalance    int64
	ConsultationPrice int64

	JWTSecret         string
	AdminUsername     string
	AdminPasswordHash string

	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int
	MaxImageBytes      int64
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Debug:       getEnvBool("DEBUG", false),
		TestMode:    getEnvBool("TEST_MODE", false),
		Port:        getEnv("PORT", "8001"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Version:     getEnv("APP_VERSION", "2.6.1"),

		DatabaseDriver: getEnv("DATABASE_DRIVER", "sqlite"),
		DatabaseURL:    getEnv("DATABASE_URL", "file:styleai.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(10000)"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", ""),

		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		AITemperature:    getEnvFloat("AI_TEMPERATURE", 0.65),
		AIMaxRetries:     getEnvInt("AI_MAX_RETRIES", 3),
		AIRetryDelay:     getEnvDuration("AI_RETRY_DELAY", 5*time.Second),
		AIRequestTimeout: getEnvDuration("AI_REQUEST_TIMEOUT", 60*time.Second),

		CacheBackend:  getEnv("CACHE_BACKEND", "none"),
		CacheDir:      getEnv("CACHE_DIR", ".cache/analysis"),
		CacheTTL:      getEnvDuration("CACHE_TTL", 7*24*time.Hour),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		StorageBackend: getEnv("STORAGE_BACKEND", "none"),
		StorageDir:     getEnv("STORAGE_DIR", "uploads"),
		S3Bucket:       getEnv("S3_BUCKET", ""),
		S3Region:       getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:     getEnv("S3_ENDPOINT", ""),
		S3AccessKey:    getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:    getEnv("S3_SECRET_KEY", ""),

		PaymentGateway:      strings.ToLower(getEnv("PAYMENT_GATEWAY", GatewayYooKassa)),
		PaymentCurrency:     getEnv("PAYMENT_CURRENCY", "RUB"),
		PaymentReturnURL:    getEnv("PAYMENT_RETURN_URL", "https://style-ai-bot.onrender.com/webapp?payment_success=true&section=balance"),
		YooKassaShopID:      getEnv("YOOKASSA_SHOP_ID", ""),
		YooKassaSecretKey:   getEnv("YOOKASSA_SECRET_KEY", ""),
		YooKassaAPIURL:      getEnv("YOOKASSA_API_URL", "https://api.yookassa.ru/v3"),
		StripeSecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),

		DefaultBalance:    getEnvInt64("DEFAULT_BALANCE", 200),
		ConsultationPrice: getEnvInt64("CONSULTATION_PRICE", 0),

		JWTSecret:         getEnv("JWT_SECRET", ""),
		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),

		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		RateLimitRPS:       getEnvFloat("RATE_LIMIT_RPS", 2),
		RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", 10),
		MaxImageBytes:      getEnvInt64("MAX_IMAGE_BYTES", 10*1024*1024),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	var errs []error

	switch c.DatabaseDriver {
	case "sqlite", "postgres":
	default:
		errs = append(errs, fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver))
	}

	switch c.PaymentGateway {
	case GatewayYooKassa, GatewayStripe:
	default:
		errs = append(errs, fmt.Errorf("unsupported PAYMENT_GATEWAY %q", c.PaymentGateway))
	}

	if c.AIMaxRetries < 1 {
		errs = append(errs, errors.New("AI_MAX_RETRIES must be at least 1"))
	}
	if c.DefaultBalance < 0 || c.ConsultationPrice < 0 {
		errs = append(errs, errors.New("DEFAULT_BALANCE and CONSULTATION_PRICE must not be negative"))
	}

	if c.IsProduction() {
		if !c.AIConfigured() {
			errs = append(errs, errors.New("GEMINI_API_KEY is required in production"))
		}
		if !c.PaymentsConfigured() {
			errs = append(errs, fmt.Errorf("credentials for payment gateway %q are required in production", c.PaymentGateway))
		}
	}

	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) AIConfigured() bool {
	return c.GeminiAPIKey != ""
}

func (c *Config) PaymentsConfigured() bool {
	switch c.PaymentGateway {
	case GatewayStripe:
		return c.StripeSecretKey != ""
	default:
		return c.YooKassaShopID != "" && c.YooKassaSecretKey != ""
	}
}

func (c *Config) AdminEnabled() bool {
	return c.AdminPasswordHash != "" && c.JWTSecret != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if v, err := strconv.ParseInt(os.Getenv(key), 10, 64); err == nil {
		return v
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}

	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
