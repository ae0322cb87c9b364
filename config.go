package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	commonmw "github.com/Maharshi2203/Sattys-main/common/middleware"
	"github.com/Maharshi2203/Sattys-main/database"
	awspkg "github.com/Maharshi2203/Sattys-main/pkg/aws"
	"github.com/joho/godotenv"
)

// Secrets Manager names read when AWS_USE_SECRETS=true.
const (
	dbCredentialsSecret = "storefront/DB_CREDENTIALS"
	jwtSecretName       = "storefront/JWT_SECRET"
)

// Config holds all environment variables for the catalog service.
type Config struct {
	Port string
	Env  string

	Postgres database.PostgresConfig
	RedisURL string
	CacheTTL time.Duration

	JWTSecret     string
	AdminUsername string
	AdminPassword string
	CookieSecure  bool

	AllowedOrigins     []string
	RateLimitPerMinute int
	LoginPerMinute     int

	AWS                 awspkg.Options
	UseSecrets          bool
	S3Bucket            string
	S3Prefix            string
	CloudFrontDomain    string
	CatalogTopicARN     string
	CloudWatchEnabled   bool
	CloudWatchNamespace string
	CloudWatchLogGroup  string

	WhatsAppPhone       string
	BulkStorageDir      string
	ImportWorkerEnabled bool
}

// LoadConfig loads the .env file when present, reads the environment and
// validates it. With AWS_USE_SECRETS=true the database credentials and JWT
// secret come from Secrets Manager, falling back to env vars on failure.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := configFromEnv()

	if cfg.UseSecrets {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if awsCfg, err := awspkg.LoadAWSConfig(ctx, cfg.AWS); err == nil {
			applySecrets(ctx, cfg, awspkg.NewSecretsClient(awsCfg))
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func configFromEnv() *Config {
	env := getEnv("APP_ENV", "development")
	return &Config{
		Port: getEnv("PORT", "8080"),
		Env:  env,
		Postgres: database.PostgresConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
			TimeZone: getEnv("POSTGRES_TIMEZONE", "Asia/Kolkata"),
		},
		RedisURL: getEnv("REDIS_URL", database.DefaultRedisURL),
		CacheTTL: getDuration("CACHE_TTL", 5*time.Minute),

		JWTSecret:     os.Getenv("JWT_SECRET"),
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		CookieSecure:  getBool("COOKIE_SECURE", env == "production"),

		AllowedOrigins:     commonmw.ParseOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		RateLimitPerMinute: getInt("RATE_LIMIT_PER_MINUTE", 300),
		LoginPerMinute:     getInt("LOGIN_RATE_LIMIT_PER_MINUTE", 10),

		AWS: awspkg.Options{
			Region:          getEnv("AWS_REGION", "ap-south-1"),
			Endpoint:        os.Getenv("AWS_ENDPOINT"),
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		},
		UseSecrets:          getBool("AWS_USE_SECRETS", false),
		S3Bucket:            getEnv("AWS_S3_BUCKET", "product-images"),
		S3Prefix:            getEnv("AWS_S3_PREFIX", "products/"),
		CloudFrontDomain:    os.Getenv("AWS_CLOUDFRONT_DOMAIN"),
		CatalogTopicARN:     os.Getenv("CATALOG_SNS_TOPIC_ARN"),
		CloudWatchEnabled:   getBool("CLOUDWATCH_ENABLED", false),
		CloudWatchNamespace: getEnv("CLOUDWATCH_NAMESPACE", "Sattys"),
		CloudWatchLogGroup:  getEnv("CLOUDWATCH_LOG_GROUP", "/sattys/catalog"),

		WhatsAppPhone:       getEnv("WHATSAPP_PHONE", "918200892368"),
		BulkStorageDir:      getEnv("BULK_STORAGE_DIR", filepath.Join(os.TempDir(), "sattys-imports")),
		ImportWorkerEnabled: getBool("IMPORT_WORKER_ENABLED", true),
	}
}

// applySecrets overrides credentials with values from Secrets Manager. A
// missing or unreadable secret leaves the env value in place.
func applySecrets(ctx context.Context, cfg *Config, sm awspkg.SecretGetter) {
	if creds, err := awspkg.ReadDBCredentials(ctx, sm, dbCredentialsSecret); err == nil {
		override(&cfg.Postgres.User, creds.Username)
		override(&cfg.Postgres.Password, creds.Password)
		override(&cfg.Postgres.Host, creds.Host)
		override(&cfg.Postgres.Port, creds.Port)
		override(&cfg.Postgres.DBName, creds.DBName)
	}
	if secret, err := sm.GetSecret(ctx, jwtSecretName); err == nil && secret != "" {
		cfg.JWTSecret = secret
	}
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// Validate reports the first missing required setting.
func (c *Config) Validate() error {
	if c.Postgres.User == "" {
		return fmt.Errorf("POSTGRES_USER is required")
	}
	if c.Postgres.Password == "" {
		return fmt.Errorf("POSTGRES_PASSWORD is required")
	}
	if c.Postgres.DBName == "" {
		return fmt.Errorf("POSTGRES_DB is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Env == "production" && len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters in production")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return v
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
