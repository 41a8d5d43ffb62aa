package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL   string
	DBAutoMigrate bool
	JWTSecretKey  string
	ServerPort    int
	LogLevel      slog.Level

	AdminPasswordHash string
	AdminTokenTTL     time.Duration

	Storage StorageConfig
	CORS    CORSConfig

	RedisURL        string
	RateLimitMax    int
	RateLimitWindow time.Duration
}

// StorageConfig describes the Supabase Storage S3-compatible endpoint.
type StorageConfig struct {
	SupabaseURL     string
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	BucketName      string
}

// S3Endpoint is the S3 protocol endpoint Supabase exposes for a project.
func (s StorageConfig) S3Endpoint() string {
	return strings.TrimRight(s.SupabaseURL, "/") + "/storage/v1/s3"
}

// PublicBaseURL is the prefix under which objects of a public bucket can be fetched.
func (s StorageConfig) PublicBaseURL() string {
	return strings.TrimRight(s.SupabaseURL, "/") + "/storage/v1/object/public/" + s.BucketName + "/"
}

type CORSConfig struct {
	AllowedOrigins  []string
	AllowLocalhost  bool
	AllowNullOrigin bool
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	jwtKey := os.Getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	adminHash := os.Getenv("ADMIN_PASSWORD_HASH")
	if adminHash == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD_HASH environment variable is not set")
	}

	port, err := getInt("SERVER_PORT", 8080)
	if err != nil {
		return nil, err
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	autoMigrate, err := getBool("DB_AUTO_MIGRATE", false)
	if err != nil {
		return nil, err
	}

	logLevel, err := parseLogLevel(getString("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	tokenTTL, err := getDuration("ADMIN_TOKEN_TTL", 12*time.Hour)
	if err != nil {
		return nil, err
	}

	supabaseURL := os.Getenv("SUPABASE_URL")
	if supabaseURL == "" {
		return nil, fmt.Errorf("SUPABASE_URL environment variable is not set")
	}

	storage := StorageConfig{
		SupabaseURL:     supabaseURL,
		AccessKeyID:     os.Getenv("SUPABASE_S3_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("SUPABASE_S3_SECRET_ACCESS_KEY"),
		Region:          getString("SUPABASE_S3_REGION", "ap-southeast-1"),
		BucketName:      getString("STORAGE_BUCKET", "photos"),
	}

	allowLocalhost, err := getBool("CORS_ALLOW_LOCALHOST", false)
	if err != nil {
		return nil, err
	}
	allowNull, err := getBool("CORS_ALLOW_NULL_ORIGIN", false)
	if err != nil {
		return nil, err
	}

	rateMax, err := getInt("RATE_LIMIT_MAX", 20)
	if err != nil {
		return nil, err
	}
	if rateMax <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_MAX must be positive, got %d", rateMax)
	}
	rateWindow, err := getDuration("RATE_LIMIT_WINDOW", time.Minute)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DatabaseURL:       dbURL,
		DBAutoMigrate:     autoMigrate,
		JWTSecretKey:      jwtKey,
		ServerPort:        port,
		LogLevel:          logLevel,
		AdminPasswordHash: adminHash,
		AdminTokenTTL:     tokenTTL,
		Storage:           storage,
		CORS: CORSConfig{
			AllowedOrigins:  splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
			AllowLocalhost:  allowLocalhost,
			AllowNullOrigin: allowNull,
		},
		RedisURL:        os.Getenv("REDIS_URL"),
		RateLimitMax:    rateMax,
		RateLimitWindow: rateWindow,
	}

	return cfg, nil
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return n, nil
}

func getBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return b, nil
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, d)
	}
	return d, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", s, err)
	}
	return level, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
