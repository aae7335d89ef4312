package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	pkgRetry "github.com/futig/scopeguard/internal/pkg/retry"
	"github.com/joho/godotenv"
)

const (
	HistoryBackendREST     = "rest"
	HistoryBackendPostgres = "postgres"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr         string        `env:"SERVER_ADDR" envDefault:":8080"`
	ServerReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	ServerWriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"180s"`
	ServerIdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"60s"`
	// RequestTimeout bounds one handled action, generation included
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"150s"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Hosted auth/database provider and completion service
	SupabaseCfg SupabaseConfig `envPrefix:"SUPABASE_"`
	GeminiCfg   GeminiConfig   `envPrefix:"GEMINI_"`

	// Chat history storage: PostgREST (rest) or direct Postgres (postgres)
	HistoryBackend string `env:"HISTORY_BACKEND" envDefault:"rest"`

	// Database configuration, used only by the postgres history backend
	DatabaseURL         string        `env:"DATABASE_URL"`
	DBMaxConns          int           `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMinConns          int           `env:"DB_MIN_CONNS" envDefault:"1"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`

	SessionCfg SessionConfig `envPrefix:"SESSION_"`

	// File upload configuration
	FileUploadCfg FileUploadConfig `envPrefix:"FILE_UPLOAD_"`

	// Pause shown after the simulated account deletion before the session resets
	AccountDeletionPause time.Duration `env:"ACCOUNT_DELETION_PAUSE" envDefault:"2s"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Environment (set from flag, not from env var)
	Environment string
}

type SupabaseConfig struct {
	HTTPClientConfig
	URL   string               `env:"URL,notEmpty"`
	Key   string               `env:"KEY,notEmpty"`
	Retry pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type GeminiConfig struct {
	HTTPClientConfig
	APIKey        string               `env:"API_KEY,notEmpty"`
	BaseURL       string               `env:"BASE_URL" envDefault:"https://generativelanguage.googleapis.com"`
	DefaultModel  string               `env:"DEFAULT_MODEL" envDefault:"models/gemini-pro"`
	ModelCacheTTL time.Duration        `env:"MODEL_CACHE_TTL" envDefault:"1h"`
	Retry         pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"120s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"120s"`
}

// SessionConfig controls the in-memory session store and its cookie
type SessionConfig struct {
	TTL             time.Duration `env:"TTL" envDefault:"12h"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"10m"`
	CookieName      string        `env:"COOKIE_NAME" envDefault:"scopeguard_session"`
	CookieSecure    bool          `env:"COOKIE_SECURE" envDefault:"false"`
}

// FileUploadConfig holds file upload limits
type FileUploadConfig struct {
	MaxPDFSize    int64 `env:"MAX_PDF_SIZE" envDefault:"10485760"`   // 10 MiB
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" envDefault:"12582912"` // 12 MiB
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg, err := Parse()
	if err != nil {
		return nil, err
	}
	cfg.Environment = *envFlag

	return cfg, nil
}

// Parse reads the configuration from the process environment and validates it.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	switch cfg.HistoryBackend {
	case HistoryBackendREST:
	case HistoryBackendPostgres:
		if cfg.DatabaseURL == "" {
			errors = append(errors, "DATABASE_URL is required when HISTORY_BACKEND=postgres")
		}
		if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
			errors = append(errors, fmt.Sprintf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns))
		}
		if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
			errors = append(errors, fmt.Sprintf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns))
		}
	default:
		errors = append(errors, fmt.Sprintf("HISTORY_BACKEND must be %q or %q, got %q", HistoryBackendREST, HistoryBackendPostgres, cfg.HistoryBackend))
	}

	if !strings.HasPrefix(cfg.SupabaseCfg.URL, "http://") && !strings.HasPrefix(cfg.SupabaseCfg.URL, "https://") {
		errors = append(errors, fmt.Sprintf("SUPABASE_URL must be an http(s) URL, got %q", cfg.SupabaseCfg.URL))
	}

	if cfg.RequestTimeout <= 0 || cfg.RequestTimeout >= cfg.ServerWriteTimeout {
		errors = append(errors, fmt.Sprintf("REQUEST_TIMEOUT must be positive and below SERVER_WRITE_TIMEOUT(%s), got %s", cfg.ServerWriteTimeout, cfg.RequestTimeout))
	}

	if cfg.SessionCfg.TTL < time.Minute {
		errors = append(errors, fmt.Sprintf("SESSION_TTL must be at least 1m, got %s", cfg.SessionCfg.TTL))
	}

	if cfg.SessionCfg.CookieName == "" {
		errors = append(errors, "SESSION_COOKIE_NAME must not be empty")
	}

	if cfg.FileUploadCfg.MaxPDFSize < 1 || cfg.FileUploadCfg.MaxPDFSize > cfg.FileUploadCfg.MaxUploadSize {
		errors = append(errors, fmt.Sprintf("FILE_UPLOAD_MAX_PDF_SIZE must be between 1 and FILE_UPLOAD_MAX_UPLOAD_SIZE(%d), got %d", cfg.FileUploadCfg.MaxUploadSize, cfg.FileUploadCfg.MaxPDFSize))
	}

	if cfg.AccountDeletionPause < 0 || cfg.AccountDeletionPause > 30*time.Second {
		errors = append(errors, fmt.Sprintf("ACCOUNT_DELETION_PAUSE must be between 0 and 30s, got %s", cfg.AccountDeletionPause))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
