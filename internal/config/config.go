package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config holds all application configuration.
type Config struct {
	Storage  StorageConfig
	Database DatabaseConfig
	GRPC     GRPCConfig
	Auth     AuthConfig
	Receipts ReceiptConfig
	Log      LogConfig
}

// StorageConfig selects where credentials and deposits live.
type StorageConfig struct {
	Backend         string // "file" or "sqlite"
	CredentialsPath string // JSON credential file (file backend)
	LedgerPath      string // CSV ledger file (file backend)
}

// DatabaseConfig contains database-related settings.
type DatabaseConfig struct {
	Path string // SQLite database file path (sqlite backend)
}

// GRPCConfig contains gRPC server settings.
type GRPCConfig struct {
	Address string // gRPC server listen address (e.g., ":50051")
}

// AuthConfig contains authentication settings.
type AuthConfig struct {
	JWTSecret string        // JWT signing secret
	TokenTTL  time.Duration // 0 issues tokens without expiry

	// Optional admin account created at startup when absent.
	AdminUsername string
	AdminPassword string
}

// ReceiptConfig controls QR receipt generation.
type ReceiptConfig struct {
	Enabled bool
	Dir     string
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string
}

// LoadDotEnv loads KEY=VALUE files into the environment without overriding
// variables that are already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load loads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg, err := fromEnv("")
	if err != nil {
		return nil, err
	}

	// Validate critical settings
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set; required for production")
	}

	return cfg, nil
}

// LoadWithDefaults is like Load but uses a safe default for JWT_SECRET in development.
// WARNING: Only use in development! Use Load() in production.
func LoadWithDefaults() (*Config, error) {
	return fromEnv("dev-secret-change-me")
}

func fromEnv(secretDefault string) (*Config, error) {
	ttl, err := getEnvDuration("TOKEN_TTL", 0)
	if err != nil {
		return nil, err
	}
	receipts, err := getEnvBool("RECEIPTS_ENABLED", true)
	if err != nil {
		return nil, err
	}
	cfg := &Config{
		Storage: StorageConfig{
			Backend:         strings.ToLower(getEnv("STORAGE_BACKEND", BackendFile)),
			CredentialsPath: getEnv("CREDENTIALS_PATH", "user.json"),
			LedgerPath:      getEnv("LEDGER_PATH", "data_tabungan.csv"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "savings.db"),
		},
		GRPC: GRPCConfig{
			Address: getEnv("GRPC_ADDRESS", ":50051"),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", secretDefault),
			TokenTTL:      ttl,
			AdminUsername: getEnv("ADMIN_USERNAME", ""),
			AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		},
		Receipts: ReceiptConfig{
			Enabled: receipts,
			Dir:     getEnv("RECEIPTS_DIR", "images"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile:
		if c.Storage.CredentialsPath == "" || c.Storage.LedgerPath == "" {
			return errors.New("file backend needs CREDENTIALS_PATH and LEDGER_PATH")
		}
	case BackendSQLite:
		if c.Database.Path == "" {
			return errors.New("sqlite backend needs DB_PATH")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q (want %s or %s)", c.Storage.Backend, BackendFile, BackendSQLite)
	}
	if c.Auth.TokenTTL < 0 {
		return errors.New("TOKEN_TTL must not be negative")
	}
	if (c.Auth.AdminUsername == "") != (c.Auth.AdminPassword == "") {
		return errors.New("ADMIN_USERNAME and ADMIN_PASSWORD must be set together")
	}
	return nil
}

// getEnv retrieves an environment variable with a default fallback.
func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

// getEnvDuration accepts Go durations ("12h") or plain seconds ("3600").
func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return defaultVal, nil
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d, nil
	}
	secs, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %q", key, value)
	}
	return time.Duration(secs) * time.Second, nil
}

// getEnvBool retrieves an environment variable as a bool with a default fallback.
func getEnvBool(key string, defaultVal bool) (bool, error) {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("invalid bool for %s: %w", key, err)
		}
		return b, nil
	}
	return defaultVal, nil
}

// String returns a string representation of the config (sensitive values are masked).
func (c *Config) String() string {
	store := c.Storage.CredentialsPath + "," + c.Storage.LedgerPath
	if c.Storage.Backend == BackendSQLite {
		store = c.Database.Path
	}
	return fmt.Sprintf("Config{Storage: %s(%s), gRPC: %s, TokenTTL: %s, Receipts: %t(%s), Log: %s, Auth: *** (masked) ***}",
		c.Storage.Backend, store, c.GRPC.Address, c.Auth.TokenTTL, c.Receipts.Enabled, c.Receipts.Dir, c.Log.Level)
}
