package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	EnvProduction = "production"

	StorageDatabase = "database"
	StorageMemory   = "memory"

	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Config is read once at startup and not changed afterwards.
type Config struct {
	AppPort string
	AppEnv  string
	Storage string

	DBDriver string
	DBDSN    string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret   string
	JWTIssuer   string
	JWTAudience string

	RefreshTokenTTL      time.Duration
	SessionSweepInterval time.Duration

	CORSOrigins []string

	AdminUsername string
	AdminEmail    string
	AdminPassword string
}

// LoadDotEnv copies .env from the working directory into the environment
// without overriding variables that are already set. A missing file yields
// an error matching fs.ErrNotExist.
func LoadDotEnv() error {
	return godotenv.Load()
}

// Load reads .env (when present) and the environment. storage, when not empty, overrides STORAGE.
func Load(storage string) (*Config, error) {
	// a missing .env is normal outside development
	_ = LoadDotEnv()

	cfg := &Config{
		AppPort:       getEnv("APP_PORT", "8080"),
		AppEnv:        getEnv("APP_ENV", "development"),
		Storage:       getEnv("STORAGE", StorageDatabase),
		DBDriver:      getEnv("DB_DRIVER", DriverMySQL),
		DBDSN:         os.Getenv("DB_DSN"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTIssuer:     getEnv("JWT_VALID_ISSUER", "forum"),
		JWTAudience:   getEnv("JWT_VALID_AUDIENCE", "forum"),
		CORSOrigins:   splitList(os.Getenv("CORS_ORIGINS")),
		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}
	if storage != "" {
		cfg.Storage = storage
	}

	var err error
	if cfg.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.RefreshTokenTTL, err = getDuration("REFRESH_TOKEN_TTL", 72*time.Hour); err != nil {
		return nil, err
	}
	if cfg.SessionSweepInterval, err = getDuration("SESSION_SWEEP_INTERVAL", 10*time.Minute); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Init is Load for main: any problem is fatal.
func Init(storage string) *Config {
	cfg, err := Load(storage)
	if err != nil {
		Logger.Fatal("Invalid configuration", zap.Error(err))
	}
	return cfg
}

// SeedAdmin reports whether an admin account should be created at startup.
func (c *Config) SeedAdmin() bool {
	return c.AdminUsername != "" && c.AdminPassword != ""
}

func (c *Config) validate() error {
	var problems []error
	if c.JWTSecret == "" {
		problems = append(problems, errors.New("JWT_SECRET is not set"))
	}

	switch c.Storage {
	case StorageMemory:
	case StorageDatabase:
		if c.DBDSN == "" {
			problems = append(problems, errors.New("DB_DSN is not set"))
		}
		if c.RedisAddr == "" {
			problems = append(problems, errors.New("REDIS_ADDR is not set"))
		}
		if c.DBDriver != DriverMySQL && c.DBDriver != DriverPostgres {
			problems = append(problems, fmt.Errorf("DB_DRIVER %q is not supported", c.DBDriver))
		}
	default:
		problems = append(problems, fmt.Errorf("STORAGE %q is not one of %s, %s", c.Storage, StorageDatabase, StorageMemory))
	}
	return errors.Join(problems...)
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
