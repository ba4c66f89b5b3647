package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrMissingEnv is returned by Load when a required variable is unset.
var ErrMissingEnv = errors.New("missing required environment variable")

// Password storage modes accepted by PASSWORD_HASHING.
const (
	PasswordHashingNone   = "none"
	PasswordHashingBcrypt = "bcrypt"
)

// Config holds application configuration loaded from environment variables.
// SECRET_KEY and DATABASE_URL are required, everything else has a local default.
type Config struct {
	AppName string
	Env     string // development, staging, production
	Port    string
	GinMode string

	// Signing key for the forgery-protection cookie
	SecretKey string

	// Database
	DatabaseURL   string
	DBMaxConns    int32
	DBMinConns    int32
	DBMaxConnLife time.Duration

	// Migrations
	MigrationsDir string

	// Redis (optional, enables signup rate limiting)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SignupRateLimit  int
	SignupRateWindow time.Duration

	// Cookies
	CookieSecure bool

	// CORS
	CORSAllowedOrigins string // comma-separated

	// none or bcrypt
	PasswordHashing string

	// Debug metrics (/debug/vars)
	DebugMetricsEnabled bool

	// HTTP access log toggle
	HTTPLogEnabled bool

	// Honor CF-Connecting-IP / X-Forwarded-For when resolving the client IP
	TrustProxyHeaders bool
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %v, using default %v", key, err, def)
			return def
		}
		return b
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid int for %s: %v, using default %d", key, err, def)
			return def
		}
		return i
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using default %v", key, err, def)
			return def
		}
		return d
	}
	return def
}

// Load loads configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		AppName: getenv("APP_NAME", "car-collection"),
		Env:     getenv("APP_ENV", "development"),
		Port:    getenv("PORT", "8080"),
		GinMode: getenv("GIN_MODE", "release"),

		SecretKey: os.Getenv("SECRET_KEY"),

		DatabaseURL:   os.Getenv("DATABASE_URL"),
		DBMaxConns:    int32(getint("DB_MAX_CONNS", 10)),
		DBMinConns:    int32(getint("DB_MIN_CONNS", 2)),
		DBMaxConnLife: getdur("DB_MAX_CONN_LIFETIME", time.Hour),

		MigrationsDir: getenv("MIGRATIONS_DIR", "db/migrations"),

		RedisAddr:     getenv("REDIS_ADDR", ""),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getint("REDIS_DB", 0),

		SignupRateLimit:  getint("SIGNUP_RATE_LIMIT", 20),
		SignupRateWindow: getdur("SIGNUP_RATE_WINDOW", time.Minute),

		CookieSecure: getbool("COOKIE_SECURE", false),

		CORSAllowedOrigins: getenv("CORS_ALLOWED_ORIGINS", ""),

		PasswordHashing: strings.ToLower(getenv("PASSWORD_HASHING", PasswordHashingNone)),

		DebugMetricsEnabled: getbool("DEBUG_METRICS_ENABLED", false),
		HTTPLogEnabled:      getbool("HTTP_LOG_ENABLED", false),
		TrustProxyHeaders:   getbool("TRUST_PROXY_HEADERS", false),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports missing required values and unknown enum settings.
func (c *Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.SecretKey) == "" {
		missing = append(missing, "SECRET_KEY")
	}
	if strings.TrimSpace(c.DatabaseURL) == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingEnv, strings.Join(missing, ", "))
	}
	switch c.PasswordHashing {
	case PasswordHashingNone, PasswordHashingBcrypt:
	default:
		return fmt.Errorf("invalid PASSWORD_HASHING %q: want %q or %q", c.PasswordHashing, PasswordHashingNone, PasswordHashingBcrypt)
	}
	return nil
}

// PostgresDSN returns the connection string handed to pgx and golang-migrate
func (c *Config) PostgresDSN() string {
	return c.DatabaseURL
}

// CORSOrigins returns the allowed origins as slice
func (c *Config) CORSOrigins() []string {
	parts := strings.Split(c.CORSAllowedOrigins, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}

// RateLimitEnabled is true when a Redis address is configured and the limit is positive.
func (c *Config) RateLimitEnabled() bool {
	return c.RedisAddr != "" && c.SignupRateLimit > 0 && c.SignupRateWindow > 0
}
