package app

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/soomhq/soom-auth/pkg/jwtx"
)

type Config struct {
	Issuer    string // Issuer claim for access tokens
	JWTSecret string // Required: HS256 signing key, at least 32 bytes

	AccessTTL  time.Duration // Access token lifetime (default: 15m)
	RefreshTTL time.Duration // Refresh token lifetime (default: 7 days)

	DatabaseFile string // Path to SQLite database file (default: ./auth.db)
	PepperFile   string // Path to pepper file for password hashing (default: ./pepper)

	Env       string // Environment (dev, staging, prod) (default: dev)
	LogLevel  string // Log level (debug, info, warn, error) (default: info)
	LogFormat string // Log format (json, text, pretty) (default: json)

	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Expired token sweep interval (default: 1h)

	CORSAllowedOrigin string // Origin allowed to call the API with credentials (empty disables CORS)
	CookieSecure      bool   // Mark the refresh cookie Secure (default: true outside dev)

	SeedEmail    string // Optional: seed account created on an empty database
	SeedName     string
	SeedPassword string
	SeedRole     string
}

func LoadConfig() Config {
	// Local development keeps settings in a .env file; absence is fine.
	_ = godotenv.Load()

	cfg := Config{
		Issuer:               getEnvOrDefault("AUTH_ISSUER", "soom-auth"),
		JWTSecret:            os.Getenv("AUTH_JWT_SECRET"),
		AccessTTL:            getEnvDurationOrDefault("AUTH_ACCESS_TTL", jwtx.DefaultAccessTokenTTL),
		RefreshTTL:           getEnvDurationOrDefault("AUTH_REFRESH_TTL", jwtx.DefaultRefreshTokenTTL),
		DatabaseFile:         getEnvOrDefault("AUTH_DATABASE_FILE", "auth.db"),
		PepperFile:           getEnvOrDefault("AUTH_PEPPER_FILE", "pepper"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
		CORSAllowedOrigin:    os.Getenv("CORS_ALLOWED_ORIGIN"),
		SeedEmail:            os.Getenv("AUTH_SEED_EMAIL"),
		SeedName:             getEnvOrDefault("AUTH_SEED_NAME", "Administrator"),
		SeedPassword:         os.Getenv("AUTH_SEED_PASSWORD"),
		SeedRole:             getEnvOrDefault("AUTH_SEED_ROLE", "admin"),
	}

	cfg.CookieSecure = getEnvBoolOrDefault("AUTH_COOKIE_SECURE", cfg.Env != "dev")

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Accept duration strings ("15m", "168h") or bare integer minutes.
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
