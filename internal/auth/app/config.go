package app

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/hogarcare/hogar/internal/auth/service"
	"github.com/hogarcare/hogar/pkg/jwtx"
)

type Config struct {
	Issuer         string // Issuer claim for tokens and TOTP provisioning
	BootstrapToken string // Optional: token required to perform bootstrap

	DatabaseFile string // Path to SQLite database file (default: ./auth.db)
	PepperFile   string // Path to file containing pepper for password hashing (default: ./pepper)
	SigningKey   string // Path to the Ed25519 signing key PEM (default: ./signing.key)

	AccessTokenTTL    time.Duration // Access token and session lifetime (default: 1h)
	RefreshTokenTTL   time.Duration // Refresh token lifetime (default: 168h)
	ChallengeTokenTTL time.Duration // Two-factor challenge token lifetime (default: 5m)
	ResetTokenTTL     time.Duration // Password reset code lifetime (default: 15m)
	AttemptRetention  time.Duration // Login attempt history retention (default: 720h)

	SuspiciousSessions int64 // Active sessions per user before flagging (default: 5)

	AMQPURL string // Optional: RabbitMQ URL for the mailer queue; empty logs instead

	Argon2MemoryKiB   uint32 // Optional: Argon2id memory cost override
	Argon2Iterations  uint32 // Optional: Argon2id time cost override
	Argon2Parallelism uint8  // Optional: Argon2id parallelism override

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

// LoadConfig reads configuration from the environment. A .env file in the
// working directory is loaded first when present; real environment variables
// win over it.
func LoadConfig() Config {
	_ = godotenv.Load()

	cfg := Config{
		Issuer:         getEnvOrDefault("AUTH_ISSUER", "hogar-auth"),
		BootstrapToken: os.Getenv("BOOTSTRAP_TOKEN"),

		DatabaseFile: getEnvOrDefault("AUTH_DATABASE_FILE", "auth.db"),
		PepperFile:   getEnvOrDefault("AUTH_PEPPER_FILE", "pepper"),
		SigningKey:   getEnvOrDefault("AUTH_SIGNING_KEY_FILE", "signing.key"),

		AccessTokenTTL:    getEnvDurationOrDefault("AUTH_ACCESS_TTL", jwtx.DefaultAccessTokenTTL),
		RefreshTokenTTL:   getEnvDurationOrDefault("AUTH_REFRESH_TTL", jwtx.DefaultRefreshTokenTTL),
		ChallengeTokenTTL: getEnvDurationOrDefault("AUTH_CHALLENGE_TTL", jwtx.DefaultChallengeTokenTTL),
		ResetTokenTTL:     getEnvDurationOrDefault("AUTH_RESET_TTL", service.DefaultResetTokenTTL),
		AttemptRetention:  getEnvDurationOrDefault("AUTH_ATTEMPT_RETENTION", service.DefaultAttemptRetention),

		SuspiciousSessions: int64(getEnvIntOrDefault("AUTH_SUSPICIOUS_SESSIONS", service.DefaultSuspiciousThreshold)),

		AMQPURL: os.Getenv("AMQP_URL"),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	// Argon2 cost overrides; zero leaves the library defaults in place.
	cfg.Argon2MemoryKiB = uint32(getEnvIntOrDefault("AUTH_ARGON2_MEMORY_KIB", 0))
	cfg.Argon2Iterations = uint32(getEnvIntOrDefault("AUTH_ARGON2_ITERATIONS", 0))
	cfg.Argon2Parallelism = uint8(getEnvIntOrDefault("AUTH_ARGON2_PARALLELISM", 0))

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

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
