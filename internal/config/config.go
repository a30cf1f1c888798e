package config

import (
	"os"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
)

// Config holds runtime configuration values for the whoami API server.
type Config struct {
	DBPath        string
	ServerPort    int
	LogLevel      string
	SentryDSN     string
	Environment   string
	PerPage       int
	ContactLimit  int
	ContactWindow time.Duration
	SMTPHost      string
	SMTPPort      int
	SMTPUser      string
	SMTPPass      string
	SMTPFrom      string
	ContactEmail  string
	SeedOnEmpty   bool
	ShutdownGrace time.Duration
}

const (
	defaultDBPath        = "./data/whoami.db"
	defaultServerPort    = 3001
	defaultLogLevel      = "info"
	defaultEnvironment   = "development"
	defaultPerPage       = 5
	defaultContactLimit  = 5
	defaultContactWindow = 15 * time.Minute
	defaultSMTPPort      = 587
	defaultSMTPFrom      = "Portfolio <noreply@example.com>"
	defaultShutdownGrace = 10 * time.Second
)

// Load reads configuration values from environment variables, applying defaults where necessary.
func Load() (*Config, error) {
	cfg := &Config{
		DBPath:        getEnv("DB_PATH", defaultDBPath),
		LogLevel:      getEnv("LOG_LEVEL", defaultLogLevel),
		SentryDSN:     os.Getenv("SENTRY_DSN"),
		Environment:   getEnv("ENV", defaultEnvironment),
		ContactWindow: defaultContactWindow,
		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPass:      os.Getenv("SMTP_PASS"),
		SMTPFrom:      getEnv("SMTP_FROM", defaultSMTPFrom),
		ContactEmail:  os.Getenv("CONTACT_NOTIFICATION_EMAIL"),
		SeedOnEmpty:   getEnv("SEED_ON_EMPTY", "true") != "false",
		ShutdownGrace: defaultShutdownGrace,
	}

	port, err := getEnvInt("SERVER_PORT", defaultServerPort)
	if err != nil {
		return nil, err
	}
	cfg.ServerPort = port

	perPage, err := getEnvInt("PER_PAGE", defaultPerPage)
	if err != nil {
		return nil, err
	}
	if perPage <= 0 {
		return nil, eris.Errorf("PER_PAGE must be positive, got %d", perPage)
	}
	cfg.PerPage = perPage

	contactLimit, err := getEnvInt("CONTACT_RATE_LIMIT", defaultContactLimit)
	if err != nil {
		return nil, err
	}
	if contactLimit <= 0 {
		return nil, eris.Errorf("CONTACT_RATE_LIMIT must be positive, got %d", contactLimit)
	}
	cfg.ContactLimit = contactLimit

	if raw := os.Getenv("CONTACT_RATE_WINDOW"); raw != "" {
		window, parseErr := time.ParseDuration(raw)
		if parseErr != nil {
			return nil, eris.Wrapf(parseErr, "invalid CONTACT_RATE_WINDOW value: %s", raw)
		}
		if window <= 0 {
			return nil, eris.Errorf("CONTACT_RATE_WINDOW must be positive, got %s", window)
		}
		cfg.ContactWindow = window
	}

	smtpPort, err := getEnvInt("SMTP_PORT", defaultSMTPPort)
	if err != nil {
		return nil, err
	}
	cfg.SMTPPort = smtpPort

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, eris.Wrapf(err, "invalid %s value: %s", key, raw)
	}
	return value, nil
}
