package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_PATH", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("SENTRY_DSN", "")
	t.Setenv("ENV", "")
	t.Setenv("PER_PAGE", "")
	t.Setenv("CONTACT_RATE_LIMIT", "")
	t.Setenv("CONTACT_RATE_WINDOW", "")
	t.Setenv("SMTP_HOST", "")
	t.Setenv("SMTP_PORT", "")
	t.Setenv("SEED_ON_EMPTY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.DBPath != defaultDBPath {
		t.Errorf("expected default DB path %q, got %q", defaultDBPath, cfg.DBPath)
	}

	if cfg.ServerPort != defaultServerPort {
		t.Errorf("expected default server port %d, got %d", defaultServerPort, cfg.ServerPort)
	}

	if cfg.PerPage != defaultPerPage {
		t.Errorf("expected default per page %d, got %d", defaultPerPage, cfg.PerPage)
	}

	if cfg.ContactLimit != defaultContactLimit {
		t.Errorf("expected default contact limit %d, got %d", defaultContactLimit, cfg.ContactLimit)
	}

	if cfg.ContactWindow != defaultContactWindow {
		t.Errorf("expected default contact window %s, got %s", defaultContactWindow, cfg.ContactWindow)
	}

	if cfg.Environment != defaultEnvironment {
		t.Errorf("expected default environment %q, got %q", defaultEnvironment, cfg.Environment)
	}

	if !cfg.SeedOnEmpty {
		t.Errorf("expected seeding enabled by default")
	}
}

func TestLoadWithExplicitValues(t *testing.T) {
	t.Setenv("DB_PATH", "/tmp/portfolio.db")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PER_PAGE", "10")
	t.Setenv("CONTACT_RATE_LIMIT", "3")
	t.Setenv("CONTACT_RATE_WINDOW", "5m")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "465")
	t.Setenv("CONTACT_NOTIFICATION_EMAIL", "me@example.com")
	t.Setenv("SEED_ON_EMPTY", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.DBPath != "/tmp/portfolio.db" {
		t.Errorf("expected DB path %q, got %q", "/tmp/portfolio.db", cfg.DBPath)
	}

	if cfg.ServerPort != 9090 {
		t.Errorf("expected server port 9090, got %d", cfg.ServerPort)
	}

	if cfg.PerPage != 10 {
		t.Errorf("expected per page 10, got %d", cfg.PerPage)
	}

	if cfg.ContactLimit != 3 {
		t.Errorf("expected contact limit 3, got %d", cfg.ContactLimit)
	}

	if cfg.ContactWindow != 5*time.Minute {
		t.Errorf("expected contact window 5m, got %s", cfg.ContactWindow)
	}

	if cfg.SMTPHost != "smtp.example.com" {
		t.Errorf("expected SMTP host smtp.example.com, got %q", cfg.SMTPHost)
	}

	if cfg.SMTPPort != 465 {
		t.Errorf("expected SMTP port 465, got %d", cfg.SMTPPort)
	}

	if cfg.ContactEmail != "me@example.com" {
		t.Errorf("expected contact email me@example.com, got %q", cfg.ContactEmail)
	}

	if cfg.SeedOnEmpty {
		t.Errorf("expected seeding disabled")
	}
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("SERVER_PORT", "invalid")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected error for invalid port, got nil")
	}

	if !strings.Contains(err.Error(), "invalid SERVER_PORT value") {
		t.Fatalf("expected error to mention invalid SERVER_PORT value, got %v", err)
	}
}

func TestLoadInvalidRateWindow(t *testing.T) {
	t.Setenv("CONTACT_RATE_WINDOW", "soon")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected error for invalid rate window, got nil")
	}

	if !strings.Contains(err.Error(), "invalid CONTACT_RATE_WINDOW value") {
		t.Fatalf("expected error to mention invalid CONTACT_RATE_WINDOW value, got %v", err)
	}
}

func TestLoadRejectsNonPositivePerPage(t *testing.T) {
	t.Setenv("PER_PAGE", "0")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected error for zero PER_PAGE, got nil")
	}
}
