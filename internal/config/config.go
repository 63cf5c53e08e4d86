package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultJWTSecret      = "change-me-jwt-secret"
	defaultJWTAccessTTL   = "24h"
	defaultTicketValidity = "24h"
	defaultListenAddr     = ":8080"
	defaultDatabaseURL    = "museum.db"
	defaultUploadDir      = "./uploads"
	defaultStaticBase     = "/static/uploads"
)

// Config is the full runtime configuration, loaded from the environment.
// TicketValidity is the single validity-window setting: a ticket is active
// for exactly this long after purchase, on every code path that decides
// ticket status.
type Config struct {
	AppEnv         string
	ListenAddr     string
	DatabaseURL    string
	JWTSecret      string
	JWTAccessTTL   time.Duration
	TicketValidity time.Duration
	UploadDir      string
	StaticBase     string
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.ListenAddr = strings.TrimSpace(getEnv("LISTEN_ADDR", defaultListenAddr))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.UploadDir = strings.TrimSpace(getEnv("UPLOAD_DIR", defaultUploadDir))
	cfg.StaticBase = strings.TrimSpace(getEnv("STATIC_BASE", defaultStaticBase))

	var err error
	cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}

	cfg.TicketValidity, err = parseDurationEnv("TICKET_VALIDITY", defaultTicketValidity)
	if err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.JWTAccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if cfg.TicketValidity <= 0 {
		return fmt.Errorf("TICKET_VALIDITY must be > 0")
	}
	if cfg.ListenAddr == "" {
		return fmt.Errorf("LISTEN_ADDR must not be empty")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
