package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultDatabaseURL    = "shrimp.db"
	defaultPort           = 8501
	defaultFontPath       = "CJ_Light.ttf"
	defaultLogoPath       = "cj.jpg"
	defaultPassword       = "1234!"
	defaultRequestTimeout = 15 * time.Second
	defaultSessionTTL     = 12 * time.Hour
)

// Config holds environment-driven settings for the dashboard.
type Config struct {
	DatabaseURL    string
	Port           int
	FontPath       string
	LogoPath       string
	Password       string
	RequestTimeout time.Duration
	SessionTTL     time.Duration
	LogLevel       string
	LogFormat      string
	CookieSecure   bool
}

// Default returns the configuration used when no environment is set.
func Default() Config {
	return Config{
		DatabaseURL:    defaultDatabaseURL,
		Port:           defaultPort,
		FontPath:       defaultFontPath,
		LogoPath:       defaultLogoPath,
		Password:       defaultPassword,
		RequestTimeout: defaultRequestTimeout,
		SessionTTL:     defaultSessionTTL,
		LogLevel:       "info",
		LogFormat:      "auto",
	}
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load() // ignore missing file

	cfg := Default()

	if v := strings.TrimSpace(os.Getenv("DATABASE_URL")); v != "" {
		cfg.DatabaseURL = v
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid PORT: %s", portStr)
		}
	} else if portStr := os.Getenv("DASHBOARD_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid DASHBOARD_PORT: %s", portStr)
		}
	}

	// An explicitly empty FONT_PATH disables the custom font.
	if v, ok := os.LookupEnv("FONT_PATH"); ok {
		cfg.FontPath = strings.TrimSpace(v)
	}
	if v := strings.TrimSpace(os.Getenv("LOGO_PATH")); v != "" {
		cfg.LogoPath = v
	}
	if v := os.Getenv("DASHBOARD_PASSWORD"); v != "" {
		cfg.Password = v
	}

	if v := strings.TrimSpace(os.Getenv("REQUEST_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return cfg, fmt.Errorf("invalid REQUEST_TIMEOUT: %s", v)
		}
		cfg.RequestTimeout = d
	}

	if v := strings.TrimSpace(os.Getenv("SESSION_TTL")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return cfg, fmt.Errorf("invalid SESSION_TTL: %s", v)
		}
		cfg.SessionTTL = d
	}

	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("LOG_FORMAT")); v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}

	secure := strings.TrimSpace(os.Getenv("COOKIE_SECURE"))
	cfg.CookieSecure = secure == "1" || strings.EqualFold(secure, "true")

	return cfg, nil
}

// ListenAddr returns the host:port string for the HTTP server.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
