package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPAddr        = ":8080"
	defaultAPIBaseURL      = "http://localhost:8000/api/v1"
	defaultBackendTimeout  = 30 * time.Second
	defaultDownloadTimeout = 5 * time.Minute
	defaultListLimit       = 100
)

type Config struct {
	APIBaseURL       string
	HTTPAddr         string
	MetricsAddr      string
	DatabaseURL      string
	AuthCookieSecure bool
	BackendTimeout   time.Duration
	DownloadTimeout  time.Duration
	ListLimit        int
}

type LoadOptions struct {
	RequireAPIBaseURL bool
}

func Load() (Config, error) {
	return LoadWithOptions(LoadOptions{RequireAPIBaseURL: true})
}

func LoadWithOptions(opts LoadOptions) (Config, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return Config{}, err
		}
	}

	cfg := Config{
		APIBaseURL:       strings.TrimRight(getenvDefault("PRISMTRACK_API_URL", defaultAPIBaseURL), "/"),
		HTTPAddr:         getenvDefault("HTTP_ADDR", defaultHTTPAddr),
		MetricsAddr:      os.Getenv("METRICS_ADDR"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		AuthCookieSecure: getenvBoolDefault("AUTH_COOKIE_SECURE", false),
		BackendTimeout:   defaultBackendTimeout,
		DownloadTimeout:  defaultDownloadTimeout,
		ListLimit:        getenvIntDefault("LIST_LIMIT", defaultListLimit),
	}

	if v := os.Getenv("BACKEND_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.BackendTimeout = d
		}
	}
	if v := os.Getenv("DOWNLOAD_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.DownloadTimeout = d
		}
	}

	if opts.RequireAPIBaseURL && cfg.APIBaseURL == "" {
		return cfg, errors.New("PRISMTRACK_API_URL is required")
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvIntDefault(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return def
	}
	return n
}

func getenvBoolDefault(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	switch v {
	case "1":
		return true
	case "0":
		return false
	default:
		return def
	}
}
