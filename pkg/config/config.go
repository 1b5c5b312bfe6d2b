// Package config handles application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Defaults for the two upstreams.
const (
	DefaultBackendBaseURL = "http://localhost:3000/api"
	DefaultConfigURL      = "https://raw.githubusercontent.com/siawaseok3/wakame/master/video_config.json"
)

// Config holds all application configuration.
type Config struct {
	// Server settings
	Port            int           `validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `validate:"gt=0"`
	WriteTimeout    time.Duration `validate:"gt=0"`
	IdleTimeout     time.Duration `validate:"gt=0"`
	ShutdownTimeout time.Duration `validate:"gt=0"`

	// Upstreams
	BackendBaseURL string        `validate:"required,url"`
	ConfigURL      string        `validate:"required,url"`
	BackendTimeout time.Duration `validate:"gt=0"`
	ConfigTimeout  time.Duration `validate:"gt=0"`

	// Authentication
	APIPassword string

	// Rate limiting (0 disables)
	RateLimitRPM   int `validate:"gte=0"`
	RateLimitBurst int `validate:"gte=0"`

	// Proxy settings
	GlobalProxies   []string
	TransportRoutes []TransportRoute `validate:"dive"`
	UTLSDomains     []string

	// Logging
	LogLevel         string `validate:"oneof=debug info warn warning error"`
	LogJSON          bool
	LogFile          string
	LogMaxSizeMB     int `validate:"gte=0"`
	LogMaxBackups    int `validate:"gte=0"`
	LogMaxAgeDays    int `validate:"gte=0"`
	LogCompressFiles bool

	Version string
}

// TransportRoute defines URL-specific proxy routing.
type TransportRoute struct {
	URLPattern string `validate:"required"`
	Proxy      string
	DisableSSL bool
	Direct     bool // If true, bypass global proxy and connect directly
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	cfg := &Config{
		Port:             getEnvInt("PORT", 5000),
		ReadTimeout:      getEnvDuration("READ_TIMEOUT", 30*time.Second),
		WriteTimeout:     getEnvDuration("WRITE_TIMEOUT", 60*time.Second),
		IdleTimeout:      getEnvDuration("IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout:  getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
		BackendBaseURL:   getEnvString("NODE_API_BASE_URL", DefaultBackendBaseURL),
		ConfigURL:        getEnvString("CONFIG_URL", DefaultConfigURL),
		BackendTimeout:   getEnvDuration("BACKEND_TIMEOUT", 15*time.Second),
		ConfigTimeout:    getEnvDuration("CONFIG_TIMEOUT", 10*time.Second),
		APIPassword:      os.Getenv("API_PASSWORD"),
		RateLimitRPM:     getEnvInt("RATE_LIMIT_RPM", 0),
		RateLimitBurst:   getEnvInt("RATE_LIMIT_BURST", 10),
		GlobalProxies:    getEnvStringSlice("GLOBAL_PROXIES", nil),
		UTLSDomains:      getEnvStringSlice("UTLS_DOMAINS", nil),
		LogLevel:         strings.ToLower(getEnvString("LOG_LEVEL", "info")),
		LogJSON:          getEnvBool("LOG_JSON", false),
		LogFile:          getEnvString("LOG_FILE", ""),
		LogMaxSizeMB:     getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups:    getEnvInt("LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays:    getEnvInt("LOG_MAX_AGE_DAYS", 28),
		LogCompressFiles: getEnvBool("LOG_COMPRESS", true),
		Version:          getEnvString("VERSION", "1.0.0"),
	}

	cfg.TransportRoutes = parseTransportRoutes(os.Getenv("TRANSPORT_ROUTES"))

	// Legacy single proxy support
	if globalProxy := os.Getenv("GLOBAL_PROXY"); globalProxy != "" && len(cfg.GlobalProxies) == 0 {
		cfg.GlobalProxies = []string{globalProxy}
	}

	return cfg
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	return nil
}

// parseTransportRoutes parses the TRANSPORT_ROUTES env var.
// Format: {URL=pattern, PROXY=url, DISABLE_SSL=true}, {URL=pattern2}
func parseTransportRoutes(s string) []TransportRoute {
	if s == "" {
		return nil
	}

	var routes []TransportRoute
	s = strings.TrimSpace(s)

	parts := strings.Split(s, "}, {")
	for _, part := range parts {
		part = strings.Trim(part, "{} ")
		if part == "" {
			continue
		}

		route := TransportRoute{}
		for _, field := range strings.Split(part, ", ") {
			kv := strings.SplitN(field, "=", 2)
			if len(kv) != 2 {
				continue
			}
			key := strings.TrimSpace(kv[0])
			value := strings.TrimSpace(kv[1])

			switch strings.ToUpper(key) {
			case "URL":
				route.URLPattern = value
			case "PROXY":
				route.Proxy = value
			case "DISABLE_SSL":
				route.DisableSSL = strings.ToLower(value) == "true"
			case "DIRECT":
				route.Direct = strings.ToLower(value) == "true"
			}
		}
		if route.URLPattern != "" {
			routes = append(routes, route)
		}
	}

	return routes
}

func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return strings.ToLower(val) == "true" || val == "1"
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		// Plain integers are seconds
		if secs, err := strconv.Atoi(val); err == nil {
			return time.Duration(secs) * time.Second
		}
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

func getEnvStringSlice(key string, defaultVal []string) []string {
	if val := os.Getenv(key); val != "" {
		parts := strings.Split(val, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return defaultVal
}
