package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, DefaultBackendBaseURL, cfg.BackendBaseURL)
	assert.Equal(t, DefaultConfigURL, cfg.ConfigURL)
	assert.Equal(t, 15*time.Second, cfg.BackendTimeout)
	assert.Equal(t, 10*time.Second, cfg.ConfigTimeout)
	assert.Equal(t, 0, cfg.RateLimitRPM)
	assert.Empty(t, cfg.LogFile)
	require.NoError(t, cfg.Validate())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("NODE_API_BASE_URL", "http://backend:3000/api")
	t.Setenv("CONFIG_URL", "http://config.local/video_config.json")
	t.Setenv("BACKEND_TIMEOUT", "5")
	t.Setenv("CONFIG_TIMEOUT", "750ms")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("GLOBAL_PROXY", "socks5://proxy:1080")
	t.Setenv("UTLS_DOMAINS", "googlevideo.com, youtube.com,")

	cfg := Load()

	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, "http://backend:3000/api", cfg.BackendBaseURL)
	assert.Equal(t, "http://config.local/video_config.json", cfg.ConfigURL)
	assert.Equal(t, 5*time.Second, cfg.BackendTimeout)
	assert.Equal(t, 750*time.Millisecond, cfg.ConfigTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"socks5://proxy:1080"}, cfg.GlobalProxies)
	assert.Equal(t, []string{"googlevideo.com", "youtube.com"}, cfg.UTLSDomains)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"bad backend url", func(c *Config) { c.BackendBaseURL = "not a url" }, true},
		{"empty config url", func(c *Config) { c.ConfigURL = "" }, true},
		{"zero backend timeout", func(c *Config) { c.BackendTimeout = 0 }, true},
		{"port out of range", func(c *Config) { c.Port = 70000 }, true},
		{"unknown log level", func(c *Config) { c.LogLevel = "verbose" }, true},
		{"negative rate limit", func(c *Config) { c.RateLimitRPM = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseTransportRoutes(t *testing.T) {
	routes := parseTransportRoutes("{URL=backend.local, PROXY=socks5://p:1080}, {URL=raw.githubusercontent.com, DIRECT=true, DISABLE_SSL=true}")

	require.Len(t, routes, 2)
	assert.Equal(t, TransportRoute{URLPattern: "backend.local", Proxy: "socks5://p:1080"}, routes[0])
	assert.Equal(t, TransportRoute{URLPattern: "raw.githubusercontent.com", Direct: true, DisableSSL: true}, routes[1])

	assert.Nil(t, parseTransportRoutes(""))
	assert.Empty(t, parseTransportRoutes("{PROXY=socks5://p:1080}"))
}
