// Package app provides the main application setup and dependency injection.
package app

import (
	"fmt"

	"video-meta-relay/pkg/appctx"
	"video-meta-relay/pkg/backend"
	"video-meta-relay/pkg/config"
	"video-meta-relay/pkg/embedparams"
	"video-meta-relay/pkg/extractors"
	"video-meta-relay/pkg/handlers/api"
	"video-meta-relay/pkg/httpclient"
	"video-meta-relay/pkg/logging"
	"video-meta-relay/pkg/server"
	"video-meta-relay/pkg/services"
)

// App is the main application container.
type App struct {
	Ctx        *appctx.Context
	Server     *server.Server
	HTTPClient *httpclient.Client
}

// New creates and initializes the application.
func New() (*App, error) {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Initialize logger
	log := logging.New(cfg.LogLevel, cfg.LogJSON, logging.Output(logging.FileOptions{
		Path:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
		Compress:   cfg.LogCompressFiles,
	}))
	log.Info("initializing video meta relay",
		"port", cfg.Port,
		"log_level", cfg.LogLevel,
		"backend", cfg.BackendBaseURL,
		"version", cfg.Version,
	)

	// Create application context
	ctx := appctx.New(cfg, log)

	// Create HTTP client
	httpClient := httpclient.New(cfg, log)
	ctx.WithHTTPClient(httpClient)

	// Create metadata service
	metaService := services.NewMetaService(
		log,
		embedparams.NewNormalizer(httpClient, cfg.ConfigURL, cfg.ConfigTimeout, log),
		backend.NewClient(cfg.BackendBaseURL, cfg.BackendTimeout, httpClient, log),
		extractors.NewMetadataExtractor(),
	)
	ctx.WithMetaService(metaService)

	// Create HTTP server
	srv := server.New(cfg, log)

	// Create API handlers
	handlers := api.NewHandlers(ctx)
	handlers.RegisterRoutes(srv.Router())

	if cfg.APIPassword != "" {
		log.Info("API password protection enabled")
	}
	if cfg.RateLimitRPM > 0 {
		log.Info("rate limiting enabled", "rpm", cfg.RateLimitRPM, "burst", cfg.RateLimitBurst)
	}

	return &App{
		Ctx:        ctx,
		Server:     srv,
		HTTPClient: httpClient,
	}, nil
}

// Run starts the application.
func (a *App) Run() error {
	a.Ctx.Log.Info("starting video meta relay", "port", a.Ctx.Config.Port)
	if err := a.Server.Start(); err != nil {
		return fmt.Errorf("run server: %w", err)
	}
	return nil
}

// Shutdown releases application resources.
func (a *App) Shutdown() {
	a.Ctx.Log.Info("shutting down application")
	a.HTTPClient.CloseIdleConnections()
}
