// Package appctx provides the application context that holds all runtime dependencies.
package appctx

import (
	"video-meta-relay/pkg/config"
	"video-meta-relay/pkg/httpclient"
	"video-meta-relay/pkg/logging"
	"video-meta-relay/pkg/services"
)

// Context holds all application runtime dependencies.
// Pass this single struct to components instead of individual parameters.
type Context struct {
	Config      *config.Config
	Log         *logging.Logger
	HTTPClient  *httpclient.Client
	MetaService *services.MetaService
}

// New creates a new application context.
func New(cfg *config.Config, log *logging.Logger) *Context {
	return &Context{
		Config: cfg,
		Log:    log,
	}
}

// WithHTTPClient sets the shared outbound HTTP client.
func (c *Context) WithHTTPClient(client *httpclient.Client) *Context {
	c.HTTPClient = client
	return c
}

// WithMetaService sets the metadata service.
func (c *Context) WithMetaService(ms *services.MetaService) *Context {
	c.MetaService = ms
	return c
}
