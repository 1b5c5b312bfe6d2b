// Package api provides HTTP handlers for the relay API.
package api

import (
	"encoding/json"
	"net/http"

	"video-meta-relay/pkg/apperr"
	"video-meta-relay/pkg/appctx"
	"video-meta-relay/pkg/logging"
	"video-meta-relay/pkg/types"
)

// Handlers contains all API handlers.
type Handlers struct {
	ctx *appctx.Context
	log *logging.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(ctx *appctx.Context) *Handlers {
	return &Handlers{
		ctx: ctx,
		log: ctx.Log.WithComponent("api"),
	}
}

// RegisterRoutes registers all API routes.
func (h *Handlers) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/info", h.handleAPIInfo)
	mux.HandleFunc("GET /video_meta", h.handleVideoMeta)
}

// handleAPIInfo returns server status as JSON.
func (h *Handlers) handleAPIInfo(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, types.ServiceInfo{
		Status:  "running",
		Version: h.ctx.Config.Version,
	})
}

// handleVideoMeta returns the cleaned metadata and embed link for ?id=.
func (h *Handlers) handleVideoMeta(w http.ResponseWriter, r *http.Request) {
	videoID := r.URL.Query().Get("id")
	if videoID == "" {
		h.writeAppError(w, r, apperr.MissingParam("api.VideoMeta", apperr.MsgMissingVideoID))
		return
	}

	meta, err := h.ctx.MetaService.Lookup(r.Context(), videoID)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, meta)
}

// writeAppError maps err to its public status and message.
func (h *Handlers) writeAppError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := apperr.Public(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("request failed",
			"path", r.URL.Path,
			"request_id", r.Header.Get("X-Request-ID"),
			"status", status,
			"error", err,
		)
	}
	h.writeError(w, status, message)
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
