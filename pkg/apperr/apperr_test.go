package apperr

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestPublic(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"missing parameter", MissingParam("video_meta", MsgMissingVideoID), http.StatusBadRequest, "Missing video id"},
		{"upstream", Upstream("backend.FetchVideo", io.ErrUnexpectedEOF), http.StatusServiceUnavailable, MsgUpstream},
		{"processing", Processing("backend.FetchVideo", io.ErrUnexpectedEOF), http.StatusInternalServerError, MsgProcessing},
		{"wrapped upstream", errors.Wrap(Upstream("op", nil), "lookup"), http.StatusServiceUnavailable, MsgUpstream},
		{"config failure never leaks", ConfigFetch("embedparams.Fetch", io.EOF), http.StatusInternalServerError, MsgProcessing},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, MsgProcessing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := Public(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, UpstreamUnavailable, KindOf(Upstream("op", nil)))
	assert.Equal(t, ConfigFetchFailure, KindOf(errors.WithStack(ConfigFetch("op", io.EOF))))
	assert.Equal(t, DataProcessingError, KindOf(io.EOF))
	assert.True(t, Is(MissingParam("op", "x"), MissingParameter))
	assert.False(t, Is(io.EOF, MissingParameter))
}

func TestError_UnwrapAndCause(t *testing.T) {
	err := Upstream("backend.FetchVideo", io.ErrUnexpectedEOF)

	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Equal(t, io.ErrUnexpectedEOF, err.Cause())
	assert.Contains(t, err.Error(), "backend.FetchVideo")
	assert.Equal(t, "upstream_unavailable", err.Kind.String())
}

func TestError_OpRenderedOnce(t *testing.T) {
	err := Upstream("backend.FetchVideo", errors.Wrap(io.ErrUnexpectedEOF, "request metadata"))

	assert.Equal(t,
		"backend.FetchVideo: Failed to fetch data from Node.js API: request metadata: unexpected EOF",
		err.Error(),
	)
	assert.Equal(t, 1, strings.Count(err.Error(), "backend.FetchVideo"))
	assert.Equal(t, "backend.FetchVideo: Data processing error", Processing("backend.FetchVideo", nil).Error())
}
