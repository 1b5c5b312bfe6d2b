// Package backend provides a client for the video metadata backend, a REST
// service that answers GET <base>/video?id=<id> with nested JSON.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"video-meta-relay/pkg/apperr"
	"video-meta-relay/pkg/interfaces"
	"video-meta-relay/pkg/logging"
	"video-meta-relay/pkg/types"
	"video-meta-relay/pkg/urlutil"
)

// maxBodyBytes bounds a metadata response.
const maxBodyBytes = 8 << 20

// Client is a metadata backend client.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient interfaces.HTTPGetter
	log        *logging.Logger
}

// NewClient creates a new backend client.
func NewClient(baseURL string, timeout time.Duration, httpClient interfaces.HTTPGetter, log *logging.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		timeout:    timeout,
		httpClient: httpClient,
		log:        log.WithComponent("backend"),
	}
}

// VideoURL returns the backend URL for a video.
func (c *Client) VideoURL(videoID string) string {
	return urlutil.AddQueryParam(urlutil.JoinPath(c.baseURL, "video"), "id", videoID)
}

// FetchVideo fetches the raw metadata document for videoID.
//
// Transport failures, timeouts and HTTP error statuses are reported as
// apperr.UpstreamUnavailable; an unreadable or non-object body as
// apperr.DataProcessingError.
func (c *Client) FetchVideo(ctx context.Context, videoID string) (types.RawDocument, error) {
	const op = "backend.FetchVideo"

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	target := c.VideoURL(videoID)
	c.log.Debug("fetching video metadata", "url", target)

	resp, err := c.httpClient.Get(ctx, target, map[string]string{"Accept": "application/json"})
	if err != nil {
		return nil, apperr.Upstream(op, errors.Wrap(err, "request metadata"))
	}
	defer resp.Body.Close()

	c.log.Debug("backend response", "video_id", videoID, "status", resp.StatusCode)

	if resp.StatusCode >= http.StatusBadRequest {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, apperr.Upstream(op, fmt.Errorf("backend returned status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		if ctx.Err() != nil {
			return nil, apperr.Upstream(op, errors.Wrap(err, "read metadata"))
		}
		return nil, apperr.Processing(op, errors.Wrap(err, "read metadata"))
	}

	var doc types.RawDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, apperr.Processing(op, errors.Wrap(err, "decode metadata"))
	}
	if doc == nil {
		return nil, apperr.Processing(op, errors.New("metadata is not a JSON object"))
	}

	return doc, nil
}

var _ interfaces.MetadataFetcher = (*Client)(nil)
