// Package interfaces defines the seams between the relay's components so
// each can be replaced by a fake in tests.
package interfaces

import (
	"context"
	"net/http"

	"video-meta-relay/pkg/types"
)

// HTTPGetter issues outbound GET requests.
type HTTPGetter interface {
	Get(ctx context.Context, url string, headers map[string]string) (*http.Response, error)
}

// ParamSource yields the embed query-string suffix for iframe links.
// Implementations never fail: an unusable source yields "".
type ParamSource interface {
	Suffix(ctx context.Context) string
}

// MetadataFetcher retrieves the raw metadata document for a video.
type MetadataFetcher interface {
	FetchVideo(ctx context.Context, videoID string) (types.RawDocument, error)
}

// MetadataExtractor reduces a raw document to the public record.
type MetadataExtractor interface {
	Extract(raw types.RawDocument, videoID, paramSuffix string) types.CleanedMetadata
}
