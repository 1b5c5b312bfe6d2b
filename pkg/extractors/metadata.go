// Package extractors reduces raw backend metadata documents to the public
// record served by the relay.
package extractors

import (
	"video-meta-relay/pkg/interfaces"
	"video-meta-relay/pkg/types"
)

// EmbedBaseURL prefixes every generated iframe link.
const EmbedBaseURL = "https://www.youtubeeducation.com/embed/"

// Field paths inside the backend document.
var (
	titlePath        = []string{"primary_info", "title", "text"}
	viewCountPath    = []string{"primary_info", "view_count", "view_count", "text"}
	publishedPath    = []string{"primary_info", "published", "text"}
	relativeDatePath = []string{"primary_info", "relative_date", "text"}
)

// MetadataExtractor picks the displayed fields out of a backend document.
type MetadataExtractor struct{}

// NewMetadataExtractor creates a MetadataExtractor.
func NewMetadataExtractor() *MetadataExtractor {
	return &MetadataExtractor{}
}

// Extract builds the cleaned record. Fields missing or null in raw are left
// nil; any other JSON value is carried as is. IframeLink is always set.
func (e *MetadataExtractor) Extract(raw types.RawDocument, videoID, paramSuffix string) types.CleanedMetadata {
	return types.CleanedMetadata{
		Title:         lookup(raw, titlePath...),
		ViewCount:     lookup(raw, viewCountPath...),
		PublishedDate: lookup(raw, publishedPath...),
		RelativeDate:  lookup(raw, relativeDatePath...),
		IframeLink:    IframeLink(videoID, paramSuffix),
	}
}

// IframeLink returns the embed URL for videoID with the suffix appended verbatim.
func IframeLink(videoID, paramSuffix string) string {
	return EmbedBaseURL + videoID + paramSuffix
}

// lookup walks path through nested objects and returns the value at the end.
// A missing key, a null, or a non-object along the way yields nil.
func lookup(doc map[string]any, path ...string) any {
	var node any = doc
	for _, key := range path {
		obj, ok := node.(map[string]any)
		if !ok {
			return nil
		}
		node, ok = obj[key]
		if !ok {
			return nil
		}
	}

	return node
}

var _ interfaces.MetadataExtractor = (*MetadataExtractor)(nil)
