// Package types defines core domain types used throughout the application.
package types

// RawDocument is a loosely-typed JSON object as decoded from an upstream.
type RawDocument map[string]any

// RemoteConfig is the embed parameter configuration document.
type RemoteConfig struct {
	// Params is a query string, possibly HTML-escaped and prefixed with "?".
	Params string
}

// CleanedMetadata is the response body of /video_meta.
// Metadata fields hold the upstream JSON value as decoded, usually a string.
// Nil fields were absent or null upstream and are omitted from the JSON.
type CleanedMetadata struct {
	Title         any    `json:"title,omitempty"`
	ViewCount     any    `json:"view_count,omitempty"`
	PublishedDate any    `json:"published_date,omitempty"`
	RelativeDate  any    `json:"relative_date,omitempty"`
	IframeLink    string `json:"iframelink"`
}

// ServiceInfo is returned by the info endpoint.
type ServiceInfo struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
