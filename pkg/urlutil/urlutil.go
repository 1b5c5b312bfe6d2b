// Package urlutil provides URL building helpers that preserve the original
// encoding of configured base URLs.
package urlutil

import (
	"net/url"
	"strings"
)

// JoinPath appends a path segment to a base URL using string manipulation,
// so a base such as "http://host/api" keeps its exact spelling.
// A base that carries a query string gets the segment inserted before it.
func JoinPath(baseURL, segment string) string {
	query := ""
	if idx := strings.Index(baseURL, "?"); idx >= 0 {
		baseURL, query = baseURL[:idx], baseURL[idx:]
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(segment, "/") + query
}

// AddQueryParam appends key=value to a URL, escaping both with query rules.
// Existing query parameters are left untouched.
func AddQueryParam(rawURL, key, value string) string {
	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
		if strings.HasSuffix(rawURL, "?") || strings.HasSuffix(rawURL, "&") {
			sep = ""
		}
	}
	return rawURL + sep + url.QueryEscape(key) + "=" + url.QueryEscape(value)
}

// GetSchemeHost extracts scheme://host from a URL.
func GetSchemeHost(urlStr string) string {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	return parsed.Scheme + "://" + parsed.Host
}
