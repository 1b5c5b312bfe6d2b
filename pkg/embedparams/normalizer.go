// Package embedparams derives the query-string suffix appended to iframe
// embed links from a remotely hosted JSON config document.
//
// The config source is best-effort: any failure to fetch or parse it results
// in an empty suffix, and the metadata request proceeds without parameters.
package embedparams

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"

	"video-meta-relay/pkg/apperr"
	"video-meta-relay/pkg/interfaces"
	"video-meta-relay/pkg/logging"
	"video-meta-relay/pkg/types"
	"video-meta-relay/pkg/urlutil"
)

// maxConfigBytes bounds the config document read.
const maxConfigBytes = 1 << 20

// Normalizer fetches the embed config and normalizes its params.
type Normalizer struct {
	client    interfaces.HTTPGetter
	configURL string
	timeout   time.Duration
	log       *logging.Logger
}

// NewNormalizer creates a Normalizer reading configURL with the given per-fetch timeout.
func NewNormalizer(client interfaces.HTTPGetter, configURL string, timeout time.Duration, log *logging.Logger) *Normalizer {
	return &Normalizer{
		client:    client,
		configURL: configURL,
		timeout:   timeout,
		log:       log.WithComponent("embedparams"),
	}
}

// Suffix returns the normalized "?k=v&..." suffix, or "" when the config is
// unavailable, malformed, or carries no params.
func (n *Normalizer) Suffix(ctx context.Context) string {
	cfg, err := n.Fetch(ctx)
	if err != nil {
		n.log.Warn("embed config unavailable, continuing without params",
			"config_host", urlutil.GetSchemeHost(n.configURL),
			"error", err,
		)
		return ""
	}

	suffix := Normalize(cfg.Params)
	n.log.Debug("embed params normalized", "raw", cfg.Params, "suffix", suffix)
	return suffix
}

// Fetch retrieves and decodes the config document. Every failure is reported
// as an apperr.ConfigFetchFailure.
func (n *Normalizer) Fetch(ctx context.Context) (types.RemoteConfig, error) {
	const op = "embedparams.Fetch"

	if n.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.timeout)
		defer cancel()
	}

	resp, err := n.client.Get(ctx, n.configURL, map[string]string{"Accept": "application/json"})
	if err != nil {
		return types.RemoteConfig{}, apperr.ConfigFetch(op, errors.Wrap(err, "request config"))
	}
	defer resp.Body.Close()

	n.log.Debug("config response", "status", resp.StatusCode)

	if resp.StatusCode >= http.StatusBadRequest {
		return types.RemoteConfig{}, apperr.ConfigFetch(op, fmt.Errorf("config returned status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxConfigBytes))
	if err != nil {
		return types.RemoteConfig{}, apperr.ConfigFetch(op, errors.Wrap(err, "read config"))
	}

	return parseConfig(op, body)
}

func parseConfig(op string, body []byte) (types.RemoteConfig, error) {
	var doc types.RawDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return types.RemoteConfig{}, apperr.ConfigFetch(op, errors.Wrap(err, "decode config"))
	}
	if doc == nil {
		return types.RemoteConfig{}, apperr.ConfigFetch(op, errors.New("config is not a JSON object"))
	}

	switch params := doc["params"].(type) {
	case nil:
		return types.RemoteConfig{}, nil
	case string:
		return types.RemoteConfig{Params: params}, nil
	default:
		return types.RemoteConfig{}, apperr.ConfigFetch(op, fmt.Errorf("params has type %T, want string", params))
	}
}

// Normalize canonicalizes a query string taken from the config document.
//
// "&amp;" entities become "&" and one leading "?" is dropped. Pairs without
// "=" or with an empty value are discarded; empty keys are kept. Keys and
// values are percent-decoded leniently, and the last value of a repeated key
// wins. Keys keep the order of their first appearance. The result is
// re-encoded with query escaping and prefixed with "?", or is "" when nothing
// survives.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	raw = strings.ReplaceAll(raw, "&amp;", "&")
	raw = strings.TrimPrefix(raw, "?")

	var order []string
	values := make(map[string]string)

	for _, pair := range strings.Split(raw, "&") {
		rawKey, rawValue, found := strings.Cut(pair, "=")
		if !found || rawValue == "" {
			continue
		}
		key := unescape(rawKey)
		if _, seen := values[key]; !seen {
			order = append(order, key)
		}
		values[key] = unescape(rawValue)
	}

	if len(order) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteByte('?')
	for i, key := range order {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(values[key]))
	}
	return b.String()
}

// unescape decodes "+" as a space and valid %XX escapes. Malformed escapes
// are kept as literal text. Invalid UTF-8 is replaced with U+FFFD, one per
// maximal ill-formed subsequence.
func unescape(s string) string {
	buf := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '+':
			buf = append(buf, ' ')
		case c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			buf = append(buf, unhex(s[i+1])<<4|unhex(s[i+2]))
			i += 2
		default:
			buf = append(buf, c)
		}
	}

	if utf8.Valid(buf) {
		return string(buf)
	}

	var b strings.Builder
	for len(buf) > 0 {
		r, size := utf8.DecodeRune(buf)
		if r == utf8.RuneError && size == 1 {
			size = invalidPrefixLen(buf)
		}
		b.WriteRune(r)
		buf = buf[size:]
	}
	return b.String()
}

// invalidPrefixLen returns the length of the truncated sequence at the start
// of buf, which does not hold a complete rune.
func invalidPrefixLen(buf []byte) int {
	var need int
	lo, hi := byte(0x80), byte(0xBF)
	switch c := buf[0]; {
	case c >= 0xC2 && c <= 0xDF:
		need = 1
	case c == 0xE0:
		need, lo = 2, 0xA0
	case c == 0xED:
		need, hi = 2, 0x9F
	case c >= 0xE1 && c <= 0xEF:
		need = 2
	case c == 0xF0:
		need, lo = 3, 0x90
	case c == 0xF4:
		need, hi = 3, 0x8F
	case c >= 0xF1 && c <= 0xF3:
		need = 3
	default:
		return 1
	}

	n := 1
	for ; n <= need && n < len(buf); n++ {
		if buf[n] < lo || buf[n] > hi {
			break
		}
		lo, hi = 0x80, 0xBF
	}
	return n
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
