// Package apperr defines the failure taxonomy of the relay and how each kind
// is reported to HTTP clients.
package apperr

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// Kind classifies a failure.
type Kind int

const (
	// DataProcessingError covers malformed backend payloads and unexpected faults.
	DataProcessingError Kind = iota
	// MissingParameter is a client error raised before any network call.
	MissingParameter
	// ConfigFetchFailure is always absorbed by the embed parameter source.
	ConfigFetchFailure
	// UpstreamUnavailable means the metadata backend could not be reached or
	// answered with an error status.
	UpstreamUnavailable
)

func (k Kind) String() string {
	switch k {
	case MissingParameter:
		return "missing_parameter"
	case ConfigFetchFailure:
		return "config_fetch_failure"
	case UpstreamUnavailable:
		return "upstream_unavailable"
	default:
		return "data_processing_error"
	}
}

// Client-facing messages.
const (
	MsgMissingVideoID = "Missing video id"
	MsgUpstream       = "Failed to fetch data from Node.js API"
	MsgProcessing     = "Data processing error"
)

// Error is a classified failure. Message is safe to show to clients.
type Error struct {
	Kind    Kind   `json:"-"`
	Message string `json:"error"`
	Op      string `json:"-"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Cause returns the innermost error.
func (e *Error) Cause() error {
	if e.Err == nil {
		return e
	}
	return errors.Cause(e.Err)
}

// Status maps the kind to an HTTP status code.
func (e *Error) Status() int {
	return StatusOf(e.Kind)
}

// E builds an Error. Op is rendered by Error, so err is stored as given.
func E(kind Kind, op string, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Op: op, Err: err}
}

// MissingParam reports a required request parameter that was not supplied.
func MissingParam(op, message string) *Error {
	return E(MissingParameter, op, nil, message)
}

// ConfigFetch reports a failure to obtain or parse the embed config document.
func ConfigFetch(op string, err error) *Error {
	return E(ConfigFetchFailure, op, err, "config fetch failed")
}

// Upstream reports an unreachable or failing metadata backend.
func Upstream(op string, err error) *Error {
	return E(UpstreamUnavailable, op, err, MsgUpstream)
}

// Processing reports a payload the relay could not handle.
func Processing(op string, err error) *Error {
	return E(DataProcessingError, op, err, MsgProcessing)
}

// KindOf classifies any error. Unclassified errors are processing errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return DataProcessingError
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// StatusOf maps a kind to an HTTP status code.
func StatusOf(kind Kind) int {
	switch kind {
	case MissingParameter:
		return http.StatusBadRequest
	case UpstreamUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Public returns the status code and client-facing message for err.
func Public(err error) (int, string) {
	var e *Error
	if errors.As(err, &e) && e.Kind != ConfigFetchFailure {
		return e.Status(), e.Message
	}
	return http.StatusInternalServerError, MsgProcessing
}
