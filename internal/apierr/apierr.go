// Package apierr defines the error kinds from spec.md §7 so the HTTP
// layer can pick a status code without string-matching error messages.
package apierr

import "fmt"

// ConfigError is an unknown line identifier or malformed query; surfaced
// as 4xx.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return e.Msg }

// NewConfigError builds a ConfigError with a formatted message.
func NewConfigError(format string, args ...any) *ConfigError {
	return &ConfigError{Msg: fmt.Sprintf(format, args...)}
}

// DataCorruption is an unreadable static file, invalid coordinate, or
// missing polyline. Fatal at startup; the caller decides whether a
// runtime occurrence is merely logged and the record dropped.
type DataCorruption struct {
	Msg string
}

func (e *DataCorruption) Error() string { return e.Msg }

// NewDataCorruption builds a DataCorruption with a formatted message.
func NewDataCorruption(format string, args ...any) *DataCorruption {
	return &DataCorruption{Msg: fmt.Sprintf(format, args...)}
}

// FeedUnavailable is an HTTP, network, or protobuf-parse failure on the
// outbound GTFS-RT fetch. Never fatal; the orchestrator degrades to a
// status=error response with empty positions.
type FeedUnavailable struct {
	Msg string
	Err error
}

func (e *FeedUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *FeedUnavailable) Unwrap() error { return e.Err }

// NewFeedUnavailable wraps the underlying transport/parse error.
func NewFeedUnavailable(msg string, err error) *FeedUnavailable {
	return &FeedUnavailable{Msg: msg, Err: err}
}
