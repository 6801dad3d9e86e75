// Package slogobs implements observability.Provider on top of log/slog.
// Spans, span events and metrics are emitted as debug records; errors
// recorded on a span are logged at error level.
package slogobs
