// Package utils provides shared low-level helpers used by the oaiclient
// internals: a synchronous JSON-over-HTTP round trip with request ids and
// observability events, tolerant JSON decoding backed by jsonrepair, and
// string truncation for log output.
//
// Key entry points: [DoPostSync], [ParseJSONAs] and [TruncateString].
package utils
