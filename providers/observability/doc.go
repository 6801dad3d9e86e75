// Package observability defines the interfaces and semantic conventions used
// for tracing, metrics and structured logging throughout oaiclient.
//
// The central entry point is [Provider], which composes [Tracer], [Metrics]
// and [Logger] into a single injectable dependency. The active [Span] travels
// through a [context.Context] via [ContextWithSpan] and [SpanFromContext], so
// the HTTP layer can attach events to the span opened by the client.
//
// semconv.go holds the attribute keys, span names and metric names.
package observability
