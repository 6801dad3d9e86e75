package observability

import (
	"context"
	"time"
)

// Provider is what a client needs to observe Client.Request: one span per
// request, the request count and latency metrics, and structured log lines.
// It is optional; a client without one pays nothing for observation.
type Provider interface {
	Tracer
	Metrics
	Logger
}

// --- TRACING ---

// Tracer opens the SpanRequest span around a request. The openai transport
// finds it in the context and adds the HTTP attributes to it.
type Tracer interface {
	StartSpan(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Span is one request in flight, from snapshot to extracted result.
type Span interface {
	End()
	SetAttributes(attrs ...Attribute)
	// SetStatus marks the span StatusError for transport, API and extraction
	// failures alike.
	SetStatus(code StatusCode, description string)
	RecordError(err error)
	AddEvent(name string, attrs ...Attribute)
}

// StatusCode is the outcome recorded on a span.
type StatusCode int

const (
	StatusUnset StatusCode = iota
	StatusOK
	StatusError
)

// --- METRICS ---

// Metrics hands out the instruments named in semconv.go. Implementations may
// return the same instrument for repeated calls with one name.
type Metrics interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
}

// Counter backs MetricRequestCount; each request adds one, tagged with the
// model and AttrStatus.
type Counter interface {
	Add(ctx context.Context, value int64, attrs ...Attribute)
}

// Histogram backs MetricRequestDuration, recorded in milliseconds.
type Histogram interface {
	Record(ctx context.Context, value float64, attrs ...Attribute)
}

// --- LOGGING ---

// Logger receives the request lifecycle lines: Debug when a request starts,
// Info when it completes with token usage, Error when it fails.
type Logger interface {
	Debug(ctx context.Context, msg string, attrs ...Attribute)
	Info(ctx context.Context, msg string, attrs ...Attribute)
	Warn(ctx context.Context, msg string, attrs ...Attribute)
	Error(ctx context.Context, msg string, attrs ...Attribute)
}

// --- ATTRIBUTES ---

// Attribute is a key from semconv.go with its value.
type Attribute struct {
	Key   string
	Value interface{}
}

// String creates a string attribute, e.g. the model or response id.
func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

// Int creates an integer attribute, e.g. a message or token count.
func Int(key string, value int) Attribute {
	return Attribute{Key: key, Value: value}
}

// Float64 creates a float attribute; used for estimated cost in USD.
func Float64(key string, value float64) Attribute {
	return Attribute{Key: key, Value: value}
}

func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

// Duration creates a duration attribute for round-trip timings.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value}
}

// Error creates an AttrError attribute. A nil error yields an empty value so
// callers can attach it unconditionally.
func Error(err error) Attribute {
	if err == nil {
		return Attribute{Key: AttrError, Value: ""}
	}
	return Attribute{Key: AttrError, Value: err.Error()}
}
