package observability

import "context"

type spanKey struct{}

// SpanFromContext returns the span stored by [ContextWithSpan] or [Start],
// or nil when the context carries none.
func SpanFromContext(ctx context.Context) Span {
	if ctx == nil {
		return nil
	}
	span, _ := ctx.Value(spanKey{}).(Span)
	return span
}

// ContextWithSpan returns a copy of ctx carrying span.
func ContextWithSpan(ctx context.Context, span Span) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, spanKey{}, span)
}

// Start opens a span on tracer and stores it in the returned context. A nil
// tracer yields a no-op span and leaves ctx untouched, so callers can defer
// span.End() unconditionally.
func Start(ctx context.Context, tracer Tracer, name string, attrs ...Attribute) (context.Context, Span) {
	if tracer == nil {
		return ctx, noopSpan{}
	}
	ctx, span := tracer.StartSpan(ctx, name, attrs...)
	return ContextWithSpan(ctx, span), span
}

type noopSpan struct{}

func (noopSpan) End()                          {}
func (noopSpan) SetAttributes(...Attribute)    {}
func (noopSpan) SetStatus(StatusCode, string)  {}
func (noopSpan) RecordError(error)             {}
func (noopSpan) AddEvent(string, ...Attribute) {}
