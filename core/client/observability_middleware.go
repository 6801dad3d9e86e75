package client

import (
	"context"
	"time"

	"github.com/leofalp/oaiclient/internal/utils"
	"github.com/leofalp/oaiclient/providers/ai"
	"github.com/leofalp/oaiclient/providers/observability"
)

// NewObservabilityMiddleware returns a Middleware that records a span, request
// metrics and log events for every request.
//
// The span is stored in the context before calling next, so transports can
// attach HTTP events to it via [observability.SpanFromContext]. The span
// covers extraction too: an *ExtractionError is recorded like a transport error.
//
// [New] prepends it to the chain when [WithObserver] is provided, making it the
// outermost wrapper.
func NewObservabilityMiddleware(observer observability.Provider) Middleware {
	return func(next RequestFunc) RequestFunc {
		return func(ctx context.Context, call Call) (*Result, error) {
			attrs := callAttributes(call)

			// 1. Start span and enrich context so the transport can add events.
			ctx, span := observability.Start(ctx, observer, observability.SpanRequest, attrs...)

			// 2. Emit a debug log at request start.
			observer.Debug(ctx, "llm request",
				append(attrs, observability.Int(observability.AttrRequestMessagesCount, len(call.Messages)))...,
			)

			// 3. Time the call.
			start := time.Now()
			result, err := next(ctx, call)
			elapsed := time.Since(start)

			observer.Histogram(observability.MetricRequestDuration).Record(ctx, float64(elapsed.Milliseconds()),
				observability.String(observability.AttrLLMModel, call.Model),
			)

			// 4. Handle error path.
			if err != nil {
				span.RecordError(err)
				span.SetStatus(observability.StatusError, "llm request failed")
				span.End()

				observer.Error(ctx, "llm request failed",
					observability.Error(err),
					observability.Duration(observability.AttrHTTPDuration, elapsed),
					observability.String(observability.AttrLLMModel, call.Model),
				)

				observer.Counter(observability.MetricRequestCount).Add(ctx, 1,
					observability.String(observability.AttrStatus, "error"),
					observability.String(observability.AttrLLMModel, call.Model),
				)

				return nil, err
			}

			// 5. Record success metrics and log.
			recordSuccess(ctx, span, observer, result, elapsed, call.Model)

			return result, nil
		}
	}
}

func callAttributes(call Call) []observability.Attribute {
	attrs := []observability.Attribute{
		observability.String(observability.AttrLLMModel, call.Model),
		observability.String(observability.AttrLLMResponseFormat, formatLabel(call.Format)),
	}
	if !call.Format.IsPlainText() {
		attrs = append(attrs, observability.String(observability.AttrLLMSchemaName, call.Format.Name()))
	}
	return attrs
}

// formatLabel names the wire format requested: "text" or "json_schema".
func formatLabel(format ai.ResponseFormat) string {
	if format.IsPlainText() {
		return "text"
	}
	return "json_schema"
}

// recordSuccess writes the success-path counter, span attributes and an INFO
// log, then ends the span.
func recordSuccess(
	ctx context.Context,
	span observability.Span,
	observer observability.Provider,
	result *Result,
	elapsed time.Duration,
	model string,
) {
	observer.Counter(observability.MetricRequestCount).Add(ctx, 1,
		observability.String(observability.AttrStatus, "success"),
		observability.String(observability.AttrLLMModel, model),
	)

	logAttrs := []observability.Attribute{
		observability.String(observability.AttrLLMModel, model),
		observability.Duration(observability.AttrHTTPDuration, elapsed),
		observability.Bool("structured", result.IsStructured()),
	}

	if response := result.Response; response != nil {
		logAttrs = append(logAttrs, observability.String(observability.AttrLLMResponseID, response.ID))
		if response.Usage != nil {
			span.SetAttributes(observability.Int(observability.AttrLLMTokensTotal, response.Usage.TotalTokens))
			logAttrs = append(logAttrs, observability.Int(observability.AttrLLMTokensTotal, response.Usage.TotalTokens))
		}
	}

	if estimate := result.Cost(); estimate != nil {
		span.SetAttributes(observability.Float64(observability.AttrLLMCostTotal, estimate.Total))
		logAttrs = append(logAttrs, observability.Float64(observability.AttrLLMCostTotal, estimate.Total))
	}

	logAttrs = append(logAttrs, observability.String("response", utils.TruncateString(result.String(), 100)))

	observer.Info(ctx, "llm request completed", logAttrs...)

	span.SetStatus(observability.StatusOK, "success")
	span.End()
}
