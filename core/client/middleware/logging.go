package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/leofalp/oaiclient/core/client"
	"github.com/leofalp/oaiclient/internal/utils"
)

// LogLevel controls how much detail the logging middleware emits per request.
type LogLevel int

const (
	// LogLevelMinimal logs only the model name, total duration, and token counts.
	LogLevelMinimal LogLevel = iota

	// LogLevelStandard adds the message count, response format and response
	// status. This is the recommended default.
	LogLevelStandard

	// LogLevelVerbose adds the last message content (the prompt) and the
	// result, each truncated to 500 characters.
	//
	// WARNING: do not use LogLevelVerbose in production. It logs raw prompt
	// and response text, which may contain PII or secrets.
	LogLevelVerbose
)

// truncateLen is the maximum content length included in verbose log output.
const truncateLen = 500

// NewLoggingMiddleware creates a Middleware that logs every request and its
// outcome. The logger must not be nil; use slog.Default() if unsure.
func NewLoggingMiddleware(logger *slog.Logger, level LogLevel) client.Middleware {
	return func(next client.RequestFunc) client.RequestFunc {
		return func(ctx context.Context, call client.Call) (*client.Result, error) {
			logger.InfoContext(ctx, "llm request", buildCallAttrs(call, level)...)

			start := time.Now()
			result, err := next(ctx, call)
			elapsed := time.Since(start)

			if err != nil {
				logger.ErrorContext(ctx, "llm request failed",
					slog.String("model", call.Model),
					slog.Duration("duration", elapsed),
					slog.String("error", err.Error()),
				)
				return nil, err
			}

			logger.InfoContext(ctx, "llm request completed",
				buildResultAttrs(call, result, elapsed, level)...,
			)
			return result, nil
		}
	}
}

// buildCallAttrs returns slog attributes for an outgoing call.
func buildCallAttrs(call client.Call, level LogLevel) []any {
	attrs := []any{
		slog.String("model", call.Model),
	}

	if level >= LogLevelStandard {
		attrs = append(attrs,
			slog.Int("message_count", len(call.Messages)),
			slog.String("response_format", call.Format.Kind().String()),
		)
		if !call.Format.IsPlainText() {
			attrs = append(attrs, slog.String("schema_name", call.Format.Name()))
		}
	}

	if level >= LogLevelVerbose && len(call.Messages) > 0 {
		last := call.Messages[len(call.Messages)-1]
		attrs = append(attrs,
			slog.String("prompt_role", string(last.Role)),
			slog.String("prompt", utils.TruncateString(last.Content, truncateLen)),
		)
	}

	return attrs
}

// buildResultAttrs returns slog attributes for a completed request.
func buildResultAttrs(call client.Call, result *client.Result, elapsed time.Duration, level LogLevel) []any {
	attrs := []any{
		slog.String("model", call.Model),
		slog.Duration("duration", elapsed),
	}

	response := result.Response
	if response != nil && response.Usage != nil {
		attrs = append(attrs,
			slog.Int("input_tokens", response.Usage.InputTokens),
			slog.Int("output_tokens", response.Usage.OutputTokens),
			slog.Int("total_tokens", response.Usage.TotalTokens),
		)
	}

	if level >= LogLevelStandard && response != nil && response.Status != "" {
		attrs = append(attrs, slog.String("status", response.Status))
	}

	if level >= LogLevelVerbose {
		attrs = append(attrs, slog.String("result", utils.TruncateString(result.String(), truncateLen)))
	}

	return attrs
}
