package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/leofalp/oaiclient/providers/ai"
	"github.com/leofalp/oaiclient/providers/observability"
	"github.com/leofalp/oaiclient/providers/observability/slogobs"
)

// spanCheckingTransport fails the test when no span reaches the transport.
type spanCheckingTransport struct {
	mockTransport
	t *testing.T
}

func (s *spanCheckingTransport) Create(ctx context.Context, request ai.CreateRequest) (*ai.Response, error) {
	if observability.SpanFromContext(ctx) == nil {
		s.t.Error("expected a span in the transport context")
	}
	return s.mockTransport.Create(ctx, request)
}

func records(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var record map[string]any
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			t.Fatalf("invalid log line %q: %v", line, err)
		}
		out = append(out, record)
	}
	return out
}

func findRecord(all []map[string]any, key, value string) map[string]any {
	for _, record := range all {
		if record[key] == value {
			return record
		}
	}
	return nil
}

func TestObserver_Success(t *testing.T) {
	var buf bytes.Buffer
	observer := slogobs.New(slogobs.WithFormat(slogobs.FormatJSON), slogobs.WithLevel(slog.LevelDebug), slogobs.WithOutput(&buf))

	transport := &spanCheckingTransport{t: t}
	transport.createResponse = &ai.Response{
		ID:     "resp_42",
		Output: ai.Convenience{Text: "hi"},
		Usage:  &ai.Usage{TotalTokens: 7},
	}
	c, _ := New(transport, "gpt-test", WithObserver(observer))

	if _, err := c.Request(context.Background(), "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	all := records(t, &buf)
	start := findRecord(all, "event", "span.start")
	if start == nil || start["span"] != observability.SpanRequest || start[observability.AttrLLMModel] != "gpt-test" {
		t.Errorf("expected span start with model attribute, got %v", start)
	}

	end := findRecord(all, "event", "span.end")
	if end == nil || end[observability.AttrStatus] != "ok" || end[observability.AttrLLMTokensTotal] != float64(7) {
		t.Errorf("expected successful span end with token count, got %v", end)
	}

	completed := findRecord(all, "msg", "llm request completed")
	if completed == nil || completed[observability.AttrLLMResponseID] != "resp_42" {
		t.Errorf("expected completion log with response id, got %v", completed)
	}

	counter := findRecord(all, "metric", observability.MetricRequestCount)
	if counter == nil || counter[observability.AttrStatus] != "success" {
		t.Errorf("expected success counter, got %v", counter)
	}
	if findRecord(all, "metric", observability.MetricRequestDuration) == nil {
		t.Error("expected a duration histogram record")
	}
}

func TestObserver_ExtractionFailureIsRecorded(t *testing.T) {
	var buf bytes.Buffer
	observer := slogobs.New(slogobs.WithFormat(slogobs.FormatJSON), slogobs.WithLevel(slog.LevelDebug), slogobs.WithOutput(&buf))

	transport := &mockTransport{createResponse: &ai.Response{Output: ai.Items{}}}
	c, _ := New(transport, "gpt-test", WithObserver(observer))

	_, err := c.Request(context.Background(), "hello")
	var extraction *ExtractionError
	if !errors.As(err, &extraction) {
		t.Fatalf("expected *ExtractionError, got %v", err)
	}

	all := records(t, &buf)
	if findRecord(all, "event", "error") == nil {
		t.Error("expected the error to be recorded on the span")
	}
	end := findRecord(all, "event", "span.end")
	if end == nil || end[observability.AttrStatus] != "error" {
		t.Errorf("expected span to end in error, got %v", end)
	}
	counter := findRecord(all, "metric", observability.MetricRequestCount)
	if counter == nil || counter[observability.AttrStatus] != "error" {
		t.Errorf("expected error counter, got %v", counter)
	}
}

func TestObserver_IsOutermost(t *testing.T) {
	var buf bytes.Buffer
	observer := slogobs.New(slogobs.WithFormat(slogobs.FormatJSON), slogobs.WithLevel(slog.LevelDebug), slogobs.WithOutput(&buf))

	sawSpan := false
	probe := func(next RequestFunc) RequestFunc {
		return func(ctx context.Context, call Call) (*Result, error) {
			sawSpan = observability.SpanFromContext(ctx) != nil
			return next(ctx, call)
		}
	}

	transport := &mockTransport{createResponse: textResponse("ok")}
	c, _ := New(transport, "gpt-test", WithMiddleware(probe), WithObserver(observer))

	if _, err := c.Request(context.Background(), "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sawSpan {
		t.Error("expected user middlewares to run inside the observability span")
	}
}
