package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/leofalp/oaiclient/core/client"
	"github.com/leofalp/oaiclient/internal/jsonschema"
	"github.com/leofalp/oaiclient/providers/ai"
)

// ========== Test helpers ==========

// testLogger creates an slog.Logger that writes to buf so tests can inspect
// emitted log lines.
func testLogger(buf *bytes.Buffer) *slog.Logger {
	handler := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(handler)
}

func logContains(buf *bytes.Buffer, substr string) bool {
	return strings.Contains(buf.String(), substr)
}

func textCall() client.Call {
	return client.Call{
		Model: "test-model",
		Messages: []ai.Message{
			{Role: ai.RoleSystem, Content: "be brief"},
			{Role: ai.RoleUser, Content: "hi there"},
		},
		Format: ai.PlainText(),
	}
}

func textNext(_ context.Context, _ client.Call) (*client.Result, error) {
	return client.NewTextResult("hello world", &ai.Response{
		ID:     "resp_1",
		Model:  "test-model",
		Status: "completed",
		Usage:  &ai.Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15},
	}), nil
}

// ========== Tests ==========

func TestLoggingMiddleware_Minimal(t *testing.T) {
	buf := &bytes.Buffer{}
	chain := NewLoggingMiddleware(testLogger(buf), LogLevelMinimal)(textNext)

	if _, err := chain(context.Background(), textCall()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()
	if !logContains(buf, "test-model") {
		t.Errorf("expected model in log, got:\n%s", output)
	}
	if !logContains(buf, "input_tokens=10") {
		t.Errorf("expected input_tokens in log, got:\n%s", output)
	}
	for _, unexpected := range []string{"message_count", "status=", "result=", "prompt="} {
		if logContains(buf, unexpected) {
			t.Errorf("did not expect %q at LogLevelMinimal, got:\n%s", unexpected, output)
		}
	}
}

func TestLoggingMiddleware_Standard(t *testing.T) {
	buf := &bytes.Buffer{}
	chain := NewLoggingMiddleware(testLogger(buf), LogLevelStandard)(textNext)

	if _, err := chain(context.Background(), textCall()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()
	for _, expected := range []string{"message_count=2", "response_format=plain_text", "status=completed"} {
		if !logContains(buf, expected) {
			t.Errorf("expected %q at LogLevelStandard, got:\n%s", expected, output)
		}
	}
	if logContains(buf, "hello world") {
		t.Errorf("did not expect result content at LogLevelStandard, got:\n%s", output)
	}
}

func TestLoggingMiddleware_Verbose(t *testing.T) {
	buf := &bytes.Buffer{}
	chain := NewLoggingMiddleware(testLogger(buf), LogLevelVerbose)(textNext)

	if _, err := chain(context.Background(), textCall()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()
	if !logContains(buf, `prompt="hi there"`) {
		t.Errorf("expected the user prompt at LogLevelVerbose, got:\n%s", output)
	}
	if !logContains(buf, `result="hello world"`) {
		t.Errorf("expected the result at LogLevelVerbose, got:\n%s", output)
	}
}

func TestLoggingMiddleware_StructuredCall(t *testing.T) {
	buf := &bytes.Buffer{}
	format := ai.Structured("summary", &jsonschema.Schema{Type: "object"})

	next := func(_ context.Context, _ client.Call) (*client.Result, error) {
		return client.NewStructuredResult(json.RawMessage(`{"title":"t"}`), &ai.Response{ID: "resp_2"}), nil
	}
	chain := NewLoggingMiddleware(testLogger(buf), LogLevelVerbose)(next)

	call := textCall()
	call.Format = format
	if _, err := chain(context.Background(), call); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !logContains(buf, "schema_name=summary") || !logContains(buf, "response_format=structured") {
		t.Errorf("expected structured format attributes, got:\n%s", buf.String())
	}
	if !logContains(buf, `result="{\"title\":\"t\"}"`) {
		t.Errorf("expected the JSON result, got:\n%s", buf.String())
	}
}

func TestLoggingMiddleware_ErrorPassThrough(t *testing.T) {
	buf := &bytes.Buffer{}
	sentinel := errors.New("backend unavailable")

	next := func(_ context.Context, _ client.Call) (*client.Result, error) {
		return nil, sentinel
	}
	chain := NewLoggingMiddleware(testLogger(buf), LogLevelStandard)(next)

	result, err := chain(context.Background(), textCall())
	if err != sentinel {
		t.Fatalf("expected the sentinel error unchanged, got %v", err)
	}
	if result != nil {
		t.Errorf("expected nil result on error, got %+v", result)
	}
	if !logContains(buf, "llm request failed") || !logContains(buf, "backend unavailable") {
		t.Errorf("expected failure log entry, got:\n%s", buf.String())
	}
}

func TestLoggingMiddleware_TruncatesLongContent(t *testing.T) {
	buf := &bytes.Buffer{}
	long := strings.Repeat("a", truncateLen+100)

	next := func(_ context.Context, _ client.Call) (*client.Result, error) {
		return client.NewTextResult(long, nil), nil
	}
	chain := NewLoggingMiddleware(testLogger(buf), LogLevelVerbose)(next)

	if _, err := chain(context.Background(), textCall()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logContains(buf, long) {
		t.Error("expected long result to be truncated")
	}
	if !logContains(buf, "truncated") {
		t.Errorf("expected truncation marker, got:\n%s", buf.String())
	}
}
