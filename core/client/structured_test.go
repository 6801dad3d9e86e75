package client

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/leofalp/oaiclient/providers/ai"
)

type Summary struct {
	Title     string   `json:"title"`
	KeyPoints []string `json:"key_points"`
}

type HTTPStatusReport struct {
	Code int `json:"code"`
}

func TestSchemaName(t *testing.T) {
	testCases := []struct {
		typ  reflect.Type
		want string
	}{
		{reflect.TypeOf(Summary{}), "summary"},
		{reflect.TypeOf(&Summary{}), "summary"},
		{reflect.TypeOf(HTTPStatusReport{}), "http_status_report"},
		{reflect.TypeOf(struct{ A int }{}), "response"},
	}
	for _, tc := range testCases {
		if got := schemaName(tc.typ); got != tc.want {
			t.Errorf("schemaName(%s) = %q, want %q", tc.typ, got, tc.want)
		}
	}
}

func TestStructured(t *testing.T) {
	format, err := Structured[Summary]()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if format.Kind() != ai.FormatStructured || format.Name() != "summary" || !format.Strict() {
		t.Errorf("unexpected format: kind=%v name=%q strict=%v", format.Kind(), format.Name(), format.Strict())
	}
	if _, ok := format.Schema().Properties["key_points"]; !ok {
		t.Error("expected key_points in generated schema")
	}

	if _, err := Structured[map[string]any](); err == nil {
		t.Error("expected an error for a type strict mode cannot express")
	}
}

// The article scenario: the model answers with a title and two key points.
func TestRequest_OnlineFriendships(t *testing.T) {
	transport := &mockTransport{parseResponse: &ai.Response{
		ID: "resp_article",
		Output: ai.Items{{
			Type: ai.OutputItemMessage,
			Content: []ai.ContentPart{{
				Type:   ai.ContentOutputText,
				Text:   strPtr(`{"title":"Online Friendships","key_points":["pro","con"]}`),
				Parsed: []byte(`{"title":"Online Friendships","key_points":["pro","con"]}`),
			}},
		}},
	}}

	c, _ := New(transport, "gpt-test",
		WithSystemInstruction("You list the key points of a text. You come up with a title that suits the text."))

	summary, err := Request[Summary](context.Background(), c, "Online friendships - true or false? ...")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Title != "Online Friendships" {
		t.Errorf("expected title Online Friendships, got %q", summary.Title)
	}
	if !reflect.DeepEqual(summary.KeyPoints, []string{"pro", "con"}) {
		t.Errorf("expected key points [pro con], got %v", summary.KeyPoints)
	}

	if len(transport.parseRequests) != 1 {
		t.Fatalf("expected one Parse call, got %d", len(transport.parseRequests))
	}
	if transport.parseRequests[0].Messages[0].Role != ai.RoleSystem {
		t.Error("expected system instruction first")
	}
	if !c.ResponseFormat().IsPlainText() {
		t.Error("Request[T] must not change the client's format")
	}
}

func TestResult_Decode(t *testing.T) {
	structured := NewStructuredResult([]byte(`{"title":"t","key_points":[]}`), nil)

	var summary Summary
	if err := structured.Decode(&summary); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Title != "t" {
		t.Errorf("expected title t, got %q", summary.Title)
	}

	text := NewTextResult("hello", nil)
	if err := text.Decode(&summary); !errors.Is(err, ErrNotStructured) {
		t.Errorf("expected ErrNotStructured, got %v", err)
	}
	if _, err := Decode[Summary](text); !errors.Is(err, ErrNotStructured) {
		t.Errorf("expected ErrNotStructured from Decode[T], got %v", err)
	}
	if text.String() != "hello" || structured.String() != `{"title":"t","key_points":[]}` {
		t.Error("unexpected String() output")
	}
}
