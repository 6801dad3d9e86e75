package ai

import (
	"encoding/json"

	"github.com/leofalp/oaiclient/internal/jsonschema"
)

/*
	##### PROVIDER INPUT #####
*/

// CreateRequest asks the backend for a plain-text completion.
type CreateRequest struct {
	Model    string    `json:"model"`    // Model name or identifier, passed through unvalidated
	Messages []Message `json:"messages"` // System message first when present, then the user prompt
}

// ParseRequest asks the backend to decode its output against Format.
type ParseRequest struct {
	Model    string         `json:"model"`
	Messages []Message      `json:"messages"`
	Format   ResponseFormat `json:"-"`
}

// Message represents a single message in a conversation
type Message struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// MessageRole represents the role of a message; compatible with string
type MessageRole string

const (
	RoleSystem    MessageRole = "system"    // System instructions/configuration
	RoleUser      MessageRole = "user"      // End-user message
	RoleAssistant MessageRole = "assistant" // Model output
)

// FormatKind tags the variant held by a [ResponseFormat].
type FormatKind int

const (
	FormatPlainText FormatKind = iota
	FormatStructured
)

func (k FormatKind) String() string {
	if k == FormatStructured {
		return "structured"
	}
	return "plain_text"
}

// ResponseFormat is either PlainText or Structured(name, schema). The zero
// value is PlainText.
type ResponseFormat struct {
	kind   FormatKind
	name   string
	schema *jsonschema.Schema
	strict bool
}

// PlainText requests unstructured text output.
func PlainText() ResponseFormat {
	return ResponseFormat{kind: FormatPlainText}
}

// Structured requests output decoded against schema, in strict mode. A nil
// schema yields PlainText.
func Structured(name string, schema *jsonschema.Schema) ResponseFormat {
	if schema == nil {
		return PlainText()
	}
	return ResponseFormat{
		kind:   FormatStructured,
		name:   name,
		schema: schema,
		strict: true,
	}
}

// WithStrict returns a copy of f with strict schema adherence toggled.
// It has no effect on PlainText.
func (f ResponseFormat) WithStrict(strict bool) ResponseFormat {
	if f.kind == FormatStructured {
		f.strict = strict
	}
	return f
}

func (f ResponseFormat) Kind() FormatKind           { return f.kind }
func (f ResponseFormat) Name() string               { return f.name }
func (f ResponseFormat) Schema() *jsonschema.Schema { return f.schema }
func (f ResponseFormat) Strict() bool               { return f.strict }

// IsPlainText reports whether f requests unstructured text.
func (f ResponseFormat) IsPlainText() bool {
	return f.kind != FormatStructured || f.schema == nil
}

/*
	##### PROVIDER OUTPUT #####
*/

type Usage struct {
	InputTokens  int `json:"input_tokens,omitempty"`
	OutputTokens int `json:"output_tokens,omitempty"`
	TotalTokens  int `json:"total_tokens,omitempty"`

	// Extended token metrics
	ReasoningTokens int `json:"reasoning_tokens,omitempty"` // Tokens used for reasoning (o1/o3/gpt-5)
	CachedTokens    int `json:"cached_tokens,omitempty"`    // Cached prompt tokens
}

// Response is the provider-agnostic result of a Create or Parse call.
type Response struct {
	ID     string `json:"id"`
	Model  string `json:"model"`
	Status string `json:"status,omitempty"`
	Usage  *Usage `json:"usage,omitempty"`

	// Output is either [Convenience] or [Items]; nil when the backend
	// returned neither.
	Output Output `json:"-"`
}

// Output is the closed set of response shapes: [Convenience] and [Items].
type Output interface {
	isOutput()
}

// Convenience is returned when the backend exposed the aggregated output
// directly. Text is set for Create, Parsed for Parse.
type Convenience struct {
	Text   string
	Parsed json.RawMessage
}

// Items is the nested output list that has to be walked.
type Items []OutputItem

func (Convenience) isOutput() {}
func (Items) isOutput()       {}

const (
	OutputItemMessage = "message"

	ContentOutputText = "output_text"
	ContentRefusal    = "refusal"
)

// OutputItem is one entry of the nested output list.
type OutputItem struct {
	Type    string        `json:"type"` // "message", "reasoning", ...
	Role    MessageRole   `json:"role,omitempty"`
	Content []ContentPart `json:"content,omitempty"`
}

// ContentPart is one element of an output message. Text is nil when the part
// carries no text (a refusal, for instance); Parsed is only set by Parse.
type ContentPart struct {
	Type    string          `json:"type"`
	Text    *string         `json:"text,omitempty"`
	Parsed  json.RawMessage `json:"parsed,omitempty"`
	Refusal string          `json:"refusal,omitempty"`
}
