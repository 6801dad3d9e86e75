package openai

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/leofalp/oaiclient/internal/jsonschema"
	"github.com/leofalp/oaiclient/internal/utils"
	"github.com/leofalp/oaiclient/providers/ai"
)

/*
	RESPONSES API - INPUT
*/

// responseCreateRequest is the request body for the `/responses` endpoint
type responseCreateRequest struct {
	Model string      `json:"model"`
	Input []inputItem `json:"input"`
	Text  *textConfig `json:"text,omitempty"`
}

// inputItem represents an item in the input array
type inputItem struct {
	Role    string `json:"role"` // system, user, assistant
	Content string `json:"content"`
}

// textConfig controls output formatting
type textConfig struct {
	Format *textFormat `json:"format,omitempty"`
}

// textFormat selects structured output. Name, Schema and Strict are only
// sent with type "json_schema".
type textFormat struct {
	Type   string             `json:"type"` // "text", "json_schema"
	Name   string             `json:"name,omitempty"`
	Schema *jsonschema.Schema `json:"schema,omitempty"`
	Strict *bool              `json:"strict,omitempty"`
}

/*
	RESPONSES API - OUTPUT
*/

type responseCreateResponse struct {
	ID        string        `json:"id"`
	Object    string        `json:"object"` // "response"
	CreatedAt float64       `json:"created_at"`
	Model     string        `json:"model"`
	Output    []outputItem  `json:"output"`
	Status    string        `json:"status"` // "completed", "incomplete", "in_progress", "failed", "cancelled"
	Usage     *usageDetails `json:"usage,omitempty"`
	Error     *errorDetails `json:"error,omitempty"`

	IncompleteDetails *struct {
		Reason string `json:"reason"` // "max_output_tokens", "content_filter"
	} `json:"incomplete_details,omitempty"`

	// Aggregated output. The public API leaves these out; gateways and
	// SDK-backed proxies add them.
	OutputText   *string         `json:"output_text,omitempty"`
	OutputParsed json.RawMessage `json:"output_parsed,omitempty"`
}

// outputItem represents an element in the `output` array
type outputItem struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`           // "message", "reasoning", ...
	Role    string          `json:"role,omitempty"` // "assistant"
	Status  string          `json:"status,omitempty"`
	Content []contentOutput `json:"content,omitempty"`
}

type contentOutput struct {
	Type    string          `json:"type"` // "output_text", "refusal"
	Text    *string         `json:"text,omitempty"`
	Refusal string          `json:"refusal,omitempty"`
	Parsed  json.RawMessage `json:"parsed,omitempty"`
}

type usageDetails struct {
	InputTokens        int `json:"input_tokens"`
	OutputTokens       int `json:"output_tokens"`
	TotalTokens        int `json:"total_tokens"`
	InputTokensDetails *struct {
		CachedTokens int `json:"cached_tokens"`
	} `json:"input_tokens_details,omitempty"`
	OutputTokensDetails *struct {
		ReasoningTokens int `json:"reasoning_tokens"`
	} `json:"output_tokens_details,omitempty"`
}

/*
	CONVERSION FUNCTIONS
*/

func inputFromMessages(messages []ai.Message) []inputItem {
	input := make([]inputItem, 0, len(messages))
	for _, msg := range messages {
		input = append(input, inputItem{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}
	return input
}

// requestFromCreate converts ai.CreateRequest into the Responses API request format
func requestFromCreate(request ai.CreateRequest) responseCreateRequest {
	return responseCreateRequest{
		Model: request.Model,
		Input: inputFromMessages(request.Messages),
	}
}

// requestFromParse converts ai.ParseRequest into a Responses API request with
// a json_schema text format.
func requestFromParse(request ai.ParseRequest) (responseCreateRequest, error) {
	format := request.Format
	if format.IsPlainText() {
		return responseCreateRequest{}, fmt.Errorf("openai: parse requires a structured response format")
	}

	name := format.Name()
	if name == "" {
		name = "response"
	}
	strict := format.Strict()

	return responseCreateRequest{
		Model: request.Model,
		Input: inputFromMessages(request.Messages),
		Text: &textConfig{
			Format: &textFormat{
				Type:   "json_schema",
				Name:   name,
				Schema: format.Schema(),
				Strict: &strict,
			},
		},
	}, nil
}

// responseToGeneric converts the wire response into an ai.Response. The
// aggregated output field wins over the item list when both are present.
// With parsed set, output_text parts are decoded as JSON into Parsed.
func responseToGeneric(resp responseCreateResponse, parsed bool) (*ai.Response, error) {
	// a cut-off JSON document must not be repaired into a complete-looking one
	if parsed && resp.Status == statusIncomplete {
		incomplete := &IncompleteError{ResponseID: resp.ID}
		if resp.IncompleteDetails != nil {
			incomplete.Reason = resp.IncompleteDetails.Reason
		}
		return nil, incomplete
	}

	result := &ai.Response{
		ID:     resp.ID,
		Model:  resp.Model,
		Status: resp.Status,
		Usage:  usageToGeneric(resp.Usage),
	}

	switch {
	case !parsed && resp.OutputText != nil:
		result.Output = ai.Convenience{Text: *resp.OutputText}
		return result, nil
	case parsed && !isNullJSON(resp.OutputParsed):
		if !isJSONObject(resp.OutputParsed) {
			return nil, errNotAnObject
		}
		result.Output = ai.Convenience{Parsed: resp.OutputParsed}
		return result, nil
	}

	items := make(ai.Items, 0, len(resp.Output))
	for _, output := range resp.Output {
		item := ai.OutputItem{
			Type: output.Type,
			Role: ai.MessageRole(output.Role),
		}
		for _, content := range output.Content {
			part := ai.ContentPart{
				Type:    content.Type,
				Text:    content.Text,
				Refusal: content.Refusal,
			}
			if parsed {
				decoded, err := parsedFromContent(content)
				if err != nil {
					return nil, err
				}
				part.Parsed = decoded
			}
			item.Content = append(item.Content, part)
		}
		items = append(items, item)
	}
	result.Output = items

	return result, nil
}

// parsedFromContent returns the decoded JSON carried by an output part. An
// explicit "parsed" field is used as-is; otherwise output_text is decoded,
// repairing malformed JSON when possible. Refusals carry no parsed value.
// Anything that does not decode to a JSON object is an error.
func parsedFromContent(content contentOutput) (json.RawMessage, error) {
	if !isNullJSON(content.Parsed) {
		if !isJSONObject(content.Parsed) {
			return nil, errNotAnObject
		}
		return content.Parsed, nil
	}
	if content.Type != ai.ContentOutputText || content.Text == nil {
		return nil, nil
	}
	raw, err := utils.ParseJSONAs[json.RawMessage](*content.Text)
	if err != nil {
		return nil, fmt.Errorf("openai: decoding structured output: %w", err)
	}
	if !isJSONObject(raw) {
		return nil, fmt.Errorf("%w: %s", errNotAnObject, utils.TruncateString(*content.Text, 100))
	}
	return raw, nil
}

// isJSONObject reports whether raw holds a JSON object. Strict schemas always
// have an object root.
func isJSONObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func usageToGeneric(usage *usageDetails) *ai.Usage {
	if usage == nil {
		return nil
	}
	result := &ai.Usage{
		InputTokens:  usage.InputTokens,
		OutputTokens: usage.OutputTokens,
		TotalTokens:  usage.TotalTokens,
	}
	if usage.InputTokensDetails != nil {
		result.CachedTokens = usage.InputTokensDetails.CachedTokens
	}
	if usage.OutputTokensDetails != nil {
		result.ReasoningTokens = usage.OutputTokensDetails.ReasoningTokens
	}
	return result
}

func isNullJSON(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
