package client

import (
	"encoding/json"
	"errors"

	"github.com/leofalp/oaiclient/core/cost"
	"github.com/leofalp/oaiclient/internal/utils"
	"github.com/leofalp/oaiclient/providers/ai"
)

// ErrNotStructured is returned when decoding a plain-text result.
var ErrNotStructured = errors.New("client: result is plain text")

// Result holds either text or a structured JSON value.
type Result struct {
	text       string
	parsed     json.RawMessage
	structured bool
	cost       *cost.Breakdown

	// Response is the transport response the result was extracted from.
	Response *ai.Response
}

// Text returns the text of a plain-text result, or "" for a structured one.
func (r *Result) Text() string {
	return r.text
}

// Parsed returns the JSON of a structured result, or nil for a plain-text one.
func (r *Result) Parsed() json.RawMessage {
	return r.parsed
}

func (r *Result) IsStructured() bool {
	return r.structured
}

// Cost returns the estimated cost of the request, or nil when the client has
// no pricing or the response reported no usage.
func (r *Result) Cost() *cost.Breakdown {
	return r.cost
}

// Decode unmarshals a structured result into v.
func (r *Result) Decode(v any) error {
	if !r.structured {
		return ErrNotStructured
	}
	return json.Unmarshal(r.parsed, v)
}

// String returns the text, or the JSON of a structured result.
func (r *Result) String() string {
	if r.structured {
		return string(r.parsed)
	}
	return r.text
}

// Decode returns the structured result as a T.
//
//	summary, err := client.Decode[Summary](result)
func Decode[T any](r *Result) (T, error) {
	if r == nil || !r.structured {
		var zero T
		return zero, ErrNotStructured
	}
	return utils.ParseJSONAs[T](string(r.parsed))
}

// NewTextResult builds a plain-text result. Middlewares that short-circuit
// the chain use it to produce their own results.
func NewTextResult(text string, response *ai.Response) *Result {
	return &Result{text: text, Response: response}
}

// NewStructuredResult builds a structured result from its JSON.
func NewStructuredResult(parsed json.RawMessage, response *ai.Response) *Result {
	return &Result{parsed: parsed, structured: true, Response: response}
}
