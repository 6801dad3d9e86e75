package client

import (
	"context"
	"reflect"
	"strings"
	"unicode"

	"github.com/leofalp/oaiclient/internal/jsonschema"
	"github.com/leofalp/oaiclient/providers/ai"
)

// Structured derives a strict response format from T. The schema name is the
// snake_case type name ("response" for unnamed types).
//
// Example usage:
//
//	type Summary struct {
//	    Title     string   `json:"title"`
//	    KeyPoints []string `json:"key_points" jsonschema:"description=Main points of the text"`
//	}
//
//	format, err := client.Structured[Summary]()
//	c, err := client.FromTransport(transport, model, client.WithResponseFormat(format))
func Structured[T any]() (ai.ResponseFormat, error) {
	schema, err := jsonschema.GenerateJSONSchema[T]()
	if err != nil {
		return ai.ResponseFormat{}, err
	}
	return ai.Structured(schemaName(reflect.TypeOf((*T)(nil)).Elem()), schema), nil
}

// Request sends prompt with the response format of T, whatever the client's
// current format, and decodes the result. The client's configuration is not
// modified.
func Request[T any](ctx context.Context, c *Client, prompt string) (T, error) {
	var zero T

	format, err := Structured[T]()
	if err != nil {
		return zero, err
	}

	result, err := c.send(ctx, Call{
		Model:    c.model,
		Messages: buildMessages(c.systemInstruction, prompt),
		Format:   format,
	})
	if err != nil {
		return zero, err
	}
	return Decode[T](result)
}

func schemaName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	name := t.Name()
	if name == "" {
		return "response"
	}
	// generic instantiations: Page[pkg.Item] -> Page
	if i := strings.IndexByte(name, '['); i > 0 {
		name = name[:i]
	}

	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
