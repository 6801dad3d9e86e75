package client

import (
	"fmt"

	"github.com/leofalp/oaiclient/internal/config"
)

// ConfigurationError reports a required setting (API key, endpoint) that is
// missing or invalid. It is returned by the factories before any request.
type ConfigurationError = config.ConfigurationError

// ExtractionError reports a response that did not carry the expected payload:
// no convenience field and no message item whose first content part holds it.
//
// Transport failures are never wrapped in an ExtractionError; they come back
// exactly as the transport returned them (for the OpenAI transport, an
// *openai.APIError or a network error).
type ExtractionError struct {
	Want   string // "text" or "parsed"
	Reason string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("client: no %s found in response: %s", e.Want, e.Reason)
}
