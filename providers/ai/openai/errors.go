package openai

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/leofalp/oaiclient/internal/utils"
)

// ErrAPIKeyMissing is returned when a request is attempted without an API key
// and without an HTTP client that authenticates on its own.
var ErrAPIKeyMissing = errors.New("openai: API key is not set")

// errNotAnObject is returned when structured output is not a JSON object,
// for instance prose that jsonrepair turned into a string.
var errNotAnObject = errors.New("openai: structured output is not a JSON object")

// IncompleteError is returned by Parse when the backend stopped before the
// structured output was complete (status "incomplete").
type IncompleteError struct {
	ResponseID string
	Reason     string // e.g. "max_output_tokens"
}

func (e *IncompleteError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "unknown reason"
	}
	return fmt.Sprintf("openai: response %s is incomplete: %s", e.ResponseID, reason)
}

// APIError is a failure reported by the backend: either a non-2xx HTTP status
// or a response whose status is "failed".
type APIError struct {
	StatusCode int    // HTTP status; 200 for a failed response body
	Type       string // e.g. "invalid_request_error"
	Code       string // e.g. "rate_limit_exceeded"
	Param      string
	Message    string
	RequestID  string // value of X-Client-Request-Id sent with the request
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "unknown error"
	}
	if e.Code != "" {
		return fmt.Sprintf("openai: status %d (%s): %s", e.StatusCode, e.Code, msg)
	}
	return fmt.Sprintf("openai: status %d: %s", e.StatusCode, msg)
}

// errorEnvelope is the JSON body OpenAI and Azure send with non-2xx statuses.
type errorEnvelope struct {
	Error *errorDetails `json:"error"`
}

type errorDetails struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    any    `json:"code"` // string on OpenAI, sometimes numeric on Azure
	Param   string `json:"param"`
}

func (d *errorDetails) code() string {
	switch c := d.Code.(type) {
	case nil:
		return ""
	case string:
		return c
	case float64:
		return fmt.Sprintf("%g", c)
	default:
		return fmt.Sprint(c)
	}
}

// apiErrorFromStatus converts an HTTP status failure into an *APIError. When
// the body is not a recognised envelope, the truncated body becomes the message.
func apiErrorFromStatus(statusErr *utils.HTTPStatusError) *APIError {
	apiErr := &APIError{
		StatusCode: statusErr.StatusCode,
		RequestID:  statusErr.RequestID,
	}

	var envelope errorEnvelope
	if err := json.Unmarshal(statusErr.Body, &envelope); err == nil && envelope.Error != nil {
		apiErr.Type = envelope.Error.Type
		apiErr.Code = envelope.Error.code()
		apiErr.Param = envelope.Error.Param
		apiErr.Message = envelope.Error.Message
		return apiErr
	}

	apiErr.Message = utils.TruncateStringDefault(string(statusErr.Body))
	return apiErr
}
