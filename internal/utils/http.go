package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/leofalp/oaiclient/providers/observability"
)

// HeaderClientRequestID is the header carrying the per-request id generated by
// [DoPostSync]. OpenAI echoes it back in its logs, which makes it usable for
// support requests.
const HeaderClientRequestID = "X-Client-Request-Id"

// HTTPStatusError is returned by [DoPostSync] when the server answers with a
// non-2xx status. Body holds the raw response payload so callers can decode
// provider specific error envelopes.
type HTTPStatusError struct {
	StatusCode int
	Body       []byte
	RequestID  string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("non-2xx status %d: %s", e.StatusCode, TruncateStringDefault(string(e.Body)))
}

// DoPostSync performs a synchronous HTTP POST request with JSON body and parses the response.
// headers are copied onto the request as-is; Content-Type and the client
// request id are set when absent.
//
// Error Handling Strategy:
//   - Context errors (timeout, cancellation) are propagated through the wrapped error
//   - Non-2xx statuses return *HTTPStatusError with the raw body
//   - Response body close errors are logged but don't override primary errors
//   - JSON parsing errors include a response preview for debugging
func DoPostSync[OutputStruct any](ctx context.Context, client *http.Client, url string, headers http.Header, body any) (*http.Response, *OutputStruct, error) {
	span := observability.SpanFromContext(ctx)

	httpClient := client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, nil, fmt.Errorf("error marshaling body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, nil, fmt.Errorf("error creating request: %w", err)
	}

	for key, values := range headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	if req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := req.Header.Get(HeaderClientRequestID)
	if requestID == "" {
		requestID = uuid.NewString()
		req.Header.Set(HeaderClientRequestID, requestID)
	}

	if span != nil {
		span.AddEvent(observability.EventHTTPRequestPrepared,
			observability.String(observability.AttrHTTPMethod, http.MethodPost),
			observability.String(observability.AttrHTTPURL, url),
			observability.String(observability.AttrRequestID, requestID),
			observability.Int(observability.AttrHTTPRequestBodySize, len(jsonBody)),
		)
	}

	requestStart := time.Now()
	res, err := httpClient.Do(req)
	requestDuration := time.Since(requestStart)

	if err != nil {
		if span != nil {
			span.AddEvent(observability.EventHTTPRequestError,
				observability.Error(err),
				observability.Duration(observability.AttrHTTPDuration, requestDuration),
			)
		}
		return res, nil, fmt.Errorf("error sending request: %w", err)
	}
	defer func(Body io.ReadCloser) {
		if closeErr := Body.Close(); closeErr != nil {
			slog.Warn("failed to close response body", "error", closeErr.Error(), "url", url)
		}
	}(res.Body)

	respBody, err := io.ReadAll(res.Body)
	if err != nil {
		return res, nil, fmt.Errorf("error reading response body: %w", err)
	}

	if span != nil {
		span.AddEvent(observability.EventHTTPResponseReceived,
			observability.Int(observability.AttrHTTPStatusCode, res.StatusCode),
			observability.Int(observability.AttrHTTPResponseBodySize, len(respBody)),
			observability.Duration(observability.AttrHTTPDuration, requestDuration),
		)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return res, nil, &HTTPStatusError{
			StatusCode: res.StatusCode,
			Body:       respBody,
			RequestID:  requestID,
		}
	}

	var resStruct OutputStruct
	if err = json.Unmarshal(respBody, &resStruct); err != nil {
		return res, nil, fmt.Errorf("error unmarshaling response body (status %d): %w\nResponse preview: %s", res.StatusCode, err, TruncateString(string(respBody), 500))
	}

	return res, &resStruct, nil
}
