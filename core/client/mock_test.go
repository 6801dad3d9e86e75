package client

import (
	"context"
	"sync"

	"github.com/leofalp/oaiclient/providers/ai"
)

// mockTransport records requests and replays canned responses.
type mockTransport struct {
	mu sync.Mutex

	createRequests []ai.CreateRequest
	parseRequests  []ai.ParseRequest

	createResponse *ai.Response
	parseResponse  *ai.Response
	err            error
}

func (m *mockTransport) Create(_ context.Context, request ai.CreateRequest) (*ai.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createRequests = append(m.createRequests, request)
	if m.err != nil {
		return nil, m.err
	}
	return m.createResponse, nil
}

func (m *mockTransport) Parse(_ context.Context, request ai.ParseRequest) (*ai.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.parseRequests = append(m.parseRequests, request)
	if m.err != nil {
		return nil, m.err
	}
	return m.parseResponse, nil
}

func textResponse(text string) *ai.Response {
	return &ai.Response{ID: "resp_text", Status: "completed", Output: ai.Convenience{Text: text}}
}

func parsedResponse(raw string) *ai.Response {
	return &ai.Response{ID: "resp_parsed", Status: "completed", Output: ai.Convenience{Parsed: []byte(raw)}}
}

func strPtr(s string) *string { return &s }
