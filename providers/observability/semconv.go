package observability

// Semantic conventions for observability attributes, span names and events.

// --- Span names ---

const (
	// SpanRequest covers one Client.Request call, transport round trip included
	SpanRequest = "oaiclient.request"
)

// --- Metric names ---

const (
	// MetricRequestCount counts Client.Request calls, tagged with AttrStatus
	MetricRequestCount = "oaiclient.request.count"

	// MetricRequestDuration records Client.Request latency in milliseconds
	MetricRequestDuration = "oaiclient.request.duration_ms"
)

// --- LLM attributes ---

const (
	// AttrLLMProvider is the backend flavour (e.g., "openai", "azure")
	AttrLLMProvider = "llm.provider"

	// AttrLLMEndpoint is the API base URL
	AttrLLMEndpoint = "llm.endpoint"

	// AttrLLMModel is the model identifier (e.g., "gpt-5-nano")
	AttrLLMModel = "llm.model"

	// AttrLLMResponseID is the response identifier assigned by the backend
	AttrLLMResponseID = "llm.response.id"

	// AttrLLMResponseFormat is "text" or "json_schema"
	AttrLLMResponseFormat = "llm.response_format"

	// AttrLLMSchemaName is the structured-output schema name
	AttrLLMSchemaName = "llm.schema.name"

	// AttrLLMTokensTotal is the total number of tokens
	AttrLLMTokensTotal = "llm.tokens.total" // #nosec G101 -- Not a credential, token refers to LLM tokens

	// AttrLLMCostTotal is the estimated cost in USD
	AttrLLMCostTotal = "llm.cost.total"
)

// --- LLM events ---

const (
	EventLLMRequestStart = "llm.request.start"
	EventLLMRequestEnd   = "llm.request.end"
	EventTokensReceived  = "llm.tokens.received"
)

// --- Request attributes ---

const (
	// AttrRequestMessagesCount is the number of messages in the request
	AttrRequestMessagesCount = "request.messages_count"

	// AttrRequestID is the client generated request id
	AttrRequestID = "request.id"
)

// --- HTTP attributes ---

const (
	AttrHTTPMethod           = "http.method"
	AttrHTTPStatusCode       = "http.status_code"
	AttrHTTPURL              = "http.url"
	AttrHTTPRequestBodySize  = "http.request.body.size"
	AttrHTTPResponseBodySize = "http.response.body.size"
	AttrHTTPDuration         = "http.request.duration"
)

// --- HTTP events ---

const (
	EventHTTPRequestPrepared  = "http.request.prepared"
	EventHTTPRequestError     = "http.request.error"
	EventHTTPResponseReceived = "http.response.received"
)

// --- Status ---

const (
	AttrStatus            = "status"
	AttrStatusDescription = "status.description"
	AttrError             = "error"
)
