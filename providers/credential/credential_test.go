package credential

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"golang.org/x/oauth2"

	"github.com/leofalp/oaiclient/internal/config"
	"github.com/leofalp/oaiclient/providers/ai"
	"github.com/leofalp/oaiclient/providers/ai/openai"
)

// fakeCredential is an azcore.TokenCredential returning a canned token.
type fakeCredential struct {
	token  azcore.AccessToken
	err    error
	scopes []string
}

func (f *fakeCredential) GetToken(_ context.Context, options policy.TokenRequestOptions) (azcore.AccessToken, error) {
	f.scopes = options.Scopes
	return f.token, f.err
}

func TestTokenSourceFromCredential(t *testing.T) {
	expiresOn := time.Now().Add(time.Hour).Truncate(time.Second)
	credential := &fakeCredential{token: azcore.AccessToken{Token: "mi-token", ExpiresOn: expiresOn}}

	token, err := TokenSourceFromCredential(context.Background(), credential, CognitiveServicesScope).Token()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token.AccessToken != "mi-token" || token.Type() != "Bearer" {
		t.Errorf("unexpected token: %+v", token)
	}
	if !token.Expiry.Equal(expiresOn) {
		t.Errorf("expected expiry %v, got %v", expiresOn, token.Expiry)
	}
	if len(credential.scopes) != 1 || credential.scopes[0] != "https://cognitiveservices.azure.com/.default" {
		t.Errorf("unexpected scopes: %v", credential.scopes)
	}
}

func TestTokenSourceFromCredential_Failures(t *testing.T) {
	sentinel := errors.New("no identity available")
	if _, err := TokenSourceFromCredential(context.Background(), &fakeCredential{err: sentinel}).Token(); !errors.Is(err, sentinel) {
		t.Errorf("expected the credential error, got %v", err)
	}

	_, err := TokenSourceFromCredential(context.Background(), &fakeCredential{}).Token()
	if err == nil || !strings.Contains(err.Error(), "empty access token") {
		t.Errorf("expected empty token error, got %v", err)
	}
}

func TestManagedIdentityTokenSource(t *testing.T) {
	source, err := ManagedIdentityTokenSource(context.Background(), "user-assigned")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := source.(*credentialSource); !ok {
		t.Errorf("expected an azidentity-backed source, got %T", source)
	}
}

func TestClientCredentialsConfig(t *testing.T) {
	cfg := ClientCredentialsConfig("", "tenant-1", "client", "secret")
	if cfg.TokenURL != "https://login.microsoftonline.com/tenant-1/oauth2/v2.0/token" {
		t.Errorf("unexpected token URL: %s", cfg.TokenURL)
	}
	if len(cfg.Scopes) != 1 || cfg.Scopes[0] != "https://cognitiveservices.azure.com/.default" {
		t.Errorf("unexpected scopes: %v", cfg.Scopes)
	}

	sovereign := ClientCredentialsConfig("https://login.microsoftonline.us/", "t", "c", "s")
	if !strings.HasPrefix(sovereign.TokenURL, "https://login.microsoftonline.us/t/") {
		t.Errorf("expected authority override, got %s", sovereign.TokenURL)
	}
}

// newTokenServer serves client credential tokens and counts requests.
func newTokenServer(t *testing.T, calls *int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		if err := r.ParseForm(); err != nil {
			t.Errorf("bad form: %v", err)
		}
		if r.Form.Get("grant_type") != "client_credentials" || r.Form.Get("client_id") != "client" || r.Form.Get("client_secret") != "secret" {
			t.Errorf("unexpected token request: %v", r.Form)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"access_token":"sp-token","token_type":"Bearer","expires_in":3600}`)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestAzureBroker_TransportAuthenticatesRequests(t *testing.T) {
	var tokenCalls int32
	tokenServer := newTokenServer(t, &tokenCalls)

	apiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/openai/responses" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("api-version") != openai.DefaultAzureAPIVersion {
			t.Errorf("unexpected api-version: %s", r.URL.RawQuery)
		}
		if r.Header.Get("Authorization") != "Bearer sp-token" {
			t.Errorf("expected bearer token, got %q", r.Header.Get("Authorization"))
		}
		if r.Header.Get("api-key") != "" {
			t.Errorf("expected no api-key header, got %q", r.Header.Get("api-key"))
		}
		_, _ = io.WriteString(w, `{"id":"resp_1","status":"completed","output_text":"hi"}`)
	}))
	defer apiServer.Close()

	broker := &AzureBroker{
		Endpoint:    apiServer.URL,
		TokenSource: ClientCredentialsTokenSource(context.Background(), tokenServer.URL, "tenant", "client", "secret"),
	}

	transport, err := broker.Transport(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 2; i++ {
		resp, err := transport.Create(context.Background(), ai.CreateRequest{
			Model:    "deployment",
			Messages: []ai.Message{{Role: ai.RoleUser, Content: "hello"}},
		})
		if err != nil {
			t.Fatalf("request %d failed: %v", i, err)
		}
		if conv, ok := resp.Output.(ai.Convenience); !ok || conv.Text != "hi" {
			t.Errorf("unexpected output: %#v", resp.Output)
		}
	}

	if got := atomic.LoadInt32(&tokenCalls); got != 1 {
		t.Errorf("expected the token to be reused, got %d token requests", got)
	}
}

func TestAzureBroker_FailsFast(t *testing.T) {
	broker := &AzureBroker{
		Endpoint:    "https://res.openai.azure.com",
		TokenSource: TokenSourceFromCredential(context.Background(), &fakeCredential{err: errors.New("identity endpoint unavailable")}),
	}

	transport, err := broker.Transport(context.Background())
	if err == nil {
		t.Fatal("expected error when no token can be acquired")
	}
	if transport != nil {
		t.Errorf("expected no transport, got %T", transport)
	}
	if !strings.Contains(err.Error(), "acquiring token") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAzureBroker_Validation(t *testing.T) {
	_, err := (&AzureBroker{}).Transport(context.Background())
	var cfgErr *config.ConfigurationError
	if !errors.As(err, &cfgErr) || cfgErr.Key != "AZURE_OPENAI_ENDPOINT" {
		t.Errorf("expected ConfigurationError for the endpoint, got %v", err)
	}

	_, err = (&AzureBroker{Endpoint: "https://x"}).Transport(context.Background())
	if err == nil {
		t.Error("expected error without a token source")
	}
}

type staticSource struct{ token string }

func (s staticSource) Token() (*oauth2.Token, error) {
	return &oauth2.Token{AccessToken: s.token, TokenType: "Bearer"}, nil
}

func TestAzureBroker_UsesBaseHTTPClient(t *testing.T) {
	var viaBase int32
	apiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Base") == "yes" {
			atomic.AddInt32(&viaBase, 1)
		}
		_, _ = io.WriteString(w, `{"output_text":"ok"}`)
	}))
	defer apiServer.Close()

	base := &http.Client{Transport: headerRoundTripper{next: http.DefaultTransport}}
	broker := &AzureBroker{Endpoint: apiServer.URL, APIVersion: "v1", TokenSource: staticSource{token: "t"}, HTTPClient: base}

	transport, err := broker.Transport(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := transport.Create(context.Background(), ai.CreateRequest{Model: "m"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if atomic.LoadInt32(&viaBase) != 1 {
		t.Error("expected the request to go through the base HTTP client")
	}
}

type headerRoundTripper struct{ next http.RoundTripper }

func (h headerRoundTripper) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.Header.Set("X-Base", "yes")
	return h.next.RoundTrip(r)
}

func TestFromConfig(t *testing.T) {
	_, err := FromConfig(context.Background(), &config.Config{})
	var cfgErr *config.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}

	managed, err := FromConfig(context.Background(), &config.Config{Azure: config.AzureConfig{Endpoint: "https://x", ClientID: "id"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := managed.TokenSource.(*credentialSource); !ok {
		t.Errorf("expected managed identity source, got %T", managed.TokenSource)
	}

	sp, err := FromConfig(context.Background(), &config.Config{Azure: config.AzureConfig{
		Endpoint: "https://x", APIVersion: "v", TenantID: "t", ClientID: "c", ClientSecret: "s",
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := sp.TokenSource.(*credentialSource); ok {
		t.Error("expected client credentials source when a secret is set")
	}
	if sp.APIVersion != "v" || sp.Endpoint != "https://x" {
		t.Errorf("unexpected broker: %+v", sp)
	}
}
