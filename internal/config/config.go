package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/leofalp/oaiclient/core/cost"
)

// Keys double as environment variable names once upper-cased.
const (
	KeyOpenAIAPIKey  = "openai_api_key"
	KeyOpenAIBaseURL = "openai_api_base_url"
	KeyOpenAIModel   = "openai_model"

	// Optional prices in USD per million tokens, used for cost estimates.
	KeyOpenAIInputCost       = "openai_input_cost_per_million"
	KeyOpenAIOutputCost      = "openai_output_cost_per_million"
	KeyOpenAICachedInputCost = "openai_cached_input_cost_per_million"

	KeyAzureEndpoint     = "azure_openai_endpoint"
	KeyAzureAPIVersion   = "azure_openai_api_version"
	KeyAzureTenantID     = "azure_tenant_id"
	KeyAzureClientID     = "azure_client_id"
	KeyAzureClientSecret = "azure_client_secret"

	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-5-nano-2025-08-07"
)

// Config holds the settings needed to build a client.
type Config struct {
	OpenAI OpenAIConfig
	Azure  AzureConfig
}

type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string

	// Pricing is zero unless prices are configured.
	Pricing cost.ModelCost
}

// AzureConfig is used by the managed-credential construction path.
// ClientSecret selects client credentials; without it managed identity is used.
type AzureConfig struct {
	Endpoint     string
	APIVersion   string
	TenantID     string
	ClientID     string
	ClientSecret string
}

// ConfigurationError reports a required setting that is missing or invalid.
type ConfigurationError struct {
	Key    string // environment variable name
	Reason string
}

func (e *ConfigurationError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "is not set"
	}
	return fmt.Sprintf("configuration: %s %s", e.Key, reason)
}

// Missing returns a ConfigurationError for an unset key.
func Missing(key string) *ConfigurationError {
	return &ConfigurationError{Key: strings.ToUpper(key)}
}

type loader struct {
	configName  string
	configPaths []string
	envFiles    []string
}

// Option customises where Load looks for settings.
type Option func(*loader)

// WithConfigPaths replaces the directories searched for oaiclient.yaml.
func WithConfigPaths(paths ...string) Option {
	return func(l *loader) {
		l.configPaths = paths
	}
}

// WithEnvFiles replaces the dotenv files loaded before reading the environment.
func WithEnvFiles(files ...string) Option {
	return func(l *loader) {
		l.envFiles = files
	}
}

// Load loads configuration using Viper.
// Sources, highest precedence first: process environment (after .env files
// are merged into it without overriding existing variables), oaiclient.yaml
// searched in ., ./config, then defaults. Missing files are not an error.
func Load(opts ...Option) (*Config, error) {
	l := &loader{
		configName:  "oaiclient",
		configPaths: []string{".", "./config"},
		envFiles:    []string{".env"},
	}
	for _, opt := range opts {
		opt(l)
	}

	for _, file := range l.envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error loading %s: %w", file, err)
		}
	}

	v := viper.New()
	v.SetConfigName(l.configName)
	v.SetConfigType("yaml")
	for _, path := range l.configPaths {
		v.AddConfigPath(path)
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	cfg.OpenAI.APIKey = v.GetString(KeyOpenAIAPIKey)
	cfg.OpenAI.BaseURL = v.GetString(KeyOpenAIBaseURL)
	cfg.OpenAI.Model = v.GetString(KeyOpenAIModel)
	cfg.OpenAI.Pricing = cost.ModelCost{
		InputCostPerMillion:       v.GetFloat64(KeyOpenAIInputCost),
		OutputCostPerMillion:      v.GetFloat64(KeyOpenAIOutputCost),
		CachedInputCostPerMillion: v.GetFloat64(KeyOpenAICachedInputCost),
	}

	cfg.Azure.Endpoint = strings.TrimRight(v.GetString(KeyAzureEndpoint), "/")
	cfg.Azure.APIVersion = v.GetString(KeyAzureAPIVersion)
	cfg.Azure.TenantID = v.GetString(KeyAzureTenantID)
	cfg.Azure.ClientID = v.GetString(KeyAzureClientID)
	cfg.Azure.ClientSecret = v.GetString(KeyAzureClientSecret)

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyOpenAIBaseURL, DefaultBaseURL)
	v.SetDefault(KeyOpenAIModel, DefaultModel)
	v.SetDefault(KeyAzureAPIVersion, "2025-04-01-preview")
}

// RequireOpenAI checks the settings of the key + endpoint path.
func (c *Config) RequireOpenAI() error {
	if c.OpenAI.APIKey == "" {
		return Missing(KeyOpenAIAPIKey)
	}
	return nil
}

// RequireAzure checks the settings of the managed-credential path. A client
// secret additionally needs a tenant and a client id.
func (c *Config) RequireAzure() error {
	if c.Azure.Endpoint == "" {
		return Missing(KeyAzureEndpoint)
	}
	if c.Azure.ClientSecret != "" {
		if c.Azure.TenantID == "" {
			return &ConfigurationError{Key: strings.ToUpper(KeyAzureTenantID), Reason: "is required with AZURE_CLIENT_SECRET"}
		}
		if c.Azure.ClientID == "" {
			return &ConfigurationError{Key: strings.ToUpper(KeyAzureClientID), Reason: "is required with AZURE_CLIENT_SECRET"}
		}
	}
	return nil
}
