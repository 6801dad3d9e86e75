// Command demo runs two requests against the Responses API: a plain-text
// bedtime story and a structured summary of a short article.
//
// Settings come from the environment or a .env file. OPENAI_API_KEY is
// required unless AZURE_OPENAI_ENDPOINT is set, in which case a managed
// identity (or AZURE_CLIENT_SECRET service principal) is used instead.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/leofalp/oaiclient/core/client"
	"github.com/leofalp/oaiclient/internal/config"
	"github.com/leofalp/oaiclient/providers/credential"
	"github.com/leofalp/oaiclient/providers/observability/slogobs"
)

// Summary is the structured answer expected for the article.
type Summary struct {
	Title     string   `json:"title" jsonschema:"description=A title that suits the text"`
	KeyPoints []string `json:"key_points" jsonschema:"description=The key points of the text"`
}

const storyInstruction = "You are a helpful assistant that writes bedtime stories for children."

const summaryInstruction = "You list the key points of a text. You come up with a title that suits the text."

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observer := slogobs.New()

	fmt.Println("=== Plain text ===")
	untypedExample(ctx, cfg, observer)

	fmt.Println()
	fmt.Println("=== Structured output ===")
	typedExample(ctx, cfg, observer)
}

// newClient picks the managed-credential path when an Azure endpoint is
// configured and the key-and-endpoint path otherwise.
func newClient(ctx context.Context, cfg *config.Config, opts ...func(*client.ClientOptions)) (*client.Client, error) {
	opts = append(opts, client.WithModelCost(cfg.OpenAI.Pricing))

	if cfg.Azure.Endpoint != "" {
		broker, err := credential.FromConfig(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return client.FromManagedCredential(ctx, broker, cfg.OpenAI.Model, opts...)
	}

	if err := cfg.RequireOpenAI(); err != nil {
		return nil, err
	}
	return client.FromKeyAndEndpoint(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model, opts...)
}

func untypedExample(ctx context.Context, cfg *config.Config, observer *slogobs.Observer) {
	c, err := newClient(ctx, cfg,
		client.WithSystemInstruction(storyInstruction),
		client.WithObserver(observer),
	)
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}

	result, err := c.Request(ctx, "Write a one-sentence bedtime story about a unicorn.")
	if err != nil {
		log.Fatalf("Request failed: %v", err)
	}
	fmt.Println(result.Text())
	printCost(result)
}

func printCost(result *client.Result) {
	if estimate := result.Cost(); estimate != nil {
		fmt.Printf("(estimated cost: %s)\n", estimate)
	}
}

func typedExample(ctx context.Context, cfg *config.Config, observer *slogobs.Observer) {
	format, err := client.Structured[Summary]()
	if err != nil {
		log.Fatalf("Failed to build response format: %v", err)
	}

	c, err := newClient(ctx, cfg,
		client.WithSystemInstruction(summaryInstruction),
		client.WithResponseFormat(format),
		client.WithObserver(observer),
	)
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}

	result, err := c.Request(ctx, article)
	if err != nil {
		log.Fatalf("Request failed: %v", err)
	}

	summary, err := client.Decode[Summary](result)
	if err != nil {
		log.Fatalf("Failed to decode summary: %v", err)
	}

	fmt.Printf("Title: %s\n", summary.Title)
	for _, point := range summary.KeyPoints {
		fmt.Printf("  - %s\n", point)
	}
	printCost(result)
}
