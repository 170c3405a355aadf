package ai

import (
	"context"
	"net/http"

	"github.com/openai/openai-go"
)

// CompatibleProvider implements Provider for OpenAI-compatible APIs.
// The default deployment points it at Gemini's OpenAI-compatible endpoint;
// OpenRouter, Ollama and similar services work the same way.
type CompatibleProvider struct {
	client  openai.Client
	model   string
	baseURL string
}

// NewCompatibleProvider creates a new OpenAI-compatible provider.
func NewCompatibleProvider(apiKey, baseURL, model string, httpClient *http.Client) *CompatibleProvider {
	return &CompatibleProvider{
		client:  openai.NewClient(clientOptions(apiKey, baseURL, httpClient)...),
		model:   model,
		baseURL: baseURL,
	}
}

// Name returns the provider name.
func (p *CompatibleProvider) Name() string {
	return ProviderCompatible
}

// Model returns the configured model.
func (p *CompatibleProvider) Model() string {
	return p.model
}

// BaseURL returns the endpoint requests are sent to.
func (p *CompatibleProvider) BaseURL() string {
	return p.baseURL
}

// Complete generates a response without streaming.
func (p *CompatibleProvider) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	return completeChat(ctx, p.client, p.model, req)
}
