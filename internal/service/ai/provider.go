package ai

//go:generate mockgen -source=provider.go -destination=mock/mock_provider.go -package=mock

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// Provider defines the interface for chat-completion providers.
type Provider interface {
	// Name returns the provider name.
	Name() string
	// Model returns the model identifier every request is sent to.
	Model() string
	// Complete sends a single user message and returns the generated text untrimmed.
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// CompletionRequest is one single-turn completion.
type CompletionRequest struct {
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// Config holds the configuration for an AI provider.
type Config struct {
	Provider string // compatible, openai, anthropic, gemini
	APIKey   string
	BaseURL  string // required for compatible, optional otherwise
	Model    string
}

// ProviderType constants
const (
	ProviderCompatible = "compatible"
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderGemini     = "gemini"
)

var (
	ErrInvalidProvider = errors.New("invalid provider")
	ErrMissingAPIKey   = errors.New("API key is required")
	ErrMissingBaseURL  = errors.New("base URL is required for compatible provider")
	ErrMissingModel    = errors.New("model is required")
	ErrEmptyResponse   = errors.New("provider returned an empty response")
)

// NewProvider creates a new AI provider based on the config. httpClient may be
// nil, in which case each SDK uses its default client.
func NewProvider(cfg Config, httpClient *http.Client) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Model == "" {
		return nil, ErrMissingModel
	}

	switch strings.ToLower(cfg.Provider) {
	case ProviderCompatible:
		if cfg.BaseURL == "" {
			return nil, ErrMissingBaseURL
		}
		return NewCompatibleProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, httpClient), nil
	case ProviderOpenAI:
		return NewOpenAIProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, httpClient), nil
	case ProviderAnthropic:
		return NewAnthropicProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, httpClient), nil
	case ProviderGemini:
		return NewGeminiProvider(context.Background(), cfg.APIKey, cfg.BaseURL, cfg.Model, httpClient)
	default:
		return nil, ErrInvalidProvider
	}
}
