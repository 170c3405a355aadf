package ai

import (
	"context"
	"fmt"
	"net/http"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIProvider implements Provider for OpenAI API.
type OpenAIProvider struct {
	client openai.Client
	model  string
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(apiKey, baseURL, model string, httpClient *http.Client) *OpenAIProvider {
	opts := clientOptions(apiKey, baseURL, httpClient)
	return &OpenAIProvider{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string {
	return ProviderOpenAI
}

// Model returns the configured model.
func (p *OpenAIProvider) Model() string {
	return p.model
}

// Complete generates a response without streaming.
func (p *OpenAIProvider) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	return completeChat(ctx, p.client, p.model, req)
}

// clientOptions builds the request options shared by OpenAI and compatible
// clients. SDK retries are disabled: a failed call is reported as-is.
func clientOptions(apiKey, baseURL string, httpClient *http.Client) []option.RequestOption {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	return opts
}

func completeChat(ctx context.Context, client openai.Client, model string, req CompletionRequest) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(req.Prompt),
		},
		Temperature: openai.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	resp, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	choice := resp.Choices[0]
	// A null content usually means the token cap was spent before any text.
	if !choice.Message.JSON.Content.Valid() || choice.Message.Content == "" {
		return "", fmt.Errorf("%w (finish_reason: %s)", ErrEmptyResponse, choice.FinishReason)
	}
	return choice.Message.Content, nil
}
