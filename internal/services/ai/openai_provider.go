// File: internal/services/ai/openai_provider.go
package ai

import (
	"context"
	"errors"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"github.com/iyunix/go-vendornexus/internal/domain"
)

// OpenAIProvider talks to any OpenAI-compatible chat completion endpoint.
// The client sends the bearer token and posts {model, messages, temperature}.
type OpenAIProvider struct {
	config *Config
	client *openai.Client
}

func NewOpenAIProvider(config *Config) *OpenAIProvider {
	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	if config.Timeout > 0 {
		clientConfig.HTTPClient = &http.Client{Timeout: config.Timeout}
	}

	return &OpenAIProvider{
		config: config,
		client: openai.NewClientWithConfig(clientConfig),
	}
}

func (p *OpenAIProvider) CreateChatCompletion(ctx context.Context, messages []domain.Message) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       p.config.Model,
		Messages:    toOpenAIMessages(messages),
		Temperature: p.config.Temperature,
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", classifyError("completion", p.config.Model, err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &AIError{
			Type:      ErrTypeEmpty,
			Operation: "completion",
			Model:     p.config.Model,
			Message:   "empty completion response",
		}
	}
	return resp.Choices[0].Message.Content, nil
}

// HealthCheck lists models, which exercises auth and reachability without
// spending tokens.
func (p *OpenAIProvider) HealthCheck(ctx context.Context) error {
	if _, err := p.client.ListModels(ctx); err != nil {
		return classifyError("health_check", p.config.Model, err)
	}
	return nil
}

func (p *OpenAIProvider) GetStatus(ctx context.Context) ProviderStatus {
	list, err := p.client.ListModels(ctx)
	if err != nil {
		return ProviderStatus{IsHealthy: false, Message: classifyError("status", p.config.Model, err).Error()}
	}
	models := make([]string, 0, len(list.Models))
	for _, m := range list.Models {
		models = append(models, m.ID)
	}
	return ProviderStatus{IsHealthy: true, Models: models, Message: "completion endpoint healthy"}
}

func toOpenAIMessages(messages []domain.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		out = append(out, openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}
	return out
}

// classifyError separates non-2xx answers from failures to reach the endpoint.
func classifyError(operation, model string, err error) *AIError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		e := NewUpstreamError(operation, apiErr.HTTPStatusCode, apiErr.Message, err)
		e.Model = model
		return e
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		e := NewUpstreamError(operation, reqErr.HTTPStatusCode, "non-success status from model endpoint", err)
		e.Model = model
		return e
	}
	e := NewNetworkError(operation, err)
	e.Model = model
	return e
}
