package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	DefaultEndpoint = "https://api.openai.com/v1/chat/completions"
	DefaultModel    = "gpt-3.5-turbo"
	DefaultTimeout  = 30 * time.Second

	maxResponseBytes = 1024 * 1024
)

// Completion is a single prompt sent to a text-completion provider
type Completion struct {
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// Provider turns a prompt into raw completion text
type Provider interface {
	Complete(ctx context.Context, completion Completion) (string, error)
}

// ProviderConfig configures an OpenAI-compatible chat completions endpoint
type ProviderConfig struct {
	Endpoint string
	APIKey   string
	Model    string
	Timeout  time.Duration
}

// OpenAIProvider calls an OpenAI-compatible chat completions API
type OpenAIProvider struct {
	config     ProviderConfig
	httpClient *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// NewOpenAIProvider creates a provider, filling unset fields with defaults
func NewOpenAIProvider(config ProviderConfig) *OpenAIProvider {
	if config.Endpoint == "" {
		config.Endpoint = DefaultEndpoint
	}
	if config.Model == "" {
		config.Model = DefaultModel
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}

	return &OpenAIProvider{
		config: config,
		httpClient: &http.Client{
			Timeout:   config.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// Complete sends the prompt as a single user message
func (p *OpenAIProvider) Complete(ctx context.Context, completion Completion) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       p.config.Model,
		Messages:    []chatMessage{{Role: "user", Content: completion.Prompt}},
		Temperature: completion.Temperature,
		MaxTokens:   completion.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create completion request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		if resp.StatusCode == http.StatusUnauthorized {
			return "", fmt.Errorf("provider rejected the API key (status %d)", resp.StatusCode)
		}
		return "", fmt.Errorf("provider returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var result chatResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	return result.Choices[0].Message.Content, nil
}
