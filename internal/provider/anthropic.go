// ABOUTME: Anthropic-compatible messages API adapter.
// ABOUTME: Thin HTTP caller; the upstream API is treated as an opaque service.

package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
)

const (
	anthropicDefaultBaseURL = "https://api.anthropic.com"
	anthropicVersion        = "2023-06-01"

	// anthropicDefaultMaxTokens applies when the caller sets no limit;
	// the messages API requires an explicit max_tokens.
	anthropicDefaultMaxTokens = 4096
)

// AnthropicProvider calls an Anthropic-compatible messages API.
type AnthropicProvider struct {
	apiKey  string
	baseURL string
	models  []string
	client  *http.Client
	logger  *slog.Logger
}

// NewAnthropicProvider creates the adapter. Returns an error if no API key
// or no models are configured.
func NewAnthropicProvider(cfg Config) (*AnthropicProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic: api key is required")
	}
	if len(cfg.Models) == 0 {
		return nil, fmt.Errorf("anthropic: %w", ErrNoModels)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = anthropicDefaultBaseURL
	}

	return &AnthropicProvider{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		models:  cfg.Models,
		client:  cfg.httpClient(),
		logger:  cfg.logger().With("provider", "anthropic"),
	}, nil
}

// Name implements Provider.
func (p *AnthropicProvider) Name() string { return "anthropic" }

// SupportedModels implements Provider.
func (p *AnthropicProvider) SupportedModels() []string {
	models := make([]string, len(p.models))
	copy(models, p.models)
	return models
}

// messagesRequest is the Anthropic messages request body.
type messagesRequest struct {
	Model       string        `json:"model"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature,omitempty"`
	Messages    []chatMessage `json:"messages"`
}

// messagesResponse is the subset of the response we consume.
type messagesResponse struct {
	Model   string `json:"model"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *apiError `json:"error,omitempty"`
}

// Predict implements Provider by calling POST /v1/messages.
func (p *AnthropicProvider) Predict(ctx context.Context, input string, opts PredictOptions) (*Prediction, error) {
	model := opts.Model
	if model == "" {
		model = p.models[0]
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = anthropicDefaultMaxTokens
	}

	body := messagesRequest{
		Model:       model,
		MaxTokens:   maxTokens,
		Temperature: opts.Temperature,
		Messages:    []chatMessage{{Role: "user", Content: input}},
	}

	respBody, err := postJSON(ctx, p.client, p.baseURL+"/v1/messages", body, func(req *http.Request) {
		req.Header.Set("X-Api-Key", p.apiKey)
		req.Header.Set("Anthropic-Version", anthropicVersion)
	})
	if err != nil {
		return nil, err
	}

	var resp messagesResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("api error: %s", resp.Error.Message)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return nil, fmt.Errorf("empty completion")
	}

	p.logger.Debug("completion received", "model", model)

	return &Prediction{
		Provider: p.Name(),
		Model:    model,
		Content:  text.String(),
	}, nil
}
