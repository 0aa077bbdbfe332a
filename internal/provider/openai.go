// ABOUTME: OpenAI-compatible chat completions adapter.
// ABOUTME: Thin HTTP caller; the upstream API is treated as an opaque service.

package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

const openaiDefaultBaseURL = "https://api.openai.com"

// Config holds the settings shared by all provider adapters.
type Config struct {
	// APIKey authenticates against the upstream API.
	APIKey string
	// BaseURL overrides the upstream endpoint, mainly for tests and
	// self-hosted compatible servers.
	BaseURL string
	// Models is the static list of supported models. The first entry is
	// used when a call does not name a model.
	Models []string
	// Logger receives per-call debug logging.
	Logger *slog.Logger
	// HTTPClient overrides the default client when set.
	HTTPClient *http.Client
}

func (c *Config) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: defaultHTTPTimeout}
}

func (c *Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// OpenAIProvider calls an OpenAI-compatible chat completions API.
type OpenAIProvider struct {
	apiKey  string
	baseURL string
	models  []string
	client  *http.Client
	logger  *slog.Logger
}

// NewOpenAIProvider creates the adapter. Returns an error if no API key or
// no models are configured, so a misconfigured provider is skipped at load
// time instead of failing at first use.
func NewOpenAIProvider(cfg Config) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: api key is required")
	}
	if len(cfg.Models) == 0 {
		return nil, fmt.Errorf("openai: %w", ErrNoModels)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = openaiDefaultBaseURL
	}

	return &OpenAIProvider{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		models:  cfg.Models,
		client:  cfg.httpClient(),
		logger:  cfg.logger().With("provider", "openai"),
	}, nil
}

// Name implements Provider.
func (p *OpenAIProvider) Name() string { return "openai" }

// SupportedModels implements Provider.
func (p *OpenAIProvider) SupportedModels() []string {
	models := make([]string, len(p.models))
	copy(models, p.models)
	return models
}

// chatRequest is the OpenAI chat completions request body.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the subset of the response we consume.
type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *apiError `json:"error,omitempty"`
}

// apiError is the error envelope shared by OpenAI-compatible APIs.
type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Predict implements Provider by calling POST /v1/chat/completions.
func (p *OpenAIProvider) Predict(ctx context.Context, input string, opts PredictOptions) (*Prediction, error) {
	model := opts.Model
	if model == "" {
		model = p.models[0]
	}

	body := chatRequest{
		Model:       model,
		Messages:    []chatMessage{{Role: "user", Content: input}},
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}

	respBody, err := postJSON(ctx, p.client, p.baseURL+"/v1/chat/completions", body, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	})
	if err != nil {
		return nil, err
	}

	var resp chatResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("api error: %s", resp.Error.Message)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty completion")
	}

	p.logger.Debug("completion received", "model", model)

	return &Prediction{
		Provider: p.Name(),
		Model:    model,
		Content:  resp.Choices[0].Message.Content,
	}, nil
}

// postJSON sends a JSON POST and returns the raw response body.
// Non-2xx responses are returned as errors with a body excerpt.
func postJSON(ctx context.Context, client *http.Client, url string, body any, decorate func(*http.Request)) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if decorate != nil {
		decorate(req)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling api: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		excerpt := string(respBody)
		if len(excerpt) > 512 {
			excerpt = excerpt[:512]
		}
		return nil, fmt.Errorf("api returned %d: %s", resp.StatusCode, excerpt)
	}
	return respBody, nil
}
