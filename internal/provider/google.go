// ABOUTME: Google-compatible generateContent API adapter.
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

const googleDefaultBaseURL = "https://generativelanguage.googleapis.com"

// GoogleProvider calls a Google-compatible generateContent API.
type GoogleProvider struct {
	apiKey  string
	baseURL string
	models  []string
	client  *http.Client
	logger  *slog.Logger
}

// NewGoogleProvider creates the adapter. Returns an error if no API key or
// no models are configured.
func NewGoogleProvider(cfg Config) (*GoogleProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("google: api key is required")
	}
	if len(cfg.Models) == 0 {
		return nil, fmt.Errorf("google: %w", ErrNoModels)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = googleDefaultBaseURL
	}

	return &GoogleProvider{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		models:  cfg.Models,
		client:  cfg.httpClient(),
		logger:  cfg.logger().With("provider", "google"),
	}, nil
}

// Name implements Provider.
func (p *GoogleProvider) Name() string { return "google" }

// SupportedModels implements Provider.
func (p *GoogleProvider) SupportedModels() []string {
	models := make([]string, len(p.models))
	copy(models, p.models)
	return models
}

// generateRequest is the generateContent request body.
type generateRequest struct {
	Contents         []googleContent   `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type googleContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []googlePart `json:"parts"`
}

type googlePart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

// generateResponse is the subset of the response we consume.
type generateResponse struct {
	Candidates []struct {
		Content googleContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Predict implements Provider by calling POST /v1beta/models/{model}:generateContent.
func (p *GoogleProvider) Predict(ctx context.Context, input string, opts PredictOptions) (*Prediction, error) {
	model := opts.Model
	if model == "" {
		model = p.models[0]
	}

	body := generateRequest{
		Contents: []googleContent{{Role: "user", Parts: []googlePart{{Text: input}}}},
	}
	if opts.Temperature > 0 || opts.MaxTokens > 0 {
		body.GenerationConfig = &generationConfig{
			Temperature:     opts.Temperature,
			MaxOutputTokens: opts.MaxTokens,
		}
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", p.baseURL, model)
	respBody, err := postJSON(ctx, p.client, url, body, func(req *http.Request) {
		req.Header.Set("X-Goog-Api-Key", p.apiKey)
	})
	if err != nil {
		return nil, err
	}

	var resp generateResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("api error: %s", resp.Error.Message)
	}
	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("empty completion")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
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
