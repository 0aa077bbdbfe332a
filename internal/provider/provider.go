// ABOUTME: Provider contract for AI model backends and shared request/response types.
// ABOUTME: Adapters for OpenAI-like, Anthropic-like, and Google-like APIs implement it.

package provider

import (
	"context"
	"errors"
	"time"
)

// Provider errors.
var (
	ErrProviderNotFound  = errors.New("provider not found")
	ErrModelNotSupported = errors.New("no provider supports model")
	ErrNoModels          = errors.New("provider supports no models")
	ErrDuplicateProvider = errors.New("provider already registered")
)

// defaultHTTPTimeout bounds a single upstream API call when the caller's
// context carries no deadline of its own.
const defaultHTTPTimeout = 120 * time.Second

// PredictOptions tune a single prediction call.
type PredictOptions struct {
	// Model selects a specific model; empty means the provider's first
	// supported model.
	Model string
	// Temperature is forwarded as-is when positive.
	Temperature float64
	// MaxTokens caps the completion length when positive.
	MaxTokens int
}

// Prediction is the normalized output of a provider call.
type Prediction struct {
	// Provider is the name of the adapter that produced the output.
	Provider string `json:"provider"`
	// Model is the concrete model that was invoked.
	Model string `json:"model"`
	// Content is the generated text.
	Content string `json:"content"`
}

// Provider is the contract every AI backend adapter implements.
// The selector never inspects adapter-specific fields.
type Provider interface {
	// Name returns the unique provider name, e.g. "openai".
	Name() string
	// SupportedModels returns the static list of models this provider
	// serves. Registration requires a non-empty list.
	SupportedModels() []string
	// Predict runs one completion call against the backend.
	Predict(ctx context.Context, input string, opts PredictOptions) (*Prediction, error)
}

// supportsModel reports whether model appears in the provider's static list.
func supportsModel(p Provider, model string) bool {
	for _, m := range p.SupportedModels() {
		if m == model {
			return true
		}
	}
	return false
}
