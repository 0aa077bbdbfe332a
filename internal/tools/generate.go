// ABOUTME: Provider-backed code generation tool with heuristic auto-selection.
// ABOUTME: "auto" prefers anthropic for analysis-flavored prompts, openai otherwise.

package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/beaconlabs/beacon-gateway/internal/capability"
	"github.com/beaconlabs/beacon-gateway/internal/provider"
)

// analysisKeywords steer "auto" selection toward the anthropic provider.
var analysisKeywords = []string{"analyze", "explain", "understand", "review"}

// generateHandlers implements the generate_code tool.
type generateHandlers struct {
	selector *provider.Selector
	logger   *slog.Logger
}

// GenerateSource returns the generate_code capability source. It exercises
// the provider selector, so a gateway with no providers configured skips it
// at load time.
func GenerateSource(sel *provider.Selector, logger *slog.Logger) capability.Source {
	return capability.Source{
		Name: "generate_code",
		Build: func() (capability.Descriptor, capability.Invoker, error) {
			if len(sel.Names()) == 0 {
				return capability.Descriptor{}, nil, fmt.Errorf("no providers registered")
			}
			h := &generateHandlers{
				selector: sel,
				logger:   logger.With("tool", "generate_code"),
			}
			desc := capability.Descriptor{
				Name:        "generate_code",
				Category:    capability.CategoryWorkflow,
				Description: "Generate code from a prompt using a configured AI provider",
				InputSchema: `{"type":"object","properties":{"prompt":{"type":"string"},"provider":{"type":"string"},"model":{"type":"string"},"temperature":{"type":"number"}},"required":["prompt"]}`,
			}
			return desc, capability.InvokerFunc(h.Generate), nil
		},
	}
}

type generateInput struct {
	Prompt      string  `json:"prompt"`
	Provider    string  `json:"provider,omitempty"`
	Model       string  `json:"model,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

type generateOutput struct {
	Provider      string `json:"provider"`
	Model         string `json:"model"`
	GeneratedCode string `json:"generated_code"`
}

// Generate resolves the provider (honoring "auto") and runs the prompt.
func (h *generateHandlers) Generate(ctx context.Context, _ string, payload json.RawMessage) (json.RawMessage, error) {
	var in generateInput
	if err := json.Unmarshal(payload, &in); err != nil {
		return nil, fmt.Errorf("decoding payload: %w", err)
	}
	if in.Prompt == "" {
		return nil, fmt.Errorf("prompt is required")
	}

	name := in.Provider
	if name == "auto" {
		name = h.selectForPrompt(in.Prompt)
		h.logger.Debug("auto-selected provider", "provider", name)
	}

	pred, err := h.selector.Predict(ctx, name, in.Prompt, provider.PredictOptions{
		Model:       in.Model,
		Temperature: in.Temperature,
	})
	if err != nil {
		return nil, err
	}

	return json.Marshal(generateOutput{
		Provider:      pred.Provider,
		Model:         pred.Model,
		GeneratedCode: pred.Content,
	})
}

// selectForPrompt picks a provider name from the prompt's character.
// Analysis-flavored prompts prefer anthropic; everything else gets openai.
// Unregistered picks fall through to the selector's default.
func (h *generateHandlers) selectForPrompt(prompt string) string {
	lower := strings.ToLower(prompt)
	for _, kw := range analysisKeywords {
		if strings.Contains(lower, kw) {
			return "anthropic"
		}
	}
	return "openai"
}
