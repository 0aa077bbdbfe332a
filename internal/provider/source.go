// ABOUTME: Bridges registered providers into the capability registry.
// ABOUTME: Each provider becomes an ai-provider capability routed via the selector.

package provider

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/beaconlabs/beacon-gateway/internal/capability"
)

// predictInput is the capability payload for a provider invocation.
type predictInput struct {
	Input       string  `json:"input"`
	Model       string  `json:"model,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
}

// predictSchema describes the provider capability payload.
const predictSchema = `{"type":"object","properties":{"input":{"type":"string"},"model":{"type":"string"},"temperature":{"type":"number"},"max_tokens":{"type":"integer"}},"required":["input"]}`

// CapabilitySource wraps one registered provider as a capability source.
// The capability name is the provider name; its supported operations are the
// provider's models. Invocations route through the selector so fallback and
// result metadata stay consistent with direct Predict calls.
func CapabilitySource(sel *Selector, name string) capability.Source {
	return capability.Source{
		Name: name,
		Build: func() (capability.Descriptor, capability.Invoker, error) {
			p, err := sel.GetProvider(name)
			if err != nil {
				return capability.Descriptor{}, nil, err
			}

			desc := capability.Descriptor{
				Name:                p.Name(),
				Category:            capability.CategoryAIProvider,
				Description:         fmt.Sprintf("Generate text with the %s provider", p.Name()),
				InputSchema:         predictSchema,
				SupportedOperations: p.SupportedModels(),
			}
			return desc, &providerInvoker{sel: sel, name: p.Name()}, nil
		},
	}
}

// providerInvoker adapts selector.Predict to the capability contract.
type providerInvoker struct {
	sel  *Selector
	name string
}

// Invoke implements capability.Invoker. The operation, when set, selects the
// model; a "model" field in the payload does the same.
func (pi *providerInvoker) Invoke(ctx context.Context, operation string, payload json.RawMessage) (json.RawMessage, error) {
	var in predictInput
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &in); err != nil {
			return nil, fmt.Errorf("decoding payload: %w", err)
		}
	}
	if in.Input == "" {
		return nil, fmt.Errorf("input is required")
	}

	model := in.Model
	if operation != "" {
		model = operation
	}

	pred, err := pi.sel.Predict(ctx, pi.name, in.Input, PredictOptions{
		Model:       model,
		Temperature: in.Temperature,
		MaxTokens:   in.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	out, err := json.Marshal(pred)
	if err != nil {
		return nil, fmt.Errorf("encoding prediction: %w", err)
	}
	return out, nil
}
