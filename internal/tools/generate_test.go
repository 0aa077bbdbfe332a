// ABOUTME: Tests for the generate_code tool and its auto-selection heuristic.
// ABOUTME: Uses in-memory providers registered on a real selector.

package tools

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/beaconlabs/beacon-gateway/internal/capability"
	"github.com/beaconlabs/beacon-gateway/internal/provider"
)

// echoProvider is a minimal in-memory Provider for tool tests.
type echoProvider struct {
	name   string
	models []string
}

func (e *echoProvider) Name() string              { return e.name }
func (e *echoProvider) SupportedModels() []string { return e.models }

func (e *echoProvider) Predict(_ context.Context, input string, opts provider.PredictOptions) (*provider.Prediction, error) {
	model := opts.Model
	if model == "" {
		model = e.models[0]
	}
	return &provider.Prediction{Model: model, Content: "from " + e.name + ": " + input}, nil
}

func buildGenerateTool(t *testing.T, sel *provider.Selector) capability.Invoker {
	t.Helper()
	_, impl, err := GenerateSource(sel, slog.Default()).Build()
	if err != nil {
		t.Fatalf("building generate_code: %v", err)
	}
	return impl
}

func newTwoProviderSelector(t *testing.T) *provider.Selector {
	t.Helper()
	sel := provider.NewSelector("anthropic", slog.Default())
	for _, p := range []*echoProvider{
		{name: "anthropic", models: []string{"claude-x"}},
		{name: "openai", models: []string{"gpt-x"}},
	} {
		if err := sel.Register(p); err != nil {
			t.Fatalf("registering %s: %v", p.name, err)
		}
	}
	return sel
}

func TestGenerateCode(t *testing.T) {
	t.Run("uses the named provider", func(t *testing.T) {
		impl := buildGenerateTool(t, newTwoProviderSelector(t))

		payload, _ := json.Marshal(map[string]string{"prompt": "write a parser", "provider": "openai"})
		out, err := impl.Invoke(context.Background(), "", payload)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var result generateOutput
		if err := json.Unmarshal(out, &result); err != nil {
			t.Fatalf("decoding output: %v", err)
		}
		if result.Provider != "openai" {
			t.Errorf("expected provider 'openai', got %q", result.Provider)
		}
	})

	t.Run("auto prefers anthropic for analysis prompts", func(t *testing.T) {
		impl := buildGenerateTool(t, newTwoProviderSelector(t))

		payload, _ := json.Marshal(map[string]string{"prompt": "explain this function", "provider": "auto"})
		out, err := impl.Invoke(context.Background(), "", payload)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var result generateOutput
		if err := json.Unmarshal(out, &result); err != nil {
			t.Fatalf("decoding output: %v", err)
		}
		if result.Provider != "anthropic" {
			t.Errorf("expected provider 'anthropic', got %q", result.Provider)
		}
	})

	t.Run("auto defaults to openai for generation prompts", func(t *testing.T) {
		impl := buildGenerateTool(t, newTwoProviderSelector(t))

		payload, _ := json.Marshal(map[string]string{"prompt": "write a web server", "provider": "auto"})
		out, err := impl.Invoke(context.Background(), "", payload)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var result generateOutput
		if err := json.Unmarshal(out, &result); err != nil {
			t.Fatalf("decoding output: %v", err)
		}
		if result.Provider != "openai" {
			t.Errorf("expected provider 'openai', got %q", result.Provider)
		}
	})

	t.Run("empty provider falls back to the default", func(t *testing.T) {
		impl := buildGenerateTool(t, newTwoProviderSelector(t))

		payload, _ := json.Marshal(map[string]string{"prompt": "hello"})
		out, err := impl.Invoke(context.Background(), "", payload)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var result generateOutput
		if err := json.Unmarshal(out, &result); err != nil {
			t.Fatalf("decoding output: %v", err)
		}
		if result.Provider != "anthropic" {
			t.Errorf("expected default provider 'anthropic', got %q", result.Provider)
		}
	})

	t.Run("requires a prompt", func(t *testing.T) {
		impl := buildGenerateTool(t, newTwoProviderSelector(t))

		if _, err := impl.Invoke(context.Background(), "", json.RawMessage(`{}`)); err == nil {
			t.Error("expected error for missing prompt")
		}
	})

	t.Run("build fails with no providers", func(t *testing.T) {
		sel := provider.NewSelector("none", slog.Default())
		if _, _, err := GenerateSource(sel, slog.Default()).Build(); err == nil {
			t.Error("expected build error with empty selector")
		}
	})
}
