// ABOUTME: Core capability types: descriptors, categories, and the invocation contract.
// ABOUTME: Everything the gateway can execute is registered as a capability.

package capability

import (
	"context"
	"encoding/json"
)

// Category classifies a capability for listing and token scoping.
type Category string

// Known capability categories.
const (
	CategoryAIProvider   Category = "ai-provider"
	CategoryWeb          Category = "web"
	CategoryCodeAnalysis Category = "code-analysis"
	CategoryWorkflow     Category = "workflow"
	CategoryOther        Category = "other"
)

// Descriptor identifies one invocable unit. Created at load time and
// immutable afterward.
type Descriptor struct {
	// Name is the unique key the capability is registered under.
	Name string
	// Category groups the capability for listing and scope checks.
	Category Category
	// Description is shown to MCP clients in tools/list.
	Description string
	// InputSchema is the JSON schema for the capability's payload.
	InputSchema string
	// SupportedOperations lists sub-behaviors the capability accepts,
	// e.g. model names for a provider. May be empty.
	SupportedOperations []string
}

// Invoker is the uniform invocation contract every capability implements.
type Invoker interface {
	// Invoke executes one operation with an opaque JSON payload and
	// returns an opaque JSON result.
	Invoke(ctx context.Context, operation string, payload json.RawMessage) (json.RawMessage, error)
}

// InvokerFunc adapts a plain function to the Invoker interface.
type InvokerFunc func(ctx context.Context, operation string, payload json.RawMessage) (json.RawMessage, error)

// Invoke calls f.
func (f InvokerFunc) Invoke(ctx context.Context, operation string, payload json.RawMessage) (json.RawMessage, error) {
	return f(ctx, operation, payload)
}
