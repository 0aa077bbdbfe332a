// Package capability provides the registry of invocable units in the gateway.
//
// # Overview
//
// A capability is a named, invocable unit: an in-process tool (web fetch,
// code analysis) or an AI provider adapter. Capabilities are registered once
// during startup from a static source table and are immutable afterward, so
// the registry is safe for concurrent reads with no locking cost on the
// serving path.
//
// # Registration
//
// Registration rejects duplicate names rather than overwriting:
//
//	registry := capability.NewRegistry(logger)
//	err := registry.Register(desc, impl) // ErrDuplicateCapability on reuse
//
// At startup the gateway loads a table of Sources. Sources whose Build fails
// are logged and skipped; only an entirely empty registry aborts startup.
//
// # Lookup
//
// Resolve returns the implementation registered under a name. ListAll and
// ListByCategory return names in registration order, which downstream
// consumers rely on for deterministic listings.
package capability
