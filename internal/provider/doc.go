// Package provider contains the AI backend adapters and the selector that
// resolves a logical provider request to a concrete adapter.
//
// # Adapters
//
// Three adapter families are supported, all implementing the Provider
// interface: OpenAI-compatible chat completions, Anthropic-compatible
// messages, and Google-compatible generateContent. Adapters are thin HTTP
// callers; the upstream services are opaque to the gateway. Each adapter
// carries a static list of supported models from configuration.
//
// # Selection
//
// The Selector resolves by explicit name, falls back to a configured default
// when the name is empty or unknown, and can discover a provider for a
// desired model. Model discovery scans providers in registration order and
// the first match wins, so results are deterministic regardless of map
// iteration order. Predict always stamps the resolved provider name on the
// returned Prediction.
//
// Providers are also exposed as ai-provider capabilities via
// CapabilitySource, so the dispatcher can route to them by name like any
// other capability.
package provider
