// Package gateway orchestrates the beacon-gateway server components.
//
// # Overview
//
// The gateway package is the central coordinator of the beacon-gateway
// server. It owns and manages all major components: the capability registry,
// the provider selector, the request dispatcher, the dispatch record store,
// and the HTTP server exposing MCP and API routes.
//
// # Startup
//
// New wires everything in order:
//
//  1. Open the SQLite record store (creating the schema on first run).
//  2. Build the provider selector from the enabled provider sections.
//  3. Load the capability registry from the static source table: one
//     capability per registered provider plus the builtin tools. A source
//     that fails to build is skipped with a warning; an empty registry
//     fails startup.
//  4. Create the dispatcher with the store recorder (and, when enabled,
//     the Prometheus metrics collector) as observers.
//  5. Assemble the HTTP mux: health, API, metrics, and MCP routes.
//
// # HTTP API
//
//   - GET /health - liveness
//   - GET /health/ready - readiness (capability count)
//   - GET /api/capabilities - registered capabilities, ?category= filter
//   - GET /api/records - recent dispatch records, ?limit= cap
//   - GET /api/stats/summary - aggregate dispatch statistics
//   - POST /tools/{name} - direct capability dispatch
//   - POST /mcp - MCP Streamable HTTP endpoint
//
// # Lifecycle
//
// Run blocks until the context is canceled or the server fails, then
// performs a graceful shutdown with a 5 second budget: the HTTP server
// drains in-flight requests and the store is closed.
package gateway
