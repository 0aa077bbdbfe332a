// Package mcp implements the Model Context Protocol server for external tool access.
//
// # Overview
//
// MCP (Model Context Protocol) is a standard for AI tool integration. This package
// provides an MCP-compatible HTTP server that exposes the gateway's registered
// capabilities to external AI clients (like Claude Desktop, other LLMs, or custom
// applications). Every capability in the registry appears as an MCP tool; calls
// are routed through the dispatcher so timeout handling, provider fallback, and
// observation happen identically regardless of transport.
//
// # Protocol
//
// The server implements the MCP Streamable HTTP transport (2025-11-25), using
// JSON-RPC 2.0 over HTTP POST:
//
//   - POST /mcp - JSON-RPC requests (initialize, tools/list, tools/call)
//   - DELETE /mcp - session termination
//
// Server-initiated SSE streams are not supported; GET /mcp returns 405.
//
// A plain HTTP endpoint is also exposed for non-MCP callers:
//
//   - POST /tools/{name} - dispatch the body to a capability, returns the
//     normalized result envelope as JSON
//
// # Sessions
//
// The initialize handshake creates a session and returns its ID in the
// Mcp-Session-Id response header. Subsequent requests must carry the header.
// Sessions are in-memory and bound to the credentials used at initialize, so
// only the creator can DELETE them.
//
// # Authentication and Scopes
//
// Three auth forms are accepted, in priority order:
//
//   - token in the URL path: /mcp/<token>
//   - token query parameter: /mcp?token=<token>
//   - Authorization: Bearer <jwt> header, verified against the JWT secret
//
// Opaque tokens map to category scopes via the TokenStore. A session's scopes
// filter tools/list and gate tools/call by capability category; a session with
// no scopes sees everything.
//
// # Tool Execution
//
// tools/call builds a dispatch request from the tool name and arguments. The
// dispatch result is always reported as an MCP tool result: failures set
// isError and carry the error kind and message as text, so MCP clients never
// see JSON-RPC errors for capability-level failures.
package mcp
