// Package auth provides token verification for the gateway's MCP endpoint.
//
// Two mechanisms are supported: opaque access tokens scoped to capability
// categories (managed by the MCP token store) and HS256-signed JWTs carrying
// the caller's principal in the "sub" claim, verified here.
package auth
