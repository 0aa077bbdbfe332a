// ABOUTME: Plain HTTP endpoint for invoking capabilities without MCP framing.
// ABOUTME: POST /tools/{name} dispatches the request body and returns the raw result.

package mcp

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/beaconlabs/beacon-gateway/internal/dispatch"
)

// handleToolHTTP handles POST /tools/{name}. The body is passed to the
// capability as-is and the normalized dispatch result is returned as JSON.
// Unlike the MCP endpoint this never fails the HTTP layer for capability
// errors: the result envelope carries success/error so callers always get 200.
func (s *Server) handleToolHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/tools/")
	name = strings.TrimRight(name, "/")
	if name == "" || strings.Contains(name, "/") {
		http.Error(w, "Bad Request: missing tool name", http.StatusBadRequest)
		return
	}

	if s.requireAuth {
		scopes, err := s.extractScopes(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		if desc, ok := s.registry.Descriptor(name); ok && !s.inScope(scopes, desc.Category) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, MaxRequestBodySize+1))
	if err != nil {
		http.Error(w, "Bad Request: failed to read body", http.StatusBadRequest)
		return
	}
	if int64(len(body)) > MaxRequestBodySize {
		http.Error(w, "Request Entity Too Large", http.StatusRequestEntityTooLarge)
		return
	}
	if len(body) == 0 {
		body = []byte(`{}`)
	}

	res := s.dispatcher.Dispatch(r.Context(), dispatch.Request{
		ID:      uuid.New().String(),
		Target:  name,
		Payload: json.RawMessage(body),
	})

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		s.logger.Warn("failed to encode dispatch result", "error", err)
	}
}
