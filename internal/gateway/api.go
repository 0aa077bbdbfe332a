// ABOUTME: HTTP API handlers for health checks, capability listing, and
// ABOUTME: dispatch history backed by the record store.

package gateway

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/beaconlabs/beacon-gateway/internal/capability"
)

const defaultRecordLimit = 50

// handleHealth returns 200 OK if the server is alive.
func (g *Gateway) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleReady returns 200 OK once at least one capability is registered.
// The load phase guarantees this for a running gateway, so readiness only
// fails if something drained the registry, which cannot happen today.
func (g *Gateway) handleReady(w http.ResponseWriter, r *http.Request) {
	n := g.registry.Len()
	if n == 0 {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("no capabilities registered"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready (" + strconv.Itoa(n) + " capabilities)"))
}

// capabilityInfo is the JSON shape for one capability in the listing.
type capabilityInfo struct {
	Name                string   `json:"name"`
	Category            string   `json:"category"`
	Description         string   `json:"description"`
	SupportedOperations []string `json:"supportedOperations,omitempty"`
}

// handleListCapabilities returns registered capabilities, optionally filtered
// by ?category=.
func (g *Gateway) handleListCapabilities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	var descriptors []capability.Descriptor
	if cat := r.URL.Query().Get("category"); cat != "" {
		for _, name := range g.registry.ListByCategory(capability.Category(cat)) {
			if desc, ok := g.registry.Descriptor(name); ok {
				descriptors = append(descriptors, desc)
			}
		}
	} else {
		descriptors = g.registry.Descriptors()
	}

	infos := make([]capabilityInfo, len(descriptors))
	for i, desc := range descriptors {
		infos[i] = capabilityInfo{
			Name:                desc.Name,
			Category:            string(desc.Category),
			Description:         desc.Description,
			SupportedOperations: desc.SupportedOperations,
		}
	}

	g.writeJSON(w, map[string]any{"capabilities": infos})
}

// handleRecords returns recent dispatch records, newest first.
// ?limit= caps the count (default 50, max 500).
func (g *Gateway) handleRecords(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := defaultRecordLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			http.Error(w, "Bad Request: invalid limit", http.StatusBadRequest)
			return
		}
		if n > 500 {
			n = 500
		}
		limit = n
	}

	records, err := g.store.RecentRecords(r.Context(), limit)
	if err != nil {
		g.logger.Error("failed to load dispatch records", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	g.writeJSON(w, map[string]any{"records": records})
}

// handleSummary returns aggregate dispatch statistics.
func (g *Gateway) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	summary, err := g.store.GetSummary(r.Context())
	if err != nil {
		g.logger.Error("failed to load dispatch summary", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	g.writeJSON(w, summary)
}

func (g *Gateway) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		g.logger.Warn("failed to encode response", "error", err)
	}
}
