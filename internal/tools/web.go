// ABOUTME: Web fetch tool: retrieves a URL and extracts title and readable text.
// ABOUTME: Registered under the web category.

package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/beaconlabs/beacon-gateway/internal/capability"
)

const (
	// webFetchMaxBytes caps how much of a response body we read.
	webFetchMaxBytes = 1 << 20
	// webFetchPreviewLen caps the extracted text preview.
	webFetchPreviewLen = 2000
)

var (
	titleRe  = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	scriptRe = regexp.MustCompile(`(?is)<(script|style)[^>]*>.*?</(script|style)>`)
	tagRe    = regexp.MustCompile(`(?s)<[^>]*>`)
	spaceRe  = regexp.MustCompile(`\s+`)
)

// webHandlers implements the web_fetch tool.
type webHandlers struct {
	client *http.Client
	logger *slog.Logger
}

// WebSource returns the web_fetch capability source.
func WebSource(logger *slog.Logger) capability.Source {
	return capability.Source{
		Name: "web_fetch",
		Build: func() (capability.Descriptor, capability.Invoker, error) {
			h := &webHandlers{
				client: &http.Client{Timeout: 30 * time.Second},
				logger: logger.With("tool", "web_fetch"),
			}
			desc := capability.Descriptor{
				Name:        "web_fetch",
				Category:    capability.CategoryWeb,
				Description: "Fetch a URL and extract its title and readable text",
				InputSchema: `{"type":"object","properties":{"url":{"type":"string"},"max_bytes":{"type":"integer"}},"required":["url"]}`,
			}
			return desc, capability.InvokerFunc(h.Fetch), nil
		},
	}
}

type webFetchInput struct {
	URL      string `json:"url"`
	MaxBytes int64  `json:"max_bytes,omitempty"`
}

type webFetchOutput struct {
	URL           string `json:"url"`
	Status        int    `json:"status"`
	Title         string `json:"title,omitempty"`
	TextPreview   string `json:"text_preview,omitempty"`
	ContentLength int    `json:"content_length"`
}

// Fetch retrieves the URL and returns extracted metadata and text.
func (h *webHandlers) Fetch(ctx context.Context, _ string, payload json.RawMessage) (json.RawMessage, error) {
	var in webFetchInput
	if err := json.Unmarshal(payload, &in); err != nil {
		return nil, fmt.Errorf("decoding payload: %w", err)
	}
	if in.URL == "" {
		return nil, fmt.Errorf("url is required")
	}
	if !strings.HasPrefix(in.URL, "http://") && !strings.HasPrefix(in.URL, "https://") {
		return nil, fmt.Errorf("url must be http or https")
	}

	maxBytes := in.MaxBytes
	if maxBytes <= 0 || maxBytes > webFetchMaxBytes {
		maxBytes = webFetchMaxBytes
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, in.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", "beacon-gateway/1.0")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching url: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes))
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}

	out := webFetchOutput{
		URL:           in.URL,
		Status:        resp.StatusCode,
		ContentLength: len(body),
	}

	html := string(body)
	if m := titleRe.FindStringSubmatch(html); len(m) > 1 {
		out.Title = strings.TrimSpace(m[1])
	}
	out.TextPreview = extractText(html)

	h.logger.Debug("fetched url",
		"url", in.URL,
		"status", resp.StatusCode,
		"bytes", len(body),
	)

	return json.Marshal(out)
}

// extractText strips scripts, styles, and tags and collapses whitespace.
func extractText(html string) string {
	text := scriptRe.ReplaceAllString(html, " ")
	text = tagRe.ReplaceAllString(text, " ")
	text = spaceRe.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)
	if len(text) > webFetchPreviewLen {
		text = text[:webFetchPreviewLen]
	}
	return text
}
