// ABOUTME: Gateway orchestrator that wires the registry, selector, dispatcher,
// ABOUTME: store, and HTTP servers together and manages their lifecycle.

package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/beaconlabs/beacon-gateway/internal/auth"
	"github.com/beaconlabs/beacon-gateway/internal/capability"
	"github.com/beaconlabs/beacon-gateway/internal/config"
	"github.com/beaconlabs/beacon-gateway/internal/dispatch"
	"github.com/beaconlabs/beacon-gateway/internal/mcp"
	"github.com/beaconlabs/beacon-gateway/internal/metrics"
	"github.com/beaconlabs/beacon-gateway/internal/provider"
	"github.com/beaconlabs/beacon-gateway/internal/store"
	"github.com/beaconlabs/beacon-gateway/internal/tools"
)

// Gateway orchestrates the beacon-gateway server components.
// It owns the capability registry, the provider selector, the dispatcher,
// the dispatch record store, and the HTTP server exposing MCP and API routes.
type Gateway struct {
	config     *config.Config
	store      *store.SQLiteStore
	selector   *provider.Selector
	registry   *capability.Registry
	dispatcher *dispatch.Dispatcher
	metrics    *metrics.Metrics
	mcpTokens  *mcp.TokenStore
	mcpServer  *mcp.Server
	httpServer *http.Server
	logger     *slog.Logger
}

// initStore creates the dispatch record store based on config and environment.
func initStore(cfg *config.Config) (*store.SQLiteStore, error) {
	dbPath := cfg.Database.Path
	if envPath := os.Getenv("BEACON_DB_PATH"); envPath != "" {
		dbPath = envPath
	}

	s, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("initializing store: %w", err)
	}
	return s, nil
}

// buildSelector registers every enabled provider from config.
// Returns an error only for misconfiguration; a selector with zero providers
// is valid (AI capabilities simply won't load).
func buildSelector(cfg *config.Config, logger *slog.Logger) (*provider.Selector, error) {
	sel := provider.NewSelector(cfg.Dispatch.DefaultProvider, logger.With("component", "selector"))

	type adapter struct {
		name  string
		pc    config.ProviderConfig
		build func(provider.Config) (provider.Provider, error)
	}

	adapters := []adapter{
		{"openai", cfg.Providers.OpenAI, func(c provider.Config) (provider.Provider, error) {
			return provider.NewOpenAIProvider(c)
		}},
		{"anthropic", cfg.Providers.Anthropic, func(c provider.Config) (provider.Provider, error) {
			return provider.NewAnthropicProvider(c)
		}},
		{"google", cfg.Providers.Google, func(c provider.Config) (provider.Provider, error) {
			return provider.NewGoogleProvider(c)
		}},
	}

	for _, a := range adapters {
		if !a.pc.Enabled {
			continue
		}
		p, err := a.build(provider.Config{
			APIKey:  a.pc.APIKey,
			BaseURL: a.pc.BaseURL,
			Models:  a.pc.Models,
			Logger:  logger.With("component", "provider", "provider", a.name),
		})
		if err != nil {
			return nil, fmt.Errorf("building %s provider: %w", a.name, err)
		}
		if err := sel.Register(p); err != nil {
			return nil, fmt.Errorf("registering %s provider: %w", a.name, err)
		}
		logger.Info("provider registered", "provider", a.name, "models", a.pc.Models)
	}

	return sel, nil
}

// capabilitySources assembles the static registration table: one source per
// enabled provider plus the builtin tool capabilities.
func capabilitySources(sel *provider.Selector, logger *slog.Logger) []capability.Source {
	var sources []capability.Source

	for _, name := range sel.Names() {
		sources = append(sources, provider.CapabilitySource(sel, name))
	}

	sources = append(sources, tools.WebSource(logger.With("component", "tools")))
	sources = append(sources, tools.CodeSources(logger.With("component", "tools"))...)
	sources = append(sources, tools.GenerateSource(sel, logger.With("component", "tools")))

	return sources
}

// New creates a new Gateway instance with the given configuration.
// Returns an error when no capability at all could be registered; that is
// the only fatal startup condition besides misconfiguration.
func New(cfg *config.Config, logger *slog.Logger) (*Gateway, error) {
	s, err := initStore(cfg)
	if err != nil {
		return nil, err
	}

	sel, err := buildSelector(cfg, logger)
	if err != nil {
		_ = s.Close()
		return nil, err
	}

	registry := capability.NewRegistry(logger.With("component", "registry"))
	if err := registry.Load(capabilitySources(sel, logger)); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("loading capabilities: %w", err)
	}

	observers := []dispatch.Observer{
		store.NewRecorder(s, logger.With("component", "recorder")),
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
		observers = append(observers, m)
	}

	dispatcher, err := dispatch.NewDispatcher(dispatch.Config{
		Registry:  registry,
		Logger:    logger.With("component", "dispatcher"),
		Timeout:   cfg.Dispatch.Timeout,
		Observers: observers,
	})
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("creating dispatcher: %w", err)
	}

	gw := &Gateway{
		config:     cfg,
		store:      s,
		selector:   sel,
		registry:   registry,
		dispatcher: dispatcher,
		metrics:    m,
		mcpTokens:  mcp.NewTokenStore(),
		logger:     logger.With("component", "gateway"),
	}

	mux := http.NewServeMux()

	// Health endpoints - no auth required
	mux.HandleFunc("/health", gw.handleHealth)
	mux.HandleFunc("/health/ready", gw.handleReady)

	// API endpoints for capability listing and dispatch history
	mux.HandleFunc("/api/capabilities", gw.handleListCapabilities)
	mux.HandleFunc("/api/records", gw.handleRecords)
	mux.HandleFunc("/api/stats/summary", gw.handleSummary)

	if cfg.Metrics.Enabled {
		path := cfg.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		mux.Handle(path, m.Handler())
		logger.Info("metrics endpoint enabled", "path", path)
	}

	var verifier auth.TokenVerifier
	if cfg.Auth.JWTSecret != "" {
		verifier = auth.NewJWTVerifier([]byte(cfg.Auth.JWTSecret))
	} else if cfg.Auth.RequireAuth {
		_ = s.Close()
		return nil, errors.New("auth.require_auth is set but no jwt_secret configured")
	}

	mcpServer, err := mcp.NewServer(mcp.Config{
		Registry:      registry,
		Dispatcher:    dispatcher,
		TokenVerifier: verifier,
		TokenStore:    gw.mcpTokens,
		Logger:        logger.With("component", "mcp"),
		RequireAuth:   cfg.Auth.RequireAuth,
	})
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("creating MCP server: %w", err)
	}
	gw.mcpServer = mcpServer
	gw.mcpServer.RegisterRoutes(mux)

	gw.httpServer = &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("gateway assembled",
		"capabilities", registry.Len(),
		"providers", sel.Names(),
		"default_provider", sel.DefaultName(),
	)

	return gw, nil
}

// Registry exposes the capability registry, mainly for tests and CLI helpers.
func (g *Gateway) Registry() *capability.Registry {
	return g.registry
}

// TokenStore exposes the MCP token store for operator token installation.
func (g *Gateway) TokenStore() *mcp.TokenStore {
	return g.mcpTokens
}

// Run starts the HTTP server and blocks until the context is canceled.
// Returns nil on graceful shutdown, or an error if the server fails.
func (g *Gateway) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", g.config.Server.HTTPAddr)
	if err != nil {
		return fmt.Errorf("listening on HTTP address: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		g.logger.Info("HTTP server listening", "addr", ln.Addr().String())
		if err := g.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server: %w", err)
		}
	}()

	var serverErr error
	select {
	case <-ctx.Done():
		g.logger.Info("context canceled, initiating shutdown")
	case serverErr = <-errCh:
		g.logger.Error("server error", "error", serverErr)
	}

	shutdownErr := g.gracefulShutdown()

	if serverErr != nil {
		return serverErr
	}
	return shutdownErr
}

// gracefulShutdown performs shutdown with a fresh context and timeout.
// Uses context.Background() intentionally since the original context is already canceled.
func (g *Gateway) gracefulShutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return g.Shutdown(ctx)
}

// Shutdown gracefully stops the HTTP server and releases resources.
func (g *Gateway) Shutdown(ctx context.Context) error {
	g.logger.Info("shutting down gateway")

	var errs []error
	if err := g.httpServer.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("HTTP shutdown: %w", err))
	}
	if err := g.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("store close: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %v", errs)
	}
	return nil
}
