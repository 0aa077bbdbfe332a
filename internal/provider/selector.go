// ABOUTME: Resolves a logical provider request to a concrete adapter.
// ABOUTME: Supports default-provider fallback and model-to-provider discovery.

package provider

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Selector resolves provider names and models to registered adapters.
// Providers are registered during startup; registration order determines the
// tie-break for FindProviderForModel.
type Selector struct {
	mu          sync.RWMutex
	byName      map[string]Provider
	order       []Provider
	defaultName string
	logger      *slog.Logger
}

// NewSelector creates a Selector with the given default provider name.
// The default is consulted when Predict is called without a usable name.
func NewSelector(defaultName string, logger *slog.Logger) *Selector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Selector{
		byName:      make(map[string]Provider),
		defaultName: defaultName,
		logger:      logger,
	}
}

// Register adds a provider. Returns ErrDuplicateProvider if the name is
// already taken and ErrNoModels if the provider's model list is empty.
func (s *Selector) Register(p Provider) error {
	if p.Name() == "" {
		return fmt.Errorf("provider name is required")
	}
	if len(p.SupportedModels()) == 0 {
		return fmt.Errorf("%w: %q", ErrNoModels, p.Name())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byName[p.Name()]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateProvider, p.Name())
	}

	s.byName[p.Name()] = p
	s.order = append(s.order, p)

	s.logger.Info("provider registered",
		"provider", p.Name(),
		"models", len(p.SupportedModels()),
	)
	return nil
}

// GetProvider returns the provider registered under name.
// Returns ErrProviderNotFound if absent.
func (s *Selector) GetProvider(name string) (Provider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrProviderNotFound, name)
	}
	return p, nil
}

// DefaultName returns the configured default provider name.
func (s *Selector) DefaultName() string {
	return s.defaultName
}

// Names returns registered provider names in registration order.
func (s *Selector) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, len(s.order))
	for i, p := range s.order {
		names[i] = p.Name()
	}
	return names
}

// Predict resolves name to a provider and invokes it. An empty or unknown
// name falls back to the configured default provider; the resolved provider
// name is always reported in the returned Prediction so callers can see
// which backend actually served the request.
func (s *Selector) Predict(ctx context.Context, name, input string, opts PredictOptions) (*Prediction, error) {
	p, err := s.resolve(name)
	if err != nil {
		return nil, err
	}

	if name != "" && p.Name() != name {
		s.logger.Debug("provider fallback",
			"requested", name,
			"resolved", p.Name(),
		)
	}

	pred, err := p.Predict(ctx, input, opts)
	if err != nil {
		return nil, fmt.Errorf("provider %q: %w", p.Name(), err)
	}
	pred.Provider = p.Name()
	return pred, nil
}

// resolve picks the provider for a possibly empty or invalid name.
func (s *Selector) resolve(name string) (Provider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if name != "" {
		if p, ok := s.byName[name]; ok {
			return p, nil
		}
	}
	if p, ok := s.byName[s.defaultName]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %q (no default available)", ErrProviderNotFound, name)
}

// FindProviderForModel scans providers in registration order and returns the
// first whose supported models contain model. Returns ErrModelNotSupported
// if none match. First-registered wins, deterministically.
func (s *Selector) FindProviderForModel(model string) (Provider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.order {
		if supportsModel(p, model) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrModelNotSupported, model)
}
