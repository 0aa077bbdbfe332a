// ABOUTME: MCP token store for mapping opaque access tokens to category scopes.
// ABOUTME: Tokens are minted at startup or by operators and validated on MCP requests.

package mcp

import (
	"sync"

	"github.com/google/uuid"
)

// TokenStore manages MCP access tokens and their associated category scopes.
// A scope is a capability category string; a token with no scopes sees every
// capability.
type TokenStore struct {
	mu     sync.RWMutex
	tokens map[string][]string // token -> category scopes
}

// NewTokenStore creates a new token store.
func NewTokenStore() *TokenStore {
	return &TokenStore{
		tokens: make(map[string][]string),
	}
}

// CreateToken generates a new token with the given scopes.
// Returns the token string that should be included in MCP URLs.
func (s *TokenStore) CreateToken(scopes []string) string {
	token := uuid.New().String()

	// Copy to avoid aliasing
	sc := make([]string, len(scopes))
	copy(sc, scopes)

	s.mu.Lock()
	s.tokens[token] = sc
	s.mu.Unlock()

	return token
}

// AddToken registers an operator-supplied token with the given scopes.
// Used to install tokens from configuration rather than minting new ones.
func (s *TokenStore) AddToken(token string, scopes []string) {
	sc := make([]string, len(scopes))
	copy(sc, scopes)

	s.mu.Lock()
	s.tokens[token] = sc
	s.mu.Unlock()
}

// GetScopes returns the scopes for a token, or nil if the token is unknown.
func (s *TokenStore) GetScopes(token string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	scopes, ok := s.tokens[token]
	if !ok {
		return nil
	}

	// Return a copy to prevent modification
	result := make([]string, len(scopes))
	copy(result, scopes)
	return result
}

// InvalidateToken removes a token from the store.
func (s *TokenStore) InvalidateToken(token string) {
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
}

// TokenCount returns the number of active tokens (for monitoring).
func (s *TokenStore) TokenCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tokens)
}
