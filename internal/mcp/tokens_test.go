// ABOUTME: Tests for the MCP token store.
// ABOUTME: Validates token lifecycle, scope isolation, and concurrent access.

package mcp

import (
	"sync"
	"testing"
)

func TestTokenStore(t *testing.T) {
	t.Run("create and retrieve scopes", func(t *testing.T) {
		store := NewTokenStore()
		token := store.CreateToken([]string{"web", "code-analysis"})

		scopes := store.GetScopes(token)
		if len(scopes) != 2 {
			t.Fatalf("expected 2 scopes, got %d", len(scopes))
		}
		if scopes[0] != "web" || scopes[1] != "code-analysis" {
			t.Errorf("unexpected scopes: %v", scopes)
		}
	})

	t.Run("unknown token returns nil", func(t *testing.T) {
		store := NewTokenStore()
		if scopes := store.GetScopes("nonexistent"); scopes != nil {
			t.Errorf("expected nil, got %v", scopes)
		}
	})

	t.Run("known token with empty scopes returns non-nil", func(t *testing.T) {
		store := NewTokenStore()
		token := store.CreateToken(nil)

		scopes := store.GetScopes(token)
		if scopes == nil {
			t.Fatal("expected non-nil slice for valid token")
		}
		if len(scopes) != 0 {
			t.Errorf("expected empty scopes, got %v", scopes)
		}
	})

	t.Run("add operator token", func(t *testing.T) {
		store := NewTokenStore()
		store.AddToken("ops-token", []string{"ai-provider"})

		scopes := store.GetScopes("ops-token")
		if len(scopes) != 1 || scopes[0] != "ai-provider" {
			t.Errorf("unexpected scopes: %v", scopes)
		}
	})

	t.Run("invalidate removes token", func(t *testing.T) {
		store := NewTokenStore()
		token := store.CreateToken([]string{"web"})

		store.InvalidateToken(token)
		if scopes := store.GetScopes(token); scopes != nil {
			t.Errorf("expected nil after invalidation, got %v", scopes)
		}
		if store.TokenCount() != 0 {
			t.Errorf("expected 0 tokens, got %d", store.TokenCount())
		}
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		store := NewTokenStore()
		token := store.CreateToken([]string{"web"})

		scopes := store.GetScopes(token)
		scopes[0] = "mutated"

		if got := store.GetScopes(token); got[0] != "web" {
			t.Errorf("store scopes mutated: %v", got)
		}
	})

	t.Run("concurrent access", func(t *testing.T) {
		store := NewTokenStore()
		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				token := store.CreateToken([]string{"web"})
				_ = store.GetScopes(token)
				store.InvalidateToken(token)
			}()
		}
		wg.Wait()

		if store.TokenCount() != 0 {
			t.Errorf("expected 0 tokens, got %d", store.TokenCount())
		}
	})
}
