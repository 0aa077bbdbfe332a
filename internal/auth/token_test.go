// ABOUTME: Tests for JWT verification: round trips, expiry, wrong secrets.
// ABOUTME: Covers the claims contract (sub required).

package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestJWTVerifier(t *testing.T) {
	secret := []byte("test-secret-at-least-32-bytes-long!")

	t.Run("generate and verify round trip", func(t *testing.T) {
		v := NewJWTVerifier(secret)

		token, err := v.Generate("principal-1", time.Hour)
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}

		principalID, err := v.Verify(token)
		if err != nil {
			t.Fatalf("Verify() error = %v", err)
		}
		if principalID != "principal-1" {
			t.Errorf("principalID = %q, want %q", principalID, "principal-1")
		}
	})

	t.Run("rejects expired tokens", func(t *testing.T) {
		v := NewJWTVerifier(secret)

		token, err := v.Generate("principal-1", -time.Minute)
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}

		_, err = v.Verify(token)
		if !errors.Is(err, ErrExpiredToken) {
			t.Errorf("expected ErrExpiredToken, got %v", err)
		}
	})

	t.Run("rejects tokens signed with another secret", func(t *testing.T) {
		v := NewJWTVerifier(secret)
		other := NewJWTVerifier([]byte("another-secret-also-32-bytes-long!!"))

		token, err := other.Generate("principal-1", time.Hour)
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}

		_, err = v.Verify(token)
		if !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("rejects garbage tokens", func(t *testing.T) {
		v := NewJWTVerifier(secret)

		_, err := v.Verify("not.a.token")
		if !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("requires the sub claim", func(t *testing.T) {
		v := NewJWTVerifier(secret)

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"iat": time.Now().Unix(),
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		signed, err := token.SignedString(secret)
		if err != nil {
			t.Fatalf("signing: %v", err)
		}

		_, err = v.Verify(signed)
		if !errors.Is(err, ErrMissingClaim) {
			t.Errorf("expected ErrMissingClaim, got %v", err)
		}
	})
}
