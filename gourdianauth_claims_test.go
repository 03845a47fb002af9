// gourdianauth_claims_test.go
package gourdianauth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestClaimsMapRoundTrip(t *testing.T) {
	now := time.Now()
	claims := TokenClaims{
		ID:          uuid.New(),
		Subject:     "alice",
		Authorities: "ROLE_USER,ROLE_ADMIN",
		TokenType:   AccessToken,
		IssuedAt:    now,
		ExpiresAt:   now.Add(time.Hour),
	}

	mapClaims := toMapClaims(claims)
	require.Equal(t, "access", mapClaims["type"])
	// jwt parsing delivers numeric claims as float64
	mapClaims["iat"] = float64(mapClaims["iat"].(int64))
	mapClaims["exp"] = float64(mapClaims["exp"].(int64))

	decoded, err := mapToClaims(mapClaims)
	require.NoError(t, err)

	require.Equal(t, claims.ID, decoded.ID)
	require.Equal(t, claims.Subject, decoded.Subject)
	require.Equal(t, claims.Authorities, decoded.Authorities)
	require.Equal(t, claims.TokenType, decoded.TokenType)
	require.Equal(t, claims.IssuedAt.Unix(), decoded.IssuedAt.Unix())
	require.Equal(t, claims.ExpiresAt.Unix(), decoded.ExpiresAt.Unix())
}

func TestMapToClaimsRejections(t *testing.T) {
	valid := func() map[string]interface{} {
		return map[string]interface{}{
			"jti":  uuid.New().String(),
			"sub":  "alice",
			"auth": "ROLE_USER",
			"type": "access",
			"iat":  float64(time.Now().Unix()),
			"exp":  float64(time.Now().Add(time.Hour).Unix()),
		}
	}

	for _, claim := range []string{"sub", "auth", "type", "iat", "exp"} {
		t.Run("Missing "+claim, func(t *testing.T) {
			claims := valid()
			delete(claims, claim)
			_, err := mapToClaims(claims)
			require.ErrorIs(t, err, ErrInvalidToken)
		})
	}

	t.Run("Empty Subject", func(t *testing.T) {
		claims := valid()
		claims["sub"] = ""
		_, err := mapToClaims(claims)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Malformed Token ID", func(t *testing.T) {
		claims := valid()
		claims["jti"] = "not-a-uuid"
		_, err := mapToClaims(claims)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Absent Token ID Tolerated", func(t *testing.T) {
		claims := valid()
		delete(claims, "jti")
		decoded, err := mapToClaims(claims)
		require.NoError(t, err)
		require.Equal(t, uuid.Nil, decoded.ID)
	})

	t.Run("Unknown Token Type", func(t *testing.T) {
		claims := valid()
		claims["type"] = "session"
		_, err := mapToClaims(claims)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Mistyped Timestamp", func(t *testing.T) {
		claims := valid()
		claims["exp"] = "tomorrow"
		_, err := mapToClaims(claims)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Expiry Not After Issuance", func(t *testing.T) {
		claims := valid()
		claims["exp"] = claims["iat"]
		_, err := mapToClaims(claims)
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestAuthoritiesSerialization(t *testing.T) {
	t.Run("Join And Split", func(t *testing.T) {
		joined := joinAuthorities([]string{"ROLE_ADMIN", "ROLE_USER"})
		require.Equal(t, "ROLE_ADMIN,ROLE_USER", joined)

		split, err := splitAuthorities(joined)
		require.NoError(t, err)
		require.Equal(t, []string{"ROLE_ADMIN", "ROLE_USER"}, split)
	})

	t.Run("Single Authority", func(t *testing.T) {
		split, err := splitAuthorities("ROLE_USER")
		require.NoError(t, err)
		require.Equal(t, []string{"ROLE_USER"}, split)
	})

	t.Run("Empty Claim", func(t *testing.T) {
		_, err := splitAuthorities("")
		require.ErrorIs(t, err, ErrMissingAuthorities)
	})

	t.Run("Empty Element", func(t *testing.T) {
		_, err := splitAuthorities("ROLE_USER,,ROLE_ADMIN")
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Whitespace Element", func(t *testing.T) {
		_, err := splitAuthorities("ROLE_USER, ,ROLE_ADMIN")
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Empty List Joins To Empty Claim", func(t *testing.T) {
		require.Equal(t, "", joinAuthorities(nil))
	})
}
