// gourdianauth_helpers_test.go
package gourdianauth

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// Test Helper Functions

// testSigningSecret is the base64 encoding of a 32 byte key.
const testSigningSecret = "dGVzdC1zaWduaW5nLXNlY3JldC0zMi1ieXRlcy1vayE="

func createTestMaker(t *testing.T, config GourdianAuthConfig) *JWTMaker {
	t.Helper()

	maker, err := NewGourdianAuthMaker(config, nil)
	require.NoError(t, err)
	return maker.(*JWTMaker)
}

func createTestMakerWithRepository(t *testing.T, config GourdianAuthConfig, repo RefreshTokenRepository) *JWTMaker {
	t.Helper()

	maker, err := NewGourdianAuthMaker(config, repo)
	require.NoError(t, err)
	return maker.(*JWTMaker)
}

// signTestToken signs arbitrary map claims with the maker's key, bypassing
// IssueTokens so tests can craft tokens with chosen timestamps and claims.
func signTestToken(t *testing.T, maker *JWTMaker, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(maker.signingMethod, claims)
	signed, err := token.SignedString(maker.key)
	require.NoError(t, err)
	return signed
}

// testTokenClaims returns a complete, currently valid claim set that tests
// mutate per case.
func testTokenClaims(subject, authorities string, tokenType TokenType) jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"jti":  "3d2c1b0a-9f8e-4d7c-b6a5-43210fedcba9",
		"sub":  subject,
		"auth": authorities,
		"type": string(tokenType),
		"iat":  now.Unix(),
		"exp":  now.Add(time.Hour).Unix(),
	}
}

func testRedisRepository(t *testing.T) (*RedisRefreshTokenRepository, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo, err := NewRedisRefreshTokenRepository(client)
	require.NoError(t, err)
	return repo, mr
}
