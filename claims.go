package gourdianauth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims contains the signed payload carried by both token kinds.
//
// Fields:
//   - ID: Unique token ID (JWT ID)
//   - Subject: Principal name (subject)
//   - Authorities: Comma-joined authority names
//   - TokenType: Token type (access or refresh)
//   - IssuedAt: Token issuance time
//   - ExpiresAt: Token expiration time
type TokenClaims struct {
	ID          uuid.UUID `json:"jti"`
	Subject     string    `json:"sub"`
	Authorities string    `json:"auth"`
	TokenType   TokenType `json:"type"`
	IssuedAt    time.Time `json:"iat"`
	ExpiresAt   time.Time `json:"exp"`
}

// Principal is the verified identity assertion derived from a token. It is
// the only output the rest of the system may trust and is built solely from
// verified claims.
//
// Fields:
//   - Name: Principal name (token subject)
//   - Authorities: Granted authority names
type Principal struct {
	Name        string   `json:"name"`
	Authorities []string `json:"authorities"`
}

// TokenPair represents the response after a successful authentication or
// refresh exchange.
//
// Fields:
//   - GrantType: Token scheme, always "Bearer"
//   - AccessToken: Signed access token
//   - AccessExpiresIn: Access token validity duration
//   - RefreshToken: Signed refresh token
//   - RefreshExpiresIn: Refresh token validity duration
type TokenPair struct {
	GrantType        string        `json:"grant_type"`
	AccessToken      string        `json:"access_token"`
	AccessExpiresIn  time.Duration `json:"access_expires_in"`
	RefreshToken     string        `json:"refresh_token"`
	RefreshExpiresIn time.Duration `json:"refresh_expires_in"`
}

// AccessTokenResponse represents the response after minting a single access
// token through the refresh exchange.
//
// Fields:
//   - Token: Signed access token
//   - Subject: Principal name (subject)
//   - Authorities: Comma-joined authority names
//   - ExpiresAt: Token expiration time
//   - IssuedAt: Token issuance time
type AccessTokenResponse struct {
	Token       string    `json:"token"`
	Subject     string    `json:"sub"`
	Authorities string    `json:"auth"`
	ExpiresAt   time.Time `json:"exp"`
	IssuedAt    time.Time `json:"iat"`
}

// toMapClaims converts claims to jwt.MapClaims. Timestamps are encoded as
// numeric seconds since epoch.
func toMapClaims(claims TokenClaims) jwt.MapClaims {
	return jwt.MapClaims{
		"jti":  claims.ID.String(),
		"sub":  claims.Subject,
		"auth": claims.Authorities,
		"type": string(claims.TokenType),
		"iat":  claims.IssuedAt.Unix(),
		"exp":  claims.ExpiresAt.Unix(),
	}
}

// mapToClaims converts JWT claims to TokenClaims, rejecting tokens with
// missing or mistyped required claims.
func mapToClaims(claims jwt.MapClaims) (*TokenClaims, error) {
	// The jti claim is stamped on every issued token but is not part of the
	// minimum payload contract; foreign tokens without one still decode.
	var tokenID uuid.UUID
	if jti, ok := claims["jti"]; ok {
		jtiValue, ok := jti.(string)
		if !ok {
			return nil, fmt.Errorf("%w: invalid jti claim", ErrInvalidToken)
		}
		parsed, err := uuid.Parse(jtiValue)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid token ID: %v", ErrInvalidToken, err)
		}
		tokenID = parsed
	}

	subject, ok := claims["sub"].(string)
	if !ok || subject == "" {
		return nil, fmt.Errorf("%w: missing or invalid sub claim", ErrInvalidToken)
	}

	authorities, ok := claims["auth"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: missing or invalid auth claim", ErrInvalidToken)
	}

	tokenType, ok := claims["type"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: missing or invalid type claim", ErrInvalidToken)
	}
	switch TokenType(tokenType) {
	case AccessToken, RefreshToken:
	default:
		return nil, fmt.Errorf("%w: unknown token type: %s", ErrInvalidToken, tokenType)
	}

	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, fmt.Errorf("%w: missing or invalid iat claim", ErrInvalidToken)
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, fmt.Errorf("%w: missing or invalid exp claim", ErrInvalidToken)
	}
	if int64(exp) <= int64(iat) {
		return nil, fmt.Errorf("%w: expiry is not after issuance", ErrInvalidToken)
	}

	return &TokenClaims{
		ID:          tokenID,
		Subject:     subject,
		Authorities: authorities,
		TokenType:   TokenType(tokenType),
		IssuedAt:    time.Unix(int64(iat), 0),
		ExpiresAt:   time.Unix(int64(exp), 0),
	}, nil
}

// joinAuthorities serializes an authority list into the comma-joined string
// carried by the auth claim. Order is preserved but not significant.
func joinAuthorities(authorities []string) string {
	return strings.Join(authorities, ",")
}

// splitAuthorities parses the comma-joined auth claim back into an authority
// list. An empty claim yields ErrMissingAuthorities; an empty or
// whitespace-only element is a decode anomaly and is rejected rather than
// silently dropped.
func splitAuthorities(authorities string) ([]string, error) {
	if authorities == "" {
		return nil, ErrMissingAuthorities
	}

	parts := strings.Split(authorities, ",")
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			return nil, fmt.Errorf("%w: empty authority name", ErrInvalidToken)
		}
	}

	return parts, nil
}
