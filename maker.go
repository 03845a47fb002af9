package gourdianauth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// GourdianAuthMaker defines the interface for session token management.
//
// Methods:
//   - IssueTokens: Mints a paired access and refresh token for a principal
//   - Authenticate: Verifies a token and derives the trusted Principal
//   - ExtractClaims: Verifies a token's signature, tolerating expiry
//   - RefreshAccessToken: Exchanges a refresh token for a new access token
//   - RevokeRefreshToken: Drops the stored refresh token for a subject
type GourdianAuthMaker interface {
	IssueTokens(ctx context.Context, principal Principal) (*TokenPair, error)
	Authenticate(tokenString string) (*Principal, error)
	ExtractClaims(tokenString string) (*TokenClaims, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (*AccessTokenResponse, error)
	RevokeRefreshToken(ctx context.Context, subject string) error
}

// JWTMaker is the concrete implementation of GourdianAuthMaker using HMAC
// signed JWTs. The signing key is decoded once at construction and read-only
// afterwards, so a single maker is safe for concurrent use.
type JWTMaker struct {
	config        GourdianAuthConfig
	signingMethod jwt.SigningMethod
	key           []byte
	repository    RefreshTokenRepository
}

// NewGourdianAuthMaker creates a new instance of JWTMaker.
//
// Parameters:
//   - config: Token configuration
//   - repository: Optional refresh token store; nil keeps the maker stateless
//
// Returns:
//   - GourdianAuthMaker: Token maker instance
//   - error: Any error encountered during initialization
func NewGourdianAuthMaker(config GourdianAuthConfig, repository RefreshTokenRepository) (GourdianAuthMaker, error) {
	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	maker := &JWTMaker{
		config:     config,
		repository: repository,
	}

	switch config.Algorithm {
	case "HS256":
		maker.signingMethod = jwt.SigningMethodHS256
	case "HS384":
		maker.signingMethod = jwt.SigningMethodHS384
	case "HS512":
		maker.signingMethod = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("%w: unsupported signing algorithm: %s", ErrInvalidConfig, config.Algorithm)
	}

	key, err := decodeSigningKey(config.SigningSecret)
	if err != nil {
		return nil, err
	}
	maker.key = key

	return maker, nil
}

// IssueTokens mints a paired access and refresh token for an authenticated
// principal. Both tokens encode the same subject and authority set; only the
// token type and expiry differ. When a repository is configured the refresh
// token is persisted under the subject for the later exchange.
func (maker *JWTMaker) IssueTokens(ctx context.Context, principal Principal) (*TokenPair, error) {
	if principal.Name == "" {
		return nil, fmt.Errorf("principal name cannot be empty")
	}

	now := time.Now()
	authorities := joinAuthorities(principal.Authorities)

	accessToken, err := maker.signClaims(TokenClaims{
		Subject:     principal.Name,
		Authorities: authorities,
		TokenType:   AccessToken,
		IssuedAt:    now,
		ExpiresAt:   now.Add(maker.config.AccessExpiryDuration),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshToken, err := maker.signClaims(TokenClaims{
		Subject:     principal.Name,
		Authorities: authorities,
		TokenType:   RefreshToken,
		IssuedAt:    now,
		ExpiresAt:   now.Add(maker.config.RefreshExpiryDuration),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	if maker.repository != nil {
		if err := maker.repository.Save(ctx, principal.Name, refreshToken, maker.config.RefreshExpiryDuration); err != nil {
			return nil, fmt.Errorf("failed to store refresh token: %w", err)
		}
	}

	return &TokenPair{
		GrantType:        BearerScheme,
		AccessToken:      accessToken,
		AccessExpiresIn:  maker.config.AccessExpiryDuration,
		RefreshToken:     refreshToken,
		RefreshExpiresIn: maker.config.RefreshExpiryDuration,
	}, nil
}

// Authenticate verifies a presented token and derives the trusted Principal
// from its claims. Expired tokens fail with ErrExpiredToken, anything
// malformed or badly signed with ErrInvalidToken, and a token without
// authorities with ErrMissingAuthorities.
//
// The token type is not checked here: a refresh token presented as an access
// token will authenticate. Callers that must forbid refresh tokens on
// protected endpoints check TokenClaims.TokenType via ExtractClaims.
func (maker *JWTMaker) Authenticate(tokenString string) (*Principal, error) {
	claims, err := maker.parseClaims(tokenString)
	if err != nil {
		return nil, err
	}

	authorities, err := splitAuthorities(claims.Authorities)
	if err != nil {
		return nil, err
	}

	return &Principal{
		Name:        claims.Subject,
		Authorities: authorities,
	}, nil
}

// ExtractClaims verifies a token's signature and structure but tolerates
// expiry, returning the decoded claims either way. Used to read the subject
// of an expired access token when driving a refresh flow.
func (maker *JWTMaker) ExtractClaims(tokenString string) (*TokenClaims, error) {
	claims, err := maker.parseClaims(tokenString)
	if err != nil && !errors.Is(err, ErrExpiredToken) {
		return nil, err
	}
	return claims, nil
}

// RefreshAccessToken exchanges a previously issued refresh token for a brand
// new access token bound to the same subject and authorities, without
// re-running credential checks. An expired refresh token is rejected with
// ErrExpiredToken, forcing full re-authentication. When a repository is
// configured the presented token must match the stored one for the subject.
//
// The token kind claim is not inspected: with a repository only the refresh
// token stored at issuance passes the comparison, and without one any
// unexpired signed token is accepted for exchange.
func (maker *JWTMaker) RefreshAccessToken(ctx context.Context, refreshToken string) (*AccessTokenResponse, error) {
	claims, err := maker.parseClaims(refreshToken)
	if err != nil {
		return nil, err
	}

	if maker.repository != nil {
		stored, err := maker.repository.Find(ctx, claims.Subject)
		if err != nil {
			if errors.Is(err, ErrTokenNotFound) {
				return nil, fmt.Errorf("%w: no stored refresh token for subject", ErrInvalidToken)
			}
			return nil, fmt.Errorf("failed to look up refresh token: %w", err)
		}
		if subtle.ConstantTimeCompare([]byte(stored), []byte(refreshToken)) != 1 {
			return nil, fmt.Errorf("%w: refresh token does not match stored token", ErrInvalidToken)
		}
	}

	// Authorities come from the verified claims, never from a user store.
	now := time.Now()
	access := TokenClaims{
		Subject:     claims.Subject,
		Authorities: claims.Authorities,
		TokenType:   AccessToken,
		IssuedAt:    now,
		ExpiresAt:   now.Add(maker.config.AccessExpiryDuration),
	}

	signedToken, err := maker.signClaims(access)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	return &AccessTokenResponse{
		Token:       signedToken,
		Subject:     access.Subject,
		Authorities: access.Authorities,
		ExpiresAt:   access.ExpiresAt,
		IssuedAt:    access.IssuedAt,
	}, nil
}

// RevokeRefreshToken removes the stored refresh token for a subject so a
// later exchange fails. A no-op when no repository is configured.
func (maker *JWTMaker) RevokeRefreshToken(ctx context.Context, subject string) error {
	if maker.repository == nil {
		return nil
	}
	return maker.repository.Delete(ctx, subject)
}

// signClaims assigns a fresh token ID and signs the claim set.
func (maker *JWTMaker) signClaims(claims TokenClaims) (string, error) {
	tokenID, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate token ID: %w", err)
	}
	claims.ID = tokenID

	token := jwt.NewWithClaims(maker.signingMethod, toMapClaims(claims))
	return token.SignedString(maker.key)
}

// parseClaims verifies the signature and structure of a token and decodes its
// claims. Expiry is checked explicitly after signature verification so a
// signature-valid but expired token still yields its decoded claims alongside
// ErrExpiredToken.
func (maker *JWTMaker) parseClaims(tokenString string) (*TokenClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{maker.signingMethod.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	token, err := parser.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != maker.signingMethod.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return maker.key, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token claims", ErrInvalidToken)
	}

	claims, err := mapToClaims(mapClaims)
	if err != nil {
		return nil, err
	}

	if time.Now().After(claims.ExpiresAt) {
		return claims, ErrExpiredToken
	}

	return claims, nil
}
