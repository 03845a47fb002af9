package gourdianauth

import "errors"

// Error taxonomy returned by the token core. Callers classify failures with
// errors.Is; the core never logs and never swallows a failure.
var (
	// ErrInvalidToken covers bad signatures, malformed structure and
	// unsupported algorithms. Fatal to the request, never recoverable.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken means the signature was valid but the claims are past
	// expiry. Recoverable via the refresh flow.
	ErrExpiredToken = errors.New("token expired")

	// ErrMissingAuthorities means the token is structurally valid but carries
	// no usable authorities and must never authenticate a principal.
	ErrMissingAuthorities = errors.New("token carries no authorities")

	// ErrInvalidConfig means the signing secret or expiry configuration is
	// unusable. Raised at construction time, never per request.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrTokenNotFound is returned by a RefreshTokenRepository when no token
	// is stored for the subject.
	ErrTokenNotFound = errors.New("refresh token not found")
)
