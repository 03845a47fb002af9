package gourdianauth

import (
	"context"
	"time"
)

// RefreshTokenRepository persists the single active refresh token per
// subject. The token core only validates and decodes whatever string the
// store hands back; lookup keys are principal names.
//
// Methods:
//   - Save: Stores the refresh token for a subject, replacing any previous one
//   - Find: Returns the stored refresh token, or ErrTokenNotFound
//   - Delete: Removes the stored refresh token (logout/revocation)
type RefreshTokenRepository interface {
	Save(ctx context.Context, subject, token string, ttl time.Duration) error
	Find(ctx context.Context, subject string) (string, error)
	Delete(ctx context.Context, subject string) error
}
