// Package confirmation stores single-use confirmation codes issued during
// signup. Codes are kept hashed, expire after a TTL and are deleted on
// successful redemption. Issuing a new code for a user replaces the old one,
// so at most one code is valid per user at any time.
package confirmation

import (
	"context"
	"errors"
	"time"
)

var ErrNoCode = errors.New("no confirmation code issued")

type Store interface {
	// Save stores the hash of a user's current confirmation code,
	// replacing any previous one.
	Save(ctx context.Context, username, codeHash string, ttl time.Duration) error
	// Get returns the stored hash, or ErrNoCode if none is pending.
	Get(ctx context.Context, username string) (string, error)
	// Delete invalidates the pending code. Deleting an absent code is not
	// an error.
	Delete(ctx context.Context, username string) error
}
