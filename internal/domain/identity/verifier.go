// Package identity defines the boundary to the external token verifier.
// The core consumes it; it never mints credentials itself.
package identity

import (
	"context"
	"errors"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Verifier validates a bearer credential and yields the caller's email.
// Failures are never retried; the request is rejected immediately.
type Verifier interface {
	Verify(ctx context.Context, token string) (email string, err error)
}
