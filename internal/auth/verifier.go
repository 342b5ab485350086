package auth

import (
	"context"
	"errors"
)

var ErrUnauthorized = errors.New("unauthorized")

// Identity is the opaque subject extracted from a verified bearer
// credential. It gates access only: it is never logged or persisted.
type Identity struct {
	Subject string
}

// Verifier validates a bearer token and yields the caller's identity.
// Implementations return ErrUnauthorized for missing, invalid or expired
// credentials; any other error means verification itself was unavailable.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}
