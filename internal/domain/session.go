package domain

import "context"

// SessionStore holds the client's single remembered authentication token.
// There is one slot: saving replaces any previous token, and clearing an
// empty slot is a no-op. The token itself is opaque to the store.
type SessionStore interface {
	// Token returns the stored token, or "" if no session exists.
	Token(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}
