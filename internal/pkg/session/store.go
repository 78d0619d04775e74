// Package session keeps the server-side half of a login: a session id that
// must still be present for a signed token to be honoured.
package session

import (
	"context"
	"errors"
	"time"
)

// ErrSessionNotFound is returned when a session id is unknown or expired
var ErrSessionNotFound = errors.New("session not found")

// Store persists live session ids
type Store interface {
	// Create registers sessionID for userID until ttl elapses.
	Create(ctx context.Context, sessionID string, userID int64, ttl time.Duration) error
	// Lookup returns the user owning sessionID or ErrSessionNotFound.
	Lookup(ctx context.Context, sessionID string) (int64, error)
	// Delete removes sessionID. Deleting an unknown session is not an error.
	Delete(ctx context.Context, sessionID string) error
	Close() error
}
