package session

import (
	"context"
	"time"
)

const (
	DefaultTTL = 24 * time.Hour
	keyPrefix  = "voyage:session:"
	lockPrefix = "voyage:session-lock:"
)

// Store persists sessions and arbitrates the per-session turn lock.
type Store interface {
	// Create stores a new session with Version 1.
	Create(ctx context.Context, data *Data) error

	// Get returns ErrNotFound when the session does not exist or expired.
	Get(ctx context.Context, id string) (*Data, error)

	// Update writes data if data.Version matches the stored version, then
	// increments data.Version. Returns ErrVersionConflict or ErrNotFound.
	Update(ctx context.Context, data *Data) error

	Delete(ctx context.Context, id string) error

	// TryLock takes the turn lock for a session for at most ttl. It returns
	// ErrLocked while another holder has it. The token releases the lock.
	TryLock(ctx context.Context, id string, ttl time.Duration) (string, error)

	// Unlock releases the lock if token still owns it.
	Unlock(ctx context.Context, id, token string) error

	Close() error
}
