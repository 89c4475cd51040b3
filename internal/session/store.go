package session

import "context"

// Store is the durable persistence layer for sessions: one serialized
// Identity per user id, overwritten on every mutation, deleted on logout.
type Store interface {
	// Save persists the full identity, replacing any previous copy.
	Save(ctx context.Context, identity *Identity) error

	// Load returns the persisted identity, or (nil, nil) when none exists.
	Load(ctx context.Context, userID string) (*Identity, error)

	// Delete removes the persisted identity. Idempotent.
	Delete(ctx context.Context, userID string) error
}
