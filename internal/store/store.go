package store

import (
	"context"

	"github.com/pranaflow/prana-server/internal/model"
)

// Store exposes persistence operations required by the engine.
// Implementations live under internal/store/<driver>/ (postgres, sqlite).
type Store interface {
	Activations() Activations
	Profiles() Profiles
}

// Activations is the append-only ledger of chakra activation records.
//
// Insert must enforce uniqueness of (userId, chakraIndex, day, category) at
// the storage layer and return model.ErrDuplicateActivation when the key
// already exists. This, not a prior read, is what makes concurrent
// activations and blind retries safe: two racing inserts for the same key
// resolve to exactly one row and one duplicate signal.
type Activations interface {
	Insert(ctx context.Context, rec *model.ActivationRecord) (*model.ActivationRecord, error)
	Find(ctx context.Context, userID string, chakraIndex int, day, category string) (*model.ActivationRecord, error)
	List(ctx context.Context, req model.ListActivationsRequest) ([]*model.ActivationRecord, error)
}

// Profiles is the external user-profile aggregate that owns the energy point
// counter. The engine only applies deltas; it never writes an absolute total.
type Profiles interface {
	IncrementPoints(ctx context.Context, userID string, delta int) (int, error)
	Get(ctx context.Context, userID string) (*model.UserProfile, error)
}
