package store

import "errors"

// ErrNoSnapshot is returned by a backend when no snapshot has ever been
// saved. The store answers it by seeding a fresh one.
var ErrNoSnapshot = errors.New("store: no snapshot")

// SnapshotBackend persists the single serialized snapshot blob. Backends do
// not interpret the blob; structural validation happens in the store.
type SnapshotBackend interface {
	Load() ([]byte, error)
	Save(data []byte) error
}
