package ports

import (
	"time"

	"go.trai.ch/autoload/internal/core/domain"
)

// SnapshotStore persists registry snapshots.
//
//go:generate mockgen -source=snapshot_store.go -destination=mocks/mock_snapshot_store.go -package=mocks
type SnapshotStore interface {
	// Load reads the snapshot at path. Returns nil, nil if it does not exist.
	Load(path string) (*domain.Snapshot, error)
	// Save replaces the snapshot at path atomically.
	Save(path string, snap *domain.Snapshot) error
	// ModTime returns the modification time of the artifact and whether it exists.
	ModTime(path string) (time.Time, bool, error)
	// Touch bumps the modification time of the artifact.
	Touch(path string, at time.Time) error
	// Remove deletes the artifact or directory at path.
	Remove(path string) error
}
