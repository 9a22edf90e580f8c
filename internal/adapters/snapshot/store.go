// Package snapshot persists scanned declarations as msgpack artifacts.
package snapshot

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"go.trai.ch/autoload/internal/core/domain"
	"go.trai.ch/autoload/internal/core/ports"
	"go.trai.ch/zerr"
)

// FormatVersion is bumped whenever the artifact layout changes.
const FormatVersion = 1

var _ ports.SnapshotStore = (*Store)(nil)

type entryDTO struct {
	File       string   `msgpack:"file"`
	Extends    []string `msgpack:"extends,omitempty"`
	Implements []string `msgpack:"implements,omitempty"`
	Methods    []string `msgpack:"methods,omitempty"`
}

type snapshotDTO struct {
	Version    int                 `msgpack:"version"`
	WrittenAt  time.Time           `msgpack:"written_at"`
	Classes    map[string]entryDTO `msgpack:"classes"`
	Interfaces map[string]entryDTO `msgpack:"interfaces"`
}

// Store implements ports.SnapshotStore on the local filesystem.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Load reads the snapshot at path. A missing file is not an error.
func (s *Store) Load(path string) (*domain.Snapshot, error) {
	//nolint:gosec // Path is controlled by caller
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil //nolint:nilnil // absence is not an error
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to open snapshot"), "path", path)
	}
	defer func() { _ = f.Close() }()

	var dto snapshotDTO
	if err := msgpack.NewDecoder(f).Decode(&dto); err != nil {
		return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrSnapshotCorrupt, err), "failed to decode snapshot"), "path", path)
	}
	if dto.Version != FormatVersion {
		return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrSnapshotCorrupt, "unsupported snapshot version"), "path", path), "version", dto.Version)
	}

	batch := domain.NewBatch()
	for name, e := range dto.Classes {
		batch.Classes[name] = fromDTO(e)
	}
	for name, e := range dto.Interfaces {
		batch.Interfaces[name] = fromDTO(e)
	}
	return domain.NewSnapshot(batch, dto.WrittenAt), nil
}

// Save writes the snapshot to a temporary file and renames it over path.
func (s *Store) Save(path string, snap *domain.Snapshot) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create snapshot directory"), "path", dir)
	}

	dto := snapshotDTO{
		Version:    FormatVersion,
		WrittenAt:  snap.WrittenAt.UTC(),
		Classes:    make(map[string]entryDTO, len(snap.Classes)),
		Interfaces: make(map[string]entryDTO, len(snap.Interfaces)),
	}
	for name, e := range snap.Classes {
		dto.Classes[name] = toDTO(e)
	}
	for name, e := range snap.Interfaces {
		dto.Interfaces[name] = toDTO(e)
	}

	f, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create temporary snapshot"), "path", path)
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	enc := msgpack.NewEncoder(f)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(&dto); err != nil {
		_ = f.Close()
		return zerr.With(zerr.Wrap(err, "failed to encode snapshot"), "path", path)
	}
	if err := f.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to flush snapshot"), "path", path)
	}
	if err := os.Chmod(tmp, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to set snapshot permissions"), "path", path)
	}
	if err := os.Rename(tmp, path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to replace snapshot"), "path", path)
	}
	return nil
}

// ModTime returns the artifact's modification time and whether it exists.
func (s *Store) ModTime(path string) (time.Time, bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, zerr.With(zerr.Wrap(err, "failed to stat snapshot"), "path", path)
	}
	return info.ModTime(), true, nil
}

// Touch sets the artifact's access and modification times to at.
func (s *Store) Touch(path string, at time.Time) error {
	if err := os.Chtimes(path, at, at); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to touch snapshot"), "path", path)
	}
	return nil
}

// Remove deletes path and everything below it.
func (s *Store) Remove(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove snapshot"), "path", path)
	}
	return nil
}

func toDTO(e domain.Entry) entryDTO {
	return entryDTO{
		File:       filepath.ToSlash(e.File),
		Extends:    e.Supertypes,
		Implements: e.Interfaces,
		Methods:    e.Methods,
	}
}

func fromDTO(e entryDTO) domain.Entry {
	return domain.Entry{
		File:       filepath.FromSlash(e.File),
		Supertypes: e.Extends,
		Interfaces: e.Implements,
		Methods:    e.Methods,
	}
}
