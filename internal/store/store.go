package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/example/contestwatch/internal/contest"
)

// Store owns the on-disk contest snapshot. It is the only component that
// reads or writes the state file; one load and one save happen per cycle,
// in program order.
type Store struct {
	path string
}

// New creates a store for the given state file path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the live state file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted snapshot. A missing file is the valid first-run
// state and yields an empty set. A file that exists but cannot be read or
// parsed is returned as an error; the caller must treat that as fatal
// rather than proceed with an empty set and re-notify everything.
func (s *Store) Load() (contest.Set, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return contest.Set{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file %s: %w", s.path, err)
	}

	var contests []contest.Contest
	if err := json.Unmarshal(data, &contests); err != nil {
		return nil, fmt.Errorf("failed to parse state file %s: %w", s.path, err)
	}

	return contest.NewSet(contests...), nil
}

// Save persists the snapshot, replacing any prior content. The write is
// atomic with respect to readers of the live path: the encoding goes to a
// temporary file in the same directory, is synced to stable storage, and
// is then renamed onto the live path. If any step before the rename
// fails, the previous snapshot is untouched.
func (s *Store) Save(set contest.Set) error {
	data, err := json.MarshalIndent(set.Contests(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize contests: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp state file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to sync temp state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp state file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace state file: %w", err)
	}

	return nil
}
