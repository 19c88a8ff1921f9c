package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// ErrNoSnapshot is returned by Load when no file exists for the gameweek.
var ErrNoSnapshot = fmt.Errorf("no snapshot for gameweek")

// Store persists one JSON snapshot file per gameweek under Root.
// Files are written whole and never rewritten in place.
type Store struct {
	Root string // e.g. "data/snapshots"
}

func NewStore(root string) *Store {
	return &Store{Root: root}
}

func (s *Store) Path(gw int) string {
	return filepath.Join(s.Root, "gw", strconv.Itoa(gw)+".json")
}

func (s *Store) Exists(gw int) bool {
	_, err := os.Stat(s.Path(gw))
	return err == nil
}

func (s *Store) Load(gw int) (*Snapshot, error) {
	b, err := os.ReadFile(s.Path(gw))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w %d", ErrNoSnapshot, gw)
	}
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot gw %d: %w", gw, err)
	}
	return &snap, nil
}

func (s *Store) Write(snap *Snapshot) error {
	path := s.Path(snap.Gameweek)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}

	b = append(b, '\n')
	return os.WriteFile(path, b, 0o644)
}
