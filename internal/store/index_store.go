package store

import (
	"fmt"
	"path/filepath"
	"sync"

	"suitedeploy/internal/domain"
)

// IndexFilename is the name of both index files inside their cache roots.
const IndexFilename = "index.json"

const indexMode = 0o644

// LocalIndexFileStore persists the local object index as
// {"objects": [...]} in <dir>/index.json.
type LocalIndexFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewLocalIndexFileStore returns a LocalIndexFileStore rooted at dir.
func NewLocalIndexFileStore(dir string) *LocalIndexFileStore {
	return &LocalIndexFileStore{dir: dir}
}

// Path returns the index file location.
func (s *LocalIndexFileStore) Path() string { return filepath.Join(s.dir, IndexFilename) }

// SaveLocalIndex overwrites the index with objects. A nil slice is written
// as an empty list.
func (s *LocalIndexFileStore) SaveLocalIndex(objects []domain.LocalObject) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if objects == nil {
		objects = []domain.LocalObject{}
	}
	if err := writeJSON(s.Path(), domain.LocalIndex{Objects: objects}, indexMode); err != nil {
		return fmt.Errorf("save local index: %w", err)
	}
	return nil
}

// LoadLocalIndex returns the stored objects and whether the file was present.
func (s *LocalIndexFileStore) LoadLocalIndex() ([]domain.LocalObject, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var index domain.LocalIndex
	ok, err := readJSON(s.Path(), &index)
	if err != nil {
		return nil, ok, fmt.Errorf("load local index %s: %w", s.Path(), err)
	}
	return index.Objects, ok, nil
}

// ServerIndexFileStore persists the server object index in the same
// envelope as the local one.
type ServerIndexFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewServerIndexFileStore returns a ServerIndexFileStore rooted at dir.
func NewServerIndexFileStore(dir string) *ServerIndexFileStore {
	return &ServerIndexFileStore{dir: dir}
}

// Path returns the index file location.
func (s *ServerIndexFileStore) Path() string { return filepath.Join(s.dir, IndexFilename) }

// SaveServerIndex overwrites the index with objects.
func (s *ServerIndexFileStore) SaveServerIndex(objects []domain.ServerObject) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if objects == nil {
		objects = []domain.ServerObject{}
	}
	if err := writeJSON(s.Path(), domain.ServerIndex{Objects: objects}, indexMode); err != nil {
		return fmt.Errorf("save server index: %w", err)
	}
	return nil
}

// LoadServerIndex returns the stored objects and whether the file was present.
func (s *ServerIndexFileStore) LoadServerIndex() ([]domain.ServerObject, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var index domain.ServerIndex
	ok, err := readJSON(s.Path(), &index)
	if err != nil {
		return nil, ok, fmt.Errorf("load server index %s: %w", s.Path(), err)
	}
	return index.Objects, ok, nil
}

// Compile-time assertions that the stores implement the domain interfaces.
var (
	_ domain.LocalIndexStore  = (*LocalIndexFileStore)(nil)
	_ domain.ServerIndexStore = (*ServerIndexFileStore)(nil)
)
