package store

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"suitedeploy/internal/domain"
)

// ObjectFileStore writes one JSON document per SDF object, named after the
// object's XML file with a .json extension.
type ObjectFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewObjectFileStore returns an ObjectFileStore rooted at dir.
func NewObjectFileStore(dir string) *ObjectFileStore {
	return &ObjectFileStore{dir: dir}
}

// Dir returns the directory holding the documents.
func (s *ObjectFileStore) Dir() string { return s.dir }

// PathFor maps src/Objects/customrecord_x.xml to <dir>/customrecord_x.json.
func (s *ObjectFileStore) PathFor(xmlFile string) string {
	base := filepath.Base(xmlFile)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(s.dir, stem+".json")
}

// SaveObjectFile writes file to its JSONFile path, or to PathFor(XMLFile)
// when JSONFile is empty.
func (s *ObjectFileStore) SaveObjectFile(file domain.ObjectFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := file.JSONFile
	if path == "" {
		path = s.PathFor(file.XMLFile)
	}
	if err := writeJSON(path, file, indexMode); err != nil {
		return fmt.Errorf("save object file %s: %w", path, err)
	}
	return nil
}

// Compile-time assertion that ObjectFileStore implements domain.ObjectFileStore.
var _ domain.ObjectFileStore = (*ObjectFileStore)(nil)
