package server

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"suitedeploy/internal/domain"
)

// Service owns the server index.
type Service struct {
	client domain.SuiteCloudClient
	index  domain.ServerIndexStore
	log    *zap.Logger

	mu      sync.Mutex
	objects []domain.ServerObject
}

func New(client domain.SuiteCloudClient, index domain.ServerIndexStore, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		client:  client,
		index:   index,
		log:     log.Named("server"),
		objects: []domain.ServerObject{},
	}
}

var _ domain.ServerObjectService = (*Service)(nil)

// IndexPath returns the server index file location.
func (s *Service) IndexPath() string { return s.index.Path() }

// Load fills the in-memory list from the index file.
func (s *Service) Load() error {
	objects, _, err := s.index.LoadServerIndex()
	if err != nil {
		return err
	}
	if objects == nil {
		objects = []domain.ServerObject{}
	}
	s.mu.Lock()
	s.objects = objects
	s.mu.Unlock()
	return nil
}

// Objects returns the in-memory list, or the stored index when the list is
// empty.
func (s *Service) Objects() ([]domain.ServerObject, error) {
	s.mu.Lock()
	if len(s.objects) > 0 {
		out := append([]domain.ServerObject(nil), s.objects...)
		s.mu.Unlock()
		return out, nil
	}
	s.mu.Unlock()

	objects, _, err := s.index.LoadServerIndex()
	if err != nil {
		return nil, err
	}
	if objects == nil {
		objects = []domain.ServerObject{}
	}
	return objects, nil
}

// Record looks id up in the in-memory list.
func (s *Service) Record(id domain.ScriptID) (domain.ServerObject, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.objects {
		if o.ID == id {
			return o, true
		}
	}
	return domain.ServerObject{}, false
}

func (s *Service) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

func (s *Service) ClearObjects() {
	s.mu.Lock()
	s.objects = []domain.ServerObject{}
	s.mu.Unlock()
}

// InitializeFolders removes and re-creates the cache root.
func (s *Service) InitializeFolders() error {
	root := filepath.Dir(s.index.Path())
	if err := os.RemoveAll(root); err != nil {
		return fmt.Errorf("remove %s: %w", root, err)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", root, err)
	}
	return nil
}

func (s *Service) Reset() error {
	s.log.Info("server.Reset initiated.")
	s.ClearObjects()
	if err := s.InitializeFolders(); err != nil {
		return err
	}
	s.log.Info("server.Reset finished.")
	return nil
}

// Retrieve lists the account's objects and makes them the in-memory list.
// The index file is not written; see CreateIndex.
func (s *Service) Retrieve(ctx context.Context) ([]domain.ServerObject, error) {
	s.log.Info("server.Retrieve initiated.")
	objects, err := s.client.ListObjects(ctx)
	if err != nil {
		return nil, err
	}
	if objects == nil {
		objects = []domain.ServerObject{}
	}
	s.mu.Lock()
	s.objects = append([]domain.ServerObject(nil), objects...)
	s.mu.Unlock()
	s.log.Info("server.Retrieve finished.", zap.Int("objects", len(objects)))
	return objects, nil
}

// Import pulls ids from the account into the SDF objects directory.
func (s *Service) Import(ctx context.Context, ids ...domain.ScriptID) error {
	s.log.Info("server.Import initiated.", zap.Int("objects", len(ids)))
	out, err := s.client.ImportObjects(ctx, ids...)
	if err != nil {
		return err
	}
	s.log.Debug("server.Import output", zap.String("output", out))
	return nil
}

// Deploy pushes the local copy of id to the account.
func (s *Service) Deploy(ctx context.Context, id domain.ScriptID) error {
	s.log.Info("server.Deploy initiated.", zap.String("id", id.String()))
	out, err := s.client.DeployObject(ctx, id)
	if err != nil {
		return err
	}
	s.log.Debug("server.Deploy output", zap.String("output", out))
	return nil
}

// CreateIndex writes objects to the index file and then makes them the
// in-memory list.
func (s *Service) CreateIndex(objects []domain.ServerObject) error {
	if objects == nil {
		objects = []domain.ServerObject{}
	}
	if err := s.index.SaveServerIndex(objects); err != nil {
		return err
	}
	s.mu.Lock()
	s.objects = append([]domain.ServerObject(nil), objects...)
	s.mu.Unlock()
	return nil
}
