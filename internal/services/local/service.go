package local

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"suitedeploy/internal/crypto"
	"suitedeploy/internal/domain"
	"suitedeploy/internal/sdfxml"
)

// ErrUnsupportedField is returned by UpdateObjectFields for any field other
// than domain.FieldDeployed.
var ErrUnsupportedField = errors.New("unsupported object field")

// Options configures a Service.
type Options struct {
	// Workers bounds concurrent XML conversions; values below 1 mean 1.
	Workers  int
	Logger   *zap.Logger
	Notifier domain.Notifier
}

// Service scans the SDF objects directory and owns the local index.
type Service struct {
	objectsDir string
	index      domain.LocalIndexStore
	files      domain.ObjectFileStore
	workers    int
	log        *zap.Logger
	notifier   domain.Notifier

	mu      sync.Mutex
	objects []domain.LocalObject
}

// New returns a Service reading XML from objectsDir. The in-memory list
// starts empty; Objects falls back to the index file until it is filled.
func New(objectsDir string, index domain.LocalIndexStore, files domain.ObjectFileStore, opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	return &Service{
		objectsDir: objectsDir,
		index:      index,
		files:      files,
		workers:    workers,
		log:        log.Named("local"),
		notifier:   opts.Notifier,
		objects:    []domain.LocalObject{},
	}
}

var _ domain.LocalObjectService = (*Service)(nil)

// IndexPath returns the local index file location.
func (s *Service) IndexPath() string { return s.index.Path() }

// Load fills the in-memory list from the index file. A missing index leaves
// the list empty.
func (s *Service) Load() error {
	objects, _, err := s.index.LoadLocalIndex()
	if err != nil {
		return err
	}
	if objects == nil {
		objects = []domain.LocalObject{}
	}
	s.mu.Lock()
	s.objects = objects
	s.mu.Unlock()
	return nil
}

// Objects returns the in-memory list, or the stored index when the list is
// empty. A missing index yields an empty list.
func (s *Service) Objects() ([]domain.LocalObject, error) {
	s.mu.Lock()
	if len(s.objects) > 0 {
		out := append([]domain.LocalObject(nil), s.objects...)
		s.mu.Unlock()
		return out, nil
	}
	s.mu.Unlock()

	objects, _, err := s.index.LoadLocalIndex()
	if err != nil {
		return nil, err
	}
	if objects == nil {
		objects = []domain.LocalObject{}
	}
	return objects, nil
}

// Record looks id up in the in-memory list.
func (s *Service) Record(id domain.ScriptID) (domain.LocalObject, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.objects {
		if o.ID == id {
			return o, true
		}
	}
	return domain.LocalObject{}, false
}

// Count returns the size of the in-memory list.
func (s *Service) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

// ClearObjects empties the in-memory list. The index file is untouched.
func (s *Service) ClearObjects() {
	s.mu.Lock()
	s.objects = []domain.LocalObject{}
	s.mu.Unlock()
}

// InitializeFolders removes and re-creates the cache root.
func (s *Service) InitializeFolders() error {
	root := s.files.Dir()
	s.log.Debug("local.InitializeFolders", zap.String("dir", root))
	if err := os.RemoveAll(root); err != nil {
		return fmt.Errorf("remove %s: %w", root, err)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", root, err)
	}
	return nil
}

// Reset clears the in-memory list and the cache root.
func (s *Service) Reset() error {
	s.log.Info("local.Reset initiated.")
	s.ClearObjects()
	if err := s.InitializeFolders(); err != nil {
		return err
	}
	s.log.Info("local.Reset finished.")
	return nil
}

// CreateIndex writes objects to the index file and then makes them the
// in-memory list. A nil slice is stored as an empty list.
func (s *Service) CreateIndex(objects []domain.LocalObject) error {
	if objects == nil {
		objects = []domain.LocalObject{}
	}
	if err := s.index.SaveLocalIndex(objects); err != nil {
		return err
	}
	s.mu.Lock()
	s.objects = append([]domain.LocalObject(nil), objects...)
	s.mu.Unlock()
	return nil
}

// UpdateObjectFields sets field on each listed object and re-saves the index.
// Only domain.FieldDeployed with bool values is supported; ids that are not
// in the list are logged and skipped.
func (s *Service) UpdateObjectFields(field domain.Field, values []domain.FieldValue) error {
	if field != domain.FieldDeployed {
		s.log.Error("local.UpdateObjectFields unexpected field", zap.String("field", string(field)))
		return fmt.Errorf("%w: %q", ErrUnsupportedField, field)
	}

	s.mu.Lock()
	updated := append([]domain.LocalObject(nil), s.objects...)
	s.mu.Unlock()

	pos := make(map[domain.ScriptID]int, len(updated))
	for i, o := range updated {
		if _, seen := pos[o.ID]; !seen {
			pos[o.ID] = i
		}
	}
	for _, v := range values {
		i, ok := pos[v.ID]
		if !ok {
			s.log.Info("local.UpdateObjectFields skipping unknown id", zap.String("id", v.ID.String()))
			continue
		}
		b, ok := v.Value.(bool)
		if !ok {
			return fmt.Errorf("%w: %q expects a bool, got %T", ErrUnsupportedField, field, v.Value)
		}
		updated[i].Deployed = domain.Bool(b)
	}
	return s.CreateIndex(updated)
}

type scanJob struct {
	pos  int
	path string
}

type scanResult struct {
	object domain.LocalObject
	err    error
}

// CreateObjects clears the in-memory list and rebuilds it from the SDF
// objects directory, writing one JSON document per XML file. Entries that are
// not XML files are skipped. A file that fails to convert is reported in the
// summary and skipped; the scan only fails when the directory cannot be read
// or a document cannot be written.
func (s *Service) CreateObjects(ctx context.Context) (domain.ScanSummary, error) {
	s.log.Info("local.CreateObjects initiated.", zap.String("dir", s.objectsDir))
	s.ClearObjects()

	summary := domain.ScanSummary{Failed: map[string]string{}}
	entries, err := os.ReadDir(s.objectsDir)
	if err != nil {
		return summary, fmt.Errorf("read objects directory: %w", err)
	}

	var jobs []scanJob
	for _, e := range entries {
		path := filepath.Join(s.objectsDir, e.Name())
		if e.IsDir() || !sdfxml.IsObjectFile(e.Name()) {
			s.log.Info("local.CreateObjects UNEXPECTED FILE: "+path, zap.String("path", path))
			summary.Unexpected = append(summary.Unexpected, path)
			continue
		}
		jobs = append(jobs, scanJob{pos: len(jobs), path: path})
	}

	// ReadDir sorts by name, so results indexed by job position keep the
	// index in file name order.
	results := make([]scanResult, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for _, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			obj, err := s.createObjectFile(job.path)
			if err != nil {
				var fatal *writeError
				if errors.As(err, &fatal) {
					return err
				}
			}
			results[job.pos] = scanResult{object: obj, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return summary, err
	}

	objects := make([]domain.LocalObject, 0, len(results))
	for i, r := range results {
		if r.err != nil {
			path := jobs[i].path
			summary.Failed[path] = r.err.Error()
			s.log.Error("local.CreateObjects could not convert file", zap.String("path", path), zap.Error(r.err))
			if s.notifier != nil {
				s.notifier.Error(fmt.Sprintf("SuiteDeploy could not load file %s.", path))
			}
			continue
		}
		objects = append(objects, r.object)
	}

	s.mu.Lock()
	s.objects = objects
	s.mu.Unlock()

	summary.Objects = len(objects)
	s.log.Info("local.CreateObjects finished.", zap.Int("objects", summary.Objects),
		zap.Int("unexpected", len(summary.Unexpected)), zap.Int("failed", len(summary.Failed)))
	return summary, nil
}

// writeError marks failures that abort the whole scan.
type writeError struct{ err error }

func (e *writeError) Error() string { return e.err.Error() }
func (e *writeError) Unwrap() error { return e.err }

// createObjectFile converts one XML file and writes its JSON document.
func (s *Service) createObjectFile(xmlFile string) (domain.LocalObject, error) {
	doc, raw, err := sdfxml.ParseFile(xmlFile)
	if err != nil && !errors.Is(err, sdfxml.ErrNoScriptID) {
		return domain.LocalObject{}, err
	}
	id := doc.ScriptID
	if errors.Is(err, sdfxml.ErrNoScriptID) {
		base := filepath.Base(xmlFile)
		id = strings.TrimSuffix(base, filepath.Ext(base))
		s.log.Warn("local.CreateObjects missing scriptid, using file name",
			zap.String("path", xmlFile), zap.String("id", id))
	}

	obj := domain.LocalObject{
		Type:     domain.ObjectType(doc.Type),
		ID:       domain.ScriptID(id),
		XMLFile:  xmlFile,
		JSONFile: s.files.PathFor(xmlFile),
		Checksum: domain.Checksum(crypto.Checksum(raw)),
	}
	if err := s.files.SaveObjectFile(domain.ObjectFile{LocalObject: obj, Object: doc.Body}); err != nil {
		return domain.LocalObject{}, &writeError{err: err}
	}
	s.log.Debug("local.CreateObjects added object", zap.String("type", doc.Type), zap.String("id", id))
	return obj, nil
}
