package mirror

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"

	"suitedeploy/internal/domain"
	"suitedeploy/internal/shell"
)

// User-facing messages.
const (
	MsgProcessed         = "SuiteDeploy has processed local objects."
	MsgRetrieveTriggered = "SuiteDeploy retrieve objects has been triggered."
	MsgRetrieveFinished  = "SuiteDeploy retrieve objects has finished."
	MsgImportFinished    = "SuiteDeploy import object has finished."
	MsgDeployFinished    = "SuiteDeploy deploy object has finished."
	MsgVerifyStarted     = "SuiteDeploy verification initiated."
	MsgVerifyFinished    = "SuiteDeploy verification finished."
	MsgReset             = "SuiteDeploy has been reset."
	MsgLocalReset        = "NetSuite local objects have been refreshed."
	MsgServerReset       = "NetSuite server objects have been refreshed."
)

// OpError is returned by operations whose failure has already been logged
// and shown to the user.
type OpError struct {
	Op  string
	Err error
}

func (e *OpError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *OpError) Unwrap() error { return e.Err }

// Options carries the host surfaces the service keeps up to date. Any of
// them may be nil.
type Options struct {
	// SuiteDeployDir holds both caches and is removed by Reset.
	SuiteDeployDir string
	Logger         *zap.Logger
	Notifier       domain.Notifier
	StatusBar      domain.StatusBar
	LocalView      domain.View
	ServerView     domain.View
}

// Service orchestrates the local and server object services.
type Service struct {
	local  domain.LocalObjectService
	server domain.ServerObjectService
	dir    string

	log      *zap.Logger
	notifier domain.Notifier
	status   domain.StatusBar
	views    struct{ local, server domain.View }

	// scanning guards ProcessLocalObjects, which never reaches the shell.
	scanning sync.Mutex
}

func New(local domain.LocalObjectService, server domain.ServerObjectService, opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	s := &Service{
		local:    local,
		server:   server,
		dir:      opts.SuiteDeployDir,
		log:      log.Named("mirror"),
		notifier: opts.Notifier,
		status:   opts.StatusBar,
	}
	s.views.local = opts.LocalView
	s.views.server = opts.ServerView
	return s
}

// StatusText is "SuiteDeploy <local>", or "SuiteDeploy <local> / <server>"
// once server objects have been retrieved.
func (s *Service) StatusText() string {
	return statusText(s.local.Count(), s.server.Count())
}

func statusText(local, server int) string {
	if server > 0 {
		return fmt.Sprintf("SuiteDeploy %d / %d", local, server)
	}
	return fmt.Sprintf("SuiteDeploy %d", local)
}

// ProcessLocalObjects rebuilds the local cache and index from the SDF
// objects directory.
func (s *Service) ProcessLocalObjects(ctx context.Context) (domain.ScanSummary, error) {
	const op = "mirror.ProcessLocalObjects"
	if !s.scanning.TryLock() {
		s.skip(op)
		return domain.ScanSummary{}, nil
	}
	defer s.scanning.Unlock()

	s.log.Info(op + " initiated.")
	summary, err := s.processLocalObjects(ctx)
	if err != nil {
		return summary, s.fail(op, err)
	}
	s.log.Info(op+" finished.", zap.Int("objects", summary.Objects))
	s.info(MsgProcessed)
	return summary, nil
}

func (s *Service) processLocalObjects(ctx context.Context) (domain.ScanSummary, error) {
	if err := s.local.Reset(); err != nil {
		return domain.ScanSummary{}, err
	}
	summary, err := s.local.CreateObjects(ctx)
	if err != nil {
		return summary, err
	}
	objects, err := s.local.Objects()
	if err != nil {
		return summary, err
	}
	if err := s.local.CreateIndex(objects); err != nil {
		return summary, err
	}
	s.refresh(s.views.local)
	s.updateStatus()
	return summary, nil
}

// RetrieveServerObjects replaces the server index with what the account
// reports.
func (s *Service) RetrieveServerObjects(ctx context.Context) error {
	const op = "mirror.RetrieveServerObjects"
	s.info(MsgRetrieveTriggered)
	s.log.Info(op + " initiated.")

	skipped, err := s.retrieveServerObjects(ctx)
	if err != nil {
		return s.fail(op, err)
	}
	if skipped {
		s.log.Info(op + " skipped.")
		return nil
	}
	s.log.Info(op+" finished.", zap.Int("objects", s.server.Count()))
	s.info(MsgRetrieveFinished)
	return nil
}

// retrieveServerObjects lists first so a busy shell leaves the existing
// index in place.
func (s *Service) retrieveServerObjects(ctx context.Context) (skipped bool, err error) {
	objects, err := s.server.Retrieve(ctx)
	if errors.Is(err, shell.ErrBusy) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	if err := s.server.Reset(); err != nil {
		return false, err
	}
	if err := s.server.CreateIndex(objects); err != nil {
		return false, err
	}
	s.refresh(s.views.server)
	s.updateStatus()
	return false, nil
}

// ImportObject imports id from the account and re-processes local objects.
func (s *Service) ImportObject(ctx context.Context, id domain.ScriptID) error {
	const op = "mirror.ImportObject"
	s.info(fmt.Sprintf("SuiteDeploy import object %q has been triggered.", id))
	log := s.log.With(zap.String("id", id.String()))
	log.Info(op + " initiated.")

	err := s.server.Import(ctx, id)
	if errors.Is(err, shell.ErrBusy) {
		log.Info(op + " skipped.")
		return nil
	}
	if err != nil {
		return s.fail(op, err)
	}
	if _, err := s.ProcessLocalObjects(ctx); err != nil {
		return err
	}
	log.Info(op + " finished.")
	s.info(MsgImportFinished)
	return nil
}

// DeployObject deploys the local copy of id to the account.
func (s *Service) DeployObject(ctx context.Context, id domain.ScriptID) error {
	const op = "mirror.DeployObject"
	s.info(fmt.Sprintf("SuiteDeploy deploy object %q has been triggered.", id))
	log := s.log.With(zap.String("id", id.String()))
	log.Info(op + " initiated.")

	err := s.server.Deploy(ctx, id)
	if errors.Is(err, shell.ErrBusy) {
		log.Info(op + " skipped.")
		return nil
	}
	if err != nil {
		return s.fail(op, err)
	}
	log.Info(op + " finished.")
	s.info(MsgDeployFinished)
	return nil
}

// Verify retrieves the server objects, marks every local object deployed or
// not deployed and re-imports the deployed ones.
func (s *Service) Verify(ctx context.Context) (domain.VerifyReport, error) {
	const op = "mirror.Verify"
	var report domain.VerifyReport
	s.info(MsgVerifyStarted)
	s.log.Info(op + " initiated.")

	skipped, err := s.retrieveServerObjects(ctx)
	if err != nil {
		return report, s.fail(op, err)
	}
	if skipped {
		report.Skipped = true
		s.log.Info(op + " skipped.")
		return report, nil
	}
	report.ServerCount = s.server.Count()

	locals, err := s.local.Objects()
	if err != nil {
		return report, s.fail(op, err)
	}
	if s.local.Count() == 0 && len(locals) > 0 {
		// Seed the in-memory list so the field update below finds every id.
		if err := s.local.CreateIndex(locals); err != nil {
			return report, s.fail(op, err)
		}
	}

	values := make([]domain.FieldValue, 0, len(locals))
	for _, o := range locals {
		_, deployed := s.server.Record(o.ID)
		if deployed {
			report.Deployed = append(report.Deployed, o.ID)
			s.log.Info(fmt.Sprintf("    DEPLOYED: %s.", o.ID))
		} else {
			report.Undeployed = append(report.Undeployed, o.ID)
			s.log.Info(fmt.Sprintf("NOT deployed: %s.", o.ID))
		}
		values = append(values, domain.FieldValue{ID: o.ID, Value: deployed})
	}
	if len(values) > 0 {
		if err := s.local.UpdateObjectFields(domain.FieldDeployed, values); err != nil {
			return report, s.fail(op, err)
		}
	}

	if len(report.Deployed) > 0 {
		s.log.Info(op+" importing deployed objects", zap.Int("objects", len(report.Deployed)))
		err := s.server.Import(ctx, report.Deployed...)
		switch {
		case errors.Is(err, shell.ErrBusy):
			s.log.Info(op + " import skipped.")
		case err != nil:
			return report, s.fail(op, err)
		default:
			report.Imported = true
		}
	}

	s.refresh(s.views.local)
	s.updateStatus()
	s.log.Info(op+" finished.", zap.Int("deployed", len(report.Deployed)), zap.Int("undeployed", len(report.Undeployed)))
	s.info(MsgVerifyFinished)
	return report, nil
}

// Reset clears both lists and removes the whole SuiteDeploy directory.
func (s *Service) Reset() error {
	const op = "mirror.Reset"
	s.log.Info(op + " initiated.")
	s.local.ClearObjects()
	s.server.ClearObjects()
	if s.dir != "" {
		if err := os.RemoveAll(s.dir); err != nil {
			return s.fail(op, fmt.Errorf("remove %s: %w", s.dir, err))
		}
	}
	s.refresh(s.views.local)
	s.refresh(s.views.server)
	s.updateStatus()
	s.log.Info(op + " finished.")
	s.info(MsgReset)
	return nil
}

// ResetLocal clears the local list and cache.
func (s *Service) ResetLocal() error {
	const op = "mirror.ResetLocal"
	s.log.Info(op + " initiated.")
	if err := s.local.Reset(); err != nil {
		return s.fail(op, err)
	}
	s.refresh(s.views.local)
	s.updateStatus()
	s.log.Info(op + " finished.")
	s.info(MsgLocalReset)
	return nil
}

// ResetServer clears the server list and cache.
func (s *Service) ResetServer() error {
	const op = "mirror.ResetServer"
	s.log.Info(op + " initiated.")
	if err := s.server.Reset(); err != nil {
		return s.fail(op, err)
	}
	s.refresh(s.views.server)
	s.updateStatus()
	s.log.Info(op + " finished.")
	s.info(MsgServerReset)
	return nil
}

func (s *Service) updateStatus() {
	if s.status != nil {
		s.status.SetText(s.StatusText())
	}
}

func (s *Service) refresh(v domain.View) {
	if v != nil {
		v.Refresh()
	}
}

func (s *Service) info(msg string) {
	if s.notifier != nil {
		s.notifier.Info(msg)
	}
}

func (s *Service) skip(op string) {
	s.log.Info(op + " skipped.")
	s.info(shell.BusyMessage)
}

// fail logs err against op, tells the user and returns it wrapped.
func (s *Service) fail(op string, err error) error {
	s.log.Error(op+": "+err.Error(), zap.Error(err))
	if s.notifier != nil {
		s.notifier.Error(op + ": " + err.Error())
	}
	return &OpError{Op: op, Err: err}
}
