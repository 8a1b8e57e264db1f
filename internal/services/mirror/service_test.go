package mirror_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"suitedeploy/internal/domain"
	"suitedeploy/internal/services/local"
	"suitedeploy/internal/services/mirror"
	"suitedeploy/internal/services/server"
	"suitedeploy/internal/shell"
	"suitedeploy/internal/store"
)

type fakeClient struct {
	mu       sync.Mutex
	list     []domain.ServerObject
	listErr  error
	cmdErr   error
	imported [][]domain.ScriptID
	deployed []domain.ScriptID
	// onImport runs before an import returns, standing in for the files the
	// CLI writes.
	onImport func(ids []domain.ScriptID)
}

func (f *fakeClient) ListObjects(context.Context) ([]domain.ServerObject, error) {
	return f.list, f.listErr
}

func (f *fakeClient) ImportObjects(_ context.Context, ids ...domain.ScriptID) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cmdErr != nil {
		return "", f.cmdErr
	}
	f.imported = append(f.imported, ids)
	if f.onImport != nil {
		f.onImport(ids)
	}
	return "", nil
}

func (f *fakeClient) DeployObject(_ context.Context, id domain.ScriptID) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cmdErr != nil {
		return "", f.cmdErr
	}
	f.deployed = append(f.deployed, id)
	return "", nil
}

type host struct {
	mu            sync.Mutex
	infos, errors []string
	status        string
	localViews    int
	serverViews   int
}

func (h *host) Info(msg string)  { h.mu.Lock(); h.infos = append(h.infos, msg); h.mu.Unlock() }
func (h *host) Error(msg string) { h.mu.Lock(); h.errors = append(h.errors, msg); h.mu.Unlock() }
func (h *host) SetText(t string) { h.mu.Lock(); h.status = t; h.mu.Unlock() }

type view struct{ n *int }

func (v view) Refresh() { *v.n++ }

type fixture struct {
	objectsDir     string
	suiteDeployDir string
	client         *fakeClient
	local          *local.Service
	server         *server.Service
	host           *host
	logs           *observer.ObservedLogs
	svc            *mirror.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	src := filepath.Join(t.TempDir(), "src")
	f := &fixture{
		objectsDir:     filepath.Join(src, "Objects"),
		suiteDeployDir: filepath.Join(src, "SuiteDeploy"),
		client:         &fakeClient{},
		host:           &host{},
	}
	require.NoError(t, os.MkdirAll(f.objectsDir, 0o755))

	core, logs := observer.New(zap.DebugLevel)
	f.logs = logs
	log := zap.New(core)

	localCache := filepath.Join(f.suiteDeployDir, "Objects")
	serverCache := filepath.Join(f.suiteDeployDir, "SDF_CLI")
	f.local = local.New(f.objectsDir, store.NewLocalIndexFileStore(localCache), store.NewObjectFileStore(localCache),
		local.Options{Workers: 2, Logger: log})
	f.server = server.New(f.client, store.NewServerIndexFileStore(serverCache), log)
	f.svc = mirror.New(f.local, f.server, mirror.Options{
		SuiteDeployDir: f.suiteDeployDir,
		Logger:         log,
		Notifier:       f.host,
		StatusBar:      f.host,
		LocalView:      view{&f.host.localViews},
		ServerView:     view{&f.host.serverViews},
	})
	return f
}

func (f *fixture) writeObject(t *testing.T, typ, id string) {
	t.Helper()
	body := "<" + typ + ` scriptid="` + id + `"><name>` + id + "</name></" + typ + ">"
	require.NoError(t, os.WriteFile(filepath.Join(f.objectsDir, id+".xml"), []byte(body), 0o644))
}

func TestProcessLocalObjects(t *testing.T) {
	f := newFixture(t)
	f.writeObject(t, "workflow", "customworkflow_a")
	f.writeObject(t, "customrecordtype", "customrecord_b")

	summary, err := f.svc.ProcessLocalObjects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Objects)

	assert.FileExists(t, f.local.IndexPath())
	assert.Equal(t, 2, f.local.Count())
	assert.Equal(t, "SuiteDeploy 2", f.host.status)
	assert.Equal(t, 1, f.host.localViews)
	assert.Equal(t, []string{mirror.MsgProcessed}, f.host.infos)
	assert.Equal(t, 1, f.logs.FilterMessage("mirror.ProcessLocalObjects initiated.").Len())
}

// blockingLocal holds CreateObjects open until release is closed.
type blockingLocal struct {
	*local.Service
	entered chan struct{}
	release chan struct{}
	scans   int
}

func (b *blockingLocal) CreateObjects(ctx context.Context) (domain.ScanSummary, error) {
	b.scans++
	close(b.entered)
	<-b.release
	return b.Service.CreateObjects(ctx)
}

func TestProcessLocalObjects_SkipsConcurrentScan(t *testing.T) {
	f := newFixture(t)
	f.writeObject(t, "workflow", "customworkflow_a")

	blocking := &blockingLocal{Service: f.local, entered: make(chan struct{}), release: make(chan struct{})}
	h := &host{}
	svc := mirror.New(blocking, f.server, mirror.Options{Notifier: h, StatusBar: h})

	done := make(chan error, 1)
	go func() {
		_, err := svc.ProcessLocalObjects(context.Background())
		done <- err
	}()
	<-blocking.entered

	before, beforeErr := os.ReadFile(f.local.IndexPath())
	summary, err := svc.ProcessLocalObjects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.ScanSummary{}, summary)

	after, afterErr := os.ReadFile(f.local.IndexPath())
	assert.Equal(t, before, after, "index untouched by the skipped scan")
	assert.Equal(t, os.IsNotExist(beforeErr), os.IsNotExist(afterErr))
	h.mu.Lock()
	assert.Equal(t, []string{shell.BusyMessage}, h.infos)
	h.mu.Unlock()

	close(blocking.release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, blocking.scans)
	assert.Equal(t, 1, f.local.Count())
	assert.FileExists(t, f.local.IndexPath())
}

func TestProcessLocalObjects_KeepsServerCache(t *testing.T) {
	f := newFixture(t)
	f.client.list = []domain.ServerObject{{Type: "workflow", ID: "customworkflow_a"}}
	require.NoError(t, f.svc.RetrieveServerObjects(context.Background()))

	_, err := f.svc.ProcessLocalObjects(context.Background())
	require.NoError(t, err)
	assert.FileExists(t, f.server.IndexPath())
	assert.Equal(t, "SuiteDeploy 0 / 1", f.host.status)
}

func TestProcessLocalObjects_Failure(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.RemoveAll(f.objectsDir))

	_, err := f.svc.ProcessLocalObjects(context.Background())
	require.Error(t, err)
	assert.Len(t, f.host.errors, 1)
	assert.Equal(t, 1, f.logs.FilterLevelExact(zap.ErrorLevel).Len())
}

func TestRetrieveServerObjects(t *testing.T) {
	f := newFixture(t)
	f.client.list = []domain.ServerObject{
		{Type: "workflow", ID: "customworkflow_a"},
		{Type: "customrecordtype", ID: "customrecord_b"},
	}

	require.NoError(t, f.svc.RetrieveServerObjects(context.Background()))
	assert.Equal(t, 2, f.server.Count())
	assert.Equal(t, "SuiteDeploy 0 / 2", f.host.status)
	assert.Equal(t, 1, f.host.serverViews)
	assert.Equal(t, []string{mirror.MsgRetrieveTriggered, mirror.MsgRetrieveFinished}, f.host.infos)

	raw, err := os.ReadFile(f.server.IndexPath())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "customrecord_b")
}

func TestRetrieveServerObjects_BusyLeavesIndex(t *testing.T) {
	f := newFixture(t)
	f.client.list = []domain.ServerObject{{Type: "workflow", ID: "customworkflow_a"}}
	require.NoError(t, f.svc.RetrieveServerObjects(context.Background()))
	before, err := os.ReadFile(f.server.IndexPath())
	require.NoError(t, err)

	f.client.listErr = shell.ErrBusy
	require.NoError(t, f.svc.RetrieveServerObjects(context.Background()))

	after, err := os.ReadFile(f.server.IndexPath())
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, 1, f.server.Count())
	assert.Empty(t, f.host.errors)
}

func TestRetrieveServerObjects_Failure(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("not authenticated")
	f.client.listErr = boom

	err := f.svc.RetrieveServerObjects(context.Background())
	assert.ErrorIs(t, err, boom)
	require.Len(t, f.host.errors, 1)
	assert.Contains(t, f.host.errors[0], "not authenticated")
}

func TestImportObject(t *testing.T) {
	f := newFixture(t)
	f.client.onImport = func(ids []domain.ScriptID) {
		for _, id := range ids {
			f.writeObject(t, "workflow", string(id))
		}
	}

	require.NoError(t, f.svc.ImportObject(context.Background(), "customworkflow_a"))
	assert.Equal(t, [][]domain.ScriptID{{"customworkflow_a"}}, f.client.imported)

	_, ok := f.local.Record("customworkflow_a")
	assert.True(t, ok, "local objects are re-processed after the import")
	assert.Equal(t, mirror.MsgImportFinished, f.host.infos[len(f.host.infos)-1])
}

func TestImportObject_Busy(t *testing.T) {
	f := newFixture(t)
	f.client.cmdErr = shell.ErrBusy

	require.NoError(t, f.svc.ImportObject(context.Background(), "customworkflow_a"))
	assert.NotContains(t, f.host.infos, mirror.MsgImportFinished)
	assert.NoFileExists(t, f.local.IndexPath())
}

func TestDeployObject(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.svc.DeployObject(context.Background(), "customworkflow_a"))
	assert.Equal(t, []domain.ScriptID{"customworkflow_a"}, f.client.deployed)
	assert.Contains(t, f.host.infos, mirror.MsgDeployFinished)

	f.client.cmdErr = errors.New("deploy failed")
	assert.Error(t, f.svc.DeployObject(context.Background(), "customworkflow_a"))
}

func TestVerify(t *testing.T) {
	f := newFixture(t)
	f.writeObject(t, "workflow", "customworkflow_a")
	f.writeObject(t, "customrecordtype", "customrecord_b")
	_, err := f.svc.ProcessLocalObjects(context.Background())
	require.NoError(t, err)

	// The deployed object is the first one on the account.
	f.client.list = []domain.ServerObject{
		{Type: "workflow", ID: "customworkflow_a"},
		{Type: "savedsearch", ID: "customsearch_c"},
	}

	report, err := f.svc.Verify(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.ServerCount)
	assert.Equal(t, []domain.ScriptID{"customworkflow_a"}, report.Deployed)
	assert.Equal(t, []domain.ScriptID{"customrecord_b"}, report.Undeployed)
	assert.True(t, report.Imported)
	assert.Equal(t, [][]domain.ScriptID{{"customworkflow_a"}}, f.client.imported)

	a, _ := f.local.Record("customworkflow_a")
	b, _ := f.local.Record("customrecord_b")
	assert.True(t, a.IsDeployed())
	assert.True(t, b.IsUndeployed())

	assert.Equal(t, 1, f.logs.FilterMessage("    DEPLOYED: customworkflow_a.").Len())
	assert.Equal(t, 1, f.logs.FilterMessage("NOT deployed: customrecord_b.").Len())
	assert.Equal(t, "SuiteDeploy 2 / 2", f.host.status)
	assert.Contains(t, f.host.infos, mirror.MsgVerifyStarted)
	assert.Contains(t, f.host.infos, mirror.MsgVerifyFinished)
}

func TestVerify_NothingDeployedSkipsImport(t *testing.T) {
	f := newFixture(t)
	f.writeObject(t, "workflow", "customworkflow_a")
	_, err := f.svc.ProcessLocalObjects(context.Background())
	require.NoError(t, err)

	report, err := f.svc.Verify(context.Background())
	require.NoError(t, err)
	assert.False(t, report.Imported)
	assert.Empty(t, f.client.imported)
	assert.Equal(t, []domain.ScriptID{"customworkflow_a"}, report.Undeployed)
}

func TestVerify_Busy(t *testing.T) {
	f := newFixture(t)
	f.client.listErr = shell.ErrBusy

	report, err := f.svc.Verify(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Skipped)
	assert.NotContains(t, f.host.infos, mirror.MsgVerifyFinished)
}

func TestReset(t *testing.T) {
	f := newFixture(t)
	f.writeObject(t, "workflow", "customworkflow_a")
	f.client.list = []domain.ServerObject{{Type: "workflow", ID: "customworkflow_a"}}
	_, err := f.svc.ProcessLocalObjects(context.Background())
	require.NoError(t, err)
	require.NoError(t, f.svc.RetrieveServerObjects(context.Background()))

	require.NoError(t, f.svc.Reset())
	assert.NoDirExists(t, f.suiteDeployDir)
	assert.Equal(t, 0, f.local.Count())
	assert.Equal(t, 0, f.server.Count())
	assert.Equal(t, "SuiteDeploy 0", f.host.status)
	assert.Equal(t, mirror.MsgReset, f.host.infos[len(f.host.infos)-1])
}

func TestResetLocalAndServer(t *testing.T) {
	f := newFixture(t)
	f.writeObject(t, "workflow", "customworkflow_a")
	f.client.list = []domain.ServerObject{{Type: "workflow", ID: "customworkflow_a"}}
	_, err := f.svc.ProcessLocalObjects(context.Background())
	require.NoError(t, err)
	require.NoError(t, f.svc.RetrieveServerObjects(context.Background()))

	require.NoError(t, f.svc.ResetLocal())
	assert.Equal(t, "SuiteDeploy 0 / 1", f.host.status)
	assert.NoFileExists(t, f.local.IndexPath())
	assert.FileExists(t, f.server.IndexPath())

	require.NoError(t, f.svc.ResetServer())
	assert.Equal(t, "SuiteDeploy 0", f.host.status)
	assert.Contains(t, f.host.infos, mirror.MsgLocalReset)
	assert.Contains(t, f.host.infos, mirror.MsgServerReset)
}

func TestStatusText(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, "SuiteDeploy 0", f.svc.StatusText())

	require.NoError(t, f.local.CreateIndex([]domain.LocalObject{{Type: "workflow", ID: "a"}, {Type: "workflow", ID: "b"}}))
	assert.Equal(t, "SuiteDeploy 2", f.svc.StatusText())

	require.NoError(t, f.server.CreateIndex([]domain.ServerObject{{Type: "workflow", ID: "a"}}))
	assert.Equal(t, "SuiteDeploy 2 / 1", f.svc.StatusText())
}
