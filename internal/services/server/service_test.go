package server_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suitedeploy/internal/domain"
	"suitedeploy/internal/services/server"
	"suitedeploy/internal/store"
)

type fakeClient struct {
	list     []domain.ServerObject
	err      error
	imported [][]domain.ScriptID
	deployed []domain.ScriptID
}

func (f *fakeClient) ListObjects(context.Context) ([]domain.ServerObject, error) {
	return f.list, f.err
}

func (f *fakeClient) ImportObjects(_ context.Context, ids ...domain.ScriptID) (string, error) {
	f.imported = append(f.imported, ids)
	return "ok", f.err
}

func (f *fakeClient) DeployObject(_ context.Context, id domain.ScriptID) (string, error) {
	f.deployed = append(f.deployed, id)
	return "ok", f.err
}

func newService(t *testing.T, c *fakeClient) (*server.Service, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "SuiteDeploy", "SDF_CLI")
	return server.New(c, store.NewServerIndexFileStore(dir), nil), dir
}

func TestRetrieveAndCreateIndex(t *testing.T) {
	c := &fakeClient{list: []domain.ServerObject{
		{Type: "workflow", ID: "customworkflow_a"},
		{Type: "customrecordtype", ID: "customrecord_b"},
	}}
	svc, _ := newService(t, c)

	objects, err := svc.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, svc.Count())

	o, ok := svc.Record("customworkflow_a")
	require.True(t, ok, "first entry is found")
	assert.Equal(t, domain.ObjectType("workflow"), o.Type)

	require.NoError(t, svc.CreateIndex(objects))
	raw, err := os.ReadFile(svc.IndexPath())
	require.NoError(t, err)
	assert.JSONEq(t, `{"objects":[
		{"type":"workflow","id":"customworkflow_a"},
		{"type":"customrecordtype","id":"customrecord_b"}
	]}`, string(raw))

	svc.ClearObjects()
	stored, err := svc.Objects()
	require.NoError(t, err)
	assert.Equal(t, objects, stored)
}

func TestRetrieve_Error(t *testing.T) {
	boom := errors.New("boom")
	svc, _ := newService(t, &fakeClient{err: boom})
	require.NoError(t, svc.CreateIndex([]domain.ServerObject{{Type: "workflow", ID: "customworkflow_a"}}))

	_, err := svc.Retrieve(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, svc.Count(), "list is untouched on failure")
}

func TestImportAndDeploy(t *testing.T) {
	c := &fakeClient{}
	svc, _ := newService(t, c)

	require.NoError(t, svc.Import(context.Background(), "customworkflow_a", "customrecord_b"))
	require.NoError(t, svc.Deploy(context.Background(), "customworkflow_a"))

	assert.Equal(t, [][]domain.ScriptID{{"customworkflow_a", "customrecord_b"}}, c.imported)
	assert.Equal(t, []domain.ScriptID{"customworkflow_a"}, c.deployed)
}

func TestReset(t *testing.T) {
	svc, dir := newService(t, &fakeClient{})
	require.NoError(t, svc.CreateIndex([]domain.ServerObject{{Type: "workflow", ID: "customworkflow_a"}}))

	require.NoError(t, svc.Reset())
	assert.Equal(t, 0, svc.Count())
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	objects, err := svc.Objects()
	require.NoError(t, err)
	assert.Empty(t, objects)
}

func TestLoad(t *testing.T) {
	svc, _ := newService(t, &fakeClient{})
	require.NoError(t, svc.CreateIndex([]domain.ServerObject{{Type: "workflow", ID: "customworkflow_a"}}))
	svc.ClearObjects()

	require.NoError(t, svc.Load())
	assert.Equal(t, 1, svc.Count())
}
