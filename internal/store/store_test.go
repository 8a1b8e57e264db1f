package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suitedeploy/internal/domain"
	"suitedeploy/internal/store"
)

func TestLocalIndex_SaveLoad_OK(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "SuiteDeploy", "Objects")
	var s domain.LocalIndexStore = store.NewLocalIndexFileStore(dir)

	objects := []domain.LocalObject{
		{Type: "customrecordtype", ID: "customrecord_a", XMLFile: "a.xml", JSONFile: "a.json"},
		{Type: "workflow", ID: "customworkflow_b", Deployed: domain.Bool(false)},
	}
	require.NoError(t, s.SaveLocalIndex(objects))

	got, ok, err := s.LoadLocalIndex()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, objects, got)
	assert.Equal(t, filepath.Join(dir, "index.json"), s.Path())
}

func TestLocalIndex_Missing_NotAnError(t *testing.T) {
	s := store.NewLocalIndexFileStore(t.TempDir())

	got, ok, err := s.LoadLocalIndex()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, got)
}

func TestLocalIndex_NilWrittenAsEmptyList(t *testing.T) {
	dir := t.TempDir()
	s := store.NewLocalIndexFileStore(dir)
	require.NoError(t, s.SaveLocalIndex(nil))

	raw, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.JSONEq(t, `{"objects": []}`, string(raw))
}

func TestLocalIndex_Corrupt_Fails(t *testing.T) {
	dir := t.TempDir()
	s := store.NewLocalIndexFileStore(dir)
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0o644))

	_, ok, err := s.LoadLocalIndex()
	assert.True(t, ok)
	assert.Error(t, err)
}

func TestServerIndex_UsesObjectsEnvelope(t *testing.T) {
	dir := t.TempDir()
	var s domain.ServerIndexStore = store.NewServerIndexFileStore(dir)

	objects := []domain.ServerObject{{Type: "savedsearch", ID: "customsearch_x"}}
	require.NoError(t, s.SaveServerIndex(objects))

	raw, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.JSONEq(t, `{"objects":[{"type":"savedsearch","id":"customsearch_x"}]}`, string(raw))

	got, ok, err := s.LoadServerIndex()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, objects, got)
}

func TestObjectFile_PathForAndSave(t *testing.T) {
	dir := t.TempDir()
	s := store.NewObjectFileStore(dir)

	path := s.PathFor("/ws/src/Objects/customrecord_a.xml")
	assert.Equal(t, filepath.Join(dir, "customrecord_a.json"), path)

	file := domain.ObjectFile{
		LocalObject: domain.LocalObject{
			Type:    "customrecordtype",
			ID:      "customrecord_a",
			XMLFile: "/ws/src/Objects/customrecord_a.xml",
		},
		Object: map[string]any{"customrecordtype": map[string]any{"scriptid": "customrecord_a"}},
	}
	require.NoError(t, s.SaveObjectFile(file))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "customrecordtype",
		"id": "customrecord_a",
		"xmlFile": "/ws/src/Objects/customrecord_a.xml",
		"jsonFile": "",
		"object": {"customrecordtype": {"scriptid": "customrecord_a"}}
	}`, string(raw))
}
