package tree_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suitedeploy/internal/domain"
	"suitedeploy/internal/tree"
)

type localSource struct {
	objects []domain.LocalObject
	err     error
}

func (s localSource) IndexPath() string                      { return "/ws/src/SuiteDeploy/Objects/index.json" }
func (s localSource) Objects() ([]domain.LocalObject, error) { return s.objects, s.err }

type serverSource struct{ objects []domain.ServerObject }

func (s serverSource) IndexPath() string                       { return "/ws/src/SuiteDeploy/SDF_CLI/index.json" }
func (s serverSource) Objects() ([]domain.ServerObject, error) { return s.objects, nil }

func TestLocalProvider_Root(t *testing.T) {
	p := tree.NewLocalProvider(localSource{objects: []domain.LocalObject{
		{Type: "workflow", ID: "customworkflow_a"},
		{Type: "customrecordtype", ID: "customrecord_b"},
		{Type: "workflow", ID: "customworkflow_c"},
	}})

	got, err := p.Children(nil)
	require.NoError(t, err)

	want := []tree.Node{
		{
			Label:    "INDEX",
			ID:       "index",
			Tooltip:  "Main index.",
			Context:  "index",
			Command:  tree.Command{Name: tree.CommandOpenFile, Args: []string{"/ws/src/SuiteDeploy/Objects/index.json"}},
			JSONFile: "/ws/src/SuiteDeploy/Objects/index.json",
		},
		{Label: "customrecordtype", ID: "customrecordtype", Tooltip: "customrecordtype", Context: "objType", Collapsible: true, Command: tree.Command{Name: tree.CommandShowJSON}},
		{Label: "workflow", ID: "workflow", Tooltip: "workflow", Context: "objType", Collapsible: true, Command: tree.Command{Name: tree.CommandShowJSON}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("root nodes mismatch (-want +got):\n%s", diff)
	}
}

func TestLocalProvider_Leaves(t *testing.T) {
	p := tree.NewLocalProvider(localSource{objects: []domain.LocalObject{
		{Type: "workflow", ID: "customworkflow_a", XMLFile: "/ws/src/Objects/customworkflow_a.xml", JSONFile: "/c/customworkflow_a.json", Deployed: domain.Bool(true)},
		{Type: "customrecordtype", ID: "customrecord_b"},
		{Type: "workflow", ID: "customworkflow_c", XMLFile: "/ws/src/Objects/customworkflow_c.xml", Deployed: domain.Bool(false)},
		{Type: "workflow", ID: "customworkflow_d", XMLFile: "/ws/src/Objects/customworkflow_d.xml"},
	}})

	parent := tree.Node{ID: "workflow", Context: tree.ContextObjectType, Collapsible: true}
	got, err := p.Children(&parent)
	require.NoError(t, err)

	want := []tree.Node{
		{
			Label: "(D) customworkflow_a", ID: "customworkflow_a", Tooltip: "(DEPLOYED) customworkflow_a", Context: "object",
			Command: tree.Command{Name: tree.CommandOpenFile, Args: []string{"/ws/src/Objects/customworkflow_a.xml"}},
			XMLFile: "/ws/src/Objects/customworkflow_a.xml", JSONFile: "/c/customworkflow_a.json",
		},
		{
			Label: "(Undeployed) customworkflow_c", ID: "customworkflow_c", Tooltip: "(Undeployed) customworkflow_c", Context: "object",
			Command: tree.Command{Name: tree.CommandOpenFile, Args: []string{"/ws/src/Objects/customworkflow_c.xml"}},
			XMLFile: "/ws/src/Objects/customworkflow_c.xml",
		},
		{
			Label: "customworkflow_d", ID: "customworkflow_d", Tooltip: "workflow  (id: customworkflow_d)", Context: "object",
			Command: tree.Command{Name: tree.CommandOpenFile, Args: []string{"/ws/src/Objects/customworkflow_d.xml"}},
			XMLFile: "/ws/src/Objects/customworkflow_d.xml",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("leaf nodes mismatch (-want +got):\n%s", diff)
	}

	leaf := got[0]
	none, err := p.Children(&leaf)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestLocalProvider_EmptyIndex(t *testing.T) {
	p := tree.NewLocalProvider(localSource{})
	got, err := p.Children(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLocalProvider_Error(t *testing.T) {
	p := tree.NewLocalProvider(localSource{err: errors.New("corrupt index")})
	_, err := p.Children(nil)
	assert.ErrorContains(t, err, "corrupt index")
}

func TestServerProvider(t *testing.T) {
	p := tree.NewServerProvider(serverSource{objects: []domain.ServerObject{
		{Type: "workflow", ID: "customworkflow_a"},
		{Type: "savedsearch", ID: "customsearch_b"},
	}})

	roots, err := p.Children(nil)
	require.NoError(t, err)
	require.Len(t, roots, 3)
	assert.Equal(t, "INDEX", roots[0].Label)
	assert.Equal(t, []string{"/ws/src/SuiteDeploy/SDF_CLI/index.json"}, roots[0].Command.Args)
	assert.Equal(t, "savedsearch", roots[1].ID)
	assert.Equal(t, "workflow", roots[2].ID)

	leaves, err := p.Children(&roots[2])
	require.NoError(t, err)
	want := []tree.Node{{Label: "customworkflow_a", ID: "customworkflow_a", Tooltip: "workflow  (id: customworkflow_a)", Context: "obj"}}
	if diff := cmp.Diff(want, leaves); diff != "" {
		t.Fatalf("server leaves mismatch (-want +got):\n%s", diff)
	}
}

func TestRefreshNotifiesSubscribers(t *testing.T) {
	p := tree.NewLocalProvider(localSource{})
	var a, b int
	unsubscribe := p.Subscribe(func() { a++ })
	p.Subscribe(func() { b++ })

	p.Refresh()
	unsubscribe()
	p.Refresh()

	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
}

func TestLocalProvider_ChecksumDescription(t *testing.T) {
	p := tree.NewLocalProvider(localSource{objects: []domain.LocalObject{
		{Type: "workflow", ID: "customworkflow_a", Checksum: "0123456789abcdef0123456789abcdef"},
	}})

	parent := tree.Node{ID: "workflow", Context: tree.ContextObjectType, Collapsible: true}
	got, err := p.Children(&parent)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "0123456789ab", got[0].Description)
	assert.Equal(t, "workflow  (id: customworkflow_a)", got[0].Tooltip)

	out, err := tree.Render("Local objects", p, tree.Styles{})
	require.NoError(t, err)
	assert.Contains(t, out, "customworkflow_a 0123456789ab")
}

func TestRender(t *testing.T) {
	p := tree.NewLocalProvider(localSource{objects: []domain.LocalObject{
		{Type: "workflow", ID: "customworkflow_a", Deployed: domain.Bool(true)},
		{Type: "customrecordtype", ID: "customrecord_b"},
	}})

	out, err := tree.Render("Local objects", p, tree.Styles{})
	require.NoError(t, err)

	assert.Contains(t, out, "Local objects")
	assert.Contains(t, out, "INDEX")
	assert.Contains(t, out, "(D) customworkflow_a")
	assert.Less(t, strings.Index(out, "customrecordtype"), strings.Index(out, "workflow"))
	assert.Less(t, strings.Index(out, "customrecordtype"), strings.Index(out, "customrecord_b"))
}
