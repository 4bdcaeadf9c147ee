package stage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sfstage/internal/domain"
	"sfstage/internal/manifest"
	"sfstage/internal/registry"
)

func newProvider() *OutlineProvider {
	return NewOutlineProvider(registry.New(), manifest.NewGenerator("50.0"))
}

func labels(nodes []*StageNode) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Label)
	}
	return out
}

func TestAddComponent_CreatesTypeGroup(t *testing.T) {
	p := newProvider()

	node := p.AddComponent(domain.Component{FullName: "AccountService", Type: "ApexClass"}, "")

	roots := p.GetChildren(nil)
	require.Len(t, roots, 1)
	group := roots[0]
	assert.Equal(t, "Apex Classes", group.Label)
	assert.Equal(t, "ApexClass", group.TypeName)
	assert.Equal(t, CollapsibleExpanded, group.Collapsible)
	assert.Nil(t, group.Command)

	require.Len(t, group.Children, 1)
	assert.Same(t, node, group.Children[0])
	assert.Same(t, group, p.GetParent(node))
	assert.Same(t, node, p.GetTreeItem(node))
	assert.Equal(t, OpenCommand, node.Command.ID)
	assert.Equal(t, IconRemote, node.Icon)
}

func TestAddComponent_NoDuplicates(t *testing.T) {
	p := newProvider()
	c := domain.Component{FullName: "AccountService", Type: "ApexClass"}

	first := p.AddComponent(c, "")
	second := p.AddComponent(c, "")

	assert.Same(t, first, second)
	assert.Equal(t, 1, p.Len())
	assert.Len(t, p.TypeNode("ApexClass").Children, 1)
}

func TestAddComponent_UnknownTypeUsesName(t *testing.T) {
	p := newProvider()

	p.AddComponent(domain.Component{FullName: "Thing", Type: "SomethingNew"}, "")

	assert.Equal(t, "SomethingNew", p.TypeNode("SomethingNew").Label)
}

func TestRemoveComponent_LastChildRemovesGroup(t *testing.T) {
	p := newProvider()
	a := p.AddComponent(domain.Component{FullName: "A", Type: "ApexClass"}, "")
	b := p.AddComponent(domain.Component{FullName: "B", Type: "ApexClass"}, "")

	p.RemoveComponent(a)
	assert.Nil(t, a.Parent)
	require.NotNil(t, p.TypeNode("ApexClass"))
	assert.Equal(t, []string{"B"}, labels(p.GetChildren(p.TypeNode("ApexClass"))))

	p.RemoveComponent(b)
	assert.Nil(t, p.TypeNode("ApexClass"))
	assert.Empty(t, p.GetChildren(nil))
}

func TestRemoveComponent_TypeGroup(t *testing.T) {
	p := newProvider()
	p.AddComponent(domain.Component{FullName: "A", Type: "ApexClass"}, "")
	p.AddComponent(domain.Component{FullName: "T", Type: "ApexTrigger"}, "")

	p.RemoveComponent(p.TypeNode("ApexClass"))

	assert.Equal(t, []string{"Apex Triggers"}, labels(p.GetChildren(nil)))
}

func TestRemoveComponent_DetachedNodeIsNoop(t *testing.T) {
	p := newProvider()
	p.AddComponent(domain.Component{FullName: "A", Type: "ApexClass"}, "")

	var fired int
	p.OnDidChangeTreeData(func(*StageNode) { fired++ })

	p.RemoveComponent(NewComponentNode("Stray", ""))

	assert.Equal(t, 0, fired)
	assert.Equal(t, 1, p.Len())
}

func TestGetChildren_SortedByLabel(t *testing.T) {
	p := newProvider()
	for _, name := range []string{"zeta", "Alpha", "beta", "Gamma"} {
		p.AddComponent(domain.Component{FullName: name, Type: "ApexClass"}, "")
	}
	p.AddComponent(domain.Component{FullName: "X", Type: "Profile"}, "")
	p.AddComponent(domain.Component{FullName: "X", Type: "ApexTrigger"}, "")

	assert.Equal(t, []string{"Apex Classes", "Apex Triggers", "Profiles"}, labels(p.GetChildren(nil)))
	assert.Equal(t, []string{"Alpha", "beta", "Gamma", "zeta"}, labels(p.GetChildren(p.TypeNode("ApexClass"))))
}

func TestChangeNotifications(t *testing.T) {
	p := newProvider()

	var events []*StageNode
	unsubscribe := p.OnDidChangeTreeData(func(n *StageNode) { events = append(events, n) })

	node := p.AddComponent(domain.Component{FullName: "A", Type: "ApexClass"}, "")
	p.Refresh(node)
	p.RemoveComponent(node)
	p.ClearAll()

	require.Len(t, events, 4)
	assert.Nil(t, events[0])
	assert.Same(t, node, events[1])

	unsubscribe()
	p.AddComponent(domain.Component{FullName: "B", Type: "ApexClass"}, "")
	assert.Len(t, events, 4)
}

func TestListenerMayReadTree(t *testing.T) {
	p := newProvider()

	var seen []string
	p.OnDidChangeTreeData(func(*StageNode) { seen = labels(p.GetChildren(nil)) })

	p.AddComponent(domain.Component{FullName: "A", Type: "ApexClass"}, "")
	assert.Equal(t, []string{"Apex Classes"}, seen)
}

func TestClearAll(t *testing.T) {
	p := newProvider()
	p.AddComponent(domain.Component{FullName: "A", Type: "ApexClass"}, "")

	p.ClearAll()

	assert.Equal(t, 0, p.Len())
	assert.Empty(t, p.GetChildren(nil))
}

func TestComponentsAndRestore(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "A.cls")
	require.NoError(t, os.WriteFile(file, []byte("public class A {}"), 0644))

	p := newProvider()
	var fired int
	p.OnDidChangeTreeData(func(*StageNode) { fired++ })

	p.Restore([]domain.StagedComponent{
		{FullName: "T", Type: "ApexTrigger"},
		{FullName: "B", Type: "ApexClass"},
		{FullName: "A", Type: "ApexClass", FilePath: file},
	})

	assert.Equal(t, 1, fired)
	assert.Equal(t, []domain.StagedComponent{
		{FullName: "A", Type: "ApexClass", FilePath: file},
		{FullName: "B", Type: "ApexClass"},
		{FullName: "T", Type: "ApexTrigger"},
	}, p.Components())
	assert.NotNil(t, p.Find(domain.Component{FullName: "B", Type: "ApexClass"}))
	assert.Nil(t, p.Find(domain.Component{FullName: "C", Type: "ApexClass"}))
}

func TestCreateManifest(t *testing.T) {
	p := newProvider()
	p.AddComponent(domain.Component{FullName: "B", Type: "ApexClass"}, "")
	p.AddComponent(domain.Component{FullName: "A", Type: "apexclass"}, "")

	output := filepath.Join(t.TempDir(), "manifest", "package.xml")
	require.NoError(t, p.CreateManifest(output))

	components, version, err := manifest.ParseFile(output)
	require.NoError(t, err)
	assert.Equal(t, "50.0", version)
	assert.ElementsMatch(t, []domain.Component{
		{FullName: "A", Type: "ApexClass"},
		{FullName: "B", Type: "ApexClass"},
	}, components)
}

func TestCreateManifest_EmptyStageWritesNothing(t *testing.T) {
	p := newProvider()
	output := filepath.Join(t.TempDir(), "package.xml")

	require.NoError(t, p.CreateManifest(output))

	_, err := os.Stat(output)
	assert.True(t, os.IsNotExist(err))
}

func TestCreateManifest_UnknownType(t *testing.T) {
	p := newProvider()
	p.AddComponent(domain.Component{FullName: "X", Type: "NotAType"}, "")
	output := filepath.Join(t.TempDir(), "package.xml")

	err := p.CreateManifest(output)
	assert.ErrorIs(t, err, registry.ErrUnknownType)

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr))
}
