package ui

import (
	"testing"

	"github.com/rivo/tview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sfstage/internal/domain"
	"sfstage/internal/stage"
)

func texts(nodes []*tview.TreeNode) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.GetText())
	}
	return out
}

func TestBuildTreeNodes(t *testing.T) {
	dir := t.TempDir()
	p := stagedProvider(t, dir)

	root := BuildTreeNodes(p)
	assert.Equal(t, "Staged Components (3)", root.GetText())

	groups := root.GetChildren()
	assert.Equal(t, []string{"Apex Classes (2)", "Lightning Web Components (1)"}, texts(groups))
	assert.True(t, groups[0].IsExpanded())

	classes := groups[0].GetChildren()
	assert.Equal(t, []string{remoteMarker + " Bar", localMarker + " Foo"}, texts(classes))

	ref, ok := classes[1].GetReference().(*stage.StageNode)
	require.True(t, ok)
	assert.Same(t, p.Find(domain.Component{FullName: "Foo", Type: "ApexClass"}), ref)
}

func TestFindNode(t *testing.T) {
	p := stagedProvider(t, t.TempDir())
	root := BuildTreeNodes(p)

	target := p.Find(domain.Component{FullName: "hello", Type: "LightningComponentBundle"})
	found := findNode(root, target)
	require.NotNil(t, found)
	assert.Equal(t, remoteMarker+" hello", found.GetText())

	group := findNode(root, p.TypeNode("ApexClass"))
	require.NotNil(t, group)
	assert.Equal(t, "Apex Classes (2)", group.GetText())

	assert.Nil(t, findNode(root, nil))
	assert.Nil(t, findNode(root, stage.NewComponentNode("Detached", "")))
}

func TestStageTree_EditsWithoutRunning(t *testing.T) {
	p := stagedProvider(t, t.TempDir())
	p.AddComponent(domain.Component{FullName: "world", Type: "LightningComponentBundle"}, "")
	saves := 0
	st := NewStageTree(p, "", func() error {
		saves++
		return nil
	})
	st.tree = tview.NewTreeView()
	st.status = tview.NewTextView()
	unsubscribe := p.OnDidChangeTreeData(func(*stage.StageNode) { st.render() })
	defer unsubscribe()
	st.render()

	hello := findNode(st.tree.GetRoot(), p.Find(domain.Component{FullName: "hello", Type: "LightningComponentBundle"}))
	require.NotNil(t, hello)
	st.tree.SetCurrentNode(hello)

	st.removeSelected()
	assert.Equal(t, 1, saves)
	assert.Equal(t, 3, p.Len())
	assert.Equal(t, "Staged Components (3)", st.tree.GetRoot().GetText())

	// selection moves to the group the removed node belonged to
	assert.Equal(t, "Lightning Web Components (1)", st.tree.GetCurrentNode().GetText())
}
