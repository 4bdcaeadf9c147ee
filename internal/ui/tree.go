package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"sfstage/internal/stage"
)

const (
	localMarker  = "●"
	remoteMarker = "○"
)

// StageTree shows the stage outline in an interactive tree and keeps it in
// sync through the provider's change notifications.
type StageTree struct {
	provider     *stage.OutlineProvider
	manifestPath string
	persist      func() error

	app    *tview.Application
	tree   *tview.TreeView
	status *tview.TextView
}

// NewStageTree creates a StageTree. persist is called after every change made
// from the tree so the stage survives the session.
func NewStageTree(provider *stage.OutlineProvider, manifestPath string, persist func() error) *StageTree {
	return &StageTree{
		provider:     provider,
		manifestPath: manifestPath,
		persist:      persist,
	}
}

// BuildTreeNodes renders the provider's tree as tview nodes. Each node's
// reference is the *stage.StageNode it shows.
func BuildTreeNodes(provider *stage.OutlineProvider) *tview.TreeNode {
	root := tview.NewTreeNode(fmt.Sprintf("Staged Components (%d)", provider.Len())).
		SetColor(tcell.ColorWhite).
		SetSelectable(false)

	for _, group := range provider.GetChildren(nil) {
		groupNode := tview.NewTreeNode(fmt.Sprintf("%s (%d)", group.Label, len(group.Children))).
			SetReference(group).
			SetColor(tcell.ColorDarkCyan).
			SetExpanded(group.Collapsible == stage.CollapsibleExpanded)

		for _, child := range provider.GetChildren(group) {
			text := remoteMarker + " " + child.Label
			textColor := tcell.ColorWhite
			if child.FilePath() != "" {
				text = localMarker + " " + child.Label
				textColor = tcell.ColorYellow
			}
			groupNode.AddChild(tview.NewTreeNode(text).SetReference(child).SetColor(textColor))
		}
		root.AddChild(groupNode)
	}
	return root
}

// findNode returns the tview node referencing target, or nil
func findNode(root *tview.TreeNode, target *stage.StageNode) *tview.TreeNode {
	var found *tview.TreeNode
	root.Walk(func(node, parent *tview.TreeNode) bool {
		if found != nil {
			return false
		}
		if ref, ok := node.GetReference().(*stage.StageNode); ok && ref == target {
			found = node
			return false
		}
		return true
	})
	return found
}

// render rebuilds the tview tree, keeping the selection when its node survives
func (st *StageTree) render() {
	var selected, selectedParent *stage.StageNode
	if current := st.tree.GetCurrentNode(); current != nil {
		selected, _ = current.GetReference().(*stage.StageNode)
		// the stage node may already be detached, so ask the old tview tree
		if oldRoot := st.tree.GetRoot(); oldRoot != nil {
			oldRoot.Walk(func(node, parent *tview.TreeNode) bool {
				if node == current && parent != nil {
					selectedParent, _ = parent.GetReference().(*stage.StageNode)
				}
				return true
			})
		}
	}

	root := BuildTreeNodes(st.provider)
	st.tree.SetRoot(root)

	next := findNode(root, selected)
	if next == nil && selectedParent != nil {
		next = findNode(root, selectedParent)
	}
	if next == nil && len(root.GetChildren()) > 0 {
		next = root.GetChildren()[0]
	}
	if next == nil {
		next = root
	}
	st.tree.SetCurrentNode(next)
}

func (st *StageTree) setStatus(format string, a ...interface{}) {
	st.status.SetText(fmt.Sprintf(format, a...))
}

func (st *StageTree) saveStage() {
	if st.persist == nil {
		return
	}
	if err := st.persist(); err != nil {
		st.setStatus("[red]Failed to save stage: %v[white]", err)
	}
}

// selectedNode returns the stage node under the cursor
func (st *StageTree) selectedNode() *stage.StageNode {
	current := st.tree.GetCurrentNode()
	if current == nil {
		return nil
	}
	node, _ := current.GetReference().(*stage.StageNode)
	return node
}

func (st *StageTree) removeSelected() {
	node := st.selectedNode()
	if node == nil {
		return
	}
	label := node.Label
	st.provider.RemoveComponent(node)
	st.saveStage()
	st.setStatus("[yellow]Removed %s[white]", label)
}

func (st *StageTree) writeManifest() {
	if st.provider.Len() == 0 {
		st.setStatus("[yellow]Nothing staged, manifest not written[white]")
		return
	}
	if err := st.provider.CreateManifest(st.manifestPath); err != nil {
		st.setStatus("[red]Manifest failed: %v[white]", err)
		return
	}
	st.setStatus("[green]✓ Manifest written to %s[white]", st.manifestPath)
}

// activate runs the node's command for components and toggles groups
func (st *StageTree) activate(treeNode *tview.TreeNode) {
	node, ok := treeNode.GetReference().(*stage.StageNode)
	if !ok {
		return
	}
	if node.IsTypeNode() {
		treeNode.SetExpanded(!treeNode.IsExpanded())
		return
	}
	if node.Command == nil || node.Command.ID != stage.OpenCommand {
		return
	}
	if path := node.FilePath(); path != "" {
		st.setStatus("[cyan]%s:[white] %s", node.Label, path)
	} else {
		// the file may have disappeared since the last render
		st.provider.Refresh(node)
		st.setStatus("[cyan]%s:[white] [gray]not available locally[white]", node.Label)
	}
}

// Run shows the tree until the user quits
func (st *StageTree) Run() error {
	st.app = tview.NewApplication()
	st.tree = tview.NewTreeView().SetGraphics(true)
	st.status = tview.NewTextView().SetDynamicColors(true)

	header := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true).
		SetText(" Stage | ↑↓ navigate, Enter open/toggle, [yellow]D[white] remove, [yellow]M[white] write manifest, [yellow]C[white] clear all, Q quit ")

	unsubscribe := st.provider.OnDidChangeTreeData(func(*stage.StageNode) {
		st.render()
	})
	defer unsubscribe()

	st.render()
	st.tree.SetSelectedFunc(st.activate)

	st.tree.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyDelete, tcell.KeyBackspace, tcell.KeyBackspace2:
			st.removeSelected()
			return nil
		case tcell.KeyCtrlC:
			st.app.Stop()
			return nil
		case tcell.KeyRune:
			switch event.Rune() {
			case 'd', 'D':
				st.removeSelected()
				return nil
			case 'm', 'M':
				st.writeManifest()
				return nil
			case 'c', 'C':
				st.provider.ClearAll()
				st.saveStage()
				st.setStatus("[yellow]Stage cleared[white]")
				return nil
			case 'q', 'Q':
				st.app.Stop()
				return nil
			}
		}
		return event
	})

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(header, 1, 0, false).
		AddItem(st.tree, 0, 1, true).
		AddItem(st.status, 1, 0, false)

	if err := st.app.SetRoot(layout, true).SetFocus(st.tree).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
