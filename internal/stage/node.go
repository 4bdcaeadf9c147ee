// Package stage keeps the tree of metadata components staged for deployment.
package stage

import "os"

// OpenCommand is the command attached to component nodes
const OpenCommand = "sfdx.force.metadata.stage.view.open"

// CollapsibleState is how a node renders its children
type CollapsibleState int

const (
	CollapsibleNone CollapsibleState = iota
	CollapsibleCollapsed
	CollapsibleExpanded
)

// Icon marks whether a component node has a local source file
type Icon string

const (
	IconNone   Icon = ""
	IconLocal  Icon = "circle-filled"
	IconRemote Icon = "circle-outline"
)

// Command is invoked when a node is activated in a tree view
type Command struct {
	ID        string
	Title     string
	Arguments []interface{}
}

// StageNode is either a type-group node (TypeName set, holds components) or a
// component node (TypeName empty, optionally tied to a file on disk).
type StageNode struct {
	Label       string
	TypeName    string
	Collapsible CollapsibleState
	Command     *Command
	Icon        Icon
	Parent      *StageNode
	Children    []*StageNode

	filePath string
}

// NewTypeNode creates a type-group node
func NewTypeNode(label, typeName string) *StageNode {
	return &StageNode{
		Label:       label,
		TypeName:    typeName,
		Collapsible: CollapsibleExpanded,
	}
}

// NewComponentNode creates a component node, optionally tied to filePath
func NewComponentNode(fullName, filePath string) *StageNode {
	n := &StageNode{Label: fullName}
	n.Command = &Command{
		ID:        OpenCommand,
		Title:     "Open metadata",
		Arguments: []interface{}{n},
	}
	n.SetFilePath(filePath)
	return n
}

// IsTypeNode reports whether n groups components of one type
func (n *StageNode) IsTypeNode() bool {
	return n.TypeName != ""
}

// AddChild appends node and points its parent at n
func (n *StageNode) AddChild(node *StageNode) {
	node.Parent = n
	n.Children = append(n.Children, node)
}

// SetFilePath ties the node to a file; an empty path clears the association
func (n *StageNode) SetFilePath(path string) {
	n.filePath = path
	n.updateStatus()
}

// FilePath returns the associated file. A file that no longer exists is
// forgotten before returning.
func (n *StageNode) FilePath() string {
	if n.filePath != "" && !fileExists(n.filePath) {
		n.filePath = ""
		n.updateStatus()
	}
	return n.filePath
}

func (n *StageNode) updateStatus() {
	if n.IsTypeNode() {
		return
	}
	if n.filePath != "" {
		n.Icon = IconLocal
	} else {
		n.Icon = IconRemote
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
