package stage

import (
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"sfstage/internal/domain"
	"sfstage/internal/manifest"
	"sfstage/internal/registry"
)

// ChangeListener is notified when the tree changes. node is the changed node,
// or nil when the whole tree should be refreshed.
type ChangeListener func(node *StageNode)

type listenerEntry struct {
	id int
	fn ChangeListener
}

// OutlineProvider owns the stage tree: one type-group node per metadata type,
// each holding the staged components of that type.
//
// OutlineProvider is not safe for concurrent use. The CLI is sequential and the
// TUI only touches it from its event goroutine.
type OutlineProvider struct {
	registry       *registry.Registry
	generator      *manifest.Generator
	collator       *collate.Collator
	typeNameToNode map[string]*StageNode
	listeners      []listenerEntry
	nextListener   int
}

// NewOutlineProvider creates an empty provider
func NewOutlineProvider(reg *registry.Registry, gen *manifest.Generator) *OutlineProvider {
	return &OutlineProvider{
		registry:       reg,
		generator:      gen,
		collator:       collate.New(language.English),
		typeNameToNode: make(map[string]*StageNode),
	}
}

// OnDidChangeTreeData registers a listener and returns a function removing it
func (p *OutlineProvider) OnDidChangeTreeData(fn ChangeListener) func() {
	p.nextListener++
	id := p.nextListener
	p.listeners = append(p.listeners, listenerEntry{id: id, fn: fn})
	return func() {
		for i, l := range p.listeners {
			if l.id == id {
				p.listeners = append(p.listeners[:i], p.listeners[i+1:]...)
				return
			}
		}
	}
}

func (p *OutlineProvider) fire(node *StageNode) {
	listeners := make([]listenerEntry, len(p.listeners))
	copy(listeners, p.listeners)
	for _, l := range listeners {
		l.fn(node)
	}
}

// GetTreeItem returns the node itself; nodes carry their own rendering state
func (p *OutlineProvider) GetTreeItem(node *StageNode) *StageNode {
	return node
}

// GetParent returns the parent of node
func (p *OutlineProvider) GetParent(node *StageNode) *StageNode {
	return node.Parent
}

// GetChildren returns the children of node, or the type-group nodes when node
// is nil, sorted by label.
func (p *OutlineProvider) GetChildren(node *StageNode) []*StageNode {
	var nodes []*StageNode
	if node != nil {
		nodes = node.Children
	} else {
		nodes = make([]*StageNode, 0, len(p.typeNameToNode))
		for _, n := range p.typeNameToNode {
			nodes = append(nodes, n)
		}
	}
	sort.SliceStable(nodes, func(i, j int) bool {
		return p.collator.CompareString(nodes[i].Label, nodes[j].Label) < 0
	})
	return nodes
}

// AddComponent stages a component, creating its type group if needed. Adding a
// component that is already staged returns the existing node.
func (p *OutlineProvider) AddComponent(component domain.Component, filePath string) *StageNode {
	node := p.addComponent(component, filePath)
	p.fire(nil)
	return node
}

func (p *OutlineProvider) addComponent(component domain.Component, filePath string) *StageNode {
	typeName := p.canonicalType(component.Type)
	typeNode, ok := p.typeNameToNode[typeName]
	if !ok {
		typeNode = NewTypeNode(p.registry.Label(typeName), typeName)
		p.typeNameToNode[typeName] = typeNode
	}

	for _, child := range typeNode.Children {
		if child.Label == component.FullName {
			return child
		}
	}

	componentNode := NewComponentNode(component.FullName, filePath)
	typeNode.AddChild(componentNode)
	return componentNode
}

// canonicalType returns the registry spelling of a known type name
func (p *OutlineProvider) canonicalType(name string) string {
	if typ, err := p.registry.TypeFromName(name); err == nil {
		return typ.Name
	}
	return name
}

// Restore stages many components and notifies listeners once
func (p *OutlineProvider) Restore(components []domain.StagedComponent) {
	for _, c := range components {
		p.addComponent(c.Component(), c.FilePath)
	}
	p.fire(nil)
}

// RemoveComponent unstages a component node, dropping its type group when it
// was the last member. Passed a type-group node, it drops the whole group.
func (p *OutlineProvider) RemoveComponent(node *StageNode) {
	if parent := node.Parent; parent != nil {
		for i, child := range parent.Children {
			if child.Label == node.Label {
				parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
				break
			}
		}
		if len(parent.Children) == 0 && p.typeNameToNode[parent.TypeName] == parent {
			delete(p.typeNameToNode, parent.TypeName)
		}
		node.Parent = nil
		p.fire(nil)
	}
	if len(node.Children) > 0 {
		node.Parent = nil
		if p.typeNameToNode[node.TypeName] == node {
			delete(p.typeNameToNode, node.TypeName)
		}
		p.fire(nil)
	}
}

// Find returns the staged node for a component, or nil
func (p *OutlineProvider) Find(component domain.Component) *StageNode {
	typeNode, ok := p.typeNameToNode[p.canonicalType(component.Type)]
	if !ok {
		return nil
	}
	for _, child := range typeNode.Children {
		if child.Label == component.FullName {
			return child
		}
	}
	return nil
}

// TypeNode returns the group node of a metadata type, or nil
func (p *OutlineProvider) TypeNode(typeName string) *StageNode {
	return p.typeNameToNode[p.canonicalType(typeName)]
}

// Components lists the staged components ordered by type name then label
func (p *OutlineProvider) Components() []domain.StagedComponent {
	typeNames := make([]string, 0, len(p.typeNameToNode))
	for name := range p.typeNameToNode {
		typeNames = append(typeNames, name)
	}
	sort.Strings(typeNames)

	var components []domain.StagedComponent
	for _, name := range typeNames {
		for _, child := range p.GetChildren(p.typeNameToNode[name]) {
			components = append(components, domain.StagedComponent{
				FullName: child.Label,
				Type:     name,
				FilePath: child.FilePath(),
			})
		}
	}
	return components
}

// Len returns the number of staged components
func (p *OutlineProvider) Len() int {
	n := 0
	for _, typeNode := range p.typeNameToNode {
		n += len(typeNode.Children)
	}
	return n
}

// CreateManifest writes a package.xml for every staged component to output.
// Nothing is written when the stage is empty.
func (p *OutlineProvider) CreateManifest(output string) error {
	if len(p.typeNameToNode) == 0 {
		return nil
	}

	var components []domain.Component
	for _, typeNode := range p.typeNameToNode {
		typ, err := p.registry.TypeFromName(typeNode.TypeName)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", typeNode.TypeName, err)
		}
		for _, componentNode := range typeNode.Children {
			components = append(components, domain.Component{
				FullName: componentNode.Label,
				Type:     typ.Name,
			})
		}
	}

	contents, err := p.generator.CreateManifest(components)
	if err != nil {
		return err
	}
	return manifest.Write(output, contents)
}

// ClearAll unstages everything
func (p *OutlineProvider) ClearAll() {
	p.typeNameToNode = make(map[string]*StageNode)
	p.fire(nil)
}

// Refresh notifies listeners that node (or the whole tree, when nil) changed
func (p *OutlineProvider) Refresh(node *StageNode) {
	p.fire(node)
}
