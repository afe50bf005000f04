// Package a11y builds the per-frame accessibility tree.
//
// The tree is rebuilt from scratch during every render pass: containers open
// and close around their children, leaves are added in paint order, and the
// finished node list is handed to the platform bridge once per frame.
package a11y

import (
	"fmt"
	"slices"

	"github.com/agiangrant/mcore/ident"
	"github.com/agiangrant/mcore/layout"
)

// Role is what a node represents to assistive technology.
type Role uint8

const (
	RoleWindow Role = iota
	RoleGroup
	RoleScrollView
	RoleLabel
	RoleButton
	RoleTextInput
	RoleImage
	RoleCustom
)

var roleNames = [...]string{"window", "group", "scroll_view", "label", "button", "text_input", "image", "custom"}

func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return fmt.Sprintf("role(%d)", uint8(r))
}

// Actions is the set of actions a node supports.
type Actions uint8

const (
	ActionFocus Actions = 1 << iota
	ActionClick
	ActionScroll
)

// Has reports whether all of a are in s.
func (s Actions) Has(a Actions) bool { return s&a == a }

// ActionCode is the action a bridge reports back for a node.
type ActionCode uint8

const (
	CodeFocus ActionCode = 0
	CodeClick ActionCode = 1
)

// ParseActionCode maps a raw bridge action code. Unknown codes report false.
func ParseActionCode(code uint8) (ActionCode, bool) {
	switch ActionCode(code) {
	case CodeFocus, CodeClick:
		return ActionCode(code), true
	}
	return 0, false
}

// Selection is a text selection in byte offsets, Start <= End.
type Selection struct {
	Start, End int
}

// Node is one accessibility tree entry.
type Node struct {
	ID       ident.WidgetID
	Role     Role
	Label    string
	Bounds   layout.Rect
	Actions  Actions
	Children []ident.WidgetID

	// Value is the current text of editable nodes.
	Value     string
	Selection *Selection
}

// Tree is a finished frame's node list.
type Tree struct {
	Nodes []Node
	Root  ident.WidgetID
	Focus ident.WidgetID
}

// Find returns the node with id, or nil.
func (t *Tree) Find(id ident.WidgetID) *Node {
	for i := range t.Nodes {
		if t.Nodes[i].ID == id {
			return &t.Nodes[i]
		}
	}
	return nil
}

// Clone deep-copies the tree so it can outlive the builder's next Reset.
func (t Tree) Clone() Tree {
	out := Tree{Root: t.Root, Focus: t.Focus, Nodes: make([]Node, len(t.Nodes))}
	for i, n := range t.Nodes {
		n.Children = slices.Clone(n.Children)
		if n.Selection != nil {
			sel := *n.Selection
			n.Selection = &sel
		}
		out.Nodes[i] = n
	}
	return out
}

// Builder accumulates nodes during a render pass.
type Builder struct {
	nodes []Node
	open  []int
	root  ident.WidgetID
}

// Reset discards the previous tree and starts a new one with a window node
// as its root.
func (b *Builder) Reset(root ident.WidgetID, label string, bounds layout.Rect) {
	clear(b.nodes)
	b.nodes = b.nodes[:0]
	b.open = b.open[:0]
	b.root = root
	b.nodes = append(b.nodes, Node{ID: root, Role: RoleWindow, Label: label, Bounds: bounds})
	b.open = append(b.open, 0)
}

// Open adds a container node and makes it the parent of subsequent nodes
// until Close.
func (b *Builder) Open(n Node) {
	b.Add(n)
	b.open = append(b.open, len(b.nodes)-1)
}

// Close ends the innermost container. The root window cannot be closed.
func (b *Builder) Close() {
	if len(b.open) <= 1 {
		panic("a11y: Close without matching Open")
	}
	b.open = b.open[:len(b.open)-1]
}

// Add appends a leaf node under the current container.
func (b *Builder) Add(n Node) {
	if len(b.open) > 0 {
		parent := &b.nodes[b.open[len(b.open)-1]]
		parent.Children = append(parent.Children, n.ID)
	}
	b.nodes = append(b.nodes, n)
}

// Len returns the number of nodes so far, including the root.
func (b *Builder) Len() int { return len(b.nodes) }

// Finish sets the focus and returns the tree. With no focus the root is
// reported as focused. The tree aliases the builder's storage until the next
// Reset.
func (b *Builder) Finish(focus ident.WidgetID) Tree {
	if focus == ident.None {
		focus = b.root
	}
	return Tree{Nodes: b.nodes, Root: b.root, Focus: focus}
}
