package mcore

import (
	"github.com/agiangrant/mcore/ident"
	"github.com/agiangrant/mcore/layout"
	"github.com/agiangrant/mcore/scroll"
)

// nodeKind tags a declared widget.
type nodeKind uint8

const (
	nodeStack nodeKind = iota + 1
	nodeScroll
	nodeLabel
	nodeButton
	nodeTextInput
	nodeSpacer
	nodeImage
	nodeCustom
)

func (k nodeKind) String() string {
	switch k {
	case nodeStack:
		return "stack"
	case nodeScroll:
		return "scroll"
	case nodeLabel:
		return "label"
	case nodeButton:
		return "button"
	case nodeTextInput:
		return "text_input"
	case nodeSpacer:
		return "spacer"
	case nodeImage:
		return "image"
	case nodeCustom:
		return "custom"
	}
	return "unknown"
}

func (k nodeKind) container() bool {
	return k == nodeStack || k == nodeScroll
}

// node is one declared widget. Nodes live in the frame arena and are only
// valid until the next BeginFrame.
type node struct {
	kind nodeKind
	id   ident.WidgetID
	text string
	flex float32

	// Containers.
	axis     layout.Axis
	gap      float32
	padding  float32
	fixed    layout.Size // zero components are unset
	axes     scroll.Axes
	children []*node

	// Images, spacers and text inputs.
	size    layout.Size
	texture uint32

	custom Custom

	// Written by the layout passes.
	measured layout.Size
	rect     layout.Rect
}

// arena holds a frame's nodes in a fixed slab. Reset keeps every node's
// children slice so steady-state frames do not allocate.
type arena struct {
	nodes []node

	// LIFO scratch for the flex solver. A container takes a mark, appends
	// its children, solves, copies results out and truncates back to the
	// mark before recursing.
	flex  []layout.FlexChild
	rects []layout.Rect
}

func newArena(capacity int) *arena {
	return &arena{
		nodes: make([]node, 0, capacity),
		flex:  make([]layout.FlexChild, 0, 64),
		rects: make([]layout.Rect, 0, 64),
	}
}

// alloc returns a zeroed node of kind k, or ErrArenaExhausted when the slab
// is full.
func (a *arena) alloc(k nodeKind) (*node, error) {
	i := len(a.nodes)
	if i == cap(a.nodes) {
		return nil, ErrArenaExhausted
	}
	a.nodes = a.nodes[:i+1]
	n := &a.nodes[i]
	children := n.children[:0]
	*n = node{kind: k, children: children}
	return n, nil
}

func (a *arena) reset() {
	a.nodes = a.nodes[:0]
	a.flex = a.flex[:0]
	a.rects = a.rects[:0]
}

func (a *arena) len() int { return len(a.nodes) }

// solve runs the flex solver over n's children laid along axis inside a box
// of the given main-axis length, writing child rects relative to the box.
func (a *arena) solve(n *node, axis layout.Axis, available float32) {
	mark := len(a.flex)
	for _, c := range n.children {
		a.flex = append(a.flex, layout.FlexChild{Size: c.measured, Flex: c.flex})
	}
	rmark := len(a.rects)
	a.rects = layout.Solve(a.flex[mark:], axis, n.gap, n.padding, available, a.rects)
	for i, c := range n.children {
		c.rect = a.rects[rmark+i]
	}
	a.flex = a.flex[:mark]
	a.rects = a.rects[:rmark]
}
