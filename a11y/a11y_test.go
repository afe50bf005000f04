package a11y

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agiangrant/mcore/ident"
	"github.com/agiangrant/mcore/layout"
)

func TestBuilder_BuildsHierarchy(t *testing.T) {
	var b Builder
	b.Reset(1, "app", layout.Rect{W: 200, H: 100})
	b.Open(Node{ID: 2, Role: RoleGroup})
	b.Add(Node{ID: 3, Role: RoleButton, Label: "OK", Actions: ActionFocus | ActionClick})
	b.Add(Node{ID: 4, Role: RoleLabel, Label: "hint"})
	b.Close()
	b.Add(Node{ID: 5, Role: RoleImage})

	tree := b.Finish(3)
	require.Len(t, tree.Nodes, 5)
	assert.Equal(t, ident.WidgetID(1), tree.Root)
	assert.Equal(t, ident.WidgetID(3), tree.Focus)
	assert.Equal(t, []ident.WidgetID{2, 5}, tree.Find(1).Children)
	assert.Equal(t, []ident.WidgetID{3, 4}, tree.Find(2).Children)
	assert.True(t, tree.Find(3).Actions.Has(ActionClick))
	assert.False(t, tree.Find(4).Actions.Has(ActionFocus))
	assert.Nil(t, tree.Find(99))
}

func TestBuilder_FocusDefaultsToRoot(t *testing.T) {
	var b Builder
	b.Reset(7, "app", layout.Rect{})
	assert.Equal(t, ident.WidgetID(7), b.Finish(ident.None).Focus)
}

func TestBuilder_ResetDiscardsPreviousFrame(t *testing.T) {
	var b Builder
	b.Reset(1, "app", layout.Rect{})
	b.Add(Node{ID: 2})
	b.Reset(1, "app", layout.Rect{})

	tree := b.Finish(ident.None)
	assert.Len(t, tree.Nodes, 1)
	assert.Empty(t, tree.Nodes[0].Children)
}

func TestBuilder_CloseRootPanics(t *testing.T) {
	var b Builder
	b.Reset(1, "app", layout.Rect{})
	assert.Panics(t, func() { b.Close() })
}

func TestTree_CloneIsIndependent(t *testing.T) {
	var b Builder
	b.Reset(1, "app", layout.Rect{})
	b.Add(Node{ID: 2, Role: RoleTextInput, Value: "abc", Selection: &Selection{Start: 1, End: 2}})

	snap := b.Finish(2).Clone()
	b.Reset(1, "app", layout.Rect{})
	b.Add(Node{ID: 9})

	require.Len(t, snap.Nodes, 2)
	assert.Equal(t, []ident.WidgetID{2}, snap.Nodes[0].Children)
	assert.Equal(t, &Selection{Start: 1, End: 2}, snap.Find(2).Selection)
}

func TestParseActionCode(t *testing.T) {
	code, ok := ParseActionCode(0)
	assert.True(t, ok)
	assert.Equal(t, CodeFocus, code)
	code, ok = ParseActionCode(1)
	assert.True(t, ok)
	assert.Equal(t, CodeClick, code)
	_, ok = ParseActionCode(255)
	assert.False(t, ok)
}

func TestEncode(t *testing.T) {
	tree := Tree{
		Root:  1,
		Focus: 2,
		Nodes: []Node{
			{ID: 1, Role: RoleWindow, Label: "w", Children: []ident.WidgetID{2}},
			{ID: 2, Role: RoleTextInput, Actions: ActionFocus, Value: "hi", Selection: &Selection{Start: 0, End: 2}},
		},
	}
	buf := Encode(nil, tree)

	// header + window(8+2+16+4+1+4+0+8+4+8) + input(8+2+16+4+0+4+2+8+4)
	require.Len(t, buf, 20+55+48)
	assert.Equal(t, byte(RoleWindow), buf[28])
	assert.Equal(t, "w", string(buf[50:51]))
	assert.Equal(t, byte(RoleTextInput), buf[20+55+8])
	assert.Equal(t, byte(ActionFocus), buf[20+55+9])
}
