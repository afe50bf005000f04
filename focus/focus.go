// Package focus tracks keyboard focus for an immediate-mode UI.
//
// The focusable list is rebuilt every frame: widgets register themselves in
// render order, and traversal walks that order. The focused id itself is
// session state and survives frame boundaries.
package focus

import "github.com/agiangrant/mcore/ident"

// Manager holds the focused id and this frame's focusable order.
// The zero value has nothing focused and is ready to use.
type Manager struct {
	focused    ident.WidgetID
	registered []ident.WidgetID
}

// BeginFrame clears the focusable list. Focus itself is kept.
func (m *Manager) BeginFrame() {
	m.registered = m.registered[:0]
}

// Register appends id to this frame's traversal order.
func (m *Manager) Register(id ident.WidgetID) {
	m.registered = append(m.registered, id)
}

// Registered returns this frame's traversal order. The slice is reused on the
// next BeginFrame.
func (m *Manager) Registered() []ident.WidgetID {
	return m.registered
}

// Focused returns the focused id, or ident.None.
func (m *Manager) Focused() ident.WidgetID {
	return m.focused
}

// IsFocused compares id with the focused id. It does not consult the
// registration list.
func (m *Manager) IsFocused(id ident.WidgetID) bool {
	return id != ident.None && m.focused == id
}

// Set focuses id unconditionally. ident.None clears focus.
func (m *Manager) Set(id ident.WidgetID) {
	m.focused = id
}

// Clear drops focus.
func (m *Manager) Clear() {
	m.focused = ident.None
}

// Next moves focus to the next registered id, wrapping at the end.
// With nothing focused, or a focused id that is not registered, the first id
// gets focus. It returns false when nothing is registered.
func (m *Manager) Next() bool {
	n := len(m.registered)
	if n == 0 {
		return false
	}
	i := m.index()
	if i < 0 {
		m.focused = m.registered[0]
		return true
	}
	m.focused = m.registered[(i+1)%n]
	return true
}

// Prev moves focus to the previous registered id, wrapping at the start.
// With nothing focused the last id gets focus.
func (m *Manager) Prev() bool {
	n := len(m.registered)
	if n == 0 {
		return false
	}
	i := m.index()
	if i < 0 {
		m.focused = m.registered[n-1]
		return true
	}
	m.focused = m.registered[(i-1+n)%n]
	return true
}

// DropStale clears focus when the focused id did not register this frame.
// Call it after the render pass. It reports whether focus was cleared.
func (m *Manager) DropStale() bool {
	if m.focused == ident.None || m.index() >= 0 {
		return false
	}
	m.focused = ident.None
	return true
}

func (m *Manager) index() int {
	if m.focused == ident.None {
		return -1
	}
	for i, id := range m.registered {
		if id == m.focused {
			return i
		}
	}
	return -1
}
