// Package scroll keeps persistent scroll-area state and routes wheel input to
// the area under the pointer.
package scroll

import (
	"github.com/agiangrant/mcore/ident"
	"github.com/agiangrant/mcore/layout"
)

// Axes selects which directions an area scrolls in. An axis that does not
// scroll has its content constrained to the viewport.
type Axes uint8

const (
	AxisX Axes = 1 << iota
	AxisY

	Both = AxisX | AxisY
)

// Has reports whether a includes axis.
func (a Axes) Has(axis Axes) bool { return a&axis != 0 }

// State is one scroll area's persistent state. Offset stays within
// [0, max(Content-Viewport, 0)] on each axis after every mutating call.
type State struct {
	Content  layout.Size
	Viewport layout.Size
	Offset   layout.Point
	Axes     Axes
}

// MaxOffset returns the largest valid offset.
func (s *State) MaxOffset() layout.Point {
	return layout.Point{
		X: max(s.Content.W-s.Viewport.W, 0),
		Y: max(s.Content.H-s.Viewport.H, 0),
	}
}

// Clamp restores the offset invariant.
func (s *State) Clamp() {
	m := s.MaxOffset()
	s.Offset.X = min(max(s.Offset.X, 0), m.X)
	s.Offset.Y = min(max(s.Offset.Y, 0), m.Y)
}

// SetContent records the combined size of the area's children.
func (s *State) SetContent(sz layout.Size) {
	s.Content = sz
	s.Clamp()
}

// SetViewport records the visible size of the area.
func (s *State) SetViewport(sz layout.Size) {
	s.Viewport = sz
	s.Clamp()
}

// ScrollBy adds delta to the offset on the enabled axes, then clamps.
// The delta is applied as given; any acceleration or momentum is the input
// source's business. It reports whether the offset changed.
func (s *State) ScrollBy(delta layout.Point) bool {
	before := s.Offset
	if s.Axes.Has(AxisX) {
		s.Offset.X += delta.X
	}
	if s.Axes.Has(AxisY) {
		s.Offset.Y += delta.Y
	}
	s.Clamp()
	return s.Offset != before
}

// CanScroll reports whether the content overflows the viewport on any
// enabled axis.
func (s *State) CanScroll() bool {
	m := s.MaxOffset()
	return (s.Axes.Has(AxisX) && m.X > 0) || (s.Axes.Has(AxisY) && m.Y > 0)
}

// Store maps widget ids to their scroll state for the life of a session.
type Store struct {
	states map[ident.WidgetID]*State
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{states: make(map[ident.WidgetID]*State)}
}

// Get returns the state for id, if any.
func (st *Store) Get(id ident.WidgetID) (*State, bool) {
	s, ok := st.states[id]
	return s, ok
}

// GetOrCreate returns the state for id, creating it with axes on first use.
// The axes of an existing state are updated to match.
func (st *Store) GetOrCreate(id ident.WidgetID, axes Axes) *State {
	s, ok := st.states[id]
	if !ok {
		s = &State{}
		st.states[id] = s
	}
	s.Axes = axes
	return s
}

// Len returns the number of known areas.
func (st *Store) Len() int { return len(st.states) }

// Area is a scroll area's on-screen viewport.
type Area struct {
	ID     ident.WidgetID
	Bounds layout.Rect
}

// Router hit-tests wheel input against the areas rendered in the last
// completed frame. Areas register while a frame renders; Commit publishes
// them for input handling.
type Router struct {
	active  []Area
	pending []Area
}

// Register records an area rendered in the current frame. Later
// registrations are on top.
func (r *Router) Register(id ident.WidgetID, bounds layout.Rect) {
	r.pending = append(r.pending, Area{ID: id, Bounds: bounds})
}

// Commit makes the current frame's areas the hit-test set and starts a new
// empty frame.
func (r *Router) Commit() {
	r.active, r.pending = r.pending, r.active[:0]
}

// Discard drops the current frame's registrations without publishing them.
func (r *Router) Discard() {
	r.pending = r.pending[:0]
}

// Hit returns the topmost committed area containing p.
func (r *Router) Hit(p layout.Point) (ident.WidgetID, bool) {
	for i := len(r.active) - 1; i >= 0; i-- {
		if r.active[i].Bounds.Contains(p) {
			return r.active[i].ID, true
		}
	}
	return ident.None, false
}

// Areas returns the committed areas, bottom first.
func (r *Router) Areas() []Area { return r.active }
