package textedit

import "github.com/agiangrant/mcore/ident"

// Store maps widget ids to their edit state for the life of a session.
type Store struct {
	states   map[ident.WidgetID]*State
	capacity int
}

// NewStore returns an empty store whose states hold at most capacity bytes.
func NewStore(capacity int) *Store {
	return &Store{states: make(map[ident.WidgetID]*State), capacity: capacity}
}

// Get returns the state for id, if any.
func (st *Store) Get(id ident.WidgetID) (*State, bool) {
	s, ok := st.states[id]
	return s, ok
}

// GetOrCreate returns the state for id, creating an empty one on first use.
func (st *Store) GetOrCreate(id ident.WidgetID) *State {
	s, ok := st.states[id]
	if !ok {
		s = New(st.capacity)
		st.states[id] = s
	}
	return s
}

// SetText replaces the text of id's buffer.
func (st *Store) SetText(id ident.WidgetID, text string) error {
	return st.GetOrCreate(id).SetText(text)
}

// Text returns id's buffer contents, or "" for an unknown id.
func (st *Store) Text(id ident.WidgetID) string {
	if s, ok := st.states[id]; ok {
		return s.Text()
	}
	return ""
}

// Apply applies ev to id's state and reports whether the buffer changed.
func (st *Store) Apply(id ident.WidgetID, ev Event) bool {
	return st.GetOrCreate(id).Apply(ev)
}

// Len returns the number of known buffers.
func (st *Store) Len() int { return len(st.states) }
