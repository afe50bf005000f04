// Package textedit is the edit-state machine behind single-line text inputs.
//
// A State owns a UTF-8 buffer, a cursor and a selection anchor, all as byte
// offsets kept on grapheme cluster boundaries. Edits arrive as Event values and
// never touch platform code, so the machine can be driven directly in tests.
// IME composition is held beside the buffer and only reaches it on commit.
package textedit

import (
	"errors"
	"fmt"
)

// ErrBufferFull is returned when text does not fit the buffer's capacity.
var ErrBufferFull = errors.New("textedit: buffer full")

// Kind is the type of an edit event.
type Kind uint8

const (
	InsertChar Kind = iota
	InsertText
	Backspace
	Delete
	Move
	SetCursor
	SelectAll
)

var kindNames = [...]string{"insert_char", "insert_text", "backspace", "delete", "move", "set_cursor", "select_all"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Direction is a cursor movement for Move events.
type Direction uint8

const (
	Left Direction = iota
	Right
	Home
	End
)

// Event is one edit. Which fields are read depends on Kind:
//
//	InsertChar: Char
//	InsertText: Text
//	Move:       Direction, Extend
//	SetCursor:  Position, Extend
type Event struct {
	Kind      Kind
	Char      rune
	Text      string
	Direction Direction
	Extend    bool
	Position  int
}

// State is one text input's persistent edit state.
type State struct {
	buf      []byte
	cursor   int
	anchor   int
	capacity int

	// ScrollX is the horizontal pixel offset that keeps the cursor visible.
	ScrollX float32

	preedit       string
	preeditCursor int

	err error
}

// New returns an empty state. A capacity of zero or less means unbounded.
func New(capacity int) *State {
	return &State{capacity: capacity}
}

// Text returns the committed buffer contents.
func (s *State) Text() string { return string(s.buf) }

// Len returns the buffer length in bytes.
func (s *State) Len() int { return len(s.buf) }

// Capacity returns the maximum buffer length in bytes, or 0 if unbounded.
func (s *State) Capacity() int {
	if s.capacity <= 0 {
		return 0
	}
	return s.capacity
}

// Cursor returns the cursor byte offset.
func (s *State) Cursor() int { return s.cursor }

// Anchor returns the fixed end of the selection. It equals Cursor when
// nothing is selected.
func (s *State) Anchor() int { return s.anchor }

// Selection returns the selected byte range with start <= end. ok is false
// when the selection is empty.
func (s *State) Selection() (start, end int, ok bool) {
	start, end = min(s.anchor, s.cursor), max(s.anchor, s.cursor)
	return start, end, start < end
}

// SelectedText returns the selected substring, or "".
func (s *State) SelectedText() string {
	start, end, ok := s.Selection()
	if !ok {
		return ""
	}
	return string(s.buf[start:end])
}

// SetText replaces the buffer, moves the cursor to the end and clears the
// selection. It fails with ErrBufferFull if text exceeds the capacity.
func (s *State) SetText(text string) error {
	if s.capacity > 0 && len(text) > s.capacity {
		return fmt.Errorf("%w: %d bytes, capacity %d", ErrBufferFull, len(text), s.capacity)
	}
	s.buf = append(s.buf[:0], text...)
	s.cursor = len(s.buf)
	s.anchor = s.cursor
	return nil
}

// Err returns the error of the most recent edit, or nil. Inserted text cut
// short at the capacity yields an error wrapping ErrBufferFull; the part
// that fit is still inserted.
func (s *State) Err() error { return s.err }

// Apply performs one edit and reports whether the buffer contents changed.
func (s *State) Apply(ev Event) bool {
	s.err = nil
	switch ev.Kind {
	case InsertChar:
		return s.insert(string(ev.Char))
	case InsertText:
		return s.insert(ev.Text)
	case Backspace:
		if s.deleteSelection() {
			return true
		}
		if s.cursor == 0 {
			return false
		}
		prev := prevBoundary(string(s.buf), s.cursor)
		s.remove(prev, s.cursor)
		return true
	case Delete:
		if s.deleteSelection() {
			return true
		}
		if s.cursor >= len(s.buf) {
			return false
		}
		next := nextBoundary(string(s.buf), s.cursor)
		s.remove(s.cursor, next)
		return true
	case Move:
		s.move(ev.Direction, ev.Extend)
	case SetCursor:
		s.moveTo(snap(string(s.buf), ev.Position), ev.Extend)
	case SelectAll:
		s.anchor = 0
		s.cursor = len(s.buf)
	}
	return false
}

func (s *State) move(dir Direction, extend bool) {
	start, end, selected := s.Selection()
	switch dir {
	case Left:
		if selected && !extend {
			s.moveTo(start, false)
			return
		}
		s.moveTo(prevBoundary(string(s.buf), s.cursor), extend)
	case Right:
		if selected && !extend {
			s.moveTo(end, false)
			return
		}
		s.moveTo(nextBoundary(string(s.buf), s.cursor), extend)
	case Home:
		s.moveTo(0, extend)
	case End:
		s.moveTo(len(s.buf), extend)
	}
}

// moveTo sets the cursor. Without extend the selection collapses at pos.
func (s *State) moveTo(pos int, extend bool) {
	s.cursor = pos
	if !extend {
		s.anchor = pos
	}
}

func (s *State) insert(text string) bool {
	changed := s.deleteSelection()
	if s.capacity > 0 {
		fit := fitUTF8(text, s.capacity-len(s.buf))
		if len(fit) < len(text) {
			s.err = fmt.Errorf("%w: dropped %d of %d bytes, capacity %d", ErrBufferFull, len(text)-len(fit), len(text), s.capacity)
		}
		text = fit
	}
	if text == "" {
		return changed
	}
	s.buf = append(s.buf, text...)
	copy(s.buf[s.cursor+len(text):], s.buf[s.cursor:len(s.buf)-len(text)])
	copy(s.buf[s.cursor:], text)
	s.cursor += len(text)
	s.anchor = s.cursor
	return true
}

func (s *State) deleteSelection() bool {
	start, end, ok := s.Selection()
	if !ok {
		return false
	}
	s.remove(start, end)
	return true
}

// remove deletes buf[start:end] and leaves a collapsed cursor at start.
func (s *State) remove(start, end int) {
	s.buf = append(s.buf[:start], s.buf[end:]...)
	s.cursor = start
	s.anchor = start
}

// SetPreedit shows uncommitted IME text at the cursor. An empty string ends
// composition.
func (s *State) SetPreedit(text string, cursor int) {
	if text == "" {
		s.ClearPreedit()
		return
	}
	s.preedit = text
	s.preeditCursor = min(max(cursor, 0), len(text))
}

// ClearPreedit ends composition without touching the buffer.
func (s *State) ClearPreedit() {
	s.preedit = ""
	s.preeditCursor = 0
}

// Preedit returns the composition text and its cursor offset.
func (s *State) Preedit() (string, int) { return s.preedit, s.preeditCursor }

// Composing reports whether IME composition is in progress.
func (s *State) Composing() bool { return s.preedit != "" }

// Commit ends composition and inserts text at the cursor, replacing any
// selection. It reports whether the buffer changed.
func (s *State) Commit(text string) bool {
	s.err = nil
	s.ClearPreedit()
	return s.insert(text)
}

// Display returns the text to draw, with any preedit spliced in at the
// cursor, and the caret offset within it.
func (s *State) Display() (string, int) {
	if s.preedit == "" {
		return string(s.buf), s.cursor
	}
	text := string(s.buf[:s.cursor]) + s.preedit + string(s.buf[s.cursor:])
	return text, s.cursor + s.preeditCursor
}

// EnsureVisible adjusts ScrollX so that a caret at caretX (measured from the
// start of the text) lies inside a field width pixels wide.
func (s *State) EnsureVisible(caretX, width float32) {
	switch {
	case caretX < s.ScrollX:
		s.ScrollX = caretX
	case caretX-s.ScrollX > width:
		s.ScrollX = caretX - width
	}
	s.ScrollX = max(s.ScrollX, 0)
}
