package textedit

import "unicode"

// Clipboard is the platform clipboard.
type Clipboard interface {
	// ClipboardText returns the clipboard's text, or "" if it holds none.
	ClipboardText() string
	// SetClipboardText replaces the clipboard's contents.
	SetClipboardText(text string)
}

// Chord is a clipboard shortcut.
type Chord uint8

const (
	ChordNone Chord = iota
	ChordSelectAll
	ChordCopy
	ChordCut
	ChordPaste
)

// ChordFor maps a key pressed with the platform's command modifier (Ctrl, or
// Super on macOS) to a chord.
func ChordFor(key rune) Chord {
	switch unicode.ToLower(key) {
	case 'a':
		return ChordSelectAll
	case 'c':
		return ChordCopy
	case 'x':
		return ChordCut
	case 'v':
		return ChordPaste
	}
	return ChordNone
}

// ApplyChord runs a clipboard shortcut against s. Copy and cut with nothing
// selected leave the clipboard alone. Paste becomes an InsertText event. It
// reports whether the buffer changed. A nil clipboard only supports select-all.
func (s *State) ApplyChord(ch Chord, cb Clipboard) bool {
	s.err = nil
	switch ch {
	case ChordSelectAll:
		return s.Apply(Event{Kind: SelectAll})
	case ChordCopy:
		if sel := s.SelectedText(); sel != "" && cb != nil {
			cb.SetClipboardText(sel)
		}
	case ChordCut:
		sel := s.SelectedText()
		if sel == "" || cb == nil {
			return false
		}
		cb.SetClipboardText(sel)
		return s.deleteSelection()
	case ChordPaste:
		if cb == nil {
			return false
		}
		if text := cb.ClipboardText(); text != "" {
			return s.Apply(Event{Kind: InsertText, Text: text})
		}
	}
	return false
}
