package mcore

import (
	"os"
	"runtime"

	"github.com/agiangrant/mcore/layout"
)

// CurrentPlatform returns the windowing system the process is running under.
// On Linux, Wayland is chosen when WAYLAND_DISPLAY is set.
func CurrentPlatform() PlatformKind {
	switch runtime.GOOS {
	case "darwin":
		return PlatformMacOS
	case "windows":
		return PlatformWindows
	default:
		if os.Getenv("WAYLAND_DISPLAY") != "" {
			return PlatformWayland
		}
		return PlatformX11
	}
}

// ============================================================================
// Event Types and Constants
// ============================================================================

// EventType is the type of a platform input event.
type EventType uint8

const (
	EventResized       EventType = 2
	EventMouseMoved    EventType = 4
	EventMousePressed  EventType = 5
	EventMouseReleased EventType = 6
	EventKeyPressed    EventType = 7
	EventCharInput     EventType = 9
	EventMouseWheel    EventType = 10
	EventImePreedit    EventType = 14
	EventImeCommit     EventType = 15
)

// Modifiers are the modifier keys held during an event.
type Modifiers uint32

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModSuper
)

// Command reports whether the platform's shortcut modifier is held: Super
// on macOS, Ctrl elsewhere.
func (m Modifiers) Command() bool {
	if runtime.GOOS == "darwin" {
		return m&ModSuper != 0
	}
	return m&ModCtrl != 0
}

// Key is a cross-platform key code.
type Key uint32

const (
	// Letters A-Z = 0-25
	KeyA Key = 0
	KeyC Key = 2
	KeyV Key = 21
	KeyX Key = 23
	KeyZ Key = 25

	// Navigation = 48-55
	KeyUp    Key = 48
	KeyDown  Key = 49
	KeyLeft  Key = 50
	KeyRight Key = 51
	KeyHome  Key = 52
	KeyEnd   Key = 53

	// Editing = 56-62
	KeyBackspace Key = 56
	KeyDelete    Key = 57
	KeyEnter     Key = 59
	KeyTab       Key = 60
	KeyEscape    Key = 61
	KeySpace     Key = 62
)

// Letter returns the lowercase letter for KeyA through KeyZ.
func (k Key) Letter() (rune, bool) {
	if k <= KeyZ {
		return 'a' + rune(k), true
	}
	return 0, false
}

// Event is a platform input event.
//
//	EventResized:       Data1, Data2 = physical size; ScaleFactor
//	EventMouseMoved:    Data1, Data2 = position
//	EventMousePressed:  Data1, Data2 = position; Mods
//	EventMouseReleased: Data1, Data2 = position
//	EventMouseWheel:    Data1, Data2 = delta; the pointer position is the last move
//	EventKeyPressed:    Data1 = Key; Mods
//	EventCharInput:     Data1 = code point
//	EventImePreedit:    Text; Data1 = cursor byte offset
//	EventImeCommit:     Text
type Event struct {
	Type        EventType
	Data1       float64
	Data2       float64
	ScaleFactor float64
	Mods        Modifiers
	Text        string
}

func (e Event) point() layout.Point {
	return layout.Point{X: float32(e.Data1), Y: float32(e.Data2)}
}

// Dispatch routes a platform event to the matching input handler. It
// reports whether the event changed any state.
func (c *Context) Dispatch(e Event) bool {
	switch e.Type {
	case EventResized:
		if err := c.Resize(int(e.Data1), int(e.Data2), float32(e.ScaleFactor)); err != nil {
			return false
		}
		return true
	case EventMouseMoved:
		return c.PointerMove(e.point())
	case EventMousePressed:
		return c.PointerDown(e.point(), e.Mods)
	case EventMouseReleased:
		return c.PointerUp(e.point())
	case EventMouseWheel:
		return c.Wheel(c.pointer, e.point())
	case EventKeyPressed:
		return c.KeyDown(Key(e.Data1), e.Mods)
	case EventCharInput:
		return c.CharInput(rune(e.Data1))
	case EventImePreedit:
		return c.ImePreedit(e.Text, int(e.Data1))
	case EventImeCommit:
		return c.ImeCommit(e.Text)
	}
	return false
}
