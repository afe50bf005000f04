package mcore

import (
	"unicode"

	"github.com/agiangrant/mcore/a11y"
	"github.com/agiangrant/mcore/ident"
	"github.com/agiangrant/mcore/layout"
	"github.com/agiangrant/mcore/textedit"
)

// Input handlers run between frames and hit-test against the last rendered
// frame. A press on a button is reported by Button during the next
// declaration; a press on a text input moves its cursor immediately.

// ============================================================================
// Hit Testing
// ============================================================================

// hit returns the topmost target of the last rendered frame under p.
func (c *Context) hit(p layout.Point) (clickable, bool) {
	for i := len(c.clickables) - 1; i >= 0; i-- {
		if c.clickables[i].bounds.Contains(p) {
			return c.clickables[i], true
		}
	}
	return clickable{}, false
}

func (c *Context) target(id ident.WidgetID) (clickable, bool) {
	for _, t := range c.clickables {
		if t.id == id {
			return t, true
		}
	}
	return clickable{}, false
}

// ============================================================================
// Pointer
// ============================================================================

// PointerMove records the pointer position. Dragging from a text input
// extends its selection.
func (c *Context) PointerMove(p layout.Point) bool {
	c.pointer = p
	if c.pressed == ident.None {
		return true
	}
	if t, ok := c.target(c.pressed); ok && t.kind == clickInput {
		c.placeCursor(t, p, true)
	}
	return true
}

// PointerDown handles a primary button press. The widget under p takes
// focus; pressing empty space clears focus. Shift-click in a text input
// extends the selection.
func (c *Context) PointerDown(p layout.Point, mods Modifiers) bool {
	c.pointer = p
	t, ok := c.hit(p)
	if !ok {
		c.pressed = ident.None
		if c.focus.Focused() != ident.None {
			c.setFocus(ident.None)
			return true
		}
		return false
	}
	c.pressed = t.id
	c.setFocus(t.id)
	if t.kind == clickInput {
		c.placeCursor(t, p, mods&ModShift != 0)
	}
	return true
}

// PointerUp handles a primary button release. Releasing over the button
// that was pressed clicks it.
func (c *Context) PointerUp(p layout.Point) bool {
	c.pointer = p
	c.released = true
	id := c.pressed
	c.pressed = ident.None
	if id == ident.None {
		return false
	}
	t, ok := c.hit(p)
	if !ok || t.id != id || t.kind != clickButton {
		return false
	}
	c.clicked[id] = true
	return true
}

// PointerReleased reports whether the pointer was released since the last
// EndFrame.
func (c *Context) PointerReleased() bool { return c.released }

// Wheel adds delta to the offset of the topmost scroll area under p.
func (c *Context) Wheel(p, delta layout.Point) bool {
	id, ok := c.router.Hit(p)
	if !ok {
		return false
	}
	st, ok := c.scrolls.Get(id)
	if !ok {
		return false
	}
	return st.ScrollBy(delta)
}

func (c *Context) placeCursor(t clickable, p layout.Point, extend bool) {
	st := c.texts.GetOrCreate(t.id)
	text := st.Text()
	x := p.X - t.inner.X + st.ScrollX
	off := textedit.OffsetAtX(text, x, func(n int) float32 {
		return c.engine.MeasureToByte(text, c.font, c.fontSize, n)
	})
	st.Apply(textedit.Event{Kind: textedit.SetCursor, Position: off, Extend: extend})
}

// ============================================================================
// Keyboard
// ============================================================================

// KeyDown handles a key press: Tab and Shift-Tab move focus, Escape clears
// it, Enter and Space click a focused button, and editing keys and
// clipboard shortcuts go to a focused text input.
func (c *Context) KeyDown(k Key, mods Modifiers) bool {
	switch k {
	case KeyTab:
		if mods&ModShift != 0 {
			return c.changeFocus(c.focus.Prev)
		}
		return c.changeFocus(c.focus.Next)
	case KeyEscape:
		if c.focus.Focused() == ident.None {
			return false
		}
		c.setFocus(ident.None)
		return true
	}

	id := c.focus.Focused()
	if id == ident.None {
		return false
	}
	if st, ok := c.texts.Get(id); ok {
		return c.editKey(id, st, k, mods)
	}
	if k == KeyEnter || k == KeySpace {
		c.clicked[id] = true
		return true
	}
	return false
}

func (c *Context) editKey(id ident.WidgetID, st *textedit.State, k Key, mods Modifiers) bool {
	if st.Composing() {
		return false
	}
	extend := mods&ModShift != 0
	var ev textedit.Event
	switch k {
	case KeyLeft:
		ev = textedit.Event{Kind: textedit.Move, Direction: textedit.Left, Extend: extend}
	case KeyRight:
		ev = textedit.Event{Kind: textedit.Move, Direction: textedit.Right, Extend: extend}
	case KeyHome:
		ev = textedit.Event{Kind: textedit.Move, Direction: textedit.Home, Extend: extend}
	case KeyEnd:
		ev = textedit.Event{Kind: textedit.Move, Direction: textedit.End, Extend: extend}
	case KeyBackspace:
		ev = textedit.Event{Kind: textedit.Backspace}
	case KeyDelete:
		ev = textedit.Event{Kind: textedit.Delete}
	default:
		r, ok := k.Letter()
		if !ok || !mods.Command() {
			return false
		}
		ch := textedit.ChordFor(r)
		if ch == textedit.ChordNone {
			return false
		}
		c.markEdited(id, st, st.ApplyChord(ch, c.clipboard))
		return true
	}
	c.markEdited(id, st, st.Apply(ev))
	return true
}

// CharInput inserts a typed character into the focused text input.
func (c *Context) CharInput(r rune) bool {
	id, st, ok := c.focusedInput()
	if !ok || st.Composing() || !unicode.IsPrint(r) {
		return false
	}
	c.markEdited(id, st, st.Apply(textedit.Event{Kind: textedit.InsertChar, Char: r}))
	return true
}

// ============================================================================
// IME
// ============================================================================

// ImePreedit shows composition text in the focused text input. An empty
// string ends composition.
func (c *Context) ImePreedit(text string, cursor int) bool {
	_, st, ok := c.focusedInput()
	if !ok {
		return false
	}
	st.SetPreedit(text, cursor)
	return true
}

// ImeCommit inserts committed composition text into the focused text input.
func (c *Context) ImeCommit(text string) bool {
	id, st, ok := c.focusedInput()
	if !ok {
		return false
	}
	c.markEdited(id, st, st.Commit(text))
	return true
}

// IMECaretRect returns the focused text input's caret from the last
// rendered frame, for positioning the platform's composition window.
func (c *Context) IMECaretRect() (layout.Rect, bool) {
	return c.imeRect, c.imeValid
}

func (c *Context) focusedInput() (ident.WidgetID, *textedit.State, bool) {
	id := c.focus.Focused()
	if id == ident.None {
		return id, nil, false
	}
	st, ok := c.texts.Get(id)
	return id, st, ok
}

// markEdited records an edit for TextInput to report. Text dropped at the
// buffer's capacity is logged.
func (c *Context) markEdited(id ident.WidgetID, st *textedit.State, changed bool) {
	if err := st.Err(); err != nil {
		c.logger.Warn("text input edit truncated", "id", id, "capacity", st.Capacity(), "error", err)
	}
	if changed {
		c.edited[id] = true
	}
}

// ============================================================================
// Focus
// ============================================================================

// Focused returns the focused widget, or ident.None.
func (c *Context) Focused() ident.WidgetID { return c.focus.Focused() }

// IsFocused reports whether id has focus.
func (c *Context) IsFocused(id ident.WidgetID) bool { return c.focus.IsFocused(id) }

// SetFocus focuses id. ident.None clears focus.
func (c *Context) SetFocus(id ident.WidgetID) { c.setFocus(id) }

// FocusNext moves focus forward through the last frame's focusable widgets.
func (c *Context) FocusNext() bool { return c.changeFocus(c.focus.Next) }

// FocusPrev moves focus backward through the last frame's focusable widgets.
func (c *Context) FocusPrev() bool { return c.changeFocus(c.focus.Prev) }

// changeFocus runs op and ends IME composition on the text input that lost
// focus.
func (c *Context) changeFocus(op func() bool) bool {
	prev := c.focus.Focused()
	changed := op()
	if prev != ident.None && c.focus.Focused() != prev {
		if st, ok := c.texts.Get(prev); ok {
			st.ClearPreedit()
		}
	}
	return changed
}

func (c *Context) setFocus(id ident.WidgetID) {
	c.changeFocus(func() bool {
		c.focus.Set(id)
		return true
	})
}

// ============================================================================
// Window and accessibility
// ============================================================================

// Resize updates the window to a physical size at the given scale factor.
// The next frame lays out against the new logical size.
func (c *Context) Resize(widthPx, heightPx int, scale float32) error {
	if scale <= 0 {
		scale = 1
	}
	c.window = layout.Size{W: float32(widthPx) / scale, H: float32(heightPx) / scale}
	c.scale = scale
	if err := c.engine.Resize(widthPx, heightPx, scale); err != nil {
		return c.engineError("Resize", err)
	}
	return nil
}

// AccessibilityAction applies an action requested by assistive technology.
// Unknown codes are ignored.
func (c *Context) AccessibilityAction(id uint64, code uint8) {
	ac, ok := a11y.ParseActionCode(code)
	if !ok {
		c.logger.Debug("unknown accessibility action", "id", ident.WidgetID(id), "code", code)
		return
	}
	wid := ident.WidgetID(id)
	switch ac {
	case a11y.CodeFocus:
		c.setFocus(wid)
	case a11y.CodeClick:
		c.clicked[wid] = true
	}
}
