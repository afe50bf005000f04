package mcore

import (
	"github.com/agiangrant/mcore/a11y"
	"github.com/agiangrant/mcore/cmdbuf"
	"github.com/agiangrant/mcore/ident"
	"github.com/agiangrant/mcore/layout"
	"github.com/agiangrant/mcore/scroll"
)

// layoutFrame measures, places and renders the closed root against the
// window, then publishes the frame's hit-test targets.
func (c *Context) layoutFrame() {
	bounds := layout.Rect{W: c.window.W, H: c.window.H}
	if c.root.id == ident.None {
		c.root.id = ident.Combine(windowID, ident.HashInt(0))
	}

	c.measure(c.root, bounds.Size())

	c.tree.Reset(windowID, c.cfg.Window.Title, bounds)
	c.render(c.root, bounds)

	if c.changeFocus(c.focus.DropStale) {
		c.logger.Debug("focused widget not declared, focus cleared", "frame", c.frame)
	}
	c.clickables, c.pending = c.pending, c.clickables[:0]
	c.router.Commit()
}

// ============================================================================
// Measure
// ============================================================================

// measure computes n's natural size bottom-up. available is the space the
// parent can offer; a zero component means unbounded.
func (c *Context) measure(n *node, available layout.Size) layout.Size {
	var size layout.Size
	switch n.kind {
	case nodeLabel:
		size, _ = c.engine.MeasureText(n.text, c.font, c.fontSize, available.W)

	case nodeButton:
		ts, _ := c.engine.MeasureText(n.text, c.font, c.fontSize, 0)
		n.size = ts
		size = layout.Size{W: ts.W + 2*c.theme.ButtonPaddingX, H: ts.H + 2*c.theme.ButtonPaddingY}

	case nodeTextInput:
		w := c.theme.InputWidth
		if available.W > 0 {
			w = min(w, available.W)
		}
		size = layout.Size{W: w, H: c.lineHeight() + 2*c.theme.InputPadding}

	case nodeSpacer, nodeImage:
		size = n.size

	case nodeCustom:
		size = n.custom.Measure(c.engine, available)

	case nodeStack, nodeScroll:
		size = c.measureContainer(n, available)
	}
	n.measured = size
	return size
}

func (c *Context) measureContainer(n *node, available layout.Size) layout.Size {
	outer := available
	if n.fixed.W > 0 {
		outer.W = n.fixed.W
	}
	if n.fixed.H > 0 {
		outer.H = n.fixed.H
	}
	inner := layout.Size{W: max(outer.W-2*n.padding, 0), H: max(outer.H-2*n.padding, 0)}
	if n.kind == nodeScroll {
		if n.axes.Has(scroll.AxisX) {
			inner.W = 0
		}
		if n.axes.Has(scroll.AxisY) {
			inner.H = 0
		}
	}
	for _, ch := range n.children {
		c.measure(ch, inner)
	}

	a := c.arena
	mark := len(a.flex)
	for _, ch := range n.children {
		a.flex = append(a.flex, layout.FlexChild{Size: ch.measured, Flex: ch.flex})
	}
	natural := layout.Natural(a.flex[mark:], n.axis, n.gap, n.padding)
	a.flex = a.flex[:mark]

	size := natural
	if n.kind == nodeScroll {
		// Content size; the viewport is whatever the area is given.
		n.size = natural
		if available.W > 0 {
			size.W = min(size.W, available.W)
		}
		if available.H > 0 {
			size.H = min(size.H, available.H)
		}
	}
	if n.fixed.W > 0 {
		size.W = n.fixed.W
	}
	if n.fixed.H > 0 {
		size.H = n.fixed.H
	}
	return size
}

func (c *Context) lineHeight() float32 {
	s, _ := c.engine.MeasureText("Ag", c.font, c.fontSize, 0)
	return max(s.H, c.fontSize)
}

// ============================================================================
// Place and render
// ============================================================================

// render places n at r, emits its commands and accessibility node, and
// recurses into its children.
func (c *Context) render(n *node, r layout.Rect) {
	n.rect = r
	switch n.kind {
	case nodeStack:
		c.tree.Open(a11y.Node{ID: n.id, Role: a11y.RoleGroup, Bounds: r})
		c.arena.solve(n, n.axis, r.Size().Main(n.axis))
		c.renderChildren(n, r.X, r.Y)
		c.tree.Close()

	case nodeScroll:
		c.renderScroll(n, r)

	case nodeLabel:
		c.emit(cmdbuf.Text(layout.Point{X: r.X, Y: r.Y}, r.W, n.text, c.fontSize, c.font, c.theme.Text.Color()))
		c.tree.Add(a11y.Node{ID: n.id, Role: a11y.RoleLabel, Label: n.text, Bounds: r})

	case nodeButton:
		c.renderButton(n, r)

	case nodeTextInput:
		c.renderTextInput(n, r)

	case nodeImage:
		c.emit(cmdbuf.Image(r, n.texture))
		c.tree.Add(a11y.Node{ID: n.id, Role: a11y.RoleImage, Label: n.text, Bounds: r})

	case nodeCustom:
		n.custom.Render(&Painter{c: c}, r)
		c.tree.Add(a11y.Node{ID: n.id, Role: a11y.RoleCustom, Label: n.text, Bounds: r})

	case nodeSpacer:
	}
}

// renderChildren offsets the solved child rects by (dx, dy) and renders
// them. Anonymous containers get positional ids under their parent.
func (c *Context) renderChildren(n *node, dx, dy float32) {
	for i, ch := range n.children {
		if ch.id == ident.None && ch.kind.container() {
			ch.id = ident.Combine(n.id, ident.HashInt(i))
		}
		c.render(ch, ch.rect.Translate(dx, dy))
	}
}

func (c *Context) renderScroll(n *node, r layout.Rect) {
	st := c.scrolls.GetOrCreate(n.id, n.axes)

	main := r.Size().Main(n.axis)
	if n.axis == layout.Vertical && n.axes.Has(scroll.AxisY) ||
		n.axis == layout.Horizontal && n.axes.Has(scroll.AxisX) {
		main = max(main, n.size.Main(n.axis))
	}
	c.arena.solve(n, n.axis, main)

	var bbox layout.Rect
	for _, ch := range n.children {
		bbox = bbox.Union(ch.rect)
	}
	st.Content = layout.Size{W: bbox.Right() + n.padding, H: bbox.Bottom() + n.padding}
	st.Viewport = r.Size()
	st.Clamp()

	visible := c.hitBounds(r)
	c.router.Register(n.id, visible)

	actions := a11y.Actions(0)
	if st.CanScroll() {
		actions = a11y.ActionScroll
	}
	c.tree.Open(a11y.Node{ID: n.id, Role: a11y.RoleScrollView, Bounds: r, Actions: actions})
	pushed := c.pushClip(r)
	c.renderChildren(n, r.X-st.Offset.X, r.Y-st.Offset.Y)
	c.popClip(pushed)
	c.tree.Close()
}

func (c *Context) renderButton(n *node, r layout.Rect) {
	hb := c.hitBounds(r)
	fill := c.theme.Button
	switch {
	case c.pressed == n.id:
		fill = c.theme.ButtonPressed
	case hb.Contains(c.pointer):
		fill = c.theme.ButtonHover
	}
	c.emit(cmdbuf.RoundedRect(r, c.theme.Radius, fill.Color()))
	origin := layout.Point{X: r.X + (r.W-n.size.W)/2, Y: r.Y + (r.H-n.size.H)/2}
	c.emit(cmdbuf.Text(origin, 0, n.text, c.fontSize, c.font, c.theme.Text.Color()))
	if c.focus.IsFocused(n.id) {
		c.emit(cmdbuf.Outline(r.Inset(-2), c.theme.Radius+2, 2, c.theme.FocusRing.Color()))
	}

	c.focus.Register(n.id)
	if !hb.Empty() {
		c.pending = append(c.pending, clickable{id: n.id, kind: clickButton, bounds: hb})
	}
	c.tree.Add(a11y.Node{
		ID:      n.id,
		Role:    a11y.RoleButton,
		Label:   n.text,
		Bounds:  r,
		Actions: a11y.ActionFocus | a11y.ActionClick,
	})
}

func (c *Context) renderTextInput(n *node, r layout.Rect) {
	st := c.texts.GetOrCreate(n.id)
	inner := r.Inset(c.theme.InputPadding)
	focused := c.focus.IsFocused(n.id)

	c.emit(cmdbuf.RoundedRect(r, c.theme.Radius, c.theme.InputBackground.Color()))
	if focused {
		c.emit(cmdbuf.Outline(r, c.theme.Radius, 2, c.theme.FocusRing.Color()))
	}

	display, caret := st.Display()
	caretX := c.engine.MeasureToByte(display, c.font, c.fontSize, caret)
	st.EnsureVisible(caretX, inner.W)
	x0 := inner.X - st.ScrollX

	pushed := c.pushClip(inner)
	start, end, hasSel := st.Selection()
	if hasSel && !st.Composing() {
		text := st.Text()
		sx := c.engine.MeasureToByte(text, c.font, c.fontSize, start)
		ex := c.engine.MeasureToByte(text, c.font, c.fontSize, end)
		c.emit(cmdbuf.RoundedRect(layout.Rect{X: x0 + sx, Y: inner.Y, W: ex - sx, H: inner.H}, 0, c.theme.Selection.Color()))
	}
	c.emit(cmdbuf.Text(layout.Point{X: x0, Y: inner.Y}, 0, display, c.fontSize, c.font, c.theme.Text.Color()))
	if focused {
		caretRect := layout.Rect{X: x0 + caretX, Y: inner.Y, W: 1, H: inner.H}
		c.emit(cmdbuf.RoundedRect(caretRect, 0, c.theme.Caret.Color()))
		c.imeRect = caretRect
		c.imeValid = true
	}
	c.popClip(pushed)

	c.focus.Register(n.id)
	if hb := c.hitBounds(r); !hb.Empty() {
		c.pending = append(c.pending, clickable{id: n.id, kind: clickInput, bounds: hb, inner: inner})
	}
	if !hasSel {
		start, end = st.Cursor(), st.Cursor()
	}
	c.tree.Add(a11y.Node{
		ID:        n.id,
		Role:      a11y.RoleTextInput,
		Label:     n.text,
		Bounds:    r,
		Actions:   a11y.ActionFocus | a11y.ActionClick,
		Value:     st.Text(),
		Selection: &a11y.Selection{Start: start, End: end},
	})
}

// ============================================================================
// Command helpers
// ============================================================================

func (c *Context) emit(cmd cmdbuf.Command) {
	c.overflow(c.cmds.Append(cmd))
}

// hitBounds clips r to the innermost clip rect.
func (c *Context) hitBounds(r layout.Rect) layout.Rect {
	if len(c.clip) == 0 {
		return r
	}
	return r.Intersect(c.clip[len(c.clip)-1])
}

// pushClip opens a clip of r within the current clip. It reports whether a
// clip command was queued; the clip applies to hit testing either way.
func (c *Context) pushClip(r layout.Rect) bool {
	r = c.hitBounds(r)
	c.clip = append(c.clip, r)
	if err := c.cmds.PushClip(r); err != nil {
		c.overflow(err)
		return false
	}
	return true
}

func (c *Context) popClip(pushed bool) {
	c.clip = c.clip[:len(c.clip)-1]
	if pushed {
		c.overflow(c.cmds.PopClip())
	}
}
