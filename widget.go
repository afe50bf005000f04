package mcore

import (
	"github.com/agiangrant/mcore/cmdbuf"
	"github.com/agiangrant/mcore/ident"
	"github.com/agiangrant/mcore/layout"
)

// Custom is a widget implemented outside the engine.
type Custom interface {
	// Measure returns the widget's natural size given the space available.
	Measure(tm TextMeasurer, available layout.Size) layout.Size
	// Render paints the widget into bounds.
	Render(p *Painter, bounds layout.Rect)
}

// Painter appends commands on behalf of a custom widget.
type Painter struct {
	c *Context
}

// Fill paints a rounded rect.
func (p *Painter) Fill(r layout.Rect, radius float32, color cmdbuf.Color) {
	p.c.emit(cmdbuf.RoundedRect(r, radius, color))
}

// Stroke paints a rounded rect outline.
func (p *Painter) Stroke(r layout.Rect, radius, width float32, color cmdbuf.Color) {
	p.c.emit(cmdbuf.Outline(r, radius, width, color))
}

// Text paints a text run in the context's font with its top-left at origin.
func (p *Painter) Text(origin layout.Point, text string, color cmdbuf.Color) {
	p.c.emit(cmdbuf.Text(origin, 0, text, p.c.fontSize, p.c.font, color))
}

// Image paints a texture into r.
func (p *Painter) Image(r layout.Rect, texture uint32) {
	p.c.emit(cmdbuf.Image(r, texture))
}

// Command appends an arbitrary command. Clip commands are not allowed.
func (p *Painter) Command(cmd cmdbuf.Command) {
	if cmd.Kind == cmdbuf.KindPushClip || cmd.Kind == cmdbuf.KindPopClip {
		precondition("Painter.Command", "custom widgets cannot emit %s", cmd.Kind)
	}
	p.c.emit(cmd)
}

// Measurer returns the text measurer.
func (p *Painter) Measurer() TextMeasurer { return p.c.engine }

// Label declares a text label. Long text wraps to the space available.
func (c *Context) Label(text string) {
	n := c.leaf("Label", nodeLabel)
	if n == nil {
		return
	}
	n.id = c.ids.Derive(text)
	n.text = text
}

// Button declares a push button and reports whether it was clicked since
// the previous frame. Clicks are detected against the previous frame's
// layout, so a press lands in the declaration that follows it.
func (c *Context) Button(label string) bool {
	id := c.ids.Derive(label)
	n := c.leaf("Button", nodeButton)
	if n != nil {
		n.id = id
		n.text = label
	}
	return c.clicked[id]
}

// TextInput declares a single-line text input and returns its current text
// and whether input changed it since the previous frame.
func (c *Context) TextInput(label string) (string, bool) {
	id := c.ids.Derive(label)
	n := c.leaf("TextInput", nodeTextInput)
	st := c.texts.GetOrCreate(id)
	if n != nil {
		n.id = id
		n.text = label
	}
	changed := c.edited[id]
	delete(c.edited, id)
	return st.Text(), changed
}

// SetText replaces the text of the input labelled label at this point of
// the declaration.
func (c *Context) SetText(label, text string) error {
	return c.texts.SetText(c.ids.Derive(label), text)
}

// Text returns the text of the input with the given id.
func (c *Context) Text(id ident.WidgetID) string {
	return c.texts.Text(id)
}

// Spacer declares a fixed-size gap.
func (c *Context) Spacer(w, h float32) {
	n := c.leaf("Spacer", nodeSpacer)
	if n == nil {
		return
	}
	n.size = layout.Size{W: w, H: h}
}

// FlexSpacer declares a gap that takes a share of the leftover space.
func (c *Context) FlexSpacer(weight float32) {
	n := c.leaf("FlexSpacer", nodeSpacer)
	if n == nil {
		return
	}
	n.flex = weight
}

// Image declares an image of the given size drawn from a texture.
func (c *Context) Image(label string, texture uint32, size layout.Size) {
	n := c.leaf("Image", nodeImage)
	if n == nil {
		return
	}
	n.id = c.ids.Derive(label)
	n.text = label
	n.texture = texture
	n.size = size
}

// Custom declares a widget that measures and paints itself.
func (c *Context) Custom(label string, w Custom) {
	if w == nil {
		precondition("Custom", "nil widget %q", label)
	}
	n := c.leaf("Custom", nodeCustom)
	if n == nil {
		return
	}
	n.id = c.ids.Derive(label)
	n.text = label
	n.custom = w
}
