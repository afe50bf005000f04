// Package cmdbuf is the per-frame draw command list.
//
// Commands are appended in paint order during the render pass and handed to
// the engine in one batch at frame end. The buffer has a fixed capacity and
// never grows; it is reset, not reallocated, at the start of every frame.
package cmdbuf

import (
	"errors"
	"fmt"

	"github.com/agiangrant/mcore/layout"
)

var (
	// ErrCapacityExceeded is returned when an append would exceed the buffer's capacity.
	ErrCapacityExceeded = errors.New("cmdbuf: capacity exceeded")
	// ErrUnbalancedClip is returned by PopClip with no open clip.
	ErrUnbalancedClip = errors.New("cmdbuf: pop clip without matching push")
)

// Kind tags a Command.
type Kind uint8

const (
	KindRoundedRect Kind = iota + 1
	KindText
	KindImage
	KindPushClip
	KindPopClip
)

func (k Kind) String() string {
	switch k {
	case KindRoundedRect:
		return "rounded_rect"
	case KindText:
		return "text"
	case KindImage:
		return "image"
	case KindPushClip:
		return "push_clip"
	case KindPopClip:
		return "pop_clip"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Color is a linear RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// RGBA builds a Color from 8-bit components.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: float32(r) / 255, G: float32(g) / 255, B: float32(b) / 255, A: float32(a) / 255}
}

// Transparent is the zero color.
var Transparent = Color{}

// Shadow is a drop shadow under a rounded rect. A zero Color disables it.
type Shadow struct {
	Offset layout.Point
	Blur   float32
	Color  Color
}

// Command is one draw primitive. Which fields are meaningful depends on Kind:
//
//	RoundedRect: Rect, Radius, Fill, Border, BorderWidth, Shadow
//	Text:        Rect.X/Y as the origin, Rect.W as wrap width (0 = no wrap), Text, FontSize, FontID, Color
//	Image:       Rect, Texture
//	PushClip:    Rect
//	PopClip:     none
type Command struct {
	Kind        Kind
	Rect        layout.Rect
	Radius      float32
	Fill        Color
	Border      Color
	BorderWidth float32
	Shadow      Shadow

	Text     string
	FontSize float32
	FontID   uint32
	Color    Color

	Texture uint32
}

// RoundedRect returns a filled rounded rect command.
func RoundedRect(r layout.Rect, radius float32, fill Color) Command {
	return Command{Kind: KindRoundedRect, Rect: r, Radius: radius, Fill: fill}
}

// Outline returns an unfilled rounded rect with a border.
func Outline(r layout.Rect, radius, width float32, border Color) Command {
	return Command{Kind: KindRoundedRect, Rect: r, Radius: radius, Border: border, BorderWidth: width}
}

// Text returns a text run command.
func Text(origin layout.Point, wrap float32, text string, fontSize float32, fontID uint32, c Color) Command {
	return Command{
		Kind:     KindText,
		Rect:     layout.Rect{X: origin.X, Y: origin.Y, W: wrap},
		Text:     text,
		FontSize: fontSize,
		FontID:   fontID,
		Color:    c,
	}
}

// Image returns an image command drawing texture into r.
func Image(r layout.Rect, texture uint32) Command {
	return Command{Kind: KindImage, Rect: r, Texture: texture}
}

// Buffer is a fixed-capacity command list.
//
// Each open clip reserves one slot so the matching PopClip always fits. A
// buffer that rejects appends therefore stays balanced as long as every
// successful PushClip is popped.
type Buffer struct {
	cmds     []Command
	capacity int
	depth    int
}

// New returns an empty buffer that holds at most capacity commands.
func New(capacity int) *Buffer {
	if capacity < 0 {
		capacity = 0
	}
	return &Buffer{cmds: make([]Command, 0, capacity), capacity: capacity}
}

// Reset truncates the buffer to zero commands, keeping its storage.
func (b *Buffer) Reset() {
	clear(b.cmds)
	b.cmds = b.cmds[:0]
	b.depth = 0
}

// Append adds a draw command. Clip commands are routed to PushClip and
// PopClip. On error the buffer is unchanged.
func (b *Buffer) Append(c Command) error {
	switch c.Kind {
	case KindPushClip:
		return b.PushClip(c.Rect)
	case KindPopClip:
		return b.PopClip()
	}
	if len(b.cmds)+b.depth >= b.capacity {
		return ErrCapacityExceeded
	}
	b.cmds = append(b.cmds, c)
	return nil
}

// PushClip opens a clip rect. Commands appended until the matching PopClip
// are clipped to r.
func (b *Buffer) PushClip(r layout.Rect) error {
	if len(b.cmds)+b.depth+2 > b.capacity {
		return ErrCapacityExceeded
	}
	b.cmds = append(b.cmds, Command{Kind: KindPushClip, Rect: r})
	b.depth++
	return nil
}

// PopClip closes the innermost clip rect.
func (b *Buffer) PopClip() error {
	if b.depth == 0 {
		return ErrUnbalancedClip
	}
	b.cmds = append(b.cmds, Command{Kind: KindPopClip})
	b.depth--
	return nil
}

// Len returns the number of queued commands.
func (b *Buffer) Len() int { return len(b.cmds) }

// Cap returns the buffer's capacity.
func (b *Buffer) Cap() int { return b.capacity }

// Depth returns the number of open clips.
func (b *Buffer) Depth() int { return b.depth }

// Balanced reports whether every pushed clip has been popped.
func (b *Buffer) Balanced() bool { return b.depth == 0 }

// Commands returns the queued commands in paint order. The slice aliases the
// buffer's storage and is invalidated by Reset.
func (b *Buffer) Commands() []Command { return b.cmds }
