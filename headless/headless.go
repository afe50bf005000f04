// Package headless is a software stand-in for the native engine. It measures
// text with real font metrics and records everything a frame submits, so UI
// code can be exercised in tests and CI without a window or GPU.
package headless

import (
	"errors"
	"fmt"
	"slices"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/agiangrant/mcore/a11y"
	"github.com/agiangrant/mcore/cmdbuf"
)

// ErrClosed is returned by calls on a closed Engine.
var ErrClosed = errors.New("headless: engine closed")

// Op names an engine call for fault injection.
type Op string

const (
	OpSubmit              Op = "submit"
	OpPresent             Op = "present"
	OpResize              Op = "resize"
	OpUpdateAccessibility Op = "update_accessibility"
)

// Frame is one presented frame.
type Frame struct {
	Time     float64
	Commands []cmdbuf.Command
	Clear    cmdbuf.Color
}

// Count returns the number of commands of kind k.
func (f Frame) Count(k cmdbuf.Kind) int {
	n := 0
	for _, c := range f.Commands {
		if c.Kind == k {
			n++
		}
	}
	return n
}

// Texts returns the strings of the frame's text commands in paint order.
func (f Frame) Texts() []string {
	var out []string
	for _, c := range f.Commands {
		if c.Kind == cmdbuf.KindText {
			out = append(out, c.Text)
		}
	}
	return out
}

// Option configures an Engine.
type Option func(*Engine)

// WithBitmapFont measures all text with the 7x13 bitmap face regardless of
// font id and size: every glyph advances 7 pixels and lines are 13 pixels
// tall.
func WithBitmapFont() Option {
	return func(e *Engine) { e.bitmap = true }
}

// WithSize sets the initial surface size in physical pixels.
func WithSize(widthPx, heightPx int, scale float32) Option {
	return func(e *Engine) {
		e.widthPx, e.heightPx, e.scale = widthPx, heightPx, scale
	}
}

// Engine records frames instead of drawing them.
type Engine struct {
	bitmap bool
	fonts  []*opentype.Font
	names  []string
	faces  map[faceKey]font.Face

	widthPx, heightPx int
	scale             float32

	time      float64
	began     bool
	submitted []cmdbuf.Command
	frames    []Frame
	trees     []a11y.Tree
	faults    map[Op]error
	closed    bool
}

type faceKey struct {
	font uint32
	size float32
}

// New returns an Engine with Go Regular registered as font 0.
func New(opts ...Option) (*Engine, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse default font: %w", err)
	}
	e := &Engine{
		fonts:    []*opentype.Font{regular},
		names:    []string{"goregular"},
		faces:    make(map[faceKey]font.Face),
		widthPx:  800,
		heightPx: 600,
		scale:    1,
		faults:   make(map[Op]error),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// FailNext makes the next call to op return err.
func (e *Engine) FailNext(op Op, err error) {
	e.faults[op] = err
}

func (e *Engine) fault(op Op) error {
	if e.closed {
		return ErrClosed
	}
	if err, ok := e.faults[op]; ok {
		delete(e.faults, op)
		return err
	}
	return nil
}

// BeginFrame starts a frame at time t.
func (e *Engine) BeginFrame(t float64) {
	e.time = t
	e.began = true
	e.submitted = e.submitted[:0]
}

// Submit records a copy of the frame's commands.
func (e *Engine) Submit(cmds []cmdbuf.Command) error {
	if err := e.fault(OpSubmit); err != nil {
		return err
	}
	e.submitted = append(e.submitted[:0], cmds...)
	return nil
}

// Present records the submitted commands as a finished frame.
func (e *Engine) Present(clear cmdbuf.Color) error {
	if err := e.fault(OpPresent); err != nil {
		return err
	}
	if !e.began {
		return errors.New("headless: present without begin frame")
	}
	e.began = false
	e.frames = append(e.frames, Frame{Time: e.time, Commands: slices.Clone(e.submitted), Clear: clear})
	return nil
}

// Resize records the new surface size.
func (e *Engine) Resize(widthPx, heightPx int, scale float32) error {
	if err := e.fault(OpResize); err != nil {
		return err
	}
	e.widthPx, e.heightPx, e.scale = widthPx, heightPx, scale
	return nil
}

// Size returns the surface size in physical pixels and its scale factor.
func (e *Engine) Size() (widthPx, heightPx int, scale float32) {
	return e.widthPx, e.heightPx, e.scale
}

// UpdateAccessibility records a copy of t.
func (e *Engine) UpdateAccessibility(t a11y.Tree) error {
	if err := e.fault(OpUpdateAccessibility); err != nil {
		return err
	}
	e.trees = append(e.trees, t.Clone())
	return nil
}

// RegisterFont parses an OpenType or TrueType blob and returns its id.
func (e *Engine) RegisterFont(name string, data []byte) (uint32, error) {
	if e.closed {
		return 0, ErrClosed
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return 0, fmt.Errorf("register font %q: %w", name, err)
	}
	e.fonts = append(e.fonts, f)
	e.names = append(e.names, name)
	return uint32(len(e.fonts) - 1), nil
}

// FontName returns the name a font id was registered under.
func (e *Engine) FontName(id uint32) (string, bool) {
	if int(id) >= len(e.names) {
		return "", false
	}
	return e.names[id], true
}

// Close releases cached faces. Later calls fail with ErrClosed.
func (e *Engine) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	var errs []error
	for k, f := range e.faces {
		errs = append(errs, f.Close())
		delete(e.faces, k)
	}
	return errors.Join(errs...)
}

// Frames returns every presented frame.
func (e *Engine) Frames() []Frame { return e.frames }

// LastFrame returns the most recently presented frame.
func (e *Engine) LastFrame() (Frame, bool) {
	if len(e.frames) == 0 {
		return Frame{}, false
	}
	return e.frames[len(e.frames)-1], true
}

// Trees returns every accessibility tree received.
func (e *Engine) Trees() []a11y.Tree { return e.trees }

// LastTree returns the most recent accessibility tree.
func (e *Engine) LastTree() (a11y.Tree, bool) {
	if len(e.trees) == 0 {
		return a11y.Tree{}, false
	}
	return e.trees[len(e.trees)-1], true
}
