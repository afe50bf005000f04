package mcore

import (
	"errors"
	"log/slog"

	"github.com/agiangrant/mcore/a11y"
	"github.com/agiangrant/mcore/cmdbuf"
	"github.com/agiangrant/mcore/focus"
	"github.com/agiangrant/mcore/ident"
	"github.com/agiangrant/mcore/layout"
	"github.com/agiangrant/mcore/scroll"
	"github.com/agiangrant/mcore/textedit"
)

// Clipboard is the platform clipboard used by text inputs.
type Clipboard = textedit.Clipboard

// windowID is the accessibility id of the window node.
var windowID = ident.FromLabel("mcore.window")

// StackKind is the orientation of a stack.
type StackKind uint8

const (
	// VStack lays children top to bottom.
	VStack StackKind = iota
	// HStack lays children left to right.
	HStack
)

func (k StackKind) String() string {
	if k == HStack {
		return "hstack"
	}
	return "vstack"
}

func (k StackKind) axis() layout.Axis {
	if k == HStack {
		return layout.Horizontal
	}
	return layout.Vertical
}

// StackOptions configures a stack. Zero Width or Height means the stack
// takes its natural size on that axis.
type StackOptions struct {
	Gap     float32
	Padding float32
	Width   float32
	Height  float32
	// Flex gives the stack a proportional share of its parent's leftover
	// space.
	Flex float32
}

// ScrollOptions configures a scroll area. Children stack vertically unless
// only horizontal scrolling is enabled. Zero Width or Height means the area
// takes its content's size on that axis, up to the space available.
type ScrollOptions struct {
	Axes    scroll.Axes
	Gap     float32
	Padding float32
	Width   float32
	Height  float32
	Flex    float32
}

type scopeKind uint8

const (
	scopeVStack scopeKind = iota
	scopeHStack
	scopeScroll
)

func (k scopeKind) String() string {
	switch k {
	case scopeHStack:
		return "hstack"
	case scopeScroll:
		return "scroll area"
	}
	return "vstack"
}

// scope is an open container. n is nil once the frame has failed.
type scope struct {
	kind    scopeKind
	n       *node
	idDepth int
}

type clickKind uint8

const (
	clickButton clickKind = iota + 1
	clickInput
)

// clickable is a hit-test target recorded while rendering.
type clickable struct {
	id     ident.WidgetID
	kind   clickKind
	bounds layout.Rect
	// inner is a text input's text box.
	inner layout.Rect
}

// Context is one UI session. It owns every piece of cross-frame state and
// is driven from a single goroutine: frames and input callbacks must not run
// concurrently.
type Context struct {
	engine Engine
	cfg    Config
	theme  Theme
	logger *slog.Logger

	clipboard Clipboard
	font      uint32
	fontSize  float32

	window layout.Size
	scale  float32

	// Frame-scoped.
	inFrame    bool
	rootClosed bool
	arena      *arena
	open       []scope
	root       *node
	ids        ident.Stack
	cmds       *cmdbuf.Buffer
	tree       a11y.Builder
	clip       []layout.Rect
	frameErr   error
	capErr     error
	frame      uint64

	// Session-scoped.
	focus   focus.Manager
	scrolls *scroll.Store
	router  scroll.Router
	texts   *textedit.Store
	edited  map[ident.WidgetID]bool

	// Interaction results. clickables is the last completed frame's hit-test
	// set; pending is written by the frame being rendered.
	clickables []clickable
	pending    []clickable
	clicked    map[ident.WidgetID]bool
	pressed    ident.WidgetID
	pointer    layout.Point
	released   bool

	imeRect  layout.Rect
	imeValid bool
}

// NewContext returns a Context drawing through engine.
func NewContext(engine Engine, cfg Config, opts ...Option) (*Context, error) {
	c, err := newContext(engine, cfg, resolveOptions(cfg, opts))
	if err != nil {
		return nil, err
	}
	c.window = layout.Size{W: cfg.Window.Width, H: cfg.Window.Height}
	c.scale = cfg.Window.Scale
	return c, nil
}

func newContext(engine Engine, cfg Config, o options) (*Context, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Context{
		engine:    engine,
		cfg:       cfg,
		theme:     cfg.Theme,
		logger:    o.logger,
		clipboard: o.clipboard,
		fontSize:  cfg.FontSize,
		arena:     newArena(cfg.MaxNodes),
		cmds:      cmdbuf.New(cfg.CommandCapacity),
		scrolls:   scroll.NewStore(),
		texts:     textedit.NewStore(cfg.TextBufferCapacity),
		edited:    make(map[ident.WidgetID]bool),
		clicked:   make(map[ident.WidgetID]bool),
	}, nil
}

// Close releases the engine.
func (c *Context) Close() error {
	return c.engine.Close()
}

// Logger returns the Context's logger.
func (c *Context) Logger() *slog.Logger { return c.logger }

// SetFont selects the font and size used by text widgets.
func (c *Context) SetFont(font uint32, size float32) {
	c.font = font
	if size > 0 {
		c.fontSize = size
	}
}

// WindowSize returns the window's logical size.
func (c *Context) WindowSize() layout.Size { return c.window }

// Frame returns the number of frames begun so far.
func (c *Context) Frame() uint64 { return c.frame }

// BeginFrame starts declaring a frame at time t, in seconds.
func (c *Context) BeginFrame(t float64) {
	if c.inFrame {
		precondition("BeginFrame", "frame %d is still open", c.frame)
	}
	c.inFrame = true
	c.rootClosed = false
	c.frame++

	c.cmds.Reset()
	c.focus.BeginFrame()
	c.arena.reset()
	c.open = c.open[:0]
	c.root = nil
	c.ids.Reset()
	c.clip = c.clip[:0]
	c.frameErr = nil
	c.capErr = nil
	c.pending = c.pending[:0]
	c.router.Discard()
	c.imeValid = false

	c.engine.BeginFrame(t)
}

// EndFrame submits the frame's commands and accessibility tree and presents
// over clear.
//
// If frame storage ran out, nothing is presented and an *Error of kind
// KindAllocation is returned. If the command buffer filled up, the commands
// that fit are presented and an *Error of kind KindCapacity is returned.
// Engine failures are logged and returned as KindEngine.
func (c *Context) EndFrame(clear cmdbuf.Color) error {
	if !c.inFrame {
		precondition("EndFrame", "no frame is open")
	}
	if len(c.open) > 0 {
		precondition("EndFrame", "%d layout scope(s) still open, innermost %s", len(c.open), c.open[len(c.open)-1].kind)
	}
	c.inFrame = false
	defer func() { c.released = false }()

	if c.frameErr != nil {
		c.logger.Error("frame abandoned", "frame", c.frame, "error", c.frameErr)
		return &Error{Op: "EndFrame", Kind: KindAllocation, Err: c.frameErr}
	}

	if err := c.engine.Submit(c.cmds.Commands()); err != nil {
		return c.engineError("Submit", err)
	}
	if c.cfg.Accessibility {
		if err := c.engine.UpdateAccessibility(c.tree.Finish(c.focus.Focused())); err != nil {
			return c.engineError("UpdateAccessibility", err)
		}
	}
	if err := c.engine.Present(clear); err != nil {
		return c.engineError("Present", err)
	}

	if c.capErr != nil {
		return &Error{Op: "EndFrame", Kind: KindCapacity, Err: c.capErr}
	}
	return nil
}

func (c *Context) engineError(op string, err error) error {
	c.logger.Warn("engine call failed", "op", op, "engine_error", err)
	return &Error{Op: op, Kind: KindEngine, Err: err}
}

// fail records the first allocation failure of the frame. Later
// declarations in the frame become no-ops.
func (c *Context) fail(op string, err error) {
	if c.frameErr != nil {
		return
	}
	c.frameErr = err
	c.logger.Error("declaration failed", "op", op, "frame", c.frame, "nodes", c.arena.len(), "error", err)
}

// overflow records a command buffer failure during rendering.
func (c *Context) overflow(err error) {
	if err == nil || c.capErr != nil {
		return
	}
	if !errors.Is(err, cmdbuf.ErrCapacityExceeded) {
		// Unbalanced clips mean the render pass itself is wrong.
		panic(err)
	}
	c.capErr = err
	c.logger.Warn("command buffer full", "frame", c.frame, "capacity", c.cmds.Cap())
}

// FrameError returns the allocation failure recorded for the current frame,
// if any.
func (c *Context) FrameError() error { return c.frameErr }

// PushID pushes label onto the identity stack so widgets declared until the
// matching PopID get ids scoped under it.
func (c *Context) PushID(label string) ident.WidgetID {
	c.requireFrame("PushID")
	return c.ids.Push(label)
}

// PushIDInt is PushID for loop indices.
func (c *Context) PushIDInt(n int) ident.WidgetID {
	c.requireFrame("PushIDInt")
	return c.ids.PushInt(n)
}

// PopID pops the identity stack.
func (c *Context) PopID() {
	if c.ids.Depth() == 0 {
		precondition("PopID", "identity stack is empty")
	}
	if n := len(c.open); n > 0 {
		top := c.open[n-1]
		floor := top.idDepth
		if top.kind == scopeScroll {
			// The area's own label sits above idDepth.
			floor++
		}
		if c.ids.Depth() <= floor {
			precondition("PopID", "would pop the id of the enclosing %s", top.kind)
		}
	}
	c.ids.Pop()
}

// ID returns the id a widget labelled label gets at this point of the
// declaration.
func (c *Context) ID(label string) ident.WidgetID {
	return c.ids.Derive(label)
}

func (c *Context) requireFrame(op string) {
	if !c.inFrame {
		precondition(op, "called outside BeginFrame/EndFrame")
	}
}

// BeginStack opens a stack. The outermost stack of a frame is the root and
// fills the window.
func (c *Context) BeginStack(kind StackKind, opts StackOptions) {
	c.requireFrame("BeginStack")
	sk := scopeVStack
	if kind == HStack {
		sk = scopeHStack
	}
	n := c.openNode("BeginStack", nodeStack)
	if n != nil {
		n.axis = kind.axis()
		n.gap = opts.Gap
		n.padding = opts.Padding
		n.fixed = layout.Size{W: opts.Width, H: opts.Height}
		n.flex = opts.Flex
	}
	c.open = append(c.open, scope{kind: sk, n: n, idDepth: c.ids.Depth()})
}

// EndStack closes the innermost stack, which must be of the given kind.
// Closing the root lays out and renders the frame.
func (c *Context) EndStack(kind StackKind) {
	want := scopeVStack
	if kind == HStack {
		want = scopeHStack
	}
	c.closeScope("EndStack", want)
}

// BeginScrollArea opens a scroll area identified by label. Scroll areas
// cannot nest. Widgets inside get ids scoped under the area.
func (c *Context) BeginScrollArea(label string, opts ScrollOptions) {
	c.requireFrame("BeginScrollArea")
	for _, s := range c.open {
		if s.kind == scopeScroll {
			precondition("BeginScrollArea", "scroll area %q nested inside another scroll area", label)
		}
	}
	if opts.Axes == 0 {
		opts.Axes = scroll.AxisY
	}
	depth := c.ids.Depth()
	id := c.ids.Push(label)
	n := c.openNode("BeginScrollArea", nodeScroll)
	if n != nil {
		n.id = id
		n.axes = opts.Axes
		n.axis = layout.Vertical
		if opts.Axes == scroll.AxisX {
			n.axis = layout.Horizontal
		}
		n.gap = opts.Gap
		n.padding = opts.Padding
		n.fixed = layout.Size{W: opts.Width, H: opts.Height}
		n.flex = opts.Flex
		c.scrolls.GetOrCreate(id, opts.Axes)
	}
	c.open = append(c.open, scope{kind: scopeScroll, n: n, idDepth: depth})
}

// EndScrollArea closes the innermost scroll area.
func (c *Context) EndScrollArea() {
	c.closeScope("EndScrollArea", scopeScroll)
}

// ScrollOffset returns the current offset of the scroll area labelled label
// at this point of the declaration.
func (c *Context) ScrollOffset(label string) layout.Point {
	if st, ok := c.scrolls.Get(c.ids.Derive(label)); ok {
		return st.Offset
	}
	return layout.Point{}
}

// openNode allocates a container and attaches it to the current scope.
func (c *Context) openNode(op string, k nodeKind) *node {
	if len(c.open) == 0 && c.rootClosed {
		precondition(op, "root layout already closed this frame")
	}
	if c.frameErr != nil {
		return nil
	}
	var parent *node
	if len(c.open) > 0 {
		parent = c.open[len(c.open)-1].n
		if parent == nil {
			return nil
		}
	}
	n, err := c.arena.alloc(k)
	if err != nil {
		c.fail(op, err)
		return nil
	}
	if parent != nil {
		parent.children = append(parent.children, n)
	} else {
		c.root = n
	}
	return n
}

func (c *Context) closeScope(op string, want scopeKind) {
	c.requireFrame(op)
	if len(c.open) == 0 {
		precondition(op, "no open layout scope")
	}
	top := c.open[len(c.open)-1]
	if top.kind != want {
		precondition(op, "innermost scope is a %s, not a %s", top.kind, want)
	}
	if top.kind == scopeScroll {
		if c.ids.Depth() != top.idDepth+1 {
			precondition(op, "unbalanced PushID inside scroll area")
		}
		c.ids.Pop()
	} else if c.ids.Depth() != top.idDepth {
		precondition(op, "unbalanced PushID inside %s", top.kind)
	}
	c.open = c.open[:len(c.open)-1]
	if len(c.open) > 0 {
		return
	}

	c.rootClosed = true
	clear(c.clicked)
	if c.frameErr != nil || c.root == nil {
		return
	}
	c.layoutFrame()
}

// leaf allocates a widget node under the innermost scope. It returns nil if
// the frame has already failed.
func (c *Context) leaf(op string, k nodeKind) *node {
	c.requireFrame(op)
	if len(c.open) == 0 {
		precondition(op, "widget declared with no open layout scope")
	}
	parent := c.open[len(c.open)-1].n
	if c.frameErr != nil || parent == nil {
		return nil
	}
	n, err := c.arena.alloc(k)
	if err != nil {
		c.fail(op, err)
		return nil
	}
	parent.children = append(parent.children, n)
	return n
}
