//go:build !js

package ffi

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/agiangrant/mcore/a11y"
	"github.com/agiangrant/mcore/cmdbuf"
	"github.com/agiangrant/mcore/layout"
)

// Platform identifies the windowing system behind a Surface.
// Values match mcore_platform_t.
type Platform int32

const (
	PlatformMacOS   Platform = 1
	PlatformWindows Platform = 2
	PlatformX11     Platform = 3
	PlatformWayland Platform = 4
)

func (p Platform) String() string {
	switch p {
	case PlatformMacOS:
		return "macos"
	case PlatformWindows:
		return "windows"
	case PlatformX11:
		return "x11"
	case PlatformWayland:
		return "wayland"
	}
	return fmt.Sprintf("platform(%d)", int32(p))
}

// Surface describes the native view the engine draws into.
type Surface struct {
	Platform Platform
	// View is the native view (NSView*, HWND, X11 window, wl_surface*).
	View uintptr
	// Layer is the presentation layer where the platform has one (CAMetalLayer*).
	Layer    uintptr
	Scale    float32
	WidthPx  int
	HeightPx int
}

// LogicalSize returns the surface size in logical pixels.
func (s Surface) LogicalSize() layout.Size {
	scale := s.Scale
	if scale <= 0 {
		scale = 1
	}
	return layout.Size{W: float32(s.WidthPx) / scale, H: float32(s.HeightPx) / scale}
}

func (s Surface) desc() surfaceDescC {
	return surfaceDescC{
		Platform: int32(s.Platform),
		View:     s.View,
		Layer:    s.Layer,
		Scale:    s.Scale,
		WidthPx:  int32(max(s.WidthPx, 1)),
		HeightPx: int32(max(s.HeightPx, 1)),
	}
}

// EngineError is a native call that reported failure.
type EngineError struct {
	Op      string
	Message string
}

func (e *EngineError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("mcore %s failed", e.Op)
	}
	return fmt.Sprintf("mcore %s failed: %s", e.Op, e.Message)
}

// Native is a libmcore context. It is not safe for concurrent use; all calls
// belong on the UI thread.
type Native struct {
	ctx     uintptr
	surface Surface
	batch   *batchBuffer
	logger  *slog.Logger
	tree    a11y.Tree
}

// Open loads libmcore if needed and creates a context for s.
func Open(s Surface, libraryPath string, logger *slog.Logger) (*Native, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := Load(libraryPath, logger); err != nil {
		return nil, err
	}
	desc := s.desc()
	ctx := fnCreate(uintptr(unsafe.Pointer(&desc)))
	runtime.KeepAlive(&desc)
	if ctx == 0 {
		return nil, &EngineError{Op: "create", Message: LastError()}
	}
	logger.Debug("native engine created", "platform", s.Platform, "width_px", s.WidthPx, "height_px", s.HeightPx)
	return &Native{ctx: ctx, surface: s, batch: newBatchBuffer(), logger: logger}, nil
}

// Surface returns the surface the context was created or last resized with.
func (n *Native) Surface() Surface { return n.surface }

// Close destroys the native context.
func (n *Native) Close() error {
	if n.ctx == 0 {
		return nil
	}
	setActionHandler(n, nil)
	fnDestroy(n.ctx)
	n.ctx = 0
	return nil
}

// Resize updates the surface size and scale.
func (n *Native) Resize(widthPx, heightPx int, scale float32) error {
	if n.ctx == 0 {
		return ErrNotLoaded
	}
	n.surface.WidthPx, n.surface.HeightPx, n.surface.Scale = widthPx, heightPx, scale
	desc := n.surface.desc()
	fnResize(n.ctx, uintptr(unsafe.Pointer(&desc)))
	runtime.KeepAlive(&desc)
	return nil
}

// BeginFrame starts a frame at time t, in seconds.
func (n *Native) BeginFrame(t float64) {
	if n.ctx != 0 {
		fnBeginFrame(n.ctx, t)
	}
}

// Submit hands a frame's commands to the engine. Engines without the batch
// entry point receive rects and text one call at a time; images and clips
// are dropped on that path.
func (n *Native) Submit(cmds []cmdbuf.Command) error {
	if n.ctx == 0 {
		return ErrNotLoaded
	}
	if fnSubmitCommands != nil {
		data, err := n.batch.commands(cmds)
		if err != nil {
			return err
		}
		ptr, length := pointer(data)
		status := fnSubmitCommands(n.ctx, ptr, length)
		runtime.KeepAlive(data)
		if status != 0 {
			return &EngineError{Op: "submit_commands", Message: LastError()}
		}
		return nil
	}

	var dropped int
	for i := range cmds {
		c := &cmds[i]
		switch c.Kind {
		case cmdbuf.KindRoundedRect:
			n.drawRect(c)
		case cmdbuf.KindText:
			n.drawText(c)
		default:
			dropped++
		}
	}
	if dropped > 0 {
		n.logger.Debug("commands not supported by native engine", "dropped", dropped)
	}
	return nil
}

func (n *Native) drawRect(c *cmdbuf.Command) {
	r := roundedRectC{
		X: c.Rect.X, Y: c.Rect.Y, W: c.Rect.W, H: c.Rect.H,
		Radius: c.Radius,
		Fill:   rgba(c.Fill),
	}
	fnRectRounded(n.ctx, uintptr(unsafe.Pointer(&r)))
	runtime.KeepAlive(&r)
}

func (n *Native) drawText(c *cmdbuf.Command) {
	text := cString(c.Text)
	req := textReqC{
		UTF8:       uintptr(unsafe.Pointer(&text[0])),
		WrapWidth:  wrapWidth(c.Rect.W),
		FontSizePx: c.FontSize,
		FontID:     int32(c.FontID),
	}
	fnTextDraw(n.ctx, uintptr(unsafe.Pointer(&req)), c.Rect.X, c.Rect.Y, rgba(c.Color))
	runtime.KeepAlive(text)
	runtime.KeepAlive(&req)
}

// Present renders the frame over clear and presents it.
func (n *Native) Present(clear cmdbuf.Color) error {
	if n.ctx == 0 {
		return ErrNotLoaded
	}
	if fnEndFramePresent(n.ctx, rgba(clear)) != 0 {
		return &EngineError{Op: "end_frame_present", Message: LastError()}
	}
	return nil
}

// RegisterFont registers a font blob and returns its font id.
func (n *Native) RegisterFont(name string, data []byte) (uint32, error) {
	if n.ctx == 0 {
		return 0, ErrNotLoaded
	}
	if len(data) == 0 {
		return 0, &EngineError{Op: "font_register", Message: "empty font data"}
	}
	cname := cString(name)
	blob := fontBlobC{
		Data: uintptr(unsafe.Pointer(&data[0])),
		Len:  uintptr(len(data)),
		Name: uintptr(unsafe.Pointer(&cname[0])),
	}
	id := fnFontRegister(n.ctx, uintptr(unsafe.Pointer(&blob)))
	runtime.KeepAlive(data)
	runtime.KeepAlive(cname)
	runtime.KeepAlive(&blob)
	if id < 0 {
		return 0, &EngineError{Op: "font_register", Message: LastError()}
	}
	return uint32(id), nil
}

// MeasureText lays out text and returns its size and line count. A maxWidth
// of zero or less disables wrapping.
func (n *Native) MeasureText(text string, font uint32, fontSize, maxWidth float32) (layout.Size, int) {
	if n.ctx == 0 {
		return layout.Size{}, 0
	}
	ctext := cString(text)
	req := textReqC{
		UTF8:       uintptr(unsafe.Pointer(&ctext[0])),
		WrapWidth:  wrapWidth(maxWidth),
		FontSizePx: fontSize,
		FontID:     int32(font),
	}
	var out textMetricsC
	fnTextLayout(n.ctx, uintptr(unsafe.Pointer(&req)), uintptr(unsafe.Pointer(&out)))
	runtime.KeepAlive(ctext)
	runtime.KeepAlive(&req)
	return layout.Size{W: out.AdvanceW, H: out.AdvanceH}, int(out.LineCount)
}

// MeasureToByte returns the x position of byte offset in text, unwrapped.
func (n *Native) MeasureToByte(text string, font uint32, fontSize float32, offset int) float32 {
	offset = min(max(offset, 0), len(text))
	if n.ctx == 0 || offset == 0 {
		return 0
	}
	if fnTextMeasureToByte == nil {
		sz, _ := n.MeasureText(text[:offset], font, fontSize, 0)
		return sz.W
	}
	ctext := cString(text)
	req := textReqC{
		UTF8:       uintptr(unsafe.Pointer(&ctext[0])),
		WrapWidth:  wrapWidth(0),
		FontSizePx: fontSize,
		FontID:     int32(font),
	}
	x := fnTextMeasureToByte(n.ctx, uintptr(unsafe.Pointer(&req)), uint32(offset))
	runtime.KeepAlive(ctext)
	runtime.KeepAlive(&req)
	return x
}

// UpdateAccessibility publishes a frame's accessibility tree. The last tree
// is kept for assistive technology that attaches later. Engines without an
// accessibility bridge accept and ignore the tree.
func (n *Native) UpdateAccessibility(t a11y.Tree) error {
	n.tree = t.Clone()
	if n.ctx == 0 || fnA11yUpdate == nil {
		return nil
	}
	data, err := n.batch.tree(t)
	if err != nil {
		return err
	}
	ptr, length := pointer(data)
	status := fnA11yUpdate(n.ctx, ptr, length)
	runtime.KeepAlive(data)
	if status != 0 {
		return &EngineError{Op: "a11y_update", Message: LastError()}
	}
	return nil
}

// LastTree returns the most recently published accessibility tree.
func (n *Native) LastTree() a11y.Tree { return n.tree }

// SetActionHandler routes accessibility actions to fn. Passing nil detaches.
func (n *Native) SetActionHandler(fn func(id uint64, code uint8)) {
	setActionHandler(n, fn)
}

// The native side holds one action callback. A single trampoline is
// registered with it and dispatches to the context that registered last.
var (
	actionMu      sync.Mutex
	actionOwner   *Native
	actionFn      func(id uint64, code uint8)
	actionTramp   uintptr
	actionTrampOK sync.Once
)

func setActionHandler(owner *Native, fn func(id uint64, code uint8)) {
	if fnA11ySetActionCallback == nil {
		return
	}
	actionMu.Lock()
	defer actionMu.Unlock()
	if fn == nil {
		if actionOwner == owner {
			actionOwner, actionFn = nil, nil
		}
		return
	}
	actionTrampOK.Do(func() {
		actionTramp = purego.NewCallback(func(id uint64, code uint8) {
			actionMu.Lock()
			f := actionFn
			actionMu.Unlock()
			if f != nil {
				f(id, code)
			}
		})
		fnA11ySetActionCallback(actionTramp)
	})
	actionOwner, actionFn = owner, fn
}

func rgba(c cmdbuf.Color) RGBA {
	return RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// wrapWidth maps "no wrap" to the large width the engine expects.
func wrapWidth(w float32) float32 {
	if w <= 0 {
		return 1e9
	}
	return w
}
