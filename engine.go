// Package mcore is an immediate-mode UI layout and composition engine.
//
// Application code redeclares its whole widget tree every frame between
// BeginFrame and EndFrame. When the outermost layout scope closes, the tree is
// measured, placed and rendered into a command buffer and an accessibility
// tree, which EndFrame hands to the Engine. State that a declaration cannot
// carry (focus, scroll offsets, text buffers) lives in the Context and is
// keyed by widget id.
package mcore

import (
	"log/slog"

	"github.com/agiangrant/mcore/a11y"
	"github.com/agiangrant/mcore/cmdbuf"
	"github.com/agiangrant/mcore/internal/ffi"
	"github.com/agiangrant/mcore/layout"
)

// Version is the module version reported by the CLI.
const Version = "0.3.0"

// Renderer draws frames.
type Renderer interface {
	// BeginFrame starts a frame at time t, in seconds.
	BeginFrame(t float64)
	// Submit hands over a frame's commands in paint order.
	Submit(cmds []cmdbuf.Command) error
	// Present renders the submitted frame over clear.
	Present(clear cmdbuf.Color) error
	// Resize updates the surface size in physical pixels.
	Resize(widthPx, heightPx int, scale float32) error
	// RegisterFont registers a font blob and returns its id.
	RegisterFont(name string, data []byte) (uint32, error)
	Close() error
}

// TextMeasurer measures text.
type TextMeasurer interface {
	// MeasureText returns the size and line count of text wrapped at
	// maxWidth. A maxWidth of zero or less disables wrapping.
	MeasureText(text string, font uint32, fontSize, maxWidth float32) (layout.Size, int)
	// MeasureToByte returns the x position of byte offset in unwrapped text.
	// It is non-decreasing in offset.
	MeasureToByte(text string, font uint32, fontSize float32, offset int) float32
}

// AccessibilityBridge receives the accessibility tree once per frame.
type AccessibilityBridge interface {
	UpdateAccessibility(t a11y.Tree) error
}

// Engine is everything a Context needs from the native side.
type Engine interface {
	Renderer
	TextMeasurer
	AccessibilityBridge
}

// Surface describes the native view the engine draws into.
type Surface = ffi.Surface

// PlatformKind identifies the windowing system behind a Surface.
type PlatformKind = ffi.Platform

const (
	PlatformMacOS   = ffi.PlatformMacOS
	PlatformWindows = ffi.PlatformWindows
	PlatformX11     = ffi.PlatformX11
	PlatformWayland = ffi.PlatformWayland
)

var _ Engine = (*ffi.Native)(nil)

// OpenNative loads libmcore, creates an engine for surface and returns a
// Context driving it. Accessibility actions from the platform bridge are
// routed to the Context.
func OpenNative(surface Surface, cfg Config, opts ...Option) (*Context, error) {
	o := resolveOptions(cfg, opts)
	native, err := ffi.Open(surface, cfg.LibraryPath, o.logger)
	if err != nil {
		o.logger.Warn("native engine unavailable", "engine_error", err)
		return nil, &Error{Op: "OpenNative", Kind: KindEngine, Err: err}
	}
	c, err := newContext(native, cfg, o)
	if err != nil {
		native.Close()
		return nil, err
	}
	size := surface.LogicalSize()
	c.window = size
	c.scale = surface.Scale
	native.SetActionHandler(func(id uint64, code uint8) {
		c.AccessibilityAction(id, code)
	})
	return c, nil
}

// Option configures a Context.
type Option func(*options)

type options struct {
	logger    *slog.Logger
	clipboard Clipboard
}

// WithLogger sets the Context's logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithClipboard connects the platform clipboard used by text inputs.
func WithClipboard(cb Clipboard) Option {
	return func(o *options) { o.clipboard = cb }
}

func resolveOptions(cfg Config, opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = NewLogger(cfg.LogLevel)
	}
	return o
}
