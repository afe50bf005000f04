//go:build !js

// Package ffi binds the native mcore engine (libmcore) via purego.
// No cgo is involved, so the module cross-compiles and the library is
// located and loaded at run time.
package ffi

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

// ErrNotLoaded is returned when libmcore could not be loaded.
var ErrNotLoaded = errors.New("ffi: libmcore not loaded")

// LibraryEnv names the environment variable that overrides library discovery.
const LibraryEnv = "MCORE_LIB_PATH"

// ============================================================================
// Library Loading
// ============================================================================

var (
	libHandle   uintptr
	libOnce     sync.Once
	libErr      error
	libPath     string
	initialized bool
)

// Library function pointers (populated by initLibrary)
var (
	// Lifecycle
	fnCreate  func(desc uintptr) uintptr
	fnDestroy func(ctx uintptr)
	fnResize  func(ctx uintptr, desc uintptr)

	// Frame
	fnBeginFrame      func(ctx uintptr, timeSeconds float64)
	fnRectRounded     func(ctx uintptr, rect uintptr)
	fnEndFramePresent func(ctx uintptr, clear RGBA) int32

	// Diagnostics
	fnLastError func() uintptr

	// Text
	fnFontRegister func(ctx uintptr, blob uintptr) int32
	fnTextLayout   func(ctx uintptr, req uintptr, out uintptr)
	fnTextDraw     func(ctx uintptr, req uintptr, x, y float32, color RGBA)

	// Optional: newer engines only
	fnSubmitCommands        func(ctx uintptr, data uintptr, length uintptr) int32
	fnTextMeasureToByte     func(ctx uintptr, req uintptr, offset uint32) float32
	fnA11yUpdate            func(ctx uintptr, data uintptr, length uintptr) int32
	fnA11ySetActionCallback func(callback uintptr)
)

// RGBA matches mcore_rgba_t.
type RGBA struct {
	R, G, B, A float32
}

// surfaceDescC matches mcore_surface_desc_t with the macOS union member.
type surfaceDescC struct {
	Platform int32
	_        [4]byte // union alignment
	View     uintptr
	Layer    uintptr
	Scale    float32
	WidthPx  int32
	HeightPx int32
	_        [4]byte
}

// roundedRectC matches mcore_rounded_rect_t.
type roundedRectC struct {
	X, Y, W, H float32
	Radius     float32
	Fill       RGBA
}

// fontBlobC matches mcore_font_blob_t.
type fontBlobC struct {
	Data uintptr
	Len  uintptr
	Name uintptr
}

// textReqC matches mcore_text_req_t.
type textReqC struct {
	UTF8       uintptr
	WrapWidth  float32
	FontSizePx float32
	FontID     int32
	_          [4]byte
}

// textMetricsC matches mcore_text_metrics_t.
type textMetricsC struct {
	AdvanceW  float32
	AdvanceH  float32
	LineCount int32
}

// libraryName returns the platform file name of libmcore.
func libraryName() string {
	switch runtime.GOOS {
	case "darwin", "ios":
		return "libmcore.dylib"
	case "windows":
		return "mcore.dll"
	default:
		return "libmcore.so"
	}
}

// getLibraryPath returns the path to the dynamic library. override wins over
// the environment, which wins over the search path.
func getLibraryPath(override string) string {
	if override != "" {
		return override
	}
	if path := os.Getenv(LibraryEnv); path != "" {
		return path
	}

	libName := libraryName()
	searchPaths := []string{
		libName,
		filepath.Join("target", "release", libName),
		filepath.Join("target", "debug", libName),
		filepath.Join("rust", "engine", "target", "release", libName),
	}
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		searchPaths = append(searchPaths,
			filepath.Join(execDir, libName),
			filepath.Join(execDir, "..", "lib", libName),
		)
		if runtime.GOOS == "darwin" {
			searchPaths = append(searchPaths, filepath.Join(execDir, "..", "Frameworks", libName))
		}
	}

	for _, path := range searchPaths {
		if _, err := os.Stat(path); err == nil {
			if abs, err := filepath.Abs(path); err == nil {
				return abs
			}
			return path
		}
	}

	// Let the system loader search for it.
	return libName
}

// Load loads libmcore once. Later calls return the first result; path is only
// consulted on the first call.
func Load(path string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	libOnce.Do(func() {
		libPath = getLibraryPath(path)
		logger.Debug("loading native engine", "path", libPath, "goos", runtime.GOOS, "goarch", runtime.GOARCH)

		libHandle, libErr = openLibrary(libPath)
		if libErr != nil {
			libErr = fmt.Errorf("%w: %s: %v", ErrNotLoaded, libPath, libErr)
			return
		}
		if libErr = registerCoreFunctions(); libErr != nil {
			return
		}
		registerOptionalFunctions(logger)
		initialized = true
	})
	return libErr
}

// Loaded reports whether libmcore has been loaded successfully.
func Loaded() bool { return initialized }

// LibraryPath returns the path libmcore was loaded from, or "" before Load.
func LibraryPath() string { return libPath }

func registerCoreFunctions() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrNotLoaded, r)
		}
	}()
	purego.RegisterLibFunc(&fnCreate, libHandle, "mcore_create")
	purego.RegisterLibFunc(&fnDestroy, libHandle, "mcore_destroy")
	purego.RegisterLibFunc(&fnResize, libHandle, "mcore_resize")
	purego.RegisterLibFunc(&fnBeginFrame, libHandle, "mcore_begin_frame")
	purego.RegisterLibFunc(&fnRectRounded, libHandle, "mcore_rect_rounded")
	purego.RegisterLibFunc(&fnEndFramePresent, libHandle, "mcore_end_frame_present")
	purego.RegisterLibFunc(&fnLastError, libHandle, "mcore_last_error")
	purego.RegisterLibFunc(&fnFontRegister, libHandle, "mcore_font_register")
	purego.RegisterLibFunc(&fnTextLayout, libHandle, "mcore_text_layout")
	purego.RegisterLibFunc(&fnTextDraw, libHandle, "mcore_text_draw")
	return nil
}

func registerOptionalFunctions(logger *slog.Logger) {
	for name, ok := range map[string]bool{
		"mcore_submit_commands":          registerOptionalFunc(&fnSubmitCommands, "mcore_submit_commands"),
		"mcore_text_measure_to_byte":     registerOptionalFunc(&fnTextMeasureToByte, "mcore_text_measure_to_byte"),
		"mcore_a11y_update":              registerOptionalFunc(&fnA11yUpdate, "mcore_a11y_update"),
		"mcore_a11y_set_action_callback": registerOptionalFunc(&fnA11ySetActionCallback, "mcore_a11y_set_action_callback"),
	} {
		if !ok {
			logger.Debug("optional native symbol missing", "symbol", name)
		}
	}
}

// registerOptionalFunc registers fn if the library exports name.
func registerOptionalFunc[T any](fn *T, name string) (ok bool) {
	if _, err := getSymbol(libHandle, name); err != nil {
		return false
	}
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	purego.RegisterLibFunc(fn, libHandle, name)
	return true
}

// ============================================================================
// String Helpers for FFI
// ============================================================================

// goString converts a C string pointer to a Go string
func goString(ptr uintptr) string {
	if ptr == 0 {
		return ""
	}
	var length int
	for *(*byte)(unsafe.Add(unsafe.Pointer(ptr), length)) != 0 {
		length++
		if length > 1<<20 {
			break
		}
	}
	return string(unsafe.Slice((*byte)(unsafe.Pointer(ptr)), length))
}

// cString returns a NUL-terminated copy of s. The caller keeps the slice
// alive for the duration of the native call.
func cString(s string) []byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return b
}

// LastError returns the engine's last error message, or "".
func LastError() string {
	if fnLastError == nil {
		return ""
	}
	return goString(fnLastError())
}
