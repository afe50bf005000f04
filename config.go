package mcore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/agiangrant/mcore/cmdbuf"
)

// Config configures a Context and the native engine behind it.
type Config struct {
	Window WindowConfig `toml:"window" yaml:"window"`

	// CommandCapacity is the most draw commands a frame may queue.
	CommandCapacity int `toml:"command_capacity" yaml:"command_capacity"`
	// MaxNodes is the size of the per-frame declaration arena.
	MaxNodes int `toml:"max_nodes" yaml:"max_nodes"`
	// TextBufferCapacity is the byte limit of each text input buffer.
	TextBufferCapacity int `toml:"text_buffer_capacity" yaml:"text_buffer_capacity"`

	FontSize float32 `toml:"font_size" yaml:"font_size"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level" yaml:"log_level"`
	// LibraryPath overrides discovery of the native engine library.
	LibraryPath string `toml:"library_path,omitempty" yaml:"library_path,omitempty"`
	// Accessibility enables submission of the accessibility tree.
	Accessibility bool `toml:"accessibility" yaml:"accessibility"`

	Theme Theme `toml:"theme" yaml:"theme"`
}

// WindowConfig is the initial window geometry.
type WindowConfig struct {
	Title  string  `toml:"title" yaml:"title"`
	Width  float32 `toml:"width" yaml:"width"`
	Height float32 `toml:"height" yaml:"height"`
	Scale  float32 `toml:"scale" yaml:"scale"`
}

// ColorValue is an RGBA color with components in [0, 1], written as a
// four-element array in config files.
type ColorValue [4]float32

// Color converts v to a command color.
func (v ColorValue) Color() cmdbuf.Color {
	return cmdbuf.Color{R: v[0], G: v[1], B: v[2], A: v[3]}
}

// Theme holds the colors and metrics widgets are painted with.
type Theme struct {
	Clear           ColorValue `toml:"clear" yaml:"clear"`
	Text            ColorValue `toml:"text" yaml:"text"`
	Button          ColorValue `toml:"button" yaml:"button"`
	ButtonHover     ColorValue `toml:"button_hover" yaml:"button_hover"`
	ButtonPressed   ColorValue `toml:"button_pressed" yaml:"button_pressed"`
	FocusRing       ColorValue `toml:"focus_ring" yaml:"focus_ring"`
	InputBackground ColorValue `toml:"input_background" yaml:"input_background"`
	Selection       ColorValue `toml:"selection" yaml:"selection"`
	Caret           ColorValue `toml:"caret" yaml:"caret"`

	Radius         float32 `toml:"radius" yaml:"radius"`
	ButtonPaddingX float32 `toml:"button_padding_x" yaml:"button_padding_x"`
	ButtonPaddingY float32 `toml:"button_padding_y" yaml:"button_padding_y"`
	InputPadding   float32 `toml:"input_padding" yaml:"input_padding"`
	InputWidth     float32 `toml:"input_width" yaml:"input_width"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Title:  "mcore",
			Width:  800,
			Height: 600,
			Scale:  1,
		},
		CommandCapacity:    4096,
		MaxNodes:           2048,
		TextBufferCapacity: 1024,
		FontSize:           14,
		LogLevel:           "info",
		Accessibility:      true,
		Theme: Theme{
			Clear:           ColorValue{0.08, 0.09, 0.11, 1},
			Text:            ColorValue{0.92, 0.93, 0.95, 1},
			Button:          ColorValue{0.20, 0.36, 0.78, 1},
			ButtonHover:     ColorValue{0.26, 0.43, 0.86, 1},
			ButtonPressed:   ColorValue{0.15, 0.28, 0.64, 1},
			FocusRing:       ColorValue{0.98, 0.75, 0.18, 1},
			InputBackground: ColorValue{0.15, 0.16, 0.19, 1},
			Selection:       ColorValue{0.25, 0.45, 0.85, 0.5},
			Caret:           ColorValue{0.92, 0.93, 0.95, 1},
			Radius:          4,
			ButtonPaddingX:  12,
			ButtonPaddingY:  6,
			InputPadding:    6,
			InputWidth:      200,
		},
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window size must be positive, got %gx%g", c.Window.Width, c.Window.Height)
	case c.Window.Scale <= 0:
		return fmt.Errorf("window scale must be positive, got %g", c.Window.Scale)
	case c.CommandCapacity <= 0:
		return fmt.Errorf("command_capacity must be positive, got %d", c.CommandCapacity)
	case c.MaxNodes <= 0:
		return fmt.Errorf("max_nodes must be positive, got %d", c.MaxNodes)
	case c.TextBufferCapacity <= 0:
		return fmt.Errorf("text_buffer_capacity must be positive, got %d", c.TextBufferCapacity)
	case c.FontSize <= 0:
		return fmt.Errorf("font_size must be positive, got %g", c.FontSize)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// LoadConfig reads a TOML or YAML config file, chosen by extension, over the
// defaults. A missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := decodeConfig(path, data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func decodeConfig(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("decode TOML: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("decode YAML: %w", err)
		}
	default:
		return fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
	return nil
}

// Encode writes c in the given format, "toml" or "yaml".
func (c Config) Encode(format string) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case "toml":
		enc := toml.NewEncoder(&buf)
		enc.SetIndentTables(true)
		if err := enc.Encode(c); err != nil {
			return nil, err
		}
	case "yaml", "yml":
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}
	return buf.Bytes(), nil
}

// WatchConfig reloads path whenever it is written and calls fn with the new
// config, or with the error that prevented loading it. Rapid writes are
// debounced. Watching stops when ctx is done.
func WatchConfig(ctx context.Context, path string, fn func(Config, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	// Editors replace files on save, so watch the directory.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch directory: %w", err)
	}

	go func() {
		defer watcher.Close()

		var debounce *time.Timer
		defer func() {
			if debounce != nil {
				debounce.Stop()
			}
		}()
		const delay = 100 * time.Millisecond

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != filepath.Base(path) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(delay, func() {
					if ctx.Err() != nil {
						return
					}
					fn(LoadConfig(path))
				})

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				fn(Config{}, fmt.Errorf("watch config: %w", err))
			}
		}
	}()
	return nil
}
