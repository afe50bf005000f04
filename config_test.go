package mcore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_Formats(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
	}{
		{"toml", "mcore.toml", `
command_capacity = 128
log_level = "debug"

[window]
title = "Inbox"
width = 1024.0

[theme]
clear = [1.0, 0.0, 0.0, 1.0]
`},
		{"yaml", "mcore.yaml", `
command_capacity: 128
log_level: debug
window:
  title: Inbox
  width: 1024
theme:
  clear: [1.0, 0.0, 0.0, 1.0]
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o644))

			cfg, err := LoadConfig(path)
			require.NoError(t, err)
			assert.Equal(t, 128, cfg.CommandCapacity)
			assert.Equal(t, "debug", cfg.LogLevel)
			assert.Equal(t, "Inbox", cfg.Window.Title)
			assert.Equal(t, float32(1024), cfg.Window.Width)
			assert.Equal(t, ColorValue{1, 0, 0, 1}, cfg.Theme.Clear)

			// Unset fields keep their defaults.
			def := DefaultConfig()
			assert.Equal(t, def.Window.Height, cfg.Window.Height)
			assert.Equal(t, def.MaxNodes, cfg.MaxNodes)
			assert.Equal(t, def.Theme.Button, cfg.Theme.Button)
		})
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		return path
	}

	_, err := LoadConfig(write("mcore.json", "{}"))
	assert.ErrorContains(t, err, "unsupported config format")

	_, err = LoadConfig(write("bad.toml", "command_capacity = ["))
	assert.ErrorContains(t, err, "decode TOML")

	_, err = LoadConfig(write("zero.toml", "max_nodes = 0"))
	assert.ErrorContains(t, err, "max_nodes")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"window", func(c *Config) { c.Window.Width = 0 }, "window size"},
		{"scale", func(c *Config) { c.Window.Scale = -1 }, "scale"},
		{"commands", func(c *Config) { c.CommandCapacity = 0 }, "command_capacity"},
		{"text buffer", func(c *Config) { c.TextBufferCapacity = -5 }, "text_buffer_capacity"},
		{"font", func(c *Config) { c.FontSize = 0 }, "font_size"},
		{"log level", func(c *Config) { c.LogLevel = "loud" }, "log level"},
	}
	require.NoError(t, DefaultConfig().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}

func TestConfig_EncodeLoadsBack(t *testing.T) {
	for _, format := range []string{"toml", "yaml"} {
		t.Run(format, func(t *testing.T) {
			def := DefaultConfig()
			data, err := def.Encode(format)
			require.NoError(t, err)

			path := filepath.Join(t.TempDir(), "mcore."+format)
			require.NoError(t, os.WriteFile(path, data, 0o644))
			cfg, err := LoadConfig(path)
			require.NoError(t, err)
			assert.Equal(t, def.CommandCapacity, cfg.CommandCapacity)
			assert.Equal(t, def.Window, cfg.Window)
			assert.Equal(t, def.Theme.Radius, cfg.Theme.Radius)
			for i := range def.Theme.Selection {
				assert.InDelta(t, def.Theme.Selection[i], cfg.Theme.Selection[i], 1e-6)
			}
		})
	}

	_, err := DefaultConfig().Encode("ini")
	assert.Error(t, err)
}

func TestWatchConfig_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mcore.toml")
	require.NoError(t, os.WriteFile(path, []byte("command_capacity = 10\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan Config, 8)
	require.NoError(t, WatchConfig(ctx, path, func(cfg Config, err error) {
		if err == nil {
			got <- cfg
		}
	}))
	require.NoError(t, os.WriteFile(path, []byte("command_capacity = 77\n"), 0o644))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-got:
			if cfg.CommandCapacity == 77 {
				return
			}
		case <-deadline:
			t.Fatal("config change not observed")
		}
	}
}

func TestNewLogger(t *testing.T) {
	assert.NotNil(t, NewLogger("debug"))
	assert.NotNil(t, NewLogger("nonsense"))

	lvl, err := parseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, "WARN", lvl.String())
}
