// Package commands implements the mcore CLI subcommands.
package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/agiangrant/mcore"
	"github.com/agiangrant/mcore/internal/ffi"
)

// Check validates a config file and prints the effective settings.
func Check(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(out)
	engine := fs.Bool("engine", false, "also load the native engine library")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: mcore check [--engine] <config>")
	}
	path := fs.Arg(0)

	cfg, err := mcore.LoadConfig(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s: ok\n", path)
	fmt.Fprintf(out, "  window            %gx%g @%gx %q\n", cfg.Window.Width, cfg.Window.Height, cfg.Window.Scale, cfg.Window.Title)
	fmt.Fprintf(out, "  command capacity  %d\n", cfg.CommandCapacity)
	fmt.Fprintf(out, "  max nodes         %d\n", cfg.MaxNodes)
	fmt.Fprintf(out, "  text capacity     %d bytes\n", cfg.TextBufferCapacity)
	fmt.Fprintf(out, "  accessibility     %t\n", cfg.Accessibility)

	if !*engine {
		return nil
	}
	logger := mcore.NewLogger(cfg.LogLevel)
	if err := ffi.Load(cfg.LibraryPath, logger); err != nil {
		return fmt.Errorf("load engine: %w", err)
	}
	logger.Info("native engine loaded", slog.String("path", ffi.LibraryPath()))
	fmt.Fprintf(out, "  engine            %s\n", ffi.LibraryPath())
	return nil
}

// Defaults prints the default configuration.
func Defaults(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("defaults", flag.ContinueOnError)
	fs.SetOutput(out)
	format := fs.String("format", "toml", "output format: toml or yaml")
	if err := fs.Parse(args); err != nil {
		return err
	}
	data, err := mcore.DefaultConfig().Encode(*format)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
