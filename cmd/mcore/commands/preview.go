package commands

import (
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/agiangrant/mcore"
	"github.com/agiangrant/mcore/cmdbuf"
	"github.com/agiangrant/mcore/headless"
	"github.com/agiangrant/mcore/layout"
)

// Preview renders a sample form on the headless engine and prints what the
// frame submitted.
func Preview(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	fs.SetOutput(out)
	configPath := fs.String("config", "", "config file (defaults when empty)")
	verbose := fs.Bool("v", false, "list every command")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := mcore.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = mcore.LoadConfig(*configPath); err != nil {
			return err
		}
	}

	eng, err := headless.New(headless.WithSize(int(cfg.Window.Width*cfg.Window.Scale), int(cfg.Window.Height*cfg.Window.Scale), cfg.Window.Scale))
	if err != nil {
		return err
	}
	ctx, err := mcore.NewContext(eng, cfg, mcore.WithLogger(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelWarn}))))
	if err != nil {
		return err
	}
	defer ctx.Close()

	if err := ctx.SetText("Name", "Ada Lovelace"); err != nil {
		return err
	}
	ctx.BeginFrame(0)
	ctx.BeginStack(mcore.VStack, mcore.StackOptions{Padding: 16, Gap: 8})
	ctx.Label(cfg.Window.Title)
	ctx.TextInput("Name")
	ctx.BeginScrollArea("Notes", mcore.ScrollOptions{Height: 120, Gap: 4})
	for i := range 12 {
		ctx.PushIDInt(i)
		ctx.Label(fmt.Sprintf("Note %d", i+1))
		ctx.PopID()
	}
	ctx.EndScrollArea()
	ctx.BeginStack(mcore.HStack, mcore.StackOptions{Gap: 8})
	ctx.FlexSpacer(1)
	ctx.Button("Cancel")
	ctx.Button("Save")
	ctx.EndStack(mcore.HStack)
	ctx.EndStack(mcore.VStack)
	frameErr := ctx.EndFrame(cfg.Theme.Clear.Color())

	f, ok := eng.LastFrame()
	if !ok {
		return fmt.Errorf("frame not presented: %w", frameErr)
	}
	fmt.Fprintf(out, "commands: %d (rects %d, text %d, clips %d)\n",
		len(f.Commands), f.Count(cmdbuf.KindRoundedRect), f.Count(cmdbuf.KindText), f.Count(cmdbuf.KindPushClip))
	if tree, ok := eng.LastTree(); ok {
		fmt.Fprintf(out, "accessibility nodes: %d\n", len(tree.Nodes))
	}
	if *verbose {
		for i, c := range f.Commands {
			fmt.Fprintf(out, "%4d %-12s %s %q\n", i, c.Kind, formatRect(c.Rect), c.Text)
		}
	}
	return frameErr
}

func formatRect(r layout.Rect) string {
	return fmt.Sprintf("(%.0f,%.0f %.0fx%.0f)", r.X, r.Y, r.W, r.H)
}
