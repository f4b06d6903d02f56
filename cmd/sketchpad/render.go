package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/browser"
	"github.com/spf13/pflag"

	"github.com/inamate/sketchpad/internal/canvas"
	"github.com/inamate/sketchpad/internal/config"
	"github.com/inamate/sketchpad/internal/export"
	"github.com/inamate/sketchpad/internal/sketch"
)

type drag struct {
	index int
	to    sketch.Vec
}

type renderOpts struct {
	flags *pflag.FlagSet

	script string
	points []string
	drags  []string
	width  int
	height int
	out    string
	watch  bool
	open   bool
	help   bool
}

func parseRenderFlags(args []string) (*renderOpts, error) {
	o := &renderOpts{}
	flags := pflag.NewFlagSet("render", pflag.ContinueOnError)
	flags.SortFlags = false
	flags.Usage = func() {}
	flags.SetOutput(io.Discard)

	flags.StringVar(&o.script, "script", "", "JSON file of input events to replay first.")
	flags.StringArrayVar(&o.points, "point", nil, "place a point at x,y. Repeatable.")
	flags.StringArrayVar(&o.drags, "drag", nil, "drag placed point i to x,y, written i:x,y. Repeatable.")
	flags.IntVar(&o.width, "width", export.DefaultWidth, "output width in pixels.")
	flags.IntVar(&o.height, "height", export.DefaultHeight, "output height in pixels.")
	flags.StringVarP(&o.out, "out", "o", "sketch.png", "output file. The extension picks PNG or SVG.")
	flags.BoolVarP(&o.watch, "watch", "w", false, "re-render whenever the script file changes.")
	flags.BoolVar(&o.open, "open", false, "open the output in the default viewer.")
	flags.BoolVarP(&o.help, "help", "h", false, "show help.")
	o.flags = flags

	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	if flags.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(flags.Args(), " "))
	}
	if o.watch && o.script == "" {
		return nil, fmt.Errorf("--watch needs --script")
	}
	return o, nil
}

// parseVec parses "x,y".
func parseVec(s string) (sketch.Vec, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return sketch.Vec{}, fmt.Errorf("invalid point %q: want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return sketch.Vec{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return sketch.Vec{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	return sketch.Vec{X: x, Y: y}, nil
}

// parseDrag parses "i:x,y".
func parseDrag(s string) (drag, error) {
	is, vs, ok := strings.Cut(s, ":")
	if !ok {
		return drag{}, fmt.Errorf("invalid drag %q: want i:x,y", s)
	}
	i, err := strconv.Atoi(is)
	if err != nil || i < 0 {
		return drag{}, fmt.Errorf("invalid drag %q: bad point index", s)
	}
	to, err := parseVec(vs)
	if err != nil {
		return drag{}, fmt.Errorf("invalid drag %q: %w", s, err)
	}
	return drag{index: i, to: to}, nil
}

// buildScript turns the options into one event script. Drags are resolved
// against the point positions the preceding events produce.
func buildScript(o *renderOpts, theme *config.Theme) (sketch.Script, error) {
	var script sketch.Script

	if o.script != "" {
		f, err := os.Open(o.script)
		if err != nil {
			return nil, fmt.Errorf("open script: %w", err)
		}
		defer f.Close()

		s, err := sketch.ParseScript(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", o.script, err)
		}
		script = append(script, s...)
	}

	for _, p := range o.points {
		v, err := parseVec(p)
		if err != nil {
			return nil, err
		}
		script = append(script, sketch.Click(v.X, v.Y)...)
	}

	if len(o.drags) == 0 {
		return script, nil
	}

	dry := sketch.New(canvas.NewRecorder(float64(o.width), float64(o.height)), nil, theme)
	sketch.Replay(script, dry)

	for _, ds := range o.drags {
		d, err := parseDrag(ds)
		if err != nil {
			return nil, err
		}
		points := dry.State().Points
		if d.index >= len(points) {
			return nil, fmt.Errorf("drag %q: only %d points placed", ds, len(points))
		}
		from := points[d.index]
		step := sketch.Drag(from.X, from.Y, d.to.X, d.to.Y)
		// Pressing grabs the first point under the cursor, which need not be
		// the one asked for.
		sketch.Replay(step[:1], dry)
		if got := dry.State().Dragging; got != d.index {
			return nil, fmt.Errorf("drag %q: point %d lies under point %d", ds, d.index, got)
		}
		sketch.Replay(step[1:], dry)
		script = append(script, step...)
	}
	return script, nil
}

// render writes one image and returns the final sketch state.
func render(o *renderOpts, theme *config.Theme) (sketch.State, error) {
	format, err := export.FormatFromPath(o.out)
	if err != nil {
		return sketch.State{}, err
	}
	width, height := export.ClampSize(o.width, o.height, export.DefaultWidth, export.DefaultHeight)

	script, err := buildScript(o, theme)
	if err != nil {
		return sketch.State{}, err
	}

	var buf bytes.Buffer
	state, err := export.Script(&buf, format, width, height, script, theme)
	if err != nil {
		return sketch.State{}, err
	}

	if dir := filepath.Dir(o.out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return sketch.State{}, fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(o.out, buf.Bytes(), 0o644); err != nil {
		return sketch.State{}, fmt.Errorf("write output: %w", err)
	}
	return state, nil
}

func report(w io.Writer, path string, st sketch.State) {
	fmt.Fprintf(w, "wrote %s (%gx%g, %s)\n", path, st.Width, st.Height, st.Mode)
	if st.Derived != nil {
		fmt.Fprintf(w, "fourth point: %s, %s\n", canvas.FormatNumber(st.Derived.X), canvas.FormatNumber(st.Derived.Y))
		fmt.Fprintf(w, "area: %d\n", st.Area)
		fmt.Fprintf(w, "circle radius: %.4f\n", st.Radius)
	}
}

func renderCmd(ctx context.Context, o *renderOpts, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	theme := &cfg.Theme

	state, err := render(o, theme)
	if err != nil {
		return err
	}
	report(stdout, o.out, state)

	if o.open {
		if err := browser.OpenFile(o.out); err != nil {
			slog.Warn("open output", "error", err, "path", o.out)
		}
	}

	if !o.watch {
		return nil
	}
	return watch(ctx, o.script, func() {
		state, err := render(o, theme)
		if err != nil {
			slog.Error("render", "error", err)
			return
		}
		report(stdout, o.out, state)
	})
}
