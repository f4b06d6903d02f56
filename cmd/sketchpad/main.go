package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

const usage = `usage: sketchpad render [flags]

Renders a parallelogram sketch to PNG or SVG from a JSON event script, points
and drags.

flags:
`

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		fmt.Fprintln(os.Stderr, "sketchpad:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return errors.New("missing command: try 'sketchpad render --help'")
	}

	switch args[0] {
	case "render":
		opts, err := parseRenderFlags(args[1:])
		if err != nil {
			return err
		}
		if opts.help {
			fmt.Fprint(stdout, usage, opts.flags.FlagUsages())
			return nil
		}
		return renderCmd(ctx, opts, stdout)
	case "help", "-h", "--help":
		opts, _ := parseRenderFlags(nil)
		fmt.Fprint(stdout, usage, opts.flags.FlagUsages())
		return nil
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}
