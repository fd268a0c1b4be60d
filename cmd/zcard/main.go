package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/zarlcorp/core/pkg/zapp"
	"github.com/zarlcorp/zcard/internal/card"
	"github.com/zarlcorp/zcard/internal/cli"
	"github.com/zarlcorp/zcard/internal/stream"
	"github.com/zarlcorp/zcard/internal/tui"
	"github.com/zarlcorp/zcard/internal/validate"
)

// version is set at build time via ldflags.
var version = "dev"

// exit codes
const (
	exitOK      = 0
	exitRuntime = 1
	exitUsage   = 2
)

func main() {
	app := zapp.New(zapp.WithName("zcard"))

	ctx, cancel := zapp.SignalContext(context.Background())
	code := run(ctx, os.Args[1:])
	cancel()

	if err := app.Close(); err != nil {
		slog.Error("shutdown", "err", err)
		if code == exitOK {
			code = exitRuntime
		}
	}
	os.Exit(code)
}

func run(ctx context.Context, args []string) int {
	if len(args) > 0 {
		switch args[0] {
		case "version":
			fmt.Printf("zcard %s\n", version)
			return exitOK
		case "check":
			return runCheck(args[1:])
		}
	}

	cfg, err := cli.Parse(args, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "zcard: %v\n", err)
		return exitUsage
	}

	gen := card.New()
	val := validate.New()

	if cfg.TUI {
		return runTUI(ctx, cfg, gen, val)
	}

	sc := cfg.StreamConfig()
	sc.Accent = stream.RandomColor(card.CryptoSource{})
	if sc.Format == stream.FormatText {
		stream.Banner(os.Stdout, sc.Accent, cli.IsTerminal(os.Stdout))
	}

	r := stream.New(sc, gen, val, os.Stdout)
	if err := r.Run(ctx); err != nil {
		slog.Error("generator", "err", err)
		return exitRuntime
	}
	return exitOK
}

func runCheck(args []string) int {
	err := cli.CmdCheck(args, os.Stdout, validate.New())
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, cli.ErrCardInvalid):
		return exitRuntime
	case errors.Is(err, cli.ErrUsage):
		fmt.Fprintf(os.Stderr, "zcard: %v\n", err)
		return exitUsage
	default:
		slog.Error("check", "err", err)
		return exitRuntime
	}
}

func runTUI(ctx context.Context, cfg cli.Config, gen *card.Generator, val *validate.Validator) int {
	if !cli.IsTerminal(os.Stdout) {
		fmt.Fprintln(os.Stderr, "zcard: --tui needs a terminal")
		return exitUsage
	}

	final, err := tui.Run(ctx, tui.New(cfg.StreamConfig(), gen, val))
	if err != nil {
		slog.Error("tui", "err", err)
		return exitRuntime
	}

	fmt.Println(stream.StoppedMessage)
	fmt.Println(final.Summary())
	return exitOK
}
