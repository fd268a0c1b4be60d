// Package cli parses zcard's command line and implements its subcommands.
package cli

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/zarlcorp/zcard/internal/card"
	"github.com/zarlcorp/zcard/internal/stream"
	"github.com/zarlcorp/zcard/internal/validate"
	"golang.org/x/term"
)

// ErrUsage marks a bad command line. Callers exit before generating anything.
var ErrUsage = errors.New("invalid arguments")

// ErrCardInvalid is returned by CmdCheck when the supplied card fails.
var ErrCardInvalid = errors.New("card is invalid")

// Config is the parsed command line. It does not change after Parse.
type Config struct {
	BIN      card.BIN
	Silent   bool
	Interval time.Duration
	Count    int
	Format   stream.Format
	TUI      bool
}

// StreamConfig converts the command line into runner settings.
func (c Config) StreamConfig() stream.Config {
	return stream.Config{
		BIN:      c.BIN,
		Silent:   c.Silent,
		Interval: c.Interval,
		Count:    c.Count,
		Format:   c.Format,
	}
}

// Parse reads generator flags from args (without the program name).
// Flag errors and usage text go to stderr.
func Parse(args []string, stderr io.Writer) (Config, error) {
	var (
		bin    string
		format string
		cfg    Config
	)

	fs := flag.NewFlagSet("zcard", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&bin, "bin", "", "4-digit BIN to use for card generation (required)")
	fs.StringVar(&bin, "b", "", "shorthand for --bin")
	fs.BoolVar(&cfg.Silent, "silent", false, "do not display invalid (BAD) cards")
	fs.BoolVar(&cfg.Silent, "s", false, "shorthand for --silent")
	fs.DurationVar(&cfg.Interval, "interval", stream.DefaultInterval, "time between generated cards")
	fs.DurationVar(&cfg.Interval, "i", stream.DefaultInterval, "shorthand for --interval")
	fs.IntVar(&cfg.Count, "count", 0, "stop after this many cards (0 runs until interrupted)")
	fs.IntVar(&cfg.Count, "n", 0, "shorthand for --count")
	fs.StringVar(&format, "format", string(stream.FormatText), "output format: text or json")
	fs.BoolVar(&cfg.TUI, "tui", false, "interactive view")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: zcard --bin <4 digits> [--silent] [--interval 2s] [--count n] [--format text|json] [--tui]")
		fmt.Fprintln(stderr, "       zcard check [--json] <number> <MM/YY> <cvv>")
		fmt.Fprintln(stderr, "       zcard version")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return Config{}, err
		}
		return Config{}, fmt.Errorf("%w: %v", ErrUsage, err)
	}

	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("%w: unexpected argument %q", ErrUsage, fs.Arg(0))
	}

	if bin == "" {
		return Config{}, fmt.Errorf("%w: --bin is required", ErrUsage)
	}
	b, err := card.ParseBIN(bin)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	cfg.BIN = b

	if cfg.Interval <= 0 {
		return Config{}, fmt.Errorf("%w: --interval must be positive, got %s", ErrUsage, cfg.Interval)
	}
	if cfg.Count < 0 {
		return Config{}, fmt.Errorf("%w: --count must not be negative, got %d", ErrUsage, cfg.Count)
	}

	switch f := stream.Format(strings.ToLower(format)); f {
	case stream.FormatText, stream.FormatJSON:
		cfg.Format = f
	default:
		return Config{}, fmt.Errorf("%w: unknown --format %q", ErrUsage, format)
	}

	if cfg.TUI && cfg.Format == stream.FormatJSON {
		return Config{}, fmt.Errorf("%w: --tui and --format json cannot be combined", ErrUsage)
	}

	return cfg, nil
}

// CmdCheck validates a card given as <number> <MM/YY> <cvv> and prints the
// outcome. It returns ErrCardInvalid when any check fails.
func CmdCheck(args []string, w io.Writer, v *validate.Validator) error {
	asJSON := hasFlag(args, "--json")

	var fields []string
	for _, a := range args {
		if !strings.EqualFold(a, "--json") {
			fields = append(fields, a)
		}
	}
	if len(fields) != 3 {
		return fmt.Errorf("%w: zcard check [--json] <number> <MM/YY> <cvv>", ErrUsage)
	}

	c := card.Card{
		Number: normalizeNumber(fields[0]),
		Expiry: strings.TrimSpace(fields[1]),
		CVV:    strings.TrimSpace(fields[2]),
	}
	o := v.Validate(c)

	if asJSON {
		if err := printJSON(w, checkResult{
			Number:  c.MaskedNumber(),
			Valid:   o.Valid(),
			Reason:  o.Reason.String(),
			Message: o.Message(),
		}); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(w, stream.Line(c, o)+"  "+o.Message())
	}

	if !o.Valid() {
		return ErrCardInvalid
	}
	return nil
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

type checkResult struct {
	Number  string `json:"number"`
	Valid   bool   `json:"valid"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// normalizeNumber drops spaces and dashes people type between digit groups.
func normalizeNumber(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '-':
			return -1
		default:
			return r
		}
	}, s)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func hasFlag(args []string, name string) bool {
	for _, a := range args {
		if strings.EqualFold(a, name) {
			return true
		}
	}
	return false
}
