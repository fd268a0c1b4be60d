// Package stream prints a line per generated card on a fixed interval.
package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zcard/internal/card"
	"github.com/zarlcorp/zcard/internal/validate"
)

// DefaultInterval is the time between generated cards.
const DefaultInterval = 2 * time.Second

// StoppedMessage is printed once the loop is interrupted.
const StoppedMessage = "Card generator has been stopped."

// Format selects how each tick is rendered.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Config is fixed for the life of a Runner.
type Config struct {
	BIN      card.BIN
	Silent   bool
	Interval time.Duration
	// Count stops the loop after this many ticks; zero runs until cancelled.
	Count  int
	Format Format
	Accent lipgloss.Color
}

// Runner generates, validates and prints cards.
type Runner struct {
	cfg Config
	gen *card.Generator
	val *validate.Validator
	out io.Writer
}

// New creates a runner writing to out.
func New(cfg Config, gen *card.Generator, val *validate.Validator, out io.Writer) *Runner {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Format == "" {
		cfg.Format = FormatText
	}
	return &Runner{cfg: cfg, gen: gen, val: val, out: out}
}

// Run ticks until ctx is cancelled or Count ticks have run. Cancellation
// is the normal way to stop and is not an error.
func (r *Runner) Run(ctx context.Context) error {
	slog.Debug("generator started", "bin", r.cfg.BIN.String(), "interval", r.cfg.Interval, "silent", r.cfg.Silent)

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	ticks := 0
	for {
		select {
		case <-ctx.Done():
			r.stopped()
			slog.Debug("generator stopped", "ticks", ticks)
			return nil
		case <-ticker.C:
			r.Tick()
			ticks++
			if r.cfg.Count > 0 && ticks >= r.cfg.Count {
				slog.Debug("generator finished", "ticks", ticks)
				return nil
			}
		}
	}
}

// Tick generates and validates one card and renders it unless silent mode
// hides it.
func (r *Runner) Tick() validate.Outcome {
	c := r.gen.Generate(r.cfg.BIN)
	o := r.val.Validate(c)

	if r.cfg.Silent && !o.Valid() {
		return o
	}

	switch r.cfg.Format {
	case FormatJSON:
		r.writeJSON(c, o)
	default:
		fmt.Fprintln(r.out, Line(c, o))
	}
	return o
}

// Line renders a card as a colored GOOD or BAD line.
func Line(c card.Card, o validate.Outcome) string {
	if o.Valid() {
		return zstyle.StatusOK.Render("[GOOD] " + c.String())
	}
	return zstyle.StatusErr.Render("[BAD] " + c.String())
}

type jsonLine struct {
	card.Card
	Valid   bool   `json:"valid"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

func (r *Runner) writeJSON(c card.Card, o validate.Outcome) {
	err := json.NewEncoder(r.out).Encode(jsonLine{
		Card:    c,
		Valid:   o.Valid(),
		Reason:  o.Reason.String(),
		Message: o.Message(),
	})
	if err != nil {
		slog.Error("encode json", "err", err)
	}
}

func (r *Runner) stopped() {
	msg := StoppedMessage
	if r.cfg.Format == FormatText && r.cfg.Accent != "" {
		msg = lipgloss.NewStyle().Foreground(r.cfg.Accent).Render(msg)
	}
	fmt.Fprintln(r.out, "\n"+msg)
}
