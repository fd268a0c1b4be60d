// Package tui implements the interactive Bubble Tea view of the card
// generator.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zcard/internal/card"
	"github.com/zarlcorp/zcard/internal/stream"
	"github.com/zarlcorp/zcard/internal/validate"
)

// maxEntries is how many recent cards the view keeps.
const maxEntries = 10

// entry is one rendered tick.
type entry struct {
	card    card.Card
	outcome validate.Outcome
}

// tickMsg fires once per interval.
type tickMsg time.Time

// flashMsg clears the flash after a timeout.
type flashMsg struct{}

// Model is the root TUI model.
type Model struct {
	cfg stream.Config
	gen *card.Generator
	val *validate.Validator

	// copy is swapped out in tests
	copy func(string) error

	entries []entry
	good    int
	bad     int
	paused  bool
	masked  bool
	flash   string

	// terminal width
	width int
}

// New creates the root TUI model. Count and Format in cfg are ignored.
func New(cfg stream.Config, gen *card.Generator, val *validate.Validator) Model {
	if cfg.Interval <= 0 {
		cfg.Interval = stream.DefaultInterval
	}
	return Model{
		cfg:  cfg,
		gen:  gen,
		val:  val,
		copy: copyToClipboard,
	}
}

// Run starts the program and blocks until the user quits or ctx ends.
func Run(ctx context.Context, m Model) (Model, error) {
	p := tea.NewProgram(m, tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return m, err
	}
	if fm, ok := final.(Model); ok {
		return fm, nil
	}
	return m, nil
}

// Summary describes what the session generated.
func (m Model) Summary() string {
	return fmt.Sprintf("%d cards generated: %d good, %d bad", m.good+m.bad, m.good, m.bad)
}

func (m Model) Init() tea.Cmd {
	return tick(m.cfg.Interval)
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func clearFlashAfter() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return flashMsg{}
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tickMsg:
		if !m.paused {
			m = m.generate()
		}
		return m, tick(m.cfg.Interval)

	case flashMsg:
		m.flash = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// generate runs one generate and validate step. Invalid cards are counted
// even when silent mode hides them.
func (m Model) generate() Model {
	c := m.gen.Generate(m.cfg.BIN)
	o := m.val.Validate(c)

	if o.Valid() {
		m.good++
	} else {
		m.bad++
	}

	if m.cfg.Silent && !o.Valid() {
		return m
	}

	entries := make([]entry, 0, maxEntries)
	entries = append(entries, entry{card: c, outcome: o})
	entries = append(entries, m.entries...)
	if len(entries) > maxEntries {
		entries = entries[:maxEntries]
	}
	m.entries = entries
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, zstyle.KeyQuit) {
		return m, tea.Quit
	}

	if key.Matches(msg, keyPause) {
		m.paused = !m.paused
		return m, nil
	}

	if key.Matches(msg, keyMask) {
		m.masked = !m.masked
		return m, nil
	}

	if key.Matches(msg, keyCopy) {
		c, ok := m.latestGood()
		if !ok {
			m.flash = "no good card yet"
			return m, clearFlashAfter()
		}
		if err := m.copy(c.String()); err != nil {
			m.flash = "copy: " + err.Error()
			return m, clearFlashAfter()
		}
		m.flash = "copied!"
		return m, clearFlashAfter()
	}

	return m, nil
}

func (m Model) latestGood() (card.Card, bool) {
	for _, e := range m.entries {
		if e.outcome.Valid() {
			return e.card, true
		}
	}
	return card.Card{}, false
}

func (m Model) View() string {
	header := zstyle.RenderHeader("zcard", "BIN "+m.cfg.BIN.String(), zstyle.ZburnAccent)
	sep := zstyle.RenderSeparator(m.width)
	footer := zstyle.RenderFooter(helpPairs(m.paused))

	return "\n" + header + "\n" + sep + "\n" + m.content() + "\n" + footer + "\n"
}

func (m Model) content() string {
	var b strings.Builder
	b.WriteString("\n")

	status := fmt.Sprintf("good %d  bad %d", m.good, m.bad)
	if m.cfg.Silent {
		status += "  silent"
	}
	if m.paused {
		status += "  " + zstyle.StatusWarn.Render("paused")
	}
	b.WriteString("  " + zstyle.MutedText.Render(status) + "\n\n")

	if len(m.entries) == 0 {
		b.WriteString("  " + zstyle.MutedText.Render("waiting for the first card…") + "\n")
	}

	accent := lipgloss.NewStyle().Foreground(zstyle.ZburnAccent).Bold(true)
	for i, e := range m.entries {
		c := e.card
		if m.masked {
			c.Number = c.MaskedNumber()
		}
		line := stream.Line(c, e.outcome)
		if !e.outcome.Valid() {
			line += "  " + zstyle.MutedText.Render(e.outcome.Message())
		}
		if i == 0 {
			b.WriteString("  " + accent.Render("▸") + " " + line + "\n")
		} else {
			b.WriteString("    " + line + "\n")
		}
	}

	b.WriteString("\n")

	// always reserve a line for flash to prevent layout shift
	if m.flash != "" {
		b.WriteString("  " + zstyle.StatusOK.Render(m.flash) + "\n")
	} else {
		b.WriteString("\n")
	}

	return b.String()
}
