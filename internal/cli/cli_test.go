package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"strings"
	"testing"
	"time"

	"github.com/zarlcorp/zcard/internal/card"
	"github.com/zarlcorp/zcard/internal/stream"
	"github.com/zarlcorp/zcard/internal/validate"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Config
	}{
		{
			name: "long bin",
			args: []string{"--bin", "4000"},
			want: Config{Interval: 2 * time.Second, Format: stream.FormatText},
		},
		{
			name: "short flags",
			args: []string{"-b", "4000", "-s"},
			want: Config{Silent: true, Interval: 2 * time.Second, Format: stream.FormatText},
		},
		{
			name: "equals form",
			args: []string{"--bin=4000", "--silent=true"},
			want: Config{Silent: true, Interval: 2 * time.Second, Format: stream.FormatText},
		},
		{
			name: "all options",
			args: []string{"-b", "4000", "--interval", "500ms", "-n", "10", "--format", "JSON"},
			want: Config{Interval: 500 * time.Millisecond, Count: 10, Format: stream.FormatJSON},
		},
		{
			name: "tui",
			args: []string{"-b", "4000", "--tui"},
			want: Config{Interval: 2 * time.Second, Format: stream.FormatText, TUI: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			got, err := Parse(tt.args, &stderr)
			if err != nil {
				t.Fatalf("Parse(%v): %v", tt.args, err)
			}

			if got.BIN.String() != "4000" {
				t.Errorf("BIN = %q, want 4000", got.BIN.String())
			}
			got.BIN = card.BIN{}
			if got != tt.want {
				t.Errorf("Parse(%v) = %+v, want %+v", tt.args, got, tt.want)
			}
			if stderr.Len() != 0 {
				t.Errorf("unexpected stderr: %q", stderr.String())
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{"missing bin", nil, "--bin is required"},
		{"three digit bin", []string{"--bin", "123"}, "exactly 4 digits"},
		{"five digit bin", []string{"-b", "12345"}, "exactly 4 digits"},
		{"letters in bin", []string{"-b", "12ab"}, "exactly 4 digits"},
		{"zero interval", []string{"-b", "4000", "-i", "0s"}, "--interval must be positive"},
		{"negative count", []string{"-b", "4000", "-n", "-1"}, "--count must not be negative"},
		{"unknown format", []string{"-b", "4000", "--format", "xml"}, "unknown --format"},
		{"tui with json", []string{"-b", "4000", "--tui", "--format", "json"}, "cannot be combined"},
		{"stray argument", []string{"-b", "4000", "extra"}, "unexpected argument"},
		{"unknown flag", []string{"--nope"}, "flag provided but not defined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			_, err := Parse(tt.args, &stderr)
			if !errors.Is(err, ErrUsage) {
				t.Fatalf("Parse(%v) err = %v, want ErrUsage", tt.args, err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q missing %q", err, tt.wantMsg)
			}
		})
	}
}

func TestParseBINErrorWrapsSentinel(t *testing.T) {
	_, err := Parse([]string{"--bin", "123"}, &bytes.Buffer{})
	if !errors.Is(err, card.ErrInvalidBIN) {
		t.Errorf("err = %v, want card.ErrInvalidBIN in chain", err)
	}
}

func TestParseHelp(t *testing.T) {
	var stderr bytes.Buffer
	_, err := Parse([]string{"-h"}, &stderr)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("err = %v, want flag.ErrHelp", err)
	}
	if !strings.Contains(stderr.String(), "usage: zcard") {
		t.Errorf("help output missing usage: %q", stderr.String())
	}
}

func TestStreamConfig(t *testing.T) {
	cfg, err := Parse([]string{"-b", "4000", "-s", "-n", "3"}, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}

	sc := cfg.StreamConfig()
	if !sc.Silent || sc.Count != 3 || sc.BIN != cfg.BIN || sc.Interval != cfg.Interval {
		t.Errorf("StreamConfig() = %+v, from %+v", sc, cfg)
	}
}

func checkValidator() *validate.Validator {
	return validate.New(
		validate.WithClock(func() time.Time { return time.Date(2026, time.October, 14, 0, 0, 0, 0, time.UTC) }),
		validate.WithLocation(time.UTC),
	)
}

func TestCmdCheck(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
		wantOut string
	}{
		{"valid", []string{"4242424242424242", "12/28", "123"}, nil, "Card valid for testing."},
		{"grouped number", []string{"4242 4242 4242 4242", "12/28", "123"}, nil, "[GOOD]"},
		{"luhn", []string{"4242424242424241", "12/28", "123"}, ErrCardInvalid, "Card number is invalid (Luhn)."},
		{"expired", []string{"4242424242424242", "01/20", "123"}, ErrCardInvalid, "Card has expired."},
		{"cvv", []string{"4242424242424242", "12/28", "12"}, ErrCardInvalid, "CVV is invalid."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := CmdCheck(tt.args, &out, checkValidator())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if !strings.Contains(out.String(), tt.wantOut) {
				t.Errorf("output %q missing %q", out.String(), tt.wantOut)
			}
		})
	}
}

func TestCmdCheckJSON(t *testing.T) {
	var out bytes.Buffer
	err := CmdCheck([]string{"--json", "4242424242424242", "01/20", "123"}, &out, checkValidator())
	if !errors.Is(err, ErrCardInvalid) {
		t.Fatalf("err = %v, want ErrCardInvalid", err)
	}

	var got checkResult
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode %q: %v", out.String(), err)
	}
	want := checkResult{Number: "424242******4242", Valid: false, Reason: "expired", Message: "Card has expired."}
	if got != want {
		t.Errorf("result = %+v, want %+v", got, want)
	}
}

func TestCmdCheckUsage(t *testing.T) {
	err := CmdCheck([]string{"4242424242424242"}, &bytes.Buffer{}, checkValidator())
	if !errors.Is(err, ErrUsage) {
		t.Errorf("err = %v, want ErrUsage", err)
	}
}

func TestHasFlag(t *testing.T) {
	tests := []struct {
		name string
		args []string
		flag string
		want bool
	}{
		{"present", []string{"--json", "4242"}, "--json", true},
		{"absent", []string{"4242"}, "--json", false},
		{"empty", nil, "--json", false},
		{"case insensitive", []string{"--JSON"}, "--json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := hasFlag(tt.args, tt.flag)
			if got != tt.want {
				t.Errorf("hasFlag(%v, %s) = %v, want %v", tt.args, tt.flag, got, tt.want)
			}
		})
	}
}

func TestNormalizeNumber(t *testing.T) {
	if got := normalizeNumber("4242-4242 4242\t4242"); got != "4242424242424242" {
		t.Errorf("normalizeNumber = %q", got)
	}
}
