// Package validate checks generated cards against structural and date rules.
// A failing card is an ordinary result, reported as an Outcome.
package validate

import (
	"regexp"
	"strconv"
	"time"

	"github.com/zarlcorp/zcard/internal/card"
	"github.com/zarlcorp/zcard/internal/luhn"
)

// Reason identifies which check decided an Outcome.
type Reason int

const (
	Valid Reason = iota
	InvalidLuhn
	BadExpiryFormat
	Expired
	InvalidCVV
)

var messages = map[Reason]string{
	Valid:           "Card valid for testing.",
	InvalidLuhn:     "Card number is invalid (Luhn).",
	BadExpiryFormat: "Expiry date is in the wrong format.",
	Expired:         "Card has expired.",
	InvalidCVV:      "CVV is invalid.",
}

// Message returns the user-facing text for r.
func (r Reason) Message() string {
	if m, ok := messages[r]; ok {
		return m
	}
	return "unknown reason " + strconv.Itoa(int(r))
}

// String returns a short identifier, used in JSON output.
func (r Reason) String() string {
	switch r {
	case Valid:
		return "valid"
	case InvalidLuhn:
		return "invalid_luhn"
	case BadExpiryFormat:
		return "bad_expiry_format"
	case Expired:
		return "expired"
	case InvalidCVV:
		return "invalid_cvv"
	}
	return "unknown"
}

// Outcome is the result of validating one card.
type Outcome struct {
	Reason Reason
}

// Valid reports whether every check passed.
func (o Outcome) Valid() bool { return o.Reason == Valid }

// Message returns the acceptance or rejection text.
func (o Outcome) Message() string { return o.Reason.Message() }

var (
	expiryRe = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvvRe    = regexp.MustCompile(`^\d{3}$`)
)

// Option configures a Validator.
type Option func(*Validator)

// WithClock sets the clock the expiry date is compared against.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) { v.now = now }
}

// WithLocation sets the zone in which an expiry month begins.
func WithLocation(loc *time.Location) Option {
	return func(v *Validator) {
		if loc != nil {
			v.loc = loc
		}
	}
}

// Validator runs the card checks in a fixed order.
type Validator struct {
	now func() time.Time
	loc *time.Location
}

// New creates a validator using the wall clock in the local zone.
func New(opts ...Option) *Validator {
	v := &Validator{now: time.Now, loc: time.Local}
	for _, o := range opts {
		o(v)
	}
	return v
}

type check func(*Validator, card.Card) Reason

// checks run in order; the first non-Valid result wins
var checks = []check{
	checkLuhn,
	checkExpiryFormat,
	checkExpiryDate,
	checkCVV,
}

// Validate returns the first failing check for c, or Valid.
func (v *Validator) Validate(c card.Card) Outcome {
	for _, fn := range checks {
		if r := fn(v, c); r != Valid {
			return Outcome{Reason: r}
		}
	}
	return Outcome{Reason: Valid}
}

func checkLuhn(_ *Validator, c card.Card) Reason {
	if !luhn.Valid(c.Number) {
		return InvalidLuhn
	}
	return Valid
}

func checkExpiryFormat(_ *Validator, c card.Card) Reason {
	if !expiryRe.MatchString(c.Expiry) {
		return BadExpiryFormat
	}
	return Valid
}

// checkExpiryDate compares the first instant of the expiry month with now.
// A card in the current month counts as expired once that instant passes.
func checkExpiryDate(v *Validator, c card.Card) Reason {
	mm, _ := strconv.Atoi(c.Expiry[:2])
	yy, _ := strconv.Atoi(c.Expiry[3:])
	start := time.Date(2000+yy, time.Month(mm), 1, 0, 0, 0, 0, v.loc)
	if start.Before(v.now()) {
		return Expired
	}
	return Valid
}

func checkCVV(_ *Validator, c card.Card) Reason {
	if !cvvRe.MatchString(c.CVV) {
		return InvalidCVV
	}
	return Valid
}
