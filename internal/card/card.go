// Package card generates synthetic payment-card fields for a fixed issuer
// prefix. Nothing here is a real card; numbers are structurally valid only.
package card

import (
	"errors"
	"fmt"
	"strings"
)

// NumberLen is the length of every generated card number.
const NumberLen = 16

// binLen is the number of digits a BIN must have.
const binLen = 4

// ErrInvalidBIN is returned by ParseBIN for anything but exactly 4 digits.
var ErrInvalidBIN = errors.New("BIN must be a numeric string, containing exactly 4 digits.")

// BIN is a validated issuer prefix. The zero value is not usable; build one
// with ParseBIN.
type BIN struct {
	digits string
}

// ParseBIN validates s as a 4-digit issuer prefix.
func ParseBIN(s string) (BIN, error) {
	if len(s) != binLen || !isDigits(s) {
		return BIN{}, fmt.Errorf("%w (got %q)", ErrInvalidBIN, s)
	}
	return BIN{digits: s}, nil
}

func (b BIN) String() string { return b.digits }

// Card is one generated candidate. It is a value and never changes after
// the generator returns it.
type Card struct {
	Number string `json:"number"`
	Expiry string `json:"expiry"`
	CVV    string `json:"cvv"`
}

func (c Card) String() string {
	return fmt.Sprintf("CARD: %s | EXP %s | CVV %s", c.Number, c.Expiry, c.CVV)
}

// MaskedNumber keeps the first 6 and last 4 digits and stars the rest.
func (c Card) MaskedNumber() string {
	n := len(c.Number)
	if n <= 10 {
		return strings.Repeat("*", n)
	}
	return c.Number[:6] + strings.Repeat("*", n-10) + c.Number[n-4:]
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
