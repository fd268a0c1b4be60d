package card

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/zarlcorp/zcard/internal/luhn"
)

// expiry years are drawn from [current, current+expiryYears)
const expiryYears = 5

// Source supplies uniform random ints in [0, n).
// *math/rand/v2.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// Option configures a Generator.
type Option func(*Generator)

// WithSource replaces the default crypto/rand source.
func WithSource(src Source) Option {
	return func(g *Generator) { g.src = src }
}

// WithClock sets the clock used for expiry years.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// Generator produces card fields. It holds no state between calls beyond
// its source and clock.
type Generator struct {
	src Source
	now func() time.Time
}

// New creates a generator backed by crypto/rand unless overridden.
func New(opts ...Option) *Generator {
	g := &Generator{
		src: CryptoSource{},
		now: time.Now,
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Generate produces a complete candidate for bin.
func (g *Generator) Generate(bin BIN) Card {
	return Card{
		Number: g.Number(bin),
		Expiry: g.Expiry(),
		CVV:    g.CVV(),
	}
}

// Number returns bin, random fill digits, and a Luhn check digit, 16 digits
// in total.
func (g *Generator) Number(bin BIN) string {
	var b strings.Builder
	b.Grow(NumberLen)
	b.WriteString(bin.digits)

	for range NumberLen - len(bin.digits) - 1 {
		b.WriteByte(byte('0' + g.src.IntN(10)))
	}

	full, err := luhn.Append(b.String())
	if err != nil {
		// body is built from digits only
		panic("card: " + err.Error())
	}
	return full
}

// Expiry returns a random MM/YY up to four years ahead. The month is not
// checked against the current month, so an offset of zero can produce a
// date that has already passed.
func (g *Generator) Expiry() string {
	month := 1 + g.src.IntN(12)
	year := g.now().Year() + g.src.IntN(expiryYears)
	return fmt.Sprintf("%02d/%02d", month, year%100)
}

// CVV returns a 3-digit code in [100, 999].
func (g *Generator) CVV() string {
	return strconv.Itoa(100 + g.src.IntN(900))
}

// CryptoSource draws from crypto/rand.
type CryptoSource struct{}

// IntN returns a cryptographically random int in [0, n).
func (CryptoSource) IntN(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand failure is unrecoverable
		panic("crypto/rand: " + err.Error())
	}
	return int(v.Int64())
}
