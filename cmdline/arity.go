package cmdline

import (
	"strconv"
	"strings"
)

// Unbounded is the [Arity.Max] of an argument accepting any number of values.
const Unbounded = -1

// Arity bounds the number of values a symbol may consume.
type Arity struct {
	Min int
	Max int
}

// Canonical arities.
var (
	Zero       = Arity{Min: 0, Max: 0}
	ZeroOrOne  = Arity{Min: 0, Max: 1}
	ExactlyOne = Arity{Min: 1, Max: 1}
	ZeroOrMore = Arity{Min: 0, Max: Unbounded}
	OneOrMore  = Arity{Min: 1, Max: Unbounded}
)

// defaultArity is the arity of an argument that never had one set.
var defaultArity = ExactlyOne

// Bounded reports whether the arity has a finite maximum.
func (a Arity) Bounded() bool { return a.Max != Unbounded }

// Valid reports whether the bounds are consistent.
func (a Arity) Valid() bool {
	return a.Min >= 0 && (a.Max == Unbounded || a.Max >= a.Min)
}

// Accepts reports whether n values satisfy the arity.
func (a Arity) Accepts(n int) bool {
	return n >= a.Min && (!a.Bounded() || n <= a.Max)
}

// Exceeds reports whether n values exceed the maximum.
func (a Arity) Exceeds(n int) bool {
	return a.Bounded() && n > a.Max
}

// String returns the arity in range notation, such as "1", "0..1" or "1..*".
func (a Arity) String() string {
	upper := "*"
	if a.Bounded() {
		upper = strconv.Itoa(a.Max)
	}

	if a.Min == a.Max {
		return upper
	}

	return strconv.Itoa(a.Min) + ".." + upper
}

// arityPresets maps the names accepted by [ParseArity] to arities.
var arityPresets = map[string]Arity{
	"zero":       Zero,
	"zeroorone":  ZeroOrOne,
	"optional":   ZeroOrOne,
	"exactlyone": ExactlyOne,
	"one":        ExactlyOne,
	"zeroormore": ZeroOrMore,
	"any":        ZeroOrMore,
	"oneormore":  OneOrMore,
	"many":       OneOrMore,
}

// ParseArity parses a preset name such as "exactly-one", "ZeroOrMore" or
// "one_or_more", or a range such as "2", "0..3" or "1..*".
func ParseArity(s string) (Arity, bool) {
	key := strings.Map(
		func(r rune) rune {
			switch r {
			case '-', '_', ' ':
				return -1
			}

			return r
		},
		strings.ToLower(strings.TrimSpace(s)),
	)

	if a, ok := arityPresets[key]; ok {
		return a, true
	}

	lo, hi, ranged := strings.Cut(key, "..")
	if !ranged {
		hi = lo
	}

	lower, err := strconv.Atoi(lo)
	if err != nil {
		return Arity{}, false
	}

	a := Arity{Min: lower, Max: Unbounded}

	if hi != "*" {
		a.Max, err = strconv.Atoi(hi)
		if err != nil {
			return Arity{}, false
		}
	}

	return a, a.Valid()
}
