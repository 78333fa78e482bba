package domain

import (
	"fmt"
	"strings"
)

// Symbol is a single tape cell value. The alphabet is closed: Blank, Zero and One.
// The zero value is Blank, so a freshly allocated cell reads as empty tape.
type Symbol uint8

const (
	Blank Symbol = iota
	Zero
	One
)

// symbolCount is the alphabet size, used to size per-state rule slots.
const symbolCount = 3

// SymbolCount reports the number of symbols in the alphabet.
func SymbolCount() int { return symbolCount }

// Char returns the canonical character for the symbol.
func (s Symbol) Char() byte {
	switch s {
	case Zero:
		return '0'
	case One:
		return '1'
	default:
		return '#'
	}
}

func (s Symbol) String() string {
	return string(s.Char())
}

// Valid reports whether s is one of the three alphabet symbols.
func (s Symbol) Valid() bool {
	return s <= One
}

// ParseSymbol maps a single character onto the alphabet.
func ParseSymbol(c rune) (Symbol, bool) {
	switch c {
	case '0':
		return Zero, true
	case '1':
		return One, true
	case '#':
		return Blank, true
	}
	return Blank, false
}

// MarshalText encodes the symbol as its canonical character.
func (s Symbol) MarshalText() ([]byte, error) {
	return []byte{s.Char()}, nil
}

// UnmarshalText accepts the canonical character or a symbol name
// ("zero", "one", "blank"), case-insensitive.
func (s *Symbol) UnmarshalText(text []byte) error {
	raw := strings.TrimSpace(string(text))
	if len(raw) == 1 {
		if sym, ok := ParseSymbol(rune(raw[0])); ok {
			*s = sym
			return nil
		}
	}
	switch strings.ToLower(strings.TrimPrefix(raw, ".")) {
	case "zero":
		*s = Zero
	case "one":
		*s = One
	case "blank":
		*s = Blank
	default:
		return fmt.Errorf("unknown symbol %q (expected 0, 1 or #)", raw)
	}
	return nil
}

// Tape is an ordered sequence of symbols. It is a value type: the engine
// keeps its own buffer and only ever hands out copies.
type Tape []Symbol

// Interpret scans raw text and keeps only alphabet characters. Anything else is
// dropped without error, so an input made only of invalid characters yields an
// empty tape. Callers decide whether that is a failure.
func Interpret(raw string) Tape {
	tape := make(Tape, 0, len(raw))
	for _, c := range raw {
		if sym, ok := ParseSymbol(c); ok {
			tape = append(tape, sym)
		}
	}
	return tape
}

// Stringify concatenates the canonical characters of every symbol.
func Stringify(tape Tape) string {
	var sb strings.Builder
	sb.Grow(len(tape))
	for _, sym := range tape {
		sb.WriteByte(sym.Char())
	}
	return sb.String()
}

func (t Tape) String() string {
	return Stringify(t)
}

// Clone returns an independent copy of the tape.
func (t Tape) Clone() Tape {
	if t == nil {
		return nil
	}
	out := make(Tape, len(t))
	copy(out, t)
	return out
}

// MarshalText encodes the tape as its string form ("00#1").
func (t Tape) MarshalText() ([]byte, error) {
	return []byte(Stringify(t)), nil
}

// UnmarshalText interprets the text with the same lenient rules as Interpret.
func (t *Tape) UnmarshalText(text []byte) error {
	*t = Interpret(string(text))
	return nil
}
