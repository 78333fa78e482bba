package domain

import (
	"fmt"
	"strings"
)

// Direction is the head movement applied after a rule writes its symbol.
type Direction uint8

const (
	Stay Direction = iota
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "stay"
	}
}

// Short returns the one-letter form used in diagrams (L, R, S).
func (d Direction) Short() string {
	switch d {
	case Left:
		return "L"
	case Right:
		return "R"
	default:
		return "S"
	}
}

// ParseDirection accepts "left"/"right"/"stay", their one-letter forms
// and the arrows "<", ">", "-".
func ParseDirection(raw string) (Direction, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(raw), ".")) {
	case "left", "l", "<":
		return Left, nil
	case "right", "r", ">":
		return Right, nil
	case "stay", "s", "-", "n", "none":
		return Stay, nil
	}
	return Stay, fmt.Errorf("unknown direction %q (expected left, right or stay)", raw)
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
