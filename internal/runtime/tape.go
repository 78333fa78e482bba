package runtime

import "github.com/aretw0/turing/pkg/domain"

// tape is a double-ended growable buffer. The live cells are
// cells[origin:]; spare room in front of origin absorbs left growth, and
// append handles right growth. Both ends grow in amortized O(1).
type tape struct {
	cells  []domain.Symbol
	origin int
}

func newTape(initial domain.Tape) *tape {
	cells := make([]domain.Symbol, len(initial))
	copy(cells, initial)
	if len(cells) == 0 {
		// An empty tape still has a cell under the head: the infinite tape is all blanks.
		cells = append(cells, domain.Blank)
	}
	return &tape{cells: cells}
}

func (t *tape) Len() int {
	return len(t.cells) - t.origin
}

func (t *tape) Read(i int) domain.Symbol {
	return t.cells[t.origin+i]
}

func (t *tape) Write(i int, s domain.Symbol) {
	t.cells[t.origin+i] = s
}

// Append adds a blank cell after the last one.
func (t *tape) Append() {
	t.cells = append(t.cells, domain.Blank)
}

// Prepend adds a blank cell before the first one. Existing indexes shift by one.
func (t *tape) Prepend() {
	if t.origin == 0 {
		t.regrow()
	}
	t.origin--
	t.cells[t.origin] = domain.Blank
}

// regrow doubles the front gap so repeated left moves stay amortized O(1).
func (t *tape) regrow() {
	live := t.cells[t.origin:]
	gap := len(live)
	if gap < 4 {
		gap = 4
	}
	next := make([]domain.Symbol, gap+len(live))
	copy(next[gap:], live)
	t.cells = next
	t.origin = gap
}

// Copy returns the live cells as an independent tape value.
func (t *tape) Copy() domain.Tape {
	out := make(domain.Tape, t.Len())
	copy(out, t.cells[t.origin:])
	return out
}
