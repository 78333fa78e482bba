package runtime

import "github.com/aretw0/turing/pkg/domain"

// entry is one occupied slot of the table: the rule and its interned target.
type entry struct {
	rule domain.Rule
	to   int
}

// Table is the transition table of a machine. States are interned to small
// integer indexes once, and rules live in a flat slice addressed by
// index*SymbolCount+symbol, so Find is O(1) and keys compare by value.
type Table struct {
	index map[domain.State]int
	names []domain.State
	slots []*entry
	order []domain.RuleKey
}

// NewTable builds a table from an ordered rule list. A rule whose (From, Read)
// key was already inserted replaces the earlier rule: last write wins and no
// error is raised. Declared states are interned first, in order, followed by
// any state that only appears in rules.
func NewTable(states []domain.State, rules []domain.Rule) *Table {
	t := &Table{index: make(map[domain.State]int)}
	for _, s := range states {
		t.intern(s)
	}
	for _, r := range rules {
		t.intern(r.From)
		t.intern(r.To)
	}

	t.slots = make([]*entry, len(t.names)*domain.SymbolCount())
	for _, r := range rules {
		slot := t.slot(t.index[r.From], r.Read)
		if t.slots[slot] == nil {
			t.order = append(t.order, r.Key())
		}
		t.slots[slot] = &entry{rule: r, to: t.index[r.To]}
	}
	return t
}

func (t *Table) intern(s domain.State) int {
	if i, ok := t.index[s]; ok {
		return i
	}
	i := len(t.names)
	t.index[s] = i
	t.names = append(t.names, s)
	return i
}

func (t *Table) slot(state int, sym domain.Symbol) int {
	return state*domain.SymbolCount() + int(sym)
}

// Find returns the rule for (state, symbol), if any.
func (t *Table) Find(state domain.State, sym domain.Symbol) (domain.Rule, bool) {
	i, ok := t.index[state]
	if !ok {
		return domain.Rule{}, false
	}
	e := t.find(i, sym)
	if e == nil {
		return domain.Rule{}, false
	}
	return e.rule, true
}

func (t *Table) find(state int, sym domain.Symbol) *entry {
	if !sym.Valid() {
		return nil
	}
	return t.slots[t.slot(state, sym)]
}

// Len is the number of distinct (state, symbol) keys.
func (t *Table) Len() int {
	return len(t.order)
}

// Rules returns the effective rules, ordered by the first insertion of each key.
func (t *Table) Rules() []domain.Rule {
	out := make([]domain.Rule, 0, len(t.order))
	for _, k := range t.order {
		out = append(out, t.slots[t.slot(t.index[k.State], k.Symbol)].rule)
	}
	return out
}

func (t *Table) indexOf(s domain.State) (int, bool) {
	i, ok := t.index[s]
	return i, ok
}

func (t *Table) name(i int) domain.State {
	return t.names[i]
}

func (t *Table) size() int {
	return len(t.names)
}
