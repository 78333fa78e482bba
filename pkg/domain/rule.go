package domain

import "fmt"

// Rule maps (From, Read) to (To, Write, Move).
type Rule struct {
	From  State     `json:"from" yaml:"from"`
	Read  Symbol    `json:"read" yaml:"read"`
	To    State     `json:"to" yaml:"to"`
	Write Symbol    `json:"write" yaml:"write"`
	Move  Direction `json:"move" yaml:"move"`
}

// RuleKey is the left-hand side of a rule. Two rules with the same key are
// the same rule for duplicate detection, whatever their right-hand side.
type RuleKey struct {
	State  State
	Symbol Symbol
}

// Key returns the left-hand side of the rule.
func (r Rule) Key() RuleKey {
	return RuleKey{State: r.From, Symbol: r.Read}
}

// SameAs reports whether both rules share a left-hand side.
func (r Rule) SameAs(other Rule) bool {
	return r.Key() == other.Key()
}

func (r Rule) String() string {
	return fmt.Sprintf("(%s, %s) -> (%s, %s, %s)", r.From, r.Read, r.To, r.Write, r.Move)
}
