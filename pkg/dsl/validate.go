package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/turing/pkg/domain"
)

// ValidationError reports the first problem found in a definition.
type ValidationError struct {
	// Err is one of the definition sentinels in package domain.
	Err error
	// Subject names the offending state or rule, when there is one.
	Subject string
}

func (e *ValidationError) Error() string {
	if e.Subject == "" {
		return fmt.Sprintf("invalid machine: %v", e.Err)
	}
	return fmt.Sprintf("invalid machine: %v: %s", e.Err, e.Subject)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Hints returns advice for fixing the error.
func (e *ValidationError) Hints() []string {
	return HintsFor(e.Err)
}

var (
	tapeHints = []string{
		"Look at the tape and verify that you have entered something valid.",
		"The only accepted symbols are 0, 1 and #. Everything else is ignored.",
	}
	hints = map[error][]string{
		domain.ErrStateUnnamed:          {"Give every state a name."},
		domain.ErrMultipleInitialStates: {"Only one state can be initial."},
		domain.ErrStateNotDeclared:      {"Declare every state before using it in a rule."},
		domain.ErrRuleAlreadyDefined:    {"Each combination of state and read symbol can have one rule."},
		domain.ErrTapeMissing:           tapeHints,
		domain.ErrTapeEmpty:             tapeHints,
		domain.ErrNoInitialState: {
			"Look at your states and make sure that exactly one is initial.",
			"Only one state can be initial.",
			"One state needs to be initial.",
		},
		domain.ErrNoStates: {"Make sure that you have declared a state."},
	}
)

// HintsFor returns the advice attached to a definition error, or nil.
func HintsFor(err error) []string {
	for sentinel, h := range hints {
		if errors.Is(err, sentinel) {
			return append([]string(nil), h...)
		}
	}
	return nil
}

// Validate checks a definition and returns the first error found, in this order:
// state declarations, rules, tape, initial state, states.
func Validate(def *domain.Definition) error {
	if def == nil {
		def = &domain.Definition{}
	}

	var (
		names      []domain.State
		finals     []domain.State
		initial    domain.State
		hasInitial bool
	)
	for i, s := range def.States {
		if s.Name == "" {
			return &ValidationError{Err: domain.ErrStateUnnamed, Subject: fmt.Sprintf("state %d", i)}
		}
		if s.Initial {
			if hasInitial {
				return &ValidationError{Err: domain.ErrMultipleInitialStates, Subject: s.Name}
			}
			initial, hasInitial = domain.State(s.Name), true
		}
		names = append(names, domain.State(s.Name))
		if s.Final {
			finals = append(finals, domain.State(s.Name))
		}
	}

	reg := domain.NewRegistryWithoutInitial(names, finals)
	if hasInitial {
		reg = domain.NewRegistry(names, initial, finals)
	}

	seen := make(map[domain.RuleKey]struct{}, len(def.Rules))
	for _, r := range def.Rules {
		for _, endpoint := range []domain.State{r.From, r.To} {
			if !reg.Contains(endpoint) {
				return &ValidationError{Err: domain.ErrStateNotDeclared, Subject: fmt.Sprintf("%s in %s", endpoint, r)}
			}
		}
		if _, dup := seen[r.Key()]; dup {
			return &ValidationError{Err: domain.ErrRuleAlreadyDefined, Subject: r.String()}
		}
		seen[r.Key()] = struct{}{}
	}

	text, ok := def.TapeText()
	if !ok {
		return &ValidationError{Err: domain.ErrTapeMissing}
	}
	if len(domain.Interpret(text)) == 0 {
		return &ValidationError{Err: domain.ErrTapeEmpty, Subject: fmt.Sprintf("%q", text)}
	}

	if _, ok := reg.Initial(); !ok {
		return &ValidationError{Err: domain.ErrNoInitialState}
	}
	if reg.Len() == 0 {
		return &ValidationError{Err: domain.ErrNoStates}
	}
	return nil
}
