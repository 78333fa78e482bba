package dsl

import (
	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/pkg/domain"
)

// Program holds the engine inputs of a validated definition.
type Program struct {
	Name    string
	Tape    domain.Tape
	Initial domain.State
	States  []domain.State
	Finals  []domain.State
	Rules   []domain.Rule
}

// Compile validates def and converts it into engine inputs.
func Compile(def *domain.Definition) (*Program, error) {
	if err := Validate(def); err != nil {
		return nil, err
	}

	text, _ := def.TapeText()
	return &Program{
		Name:    def.Name,
		Tape:    domain.Interpret(text),
		Initial: def.InitialStates()[0],
		States:  def.StateNames(),
		Finals:  def.FinalStates(),
		Rules:   append([]domain.Rule(nil), def.Rules...),
	}, nil
}

// WithTape returns a copy of the program running on a different tape.
func (p *Program) WithTape(tape domain.Tape) *Program {
	out := *p
	out.Tape = tape.Clone()
	return &out
}

// Machine builds a fresh engine for the program. Each call returns an
// independent machine, so a program can be run any number of times.
func (p *Program) Machine(opts ...runtime.Option) (*runtime.Machine, error) {
	if p.Name != "" {
		opts = append([]runtime.Option{runtime.WithName(p.Name)}, opts...)
	}
	return runtime.NewMachine(p.Tape, p.Initial, p.States, p.Finals, p.Rules, opts...)
}
