package dsl

import "github.com/aretw0/turing/pkg/domain"

// Builder accumulates a machine definition in the order calls are made.
type Builder struct {
	def domain.Definition
}

// New creates an empty builder.
func New() *Builder {
	return &Builder{}
}

// Name labels the machine.
func (b *Builder) Name(name string) *Builder {
	b.def.Name = name
	return b
}

// Describe sets a free-form description.
func (b *Builder) Describe(text string) *Builder {
	b.def.Description = text
	return b
}

// Tape sets the raw tape text. Characters outside the alphabet are dropped later.
func (b *Builder) Tape(text string) *Builder {
	b.def.SetTape(text)
	return b
}

// State declares a state and returns a builder to flag it.
func (b *Builder) State(name string) *StateBuilder {
	b.def.States = append(b.def.States, domain.StateDecl{Name: name})
	return &StateBuilder{builder: b, index: len(b.def.States) - 1}
}

// Rule adds a transition: in state from reading read, write a symbol, move and go to state to.
func (b *Builder) Rule(from string, read, write domain.Symbol, move domain.Direction, to string) *Builder {
	b.def.Rules = append(b.def.Rules, domain.Rule{
		From:  domain.State(from),
		Read:  read,
		To:    domain.State(to),
		Write: write,
		Move:  move,
	})
	return b
}

// Expect sets the tape a lesson requires after the run.
func (b *Builder) Expect(tape string) *Builder {
	b.def.Expect = tape
	return b
}

// Hint appends a hint shown when the assessment fails.
func (b *Builder) Hint(text string) *Builder {
	b.def.Hints = append(b.def.Hints, text)
	return b
}

// Solution sets the solution shown when the assessment fails.
func (b *Builder) Solution(text string) *Builder {
	b.def.Solution = text
	return b
}

// Definition returns a copy of the definition built so far, without validating it.
func (b *Builder) Definition() *domain.Definition {
	def := b.def
	def.States = append([]domain.StateDecl(nil), b.def.States...)
	def.Rules = append([]domain.Rule(nil), b.def.Rules...)
	def.Hints = append([]string(nil), b.def.Hints...)
	if b.def.Tape != nil {
		def.SetTape(*b.def.Tape)
	}
	return &def
}

// Build validates the definition and returns it.
func (b *Builder) Build() (*domain.Definition, error) {
	def := b.Definition()
	if err := Validate(def); err != nil {
		return nil, err
	}
	return def, nil
}

// StateBuilder flags the state it was created for.
type StateBuilder struct {
	builder *Builder
	index   int
}

// Initial marks the state as the one the machine starts in.
func (s *StateBuilder) Initial() *StateBuilder {
	s.builder.def.States[s.index].Initial = true
	return s
}

// Final marks the state as accepting.
func (s *StateBuilder) Final() *StateBuilder {
	s.builder.def.States[s.index].Final = true
	return s
}

// State declares the next state.
func (s *StateBuilder) State(name string) *StateBuilder {
	return s.builder.State(name)
}

// Rule adds a transition; see Builder.Rule.
func (s *StateBuilder) Rule(from string, read, write domain.Symbol, move domain.Direction, to string) *Builder {
	return s.builder.Rule(from, read, write, move, to)
}

// Tape sets the raw tape text; see Builder.Tape.
func (s *StateBuilder) Tape(text string) *Builder {
	return s.builder.Tape(text)
}

// Build finishes the definition; see Builder.Build.
func (s *StateBuilder) Build() (*domain.Definition, error) {
	return s.builder.Build()
}
