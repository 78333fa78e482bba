package domain

// StateDecl declares one execution state of a machine definition.
type StateDecl struct {
	Name    string `json:"name" yaml:"name"`
	Initial bool   `json:"initial,omitempty" yaml:"initial,omitempty"`
	Final   bool   `json:"final,omitempty" yaml:"final,omitempty"`
}

// Definition is the authoring-time description of a machine: raw tape text,
// ordered state declarations and ordered rules. It is what callers hand to the
// validation layer before an engine is built.
type Definition struct {
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Tape is the raw tape text. nil means the tape was never set, which is
	// reported differently from a tape with no valid symbols.
	Tape *string `json:"tape,omitempty" yaml:"tape,omitempty"`

	States []StateDecl `json:"states" yaml:"states"`
	Rules  []Rule      `json:"rules" yaml:"rules"`

	// Expect is the tape a lesson requires after the run (optional).
	Expect string `json:"expect,omitempty" yaml:"expect,omitempty"`

	// Hints and Solution are shown when an assessment fails.
	Hints    []string `json:"hints,omitempty" yaml:"hints,omitempty"`
	Solution string   `json:"solution,omitempty" yaml:"solution,omitempty"`
}

// TapeText returns the raw tape text and whether it was set.
func (d *Definition) TapeText() (string, bool) {
	if d.Tape == nil {
		return "", false
	}
	return *d.Tape, true
}

// SetTape sets the raw tape text.
func (d *Definition) SetTape(text string) {
	d.Tape = &text
}

// StateNames returns every declared state in declaration order.
func (d *Definition) StateNames() []State {
	out := make([]State, 0, len(d.States))
	for _, s := range d.States {
		out = append(out, State(s.Name))
	}
	return out
}

// FinalStates returns the states declared with final set.
func (d *Definition) FinalStates() []State {
	var out []State
	for _, s := range d.States {
		if s.Final {
			out = append(out, State(s.Name))
		}
	}
	return out
}

// InitialStates returns every state declared with initial set. A valid
// definition has exactly one.
func (d *Definition) InitialStates() []State {
	var out []State
	for _, s := range d.States {
		if s.Initial {
			out = append(out, State(s.Name))
		}
	}
	return out
}
