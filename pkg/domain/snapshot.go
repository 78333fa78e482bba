package domain

// Snapshot is one recorded instant of a run. It owns its tape copy, so a
// trace can be replayed long after the engine is gone.
type Snapshot struct {
	// Step is the number of transitions applied before this snapshot was taken.
	Step int `json:"step"`

	// State is the name of the active state.
	State State `json:"state"`

	// Status is the acceptance classification at this instant.
	Status Status `json:"status"`

	// Tape is an independent copy of the tape contents.
	Tape Tape `json:"tape"`

	// Position is the cursor index into Tape.
	Position int `json:"position"`

	// Final marks the last snapshot of a trace.
	Final bool `json:"final"`
}

// Read returns the symbol under the cursor.
func (s Snapshot) Read() Symbol {
	if s.Position < 0 || s.Position >= len(s.Tape) {
		return Blank
	}
	return s.Tape[s.Position]
}

// Trace is the ordered sequence of snapshots produced by one run.
type Trace []Snapshot

// Last returns the final snapshot. ok is false for an empty trace.
func (t Trace) Last() (Snapshot, bool) {
	if len(t) == 0 {
		return Snapshot{}, false
	}
	return t[len(t)-1], true
}

// Status returns the terminal status of the trace.
func (t Trace) Status() Status {
	last, ok := t.Last()
	if !ok {
		return StatusAccepting
	}
	return last.Status
}

// Accepted reports whether the run halted in a final state.
func (t Trace) Accepted() bool {
	last, ok := t.Last()
	return ok && last.Final && last.Status == StatusAccepted
}

// FinalTape returns the stringified tape of the last snapshot.
func (t Trace) FinalTape() string {
	last, ok := t.Last()
	if !ok {
		return ""
	}
	return Stringify(last.Tape)
}

// Steps returns the number of transitions the run applied.
func (t Trace) Steps() int {
	last, ok := t.Last()
	if !ok {
		return 0
	}
	return last.Step
}

// Visited returns the distinct states in order of first appearance.
func (t Trace) Visited() []State {
	seen := make(map[State]struct{})
	var out []State
	for _, snap := range t {
		if _, ok := seen[snap.State]; ok {
			continue
		}
		seen[snap.State] = struct{}{}
		out = append(out, snap.State)
	}
	return out
}
