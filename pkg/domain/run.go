package domain

import "time"

// Verdict is the outcome of assessing a finished run.
type Verdict struct {
	Passed   bool     `json:"passed"`
	Message  string   `json:"message"`
	Hints    []string `json:"hints,omitempty"`
	Solution string   `json:"solution,omitempty"`
}

// Run is the stored record of one machine execution. It keeps the trace and
// its summary but never the machine definition itself.
type Run struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Status    Status    `json:"status"`
	Steps     int       `json:"steps"`
	FinalTape string    `json:"final_tape"`
	// Limited is set when the run was cut short by a step limit.
	Limited bool     `json:"limited,omitempty"`
	Verdict *Verdict `json:"verdict,omitempty"`
	Trace   Trace    `json:"trace"`
}

// NewRun summarizes a trace into a run record.
func NewRun(id, name string, trace Trace, createdAt time.Time) *Run {
	return &Run{
		ID:        id,
		Name:      name,
		CreatedAt: createdAt,
		Status:    trace.Status(),
		Steps:     trace.Steps(),
		FinalTape: trace.FinalTape(),
		Trace:     trace,
	}
}

// Clone returns a deep copy of the run, tapes included.
func (r *Run) Clone() *Run {
	if r == nil {
		return nil
	}
	out := *r
	if r.Verdict != nil {
		v := *r.Verdict
		v.Hints = append([]string(nil), r.Verdict.Hints...)
		out.Verdict = &v
	}
	if r.Trace != nil {
		out.Trace = make(Trace, len(r.Trace))
		for i, snap := range r.Trace {
			snap.Tape = snap.Tape.Clone()
			out.Trace[i] = snap
		}
	}
	return &out
}
