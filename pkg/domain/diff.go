package domain

// CellWrite is a single changed tape cell, indexed into the newer tape.
type CellWrite struct {
	Index  int    `json:"index"`
	Symbol Symbol `json:"symbol"`
}

// SnapshotDiff represents the changes between two snapshots of the same run.
// It is designed to be serialized to JSON so that clients can follow a trace
// without receiving the full tape on every frame.
type SnapshotDiff struct {
	// Step is always present to identify the frame.
	Step int `json:"step"`

	State    *State  `json:"state,omitempty"`
	Status   *Status `json:"status,omitempty"`
	Position *int    `json:"position,omitempty"`

	// Prepended and Appended hold cells added at either end of the tape.
	Prepended Tape `json:"prepended,omitempty"`
	Appended  Tape `json:"appended,omitempty"`

	// Writes lists cells whose symbol changed, after growth is applied.
	Writes []CellWrite `json:"writes,omitempty"`

	Final *bool `json:"final,omitempty"`
}

// Diff calculates the difference between prev and next.
// If prev is nil, the diff describes the whole of next (initial load).
func Diff(prev *Snapshot, next *Snapshot) *SnapshotDiff {
	if next == nil {
		return nil
	}

	diff := &SnapshotDiff{Step: next.Step}

	if prev == nil {
		diff.State = ptr(next.State)
		diff.Status = ptr(next.Status)
		diff.Position = ptr(next.Position)
		diff.Appended = next.Tape.Clone()
		if next.Final {
			diff.Final = ptr(true)
		}
		return diff
	}

	if prev.State != next.State {
		diff.State = ptr(next.State)
	}
	if prev.Status != next.Status {
		diff.Status = ptr(next.Status)
	}
	if prev.Position != next.Position {
		diff.Position = ptr(next.Position)
	}
	if prev.Final != next.Final {
		diff.Final = ptr(next.Final)
	}

	// A head that stayed at index 0 while the tape grew moved left off the
	// edge; any other growth happened at the back.
	preferFront := prev.Position == 0 && next.Position == 0
	diff.Prepended, diff.Appended, diff.Writes = diffTape(prev.Tape, next.Tape, preferFront)
	return diff
}

// diffTape aligns old against new. The tape never shrinks, so any extra cells
// were added at the front, the back or both; the alignment with the fewest
// rewritten cells wins and ties go to the preferred end.
func diffTape(old, new Tape, preferFront bool) (Tape, Tape, []CellWrite) {
	grown := len(new) - len(old)
	if grown < 0 {
		// Not produced by the engine; describe it as a full rewrite.
		return nil, new.Clone(), nil
	}

	order := make([]int, 0, grown+1)
	for front := 0; front <= grown; front++ {
		if preferFront {
			order = append(order, grown-front)
		} else {
			order = append(order, front)
		}
	}

	var (
		bestFront  int
		bestWrites []CellWrite
		bestCount  = -1
	)
	for _, front := range order {
		var writes []CellWrite
		for i, sym := range old {
			if new[i+front] != sym {
				writes = append(writes, CellWrite{Index: i + front, Symbol: new[i+front]})
			}
		}
		if bestCount == -1 || len(writes) < bestCount {
			bestFront, bestWrites, bestCount = front, writes, len(writes)
		}
	}

	var prepended, appended Tape
	if bestFront > 0 {
		prepended = new[:bestFront].Clone()
	}
	if back := grown - bestFront; back > 0 {
		appended = new[len(new)-back:].Clone()
	}
	return prepended, appended, bestWrites
}

// Apply replays the diff on top of prev and returns the resulting snapshot.
// Apply(prev, Diff(prev, next)) equals next.
func (d *SnapshotDiff) Apply(prev Snapshot) Snapshot {
	out := prev
	out.Step = d.Step

	tape := make(Tape, 0, len(d.Prepended)+len(prev.Tape)+len(d.Appended))
	tape = append(tape, d.Prepended...)
	tape = append(tape, prev.Tape...)
	tape = append(tape, d.Appended...)
	for _, w := range d.Writes {
		if w.Index >= 0 && w.Index < len(tape) {
			tape[w.Index] = w.Symbol
		}
	}
	out.Tape = tape

	if d.State != nil {
		out.State = *d.State
	}
	if d.Status != nil {
		out.Status = *d.Status
	}
	if d.Position != nil {
		out.Position = *d.Position
	}
	if d.Final != nil {
		out.Final = *d.Final
	}
	return out
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *SnapshotDiff) IsEmpty() bool {
	return d.State == nil &&
		d.Status == nil &&
		d.Position == nil &&
		d.Final == nil &&
		len(d.Prepended) == 0 &&
		len(d.Appended) == 0 &&
		len(d.Writes) == 0
}

func ptr[T any](v T) *T {
	return &v
}
