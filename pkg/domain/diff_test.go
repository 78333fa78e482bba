package domain

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func snap(step int, state State, status Status, tape string, pos int, final bool) Snapshot {
	return Snapshot{Step: step, State: state, Status: status, Tape: Interpret(tape), Position: pos, Final: final}
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name         string
		prev         Snapshot
		next         Snapshot
		wantWrites   []CellWrite
		wantPrepend  string
		wantAppend   string
		wantState    bool
		wantPosition bool
	}{
		{
			name:         "Write and move right",
			prev:         snap(0, "Q0", StatusAccepting, "11#11", 0, false),
			next:         snap(1, "Q1", StatusAccepting, "#1#11", 1, false),
			wantWrites:   []CellWrite{{Index: 0, Symbol: Blank}},
			wantState:    true,
			wantPosition: true,
		},
		{
			name:         "Append blank at right edge",
			prev:         snap(5, "Q0", StatusAccepting, "000001", 5, false),
			next:         snap(6, "Q1", StatusAccepted, "000001#", 6, false),
			wantAppend:   "#",
			wantState:    true,
			wantPosition: true,
		},
		{
			name:        "Prepend blank at left edge",
			prev:        snap(0, "Q0", StatusAccepting, "10", 0, false),
			next:        snap(1, "Q0", StatusAccepting, "#00", 0, false),
			wantPrepend: "#",
			wantWrites:  []CellWrite{{Index: 1, Symbol: Zero}},
		},
		{
			name: "Halt only flips final",
			prev: snap(3, "Q2", StatusAccepting, "1", 0, false),
			next: snap(3, "Q2", StatusRejected, "1", 0, true),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(&tt.prev, &tt.next)
			if got == nil {
				t.Fatal("Diff() = nil")
			}
			if !reflect.DeepEqual(got.Writes, tt.wantWrites) {
				t.Errorf("Writes = %v, want %v", got.Writes, tt.wantWrites)
			}
			if Stringify(got.Prepended) != tt.wantPrepend {
				t.Errorf("Prepended = %q, want %q", Stringify(got.Prepended), tt.wantPrepend)
			}
			if Stringify(got.Appended) != tt.wantAppend {
				t.Errorf("Appended = %q, want %q", Stringify(got.Appended), tt.wantAppend)
			}
			if (got.State != nil) != tt.wantState {
				t.Errorf("State changed = %v, want %v", got.State != nil, tt.wantState)
			}
			if (got.Position != nil) != tt.wantPosition {
				t.Errorf("Position changed = %v, want %v", got.Position != nil, tt.wantPosition)
			}

			applied := got.Apply(tt.prev)
			if !reflect.DeepEqual(applied, tt.next) {
				t.Errorf("Apply() = %+v, want %+v", applied, tt.next)
			}
		})
	}
}

func TestDiff_InitialLoad(t *testing.T) {
	next := snap(0, "Q0", StatusAccepting, "01", 0, false)
	d := Diff(nil, &next)
	if d.State == nil || *d.State != "Q0" {
		t.Fatalf("initial diff must carry the state, got %+v", d)
	}
	if got := d.Apply(Snapshot{}); !reflect.DeepEqual(got, next) {
		t.Errorf("Apply() on empty = %+v, want %+v", got, next)
	}
}

func TestDiff_NoChange(t *testing.T) {
	a := snap(1, "Q0", StatusAccepting, "0", 0, false)
	b := a
	b.Tape = a.Tape.Clone()
	if d := Diff(&a, &b); !d.IsEmpty() {
		t.Errorf("expected empty diff, got %+v", d)
	}
}

func TestDiffJSONSerialization(t *testing.T) {
	prev := snap(0, "Q0", StatusAccepting, "0", 0, false)
	next := snap(1, "Q0", StatusAccepting, "0#", 1, false)

	bytes, err := json.Marshal(Diff(&prev, &next))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	out := string(bytes)
	if strings.Contains(out, `"state"`) {
		t.Errorf("JSON should not contain 'state' when unchanged, got: %s", out)
	}
	if !strings.Contains(out, `"appended":"#"`) {
		t.Errorf("JSON should contain the appended blank, got: %s", out)
	}
}
