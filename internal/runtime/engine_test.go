package runtime_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/pkg/domain"
)

func rule(from domain.State, read domain.Symbol, to domain.State, write domain.Symbol, move domain.Direction) domain.Rule {
	return domain.Rule{From: from, Read: read, To: to, Write: write, Move: move}
}

// scanner accepts any run of zeros ending in a one.
func scanner(t *testing.T, tape string, opts ...runtime.Option) *runtime.Machine {
	t.Helper()
	m, err := runtime.NewMachine(
		domain.Interpret(tape),
		"Q0",
		[]domain.State{"Q0", "Q1"},
		[]domain.State{"Q1"},
		[]domain.Rule{
			rule("Q0", domain.Zero, "Q0", domain.Zero, domain.Right),
			rule("Q0", domain.One, "Q1", domain.One, domain.Right),
		},
		opts...,
	)
	require.NoError(t, err)
	return m
}

func adder(t *testing.T, tape string) *runtime.Machine {
	t.Helper()
	m, err := runtime.NewMachine(
		domain.Interpret(tape),
		"Q0",
		[]domain.State{"Q0", "Q1", "Q2"},
		nil,
		[]domain.Rule{
			rule("Q0", domain.One, "Q1", domain.Blank, domain.Right),
			rule("Q1", domain.One, "Q1", domain.One, domain.Right),
			rule("Q1", domain.Blank, "Q2", domain.One, domain.Right),
		},
	)
	require.NoError(t, err)
	return m
}

func parity(t *testing.T, tape string) *runtime.Machine {
	t.Helper()
	m, err := runtime.NewMachine(
		domain.Interpret(tape),
		"Q0",
		[]domain.State{"Q0", "Q1"},
		[]domain.State{"Q0"},
		[]domain.Rule{
			rule("Q0", domain.One, "Q1", domain.One, domain.Right),
			rule("Q1", domain.One, "Q0", domain.One, domain.Right),
			rule("Q0", domain.Zero, "Q0", domain.Zero, domain.Right),
			rule("Q1", domain.Zero, "Q1", domain.Zero, domain.Right),
		},
	)
	require.NoError(t, err)
	return m
}

func TestMachine_ScansToAcceptance(t *testing.T) {
	trace := scanner(t, "000001").Run()

	require.Len(t, trace, 8)
	last, _ := trace.Last()
	assert.True(t, last.Final)
	assert.Equal(t, domain.StatusAccepted, last.Status)
	assert.Equal(t, domain.State("Q1"), last.State)
	assert.Equal(t, "000001#", domain.Stringify(last.Tape))
	assert.Equal(t, 6, last.Position, "cursor sits past the consumed one")
	assert.Equal(t, 6, last.Step)
	assert.True(t, trace.Accepted())

	first := trace[0]
	assert.Equal(t, 0, first.Step)
	assert.Equal(t, domain.StatusAccepting, first.Status)
	assert.False(t, first.Final)

	// The transition into Q1 is recognized as accepted in the same step.
	assert.Equal(t, domain.StatusAccepted, trace[6].Status)
	assert.False(t, trace[6].Final)
}

func TestMachine_UnaryAddition(t *testing.T) {
	trace := adder(t, "11#11").Run()

	last, _ := trace.Last()
	assert.Equal(t, "#1111", domain.Stringify(last.Tape))
	assert.Equal(t, domain.State("Q2"), last.State)
	assert.Equal(t, domain.StatusRejected, last.Status, "Q2 is not final")
	assert.Equal(t, 3, last.Step)
}

func TestMachine_Parity(t *testing.T) {
	tests := []struct {
		tape string
		want domain.Status
	}{
		{"11111", domain.StatusRejected},
		{"1111", domain.StatusAccepted},
		{"0011", domain.StatusAccepted},
		{"010", domain.StatusRejected},
		{"0", domain.StatusAccepted},
	}
	for _, tt := range tests {
		t.Run(tt.tape, func(t *testing.T) {
			assert.Equal(t, tt.want, parity(t, tt.tape).Run().Status())
		})
	}
}

func TestNewMachine_Failures(t *testing.T) {
	tests := []struct {
		name    string
		initial domain.State
		states  []domain.State
		finals  []domain.State
		want    error
		state   domain.State
	}{
		{
			name:    "Initial not declared",
			initial: "Q9",
			states:  []domain.State{"Q0", "Q1"},
			want:    domain.ErrInitialNotDeclared,
			state:   "Q9",
		},
		{
			name:    "Final not declared",
			initial: "Q0",
			states:  []domain.State{"Q0"},
			finals:  []domain.State{"Q0", "QF"},
			want:    domain.ErrFinalNotDeclared,
			state:   "QF",
		},
		{
			name:    "No states at all",
			initial: "Q0",
			want:    domain.ErrInitialNotDeclared,
			state:   "Q0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := runtime.NewMachine(domain.Interpret("01"), tt.initial, tt.states, tt.finals, nil)
			require.Error(t, err)
			assert.Nil(t, m)
			assert.ErrorIs(t, err, tt.want)

			var ce *runtime.ConstructionError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tt.state, ce.State)
		})
	}
}

func TestMachine_InitialStateIsFinal(t *testing.T) {
	m, err := runtime.NewMachine(domain.Interpret("0"), "Q0", []domain.State{"Q0"}, []domain.State{"Q0"}, nil)
	require.NoError(t, err)

	trace := m.Run()
	require.Len(t, trace, 2)
	assert.Equal(t, domain.StatusAccepting, trace[0].Status, "the first snapshot precedes any status computation")
	assert.Equal(t, domain.StatusAccepted, trace[1].Status)
	assert.True(t, trace[1].Final)
}

func TestMachine_LeftEdgeInsertsBlank(t *testing.T) {
	m, err := runtime.NewMachine(
		domain.Interpret("1"),
		"Q0",
		[]domain.State{"Q0", "Q1"},
		[]domain.State{"Q1"},
		[]domain.Rule{rule("Q0", domain.One, "Q1", domain.Zero, domain.Left)},
	)
	require.NoError(t, err)

	trace := m.Run()
	last, _ := trace.Last()
	assert.Equal(t, "#0", domain.Stringify(last.Tape))
	assert.Equal(t, 0, last.Position)
	assert.Equal(t, domain.Blank, last.Read())
	assert.Equal(t, domain.StatusAccepted, last.Status)
}

func TestMachine_EmptyTapeReadsBlank(t *testing.T) {
	m, err := runtime.NewMachine(
		nil,
		"Q0",
		[]domain.State{"Q0", "Q1"},
		[]domain.State{"Q1"},
		[]domain.Rule{rule("Q0", domain.Blank, "Q1", domain.One, domain.Stay)},
	)
	require.NoError(t, err)

	last, _ := m.Run().Last()
	assert.Equal(t, "1", domain.Stringify(last.Tape))
	assert.Equal(t, domain.StatusAccepted, last.Status)
}

func TestMachine_StepAfterDoneIsNoop(t *testing.T) {
	m := scanner(t, "1")
	m.Run()
	require.True(t, m.Done())

	before := m.Snapshot()
	m.Step()
	assert.Empty(t, cmp.Diff(before, m.Snapshot()))
}

func TestMachine_TraceInvariants(t *testing.T) {
	machines := map[string]*runtime.Machine{
		"scanner": scanner(t, "0000000001"),
		"adder":   adder(t, "111#1"),
		"parity":  parity(t, "0101101"),
	}
	for name, m := range machines {
		t.Run(name, func(t *testing.T) {
			trace := m.Run()
			require.NotEmpty(t, trace)

			for i, snap := range trace {
				assert.GreaterOrEqual(t, snap.Position, 0)
				assert.Less(t, snap.Position, len(snap.Tape), "cursor is always a valid index")
				assert.Contains(t, []domain.Status{domain.StatusAccepting, domain.StatusAccepted, domain.StatusRejected}, snap.Status)
				assert.Equal(t, i == len(trace)-1, snap.Final, "only the last snapshot is final")
				if i > 0 {
					assert.GreaterOrEqual(t, len(snap.Tape), len(trace[i-1].Tape), "the tape never shrinks")
				}
			}
		})
	}
}

func TestMachine_SnapshotsOwnTheirTape(t *testing.T) {
	trace := adder(t, "11#11").Run()
	assert.Equal(t, "11#11", domain.Stringify(trace[0].Tape))
	assert.Equal(t, "#1#11", domain.Stringify(trace[1].Tape))
}

func TestMachine_Deterministic(t *testing.T) {
	a := parity(t, "1101011").Run()
	b := parity(t, "1101011").Run()
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("two runs of the same machine differ (-first +second):\n%s", diff)
	}
}

func TestMachine_RunLimit(t *testing.T) {
	t.Run("Halting exactly at the limit succeeds", func(t *testing.T) {
		trace, err := scanner(t, "000001").RunLimit(context.Background(), 6)
		require.NoError(t, err)
		assert.True(t, trace.Accepted())
	})

	t.Run("One step short fails with a partial trace", func(t *testing.T) {
		trace, err := scanner(t, "000001").RunLimit(context.Background(), 5)
		require.ErrorIs(t, err, domain.ErrStepLimitExceeded)
		require.Len(t, trace, 6)
		last, _ := trace.Last()
		assert.False(t, last.Final)
		assert.Equal(t, 5, last.Step)
	})

	t.Run("Non-terminating machine is cut off", func(t *testing.T) {
		m, err := runtime.NewMachine(
			nil,
			"Q0",
			[]domain.State{"Q0"},
			nil,
			[]domain.Rule{rule("Q0", domain.Blank, "Q0", domain.Blank, domain.Right)},
		)
		require.NoError(t, err)

		trace, err := m.RunLimit(context.Background(), 100)
		require.ErrorIs(t, err, domain.ErrStepLimitExceeded)
		assert.Len(t, trace, 101)
		assert.Equal(t, 100, m.Steps())
		assert.False(t, m.Done())
	})

	t.Run("Zero means unbounded", func(t *testing.T) {
		trace, err := parity(t, "1111").RunLimit(context.Background(), 0)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusAccepted, trace.Status())
	})
}

func TestMachine_LifecycleHooks(t *testing.T) {
	var steps []*domain.StepEvent
	var halts []*domain.HaltEvent
	hooks := domain.LifecycleHooks{
		OnStep: func(_ context.Context, e *domain.StepEvent) { steps = append(steps, e) },
		OnHalt: func(_ context.Context, e *domain.HaltEvent) { halts = append(halts, e) },
	}

	m := scanner(t, "01", runtime.WithLifecycleHooks(hooks), runtime.WithName("scanner"))
	trace := m.RunContext(context.Background())

	require.Len(t, steps, trace.Steps())
	assert.Equal(t, domain.EventStep, steps[0].Type)
	assert.Equal(t, "scanner", steps[0].Machine)
	assert.True(t, steps[1].Grew, "moving right off the last cell appends a blank")
	assert.Equal(t, 3, steps[1].TapeLen)

	require.Len(t, halts, 1)
	assert.Equal(t, domain.StatusAccepted, halts[0].Status)
	assert.Equal(t, 2, halts[0].Steps)
	assert.False(t, halts[0].Limited)
}
