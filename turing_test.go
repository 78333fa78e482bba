package turing_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/dsl"
)

func scannerDef(t *testing.T, tape string) *domain.Definition {
	t.Helper()
	def, err := dsl.New().
		Name("scanner").
		Tape(tape).
		State("Q0").Initial().
		State("Q1").Final().
		Rule("Q0", domain.Zero, domain.Zero, domain.Right, "Q0").
		Rule("Q0", domain.One, domain.One, domain.Right, "Q1").
		Build()
	require.NoError(t, err)
	return def
}

func loopDef(t *testing.T) *domain.Definition {
	t.Helper()
	def, err := dsl.New().
		Name("loop").
		Tape("0").
		State("Q0").Initial().
		Rule("Q0", domain.Zero, domain.Zero, domain.Stay, "Q0").
		Build()
	require.NoError(t, err)
	return def
}

func TestEngine_Run(t *testing.T) {
	store := memory.NewStore()
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	eng := turing.New(
		turing.WithStore(store),
		turing.WithClock(func() time.Time { return created }),
		turing.WithIDGenerator(func() string { return "run-1" }),
	)

	run, err := eng.Run(context.Background(), scannerDef(t, "000001"))
	require.NoError(t, err)

	assert.Equal(t, "run-1", run.ID)
	assert.Equal(t, "scanner", run.Name)
	assert.Equal(t, created, run.CreatedAt)
	assert.Equal(t, domain.StatusAccepted, run.Status)
	assert.Equal(t, 6, run.Steps)
	assert.Equal(t, "000001#", run.FinalTape)
	assert.False(t, run.Limited)
	assert.Len(t, run.Trace, 8)
	require.NotNil(t, run.Verdict)
	assert.True(t, run.Verdict.Passed)

	stored, err := store.Load(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, run.FinalTape, stored.FinalTape)
}

func TestEngine_Run_Rejected(t *testing.T) {
	eng := turing.New()

	run, err := eng.Run(context.Background(), scannerDef(t, "0000"))
	require.NoError(t, err)

	assert.Equal(t, domain.StatusRejected, run.Status)
	assert.False(t, run.Verdict.Passed)
	assert.NotEmpty(t, run.ID, "IDs are minted by default")
}

func TestEngine_Run_StepLimit(t *testing.T) {
	store := memory.NewStore()
	eng := turing.New(turing.WithStepLimit(25), turing.WithStore(store))

	run, err := eng.Run(context.Background(), loopDef(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStepLimitExceeded))

	require.NotNil(t, run, "a limited run is still returned")
	assert.True(t, run.Limited)
	assert.Equal(t, 25, run.Steps)
	assert.False(t, run.Verdict.Passed)

	ids, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{run.ID}, ids)
}

func TestEngine_Run_InvalidDefinition(t *testing.T) {
	store := memory.NewStore()
	eng := turing.New(turing.WithStore(store))

	def := &domain.Definition{States: []domain.StateDecl{{Name: "Q0", Initial: true}}}
	run, err := eng.Run(context.Background(), def)

	assert.Nil(t, run)
	assert.ErrorIs(t, err, domain.ErrTapeMissing)

	ids, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestEngine_LifecycleHooks(t *testing.T) {
	var steps, halts int
	eng := turing.New(turing.WithLifecycleHooks(domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) { steps++ },
		OnHalt: func(ctx context.Context, e *domain.HaltEvent) {
			halts++
			assert.Equal(t, "scanner", e.Machine)
		},
	}))

	_, err := eng.Execute(context.Background(), scannerDef(t, "01"))
	require.NoError(t, err)
	assert.Equal(t, 2, steps)
	assert.Equal(t, 1, halts)
}

func TestEngine_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "addition.yaml")
	content := []byte(`name: addition
tape: "111#111"
expect: "#111111"
states:
  - name: Q0
    initial: true
  - Q1
  - Q2
rules:
  - { if: Q0, read: 1, replace: blank, move: right, goto: Q1 }
  - { if: Q1, read: 1, replace: 1, move: right, goto: Q1 }
  - { if: Q1, read: "#", replace: 1, move: right, goto: Q2 }
`)
	require.NoError(t, os.WriteFile(path, content, 0644))

	eng := turing.New()
	def, err := eng.Load(path)
	require.NoError(t, err)

	run, err := eng.Run(context.Background(), def)
	require.NoError(t, err)
	assert.Equal(t, "#111111", run.FinalTape)
	assert.Equal(t, domain.StatusRejected, run.Status)
	assert.True(t, run.Verdict.Passed, "the expected tape decides the verdict")
}
