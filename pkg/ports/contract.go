package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/turing/pkg/domain"
)

func contractRun(id string, created time.Time) *domain.Run {
	trace := domain.Trace{
		{Step: 0, State: "Q0", Status: domain.StatusAccepting, Tape: domain.Interpret("01"), Position: 0},
		{Step: 1, State: "Q0", Status: domain.StatusAccepting, Tape: domain.Interpret("01"), Position: 1},
		{Step: 2, State: "Q1", Status: domain.StatusAccepted, Tape: domain.Interpret("01#"), Position: 2},
		{Step: 2, State: "Q1", Status: domain.StatusAccepted, Tape: domain.Interpret("01#"), Position: 2, Final: true},
	}
	run := domain.NewRun(id, "contract", trace, created)
	run.Verdict = &domain.Verdict{Passed: true, Message: "ok"}
	return run
}

// RunStoreContract runs a suite of tests to verify that a RunStore implementation
// adheres to the defined interface contract.
func RunStoreContract(t *testing.T, store RunStore) {
	ctx := context.Background()
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	runID := "contract-test-run-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		run := contractRun(runID, base)

		err := store.Save(ctx, run)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, runID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, runID, loaded.ID)
		assert.Equal(t, domain.StatusAccepted, loaded.Status)
		assert.Equal(t, 2, loaded.Steps)
		assert.Equal(t, "01#", loaded.FinalTape)
		assert.True(t, loaded.CreatedAt.Equal(base))
		require.NotNil(t, loaded.Verdict)
		assert.True(t, loaded.Verdict.Passed)
		require.Len(t, loaded.Trace, 4)
		assert.Equal(t, run.Trace[2].Tape, loaded.Trace[2].Tape)
		assert.True(t, loaded.Trace[3].Final)
	})

	t.Run("Loaded Run Is Independent", func(t *testing.T) {
		loaded, err := store.Load(ctx, runID)
		require.NoError(t, err)
		loaded.Trace[0].Tape[0] = domain.Blank
		loaded.Status = domain.StatusRejected

		again, err := store.Load(ctx, runID)
		require.NoError(t, err)
		assert.Equal(t, domain.Zero, again.Trace[0].Tape[0])
		assert.Equal(t, domain.StatusAccepted, again.Status)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+runID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, contractRun(runID, base))
		require.NoError(t, err)

		err = store.Delete(ctx, runID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, runID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound, "Load after Delete should return ErrRunNotFound")

		assert.NoError(t, store.Delete(ctx, runID), "Delete is idempotent")
	})

	t.Run("List", func(t *testing.T) {
		id1 := runID + "-1"
		id2 := runID + "-2"
		require.NoError(t, store.Save(ctx, contractRun(id2, base.Add(time.Minute))))
		require.NoError(t, store.Save(ctx, contractRun(id1, base)))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		runs, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, runs, id1)
		assert.Contains(t, runs, id2)

		var pos1, pos2 int
		for i, id := range runs {
			switch id {
			case id1:
				pos1 = i
			case id2:
				pos2 = i
			}
		}
		assert.Less(t, pos1, pos2, "older runs are listed first")
	})
}
