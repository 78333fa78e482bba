package runner

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/turing/pkg/domain"
)

type recorder struct {
	indexes []int
	diffs   []*domain.SnapshotDiff
	done    int
}

func (r *recorder) Frame(_ context.Context, index int, _ domain.Snapshot, diff *domain.SnapshotDiff) error {
	r.indexes = append(r.indexes, index)
	r.diffs = append(r.diffs, diff)
	return nil
}

func (r *recorder) Done(context.Context, domain.Trace) error {
	r.done++
	return nil
}

func sampleTrace() domain.Trace {
	return domain.Trace{
		{Step: 0, State: "Q0", Status: domain.StatusAccepting, Tape: domain.Interpret("01"), Position: 0},
		{Step: 1, State: "Q0", Status: domain.StatusAccepting, Tape: domain.Interpret("01"), Position: 1},
		{Step: 2, State: "Q1", Status: domain.StatusAccepted, Tape: domain.Interpret("01#"), Position: 2},
		{Step: 2, State: "Q1", Status: domain.StatusAccepted, Tape: domain.Interpret("01#"), Position: 2, Final: true},
	}
}

func TestPlayer_PlaysEveryFrame(t *testing.T) {
	rec := &recorder{}
	err := NewPlayer(rec).Play(context.Background(), sampleTrace())
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 2, 3}, rec.indexes)
	assert.Equal(t, 1, rec.done)
	require.NotNil(t, rec.diffs[0].State, "the first diff is a full load")
	assert.Equal(t, "#", domain.Stringify(rec.diffs[2].Appended))
}

func TestPlayer_Delay(t *testing.T) {
	rec := &recorder{}
	start := time.Now()
	err := NewPlayer(rec, WithDelay(10*time.Millisecond)).Play(context.Background(), sampleTrace())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond, "three pauses between four frames")
}

func TestPlayer_Cancel(t *testing.T) {
	rec := &recorder{}
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err := NewPlayer(rec, WithDelay(time.Hour)).Play(ctx, sampleTrace())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []int{0}, rec.indexes)
	assert.Zero(t, rec.done)
}

func TestPlayer_Controls(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []int
		wantErr error
	}{
		{"Step then play", "s\np\n", []int{0, 1, 2, 3}, nil},
		{"Rewind", "\n\nr\n", []int{0, 1, 0, 1, 2, 3}, nil},
		{"Quit", "s\nq\n", []int{0}, ErrStopped},
		{"Closed input plays the rest", "", []int{0, 1, 2, 3}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			err := NewPlayer(rec, WithControls(strings.NewReader(tt.input))).Play(context.Background(), sampleTrace())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, rec.indexes)
		})
	}
}

func TestPlayer_ControlsReleasedOnCancel(t *testing.T) {
	r, w := io.Pipe()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- NewPlayer(&recorder{}, WithControls(r)).Play(ctx, sampleTrace())
	}()

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	require.NoError(t, w.Close())
}
