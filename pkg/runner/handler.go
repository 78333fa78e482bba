package runner

import (
	"context"

	"github.com/aretw0/turing/pkg/domain"
)

// FrameHandler defines how a replayed trace is presented.
// This allows switching between Text (CLI/TUI) and JSON (Structured) modes.
type FrameHandler interface {
	// Frame presents one snapshot. diff describes the change from the previous
	// frame and is computed against nil for the first frame.
	Frame(ctx context.Context, index int, snap domain.Snapshot, diff *domain.SnapshotDiff) error

	// Done is called once after the last frame was presented.
	Done(ctx context.Context, trace domain.Trace) error
}
