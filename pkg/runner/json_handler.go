package runner

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/aretw0/turing/pkg/domain"
)

// Frame is one line of JSON playback output.
type Frame struct {
	Type     string               `json:"type"`
	Index    int                  `json:"index"`
	Snapshot *domain.Snapshot     `json:"snapshot,omitempty"`
	Diff     *domain.SnapshotDiff `json:"diff,omitempty"`
}

// Summary is the last line of JSON playback output.
type Summary struct {
	Type      string        `json:"type"`
	Status    domain.Status `json:"status"`
	Steps     int           `json:"steps"`
	FinalTape string        `json:"final_tape"`
	Halted    bool          `json:"halted"`
}

// JSONHandler implements FrameHandler for structured JSON-Lines output.
type JSONHandler struct {
	Encoder *json.Encoder

	// Diffs emits only what changed since the previous frame.
	Diffs bool
}

// NewJSONHandler creates a handler for JSON output.
func NewJSONHandler(w io.Writer, diffs bool) *JSONHandler {
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{Encoder: json.NewEncoder(w), Diffs: diffs}
}

func (h *JSONHandler) Frame(ctx context.Context, index int, snap domain.Snapshot, diff *domain.SnapshotDiff) error {
	frame := Frame{Type: "frame", Index: index}
	if h.Diffs {
		frame.Diff = diff
	} else {
		frame.Snapshot = &snap
	}
	return h.Encoder.Encode(frame)
}

func (h *JSONHandler) Done(ctx context.Context, trace domain.Trace) error {
	last, _ := trace.Last()
	return h.Encoder.Encode(Summary{
		Type:      "done",
		Status:    trace.Status(),
		Steps:     trace.Steps(),
		FinalTape: trace.FinalTape(),
		Halted:    last.Final,
	})
}
