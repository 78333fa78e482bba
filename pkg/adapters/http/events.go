package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/runner"
)

// sseHandler writes playback frames as Server-Sent Events.
type sseHandler struct {
	w       http.ResponseWriter
	flusher http.Flusher
	diffs   bool
}

func (h *sseHandler) Frame(ctx context.Context, index int, snap domain.Snapshot, diff *domain.SnapshotDiff) error {
	frame := runner.Frame{Type: "frame", Index: index}
	if h.diffs {
		frame.Diff = diff
	} else {
		frame.Snapshot = &snap
	}
	return h.send("frame", frame)
}

func (h *sseHandler) Done(ctx context.Context, trace domain.Trace) error {
	last, _ := trace.Last()
	return h.send("done", runner.Summary{
		Type:      "done",
		Status:    trace.Status(),
		Steps:     trace.Steps(),
		FinalTape: trace.FinalTape(),
		Halted:    last.Final,
	})
}

func (h *sseHandler) send(event string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(h.w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	h.flusher.Flush()
	return nil
}
