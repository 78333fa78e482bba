package runner

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"

	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/aretw0/turing/pkg/domain"
)

// TextHandler renders frames as terminal lines.
type TextHandler struct {
	Writer  io.Writer
	Profile termenv.Profile

	// Overwrite redraws frames in place instead of printing one line each.
	Overwrite bool
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithOverwrite redraws every frame on the same terminal line.
func WithOverwrite(overwrite bool) TextHandlerOption {
	return func(h *TextHandler) {
		h.Overwrite = overwrite
	}
}

// NewTextHandler creates a handler for terminal output.
func NewTextHandler(w io.Writer, profile termenv.Profile, opts ...TextHandlerOption) *TextHandler {
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{Writer: w, Profile: profile}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *TextHandler) Frame(ctx context.Context, index int, snap domain.Snapshot, diff *domain.SnapshotDiff) error {
	line := tui.Tape(h.Profile, snap)
	var err error
	if h.Overwrite {
		_, err = fmt.Fprint(h.Writer, "\r\x1b[2K"+line)
	} else {
		_, err = fmt.Fprintln(h.Writer, line)
	}
	return err
}

func (h *TextHandler) Done(ctx context.Context, trace domain.Trace) error {
	if h.Overwrite {
		if _, err := fmt.Fprintln(h.Writer); err != nil {
			return err
		}
	}

	last, ok := trace.Last()
	if !ok {
		_, err := fmt.Fprintln(h.Writer, "empty trace")
		return err
	}

	outcome := last.Status.String()
	if !last.Final {
		outcome = "stopped"
	}
	summary := h.Profile.String(fmt.Sprintf("%s after %d steps in %s", outcome, last.Step, last.State)).
		Foreground(h.Profile.Color(tui.StatusColor(last.Status)))
	_, err := fmt.Fprintf(h.Writer, "%s, tape %s\n", summary, domain.Stringify(last.Tape))
	return err
}
