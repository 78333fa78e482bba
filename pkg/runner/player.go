package runner

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/turing/pkg/domain"
)

// ErrStopped is returned when playback is ended with the quit control.
var ErrStopped = errors.New("playback stopped")

// Player replays a trace through a FrameHandler.
type Player struct {
	handler  FrameHandler
	delay    time.Duration
	controls io.Reader
	logger   *slog.Logger
}

// NewPlayer creates a player for the given handler.
func NewPlayer(handler FrameHandler, opts ...Option) *Player {
	p := &Player{
		handler: handler,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Play presents every snapshot of trace in order, then calls Done. Between
// frames it waits for the configured delay or, with controls, for a command.
// It returns ctx.Err() as soon as the context is cancelled.
func (p *Player) Play(ctx context.Context, trace domain.Trace) error {
	commands, stop := p.readControls()
	defer stop()

	stepping := commands != nil
	var prev *domain.Snapshot
	for i := 0; i < len(trace); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if stepping {
			cmd, err := p.await(ctx, commands)
			if err != nil {
				return err
			}
			switch cmd {
			case "p", "play":
				stepping = false
			case "r", "reset":
				p.logger.DebugContext(ctx, "playback rewound", "from", i)
				i, prev = 0, nil
			case "q", "quit":
				return ErrStopped
			}
		} else if i > 0 && p.delay > 0 {
			if err := p.wait(ctx); err != nil {
				return err
			}
		}

		snap := trace[i]
		if err := p.handler.Frame(ctx, i, snap, domain.Diff(prev, &snap)); err != nil {
			return err
		}
		prev = &trace[i]
	}

	p.logger.DebugContext(ctx, "playback finished", "frames", len(trace))
	return p.handler.Done(ctx, trace)
}

func (p *Player) wait(ctx context.Context) error {
	timer := time.NewTimer(p.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// await blocks for the next command. A closed control stream plays the rest.
func (p *Player) await(ctx context.Context, commands <-chan string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case cmd, ok := <-commands:
		if !ok {
			return "p", nil
		}
		return cmd, nil
	}
}

// readControls starts a reader for the control stream. The returned stop
// function releases the reader once its current read returns.
func (p *Player) readControls() (<-chan string, func()) {
	if p.controls == nil {
		return nil, func() {}
	}

	commands := make(chan string)
	done := make(chan struct{})
	go func() {
		defer close(commands)
		scanner := bufio.NewScanner(p.controls)
		for scanner.Scan() {
			select {
			case commands <- strings.ToLower(strings.TrimSpace(scanner.Text())):
			case <-done:
				return
			}
		}
	}()
	return commands, func() { close(done) }
}
