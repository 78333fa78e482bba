package runner

import (
	"io"
	"log/slog"
	"time"
)

// Option defines a functional option for configuring the Player.
type Option func(*Player)

// WithDelay sets the pause between frames. Zero plays as fast as the handler writes.
func WithDelay(d time.Duration) Option {
	return func(p *Player) {
		if d >= 0 {
			p.delay = d
		}
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Player) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithControls reads playback commands from r, one per line, before each frame:
// an empty line or "s" steps, "p" plays the rest, "r" rewinds and "q" stops.
func WithControls(r io.Reader) Option {
	return func(p *Player) {
		p.controls = r
	}
}
