package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStep EventType = "step"
	EventHalt EventType = "halt"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Machine   string    `json:"machine,omitempty"`
}

// StepEvent describes one applied transition.
type StepEvent struct {
	EventBase
	Step     int    `json:"step"`
	Rule     Rule   `json:"rule"`
	Status   Status `json:"status"`
	Position int    `json:"position"`
	TapeLen  int    `json:"tape_len"`
	Grew     bool   `json:"grew,omitempty"`
}

// HaltEvent describes the end of a run.
type HaltEvent struct {
	EventBase
	State   State  `json:"state"`
	Status  Status `json:"status"`
	Steps   int    `json:"steps"`
	TapeLen int    `json:"tape_len"`
	// Limited is set when a bounded run stopped before the machine halted.
	Limited bool `json:"limited,omitempty"`
}

// LifecycleHooks defines callbacks for engine observability.
// Hooks run synchronously inside the step loop and should return quickly.
type LifecycleHooks struct {
	OnStep func(context.Context, *StepEvent)
	OnHalt func(context.Context, *HaltEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnStep: chain(h.OnStep, other.OnStep),
		OnHalt: chain(h.OnHalt, other.OnHalt),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
