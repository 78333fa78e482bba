package turing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/pkg/assessment"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/dsl"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/google/uuid"
)

// DefaultStepLimit bounds runs started through the Engine unless WithStepLimit
// says otherwise.
const DefaultStepLimit = 10000

// Engine is the high-level entry point for the Turing library.
// It loads definitions, runs them under a step limit, assesses the result and
// optionally records it in a RunStore.
type Engine struct {
	parser    *compiler.Parser
	store     ports.RunStore
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	stepLimit int
	clock     func() time.Time
	newID     func() string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks on every machine the
// engine builds.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithStepLimit bounds every run to limit transitions. Zero or less disables
// the bound, which lets a non-halting machine run forever.
func WithStepLimit(limit int) Option {
	return func(e *Engine) {
		e.stepLimit = limit
	}
}

// WithStore records every finished run in store.
func WithStore(store ports.RunStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithClock overrides the time source used to stamp runs.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

// WithIDGenerator overrides how run IDs are minted.
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) {
		e.newID = fn
	}
}

// New initializes a new Turing Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{
		parser:    compiler.NewParser(),
		stepLimit: DefaultStepLimit,
		clock:     time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return eng
}

// Store returns the run store, or nil when runs are not recorded.
func (e *Engine) Store() ports.RunStore {
	return e.store
}

// StepLimit returns the bound applied to every run.
func (e *Engine) StepLimit() int {
	return e.stepLimit
}

// Load reads a machine definition from a YAML or JSON file.
func (e *Engine) Load(path string) (*domain.Definition, error) {
	return e.parser.ParseFile(path)
}

// Parse reads a machine definition from raw bytes in the given format.
func (e *Engine) Parse(data []byte, format string) (*domain.Definition, error) {
	return e.parser.Parse(data, format)
}

// Machine validates def and builds a fresh machine for it.
func (e *Engine) Machine(def *domain.Definition) (*runtime.Machine, error) {
	prog, err := dsl.Compile(def)
	if err != nil {
		return nil, err
	}
	logger := e.logger
	if prog.Name != "" {
		logger = logger.With("machine", prog.Name)
	}
	return prog.Machine(
		runtime.WithLogger(logger),
		runtime.WithLifecycleHooks(e.hooks),
	)
}

// Execute runs def to completion and returns its trace. When the step limit
// cuts the run short, the partial trace is returned with an error wrapping
// domain.ErrStepLimitExceeded.
func (e *Engine) Execute(ctx context.Context, def *domain.Definition) (domain.Trace, error) {
	m, err := e.Machine(def)
	if err != nil {
		return nil, err
	}
	return m.RunLimit(ctx, e.stepLimit)
}

// Run executes def, assesses the outcome and records it when a store is set.
//
// A definition that fails validation yields no run. A run stopped by the step
// limit is still recorded, flagged Limited, and returned together with an
// error wrapping domain.ErrStepLimitExceeded.
func (e *Engine) Run(ctx context.Context, def *domain.Definition) (*domain.Run, error) {
	trace, runErr := e.Execute(ctx, def)
	if runErr != nil && !errors.Is(runErr, domain.ErrStepLimitExceeded) {
		return nil, runErr
	}

	run := domain.NewRun(e.newID(), def.Name, trace, e.clock().UTC())
	run.Limited = runErr != nil
	verdict := assessment.Assess(trace, def)
	run.Verdict = &verdict

	if e.store != nil {
		if err := e.store.Save(ctx, run); err != nil {
			e.logger.ErrorContext(ctx, "failed to save run", "run_id", run.ID, "err", err)
			return run, fmt.Errorf("failed to save run %s: %w", run.ID, err)
		}
	}

	e.logger.InfoContext(ctx, "run finished",
		"run_id", run.ID,
		"machine", run.Name,
		"status", run.Status.String(),
		"steps", run.Steps,
		"passed", verdict.Passed,
	)
	return run, runErr
}
