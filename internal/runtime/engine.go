package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/turing/pkg/domain"
)

// ConstructionError is returned when a machine cannot be built from its inputs.
type ConstructionError struct {
	State domain.State
	Err   error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("cannot create machine: %v: %q", e.Err, e.State)
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}

// Option configures a Machine.
type Option func(*Machine)

// WithLogger sets the structured logger used for step and halt logs.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Machine) {
		m.hooks = hooks
	}
}

// WithName labels events and logs with a machine name.
func WithName(name string) Option {
	return func(m *Machine) {
		m.name = name
	}
}

// Machine is a single-tape deterministic Turing machine. It is built once per
// run, owned by one caller and not safe for concurrent use.
type Machine struct {
	tape     *tape
	position int
	done     bool

	table  *Table
	finals []bool

	current int
	status  domain.Status
	steps   int

	name   string
	logger *slog.Logger
	hooks  domain.LifecycleHooks
}

// NewMachine validates its inputs and builds a machine positioned on the first
// cell, in the initial state, with status accepting.
//
// It fails when the initial state or any final state is missing from states.
// Rules sharing a (state, symbol) key are not an error: the later rule wins.
func NewMachine(input domain.Tape, initial domain.State, states []domain.State, finals []domain.State, rules []domain.Rule, opts ...Option) (*Machine, error) {
	registry := domain.NewRegistry(states, initial, finals)

	if !registry.Contains(initial) {
		return nil, &ConstructionError{State: initial, Err: domain.ErrInitialNotDeclared}
	}
	for _, f := range finals {
		if !registry.Contains(f) {
			return nil, &ConstructionError{State: f, Err: domain.ErrFinalNotDeclared}
		}
	}

	table := NewTable(states, rules)
	m := &Machine{
		tape:   newTape(input),
		table:  table,
		finals: make([]bool, table.size()),
		status: domain.StatusAccepting,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	m.current, _ = table.indexOf(initial)
	for _, f := range finals {
		i, _ := table.indexOf(f)
		m.finals[i] = true
	}

	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// State returns the current state.
func (m *Machine) State() domain.State { return m.table.name(m.current) }

// Status returns the current acceptance status.
func (m *Machine) Status() domain.Status { return m.status }

// Position returns the cursor index.
func (m *Machine) Position() int { return m.position }

// Done reports whether the machine has halted.
func (m *Machine) Done() bool { return m.done }

// Steps returns the number of transitions applied so far.
func (m *Machine) Steps() int { return m.steps }

// Snapshot records the machine at this instant. The tape is copied.
func (m *Machine) Snapshot() domain.Snapshot {
	return domain.Snapshot{
		Step:     m.steps,
		State:    m.State(),
		Status:   m.status,
		Tape:     m.tape.Copy(),
		Position: m.position,
		Final:    m.done,
	}
}

func (m *Machine) statusOf(state int) domain.Status {
	if m.finals[state] {
		return domain.StatusAccepted
	}
	return domain.StatusAccepting
}

// Step performs a single logical step. It is a no-op once the machine is done.
func (m *Machine) Step() {
	m.step(context.Background())
}

func (m *Machine) step(ctx context.Context) {
	if m.done {
		return
	}

	m.status = m.statusOf(m.current)

	e := m.table.find(m.current, m.tape.Read(m.position))
	if e == nil {
		// No rule matches: this is the only way a machine halts. Halting in a
		// final state keeps the input accepted.
		if m.status == domain.StatusAccepting {
			m.status = domain.StatusRejected
		}
		m.done = true
		return
	}

	m.current = e.to
	m.tape.Write(m.position, e.rule.Write)
	m.status = m.statusOf(m.current)

	grew := false
	switch e.rule.Move {
	case domain.Right:
		if m.position == m.tape.Len()-1 {
			m.tape.Append()
			grew = true
		}
		m.position++
	case domain.Left:
		if m.position == 0 {
			// The head stays on index 0, which is now the inserted blank.
			m.tape.Prepend()
			grew = true
		} else {
			m.position--
		}
	case domain.Stay:
	}
	m.steps++

	m.logger.DebugContext(ctx, "transition",
		"step", m.steps,
		"rule", e.rule.String(),
		"position", m.position,
		"status", m.status.String(),
	)

	if m.hooks.OnStep != nil {
		m.hooks.OnStep(ctx, &domain.StepEvent{
			EventBase: m.event(domain.EventStep),
			Step:      m.steps,
			Rule:      e.rule,
			Status:    m.status,
			Position:  m.position,
			TapeLen:   m.tape.Len(),
			Grew:      grew,
		})
	}
}

// wouldTransition reports whether the next step applies a rule.
func (m *Machine) wouldTransition() bool {
	return !m.done && m.table.find(m.current, m.tape.Read(m.position)) != nil
}

// Run executes the machine until it halts and returns the full trace: the
// snapshot before the first step, one snapshot before every further step and a
// final snapshot flagged Final. It never returns for a machine that does not halt.
func (m *Machine) Run() domain.Trace {
	trace, _ := m.run(context.Background(), 0)
	return trace
}

// RunContext is Run with a context handed to hooks and logs. The context does
// not interrupt the run.
func (m *Machine) RunContext(ctx context.Context) domain.Trace {
	trace, _ := m.run(ctx, 0)
	return trace
}

// RunLimit is Run bounded to at most limit transitions. When the machine would
// apply one more transition past the limit it stops and returns the partial
// trace together with domain.ErrStepLimitExceeded. A limit of zero or less is
// unbounded.
func (m *Machine) RunLimit(ctx context.Context, limit int) (domain.Trace, error) {
	return m.run(ctx, limit)
}

func (m *Machine) run(ctx context.Context, limit int) (domain.Trace, error) {
	var trace domain.Trace

	current := m.Snapshot()
	for !current.Final {
		if limit > 0 && m.steps >= limit && m.wouldTransition() {
			trace = append(trace, current)
			m.emitHalt(ctx, true)
			return trace, fmt.Errorf("machine did not halt after %d steps: %w", limit, domain.ErrStepLimitExceeded)
		}
		trace = append(trace, current)
		m.step(ctx)
		current = m.Snapshot()
	}
	trace = append(trace, current)

	m.emitHalt(ctx, false)
	return trace, nil
}

func (m *Machine) emitHalt(ctx context.Context, limited bool) {
	m.logger.InfoContext(ctx, "machine halted",
		"state", m.State().Name(),
		"status", m.status.String(),
		"steps", m.steps,
		"tape_len", m.tape.Len(),
		"limited", limited,
	)

	if m.hooks.OnHalt != nil {
		m.hooks.OnHalt(ctx, &domain.HaltEvent{
			EventBase: m.event(domain.EventHalt),
			State:     m.State(),
			Status:    m.status,
			Steps:     m.steps,
			TapeLen:   m.tape.Len(),
			Limited:   limited,
		})
	}
}

func (m *Machine) event(t domain.EventType) domain.EventBase {
	return domain.EventBase{
		Timestamp: time.Now(),
		Type:      t,
		Machine:   m.name,
	}
}
