package domain

import "errors"

// Construction failures raised by the engine itself.
var (
	// ErrInitialNotDeclared is returned when the initial state is missing from the state list.
	ErrInitialNotDeclared = errors.New("initial state is not declared")

	// ErrFinalNotDeclared is returned when a final state is missing from the state list.
	ErrFinalNotDeclared = errors.New("final state is not declared")
)

// Definition errors raised by the authoring layer before an engine is built.
var (
	ErrStateUnnamed          = errors.New("state has no name")
	ErrMultipleInitialStates = errors.New("there can only be one initial state")
	ErrStateNotDeclared      = errors.New("rule references a state that does not exist")
	ErrRuleAlreadyDefined    = errors.New("rule already defined for this state and symbol")
	ErrTapeMissing           = errors.New("tape is not set")
	ErrTapeEmpty             = errors.New("tape is empty")
	ErrNoInitialState        = errors.New("an initial state does not exist")
	ErrNoStates              = errors.New("there are no states")
)

// ErrStepLimitExceeded is returned by bounded runs that did not halt in time.
var ErrStepLimitExceeded = errors.New("step limit exceeded")

// ErrRunNotFound is returned when a run ID cannot be found in the store.
var ErrRunNotFound = errors.New("run not found")
