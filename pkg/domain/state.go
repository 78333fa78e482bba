package domain

// State is a named point in the machine's control flow. Two states with the
// same name are the same state.
type State string

// Name returns the state identifier.
func (s State) Name() string { return string(s) }

// Registry holds the states of one machine definition: every declared state in
// declaration order, the initial state and the set of final states.
//
// The registry stores exactly what it is given. Uniqueness of the initial state
// and membership of the initial/final states are checked by callers before a
// machine is built; the registry only answers membership queries.
type Registry struct {
	states     []State
	declared   map[State]struct{}
	initial    State
	hasInitial bool
	finals     []State
	finalSet   map[State]struct{}
}

// NewRegistry creates a registry with an initial state.
func NewRegistry(states []State, initial State, finals []State) *Registry {
	r := newRegistry(states, finals)
	r.initial = initial
	r.hasInitial = true
	return r
}

// NewRegistryWithoutInitial creates a registry that has no initial state yet.
func NewRegistryWithoutInitial(states []State, finals []State) *Registry {
	return newRegistry(states, finals)
}

func newRegistry(states []State, finals []State) *Registry {
	r := &Registry{
		states:   append([]State(nil), states...),
		declared: make(map[State]struct{}, len(states)),
		finals:   append([]State(nil), finals...),
		finalSet: make(map[State]struct{}, len(finals)),
	}
	for _, s := range states {
		r.declared[s] = struct{}{}
	}
	for _, s := range finals {
		r.finalSet[s] = struct{}{}
	}
	return r
}

// Contains reports whether s was declared.
func (r *Registry) Contains(s State) bool {
	_, ok := r.declared[s]
	return ok
}

// ContainsAll reports whether every given state was declared. An empty
// argument list is trivially contained.
func (r *Registry) ContainsAll(states ...State) bool {
	for _, s := range states {
		if !r.Contains(s) {
			return false
		}
	}
	return true
}

// IsFinal reports whether s belongs to the final set.
func (r *Registry) IsFinal(s State) bool {
	_, ok := r.finalSet[s]
	return ok
}

// IsInitial reports whether s is the initial state.
func (r *Registry) IsInitial(s State) bool {
	return r.hasInitial && r.initial == s
}

// Initial returns the initial state and whether one is set.
func (r *Registry) Initial() (State, bool) {
	return r.initial, r.hasInitial
}

// States returns the declared states in declaration order.
func (r *Registry) States() []State {
	return append([]State(nil), r.states...)
}

// Finals returns the final states in the order they were given.
func (r *Registry) Finals() []State {
	return append([]State(nil), r.finals...)
}

// Len is the number of declared states, duplicates included.
func (r *Registry) Len() int {
	return len(r.states)
}
