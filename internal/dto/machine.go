package dto

import "github.com/aretw0/turing/pkg/domain"

// MachineFile is the on-disk shape of a machine definition.
// It uses "mapstructure" tags so YAML and JSON documents decode through the same path.
type MachineFile struct {
	Name        string  `json:"name" mapstructure:"name"`
	Description string  `json:"description" mapstructure:"description"`
	Tape        *string `json:"tape" mapstructure:"tape"`

	// States accepts either plain names or full entries.
	States []any       `json:"states" mapstructure:"states"`
	Rules  []RuleEntry `json:"rules" mapstructure:"rules"`

	// Lesson fields
	Expect   string   `json:"expect" mapstructure:"expect"`
	Hints    []string `json:"hints" mapstructure:"hints"`
	Solution string   `json:"solution" mapstructure:"solution"`
}

// StateEntry is the long form of a state declaration.
type StateEntry struct {
	Name    string `json:"name" mapstructure:"name"`
	Initial bool   `json:"initial" mapstructure:"initial"`
	Final   bool   `json:"final" mapstructure:"final"`
}

// RuleEntry is one transition. The If/GoTo keys mirror the phrasing
// "if in state, read symbol, replace with, move to, go to state".
type RuleEntry struct {
	From string `json:"from" mapstructure:"from"`
	If   string `json:"if" mapstructure:"if"`

	Read    *domain.Symbol `json:"read" mapstructure:"read"`
	Write   *domain.Symbol `json:"write" mapstructure:"write"`
	Replace *domain.Symbol `json:"replace" mapstructure:"replace"`

	Move *domain.Direction `json:"move" mapstructure:"move"`

	To   string `json:"to" mapstructure:"to"`
	GoTo string `json:"goto" mapstructure:"goto"`
}
