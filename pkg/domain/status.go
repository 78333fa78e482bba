package domain

import "fmt"

// Status is the acceptance classification of a machine. Exactly one value
// holds at every point of a run.
type Status uint8

const (
	// StatusAccepting is the running status: no final state is active.
	StatusAccepting Status = iota
	// StatusAccepted means the current state is final. A machine that halts
	// while accepted has accepted its input.
	StatusAccepted
	// StatusRejected means the machine halted outside a final state.
	StatusRejected
)

func (s Status) String() string {
	switch s {
	case StatusAccepted:
		return "accepted"
	case StatusRejected:
		return "rejected"
	default:
		return "accepting"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "accepting":
		*s = StatusAccepting
	case "accepted":
		*s = StatusAccepted
	case "rejected":
		*s = StatusRejected
	default:
		return fmt.Errorf("unknown status %q", text)
	}
	return nil
}
