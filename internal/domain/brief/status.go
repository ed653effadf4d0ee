package brief

// Status represents the lifecycle status of a brief.
type Status string

const (
	// StatusPending is the only non-terminal state: the recipient has not
	// responded and the sender has not withdrawn.
	StatusPending Status = "pending"

	// Terminal states (no further transitions allowed)
	StatusAccepted  Status = "accepted"  // Recipient accepted the proposal
	StatusDeclined  Status = "declined"  // Recipient declined the proposal
	StatusWithdrawn Status = "withdrawn" // Sender pulled the proposal back
)

// IsTerminal returns true if the status is a terminal state.
func (s Status) IsTerminal() bool {
	return s == StatusAccepted || s == StatusDeclined || s == StatusWithdrawn
}

// IsValid returns true if the status is one of the known states.
func (s Status) IsValid() bool {
	return s == StatusPending || s.IsTerminal()
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// ValidTransitions defines allowed status transitions.
var ValidTransitions = map[Status][]Status{
	StatusPending: {StatusAccepted, StatusDeclined, StatusWithdrawn},
	// Terminal states have no valid transitions
	StatusAccepted:  {},
	StatusDeclined:  {},
	StatusWithdrawn: {},
}

// CanTransitionTo checks if a transition from current status to target status is valid.
func (s Status) CanTransitionTo(target Status) bool {
	validTargets, ok := ValidTransitions[s]
	if !ok {
		return false
	}
	for _, t := range validTargets {
		if t == target {
			return true
		}
	}
	return false
}
