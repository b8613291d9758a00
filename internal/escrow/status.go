package escrow

// Status is the certificate lifecycle state. Pending is initial; Completed
// and Refunded are terminal and mutually exclusive.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusRefunded  Status = "refunded"
)

var validNext = map[Status]map[Status]bool{
	StatusPending:   {StatusCompleted: true, StatusRefunded: true},
	StatusCompleted: {},
	StatusRefunded:  {},
}

// CanTransition reports whether the state machine permits moving from one
// status to another.
func CanTransition(from, to Status) bool {
	return validNext[from][to]
}

// IsTerminal reports whether no further transition is permitted.
func (s Status) IsTerminal() bool {
	return len(validNext[s]) == 0
}
