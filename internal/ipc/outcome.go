package ipc

// Outcome is the terminal result of one cancel handshake attempt as
// observed by the secondary instance.
type Outcome int

const (
	// OutcomeAck means the credential was accepted and the schedule is
	// cancelled. Terminal for the whole handshake.
	OutcomeAck Outcome = iota

	// OutcomeNack means the credential was rejected; the schedule keeps
	// running and the secondary may retry.
	OutcomeNack

	// OutcomeTimeout means neither response arrived in time. Deliberately
	// non-committal: it implies neither that the primary is gone nor that
	// the request was lost.
	OutcomeTimeout
)

// String returns the lowercase wire-style name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeAck:
		return "ack"
	case OutcomeNack:
		return "nack"
	case OutcomeTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}
