package ipc

import (
	"sync"
	"time"
)

// Protocol timing defaults.
const (
	// DefaultAwaitTimeout bounds the secondary's wait for an Ack or Nack.
	DefaultAwaitTimeout = 5 * time.Second

	// DefaultRequestPoll bounds each primary-side wait for a cancel
	// request, so the supervisor can interleave liveness checks.
	DefaultRequestPoll = 500 * time.Millisecond
)

// ServerSet is the primary's exclusively-owned synchronization object set:
// presence marker, three manual-reset signals and the credential mailbox.
// It is created once per schedule lifetime and destroyed on successful
// cancellation, natural fire, or process exit.
type ServerSet struct {
	mu        sync.Mutex
	objs      *serverObjects
	box       *Mailbox
	destroyed bool
}

// DetectRunning reports whether a primary instance already owns the
// presence marker. It never takes ownership and releases any handle it
// obtains immediately.
func DetectRunning() bool {
	return probeRunning()
}

// CreatePrimary atomically creates the presence marker and the three
// signals, taking exclusive ownership. On ErrAlreadyRunning the caller
// lost a creation race and must re-run DetectRunning and proceed as a
// secondary rather than assume ownership.
func CreatePrimary() (*ServerSet, error) {
	objs, err := acquireServerObjects()
	if err != nil {
		return nil, err
	}
	return &ServerSet{objs: objs, box: NewMailbox()}, nil
}

// WaitForRequest blocks up to poll for the cancel-requested signal and
// reports whether it fired. Returns false on a destroyed set.
func (s *ServerSet) WaitForRequest(poll time.Duration) bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	objs, destroyed := s.objs, s.destroyed
	s.mu.Unlock()
	if destroyed {
		return false
	}
	return objs.waitCancel(poll)
}

// ConsumeCredential reads and deletes the mailbox value. Never blocks,
// never fails; absence yields the empty string.
func (s *ServerSet) ConsumeCredential() string {
	if s == nil {
		return ""
	}
	return s.box.Consume()
}

// Respond sets the signal matching the outcome. Setting a manual-reset
// signal twice is naturally a no-op, so double-respond is harmless.
// OutcomeTimeout is not a response and is ignored.
func (s *ServerSet) Respond(outcome Outcome) {
	if s == nil {
		return
	}
	s.mu.Lock()
	objs, destroyed := s.objs, s.destroyed
	s.mu.Unlock()
	if destroyed {
		return
	}
	switch outcome {
	case OutcomeAck:
		objs.setAck()
	case OutcomeNack:
		objs.setNack()
	}
}

// ResetForRetry clears the cancel-requested and rejected signals before
// the next wait, so a subsequent request cannot be lost. The acknowledged
// signal is never reset: an Ack is terminal.
func (s *ServerSet) ResetForRetry() {
	if s == nil {
		return
	}
	s.mu.Lock()
	objs, destroyed := s.objs, s.destroyed
	s.mu.Unlock()
	if destroyed {
		return
	}
	objs.resetForRetry()
}

// Destroy releases the marker and all non-terminal signals. Idempotent:
// destroying an already-destroyed set is a no-op.
func (s *ServerSet) Destroy() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return
	}
	s.destroyed = true
	s.objs.closeAll()
}

// RequestCancel writes the credential into the mailbox and then raises the
// cancel-requested signal. The ordering is mandatory: the mailbox write
// completes (atomically) before the signal becomes visible.
func RequestCancel(credential string) error {
	if err := NewMailbox().Write(credential); err != nil {
		return err
	}
	return raiseCancel()
}

// AwaitOutcome blocks until the primary acknowledges or rejects the
// current attempt, bounded by timeout (DefaultAwaitTimeout when
// non-positive). A Timeout result implies neither that the primary is
// still running nor that the request was lost.
func AwaitOutcome(timeout time.Duration) Outcome {
	if timeout <= 0 {
		timeout = DefaultAwaitTimeout
	}
	return awaitAckNack(timeout)
}
