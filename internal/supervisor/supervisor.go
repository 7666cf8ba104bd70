// Package supervisor drives the primary-side cancellation loop: it waits
// for cancel requests, verifies the submitted credential, answers with an
// acknowledgement or a rejection, and tears the schedule down on success
// or on natural expiry of the countdown.
package supervisor

import (
	"sync"
	"time"

	"github.com/napgate/napgate/internal/ipc"
	"github.com/napgate/napgate/internal/journal"
	"github.com/napgate/napgate/internal/scheduler"
	"github.com/napgate/napgate/pkg/logger"
)

// Reason explains why the supervisor loop terminated.
type Reason int

const (
	// ReasonCancelled: a correctly-credentialed cancel request arrived.
	ReasonCancelled Reason = iota

	// ReasonFired: the countdown reached its deadline.
	ReasonFired

	// ReasonAborted: the countdown was cancelled outside the handshake
	// (e.g. the primary was interrupted).
	ReasonAborted
)

// String returns a human-readable name for the reason.
func (r Reason) String() string {
	switch r {
	case ReasonCancelled:
		return "cancelled"
	case ReasonFired:
		return "fired"
	case ReasonAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// CredentialVerifier is the slice of the credential store the supervisor
// consumes. Verify and Delete are never invoked concurrently for two
// in-flight attempts: the handshake allows exactly one outstanding attempt.
type CredentialVerifier interface {
	Verify(candidate string) bool
	Delete() error
}

// Config wires the supervisor's collaborators.
type Config struct {
	// Set is the exclusively-owned synchronization object set.
	Set *ipc.ServerSet

	// Credentials gates cancellation.
	Credentials CredentialVerifier

	// Countdown is the armed schedule.
	Countdown *scheduler.Countdown

	// Journal records attempts and terminal events. May be nil.
	Journal *journal.Journal

	// Log receives progress messages. Defaults to a no-op logger.
	Log logger.Logger

	// Poll bounds each wait for a cancel request. Defaults to
	// ipc.DefaultRequestPoll.
	Poll time.Duration

	// Action is invoked once when the countdown fires naturally (the
	// power-off collaborator). Never retried. May be nil.
	Action func() error

	// OnTeardown observers run exactly once when the schedule ends, on
	// every exit path. May be nil.
	OnTeardown []func()
}

// Supervisor runs the primary-side loop.
type Supervisor struct {
	cfg      Config
	teardown sync.Once
}

// New creates a supervisor, applying defaults for optional fields.
func New(cfg Config) *Supervisor {
	if cfg.Log == nil {
		cfg.Log = logger.NewNopLogger()
	}
	if cfg.Poll <= 0 {
		cfg.Poll = ipc.DefaultRequestPoll
	}
	return &Supervisor{cfg: cfg}
}

// Run blocks until the schedule terminates and returns why. The loop keeps
// the reset-before-wait discipline: after every rejected attempt the
// request and rejection signals are cleared before the next wait, so a
// subsequent request cannot be lost. Retries are unbounded; every attempt
// is journaled.
func (s *Supervisor) Run() Reason {
	for {
		// The countdown's completion notification takes precedence over a
		// racing request: once fired, the schedule cannot be cancelled.
		select {
		case <-s.cfg.Countdown.Done():
			if s.cfg.Countdown.Fired() {
				s.handleFire()
				return ReasonFired
			}
			s.handleAbort()
			return ReasonAborted
		default:
		}

		if !s.cfg.Set.WaitForRequest(s.cfg.Poll) {
			continue
		}
		if s.handleAttempt() {
			return ReasonCancelled
		}
	}
}

// handleAttempt processes one cancel request. Returns true when the
// schedule was cancelled.
func (s *Supervisor) handleAttempt() bool {
	credential := s.cfg.Set.ConsumeCredential()

	if !s.cfg.Credentials.Verify(credential) {
		s.cfg.Log.Warning("cancel request rejected: wrong credential")
		s.journal(journal.KindAttemptBad, "")
		s.cfg.Set.Respond(ipc.OutcomeNack)
		s.cfg.Set.ResetForRetry()
		return false
	}

	s.cfg.Log.Info("cancel request accepted, stopping countdown")
	s.cfg.Countdown.Cancel()
	s.cfg.Set.Respond(ipc.OutcomeAck)
	s.journal(journal.KindAttemptOK, "")
	s.journal(journal.KindCancelled, "")
	s.cfg.Set.Destroy()
	// The credential is one-time use: consumed even on success.
	s.deleteCredential()
	s.notifyTeardown()
	return true
}

// handleFire tears down after natural expiry and invokes the power-off
// action exactly once.
func (s *Supervisor) handleFire() {
	s.cfg.Log.Info("countdown fired")
	s.journal(journal.KindFired, "")
	s.cfg.Set.Destroy()
	s.notifyTeardown()
	// No credential may outlive the schedule it guarded.
	s.deleteCredential()
	if s.cfg.Action != nil {
		if err := s.cfg.Action(); err != nil {
			s.cfg.Log.Error("power action failed: %s", err)
		}
	}
}

// handleAbort tears down after an external cancellation of the countdown.
func (s *Supervisor) handleAbort() {
	s.cfg.Log.Info("schedule aborted")
	s.journal(journal.KindCancelled, "aborted")
	s.cfg.Set.Destroy()
	s.deleteCredential()
	s.notifyTeardown()
}

func (s *Supervisor) journal(kind journal.Kind, detail string) {
	if err := s.cfg.Journal.Record(kind, detail); err != nil {
		s.cfg.Log.Warning("journal write failed: %s", err)
	}
}

func (s *Supervisor) deleteCredential() {
	if err := s.cfg.Credentials.Delete(); err != nil {
		s.cfg.Log.Warning("credential cleanup failed: %s", err)
	}
}

func (s *Supervisor) notifyTeardown() {
	s.teardown.Do(func() {
		for _, fn := range s.cfg.OnTeardown {
			fn()
		}
	})
}
