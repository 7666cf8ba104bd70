package scheduler

import (
	"errors"
	"sync"
	"time"

	"github.com/adhocore/gronx"
)

// Sentinel errors for scheduling calls.
var (
	// ErrNonPositiveDuration is returned for a zero or negative duration.
	ErrNonPositiveDuration = errors.New("duration must be positive")

	// ErrPastTarget is returned when the target time is not strictly in
	// the future.
	ErrPastTarget = errors.New("target time must be in the future")

	// ErrAlreadyScheduled is returned when a schedule call is made while a
	// countdown is outstanding. One schedule per process lifetime.
	ErrAlreadyScheduled = errors.New("already scheduled")
)

type state int

const (
	stateIdle state = iota
	stateScheduled
	stateFired
	stateCancelled
)

// Countdown is a cancellable one-shot deadline timer. The fire callback is
// invoked exactly once, from the countdown goroutine, when the deadline
// elapses without cancellation.
type Countdown struct {
	mu       sync.Mutex
	state    state
	fireAt   time.Time
	onFire   func()
	cancelCh chan struct{}
	doneCh   chan struct{}
}

// New creates an idle countdown that will invoke onFire on expiry.
func New(onFire func()) *Countdown {
	return &Countdown{
		onFire:   onFire,
		cancelCh: make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// ScheduleDuration arms the countdown to fire after d.
func (c *Countdown) ScheduleDuration(d time.Duration) error {
	if d <= 0 {
		return ErrNonPositiveDuration
	}
	return c.arm(time.Now().Add(d))
}

// ScheduleAt arms the countdown to fire at the absolute time target.
func (c *Countdown) ScheduleAt(target time.Time) error {
	if !target.After(time.Now()) {
		return ErrPastTarget
	}
	return c.arm(target)
}

func (c *Countdown) arm(fireAt time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != stateIdle {
		return ErrAlreadyScheduled
	}
	c.state = stateScheduled
	c.fireAt = fireAt
	go c.run(fireAt)
	return nil
}

// run blocks until the deadline or a cancellation wake-up, whichever comes
// first. The wake on cancel is immediate: the select returns as soon as
// cancelCh closes.
func (c *Countdown) run(fireAt time.Time) {
	timer := time.NewTimer(time.Until(fireAt))
	defer timer.Stop()

	select {
	case <-timer.C:
		c.mu.Lock()
		if c.state != stateScheduled {
			// Cancel won the race after the timer expired.
			c.mu.Unlock()
			return
		}
		c.state = stateFired
		c.mu.Unlock()
		close(c.doneCh)
		if c.onFire != nil {
			c.onFire()
		}
	case <-c.cancelCh:
		// State was already moved to Cancelled by Cancel.
	}
}

// Cancel wakes and stops a pending countdown. Idempotent and always safe:
// cancelling an idle, already-fired or already-cancelled countdown is a
// no-op and the fire callback is never invoked after a successful cancel.
func (c *Countdown) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != stateScheduled {
		return
	}
	c.state = stateCancelled
	close(c.cancelCh)
	close(c.doneCh)
}

// IsActive reports whether a countdown is armed and has neither fired nor
// been cancelled.
func (c *Countdown) IsActive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == stateScheduled
}

// Fired reports whether the countdown reached its deadline and invoked the
// fire callback.
func (c *Countdown) Fired() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == stateFired
}

// FireAt returns the deadline and whether one has been set.
func (c *Countdown) FireAt() (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fireAt.IsZero() {
		return time.Time{}, false
	}
	return c.fireAt, true
}

// Remaining returns the time left until the deadline. The second result is
// false before scheduling. Once the deadline has passed the remaining time
// floors at zero, never negative.
func (c *Countdown) Remaining() (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fireAt.IsZero() {
		return 0, false
	}
	d := time.Until(c.fireAt)
	if d < 0 {
		d = 0
	}
	return d, true
}

// Done returns a channel closed when the countdown reaches a terminal
// state, fired or cancelled. It lets the supervisor observe natural expiry
// without time-sliced polling.
func (c *Countdown) Done() <-chan struct{} {
	return c.doneCh
}

// NextCronOccurrence computes the single next time expr matches strictly
// after the given time. Used by the --cron convenience flag to derive a
// one-shot deadline; nothing recurs.
func NextCronOccurrence(expr string, after time.Time) (time.Time, error) {
	return gronx.NextTickAfter(expr, after, false)
}
