//go:build windows

package ipc

import (
	"fmt"
	"time"

	"golang.org/x/sys/windows"

	"github.com/napgate/napgate/common"
)

// objName builds a session-local kernel object name.
func objName(name string) *uint16 {
	p, err := windows.UTF16PtrFromString(`Local\` + name)
	if err != nil {
		// Names are compile-time constants without NULs.
		panic(err)
	}
	return p
}

// serverObjects holds the primary's handles: the presence-marker mutex and
// the three named manual-reset events. The kernel releases the mutex when
// the owning process exits, so no stale-lock recovery is needed.
type serverObjects struct {
	mutex  windows.Handle
	cancel windows.Handle
	ack    windows.Handle
	nack   windows.Handle
}

// acquireServerObjects atomically creates the presence marker and the three
// signals. Returns ErrAlreadyRunning if the marker already exists (lost a
// creation race with a concurrent primary).
func acquireServerObjects() (*serverObjects, error) {
	m, err := windows.CreateMutex(nil, true, objName(common.RunningName))
	if err != nil {
		if m != 0 {
			windows.CloseHandle(m)
		}
		if err == windows.ERROR_ALREADY_EXISTS {
			return nil, ErrAlreadyRunning
		}
		return nil, fmt.Errorf("create presence marker: %w", err)
	}

	o := &serverObjects{mutex: m}
	for _, ev := range []struct {
		name string
		dst  *windows.Handle
	}{
		{common.CancelName, &o.cancel},
		{common.AckName, &o.ack},
		{common.NackName, &o.nack},
	} {
		h, err := windows.CreateEvent(nil, 1, 0, objName(ev.name))
		if err != nil && err != windows.ERROR_ALREADY_EXISTS {
			o.closeAll()
			return nil, fmt.Errorf("create signal %s: %w", ev.name, err)
		}
		// A leftover event can survive if a client still holds a handle;
		// the new schedule starts with it unset.
		_ = windows.ResetEvent(h)
		*ev.dst = h
	}
	return o, nil
}

// waitCancel blocks up to timeout for the cancel signal.
func (o *serverObjects) waitCancel(timeout time.Duration) bool {
	if o.cancel == 0 {
		return false
	}
	ev, err := windows.WaitForSingleObject(o.cancel, uint32(timeout.Milliseconds()))
	return err == nil && ev == windows.WAIT_OBJECT_0
}

func (o *serverObjects) setAck() {
	if o.ack != 0 {
		_ = windows.SetEvent(o.ack)
	}
}

func (o *serverObjects) setNack() {
	if o.nack != 0 {
		_ = windows.SetEvent(o.nack)
	}
}

// resetForRetry clears the cancel and rejected signals so a further attempt
// can be observed. The acknowledged event is deliberately left alone: an
// Ack is terminal.
func (o *serverObjects) resetForRetry() {
	if o.cancel != 0 {
		_ = windows.ResetEvent(o.cancel)
	}
	if o.nack != 0 {
		_ = windows.ResetEvent(o.nack)
	}
}

// closeAll releases every handle. Idempotent; double-close is a no-op.
func (o *serverObjects) closeAll() {
	for _, h := range []*windows.Handle{&o.cancel, &o.ack, &o.nack, &o.mutex} {
		if *h != 0 {
			windows.CloseHandle(*h)
			*h = 0
		}
	}
}

// probeRunning reports whether a primary currently holds the presence
// marker. It opens the mutex without taking ownership and closes the
// handle immediately.
func probeRunning() bool {
	h, err := windows.OpenMutex(windows.SYNCHRONIZE, false, objName(common.RunningName))
	if err != nil {
		return false
	}
	windows.CloseHandle(h)
	return true
}

// raiseCancel sets the cancel-requested event.
func raiseCancel() error {
	h, err := windows.OpenEvent(windows.EVENT_MODIFY_STATE, false, objName(common.CancelName))
	if err != nil {
		return fmt.Errorf("open cancel signal: %w", ErrNotRunning)
	}
	defer windows.CloseHandle(h)
	return windows.SetEvent(h)
}

// awaitAckNack blocks up to timeout for either response event. The
// acknowledged event has the lower wait index, so it wins when both are
// somehow set.
func awaitAckNack(timeout time.Duration) Outcome {
	ack, err := windows.OpenEvent(windows.SYNCHRONIZE, false, objName(common.AckName))
	if err != nil {
		return OutcomeTimeout
	}
	defer windows.CloseHandle(ack)
	nack, err := windows.OpenEvent(windows.SYNCHRONIZE, false, objName(common.NackName))
	if err != nil {
		return OutcomeTimeout
	}
	defer windows.CloseHandle(nack)

	ev, err := windows.WaitForMultipleObjects([]windows.Handle{ack, nack}, false, uint32(timeout.Milliseconds()))
	if err != nil {
		return OutcomeTimeout
	}
	switch ev {
	case windows.WAIT_OBJECT_0:
		return OutcomeAck
	case windows.WAIT_OBJECT_0 + 1:
		return OutcomeNack
	default:
		return OutcomeTimeout
	}
}
