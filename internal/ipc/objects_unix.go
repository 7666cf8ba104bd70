//go:build !windows

package ipc

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"golang.org/x/sys/unix"

	"github.com/napgate/napgate/common"
)

// File names under the IPC directory backing the named objects.
const (
	markerFileName = "running.lock"
	cancelFlagName = "cancel.flag"
	ackFlagName    = "ack.flag"
	nackFlagName   = "nack.flag"
)

// waitStep is the polling granularity for bounded flag-file waits.
const waitStep = 10 * time.Millisecond

func flagPath(name string) string {
	return filepath.Join(common.IPCDir(), name)
}

func setFlag(name string) error {
	if err := os.MkdirAll(common.IPCDir(), 0700); err != nil {
		return err
	}
	return os.WriteFile(flagPath(name), nil, 0600)
}

func resetFlag(name string) {
	if err := os.Remove(flagPath(name)); err != nil && !os.IsNotExist(err) {
		// Double-reset and reset-after-teardown are no-ops.
		_ = err
	}
}

func flagSet(name string) bool {
	_, err := os.Stat(flagPath(name))
	return err == nil
}

// serverObjects is the Unix rendition of the synchronization object set:
// an flock-held lock file as presence marker plus three flag files. The
// kernel drops the lock if the owning process dies, so a stale lock file
// never masquerades as a live primary.
type serverObjects struct {
	lockFile *os.File
}

// acquireServerObjects atomically takes exclusive ownership of the presence
// marker and resets the three signals. Returns ErrAlreadyRunning if another
// process holds the lock.
func acquireServerObjects() (*serverObjects, error) {
	dir := common.IPCDir()
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(filepath.Join(dir, markerFileName), os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return nil, err
	}
	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		f.Close()
		if errors.Is(err, unix.EWOULDBLOCK) || errors.Is(err, unix.EAGAIN) {
			return nil, ErrAlreadyRunning
		}
		return nil, err
	}
	// Lock held from here on. Record the owner pid for diagnostics.
	_ = f.Truncate(0)
	_, _ = f.WriteString(strconv.Itoa(os.Getpid()))

	// A fresh schedule must start with all signals unset.
	resetFlag(cancelFlagName)
	resetFlag(ackFlagName)
	resetFlag(nackFlagName)

	return &serverObjects{lockFile: f}, nil
}

// waitCancel blocks up to timeout for the cancel signal.
func (o *serverObjects) waitCancel(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		if flagSet(cancelFlagName) {
			return true
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return false
		}
		if remaining < waitStep {
			time.Sleep(remaining)
		} else {
			time.Sleep(waitStep)
		}
	}
}

func (o *serverObjects) setAck() {
	_ = setFlag(ackFlagName)
}

func (o *serverObjects) setNack() {
	_ = setFlag(nackFlagName)
}

// resetForRetry clears the cancel signal so a further attempt can be
// observed. Unlike the kernel-event rendition there are no blocked waiters
// to release here, so the rejected flag must stay up until the requester
// has polled it; the requester clears it when raising its next attempt.
// The acknowledged signal is never touched: an Ack is terminal.
func (o *serverObjects) resetForRetry() {
	resetFlag(cancelFlagName)
}

// closeAll releases the marker and the non-terminal signals. Idempotent.
func (o *serverObjects) closeAll() {
	resetFlag(cancelFlagName)
	resetFlag(nackFlagName)
	if o.lockFile != nil {
		path := o.lockFile.Name()
		_ = unix.Flock(int(o.lockFile.Fd()), unix.LOCK_UN)
		o.lockFile.Close()
		os.Remove(path)
		o.lockFile = nil
	}
}

// probeRunning reports whether a primary currently holds the presence
// marker. It probes with a non-blocking shared lock and never keeps it.
func probeRunning() bool {
	f, err := os.Open(filepath.Join(common.IPCDir(), markerFileName))
	if err != nil {
		return false
	}
	defer f.Close()
	if err := unix.Flock(int(f.Fd()), unix.LOCK_SH|unix.LOCK_NB); err != nil {
		// Exclusive lock held elsewhere: a primary is live.
		return true
	}
	_ = unix.Flock(int(f.Fd()), unix.LOCK_UN)
	return false
}

// raiseCancel sets the cancel-requested signal. Any rejection left over
// from the previous attempt is cleared first so the coming await cannot
// mistake it for this attempt's response.
func raiseCancel() error {
	resetFlag(nackFlagName)
	return setFlag(cancelFlagName)
}

// awaitAckNack blocks up to timeout for either response signal. The
// acknowledged signal wins if both are somehow set.
func awaitAckNack(timeout time.Duration) Outcome {
	deadline := time.Now().Add(timeout)
	for {
		if flagSet(ackFlagName) {
			return OutcomeAck
		}
		if flagSet(nackFlagName) {
			return OutcomeNack
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return OutcomeTimeout
		}
		if remaining < waitStep {
			time.Sleep(remaining)
		} else {
			time.Sleep(waitStep)
		}
	}
}
