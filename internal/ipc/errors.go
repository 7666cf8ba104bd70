package ipc

import "errors"

// Sentinel errors for instance coordination.
var (
	// ErrAlreadyRunning is returned by CreatePrimary when another process
	// owns the presence marker. The caller must re-run DetectRunning and
	// fall back to the secondary role instead of retrying creation.
	ErrAlreadyRunning = errors.New("a primary instance is already running")

	// ErrNotRunning is returned by secondary-side operations that require
	// a live primary when no presence marker can be opened.
	ErrNotRunning = errors.New("no primary instance is running")
)
