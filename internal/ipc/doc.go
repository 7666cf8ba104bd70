// Package ipc coordinates the two napgate process roles through named OS
// synchronization objects: a presence marker that signals "a primary
// instance holds the active schedule", three manual-reset signals
// (cancel-requested, acknowledged, rejected) driving the credential-gated
// cancel handshake, and a single-slot mailbox carrying the credential from
// the secondary to the primary.
//
// On Windows the marker is a named kernel mutex and the signals are named
// manual-reset events in the session-local namespace. On Unix the marker is
// an flock-held lock file (released by the kernel if the owner dies) and the
// signals are flag files under the IPC directory; bounded waits poll at a
// short fixed step. There is no shared memory and no RPC channel in the
// handshake path.
package ipc
