package ipc

import (
	"os"
	"path/filepath"

	"github.com/napgate/napgate/common"
)

// mailboxName is the file carrying the plaintext credential from the
// secondary to the primary. One outstanding value at most.
const mailboxName = "request.box"

// Mailbox is a single bounded write-once-per-attempt slot at a well-known
// transient location. The secondary writes, the primary consumes
// (read-then-delete).
type Mailbox struct {
	path string
}

// NewMailbox returns the mailbox at the well-known location inside the
// IPC directory.
func NewMailbox() *Mailbox {
	return &Mailbox{path: filepath.Join(common.IPCDir(), mailboxName)}
}

// Write stores value in the mailbox. The write is atomic (temp file plus
// rename) so the primary can never observe a half-written credential; it
// must complete before the cancel signal is raised.
func (m *Mailbox) Write(value string) error {
	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".request.box.tmp.*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, m.path)
}

// Consume reads and deletes the mailbox value. It never blocks and never
// fails: an absent mailbox or a read error yields the empty string, and a
// second read after a consume reports absence.
func (m *Mailbox) Consume() string {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return ""
	}
	os.Remove(m.path)
	return string(data)
}
