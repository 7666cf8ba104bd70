// Package credstore persists and verifies the cancellation secret guarding
// an armed schedule. The secret is stored as a bcrypt hash, preferably in
// the operating system keyring, falling back to a restrictive-mode file
// under the config directory when no keyring is available.
//
// The contract is deliberately fail-open: when no secret is configured,
// every candidate verifies. Absence of a secret means no protection was
// requested.
package credstore

import (
	"github.com/spf13/afero"
	"golang.org/x/crypto/bcrypt"
)

// Store verifies cancel credentials against the configured secret.
type Store struct {
	ring *Keyring
	file *FileStore
}

// New creates a store backed by the OS keyring with a file fallback rooted
// at dir on the given filesystem.
func New(fs afero.Fs, dir string) *Store {
	return &Store{
		ring: NewKeyring(),
		file: NewFileStore(fs, dir),
	}
}

// Set hashes the secret with bcrypt and persists it. The keyring is
// preferred; the file fallback is used when the keyring is unavailable.
func (s *Store) Set(secret string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.ring.Save(hash); err == nil {
		// A stale file copy must not outlive the keyring entry.
		_ = s.file.Remove()
		return nil
	}
	return s.file.Save(hash)
}

// HasSecret reports whether a secret is configured in either backend.
func (s *Store) HasSecret() bool {
	if _, ok := s.ring.Load(); ok {
		return true
	}
	_, ok := s.file.Load()
	return ok
}

// Verify reports whether candidate matches the configured secret. With no
// secret configured it returns true for any candidate.
func (s *Store) Verify(candidate string) bool {
	hash, ok := s.ring.Load()
	if !ok {
		hash, ok = s.file.Load()
	}
	if !ok {
		return true
	}
	return bcrypt.CompareHashAndPassword(hash, []byte(candidate)) == nil
}

// Delete removes the secret from both backends. Idempotent: deleting an
// absent secret is a no-op.
func (s *Store) Delete() error {
	s.ring.Delete()
	return s.file.Remove()
}

// Uninstall removes the secret and the fallback directory if it is empty
// by then. Used by the uninstall command when no schedule is active.
func (s *Store) Uninstall() error {
	if err := s.Delete(); err != nil {
		return err
	}
	s.file.RemoveDir()
	return nil
}
