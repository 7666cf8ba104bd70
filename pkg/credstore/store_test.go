package credstore

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/zalando/go-keyring"
)

// stubKeyring replaces the keyring seams with an in-memory map for the
// duration of the test. Pass available=false to simulate a host without a
// keyring daemon, forcing the file fallback.
func stubKeyring(t *testing.T, available bool) map[string]string {
	t.Helper()
	entries := make(map[string]string)
	unavailable := errors.New("keyring unavailable")

	origSet, origGet, origDelete := keyringSet, keyringGet, keyringDelete
	t.Cleanup(func() {
		keyringSet, keyringGet, keyringDelete = origSet, origGet, origDelete
	})

	keyringSet = func(service, user, value string) error {
		if !available {
			return unavailable
		}
		entries[service+"/"+user] = value
		return nil
	}
	keyringGet = func(service, user string) (string, error) {
		if !available {
			return "", unavailable
		}
		v, ok := entries[service+"/"+user]
		if !ok {
			return "", keyring.ErrNotFound
		}
		return v, nil
	}
	keyringDelete = func(service, user string) error {
		if !available {
			return unavailable
		}
		if _, ok := entries[service+"/"+user]; !ok {
			return keyring.ErrNotFound
		}
		delete(entries, service+"/"+user)
		return nil
	}
	return entries
}

func newTestStore(t *testing.T, keyringAvailable bool) *Store {
	t.Helper()
	stubKeyring(t, keyringAvailable)
	return New(afero.NewMemMapFs(), "/config/napgate")
}

func TestVerifyFailsOpenWithoutSecret(t *testing.T) {
	s := newTestStore(t, true)

	if s.HasSecret() {
		t.Fatal("HasSecret true on a fresh store")
	}
	for _, candidate := range []string{"", "anything", "hunter2"} {
		if !s.Verify(candidate) {
			t.Errorf("Verify(%q) = false with no secret configured", candidate)
		}
	}
}

func TestSetThenVerify(t *testing.T) {
	for _, keyringAvailable := range []bool{true, false} {
		name := "keyring"
		if !keyringAvailable {
			name = "file-fallback"
		}
		t.Run(name, func(t *testing.T) {
			s := newTestStore(t, keyringAvailable)

			if err := s.Set("open sesame"); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if !s.HasSecret() {
				t.Fatal("HasSecret false after Set")
			}
			if !s.Verify("open sesame") {
				t.Error("Verify rejected the correct secret")
			}
			for _, wrong := range []string{"", "open sesam", "OPEN SESAME", "open sesame "} {
				if s.Verify(wrong) {
					t.Errorf("Verify accepted %q", wrong)
				}
			}
		})
	}
}

func TestSetOverwrites(t *testing.T) {
	s := newTestStore(t, false)

	if err := s.Set("first"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set("second"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if s.Verify("first") {
		t.Error("old secret still verifies")
	}
	if !s.Verify("second") {
		t.Error("new secret rejected")
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := newTestStore(t, true)

	if err := s.Delete(); err != nil {
		t.Fatalf("Delete on empty store: %v", err)
	}

	if err := s.Set("secret"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Delete(); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if s.HasSecret() {
		t.Error("HasSecret true after Delete")
	}
	if !s.Verify("anything") {
		t.Error("store not fail-open after Delete")
	}
	if err := s.Delete(); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
}

func TestKeyringPreferredOverFile(t *testing.T) {
	entries := stubKeyring(t, true)
	s := New(afero.NewMemMapFs(), "/config/napgate")

	if err := s.Set("secret"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("keyring entries = %d, want 1", len(entries))
	}
	if _, ok := s.file.Load(); ok {
		t.Error("file fallback written while keyring available")
	}
}

func TestUninstallRemovesEverything(t *testing.T) {
	s := newTestStore(t, false)

	if err := s.Set("secret"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Uninstall(); err != nil {
		t.Fatalf("Uninstall: %v", err)
	}
	if s.HasSecret() {
		t.Error("HasSecret true after Uninstall")
	}
}
