package credstore

import (
	"errors"

	"github.com/zalando/go-keyring"
)

// Keyring stores the credential hash in the operating system's native
// keyring service.
type Keyring struct {
	Service string
	User    string
}

// Function seams so tests can run without a real keyring daemon.
var (
	keyringSet    = keyring.Set
	keyringGet    = keyring.Get
	keyringDelete = keyring.Delete
)

// NewKeyring returns a keyring bound to the napgate service entry.
func NewKeyring() *Keyring {
	return &Keyring{
		Service: "napgate",
		User:    "cancel-secret",
	}
}

// Save stores the hash, replacing any previous entry.
func (k *Keyring) Save(hash []byte) error {
	return keyringSet(k.Service, k.User, string(hash))
}

// Load retrieves the stored hash. ok is false when no entry exists or the
// keyring is unavailable.
func (k *Keyring) Load() ([]byte, bool) {
	v, err := keyringGet(k.Service, k.User)
	if err != nil {
		return nil, false
	}
	return []byte(v), true
}

// Delete removes the entry. Absence and an unavailable keyring both count
// as deleted: Load treats them as "no secret" too, so verification stays
// consistent.
func (k *Keyring) Delete() {
	if err := keyringDelete(k.Service, k.User); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		// Unavailable keyring; the file fallback is authoritative then.
		_ = err
	}
}
