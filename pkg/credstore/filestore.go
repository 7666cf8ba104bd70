package credstore

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

const secretFileName = "secret.dat"

// FileStore is the fallback backend: the bcrypt hash in a 0600 file under
// the config directory.
type FileStore struct {
	fs  afero.Fs
	dir string
}

// NewFileStore creates a file backend rooted at dir.
func NewFileStore(fs afero.Fs, dir string) *FileStore {
	return &FileStore{fs: fs, dir: dir}
}

func (f *FileStore) path() string {
	return filepath.Join(f.dir, secretFileName)
}

// Save writes the hash, creating the directory if needed.
func (f *FileStore) Save(hash []byte) error {
	if err := f.fs.MkdirAll(f.dir, 0700); err != nil {
		return err
	}
	return afero.WriteFile(f.fs, f.path(), hash, 0600)
}

// Load retrieves the stored hash; ok is false when absent.
func (f *FileStore) Load() ([]byte, bool) {
	data, err := afero.ReadFile(f.fs, f.path())
	if err != nil {
		return nil, false
	}
	return data, true
}

// Remove deletes the hash file. An absent file is not an error.
func (f *FileStore) Remove() error {
	if err := f.fs.Remove(f.path()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// RemoveDir removes the backing directory. Succeeds silently only when the
// directory is empty by then; leftovers are kept.
func (f *FileStore) RemoveDir() {
	_ = f.fs.Remove(f.dir)
}
