// Package storage abstracts the filesystem that holds compiled front-end
// assets (build_id.txt, splash.css) so tests can swap in memory.
package storage

import (
	"os"

	"github.com/spf13/afero"
)

// Storage reads files relative to the media root.
type Storage interface {
	ReadFile(name string) ([]byte, error)
	Exists(name string) bool
}

type fileStorage struct {
	fs afero.Fs
}

// New wraps fs; names are resolved against the root of fs.
func New(fs afero.Fs) Storage {
	return &fileStorage{fs: fs}
}

// NewLocal serves files from root on the local disk, read-only.
func NewLocal(root string) Storage {
	return New(afero.NewReadOnlyFs(afero.NewBasePathFs(afero.NewOsFs(), root)))
}

func (s *fileStorage) ReadFile(name string) ([]byte, error) {
	return afero.ReadFile(s.fs, name)
}

func (s *fileStorage) Exists(name string) bool {
	_, err := s.fs.Stat(name)
	return err == nil || !os.IsNotExist(err)
}
