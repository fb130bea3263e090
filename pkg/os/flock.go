package os

import (
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

const lockName = ".joltarchive.lock"

type Flock struct {
	f *flock.Flock
}

// NewFileLock makes an advisory lock file.
// An empty path puts the lock into the system temp dir.
func NewFileLock(path string) (*Flock, error) {
	if path == "" {
		path = filepath.Join(os.TempDir(), lockName)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0770); err != nil {
		return nil, err
	}

	return &Flock{f: flock.New(path)}, nil
}

// NewDirLock makes a lock guarding the dir tree.
func NewDirLock(dir string) (*Flock, error) { return NewFileLock(filepath.Join(dir, lockName)) }

func (f *Flock) Lock() error            { return f.f.Lock() }
func (f *Flock) TryLock() (bool, error) { return f.f.TryLock() }
func (f *Flock) Unlock() error          { return f.f.Unlock() }
func (f *Flock) Locked() bool           { return f.f.Locked() }
func (f *Flock) Path() string           { return f.f.Path() }
