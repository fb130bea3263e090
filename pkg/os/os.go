package os

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
)

var ErrNotExist = os.ErrNotExist

// Exists is true only for a path that could be stat'ed.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// MakeDirAll creates the dir with all its parents.
func MakeDirAll(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0755)
}

// MakeParentDir creates the directory the file at path will live in.
func MakeParentDir(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	return MakeDirAll(filepath.Dir(abs))
}

// WithTermination returns a context that is canceled on SIGINT or SIGTERM.
func WithTermination(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}

func Remove(path string) error { return os.Remove(path) }

func Rename(from, to string) error { return os.Rename(from, to) }

func IsNotExist(err error) bool { return errors.Is(err, fs.ErrNotExist) }
