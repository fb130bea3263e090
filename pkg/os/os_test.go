package os

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMakeParentDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a", "b", "c.jar")

	if Exists(filepath.Dir(file)) {
		t.Fatalf("dir should not exist yet")
	}
	if err := MakeParentDir(file); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if !Exists(filepath.Dir(file)) {
		t.Errorf("expected %v to be created", filepath.Dir(file))
	}
	if Exists(file) {
		t.Errorf("file itself should not be created")
	}
}

func TestDirLock(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "downloads")

	a, err := NewDirLock(dir)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	b, err := NewDirLock(dir)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	if ok, err := a.TryLock(); !ok || err != nil {
		t.Fatalf("first lock should succeed, got %v %v", ok, err)
	}
	if ok, _ := b.TryLock(); ok {
		t.Errorf("second lock on the same dir should fail")
	}
	if err := a.Unlock(); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if ok, err := b.TryLock(); !ok || err != nil {
		t.Errorf("lock should be free after unlock, got %v %v", ok, err)
	}
	_ = b.Unlock()

	if _, err := os.Stat(a.Path()); err != nil {
		t.Errorf("lock file is missing: %v", err)
	}
}

func TestExistsOnStatError(t *testing.T) {
	file := filepath.Join(t.TempDir(), "game.jar")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if !Exists(file) {
		t.Errorf("%v should exist", file)
	}
	// a file used as a dir gives ENOTDIR, not ErrNotExist
	if under := filepath.Join(file, "game.jar"); Exists(under) {
		t.Errorf("%v can't exist", under)
	}
}
