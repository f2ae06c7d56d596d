// pkg/storage/storage_test.go
// Copyright(c) 2025 rally contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package storage

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
)

func testAccess(t *testing.T, r Access) {
	t.Helper()

	if err := r.WriteBlock(0, []byte{1, 2, 3, 4}); err != nil {
		t.Fatalf("write at 0: %v", err)
	}
	if err := r.WriteBlock(r.Size()-2, []byte{5, 6}); err != nil {
		t.Fatalf("write at end: %v", err)
	}

	got := make([]byte, 4)
	if err := r.ReadBlock(got, 0); err != nil {
		t.Fatalf("read at 0: %v", err)
	}
	if !bytes.Equal(got, []byte{1, 2, 3, 4}) {
		t.Errorf("read at 0: got %v", got)
	}

	got = got[:2]
	if err := r.ReadBlock(got, r.Size()-2); err != nil {
		t.Fatalf("read at end: %v", err)
	}
	if !bytes.Equal(got, []byte{5, 6}) {
		t.Errorf("read at end: got %v", got)
	}

	// Accesses that would run past the end of the region must fail.
	if err := r.WriteBlock(r.Size()-1, []byte{7, 8}); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("write past end: got %v, expected ErrOutOfBounds", err)
	}
	if err := r.ReadBlock(make([]byte, 2), r.Size()-1); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("read past end: got %v, expected ErrOutOfBounds", err)
	}
	if err := r.ReadBlock(make([]byte, 1), -1); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("read at -1: got %v, expected ErrOutOfBounds", err)
	}
}

func TestMemRegion(t *testing.T) {
	testAccess(t, NewMemRegion(64))
}

func TestFileRegion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "region.bin")

	r, err := OpenFileRegion(path, 64)
	if err != nil {
		t.Fatalf("%v", err)
	}
	testAccess(t, r)
	if err := r.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Reopen; contents must persist.
	r, err = OpenFileRegion(path, 64)
	if err != nil {
		t.Fatalf("%v", err)
	}
	defer r.Close()

	got := make([]byte, 4)
	if err := r.ReadBlock(got, 0); err != nil {
		t.Fatalf("read after reopen: %v", err)
	}
	if !bytes.Equal(got, []byte{1, 2, 3, 4}) {
		t.Errorf("read after reopen: got %v", got)
	}
}
