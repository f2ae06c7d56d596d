// pkg/storage/storage.go
// Copyright(c) 2025 rally contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package storage provides block-level access to a fixed-size region of
// nonvolatile memory. On the vehicle this region is a slice of EEPROM or
// FRAM handed out by the storage manager; here it is either an in-memory
// buffer or a file on disk.
package storage

import (
	"errors"
	"fmt"
	"os"
)

var ErrOutOfBounds = errors.New("storage: access beyond region")

// Access is a fixed-size byte region supporting random block reads and
// writes. Offsets are in bytes from the start of the region. Reads and
// writes never span the end of the region; an access that would is an
// error and leaves the region unmodified.
type Access interface {
	// Size returns the region size in bytes. It never changes after the
	// region is opened.
	Size() int
	ReadBlock(dst []byte, offset int) error
	WriteBlock(offset int, src []byte) error
}

func checkBounds(size, offset, n int) error {
	if offset < 0 || n < 0 || offset+n > size {
		return fmt.Errorf("offset %d length %d in %d byte region: %w", offset, n, size, ErrOutOfBounds)
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////
// MemRegion

// MemRegion is an Access backed by process memory; contents do not survive
// restarts. It is primarily used by tests and simulation.
type MemRegion struct {
	b []byte
}

func NewMemRegion(size int) *MemRegion {
	return &MemRegion{b: make([]byte, size)}
}

func (m *MemRegion) Size() int { return len(m.b) }

func (m *MemRegion) ReadBlock(dst []byte, offset int) error {
	if err := checkBounds(len(m.b), offset, len(dst)); err != nil {
		return err
	}
	copy(dst, m.b[offset:])
	return nil
}

func (m *MemRegion) WriteBlock(offset int, src []byte) error {
	if err := checkBounds(len(m.b), offset, len(src)); err != nil {
		return err
	}
	copy(m.b[offset:], src)
	return nil
}

///////////////////////////////////////////////////////////////////////////
// FileRegion

// FileRegion is an Access backed by a file on disk. The file is created
// and zero-extended to the region size on open if it is missing or short;
// an existing longer file keeps its tail bytes, which are simply out of
// the region's reach.
type FileRegion struct {
	f    *os.File
	size int
}

func OpenFileRegion(path string, size int) (*FileRegion, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, err
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if fi.Size() < int64(size) {
		if err := f.Truncate(int64(size)); err != nil {
			f.Close()
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	return &FileRegion{f: f, size: size}, nil
}

func (r *FileRegion) Size() int { return r.size }

func (r *FileRegion) ReadBlock(dst []byte, offset int) error {
	if err := checkBounds(r.size, offset, len(dst)); err != nil {
		return err
	}
	_, err := r.f.ReadAt(dst, int64(offset))
	return err
}

func (r *FileRegion) WriteBlock(offset int, src []byte) error {
	if err := checkBounds(r.size, offset, len(src)); err != nil {
		return err
	}
	_, err := r.f.WriteAt(src, int64(offset))
	return err
}

func (r *FileRegion) Close() error {
	return r.f.Close()
}
