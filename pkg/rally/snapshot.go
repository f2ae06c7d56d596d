// pkg/rally/snapshot.go
// Copyright(c) 2025 rally contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package rally

import (
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// Snapshots carry the full rally point list as zstd-compressed msgpack,
// for backing up a vehicle's points or moving them between storage
// regions. Empty slots within the counted range are preserved as-is so
// that a restored store is indistinguishable from the original.

// ExportSnapshot writes all counted records, empty or not, to w.
func (s *Store) ExportSnapshot(w io.Writer) error {
	points := make([]RallyLocation, s.count)
	for i := range points {
		var b [RecordSize]byte
		if err := s.region.ReadBlock(b[:], i*RecordSize); err != nil {
			return fmt.Errorf("rally point %d: %w", i, err)
		}
		points[i] = DecodeRallyLocation(b[:])
	}

	zw, err := zstd.NewWriter(w)
	if err != nil {
		return err
	}
	if err := msgpack.NewEncoder(zw).Encode(points); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

// ImportSnapshot replaces the store's contents with the snapshot read from
// r. It fails with ErrStoreFull, leaving the store untouched, if the
// snapshot holds more points than the region's capacity.
func (s *Store) ImportSnapshot(r io.Reader) error {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return err
	}
	defer zr.Close()

	var points []RallyLocation
	if err := msgpack.NewDecoder(zr).Decode(&points); err != nil {
		return err
	}
	if len(points) > s.capacity {
		return ErrStoreFull
	}

	if err := s.setCount(len(points)); err != nil {
		return err
	}
	for i, p := range points {
		var b [RecordSize]byte
		p.Encode(b[:])
		if err := s.region.WriteBlock(i*RecordSize, b[:]); err != nil {
			return fmt.Errorf("rally point %d: %w", i, err)
		}
	}
	s.lastChange = time.Now()
	return nil
}
