// pkg/rally/store.go
// Copyright(c) 2025 rally contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package rally

import (
	"log/slog"
	"time"

	"github.com/mmp/rally/pkg/log"
	"github.com/mmp/rally/pkg/storage"
)

// CountVar persists the number of rally points in use. On the vehicle this
// is a saved parameter maintained alongside the other tunables rather than
// part of the storage region itself; the ground station bumps it when it
// uploads points. A nil CountVar gives a Store whose count starts at zero
// and lives only in memory, which is handy for tests and simulation.
type CountVar interface {
	Load() (int, error)
	Save(n int) error
}

// AuditSink receives a record of every successful rally point write: the
// total count at the time of the write, the index written, and the new
// contents. Delivery is fire and forget.
type AuditSink interface {
	RallyPointWritten(total, index int, loc RallyLocation)
}

// Store manages a fixed-capacity array of rally point records over a
// storage region. It is the single writer of both the region and the
// persisted count; records handed out by Read are by-value snapshots.
// Store is not safe for concurrent use.
type Store struct {
	region     storage.Access
	countVar   CountVar
	audit      AuditSink
	lg         *log.Logger
	capacity   int
	count      int
	lastChange time.Time
}

// NewStore opens a store over the given region. Capacity is fixed at
// region size over record size. countVar and audit may be nil.
func NewStore(region storage.Access, countVar CountVar, audit AuditSink, lg *log.Logger) (*Store, error) {
	capacity := region.Size() / RecordSize
	if capacity == 0 {
		return nil, ErrRegionTooSmall
	}

	s := &Store{
		region:   region,
		countVar: countVar,
		audit:    audit,
		lg:       lg,
		capacity: capacity,
	}

	if countVar != nil {
		n, err := countVar.Load()
		if err != nil {
			return nil, err
		}
		// Never trust a persisted count beyond what the region can hold.
		s.count = min(max(n, 0), capacity)
	}

	return s, nil
}

// Count returns the number of slots currently claimed; it is the exclusive
// upper bound on record indices.
func (s *Store) Count() int { return s.count }

// Capacity returns the fixed maximum number of records the region can hold.
func (s *Store) Capacity() int { return s.capacity }

// LastChange returns the time of the most recent successful write, or the
// zero time if there has been none since the store was opened.
func (s *Store) LastChange() time.Time { return s.lastChange }

func (s *Store) setCount(n int) error {
	if n == s.count {
		return nil
	}
	if s.countVar != nil {
		if err := s.countVar.Save(n); err != nil {
			return err
		}
	}
	s.count = n
	return nil
}

// Read returns the record at index. It returns ErrOutOfRange if index is
// beyond the claimed count and ErrInvalidRecord if the slot holds the
// zeroed-coordinates sentinel; callers treat both as "no point here" but
// they are reported distinctly.
func (s *Store) Read(index int) (RallyLocation, error) {
	if index < 0 || index >= s.count {
		return RallyLocation{}, ErrOutOfRange
	}

	var b [RecordSize]byte
	if err := s.region.ReadBlock(b[:], index*RecordSize); err != nil {
		return RallyLocation{}, err
	}

	r := DecodeRallyLocation(b[:])
	if r.IsEmpty() {
		return RallyLocation{}, ErrInvalidRecord
	}
	return r, nil
}

// Write replaces the record at index. The index must already be claimed by
// the count (ErrOutOfRange otherwise) and within the region's capacity
// (ErrStoreFull otherwise). A successful write updates the last-change
// time and reports the new contents to the audit sink.
func (s *Store) Write(index int, loc RallyLocation) error {
	if index < 0 || index >= s.count {
		return ErrOutOfRange
	}
	if index >= s.capacity {
		return ErrStoreFull
	}

	var b [RecordSize]byte
	loc.Encode(b[:])
	if err := s.region.WriteBlock(index*RecordSize, b[:]); err != nil {
		return err
	}

	s.lastChange = time.Now()

	if s.audit != nil {
		s.audit.RallyPointWritten(s.count, index, loc)
	}
	s.lg.Debug("rally point written", slog.Int("index", index), slog.Int("total", s.count),
		slog.Any("location", loc))

	return nil
}

// Append claims the next slot and writes loc into it. The count increment
// is rolled back if the write fails, so a failed append leaves the store
// exactly as it was.
func (s *Store) Append(loc RallyLocation) error {
	prev := s.count
	if err := s.setCount(prev + 1); err != nil {
		return err
	}
	if err := s.Write(prev, loc); err != nil {
		if rberr := s.setCount(prev); rberr != nil {
			s.lg.Errorf("rally count rollback failed: %v", rberr)
		}
		return err
	}
	return nil
}

// Truncate shrinks the claimed count to n; slots beyond it become
// unreadable though their bytes persist. A count larger than the current
// one is ignored: capacity can never be claimed this way.
func (s *Store) Truncate(n int) error {
	if n > s.count || n < 0 {
		return nil
	}
	return s.setCount(n)
}
