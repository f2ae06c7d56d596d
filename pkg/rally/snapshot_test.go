// pkg/rally/snapshot_test.go
// Copyright(c) 2025 rally contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package rally

import (
	"bytes"
	"errors"
	"testing"
)

func TestSnapshotRoundTrip(t *testing.T) {
	src := newTestStore(t, 8)
	points := []RallyLocation{
		pt(40.6, -73.7, 100),
		{}, // empty slot within the counted range
		pt(40.7, -73.8, -5),
	}
	for i, p := range points {
		if err := src.Append(p); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	var buf bytes.Buffer
	if err := src.ExportSnapshot(&buf); err != nil {
		t.Fatalf("export: %v", err)
	}

	dst := newTestStore(t, 8)
	if err := dst.Append(pt(1, 1, 0)); err != nil { // gets replaced by the import
		t.Fatalf("append: %v", err)
	}
	if err := dst.ImportSnapshot(&buf); err != nil {
		t.Fatalf("import: %v", err)
	}

	if dst.Count() != len(points) {
		t.Fatalf("count after import: got %d, expected %d", dst.Count(), len(points))
	}
	for i, p := range points {
		got, err := dst.Read(i)
		if p.IsEmpty() {
			// Empty slots survive the round trip and still read as
			// invalid.
			if !errors.Is(err, ErrInvalidRecord) {
				t.Errorf("read %d: got %v, expected ErrInvalidRecord", i, err)
			}
			continue
		}
		if err != nil || got != p {
			t.Errorf("read %d: got %+v, %v", i, got, err)
		}
	}
}

func TestSnapshotImportTooLarge(t *testing.T) {
	src := newTestStore(t, 4)
	for i := 0; i < 4; i++ {
		if err := src.Append(pt(40, float64(i)+1, 0)); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	var buf bytes.Buffer
	if err := src.ExportSnapshot(&buf); err != nil {
		t.Fatalf("export: %v", err)
	}

	dst := newTestStore(t, 2)
	if err := dst.ImportSnapshot(&buf); !errors.Is(err, ErrStoreFull) {
		t.Errorf("import into small store: got %v, expected ErrStoreFull", err)
	}
	if dst.Count() != 0 {
		t.Errorf("count after failed import: got %d, expected 0", dst.Count())
	}
}
