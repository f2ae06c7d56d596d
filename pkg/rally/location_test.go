// pkg/rally/location_test.go
// Copyright(c) 2025 rally contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package rally

import (
	"testing"

	"github.com/mmp/rally/pkg/math"
	"github.com/mmp/rally/pkg/rand"
)

func TestRecordEncoding(t *testing.T) {
	r := RallyLocation{
		Lat:      406328888,
		Lng:      -737713850,
		Alt:      -12,
		BreakAlt: 40,
		LandDir:  27000,
		Flags:    0x5,
	}

	var b [RecordSize]byte
	r.Encode(b[:])
	if got := DecodeRallyLocation(b[:]); got != r {
		t.Errorf("got %+v, expected %+v", got, r)
	}

	// Check the packed layout directly: lat and lng little-endian in the
	// first eight bytes, flags in the last.
	if b[0] != byte(406328888&0xff) {
		t.Errorf("lat low byte: got %x", b[0])
	}
	if b[14] != 0x5 {
		t.Errorf("flags byte: got %x", b[14])
	}
}

func TestLocationValid(t *testing.T) {
	type testCase struct {
		name  string
		loc   Location
		valid bool
	}

	testCases := []testCase{
		{name: "JFK", loc: Location{Lat: 406413000, Lng: -737781000}, valid: true},
		{name: "Zero", loc: Location{}, valid: false},
		{name: "ZeroWithAltitude", loc: Location{Alt: 10000}, valid: false},
		{name: "LatitudeOutOfRange", loc: Location{Lat: 910000000, Lng: 1}, valid: false},
		{name: "LongitudeOutOfRange", loc: Location{Lat: 1, Lng: 1810000000}, valid: false},
		{name: "SouthPole", loc: Location{Lat: -900000000, Lng: 1}, valid: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.loc.Valid(); got != tc.valid {
				t.Errorf("got %v for %v", got, tc.loc)
			}
		})
	}
}

func TestLocationDistance(t *testing.T) {
	rand.Seed(1)

	base := Location{Lat: 406328888, Lng: -737713850}

	// Scatter points at known offsets and check the int-scaled distance
	// against the float lat-long one.
	for i := 0; i < 100; i++ {
		hdg := float32(rand.Intn(360))
		dist := 50 + 5000*rand.Float32()

		p := math.Offset2LL(base.Point2LL(), hdg, dist)
		loc := Location{Lat: int32(p.Latitude() * 1e7), Lng: int32(p.Longitude() * 1e7)}

		if d := base.DistanceTo(loc); math.Abs(d-dist) > 0.02*dist+5 {
			t.Errorf("hdg %.0f dist %.0f: got %f", hdg, dist, d)
		}
	}
}
