// pkg/math/math_test.go
// Copyright(c) 2025 rally contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"testing"
)

func TestMDistance2LL(t *testing.T) {
	type testCase struct {
		name   string
		a, b   Point2LL
		meters float32
		tol    float32
	}

	testCases := []testCase{
		{
			name:   "SamePoint",
			a:      Point2LL{-73.77, 40.63},
			b:      Point2LL{-73.77, 40.63},
			meters: 0,
			tol:    0.01,
		},
		{
			name:   "OneDegreeLatitude",
			a:      Point2LL{0, 0},
			b:      Point2LL{0, 1},
			meters: 111195, // 60nm at 1852m/nm, spherical earth
			tol:    100,
		},
		{
			name:   "OneDegreeLongitudeAt60N",
			a:      Point2LL{0, 60},
			b:      Point2LL{1, 60},
			meters: 55597, // half of a degree of latitude at 60N
			tol:    100,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := MDistance2LL(tc.a, tc.b)
			if Abs(d-tc.meters) > tc.tol {
				t.Errorf("got %f meters, expected %f +/- %f", d, tc.meters, tc.tol)
			}
		})
	}
}

func TestNMDistance2LL(t *testing.T) {
	a, b := Point2LL{0, 0}, Point2LL{0, 1}
	nm := NMDistance2LL(a, b)
	if Abs(nm-60) > 0.1 {
		t.Errorf("one degree of latitude: got %f nm, expected 60", nm)
	}
}

func TestOffset2LL(t *testing.T) {
	p := Point2LL{-73.77, 40.63}

	for _, hdg := range []float32{0, 45, 90, 180, 270} {
		for _, dist := range []float32{100, 500, 2000} {
			q := Offset2LL(p, hdg, dist)
			d := MDistance2LL(p, q)
			// Flat-earth offset versus great-circle distance; keep the
			// tolerance loose but proportional.
			if Abs(d-dist) > 0.01*dist+1 {
				t.Errorf("hdg %.0f dist %.0f: round trip distance %f", hdg, dist, d)
			}
		}
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 10) != 5 {
		t.Errorf("Clamp(5,0,10) != 5")
	}
	if Clamp(-5, 0, 10) != 0 {
		t.Errorf("Clamp(-5,0,10) != 0")
	}
	if Clamp(15, 0, 10) != 10 {
		t.Errorf("Clamp(15,0,10) != 10")
	}
}
