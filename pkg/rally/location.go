// pkg/rally/location.go
// Copyright(c) 2025 rally contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package rally maintains a bounded list of rally points in nonvolatile
// storage and selects the best return-to-launch destination, either the
// nearest rally point or the home position, from the vehicle's current
// position and failsafe state.
package rally

import (
	"encoding/binary"
	"fmt"

	"github.com/mmp/rally/pkg/math"
)

// RecordSize is the packed size of a RallyLocation in storage.
const RecordSize = 15

// RallyLocation is a single rally point as stored: 1e7-scaled latitude and
// longitude and altitudes in meters relative to the home position's
// altitude. The break altitude and landing direction ride along in the
// record for the landing controller; the RTL selection policy here does
// not consult them.
type RallyLocation struct {
	Lat      int32  // latitude * 1e7
	Lng      int32  // longitude * 1e7
	Alt      int16  // meters, relative to home
	BreakAlt int16  // meters, relative to home
	LandDir  uint16 // centidegrees
	Flags    uint8
}

// IsEmpty reports whether the record is the zeroed-coordinates sentinel
// that marks an unused or erased slot. Such a record must never be used as
// a destination even if it is within the store's counted range.
func (r RallyLocation) IsEmpty() bool {
	return r.Lat == 0 && r.Lng == 0
}

// Encode packs the record into its little-endian storage form. b must be
// at least RecordSize bytes.
func (r RallyLocation) Encode(b []byte) {
	_ = b[RecordSize-1]
	binary.LittleEndian.PutUint32(b[0:4], uint32(r.Lat))
	binary.LittleEndian.PutUint32(b[4:8], uint32(r.Lng))
	binary.LittleEndian.PutUint16(b[8:10], uint16(r.Alt))
	binary.LittleEndian.PutUint16(b[10:12], uint16(r.BreakAlt))
	binary.LittleEndian.PutUint16(b[12:14], r.LandDir)
	b[14] = r.Flags
}

// DecodeRallyLocation unpacks a record from its storage form. b must be at
// least RecordSize bytes.
func DecodeRallyLocation(b []byte) RallyLocation {
	_ = b[RecordSize-1]
	return RallyLocation{
		Lat:      int32(binary.LittleEndian.Uint32(b[0:4])),
		Lng:      int32(binary.LittleEndian.Uint32(b[4:8])),
		Alt:      int16(binary.LittleEndian.Uint16(b[8:10])),
		BreakAlt: int16(binary.LittleEndian.Uint16(b[10:12])),
		LandDir:  binary.LittleEndian.Uint16(b[12:14]),
		Flags:    b[14],
	}
}

///////////////////////////////////////////////////////////////////////////
// Location

// Location is an absolute position: 1e7-scaled degrees and altitude in
// centimeters, not relative to home.
type Location struct {
	Lat int32 // latitude * 1e7
	Lng int32 // longitude * 1e7
	Alt int32 // centimeters, absolute
}

func (l Location) Point2LL() math.Point2LL {
	// 0 (x) is longitude, 1 (y) is latitude
	return math.Point2LL{float32(l.Lng) * 1e-7, float32(l.Lat) * 1e-7}
}

// Valid reports whether the coordinates are within latitude/longitude
// range; an all-zero location is not considered valid.
func (l Location) Valid() bool {
	if l.Lat == 0 && l.Lng == 0 {
		return false
	}
	return math.Abs(l.Lat) <= 90*1e7 && math.Abs(l.Lng) <= 180*1e7
}

// DistanceTo returns the horizontal distance in meters to the other
// location.
func (l Location) DistanceTo(o Location) float32 {
	return math.MDistance2LL(l.Point2LL(), o.Point2LL())
}

func (l Location) String() string {
	return fmt.Sprintf("(%.7f, %.7f) at %.2fm", float64(l.Lat)*1e-7, float64(l.Lng)*1e-7,
		float64(l.Alt)/100)
}
