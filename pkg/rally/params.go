// pkg/rally/params.go
// Copyright(c) 2025 rally contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package rally

// VehicleClass selects the tunable defaults appropriate to an airframe.
type VehicleClass int

const (
	VehicleDefault VehicleClass = iota
	VehicleCopter
	VehiclePlane
	VehicleRover
)

func (v VehicleClass) String() string {
	switch v {
	case VehicleCopter:
		return "copter"
	case VehiclePlane:
		return "plane"
	case VehicleRover:
		return "rover"
	default:
		return "default"
	}
}

// Params holds the externally-owned tunables consulted during RTL
// selection. They are normally persisted by the vehicle's parameter
// subsystem; this package only reads them.
type Params struct {
	// LimitKm is the maximum distance to a rally point in kilometers. If
	// the closest rally point is farther than this from the current
	// position, RTL goes to home rather than the rally point; this
	// prevents a leftover rally point from a different airfield being
	// used accidentally. 0 disables the limit.
	LimitKm float32

	// IncludeHome controls whether home counts as a rally point (i.e. as
	// a safe landing place) for RTL.
	IncludeHome bool

	// FSMode, when positive, selects an alternative mode where RTL flies
	// to the nearest rally point for a failsafe but flies to the takeoff
	// position for normal operations.
	FSMode int
}

// DefaultParams returns the persisted defaults for a vehicle class.
func DefaultParams(v VehicleClass) Params {
	p := Params{FSMode: 1}
	switch v {
	case VehicleCopter:
		p.LimitKm, p.IncludeHome = 0.3, true
	case VehiclePlane:
		p.LimitKm, p.IncludeHome = 5.0, false
	case VehicleRover:
		p.LimitKm, p.IncludeHome = 0.5, true
	default:
		p.LimitKm, p.IncludeHome = 1.0, false
	}
	return p
}
