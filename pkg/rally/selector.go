// pkg/rally/selector.go
// Copyright(c) 2025 rally contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package rally

// HomeProvider supplies the home position and the current position
// estimate, normally backed by the vehicle's AHRS/position subsystem. The
// current position may be unavailable, e.g. before the estimator has
// converged.
type HomeProvider interface {
	Home() Location
	Position() (Location, bool)
}

// Selector computes the best return-to-launch destination from the rally
// store, the home reference, and the tunables. It holds no state of its
// own; every query is a fresh scan of the store.
type Selector struct {
	Store  *Store
	Home   HomeProvider
	Params *Params
}

// Locate converts a stored rally point to an absolute location,
// reconciling its home-relative altitude against the home position's
// current altitude.
func (s *Selector) Locate(r RallyLocation) Location {
	// True AGL isn't available; relative altitudes are relative to the
	// home point's altitude.
	return Location{
		Lat: r.Lat,
		Lng: r.Lng,
		Alt: int32(r.Alt)*100 + s.Home.Home().Alt,
	}
}

// FindNearest scans the store for the rally point closest to cur,
// skipping unreadable and zeroed slots. The first of several equidistant
// points wins. If a distance limit is configured and even the nearest
// point is beyond it, it returns ErrNoRallyFound so that the caller falls
// back to home.
func (s *Selector) FindNearest(cur Location) (RallyLocation, error) {
	minDist := float32(-1)
	var nearest RallyLocation

	for i := 0; i < s.Store.Count(); i++ {
		r, err := s.Store.Read(i)
		if err != nil {
			continue
		}
		loc := s.Locate(r)
		if !loc.Valid() {
			continue
		}
		if d := cur.DistanceTo(loc); minDist < 0 || d < minDist {
			minDist = d
			nearest = r
		}
	}

	// If a limit is defined and all rally points are beyond it, home is
	// used instead even though a nearest point exists.
	if s.Params.LimitKm > 0 && minDist > s.Params.LimitKm*1000 {
		return RallyLocation{}, ErrNoRallyFound
	}

	if minDist < 0 {
		return RallyLocation{}, ErrNoRallyFound
	}
	return nearest, nil
}

// BestReturnLocation returns the single best RTL destination for the
// current position: either the nearest usable rally point or the home
// position with its altitude overridden to rtlHomeAlt (centimeters,
// absolute).
//
// With FSMode > 0 the home position is always used outside of a failsafe;
// during a failsafe home is never preferred over a rally point, whatever
// IncludeHome says. Otherwise the rally point is chosen when IncludeHome
// is off or when it is strictly closer than home.
func (s *Selector) BestReturnLocation(cur Location, rtlHomeAlt int32, failsafe bool) Location {
	ret := s.Home.Home()
	ret.Alt = rtlHomeAlt

	includeHome := s.Params.IncludeHome
	if s.Params.FSMode > 0 {
		if !failsafe {
			// Always return to the original home position in this mode.
			return ret
		}
		// Don't land at home for gcs or radio failsafe.
		includeHome = false
	}

	if r, err := s.FindNearest(cur); err == nil {
		// Use the rally point if it's closer than home, or we aren't
		// generally considering home as acceptable.
		loc := s.Locate(r)
		if !includeHome || cur.DistanceTo(loc) < cur.DistanceTo(ret) {
			ret = loc
		}
	}

	return ret
}

// BestReturnFromCurrent is BestReturnLocation using the position
// reference's current estimate; it returns ErrNoPosition if none is
// available.
func (s *Selector) BestReturnFromCurrent(rtlHomeAlt int32, failsafe bool) (Location, error) {
	cur, ok := s.Home.Position()
	if !ok {
		return Location{}, ErrNoPosition
	}
	return s.BestReturnLocation(cur, rtlHomeAlt, failsafe), nil
}
