// pkg/rally/errors.go
// Copyright(c) 2025 rally contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package rally

import "errors"

var (
	ErrInvalidRecord  = errors.New("Rally point has zero coordinates")
	ErrNoPosition     = errors.New("No current position estimate is available")
	ErrNoRallyFound   = errors.New("No usable rally point found")
	ErrOutOfRange     = errors.New("Rally point index out of range")
	ErrRegionTooSmall = errors.New("Storage region too small for a rally point")
	ErrStoreFull      = errors.New("Rally point storage is full")
)
