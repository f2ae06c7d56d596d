// cmd/rallyedit/config.go
// Copyright(c) 2025 rally contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"fmt"
	"os"

	"github.com/mmp/rally/pkg/rally"
	"github.com/mmp/rally/pkg/util"

	"gopkg.in/yaml.v3"
)

// Config is the rallyedit configuration file. It stands in for the
// vehicle's parameter subsystem: the three rally tunables, the persisted
// point total, and the home position all live here. Tunables left unset
// take the vehicle class's defaults.
type Config struct {
	Vehicle     string     `yaml:"vehicle"`
	Total       int        `yaml:"total"`
	LimitKm     *float32   `yaml:"limit_km"`
	IncludeHome *bool      `yaml:"include_home"`
	FSMode      *int       `yaml:"fs_mode"`
	Home        HomeConfig `yaml:"home"`
	LogLevel    string     `yaml:"log_level"`
	LogDir      string     `yaml:"log_dir"`

	path string
}

type HomeConfig struct {
	Lat  float64 `yaml:"lat"`
	Lng  float64 `yaml:"lng"`
	AltM float64 `yaml:"alt_m"`
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{path: path}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Save() error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, b, 0644)
}

func (c *Config) vehicleClass() rally.VehicleClass {
	switch c.Vehicle {
	case "copter":
		return rally.VehicleCopter
	case "plane":
		return rally.VehiclePlane
	case "rover":
		return rally.VehicleRover
	default:
		return rally.VehicleDefault
	}
}

func (c *Config) Validate(e *util.ErrorLogger) {
	defer e.CheckDepth(e.CurrentDepth())

	e.Push("config " + c.path)
	defer e.Pop()

	switch c.Vehicle {
	case "", "copter", "plane", "rover", "default":
	default:
		e.ErrorString("%q: unknown vehicle class", c.Vehicle)
	}

	if c.Total < 0 {
		e.ErrorString("total %d: must not be negative", c.Total)
	}
	if c.LimitKm != nil && *c.LimitKm < 0 {
		e.ErrorString("limit_km %f: must not be negative", *c.LimitKm)
	}
	if c.FSMode != nil && *c.FSMode < 0 {
		e.ErrorString("fs_mode %d: must not be negative", *c.FSMode)
	}

	e.Push("home")
	if c.Home.Lat == 0 && c.Home.Lng == 0 {
		e.ErrorString("home position is not set")
	}
	if c.Home.Lat < -90 || c.Home.Lat > 90 {
		e.ErrorString("latitude %f: out of range", c.Home.Lat)
	}
	if c.Home.Lng < -180 || c.Home.Lng > 180 {
		e.ErrorString("longitude %f: out of range", c.Home.Lng)
	}
	e.Pop()

	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		e.ErrorString("%q: invalid log level", c.LogLevel)
	}
}

// Params resolves the tunables, falling back to the vehicle class's
// defaults for anything the file leaves unset.
func (c *Config) Params() rally.Params {
	p := rally.DefaultParams(c.vehicleClass())
	if c.LimitKm != nil {
		p.LimitKm = *c.LimitKm
	}
	if c.IncludeHome != nil {
		p.IncludeHome = *c.IncludeHome
	}
	if c.FSMode != nil {
		p.FSMode = *c.FSMode
	}
	return p
}

///////////////////////////////////////////////////////////////////////////
// Collaborator plumbing

// Home implements rally.HomeProvider from the configured home position.
func (c *Config) HomeLocation() rally.Location {
	return rally.Location{
		Lat: int32(c.Home.Lat * 1e7),
		Lng: int32(c.Home.Lng * 1e7),
		Alt: int32(c.Home.AltM * 100),
	}
}

type configHome struct {
	cfg *Config
}

func (h configHome) Home() rally.Location { return h.cfg.HomeLocation() }

// Position always reports unavailable; rallyedit takes the current
// position on the command line rather than from an estimator.
func (h configHome) Position() (rally.Location, bool) { return rally.Location{}, false }

// configCount persists the rally point total back into the config file,
// the way a ground station maintains the total parameter.
type configCount struct {
	cfg *Config
}

func (c configCount) Load() (int, error) { return c.cfg.Total, nil }

func (c configCount) Save(n int) error {
	c.cfg.Total = n
	return c.cfg.Save()
}
