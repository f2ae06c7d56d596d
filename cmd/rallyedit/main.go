// cmd/rallyedit/main.go
// Copyright(c) 2025 rally contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// rallyedit inspects and edits a rally point storage file and answers
// RTL selection queries against it, using tunables and a home position
// from a YAML configuration file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/mmp/rally/pkg/log"
	"github.com/mmp/rally/pkg/rally"
	"github.com/mmp/rally/pkg/storage"
	"github.com/mmp/rally/pkg/util"
)

func usage() {
	fmt.Fprintf(os.Stderr, `usage: rallyedit [flags] <command> [args]

commands:
  list                     print all rally points
  append <lat> <lng> <alt> add a rally point (degrees, meters above home)
  truncate <n>             shrink the point list to n entries
  nearest <lat> <lng>      print the nearest usable rally point
  best <lat> <lng>         print the best RTL destination
  export <file>            write all points as a snapshot
  import <file>            replace all points from a snapshot

flags:
`)
	flag.PrintDefaults()
	os.Exit(1)
}

type logAudit struct {
	lg *log.Logger
}

func (a logAudit) RallyPointWritten(total, index int, loc rally.RallyLocation) {
	a.lg.Infof("rally point %d of %d written: lat %d lng %d alt %d", index, total,
		loc.Lat, loc.Lng, loc.Alt)
}

func main() {
	configPath := flag.String("config", "rally.yaml", "configuration file")
	storagePath := flag.String("storage", "rally.stg", "rally point storage file")
	capacity := flag.Int("capacity", 10, "maximum number of rally points the storage file holds")
	rtlAlt := flag.Float64("rtl-alt", 100, "altitude in meters (absolute) for an RTL to home")
	failsafe := flag.Bool("failsafe", false, "evaluate \"best\" as if a failsafe were active")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	lg := log.New(cfg.LogLevel, cfg.LogDir)

	var e util.ErrorLogger
	cfg.Validate(&e)
	if e.HaveErrors() {
		e.PrintErrors(lg)
		os.Exit(1)
	}

	region, err := storage.OpenFileRegion(*storagePath, *capacity*rally.RecordSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", *storagePath, err)
		os.Exit(1)
	}
	defer region.Close()

	store, err := rally.NewStore(region, configCount{cfg}, logAudit{lg}, lg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", *storagePath, err)
		os.Exit(1)
	}

	params := cfg.Params()
	sel := &rally.Selector{Store: store, Home: configHome{cfg}, Params: &params}

	cmd, args := flag.Arg(0), flag.Args()[1:]
	if err := runCommand(cmd, args, store, sel, int32(*rtlAlt*100), *failsafe); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", cmd, err)
		os.Exit(1)
	}
}

func runCommand(cmd string, args []string, store *rally.Store, sel *rally.Selector,
	rtlAlt int32, failsafe bool) error {
	switch cmd {
	case "list":
		return list(store, sel)

	case "append":
		if len(args) != 3 {
			return errors.New("expected <lat> <lng> <alt>")
		}
		lat, lng, err := parseLatLng(args[0], args[1])
		if err != nil {
			return err
		}
		alt, err := strconv.ParseInt(args[2], 10, 16)
		if err != nil {
			return fmt.Errorf("%s: invalid altitude", args[2])
		}
		return store.Append(rally.RallyLocation{
			Lat: int32(lat * 1e7),
			Lng: int32(lng * 1e7),
			Alt: int16(alt),
		})

	case "truncate":
		if len(args) != 1 {
			return errors.New("expected <n>")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return fmt.Errorf("%s: invalid count", args[0])
		}
		return store.Truncate(n)

	case "nearest":
		if len(args) != 2 {
			return errors.New("expected <lat> <lng>")
		}
		cur, err := parseLocation(args[0], args[1])
		if err != nil {
			return err
		}
		r, err := sel.FindNearest(cur)
		if err != nil {
			return err
		}
		loc := sel.Locate(r)
		fmt.Printf("%s, %.0fm away\n", loc, cur.DistanceTo(loc))
		return nil

	case "best":
		if len(args) != 2 {
			return errors.New("expected <lat> <lng>")
		}
		cur, err := parseLocation(args[0], args[1])
		if err != nil {
			return err
		}
		loc := sel.BestReturnLocation(cur, rtlAlt, failsafe)
		fmt.Printf("%s, %.0fm away\n", loc, cur.DistanceTo(loc))
		return nil

	case "export":
		if len(args) != 1 {
			return errors.New("expected <file>")
		}
		f, err := os.Create(args[0])
		if err != nil {
			return err
		}
		if err := store.ExportSnapshot(f); err != nil {
			f.Close()
			return err
		}
		return f.Close()

	case "import":
		if len(args) != 1 {
			return errors.New("expected <file>")
		}
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		return store.ImportSnapshot(f)

	default:
		return errors.New("unknown command")
	}
}

func list(store *rally.Store, sel *rally.Selector) error {
	fmt.Printf("%d of %d rally points in use\n", store.Count(), store.Capacity())
	for i := 0; i < store.Count(); i++ {
		r, err := store.Read(i)
		if errors.Is(err, rally.ErrInvalidRecord) {
			fmt.Printf("%3d: (empty)\n", i)
			continue
		} else if err != nil {
			return err
		}
		fmt.Printf("%3d: %s\n", i, sel.Locate(r))
	}
	return nil
}

func parseLatLng(latStr, lngStr string) (float64, float64, error) {
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil || lat < -90 || lat > 90 {
		return 0, 0, fmt.Errorf("%s: invalid latitude", latStr)
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil || lng < -180 || lng > 180 {
		return 0, 0, fmt.Errorf("%s: invalid longitude", lngStr)
	}
	return lat, lng, nil
}

func parseLocation(latStr, lngStr string) (rally.Location, error) {
	lat, lng, err := parseLatLng(latStr, lngStr)
	if err != nil {
		return rally.Location{}, err
	}
	return rally.Location{Lat: int32(lat * 1e7), Lng: int32(lng * 1e7)}, nil
}
