// Command pondctl runs the pond analytics on a YAML snapshot and prints the
// result as JSON.
//
//	pondctl -file north.yaml -now 2024-06-01T09:00:00Z -view cycles
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/aquafarm/internal/analytics"
	"github.com/mamadbah2/aquafarm/internal/snapshot"
	"github.com/mamadbah2/aquafarm/pkg/logger"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "pondctl:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("pondctl", flag.ContinueOnError)
	path := fs.String("file", "", "snapshot YAML file")
	nowFlag := fs.String("now", "", "reference instant (RFC3339), defaults to the current time")
	tz := fs.String("tz", "UTC", "timezone for dates without an offset")
	view := fs.String("view", "overview", "overview, status, cycles, feed, appetite or harvest")
	level := fs.String("log-level", "warn", "log level")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" && fs.NArg() > 0 {
		*path = fs.Arg(0)
	}
	if *path == "" {
		return errors.New("a snapshot file is required")
	}

	log, err := logger.New(*level)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	loc, err := time.LoadLocation(*tz)
	if err != nil {
		return fmt.Errorf("load timezone: %w", err)
	}

	now := time.Now().In(loc)
	if *nowFlag != "" {
		if now, err = time.Parse(time.RFC3339, *nowFlag); err != nil {
			return fmt.Errorf("parse -now: %w", err)
		}
		now = now.In(loc)
	}

	snap, err := snapshot.Load(*path, loc)
	if err != nil {
		return err
	}
	log.Debug("snapshot loaded",
		zap.String("pond", snap.Pond.ID),
		zap.Int("population_events", len(snap.Population)),
		zap.Int("feed_events", len(snap.Feed)),
		zap.Time("now", now))

	ov := analytics.Overview(snap, now)

	var result any
	switch *view {
	case "overview":
		result = ov
	case "status":
		result = ov.Status
	case "cycles":
		result = analytics.CycleHistory(snap, now)
	case "feed":
		result = ov.Feed
	case "appetite":
		result = ov.Appetite
	case "harvest":
		result = ov.Harvest
	default:
		return fmt.Errorf("unknown view %q", *view)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
