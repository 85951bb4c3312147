package engine

import (
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"

	"github.com/2x3systems/lunar-transit/libtransit/journal"
	"github.com/2x3systems/lunar-transit/libtransit/wire"
)

// Mismatch is a recorded turn whose output the current planner no longer reproduces.
type Mismatch struct {
	Turn     int
	Recorded string
	Replayed string
}

// Report summarizes a replay.
type Report struct {
	Turns      int
	Mismatches []Mismatch
}

// Replay feeds every recorded input of a session through a fresh engine and compares outputs.
//
// The session's own dialect is used to render the replayed output.  A recorded output that
// does not parse, or that names a node the replayed world never saw, fails the replay.
func Replay(j *journal.Journal, sessionID string, opts Opts) (Report, error) {
	var report Report

	s, err := j.Session(sessionID)
	if err != nil {
		return report, err
	}
	if opts.Dialect, err = wire.DialectByName(s.Dialect); err != nil {
		return report, err
	}
	entries, err := s.Entries()
	if err != nil {
		return report, err
	}

	e := New(opts)
	for _, entry := range entries {
		in, err := wire.ParseTurn(entry.Input)
		if err != nil {
			return report, errors.Wrapf(err, "replaying turn %d", entry.Turn)
		}
		plan := e.Step(in)
		report.Turns++

		if line := opts.Dialect.FormatPlan(plan.Actions); line != entry.Output {
			recorded, err := opts.Dialect.ParsePlan(entry.Output)
			if err != nil {
				return report, errors.Wrapf(err, "recorded turn %d", entry.Turn)
			}
			for _, act := range recorded {
				if err = e.World().CheckAction(act); err != nil {
					return report, errors.Wrapf(err, "recorded turn %d", entry.Turn)
				}
			}
			klog.V(1).Infof("replay: turn %d differs", entry.Turn)
			report.Mismatches = append(report.Mismatches, Mismatch{
				Turn:     entry.Turn,
				Recorded: entry.Output,
				Replayed: line,
			})
		}
	}
	return report, nil
}
