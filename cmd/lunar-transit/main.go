package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/plan-systems/klog"

	"github.com/2x3systems/lunar-transit/libtransit/engine"
	"github.com/2x3systems/lunar-transit/libtransit/journal"
	"github.com/2x3systems/lunar-transit/libtransit/wire"
)

func main() {
	klog.InitFlags(nil)
	flag.Set("logtostderr", "true")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})

	opts := engine.DefaultOpts()

	var (
		journalDir   = flag.String("journal", "", "record every turn into this journal dir (\":memory:\" for a throwaway journal)")
		replayID     = flag.String("replay", "", "replay a recorded session from -journal instead of playing")
		listSessions = flag.Bool("sessions", false, "list the sessions recorded in -journal")
		dialect      = flag.String("dialect", wire.Standard.Name, "action verbs to speak: standard or selenia")
	)
	flag.IntVar(&opts.Planner.MaxActions, "max-actions", opts.Planner.MaxActions, "max actions per turn")
	flag.IntVar(&opts.Planner.ShortcutWarmup, "shortcut-warmup", opts.Planner.ShortcutWarmup, "turns to play before proposing shortcuts")
	flag.Parse()

	err := run(opts, *journalDir, *replayID, *listSessions, *dialect)
	if err != nil {
		klog.Errorf("lunar-transit: %v", err)
	}
	klog.Flush()
	if err != nil {
		os.Exit(1)
	}
}

func run(opts engine.Opts, journalDir, replayID string, listSessions bool, dialect string) error {
	var err error
	if opts.Dialect, err = wire.DialectByName(dialect); err != nil {
		return err
	}

	var j *journal.Journal
	if journalDir != "" {
		j, err = journal.Open(journal.Opts{
			Dir:      journalDir,
			ReadOnly: (replayID != "" || listSessions) && journalDir != journal.InMemory,
		})
		if err != nil {
			return err
		}
		defer j.Close()
	}

	switch {
	case listSessions:
		if j == nil {
			return errors.New("-sessions needs -journal")
		}
		ids, err := j.Sessions()
		if err != nil {
			return err
		}
		for _, id := range ids {
			fmt.Println(id)
		}
		return nil

	case replayID != "":
		if j == nil {
			return errors.New("-replay needs -journal")
		}
		report, err := engine.Replay(j, replayID, opts)
		if err != nil {
			return err
		}
		for _, m := range report.Mismatches {
			fmt.Printf("turn %d\n  recorded: %s\n  replayed: %s\n", m.Turn, m.Recorded, m.Replayed)
		}
		klog.Infof("replayed %d turns, %d differ", report.Turns, len(report.Mismatches))
		return nil
	}

	e := engine.New(opts)
	if j != nil {
		s, err := j.NewSession(opts.Dialect.Name)
		if err != nil {
			return err
		}
		klog.Infof("recording session %v", s.ID)
		e.AttachJournal(s)
	}
	return e.Run(os.Stdin, os.Stdout)
}
