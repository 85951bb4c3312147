// Package engine drives the planner turn by turn over the game's line protocol.
package engine

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
	"github.com/plan-systems/klog"

	"github.com/2x3systems/lunar-transit/libtransit/journal"
	"github.com/2x3systems/lunar-transit/libtransit/planner"
	"github.com/2x3systems/lunar-transit/libtransit/wire"
	"github.com/2x3systems/lunar-transit/libtransit/world"
	"github.com/2x3systems/lunar-transit/transit"
)

// Opts configures an Engine.
type Opts struct {
	Planner planner.Opts
	Dialect wire.Dialect
}

// DefaultOpts returns the stock planner tuning speaking the standard dialect.
func DefaultOpts() Opts {
	return Opts{
		Planner: planner.DefaultOpts(),
		Dialect: wire.Standard,
	}
}

// Engine owns one game's WorldState.
type Engine struct {
	opts    Opts
	ws      *world.State
	session *journal.Session
}

// New returns an engine for a fresh game.
func New(opts Opts) *Engine {
	return &Engine{
		opts: opts,
		ws:   world.New(),
	}
}

// World exposes the engine's world state.
func (e *Engine) World() *world.State { return e.ws }

// AttachJournal makes the engine record every turn it plays into s.
func (e *Engine) AttachJournal(s *journal.Session) {
	e.session = s
}

// Step ingests one turn and plans it.
func (e *Engine) Step(in transit.Turn) planner.Plan {
	e.ws.Ingest(in)
	return planner.PlanTurn(e.ws, e.opts.Planner)
}

// Run plays turns read from r, writing one output line per turn to w, until r ends.
//
// Journal failures are logged and otherwise ignored; they never cost a turn.
func (e *Engine) Run(r io.Reader, w io.Writer) error {
	rd := wire.NewReader(r)
	out := bufio.NewWriter(w)

	for {
		in, err := rd.ReadTurn()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrapf(err, "turn %d", e.ws.Turn()+1)
		}

		plan := e.Step(in)
		line := e.opts.Dialect.FormatPlan(plan.Actions)

		out.WriteString(line)
		out.WriteByte('\n')
		if err = out.Flush(); err != nil {
			return errors.Wrap(err, "writing actions")
		}

		if e.session != nil {
			err = e.session.Record(journal.Entry{
				Turn:   e.ws.Turn(),
				Budget: in.Budget,
				Input:  rd.Raw(),
				Output: line,
				Spent:  plan.Spent,
			})
			if err != nil {
				klog.Warningf("journal: %v", err)
			}
		}
	}
}
