package planner

import (
	"sort"

	"github.com/plan-systems/klog"

	"github.com/2x3systems/lunar-transit/libtransit/world"
	"github.com/2x3systems/lunar-transit/transit"
)

// ledger tracks what a turn has committed so far.  Every pass of the turn shares one.
type ledger struct {
	ws        *world.State
	opts      Opts
	remaining int
	spent     int
	counts    [NumCategories]int
	actions   []transit.Action
}

func newLedger(ws *world.State, opts Opts) *ledger {
	budget := ws.Budget()
	if budget < 0 {
		budget = 0
	}
	return &ledger{
		ws:        ws,
		opts:      opts,
		remaining: budget,
	}
}

func (lg *ledger) full() bool {
	return len(lg.actions) >= lg.opts.MaxActions
}

func (lg *ledger) quotaLeft(cat Category) bool {
	return lg.counts[cat] < lg.opts.Quota[cat]
}

// commit appends the action, pays for it, and folds its effect into the working network.
func (lg *ledger) commit(cat Category, cost int, act transit.Action) {
	switch cat {
	case NewLink:
		lg.ws.AddLink(transit.Link{A: act.A, B: act.B, Capacity: 1})
	case NewVehicle:
		act = transit.VehicleAction(lg.ws.NextVehicleID(), act.A, act.B)
		lg.ws.AddVehicle(transit.Vehicle{ID: act.Vehicle, Itinerary: act.Itinerary})
	case UpgradeLink, NewShortcut:
	}

	lg.actions = append(lg.actions, act)
	lg.remaining -= cost
	lg.spent += cost
	lg.counts[cat]++

	klog.V(2).Infof("commit %v cost %d, %d remaining", act, cost, lg.remaining)
}

func (lg *ledger) plan() Plan {
	return Plan{
		Actions: lg.actions,
		Spent:   lg.spent,
		Counts:  lg.counts,
	}
}

// Phase is where a Selector is in its single pass over a turn.
type Phase uint8

const (
	Collecting Phase = iota
	Ranking
	Committing
	Done
)

func (p Phase) String() string {
	switch p {
	case Collecting:
		return "Collecting"
	case Ranking:
		return "Ranking"
	case Committing:
		return "Committing"
	case Done:
		return "Done"
	}
	return "?"
}

// Selector merges candidates from every generator, ranks them, and greedily commits the best
// ones under the turn's budget and quotas.
type Selector struct {
	*ledger
	phase      Phase
	candidates []Candidate
}

// NewSelector starts a selector for the current turn of ws.
func NewSelector(ws *world.State, opts Opts) *Selector {
	return &Selector{
		ledger: newLedger(ws, opts),
		phase:  Collecting,
	}
}

// Phase returns the selector's current phase.
func (sel *Selector) Phase() Phase { return sel.phase }

// Remaining is the budget not yet committed.
func (sel *Selector) Remaining() int { return sel.remaining }

// Collect adds candidates; it is a no-op once ranking has started.
func (sel *Selector) Collect(cands ...Candidate) {
	if sel.phase != Collecting {
		klog.Warningf("selector: dropped %d candidates collected during %v", len(cands), sel.phase)
		return
	}
	sel.candidates = append(sel.candidates, cands...)
}

// Rank orders the candidates by descending score; ties break on category then endpoints.
func (sel *Selector) Rank() {
	if sel.phase != Collecting {
		return
	}
	sel.phase = Ranking

	cands := sel.candidates
	sort.SliceStable(cands, func(i, j int) bool {
		ci, cj := &cands[i], &cands[j]
		if ci.Score != cj.Score {
			return ci.Score > cj.Score
		}
		if ci.Category != cj.Category {
			return ci.Category < cj.Category
		}
		if ci.A != cj.A {
			return ci.A < cj.A
		}
		return ci.B < cj.B
	})

	for i := range cands {
		klog.V(3).Infof("candidate #%d: %v", i+1, cands[i])
	}
}

// Commit walks the ranked candidates and commits each one that still fits.
//
// Links and shortcuts are re-validated against the working network since earlier commits
// this turn may have crossed them or saturated an endpoint.
func (sel *Selector) Commit() {
	if sel.phase == Collecting {
		sel.Rank()
	}
	if sel.phase != Ranking {
		return
	}
	sel.phase = Committing

	for _, c := range sel.candidates {
		if sel.full() {
			break
		}
		if !sel.quotaLeft(c.Category) || c.Cost > sel.remaining {
			continue
		}
		switch c.Category {
		case NewLink:
			if sel.ws.HasLink(c.A, c.B) || !sel.ws.IsValidLink(c.A, c.B) {
				continue
			}
		case NewShortcut:
			if !sel.ws.IsValidLink(c.A, c.B) {
				continue
			}
		case UpgradeLink, NewVehicle:
		}
		sel.commit(c.Category, c.Cost, c.Action)
	}

	sel.candidates = nil
	sel.phase = Done
}
