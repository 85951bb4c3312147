package planner

import (
	"github.com/plan-systems/klog"

	"github.com/2x3systems/lunar-transit/libtransit/flow"
	"github.com/2x3systems/lunar-transit/libtransit/routing"
	"github.com/2x3systems/lunar-transit/libtransit/world"
)

// PlanTurn plans the current turn of ws and folds every committed action into ws.
//
// The passes run strictly in order (scored selection, fallback connector, coverage sweep),
// each one seeing what the previous one committed.  All three share the per-category quotas
// and the global MaxActions cap, so a turn never emits more than MaxActions actions.
func PlanTurn(ws *world.State, opts Opts) Plan {
	links := ws.Links()
	g := routing.NewGraph(links)
	bottlenecks := flow.Bottlenecks(links, flow.Estimate(ws, g))

	sel := NewSelector(ws, opts)
	budget := sel.Remaining()

	sel.Collect(GenerateLinks(ws, budget)...)
	sel.Collect(GenerateUpgrades(ws, bottlenecks, budget)...)
	sel.Collect(GenerateVehicles(ws, budget)...)
	if opts.ShortcutsAllowed(ws.Turn(), budget) {
		sel.Collect(GenerateShortcuts(ws, g, budget, opts)...)
	}
	klog.V(2).Infof("turn %d: %d candidates", ws.Turn(), len(sel.candidates))

	sel.Rank()
	sel.Commit()

	connectStragglers(sel.ledger)
	sweepCoverage(sel.ledger)

	plan := sel.plan()
	klog.V(1).Infof("turn %d: %d actions, spent %d of %d", ws.Turn(), len(plan.Actions), plan.Spent, budget)
	return plan
}
