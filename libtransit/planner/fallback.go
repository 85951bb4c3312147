package planner

import (
	"sort"

	"github.com/plan-systems/klog"

	"github.com/2x3systems/lunar-transit/libtransit/geom"
	"github.com/2x3systems/lunar-transit/transit"
)

// connectStragglers links every node new this turn that still has no conduit to its nearest
// valid, affordable neighbor.  No scoring: nearest by squared distance, ties to the lowest ID.
func connectStragglers(lg *ledger) {
	ws := lg.ws
	for _, id := range ws.NewNodes() {
		if !lg.quotaLeft(NewLink) || lg.remaining < lg.opts.FallbackBudgetFloor || lg.full() {
			return
		}
		n, ok := ws.Node(id)
		if !ok || ws.HasConduits(id) {
			continue
		}

		var (
			best     transit.NodeID
			bestCost int
			bestD2   int64 = -1
		)
		for _, other := range ws.Nodes() {
			if other.ID == id || ws.HasLink(id, other.ID) {
				continue
			}
			if !ws.IsValidLink(id, other.ID) {
				continue
			}
			cost := ws.LinkCost(id, other.ID)
			if cost > lg.remaining {
				continue
			}
			if d2 := geom.DistanceSq(n.Pos, other.Pos); bestD2 < 0 || d2 < bestD2 {
				best, bestCost, bestD2 = other.ID, cost, d2
			}
		}

		if bestD2 >= 0 {
			klog.V(2).Infof("fallback: connecting isolated node %d", id)
			lg.commit(NewLink, bestCost, transit.LinkAction(id, best))
		}
	}
}

// sweepCoverage puts an oscillating vehicle on the highest-priority conduit links no vehicle
// serves yet, including links committed earlier this turn.  Each Source endpoint adds 100.
func sweepCoverage(lg *ledger) {
	ws := lg.ws

	type uncovered struct {
		link     transit.Link
		priority int
	}
	var todo []uncovered
	for _, l := range ws.Links() {
		if !l.HasConduits() || ws.IsCovered(l.Key()) {
			continue
		}
		u := uncovered{link: l}
		for _, end := range [2]transit.NodeID{l.A, l.B} {
			if n, ok := ws.Node(end); ok && n.IsSource() {
				u.priority += 100
			}
		}
		todo = append(todo, u)
	}
	sort.SliceStable(todo, func(i, j int) bool { return todo[i].priority > todo[j].priority })

	for _, u := range todo {
		if !lg.quotaLeft(NewVehicle) || lg.remaining < transit.VehicleCost || lg.full() {
			return
		}
		if ws.IsCovered(u.link.Key()) {
			continue
		}
		lg.commit(NewVehicle, transit.VehicleCost, transit.VehicleAction(0, u.link.A, u.link.B))
	}
}
