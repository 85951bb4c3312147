package world

import (
	"math"

	"github.com/pkg/errors"

	"github.com/2x3systems/lunar-transit/libtransit/geom"
	"github.com/2x3systems/lunar-transit/transit"
)

// IsValidLink reports if a new link between u and v may be built against the current working network.
//
// Unknown endpoints are never valid.  Shortcuts count toward degree but do not obstruct.
func (ws *State) IsValidLink(u, v transit.NodeID) bool {
	if u == v {
		return false
	}
	nu, okU := ws.Node(u)
	nv, okV := ws.Node(v)
	if !okU || !okV {
		return false
	}
	if ws.degree[u] >= transit.MaxDegree || ws.degree[v] >= transit.MaxDegree {
		return false
	}

	pu, pv := nu.Pos, nv.Pos
	for _, l := range ws.links {
		if !l.HasConduits() {
			continue
		}
		if l.A == u || l.A == v || l.B == u || l.B == v {
			continue
		}
		na, okA := ws.Node(l.A)
		nb, okB := ws.Node(l.B)
		if !okA || !okB {
			continue
		}
		if geom.SegmentsIntersect(pu, pv, na.Pos, nb.Pos) {
			return false
		}
	}

	it := ws.nodes.Iterator()
	for it.Next() {
		w := it.Value().(*transit.Node)
		if w.ID == u || w.ID == v {
			continue
		}
		if geom.OnSegment(w.Pos, pu, pv) {
			return false
		}
	}
	return true
}

// CheckAction returns ErrUnknownNode if act names a node this world has never registered.
func (ws *State) CheckAction(act transit.Action) error {
	ids := act.Itinerary
	if act.Kind != transit.ActionVehicle {
		ids = []transit.NodeID{act.A, act.B}
	}
	for _, id := range ids {
		if _, known := ws.Node(id); !known {
			return errors.Wrapf(transit.ErrUnknownNode, "%v names node %d", act, id)
		}
	}
	return nil
}

// Distance is the euclidean distance between two nodes, or +Inf if either is unknown.
func (ws *State) Distance(u, v transit.NodeID) float64 {
	nu, okU := ws.Node(u)
	nv, okV := ws.Node(v)
	if !okU || !okV {
		return math.Inf(1)
	}
	return geom.Distance(nu.Pos, nv.Pos)
}

// LinkCost is the price of one conduit between u and v: round(distance * LinkCostPerUnit).
func (ws *State) LinkCost(u, v transit.NodeID) int {
	d := ws.Distance(u, v)
	if math.IsInf(d, 1) {
		return transit.UnreachableCost
	}
	return int(math.Round(d * transit.LinkCostPerUnit))
}
