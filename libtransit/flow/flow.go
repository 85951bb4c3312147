// Package flow estimates passenger demand per link and flags saturated links.
//
// The estimate is deliberately coarse: a Source's whole demand for a type is attributed to
// the single (source, nearest sink) key rather than spread along the path between them.
// Only a direct link between the two can therefore ever be flagged.
package flow

import (
	"sort"

	"github.com/plan-systems/klog"

	"github.com/2x3systems/lunar-transit/libtransit/routing"
	"github.com/2x3systems/lunar-transit/libtransit/world"
	"github.com/2x3systems/lunar-transit/transit"
)

const (
	// PassengersPerConduit is how many passengers one conduit moves per vehicle trip.
	PassengersPerConduit = 10

	// TripsPerPeriod is how many trips the throughput estimate assumes.
	TripsPerPeriod = 20
)

// EffectiveCapacity is the estimated throughput of a link with the given number of conduits.
func EffectiveCapacity(capacity int) int {
	return capacity * PassengersPerConduit * TripsPerPeriod
}

// IsBottleneck reports if flow exceeds half the effective capacity.  Exactly half is not a bottleneck.
func IsBottleneck(capacity, flow int) bool {
	if capacity <= 0 {
		return false
	}
	return 2*flow > EffectiveCapacity(capacity)
}

// Table maps a link key to its estimated flow.
type Table map[transit.LinkKey]int

// Bottleneck is a built link whose estimated flow saturates it.
type Bottleneck struct {
	Link transit.Link
	Flow int
}

// Estimate builds the flow table for the current world.
func Estimate(ws *world.State, g *routing.Graph) Table {
	table := make(Table)
	nodeIDs := ws.NodeIDs()

	for _, src := range ws.Sources() {
		types := src.DemandTypes()
		if len(types) == 0 {
			continue
		}
		dist := g.DistancesFrom(src.ID, nodeIDs)

		for _, t := range types {
			best, bestDist := nearest(ws.SinksOfType(t), dist)
			if bestDist >= routing.Unreachable {
				continue
			}
			table[transit.KeyOf(src.ID, best)] += src.DemandCount(t)
		}
	}
	return table
}

// nearest returns the sink with the least hop distance; ties go to the lowest ID since sinks are ascending.
func nearest(sinks []transit.NodeID, dist routing.Distances) (transit.NodeID, int) {
	var best transit.NodeID
	bestDist := routing.Unreachable
	for _, id := range sinks {
		if d := dist.To(id); d < bestDist {
			best, bestDist = id, d
		}
	}
	return best, bestDist
}

// Bottlenecks returns every conduit link the table saturates, heaviest flow first.
func Bottlenecks(links []transit.Link, table Table) []Bottleneck {
	var out []Bottleneck
	for _, l := range links {
		if !l.HasConduits() {
			continue
		}
		if f := table[l.Key()]; IsBottleneck(l.Capacity, f) {
			out = append(out, Bottleneck{Link: l, Flow: f})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Flow > out[j].Flow })

	for _, b := range out {
		klog.V(2).Infof("bottleneck %d-%d: cap %d, flow %d", b.Link.A, b.Link.B, b.Link.Capacity, b.Flow)
	}
	return out
}
