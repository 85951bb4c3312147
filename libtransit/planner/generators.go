package planner

import (
	"math"

	"github.com/2x3systems/lunar-transit/libtransit/flow"
	"github.com/2x3systems/lunar-transit/libtransit/routing"
	"github.com/2x3systems/lunar-transit/libtransit/world"
	"github.com/2x3systems/lunar-transit/transit"
)

// GenerateLinks proposes, per Source and per demanded type not yet directly linked to a
// matching Sink, the best-scoring buildable link to a Sink of that type.
func GenerateLinks(ws *world.State, remaining int) []Candidate {
	var out []Candidate

	for _, src := range ws.Sources() {
		for _, t := range src.DemandTypes() {
			sinks := ws.SinksOfType(t)
			if linkedToAny(ws, src.ID, sinks) {
				continue
			}

			count := float64(src.DemandCount(t))
			var best Candidate
			found := false
			for _, dst := range sinks {
				if !ws.IsValidLink(src.ID, dst) {
					continue
				}
				cost := ws.LinkCost(src.ID, dst)
				if cost > remaining {
					continue
				}
				score := count*1000/math.Max(ws.Distance(src.ID, dst), 1) - float64(cost)*0.1
				if !found || score > best.Score {
					found = true
					best = Candidate{
						Category: NewLink,
						Score:    score,
						Cost:     cost,
						A:        src.ID,
						B:        dst,
						Action:   transit.LinkAction(src.ID, dst),
					}
				}
			}
			if found {
				out = append(out, best)
			}
		}
	}
	return out
}

func linkedToAny(ws *world.State, id transit.NodeID, others []transit.NodeID) bool {
	for _, o := range others {
		if ws.HasLink(id, o) {
			return true
		}
	}
	return false
}

// GenerateUpgrades proposes one more conduit on every affordable bottleneck.
func GenerateUpgrades(ws *world.State, bottlenecks []flow.Bottleneck, remaining int) []Candidate {
	var out []Candidate
	for _, bn := range bottlenecks {
		base := ws.LinkCost(bn.Link.A, bn.Link.B)
		if base >= transit.UnreachableCost {
			continue
		}
		cost := base * (bn.Link.Capacity + 1)
		if cost > remaining {
			continue
		}
		out = append(out, Candidate{
			Category: UpgradeLink,
			Score:    float64(bn.Flow)*10 - float64(cost)*0.1,
			Cost:     cost,
			A:        bn.Link.A,
			B:        bn.Link.B,
			Action:   transit.UpgradeAction(bn.Link.A, bn.Link.B),
		})
	}
	return out
}

// GenerateVehicles proposes an oscillating vehicle for every conduit link no vehicle serves,
// favoring links that touch busy Sources.
func GenerateVehicles(ws *world.State, remaining int) []Candidate {
	if remaining < transit.VehicleCost {
		return nil
	}

	var out []Candidate
	for _, l := range ws.Links() {
		if !l.HasConduits() || ws.IsCovered(l.Key()) {
			continue
		}
		score := 100.0
		for _, end := range [2]transit.NodeID{l.A, l.B} {
			if n, ok := ws.Node(end); ok && n.IsSource() {
				score += 500 + 10*float64(len(n.Demand))
			}
		}
		out = append(out, Candidate{
			Category: NewVehicle,
			Score:    score,
			Cost:     transit.VehicleCost,
			A:        l.A,
			B:        l.B,
			Action:   transit.VehicleAction(0, l.A, l.B),
		})
	}
	return out
}

// ShortcutsAllowed reports if the shortcut generator should run this turn.
func (opts *Opts) ShortcutsAllowed(turn, remaining int) bool {
	return turn > opts.ShortcutWarmup && remaining > 2*transit.ShortcutCost
}

// GenerateShortcuts proposes shortcuts between Source/Sink pairs that are far apart in hops.
// Neither endpoint may already touch a shortcut.  Unreachable pairs count as infinitely far.
func GenerateShortcuts(ws *world.State, g *routing.Graph, remaining int, opts Opts) []Candidate {
	if remaining < transit.ShortcutCost {
		return nil
	}

	var sinks []*transit.Node
	for _, n := range ws.Sinks() {
		if !ws.TouchesShortcut(n.ID) {
			sinks = append(sinks, n)
		}
	}

	var out []Candidate
	nodeIDs := ws.NodeIDs()
	for _, src := range ws.Sources() {
		if ws.TouchesShortcut(src.ID) {
			continue
		}
		dist := g.DistancesFrom(src.ID, nodeIDs)

		for _, dst := range sinks {
			hops := dist.To(dst.ID)
			if hops < opts.ShortcutMinHops {
				continue
			}
			matching := float64(src.DemandCount(dst.SinkType))
			score := float64(hops-1)*matching*50 - transit.ShortcutCost*0.01
			if score <= 0 {
				continue
			}
			out = append(out, Candidate{
				Category: NewShortcut,
				Score:    score,
				Cost:     transit.ShortcutCost,
				A:        src.ID,
				B:        dst.ID,
				Action:   transit.ShortcutAction(src.ID, dst.ID),
			})
		}
	}
	return out
}
