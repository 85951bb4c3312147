// Package routing is the hop-count distance model: conduits cost one hop, shortcuts cost nothing.
package routing

import (
	"github.com/emirpasic/gods/lists/doublylinkedlist"

	"github.com/2x3systems/lunar-transit/transit"
)

// Unreachable is the distance reported for nodes that cannot be reached.
const Unreachable = 1_000_000_000

// arc is one direction of an undirected link.
type arc struct {
	To     transit.NodeID
	Weight int // 1 for a conduit, 0 for a shortcut
}

// Graph is an undirected 0/1-weighted adjacency built from a set of links.
type Graph struct {
	adj map[transit.NodeID][]arc
}

// NewGraph builds the adjacency for the given links.
func NewGraph(links []transit.Link) *Graph {
	g := &Graph{
		adj: make(map[transit.NodeID][]arc, 2*len(links)),
	}
	for _, l := range links {
		w := 1
		if l.IsShortcut() {
			w = 0
		}
		g.adj[l.A] = append(g.adj[l.A], arc{To: l.B, Weight: w})
		g.adj[l.B] = append(g.adj[l.B], arc{To: l.A, Weight: w})
	}
	return g
}

// Distances maps a node to its hop distance from some source.
type Distances map[transit.NodeID]int

// To returns the distance to the given node, or Unreachable.
func (dist Distances) To(id transit.NodeID) int {
	if d, found := dist[id]; found {
		return d
	}
	return Unreachable
}

// DistancesFrom runs a 0-1 BFS from src.
//
// Every node in nodes starts at Unreachable (src at 0).  A node reached over a shortcut is
// pushed to the front of the deque and a node reached over a conduit to the back, so the
// deque front always holds a minimal tentative distance.
func (g *Graph) DistancesFrom(src transit.NodeID, nodes []transit.NodeID) Distances {
	dist := make(Distances, len(nodes)+1)
	for _, id := range nodes {
		dist[id] = Unreachable
	}
	dist[src] = 0

	dq := doublylinkedlist.New()
	dq.Add(src)
	for !dq.Empty() {
		front, _ := dq.Get(0)
		dq.Remove(0)
		u := front.(transit.NodeID)

		for _, e := range g.adj[u] {
			alt := dist[u] + e.Weight
			if alt < dist.To(e.To) {
				dist[e.To] = alt
				if e.Weight == 0 {
					dq.Prepend(e.To)
				} else {
					dq.Add(e.To)
				}
			}
		}
	}
	return dist
}
