package routing

import (
	"math/rand"
	"testing"

	"github.com/2x3systems/lunar-transit/transit"
)

// plainBFS is the reference unweighted breadth-first search.
func plainBFS(links []transit.Link, src transit.NodeID, nodes []transit.NodeID) map[transit.NodeID]int {
	adj := make(map[transit.NodeID][]transit.NodeID)
	for _, l := range links {
		adj[l.A] = append(adj[l.A], l.B)
		adj[l.B] = append(adj[l.B], l.A)
	}
	dist := make(map[transit.NodeID]int)
	for _, id := range nodes {
		dist[id] = Unreachable
	}
	dist[src] = 0
	queue := []transit.NodeID{src}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, v := range adj[u] {
			if dist[v] == Unreachable {
				dist[v] = dist[u] + 1
				queue = append(queue, v)
			}
		}
	}
	return dist
}

func TestDistancesMatchBFSWhenAllConduits(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 50; trial++ {
		n := 2 + rng.Intn(30)
		nodes := make([]transit.NodeID, n)
		for i := range nodes {
			nodes[i] = transit.NodeID(i + 1)
		}
		var links []transit.Link
		for e := rng.Intn(2 * n); e > 0; e-- {
			a, b := nodes[rng.Intn(n)], nodes[rng.Intn(n)]
			if a != b {
				links = append(links, transit.Link{A: a, B: b, Capacity: 1 + rng.Intn(3)})
			}
		}

		g := NewGraph(links)
		for _, src := range nodes {
			got := g.DistancesFrom(src, nodes)
			want := plainBFS(links, src, nodes)
			for _, id := range nodes {
				if got.To(id) != want[id] {
					t.Fatalf("trial %d src %d: dist to %d = %d, BFS says %d", trial, src, id, got.To(id), want[id])
				}
			}
		}
	}
}

func TestShortcutsCostNothing(t *testing.T) {
	links := []transit.Link{
		{A: 1, B: 2, Capacity: 1},
		{A: 2, B: 3, Capacity: 1},
		{A: 3, B: 4, Capacity: 1},
		{A: 4, B: 5, Capacity: 1},
		{A: 1, B: 4, Capacity: 0},
		{A: 6, B: 7, Capacity: 1},
	}
	nodes := []transit.NodeID{1, 2, 3, 4, 5, 6, 7}
	dist := NewGraph(links).DistancesFrom(1, nodes)

	want := map[transit.NodeID]int{1: 0, 2: 1, 3: 1, 4: 0, 5: 1, 6: Unreachable, 7: Unreachable}
	for id, d := range want {
		if dist.To(id) != d {
			t.Errorf("dist to %d = %d, want %d", id, dist.To(id), d)
		}
	}
	if dist.To(42) != Unreachable {
		t.Error("unknown node must be unreachable")
	}
}
