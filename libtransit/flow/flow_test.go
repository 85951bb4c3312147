package flow

import (
	"testing"

	"github.com/2x3systems/lunar-transit/libtransit/routing"
	"github.com/2x3systems/lunar-transit/libtransit/world"
	"github.com/2x3systems/lunar-transit/transit"
)

func TestBottleneckThreshold(t *testing.T) {
	for capacity := 1; capacity <= 4; capacity++ {
		half := capacity * 200 / 2
		if IsBottleneck(capacity, half) {
			t.Errorf("cap %d: flow %d (exactly half) must not be a bottleneck", capacity, half)
		}
		if !IsBottleneck(capacity, half+1) {
			t.Errorf("cap %d: flow %d must be a bottleneck", capacity, half+1)
		}
	}
	if IsBottleneck(0, 1000) {
		t.Error("shortcuts are never bottlenecks")
	}
}

func demand(sinkType, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = sinkType
	}
	return out
}

func TestEstimateAttributesToNearestSinkKey(t *testing.T) {
	ws := world.New()
	ws.Ingest(transit.Turn{
		NewNodes: []transit.Node{
			{ID: 1, Pos: transit.Point{X: 0, Y: 0}, Kind: transit.Source, Demand: append(demand(7, 150), demand(3, 2)...)},
			{ID: 2, Pos: transit.Point{X: 10, Y: 0}, Kind: transit.Sink, SinkType: 5},
			{ID: 3, Pos: transit.Point{X: 20, Y: 0}, Kind: transit.Sink, SinkType: 7},
			{ID: 4, Pos: transit.Point{X: 0, Y: 10}, Kind: transit.Sink, SinkType: 7},
			{ID: 5, Pos: transit.Point{X: 0, Y: 20}, Kind: transit.Sink, SinkType: 3},
		},
		Links: []transit.Link{
			{A: 1, B: 2, Capacity: 1},
			{A: 2, B: 3, Capacity: 1},
			{A: 1, B: 4, Capacity: 1},
		},
	})

	g := routing.NewGraph(ws.Links())
	table := Estimate(ws, g)

	if f := table[transit.KeyOf(1, 4)]; f != 150 {
		t.Fatalf("flow 1-4 = %d, want 150", f)
	}
	if f := table[transit.KeyOf(1, 3)]; f != 0 {
		t.Fatalf("flow must not be attributed to the farther sink, got %d", f)
	}
	if _, found := table[transit.KeyOf(1, 5)]; found {
		t.Fatal("unreachable sink must not receive flow")
	}

	bn := Bottlenecks(ws.Links(), table)
	if len(bn) != 1 || bn[0].Link.Key() != transit.KeyOf(1, 4) || bn[0].Flow != 150 {
		t.Fatalf("bottlenecks = %+v", bn)
	}
}

func TestEstimateFunnelsMultiHopFlowOntoAggregateKey(t *testing.T) {
	ws := world.New()
	ws.Ingest(transit.Turn{
		NewNodes: []transit.Node{
			{ID: 1, Pos: transit.Point{X: 0, Y: 0}, Kind: transit.Source, Demand: demand(7, 300)},
			{ID: 2, Pos: transit.Point{X: 10, Y: 0}, Kind: transit.Sink, SinkType: 5},
			{ID: 3, Pos: transit.Point{X: 20, Y: 0}, Kind: transit.Sink, SinkType: 7},
		},
		Links: []transit.Link{{A: 1, B: 2, Capacity: 1}, {A: 2, B: 3, Capacity: 1}},
	})
	table := Estimate(ws, routing.NewGraph(ws.Links()))

	if table[transit.KeyOf(1, 3)] != 300 {
		t.Fatalf("flow should land on the (source, sink) key: %v", table)
	}
	if bn := Bottlenecks(ws.Links(), table); len(bn) != 0 {
		t.Fatalf("no built link carries the aggregate key, got %+v", bn)
	}
}
