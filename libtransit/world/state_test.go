package world

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/2x3systems/lunar-transit/transit"
)

func source(id, x, y int, demand ...int) transit.Node {
	return transit.Node{ID: transit.NodeID(id), Pos: transit.Point{X: x, Y: y}, Kind: transit.Source, Demand: demand}
}

func sink(id, x, y, sinkType int) transit.Node {
	return transit.Node{ID: transit.NodeID(id), Pos: transit.Point{X: x, Y: y}, Kind: transit.Sink, SinkType: sinkType}
}

func TestIngestRegistries(t *testing.T) {
	ws := New()
	ws.Ingest(transit.Turn{
		Budget:   500,
		NewNodes: []transit.Node{sink(3, 10, 0, 7), source(1, 0, 0, 7, 7, 2), sink(2, 0, 10, 2)},
		Links:    []transit.Link{{A: 1, B: 3, Capacity: 1}, {A: 3, B: 1, Capacity: 2}},
		Vehicles: []transit.Vehicle{{ID: 2, Itinerary: []transit.NodeID{1, 3, 1}}},
	})

	if ws.Turn() != 1 || ws.Budget() != 500 {
		t.Fatalf("turn/budget = %d/%d", ws.Turn(), ws.Budget())
	}
	ids := ws.NodeIDs()
	if len(ids) != 3 || ids[0] != 1 || ids[2] != 3 {
		t.Fatalf("NodeIDs not ordered: %v", ids)
	}
	if len(ws.NewNodes()) != 3 || ws.NewNodes()[0] != 3 {
		t.Fatalf("NewNodes should keep input order: %v", ws.NewNodes())
	}
	if len(ws.Links()) != 1 {
		t.Fatalf("duplicate link not folded: %v", ws.Links())
	}
	if l, _ := ws.Link(1, 3); l.Capacity != 2 {
		t.Fatalf("capacity = %d, want 2", l.Capacity)
	}
	if ws.Degree(1) != 1 || ws.Degree(3) != 1 {
		t.Fatal("bad degree")
	}
	if !ws.IsCovered(transit.KeyOf(3, 1)) {
		t.Fatal("vehicle coverage missing")
	}
	if got := ws.NextVehicleID(); got != 1 {
		t.Fatalf("NextVehicleID = %d, want 1", got)
	}
	if sinks := ws.SinksOfType(7); len(sinks) != 1 || sinks[0] != 3 {
		t.Fatalf("SinksOfType(7) = %v", sinks)
	}

	// next turn: nothing new, vehicle 1 appears; IDs 1 and 2 are now both taken for good
	ws.Ingest(transit.Turn{
		Budget:   100,
		Vehicles: []transit.Vehicle{{ID: 1, Itinerary: []transit.NodeID{1, 3}}},
	})
	if len(ws.NewNodes()) != 0 || ws.NodeCount() != 3 {
		t.Fatal("node registry should persist")
	}
	if got := ws.NextVehicleID(); got != 3 {
		t.Fatalf("NextVehicleID = %d, want 3", got)
	}
}

func TestIsValidLink(t *testing.T) {
	ws := New()
	ws.Ingest(transit.Turn{
		Budget: 10000,
		NewNodes: []transit.Node{
			source(1, 0, 0, 7), sink(2, 10, 10, 7),
			source(3, 0, 10), sink(4, 10, 0, 1),
			sink(5, 20, 0, 1), sink(6, 30, 0, 1),
			source(7, 5, 20), sink(8, 5, 30, 1),
			source(9, 0, 25), sink(10, 10, 25, 1),
			sink(11, 1, 3, 1),
		},
		Links: []transit.Link{{A: 3, B: 4, Capacity: 1}},
	})

	if ws.IsValidLink(1, 2) {
		t.Fatal("1-2 crosses 3-4")
	}
	if !ws.IsValidLink(1, 3) {
		t.Fatal("1-3 is clear")
	}
	if !ws.IsValidLink(3, 2) {
		t.Fatal("3-2 shares endpoint 3 with 3-4 and must not be rejected for it")
	}
	if ws.IsValidLink(4, 6) {
		t.Fatal("4-6 passes through node 5")
	}
	if ws.IsValidLink(1, 99) {
		t.Fatal("unknown node must be invalid")
	}
	if ws.IsValidLink(1, 1) {
		t.Fatal("self link must be invalid")
	}
	if c := ws.LinkCost(1, 99); c != transit.UnreachableCost {
		t.Fatalf("LinkCost to unknown = %d", c)
	}
	if c := ws.LinkCost(1, 4); c != 100 {
		t.Fatalf("LinkCost(1,4) = %d, want 100", c)
	}
	for _, tc := range []struct {
		u, v transit.NodeID
		want int
	}{
		{1, 11, 32}, // 31.62 rounds up
		{1, 2, 141}, // 141.42 rounds down
		{11, 4, 95}, // 94.87
		{11, 3, 71}, // 70.71
	} {
		if c := ws.LinkCost(tc.u, tc.v); c != tc.want {
			t.Fatalf("LinkCost(%d,%d) = %d, want %d", tc.u, tc.v, c, tc.want)
		}
	}

	// shortcuts do not obstruct
	ws.AddLink(transit.Link{A: 7, B: 8, Capacity: 0})
	if !ws.IsValidLink(9, 10) {
		t.Fatal("9-10 only crosses a shortcut and must be valid")
	}
}

func TestIsValidLinkRejectsCrossingExistingCrossers(t *testing.T) {
	ws := New()
	ws.Ingest(transit.Turn{
		NewNodes: []transit.Node{
			source(1, 0, 0), sink(2, 10, 10, 1),
			source(3, 0, 10), sink(4, 10, 0, 1),
			source(5, -5, 5), sink(6, 15, 5, 1),
		},
		Links: []transit.Link{{A: 1, B: 2, Capacity: 1}, {A: 3, B: 4, Capacity: 1}},
	})
	if ws.IsValidLink(5, 6) {
		t.Fatal("5-6 crosses both existing links")
	}
}

func TestDegreeCap(t *testing.T) {
	ws := New()
	nodes := []transit.Node{source(1, 0, 0)}
	var links []transit.Link
	for i := 0; i < transit.MaxDegree; i++ {
		id := 10 + i
		nodes = append(nodes, sink(id, 10*(i+1), 3*i+1, 1))
		links = append(links, transit.Link{A: 1, B: transit.NodeID(id), Capacity: 1})
	}
	nodes = append(nodes, sink(99, -10, -3, 1))
	ws.Ingest(transit.Turn{NewNodes: nodes, Links: links})

	if ws.Degree(1) != transit.MaxDegree {
		t.Fatalf("degree = %d", ws.Degree(1))
	}
	if ws.IsValidLink(1, 99) {
		t.Fatal("saturated node must reject a new link")
	}
}

func TestCheckAction(t *testing.T) {
	ws := New()
	ws.Ingest(transit.Turn{NewNodes: []transit.Node{source(1, 0, 0), sink(2, 10, 0, 1)}})

	for _, tc := range []struct {
		act   transit.Action
		known bool
	}{
		{transit.LinkAction(1, 2), true},
		{transit.UpgradeAction(2, 1), true},
		{transit.VehicleAction(4, 1, 2), true},
		{transit.LinkAction(1, 3), false},
		{transit.ShortcutAction(7, 2), false},
		{transit.Action{Kind: transit.ActionVehicle, Vehicle: 1, Itinerary: []transit.NodeID{1, 2, 5}}, false},
	} {
		err := ws.CheckAction(tc.act)
		if tc.known && err != nil {
			t.Fatalf("%v: %v", tc.act, err)
		}
		if !tc.known && !errors.Is(err, transit.ErrUnknownNode) {
			t.Fatalf("%v: want ErrUnknownNode, got %v", tc.act, err)
		}
	}
}
