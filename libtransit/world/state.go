// Package world holds the network registries that persist across turns and the working
// network view the planner mutates while it commits actions within one turn.
package world

import (
	"sort"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/plan-systems/klog"

	"github.com/2x3systems/lunar-transit/transit"
)

// State is the explicit world passed into every turn's planning call.
//
// Nodes and issued vehicle IDs only ever grow.  Links and vehicles are replaced by each
// turn's authoritative input and then grown by whatever the planner commits.
type State struct {
	turn   int
	budget int

	nodes       *treemap.Map // int(NodeID) => *transit.Node, ordered by ID
	sinksByType map[int][]transit.NodeID
	newNodes    []transit.NodeID

	links   []transit.Link
	linkIdx map[transit.LinkKey]int
	degree  map[transit.NodeID]int

	vehicles   []transit.Vehicle
	covered    map[transit.LinkKey]int
	vehicleIDs *treeset.Set // every VehicleID seen in input or issued
}

// New returns an empty world.
func New() *State {
	return &State{
		nodes:       treemap.NewWithIntComparator(),
		sinksByType: make(map[int][]transit.NodeID),
		linkIdx:     make(map[transit.LinkKey]int),
		degree:      make(map[transit.NodeID]int),
		covered:     make(map[transit.LinkKey]int),
		vehicleIDs:  treeset.NewWithIntComparator(),
	}
}

// Ingest advances the turn counter and folds one turn of input into the registries.
func (ws *State) Ingest(in transit.Turn) {
	ws.turn++
	ws.budget = in.Budget

	ws.newNodes = ws.newNodes[:0]
	for i := range in.NewNodes {
		if ws.registerNode(in.NewNodes[i]) {
			ws.newNodes = append(ws.newNodes, in.NewNodes[i].ID)
		}
	}

	ws.links = ws.links[:0]
	ws.linkIdx = make(map[transit.LinkKey]int, len(in.Links))
	ws.degree = make(map[transit.NodeID]int)
	for _, l := range in.Links {
		if l.A == l.B {
			continue
		}
		if idx, dupe := ws.linkIdx[l.Key()]; dupe {
			ws.links[idx].Capacity = l.Capacity
			continue
		}
		ws.AddLink(l)
	}

	ws.vehicles = ws.vehicles[:0]
	ws.covered = make(map[transit.LinkKey]int)
	for _, v := range in.Vehicles {
		ws.AddVehicle(v)
	}

	klog.V(1).Infof("turn %d: budget %d, %d nodes (%d new), %d links, %d vehicles",
		ws.turn, ws.budget, ws.nodes.Size(), len(ws.newNodes), len(ws.links), len(ws.vehicles))
}

func (ws *State) registerNode(n transit.Node) bool {
	if n.Kind != transit.Source && n.Kind != transit.Sink {
		klog.Warningf("node %d has no kind; dropped", n.ID)
		return false
	}
	if prev, exists := ws.nodes.Get(int(n.ID)); exists {
		// Positions never move; only a source's waiting demand is refreshed.
		prev.(*transit.Node).Demand = append([]int(nil), n.Demand...)
		return false
	}

	node := n
	node.Demand = append([]int(nil), n.Demand...)
	ws.nodes.Put(int(n.ID), &node)

	if node.IsSink() {
		ids := append(ws.sinksByType[node.SinkType], node.ID)
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		ws.sinksByType[node.SinkType] = ids
	}
	return true
}

// Turn is the one-based number of the current turn.
func (ws *State) Turn() int { return ws.turn }

// Budget is the budget given by the current turn's input.
func (ws *State) Budget() int { return ws.budget }

// Node returns the registered node for the given ID.
func (ws *State) Node(id transit.NodeID) (*transit.Node, bool) {
	v, found := ws.nodes.Get(int(id))
	if !found {
		return nil, false
	}
	return v.(*transit.Node), true
}

// NodeCount is the number of registered nodes.
func (ws *State) NodeCount() int { return ws.nodes.Size() }

// Nodes returns every registered node in ascending ID order.
func (ws *State) Nodes() []*transit.Node {
	nodes := make([]*transit.Node, 0, ws.nodes.Size())
	it := ws.nodes.Iterator()
	for it.Next() {
		nodes = append(nodes, it.Value().(*transit.Node))
	}
	return nodes
}

// NodeIDs returns every registered node ID in ascending order.
func (ws *State) NodeIDs() []transit.NodeID {
	ids := make([]transit.NodeID, 0, ws.nodes.Size())
	it := ws.nodes.Iterator()
	for it.Next() {
		ids = append(ids, transit.NodeID(it.Key().(int)))
	}
	return ids
}

// Sources returns every Source node in ascending ID order.
func (ws *State) Sources() []*transit.Node {
	return ws.nodesOfKind(transit.Source)
}

// Sinks returns every Sink node in ascending ID order.
func (ws *State) Sinks() []*transit.Node {
	return ws.nodesOfKind(transit.Sink)
}

func (ws *State) nodesOfKind(kind transit.NodeKind) []*transit.Node {
	var out []*transit.Node
	it := ws.nodes.Iterator()
	for it.Next() {
		if n := it.Value().(*transit.Node); n.Kind == kind {
			out = append(out, n)
		}
	}
	return out
}

// SinksOfType returns the IDs of every Sink with the given destination type, ascending.
func (ws *State) SinksOfType(sinkType int) []transit.NodeID {
	return ws.sinksByType[sinkType]
}

// NewNodes returns the IDs of nodes first seen in the current turn, in input order.
func (ws *State) NewNodes() []transit.NodeID { return ws.newNodes }

// Links returns the current links (input order, then commit order).  Callers must not modify it.
func (ws *State) Links() []transit.Link { return ws.links }

// Link returns the current link between a and b.
func (ws *State) Link(a, b transit.NodeID) (transit.Link, bool) {
	idx, found := ws.linkIdx[transit.KeyOf(a, b)]
	if !found {
		return transit.Link{}, false
	}
	return ws.links[idx], true
}

// HasLink reports if any link (conduit or shortcut) joins a and b.
func (ws *State) HasLink(a, b transit.NodeID) bool {
	_, found := ws.linkIdx[transit.KeyOf(a, b)]
	return found
}

// AddLink adds a link to the working network and bumps both endpoint degrees.
func (ws *State) AddLink(l transit.Link) {
	ws.linkIdx[l.Key()] = len(ws.links)
	ws.links = append(ws.links, l)
	ws.degree[l.A]++
	ws.degree[l.B]++
}

// Degree is the number of links (of any kind) touching a node.
func (ws *State) Degree(id transit.NodeID) int { return ws.degree[id] }

// HasConduits reports if any capacity-bearing link touches the given node.
func (ws *State) HasConduits(id transit.NodeID) bool {
	for _, l := range ws.links {
		if l.HasConduits() && (l.A == id || l.B == id) {
			return true
		}
	}
	return false
}

// TouchesShortcut reports if any shortcut touches the given node.
func (ws *State) TouchesShortcut(id transit.NodeID) bool {
	for _, l := range ws.links {
		if l.IsShortcut() && (l.A == id || l.B == id) {
			return true
		}
	}
	return false
}

// Vehicles returns the current vehicles.  Callers must not modify it.
func (ws *State) Vehicles() []transit.Vehicle { return ws.vehicles }

// AddVehicle registers a vehicle, its coverage, and reserves its ID for the rest of the game.
func (ws *State) AddVehicle(v transit.Vehicle) {
	ws.vehicles = append(ws.vehicles, v)
	ws.vehicleIDs.Add(int(v.ID))
	for _, key := range v.Covers() {
		ws.covered[key]++
	}
}

// IsCovered reports if some vehicle itinerary traverses the given link.
func (ws *State) IsCovered(key transit.LinkKey) bool {
	return ws.covered[key] > 0
}

// NextVehicleID returns the lowest vehicle ID never seen nor issued.
func (ws *State) NextVehicleID() transit.VehicleID {
	id := 1
	for ws.vehicleIDs.Contains(id) {
		id++
	}
	return transit.VehicleID(id)
}
