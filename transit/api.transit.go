package transit

import "sort"

const (

	// MaxDegree is the max number of links (conduits and shortcuts) that may touch a node.
	MaxDegree = 5

	// LinkCostPerUnit is the build cost of one conduit per unit of euclidean length.
	LinkCostPerUnit = 10

	// VehicleCost is the fixed cost of putting one vehicle into service.
	VehicleCost = 1000

	// ShortcutCost is the fixed cost of a shortcut link.
	ShortcutCost = 5000

	// UnreachableCost is reported for any link whose cost cannot be computed (e.g. an unknown endpoint).
	UnreachableCost = 1_000_000_000

	// OscillationLegs is how many times an oscillating itinerary repeats its (a, b) pair.
	OscillationLegs = 4
)

// NodeID identifies a node for the lifetime of a game.
type NodeID int

// VehicleID identifies a vehicle; IDs are one-based and never reused.
type VehicleID int

// Point is an integer position on the game plane.
type Point struct {
	X, Y int
}

// NodeKind says whether a node generates passengers or absorbs them.
type NodeKind uint8

const (
	Source NodeKind = iota + 1 // passenger origin
	Sink                       // typed destination
)

func (kind NodeKind) String() string {
	switch kind {
	case Source:
		return "source"
	case Sink:
		return "sink"
	}
	return "?"
}

// Node is a fixed point of the network.
type Node struct {
	ID       NodeID
	Pos      Point
	Kind     NodeKind
	SinkType int   // destination type (Sink only)
	Demand   []int // waiting passenger types, one entry per passenger (Source only)
}

func (n *Node) IsSource() bool { return n.Kind == Source }
func (n *Node) IsSink() bool   { return n.Kind == Sink }

// DemandCount returns how many waiting passengers at this node want to reach a Sink of the given type.
func (n *Node) DemandCount(sinkType int) int {
	count := 0
	for _, t := range n.Demand {
		if t == sinkType {
			count++
		}
	}
	return count
}

// DemandTypes returns the distinct passenger types waiting here, in ascending order.
func (n *Node) DemandTypes() []int {
	seen := make(map[int]struct{}, len(n.Demand))
	types := make([]int, 0, len(n.Demand))
	for _, t := range n.Demand {
		if _, dupe := seen[t]; !dupe {
			seen[t] = struct{}{}
			types = append(types, t)
		}
	}
	sort.Ints(types)
	return types
}

// LinkKey is the unordered identity of a link: Lo <= Hi.
type LinkKey struct {
	Lo, Hi NodeID
}

// KeyOf returns the unordered key for the pair (a, b).
func KeyOf(a, b NodeID) LinkKey {
	if a > b {
		a, b = b, a
	}
	return LinkKey{Lo: a, Hi: b}
}

// Touches reports if the given node is one of this key's endpoints.
func (key LinkKey) Touches(id NodeID) bool {
	return key.Lo == id || key.Hi == id
}

// Link is an undirected connection between two nodes.
//
// Capacity is the number of parallel conduits; zero denotes a shortcut.
type Link struct {
	A, B     NodeID
	Capacity int
}

func (l Link) Key() LinkKey      { return KeyOf(l.A, l.B) }
func (l Link) IsShortcut() bool  { return l.Capacity == 0 }
func (l Link) HasConduits() bool { return l.Capacity > 0 }

// Vehicle runs a fixed itinerary of nodes.
type Vehicle struct {
	ID        VehicleID
	Itinerary []NodeID
}

// Covers returns the key of every consecutive pair in the itinerary.
func (v *Vehicle) Covers() []LinkKey {
	if len(v.Itinerary) < 2 {
		return nil
	}
	keys := make([]LinkKey, 0, len(v.Itinerary)-1)
	for i := 1; i < len(v.Itinerary); i++ {
		keys = append(keys, KeyOf(v.Itinerary[i-1], v.Itinerary[i]))
	}
	return keys
}

// Oscillate returns the itinerary a b a b ... repeated OscillationLegs times.
func Oscillate(a, b NodeID) []NodeID {
	stops := make([]NodeID, 0, 2*OscillationLegs)
	for i := 0; i < OscillationLegs; i++ {
		stops = append(stops, a, b)
	}
	return stops
}

// Turn is one turn's worth of input.
type Turn struct {
	Budget   int
	Links    []Link
	Vehicles []Vehicle
	NewNodes []Node
}
