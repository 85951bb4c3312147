// Package planner turns one turn of world state into a bounded, budgeted batch of build actions.
//
// Four generators propose scored candidates; a greedy selector commits the best of them
// under per-category quotas; a fallback connector and a coverage sweep then make sure new
// nodes get connected and every built conduit gets a vehicle.
package planner

import (
	"fmt"

	"github.com/2x3systems/lunar-transit/transit"
)

// Category tags the kind of action a Candidate proposes.
type Category uint8

const (
	NewLink Category = iota
	UpgradeLink
	NewVehicle
	NewShortcut

	NumCategories = 4
)

func (cat Category) String() string {
	switch cat {
	case NewLink:
		return "NewLink"
	case UpgradeLink:
		return "UpgradeLink"
	case NewVehicle:
		return "NewVehicle"
	case NewShortcut:
		return "NewShortcut"
	}
	return "?"
}

// Candidate is an ephemeral scored proposal for one action.
type Candidate struct {
	Category Category
	Score    float64 // higher is better
	Cost     int
	A, B     transit.NodeID
	Action   transit.Action // vehicle IDs are assigned when committed
}

func (c Candidate) String() string {
	return fmt.Sprintf("%v %d-%d score=%.1f cost=%d", c.Category, c.A, c.B, c.Score, c.Cost)
}

// Opts are the tuning knobs of a turn plan.
type Opts struct {
	MaxActions          int                // global cap on actions per turn
	Quota               [NumCategories]int // per-category cap on actions per turn
	ShortcutWarmup      int                // shortcuts are only proposed once the turn number exceeds this
	ShortcutMinHops     int                // shortcuts only join pairs at least this many hops apart
	FallbackBudgetFloor int                // the fallback connector stops below this remaining budget
}

// DefaultOpts returns the stock tuning.
func DefaultOpts() Opts {
	return Opts{
		MaxActions: 15,
		Quota: [NumCategories]int{
			NewLink:     8,
			UpgradeLink: 2,
			NewVehicle:  6,
			NewShortcut: 1,
		},
		ShortcutWarmup:      8,
		ShortcutMinHops:     3,
		FallbackBudgetFloor: 50,
	}
}

// Plan is the outcome of one turn.
type Plan struct {
	Actions []transit.Action
	Spent   int
	Counts  [NumCategories]int
}

// IsEmpty reports if the plan holds no action at all.
func (plan *Plan) IsEmpty() bool {
	return len(plan.Actions) == 0
}
