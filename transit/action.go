package transit

import "fmt"

// ActionKind tags the variant held by an Action.
type ActionKind uint8

const (
	ActionLink ActionKind = iota + 1
	ActionUpgrade
	ActionVehicle
	ActionShortcut
)

func (kind ActionKind) String() string {
	switch kind {
	case ActionLink:
		return "link"
	case ActionUpgrade:
		return "upgrade"
	case ActionVehicle:
		return "vehicle"
	case ActionShortcut:
		return "shortcut"
	}
	return "?"
}

// Action is one structured build order.  It is only rendered to text at the wire boundary.
type Action struct {
	Kind ActionKind
	A, B NodeID

	// Vehicle and Itinerary are set for ActionVehicle only.
	Vehicle   VehicleID
	Itinerary []NodeID
}

func LinkAction(a, b NodeID) Action     { return Action{Kind: ActionLink, A: a, B: b} }
func UpgradeAction(a, b NodeID) Action  { return Action{Kind: ActionUpgrade, A: a, B: b} }
func ShortcutAction(a, b NodeID) Action { return Action{Kind: ActionShortcut, A: a, B: b} }

// VehicleAction returns an oscillating vehicle order over (a, b).
func VehicleAction(id VehicleID, a, b NodeID) Action {
	return Action{
		Kind:      ActionVehicle,
		A:         a,
		B:         b,
		Vehicle:   id,
		Itinerary: Oscillate(a, b),
	}
}

// Key returns the link this action builds, upgrades, or serves.
func (act Action) Key() LinkKey {
	return KeyOf(act.A, act.B)
}

func (act Action) String() string {
	if act.Kind == ActionVehicle {
		return fmt.Sprintf("%v#%d(%d-%d)", act.Kind, act.Vehicle, act.A, act.B)
	}
	return fmt.Sprintf("%v(%d-%d)", act.Kind, act.A, act.B)
}
