package wire

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"

	"github.com/2x3systems/lunar-transit/transit"
)

// Dialect names the verbs used on the wire.
type Dialect struct {
	Name     string
	Wait     string
	Link     string
	Upgrade  string
	Vehicle  string
	Shortcut string
}

var (
	// Standard is the default verb set.
	Standard = Dialect{
		Name:     "standard",
		Wait:     "WAIT",
		Link:     "LINK",
		Upgrade:  "UPGRADE",
		Vehicle:  "VEHICLE",
		Shortcut: "SHORTCUT",
	}

	// Selenia is the verb set spoken by the Selenia City referee.
	Selenia = Dialect{
		Name:     "selenia",
		Wait:     "WAIT",
		Link:     "TUBE",
		Upgrade:  "UPGRADE",
		Vehicle:  "POD",
		Shortcut: "TELEPORT",
	}
)

// DialectByName looks up a dialect.
func DialectByName(name string) (Dialect, error) {
	switch strings.ToLower(name) {
	case "", Standard.Name:
		return Standard, nil
	case Selenia.Name:
		return Selenia, nil
	}
	return Dialect{}, errors.Wrapf(transit.ErrBadDialect, "%q", name)
}

func (d *Dialect) verb(kind transit.ActionKind) string {
	switch kind {
	case transit.ActionLink:
		return d.Link
	case transit.ActionUpgrade:
		return d.Upgrade
	case transit.ActionVehicle:
		return d.Vehicle
	case transit.ActionShortcut:
		return d.Shortcut
	}
	return ""
}

func (d *Dialect) kind(verb string) (transit.ActionKind, bool) {
	switch verb {
	case d.Link:
		return transit.ActionLink, true
	case d.Upgrade:
		return transit.ActionUpgrade, true
	case d.Vehicle:
		return transit.ActionVehicle, true
	case d.Shortcut:
		return transit.ActionShortcut, true
	}
	return 0, false
}

// AppendAction appends one action descriptor to dst.
func (d *Dialect) AppendAction(dst []byte, act transit.Action) []byte {
	dst = append(dst, d.verb(act.Kind)...)
	if act.Kind == transit.ActionVehicle {
		dst = append(dst, ' ')
		dst = strconv.AppendInt(dst, int64(act.Vehicle), 10)
		for _, stop := range act.Itinerary {
			dst = append(dst, ' ')
			dst = strconv.AppendInt(dst, int64(stop), 10)
		}
		return dst
	}
	dst = append(dst, ' ')
	dst = strconv.AppendInt(dst, int64(act.A), 10)
	dst = append(dst, ' ')
	dst = strconv.AppendInt(dst, int64(act.B), 10)
	return dst
}

// FormatPlan renders a turn's output line: the wait token, or every action joined by ';'.
func (d *Dialect) FormatPlan(actions []transit.Action) string {
	if len(actions) == 0 {
		return d.Wait
	}
	line := make([]byte, 0, 16*len(actions))
	for i, act := range actions {
		if i > 0 {
			line = append(line, ';')
		}
		line = d.AppendAction(line, act)
	}
	return string(line)
}

type planExpr struct {
	Orders []*orderExpr `parser:"@@ (\";\" @@)* \";\"?"`
}

type orderExpr struct {
	Verb string `parser:"@Verb"`
	Args []int  `parser:"@Int*"`
}

var sPlanLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Verb", Pattern: `[A-Za-z]+`},
	{Name: "Int", Pattern: `-?[0-9]+`},
	{Name: "Punct", Pattern: `;`},
	{Name: "whitespace", Pattern: `[ \t\r\n]+`},
})

var sParsePlan = participle.MustBuild[planExpr](
	participle.Lexer(sPlanLexer),
)

// ParsePlan parses an output line written in this dialect back into actions.
func (d *Dialect) ParsePlan(line string) ([]transit.Action, error) {
	expr, err := sParsePlan.ParseString("", line)
	if err != nil {
		return nil, errors.Wrap(transit.ErrBadAction, err.Error())
	}

	if len(expr.Orders) == 1 && expr.Orders[0].Verb == d.Wait && len(expr.Orders[0].Args) == 0 {
		return nil, nil
	}

	actions := make([]transit.Action, 0, len(expr.Orders))
	for i, order := range expr.Orders {
		kind, ok := d.kind(order.Verb)
		if !ok {
			return nil, errors.Wrapf(transit.ErrBadAction, "order #%d: unknown verb %q", i+1, order.Verb)
		}

		args := order.Args
		switch kind {
		case transit.ActionVehicle:
			if len(args) < 3 {
				return nil, errors.Wrapf(transit.ErrBadAction, "order #%d: %s needs an ID and at least two stops", i+1, order.Verb)
			}
			act := transit.Action{
				Kind:    kind,
				Vehicle: transit.VehicleID(args[0]),
				A:       transit.NodeID(args[1]),
				B:       transit.NodeID(args[2]),
			}
			for _, stop := range args[1:] {
				act.Itinerary = append(act.Itinerary, transit.NodeID(stop))
			}
			actions = append(actions, act)
		default:
			if len(args) != 2 {
				return nil, errors.Wrapf(transit.ErrBadAction, "order #%d: %s needs exactly two nodes", i+1, order.Verb)
			}
			actions = append(actions, transit.Action{Kind: kind, A: transit.NodeID(args[0]), B: transit.NodeID(args[1])})
		}
	}
	return actions, nil
}
