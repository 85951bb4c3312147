// Package wire converts between the game's line protocol and the structured turn/actions model.
package wire

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/plan-systems/klog"

	"github.com/2x3systems/lunar-transit/transit"
)

const maxLineBytes = 1 << 20

// Reader reads one turn at a time from the game's input stream.
//
// Count and budget lines must parse; record lines that are short or malformed are skipped.
type Reader struct {
	sc     *bufio.Scanner
	lineNo int
	raw    strings.Builder
}

// NewReader returns a Reader on r.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return &Reader{sc: sc}
}

// ParseTurn parses a single turn held in text.
func ParseTurn(text string) (transit.Turn, error) {
	return NewReader(strings.NewReader(text)).ReadTurn()
}

// Raw returns the verbatim text of the most recently read turn.
func (rd *Reader) Raw() string {
	return rd.raw.String()
}

// ReadTurn reads the next turn.  It returns io.EOF when the stream ends cleanly between turns.
func (rd *Reader) ReadTurn() (transit.Turn, error) {
	var turn transit.Turn
	rd.raw.Reset()

	budget, err := rd.readCount("budget")
	if err != nil {
		if err == io.EOF {
			return turn, io.EOF
		}
		return turn, err
	}
	turn.Budget = budget

	numLinks, err := rd.readCount("link count")
	if err != nil {
		return turn, unexpected(err)
	}
	for i := 0; i < numLinks; i++ {
		line, err := rd.readLine()
		if err != nil {
			return turn, unexpected(err)
		}
		if l, ok := parseLink(line); ok {
			turn.Links = append(turn.Links, l)
		} else {
			rd.skip(line)
		}
	}

	numVehicles, err := rd.readCount("vehicle count")
	if err != nil {
		return turn, unexpected(err)
	}
	for i := 0; i < numVehicles; i++ {
		line, err := rd.readLine()
		if err != nil {
			return turn, unexpected(err)
		}
		if v, ok := parseVehicle(line); ok {
			turn.Vehicles = append(turn.Vehicles, v)
		} else {
			rd.skip(line)
		}
	}

	numNodes, err := rd.readCount("node count")
	if err != nil {
		return turn, unexpected(err)
	}
	for i := 0; i < numNodes; i++ {
		line, err := rd.readLine()
		if err != nil {
			return turn, unexpected(err)
		}
		if n, ok := parseNode(line); ok {
			turn.NewNodes = append(turn.NewNodes, n)
		} else {
			rd.skip(line)
		}
	}

	return turn, nil
}

func unexpected(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

func (rd *Reader) readLine() (string, error) {
	if !rd.sc.Scan() {
		if err := rd.sc.Err(); err != nil {
			return "", errors.Wrap(err, "reading turn input")
		}
		return "", io.EOF
	}
	rd.lineNo++
	line := rd.sc.Text()
	rd.raw.WriteString(line)
	rd.raw.WriteByte('\n')
	return line, nil
}

func (rd *Reader) readCount(what string) (int, error) {
	line, err := rd.readLine()
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || (n < 0 && what != "budget") {
		return 0, errors.Wrapf(transit.ErrBadHeader, "line %d: %s %q", rd.lineNo, what, line)
	}
	return n, nil
}

func (rd *Reader) skip(line string) {
	klog.Warningf("line %d: %v, skipped: %q", rd.lineNo, transit.ErrMalformedLine, line)
}

// fieldsToInts returns every integer field of line and whether every field was an integer.
func fieldsToInts(line string) (ints []int, clean bool) {
	fields := strings.Fields(line)
	ints = make([]int, 0, len(fields))
	clean = true
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			clean = false
			continue
		}
		ints = append(ints, v)
	}
	return ints, clean
}

// parseLink reads "<a> <b> <capacity>".
func parseLink(line string) (transit.Link, bool) {
	ints, clean := fieldsToInts(line)
	if !clean || len(ints) < 3 || ints[2] < 0 {
		return transit.Link{}, false
	}
	return transit.Link{A: transit.NodeID(ints[0]), B: transit.NodeID(ints[1]), Capacity: ints[2]}, true
}

// parseVehicle reads "<id> <numStops> <stop>...".
func parseVehicle(line string) (transit.Vehicle, bool) {
	ints, clean := fieldsToInts(line)
	if !clean || len(ints) < 3 {
		return transit.Vehicle{}, false
	}
	v := transit.Vehicle{
		ID:        transit.VehicleID(ints[0]),
		Itinerary: make([]transit.NodeID, 0, len(ints)-2),
	}
	for _, stop := range ints[2:] {
		v.Itinerary = append(v.Itinerary, transit.NodeID(stop))
	}
	return v, true
}

// parseNode reads "0 <id> <x> <y> <n> <type>..." (Source) or "<type> <id> <x> <y>" (Sink).
// Non-integer fields are ignored.
func parseNode(line string) (transit.Node, bool) {
	ints, _ := fieldsToInts(line)
	if len(ints) < 4 {
		return transit.Node{}, false
	}

	n := transit.Node{
		ID:  transit.NodeID(ints[1]),
		Pos: transit.Point{X: ints[2], Y: ints[3]},
	}
	switch {
	case ints[0] == 0 && len(ints) >= 5:
		n.Kind = transit.Source
		count := ints[4]
		demand := ints[5:]
		if count >= 0 && count < len(demand) {
			demand = demand[:count]
		}
		n.Demand = append([]int(nil), demand...)
	case ints[0] > 0:
		n.Kind = transit.Sink
		n.SinkType = ints[0]
	default:
		return transit.Node{}, false
	}
	return n, true
}
