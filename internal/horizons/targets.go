package horizons

import (
	"github.com/litescript/ls-astroclock/internal/position"
)

// TargetInfo maps a body to its Horizons command string.
type TargetInfo struct {
	Body    position.Body
	Command string // Horizons COMMAND value
	NAIFID  int    // NAIF SPICE ID, 0 for small bodies looked up by number
}

// Targets is the list of bodies that can be fetched from Horizons.
// Small bodies use the "number;" form so Horizons does not match a major
// body with the same ID.
var Targets = []TargetInfo{
	{Body: position.Sun, Command: "10", NAIFID: 10},
	{Body: position.Moon, Command: "301", NAIFID: 301},
	{Body: position.Mercury, Command: "199", NAIFID: 199},
	{Body: position.Venus, Command: "299", NAIFID: 299},
	{Body: position.Earth, Command: "399", NAIFID: 399},
	{Body: position.Mars, Command: "499", NAIFID: 499},
	{Body: position.Jupiter, Command: "599", NAIFID: 599},
	{Body: position.Saturn, Command: "699", NAIFID: 699},
	{Body: position.Uranus, Command: "799", NAIFID: 799},
	{Body: position.Neptune, Command: "899", NAIFID: 899},
	{Body: position.Pluto, Command: "999", NAIFID: 999},

	// Small bodies
	{Body: position.Chiron, Command: "2060;"},
	{Body: position.Ceres, Command: "1;"},
	{Body: position.Sedna, Command: "90377;"},
}

// TargetsByBody provides lookup by body.
var TargetsByBody map[position.Body]*TargetInfo

func init() {
	TargetsByBody = make(map[position.Body]*TargetInfo, len(Targets))
	for i := range Targets {
		TargetsByBody[Targets[i].Body] = &Targets[i]
	}
}

// Command returns the Horizons command for a body. Chart points and the
// lunar nodes have none.
func Command(b position.Body) (string, bool) {
	info, ok := TargetsByBody[b]
	if !ok {
		return "", false
	}
	return info.Command, true
}
