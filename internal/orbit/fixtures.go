package orbit

import "strings"

// Built-in elements, referred to J1900. Chiron, Ceres and Sedna have none
// and rely on element tables.
var (
	Sun = Elements{Radius: 108.97, RefFrame: DefaultRefFrame}

	Mercury = Elements{
		Radius: 0.3824, A: 0.3870984, E: 0.205614929,
		Peri: 1.32465, DPeri: 0.027113,
		Node: 0.82283, DNode: 0.020678,
		Incl: 0.12223, DIncl: 3.03396e-5,
		Lng: 3.10982, DLng: 2608.81471,
		RefFrame: DefaultRefFrame,
	}

	Venus = Elements{
		Radius: 0.9489, A: 0.72333015, E: 0.006816361,
		Peri: 2.27138, DPeri: 0.023951,
		Node: 1.32275, DNode: 0.015953,
		Incl: 0.059230123, DIncl: 2.18554e-5,
		Lng: 5.98242, DLng: 1021.352936,
		RefFrame: DefaultRefFrame,
	}

	Earth = Elements{
		Radius: 1.0, A: 1.00000129, E: 0.016749801,
		Peri: 1.76660, DPeri: 0.029922,
		Lng: 1.74004, DLng: 628.331955,
		RefFrame: DefaultRefFrame,
	}

	Mars = Elements{
		Radius: 0.5320, A: 1.523678, E: 0.093309,
		Peri: 5.83321, DPeri: 0.032121,
		Node: 0.851488, DNode: 0.013560,
		Incl: 0.03229, DIncl: -0.113277,
		Lng: 5.12674, DLng: 334.085624,
		RefFrame: DefaultRefFrame,
	}

	Jupiter = Elements{
		Radius: 11.1942, A: 5.202561, E: 0.048335,
		Peri: 0.22202, DPeri: 0.028099,
		Node: 1.73561, DNode: 0.017637,
		Incl: 0.02284, DIncl: -0.000099,
		Lng: 4.15474, DLng: 52.993466,
		RefFrame: DefaultRefFrame,
	}

	Saturn = Elements{
		Radius: 9.4071, A: 9.554747, E: 0.05589,
		Peri: 1.58996, DPeri: 0.034181,
		Node: 1.96856, DNode: 0.015240,
		Incl: 0.043503, DIncl: -0.000068,
		Lng: 4.65243, DLng: 21.354276,
		RefFrame: DefaultRefFrame,
	}

	Uranus = Elements{
		Radius: 3.98245, A: 19.21814, E: 0.046344,
		Peri: 2.994088, DPeri: 0.025908,
		Node: 1.282417, DNode: 0.008703,
		Incl: 0.013482, DIncl: 0.000011,
		Lng: 4.262050, DLng: 7.502534,
		RefFrame: DefaultRefFrame,
	}

	Neptune = Elements{
		Radius: 3.8099, A: 30.10957, E: 0.008997,
		Peri: 0.815546, DPeri: 0.024864,
		Node: 2.280820, DNode: 0.019180,
		Incl: 0.031054, DIncl: -0.000167,
		Lng: 1.474070, DLng: 3.837733,
		RefFrame: DefaultRefFrame,
	}

	Pluto = Elements{
		Radius: 0.2352, A: 39.51774, E: 0.24864,
		Peri: 3.882936, DPeri: 0.24365,
		Node: 1.901614, DNode: 0.243650,
		Incl: 0.299268,
		Lng: 1.613087, DLng: 2.77286,
		RefFrame: DefaultRefFrame,
	}

	// Moon elements are geocentric and only A is used (heliocentric Moon offset).
	Moon = Elements{
		Radius: 0.27249, A: 0.002569, E: 0.0549,
		Peri: 5.83515, DPeri: 71.01804,
		Node: 4.5236, DNode: -33.75714,
		Incl: 0.089804,
		Lng: 4.72, DLng: 8399.709,
		RefFrame: DefaultRefFrame,
	}
)

var static = map[string]Elements{
	"sun":     Sun,
	"mercury": Mercury,
	"venus":   Venus,
	"earth":   Earth,
	"mars":    Mars,
	"jupiter": Jupiter,
	"saturn":  Saturn,
	"uranus":  Uranus,
	"neptune": Neptune,
	"pluto":   Pluto,
	"moon":    Moon,
}

// Static returns the built-in elements for a body name (case-insensitive).
func Static(name string) (Elements, bool) {
	el, ok := static[strings.ToLower(name)]
	return el, ok
}
