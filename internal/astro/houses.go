package astro

import "math"

// Cusps holds the intermediate Porphyry cusps: the 11th, 12th, 2nd and 3rd
// houses, in that order. The 1st and 10th are the ascendant and midheaven.
type Cusps [4]float64

// PorphyryCusps trisects the quadrant from midheaven to ascendant for the
// 11th and 12th houses, and from ascendant to the lower meridian for the
// 2nd and 3rd.
func PorphyryCusps(asc, mc float64) Cusps {
	var c Cusps
	dM2A := Mod2Pi(asc - mc)
	c[0] = Mod2Pi(mc + dM2A/3)
	c[1] = Mod2Pi(mc + 2*dM2A/3)
	dA2N := Mod2Pi(math.Pi - dM2A)
	c[2] = Mod2Pi(asc + dA2N/3)
	c[3] = Mod2Pi(asc + 2*dA2N/3)
	return c
}

// AllCusps returns the twelve house cusps, index 0 being the 1st house.
// Houses 4 through 9 are the antipodes of 10 through 3.
func AllCusps(asc, mc float64, c Cusps) [12]float64 {
	var all [12]float64
	all[0] = asc
	all[1] = c[2]
	all[2] = c[3]
	all[9] = mc
	all[10] = c[0]
	all[11] = c[1]
	for n := 3; n <= 8; n++ {
		all[n] = Mod2Pi(all[(n+6)%12] + math.Pi)
	}
	return all
}

// House returns the house (1..12) containing the ecliptic longitude a,
// or 0 when it cannot be placed (for example when a is NaN).
func House(a, asc, mc float64, c Cusps) int {
	all := AllCusps(asc, mc, c)
	for n := 0; n < 12; n++ {
		d := AngleDelta(all[n], a)
		if d >= 0 && d < AngleDelta(all[n], all[(n+1)%12]) {
			return n + 1
		}
	}
	return 0
}
