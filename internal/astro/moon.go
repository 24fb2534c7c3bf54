package astro

import "math"

// MoonLongitude returns an approximate geocentric longitude of the Moon in
// radians: the mean Moon plus six periodic terms. Good to about a quarter
// of a degree.
func MoonLongitude(jd float64) float64 {
	t := centuriesSince1900(jd)

	node := math.Mod(4.52360-33.757145*t, TwoPi)
	elongation := math.Mod(6.12152+7771.37719*t, TwoPi)
	solarAnomaly := math.Mod(6.25658+628.301946*t, TwoPi)
	perigee := math.Mod(5.83515+71.018041*t, TwoPi)
	moon := math.Mod(4.719967+8399.709128*t, TwoPi)

	a := solarAnomaly
	b := moon - perigee
	c2 := (moon - node) * 2
	d2 := elongation * 2

	moon += 0.109760*math.Sin(b) - 0.022236*math.Sin(b-d2)
	moon += 0.011490*math.Sin(d2) + 0.003728*math.Sin(b+b)
	moon += -0.003239*math.Sin(a) - 0.001993*math.Sin(c2)
	return Mod2Pi(moon)
}

// MeanLunarNode returns the longitude of the Moon's mean ascending node.
func MeanLunarNode(jd float64) float64 {
	t := centuriesSince1900(jd)
	return Mod2Pi(4.52360 - 33.757145*t)
}
