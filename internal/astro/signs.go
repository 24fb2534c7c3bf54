package astro

import (
	"fmt"
	"math"
	"strings"

	"github.com/soniakeys/unit"
)

// SignWidth is the span of one zodiac sign in radians.
const SignWidth = math.Pi / 6

// SignNames lists the zodiac signs from Aries.
var SignNames = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// signAbbr are the two-letter sign abbreviations accepted on input.
var signAbbr = [12]string{
	"ar", "ta", "ge", "ca", "le", "vi", "li", "sc", "sa", "cp", "aq", "pi",
}

// ParseSign resolves a lower-case sign name or abbreviation to its index (0 = Aries).
func ParseSign(word string) (int, bool) {
	w := strings.ToLower(word)
	if w == "saggittarius" {
		return 8, true
	}
	for i := range SignNames {
		if w == strings.ToLower(SignNames[i]) || w == signAbbr[i] {
			return i, true
		}
	}
	return -1, false
}

// SignOf returns the sign index for a longitude in radians, or -1 for NaN.
func SignOf(lng float64) int {
	if math.IsNaN(lng) {
		return -1
	}
	return int(math.Floor(Mod2Pi(lng)/SignWidth)) % 12
}

// FormatLongitude renders a longitude in radians as degrees and minutes
// within its sign, for example "12°34' Leo". NaN renders as "-".
func FormatLongitude(lng float64) string {
	if math.IsNaN(lng) {
		return "-"
	}
	totalMin := int(math.Round(unit.Angle(lng).Mod1().Min()))
	if totalMin >= 360*60 {
		totalMin = 0
	}
	sign := totalMin / (30 * 60)
	within := totalMin % (30 * 60)
	return fmt.Sprintf("%2d°%02d' %s", within/60, within%60, SignNames[sign])
}
