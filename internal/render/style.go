// Package render derives display state for routes: line styles, distance
// markers, connector lines and the GeoJSON handed to the map.
package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"quantaroute-demo/internal/domain"
)

type LineStyle struct {
	Color   string  `json:"color"`
	Weight  int     `json:"weight"`
	Opacity float64 `json:"opacity"`
}

var profileColors = map[domain.Profile]string{
	domain.ProfileCar:        "#00008B",
	domain.ProfileBicycle:    "#10b981",
	domain.ProfileFoot:       "#f59e0b",
	domain.ProfileMotorcycle: "#A544EF",
}

const fallbackColor = "#64748b"

var lightenFactors = [...]float64{0.4, 0.6, 0.8}

func ProfileColor(p domain.Profile) string {
	if c, ok := profileColors[p]; ok {
		return c
	}
	return fallbackColor
}

// AlternativeColor is the profile colour washed towards white, a different
// amount for each position in the set.
func AlternativeColor(index int, p domain.Profile) string {
	r, g, b := hexRGB(ProfileColor(p))
	f := lightenFactors[((index%len(lightenFactors))+len(lightenFactors))%len(lightenFactors)]
	lighten := func(c int) int {
		return min(255, int(math.Floor(float64(c)+float64(255-c)*f)))
	}
	return fmt.Sprintf("rgb(%d, %d, %d)", lighten(r), lighten(g), lighten(b))
}

// Style returns how route number index of a set is drawn.
func Style(r domain.Route, index int, p domain.Profile) LineStyle {
	if r.IsSelected {
		return LineStyle{Color: ProfileColor(p), Weight: 14, Opacity: 0.8}
	}
	return LineStyle{Color: AlternativeColor(index, p), Weight: 8, Opacity: 0.6}
}

func hexRGB(hex string) (int, int, int) {
	h := strings.TrimPrefix(hex, "#")
	if len(h) != 6 {
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}

// FormatDuration renders minutes as "45 min", "1h 46m" or "2h".
func FormatDuration(minutes float64) string {
	if minutes <= 0 || math.IsNaN(minutes) {
		return "0 min"
	}
	if minutes < 60 {
		return fmt.Sprintf("%d min", int(math.Round(minutes)))
	}
	hours := int(minutes / 60)
	mins := int(math.Round(math.Mod(minutes, 60)))
	if mins == 60 {
		hours++
		mins = 0
	}
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}

// FormatDistance renders kilometres as "750m" below one kilometre and
// "2.5km" above.
func FormatDistance(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%dm", int(math.Round(km*1000)))
	}
	return strconv.FormatFloat(math.Round(km*10)/10, 'f', -1, 64) + "km"
}
