// Package palette generates distinguishable pastel colors for schedules.
package palette

import (
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	// MinHueDistance is the smallest hue gap, in degrees, between schedules.
	MinHueDistance = 30

	saturation  = 0.70
	accentLight = 0.85
	fillLight   = 0.40

	maxAttempts = 64
)

// Pair is a schedule's accent and fill color as hex strings.
type Pair struct {
	Color   string
	BgColor string
}

// FromHue builds the pair for a hue in degrees.
func FromHue(hue float64) Pair {
	return Pair{
		Color:   colorful.Hsl(hue, saturation, accentLight).Hex(),
		BgColor: colorful.Hsl(hue, saturation, fillLight).Hex(),
	}
}

// HueDistance returns the circular distance between two hues.
func HueDistance(a, b float64) float64 {
	d := math.Abs(a - b)
	d = math.Mod(d, 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}

// Hue extracts the hue of a hex color. Unparseable colors report false.
func Hue(hex string) (float64, bool) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0, false
	}
	h, _, _ := c.Hsl()
	return h, true
}

// Generate picks a color pair whose hue is at least MinHueDistance away from
// every existing color. When the wheel is too crowded it returns the
// candidate farthest from its nearest neighbour.
func Generate(existing []string, rnd *rand.Rand) Pair {
	hues := make([]float64, 0, len(existing))
	for _, c := range existing {
		if h, ok := Hue(c); ok {
			hues = append(hues, h)
		}
	}

	best, bestDist := 0.0, -1.0
	for i := 0; i < maxAttempts; i++ {
		hue := math.Floor(randFloat(rnd) * 360)
		dist := nearest(hue, hues)
		if dist >= MinHueDistance {
			return FromHue(hue)
		}
		if dist > bestDist {
			best, bestDist = hue, dist
		}
	}
	return FromHue(best)
}

func nearest(hue float64, hues []float64) float64 {
	d := math.Inf(1)
	for _, h := range hues {
		d = math.Min(d, HueDistance(hue, h))
	}
	return d
}

func randFloat(rnd *rand.Rand) float64 {
	if rnd == nil {
		return rand.Float64()
	}
	return rnd.Float64()
}
