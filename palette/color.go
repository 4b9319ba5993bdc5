/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package palette

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	hueWeight   = 2.0
	lightWeight = 1.5

	// colorful measures lightness in [0,1]; ΔE00 is quoted for [0,100].
	deltaE00 = 100
)

// HSL holds hue in degrees and saturation/lightness as percentages.
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// jsRound rounds half away from zero for positive inputs and half up
// otherwise, matching the rounding the published puzzles were built with.
func jsRound(x float64) float64 {
	r := math.Floor(x)
	if x-r >= 0.5 {
		r++
	}

	return r
}

// HSLToHex converts to an uppercase #RRGGBB string. Hue wraps, saturation
// and lightness are clamped to [0,100].
func HSLToHex(h, s, l float64) string {
	h = math.Mod(math.Mod(h, 360)+360, 360)
	s = clamp(s, 0, 100) / 100
	l = clamp(l, 0, 100) / 100

	a := float64(s * math.Min(l, 1-l))

	channel := func(n float64) int {
		k := math.Mod(n+h/30, 12)
		c := l - float64(a*math.Max(math.Min(math.Min(k-3, 9-k), 1), -1))

		return int(jsRound(255 * c))
	}

	return strings.ToUpper(fmt.Sprintf("#%02x%02x%02x", channel(0), channel(8), channel(4)))
}

// HexToHSL parses a #RRGGBB string.
func HexToHSL(hex string) (HSL, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return HSL{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}

	// Divide the 8-bit channels directly; colorful scales by 1/255, which
	// differs from /255 in the last bit for some values.
	r8, g8, b8 := c.RGB255()
	r, g, b := float64(r8)/255, float64(g8)/255, float64(b8)/255

	hi := math.Max(r, math.Max(g, b))
	lo := math.Min(r, math.Min(g, b))

	var h, s float64
	l := (hi + lo) / 2

	if hi != lo {
		d := hi - lo
		if l > 0.5 {
			s = d / (2 - hi - lo)
		} else {
			s = d / (hi + lo)
		}

		switch hi {
		case r:
			offset := 0.0
			if g < b {
				offset = 6
			}
			h = ((g-b)/d + offset) / 6
		case g:
			h = ((b-r)/d + 2) / 6
		case b:
			h = ((r-g)/d + 4) / 6
		}
	}

	return HSL{H: h * 360, S: s * 100, L: l * 100}, nil
}

// IsHex reports whether s is a well-formed #RRGGBB color.
func IsHex(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}

	_, err := colorful.Hex(s)

	return err == nil
}

func mustHSL(hex string) HSL {
	c, err := HexToHSL(hex)
	if err != nil {
		return HSL{}
	}

	return c
}

// ColorDistance is a weighted euclidean distance in HSL space. Hue uses the
// shorter arc and weighs double, lightness weighs 1.5.
func ColorDistance(a, b string) float64 {
	c1, c2 := mustHSL(a), mustHSL(b)

	hueDiff := math.Abs(c1.H - c2.H)
	if hueDiff > 180 {
		hueDiff = 360 - hueDiff
	}

	hueTerm := hueDiff * hueWeight
	satTerm := math.Abs(c1.S - c2.S)
	lightTerm := math.Abs(c1.L-c2.L) * lightWeight

	return math.Sqrt(float64(hueTerm*hueTerm) + float64(satTerm*satTerm) + float64(lightTerm*lightTerm))
}

func tooClose(candidate string, accepted []string, minDistance float64) bool {
	for _, existing := range accepted {
		if ColorDistance(candidate, existing) < minDistance {
			return true
		}
	}

	return false
}

// MinPairwiseDistance returns +Inf for fewer than two colors.
func MinPairwiseDistance(colors []string) float64 {
	lowest := math.Inf(1)

	for i := 0; i < len(colors); i++ {
		for j := i + 1; j < len(colors); j++ {
			lowest = math.Min(lowest, ColorDistance(colors[i], colors[j]))
		}
	}

	return lowest
}

// PerceptualSpread is the smallest CIEDE2000 difference between any two
// colors, in standard ΔE00 units (black to white is 100). It is reported by
// the preview tool and never used for generation.
func PerceptualSpread(colors []string) float64 {
	parsed := make([]colorful.Color, 0, len(colors))
	for _, hex := range colors {
		c, err := colorful.Hex(hex)
		if err != nil {
			continue
		}
		parsed = append(parsed, c)
	}

	lowest := math.Inf(1)

	for i := 0; i < len(parsed); i++ {
		for j := i + 1; j < len(parsed); j++ {
			lowest = math.Min(lowest, deltaE00*parsed[i].DistanceCIEDE2000(parsed[j]))
		}
	}

	return lowest
}
