/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package palette

import "math"

const (
	WheelSize = 12

	minWheelDistance = 25

	spectrumAttempts = 10
	bandAttempts     = 15

	narrowSpan = 100
)

// Wheel is the set of colors a player picks from on a given day.
type Wheel struct {
	Colors        [WheelSize]string `json:"colors"`
	FamilyName    string            `json:"familyName"`
	TreatmentName string            `json:"treatmentName"`
	FamilyKey     string            `json:"familyKey"`
	TreatmentKey  string            `json:"treatmentKey"`
}

type satLight struct {
	sat, light float64
}

// GenerateWheel derives the twelve wheel colors for seed.
//
// Distinctness is best effort: each slot retries a bounded number of times
// while the candidate sits within minWheelDistance of an accepted color, and
// the last candidate is kept when attempts run out.
func GenerateWheel(seed string) Wheel {
	rng := NewRNG(seed + "wheel")

	family := families[rng.index(len(families))]
	treatment := treatments[rng.index(len(treatments))]

	var colors []string
	if family.FullSpectrum() {
		colors = spectrumWheel(rng, family, treatment)
	} else {
		colors = bandWheel(rng, family, treatment)
	}

	w := Wheel{
		FamilyName:    family.Name,
		TreatmentName: treatment.Name,
		FamilyKey:     family.Key,
		TreatmentKey:  treatment.Key,
	}
	copy(w.Colors[:], colors)

	return w
}

// spectrumWheel spaces hues evenly around the circle from a random offset.
func spectrumWheel(rng *RNG, family Family, treatment Treatment) []string {
	colors := make([]string, 0, WheelSize)

	shift := rng.Intn(360)

	for i := 0; i < WheelSize; i++ {
		hue := float64((i*30 + shift) % 360)

		var color string
		for attempts := 0; ; {
			satVariance := (rng.Next() - 0.5) * 20
			lightVariance := (rng.Next() - 0.5) * 12

			saturation := family.Sat.Lo + float64(rng.Next()*(family.Sat.Hi-family.Sat.Lo))
			lightness := family.Light.Lo + float64(rng.Next()*(family.Light.Hi-family.Light.Lo))

			saturation = clamp(saturation+treatment.SatMod+satVariance, 50, 100)
			lightness = clamp(lightness+treatment.LightMod+lightVariance, 25, 80)

			color = HSLToHex(hue, saturation, lightness)
			attempts++

			if !tooClose(color, colors, minWheelDistance) || attempts >= spectrumAttempts {
				break
			}
		}

		colors = append(colors, color)
	}

	return colors
}

// bandWheel works inside a hue band too narrow for angular spacing, so it
// spreads colors over a shuffled saturation/lightness grid instead.
func bandWheel(rng *RNG, family Family, treatment Treatment) []string {
	hueStart, hueEnd := family.Hue.Lo, family.Hue.Hi
	wraps := hueStart > hueEnd
	span := family.HueSpan()

	narrow := span < narrowSpan

	satSpread, lightSpread := 25.0, 25.0
	satBoost := 0.0
	if narrow {
		satSpread, lightSpread = 50, 45
		satBoost = 15
	}

	baseSat := family.Sat.mid() + treatment.SatMod
	baseLight := family.Light.mid() + treatment.LightMod

	combos := make([]satLight, 0, WheelSize)
	for si := 0; si < 4; si++ {
		for li := 0; li < 3; li++ {
			combos = append(combos, satLight{
				sat:   baseSat - satSpread/2 + float64(float64(si)/3*satSpread),
				light: baseLight - lightSpread/2 + float64(float64(li)/2*lightSpread),
			})
		}
	}

	for i := len(combos) - 1; i > 0; i-- {
		j := rng.index(i + 1)
		combos[i], combos[j] = combos[j], combos[i]
	}

	hueStep := span / WheelSize
	jitter := math.Floor(rng.Next() * span * 0.1)

	colors := make([]string, 0, WheelSize)

	for i := 0; i < WheelSize; i++ {
		combo := combos[i%len(combos)]

		var color string
		for attempts := 0; ; {
			hue := hueStart + float64(float64(i)*hueStep) + jitter + float64((rng.Next()-0.5)*float64(hueStep*0.3))
			if wraps {
				hue = math.Mod(math.Mod(hue, 360)+360, 360)
			} else {
				hue = clamp(hue, hueStart, hueEnd)
			}

			satVariance := (rng.Next() - 0.5) * 10
			lightVariance := (rng.Next() - 0.5) * 8

			saturation := clamp(combo.sat+satVariance+satBoost, 45, 100)
			lightness := clamp(combo.light+lightVariance, 20, 85)

			color = HSLToHex(hue, saturation, lightness)
			attempts++

			if !tooClose(color, colors, minWheelDistance) || attempts >= bandAttempts {
				break
			}
		}

		colors = append(colors, color)
	}

	return colors
}
