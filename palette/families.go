/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package palette

// Range is an inclusive [Lo, Hi] pair. Hue ranges with Lo > Hi wrap past 360.
type Range struct {
	Lo float64 `json:"lo"`
	Hi float64 `json:"hi"`
}

func (r Range) mid() float64 {
	return (r.Lo + r.Hi) / 2
}

// Family constrains the hue, saturation and lightness of a wheel.
type Family struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Hue   Range  `json:"hue"`
	Sat   Range  `json:"saturation"`
	Light Range  `json:"lightness"`
}

// FullSpectrum reports whether the family covers the whole hue circle.
func (f Family) FullSpectrum() bool {
	return f.Hue.Hi-f.Hue.Lo >= 300 || (f.Hue.Lo == 0 && f.Hue.Hi == 360)
}

// HueSpan is the width of the hue band, accounting for wraparound.
func (f Family) HueSpan() float64 {
	if f.Hue.Lo > f.Hue.Hi {
		return (360 - f.Hue.Lo) + f.Hue.Hi
	}

	return f.Hue.Hi - f.Hue.Lo
}

// Treatment shifts saturation and lightness of a whole wheel.
type Treatment struct {
	Key      string  `json:"key"`
	Name     string  `json:"name"`
	SatMod   float64 `json:"satMod"`
	LightMod float64 `json:"lightMod"`
}

// Order matters: the generator picks by index.
var families = [...]Family{
	{Key: "warm", Name: "Warm Sunset", Hue: Range{0, 60}, Sat: Range{65, 85}, Light: Range{45, 60}},
	{Key: "cool", Name: "Cool Ocean", Hue: Range{180, 270}, Sat: Range{50, 75}, Light: Range{40, 60}},
	{Key: "pastel", Name: "Soft Pastel", Hue: Range{0, 360}, Sat: Range{40, 60}, Light: Range{70, 85}},
	{Key: "jewel", Name: "Jewel Tones", Hue: Range{0, 360}, Sat: Range{70, 95}, Light: Range{35, 50}},
	{Key: "earth", Name: "Earth & Clay", Hue: Range{20, 50}, Sat: Range{30, 55}, Light: Range{35, 55}},
	{Key: "vibrant", Name: "Vibrant Pop", Hue: Range{0, 360}, Sat: Range{80, 100}, Light: Range{50, 60}},
	{Key: "muted", Name: "Muted Modern", Hue: Range{0, 360}, Sat: Range{25, 45}, Light: Range{45, 65}},
	{Key: "forest", Name: "Forest Grove", Hue: Range{80, 160}, Sat: Range{40, 70}, Light: Range{30, 55}},
	{Key: "sunset", Name: "Golden Hour", Hue: Range{330, 60}, Sat: Range{70, 90}, Light: Range{50, 65}},
	{Key: "ocean", Name: "Deep Sea", Hue: Range{170, 220}, Sat: Range{55, 80}, Light: Range{40, 60}},
	{Key: "berry", Name: "Berry Harvest", Hue: Range{280, 350}, Sat: Range{50, 75}, Light: Range{35, 55}},
	{Key: "citrus", Name: "Citrus Burst", Hue: Range{30, 90}, Sat: Range{75, 95}, Light: Range{55, 70}},
}

var treatments = [...]Treatment{
	{Key: "tint", Name: "Light & Airy", SatMod: -15, LightMod: 20},
	{Key: "tone", Name: "Muted & Balanced", SatMod: -20, LightMod: 0},
	{Key: "shade", Name: "Deep & Rich", SatMod: 5, LightMod: -15},
	{Key: "vivid", Name: "Bold & Bright", SatMod: 15, LightMod: 5},
	{Key: "neutral", Name: "Soft & Subtle", SatMod: -30, LightMod: 10},
}

// Families returns a copy of the family table in generation order.
func Families() []Family {
	return append([]Family(nil), families[:]...)
}

// Treatments returns a copy of the treatment table in generation order.
func Treatments() []Treatment {
	return append([]Treatment(nil), treatments[:]...)
}

func FamilyByKey(key string) (Family, bool) {
	for _, f := range families {
		if f.Key == key {
			return f, true
		}
	}

	return Family{}, false
}

func TreatmentByKey(key string) (Treatment, bool) {
	for _, t := range treatments {
		if t.Key == key {
			return t, true
		}
	}

	return Treatment{}, false
}
