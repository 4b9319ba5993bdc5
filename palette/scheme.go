/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package palette

import (
	"strconv"
)

const (
	PaletteSize = 5

	minPaletteContrast = 20
)

// Offsets from the base index for each harmony, in selection order.
var schemeOffsets = map[string][PaletteSize]int{
	"complementary":       {0, 6, 1, 5, 7},
	"triadic":             {0, 4, 8, 2, 6},
	"analogous":           {-2, -1, 0, 1, 2},
	"split-complementary": {0, 5, 7, 1, 6},
	"tetradic":            {0, 3, 6, 9, 1},
	"square":              {0, 3, 6, 9, 2},
	"rectangular":         {0, 2, 6, 8, 4},
	"accent":              {0, 1, 2, 7, 10},
}

var schemeOrder = [...]string{
	"complementary",
	"triadic",
	"analogous",
	"split-complementary",
	"tetradic",
	"square",
	"rectangular",
	"accent",
}

// Unrecognised schemes select these wheel slots regardless of the seed.
var fallbackIndices = [PaletteSize]int{0, 2, 4, 6, 8}

// Schemes lists the recognised harmony names.
func Schemes() []string {
	return append([]string(nil), schemeOrder[:]...)
}

func IsScheme(name string) bool {
	_, ok := schemeOffsets[name]

	return ok
}

func wrapIndex(i int) int {
	return ((i % WheelSize) + WheelSize) % WheelSize
}

func schemeIndices(scheme string, base int) [PaletteSize]int {
	offsets, ok := schemeOffsets[scheme]
	if !ok {
		return fallbackIndices
	}

	var indices [PaletteSize]int
	for i, offset := range offsets {
		indices[i] = wrapIndex(base + offset)
	}

	return indices
}

// GeneratePalette picks the hidden five colors for scheme from wheel.
//
// Each shuffle step draws from a generator reseeded with seed+"shuffle"+i
// rather than one continuous stream; published palettes depend on it. When
// the shuffled selection has too little contrast it is replaced, unshuffled,
// by every second slot starting from the base index.
func GeneratePalette(scheme string, wheel [WheelSize]string, seed string) [PaletteSize]string {
	base := NewRNG(seed + "pattern").Intn(WheelSize)

	indices := schemeIndices(scheme, base)

	for i := len(indices) - 1; i > 0; i-- {
		j := min(int(SeededRandom(seed+"shuffle"+strconv.Itoa(i))*float64(i+1)), i)
		indices[i], indices[j] = indices[j], indices[i]
	}

	hidden := pick(wheel, indices)

	if MinPairwiseDistance(hidden[:]) < minPaletteContrast {
		const step = WheelSize / PaletteSize

		for i := range indices {
			indices[i] = (base + i*step) % WheelSize
		}

		hidden = pick(wheel, indices)
	}

	return hidden
}

func pick(wheel [WheelSize]string, indices [PaletteSize]int) [PaletteSize]string {
	var out [PaletteSize]string
	for i, idx := range indices {
		out[i] = wheel[idx]
	}

	return out
}
