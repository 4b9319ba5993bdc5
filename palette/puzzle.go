/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package palette

// Puzzle is everything derived from one seed. It is a pure function of its
// inputs; any stored copy is a cache.
type Puzzle struct {
	Date     string              `json:"date"`
	Wheel    Wheel               `json:"wheel"`
	Scheme   string              `json:"scheme"`
	Hidden   [PaletteSize]string `json:"hiddenPalette"`
	Metadata Metadata            `json:"metadata"`
}

// NewPuzzle builds the puzzle for seed using the scheme of the day.
func NewPuzzle(seed string) Puzzle {
	return NewPuzzleWithScheme(seed, DailyScheme(seed))
}

func NewPuzzleWithScheme(seed, scheme string) Puzzle {
	wheel := GenerateWheel(seed)

	return Puzzle{
		Date:     seed,
		Wheel:    wheel,
		Scheme:   scheme,
		Hidden:   GeneratePalette(scheme, wheel.Colors, seed),
		Metadata: Describe(wheel.FamilyKey, scheme, seed),
	}
}

// OnWheel reports whether color is one of the puzzle's wheel colors.
func (p Puzzle) OnWheel(color string) bool {
	for _, c := range p.Wheel.Colors {
		if c == color {
			return true
		}
	}

	return false
}
