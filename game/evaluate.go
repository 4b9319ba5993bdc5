/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package game

import (
	"encoding/json"
	"fmt"

	"github.com/Seednode/palettle/palette"
)

// TileResult is the feedback for one guessed tile.
type TileResult int

const (
	Unset TileResult = iota
	Correct
	Misplaced
	Wrong
)

func (r TileResult) String() string {
	switch r {
	case Correct:
		return "correct"
	case Misplaced:
		return "misplaced"
	case Wrong:
		return "wrong"
	default:
		return "unset"
	}
}

// MarshalJSON renders Unset as null, everything else by name.
func (r TileResult) MarshalJSON() ([]byte, error) {
	if r == Unset {
		return []byte("null"), nil
	}

	return json.Marshal(r.String())
}

func (r *TileResult) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	if s == nil {
		*r = Unset

		return nil
	}

	switch *s {
	case "correct":
		*r = Correct
	case "misplaced":
		*r = Misplaced
	case "wrong":
		*r = Wrong
	case "unset":
		*r = Unset
	default:
		return fmt.Errorf("unknown tile result %q", *s)
	}

	return nil
}

// Evaluation is the outcome of scoring one full row.
type Evaluation struct {
	Results    [palette.PaletteSize]TileResult `json:"results"`
	Correct    int                             `json:"correct"`
	Eliminated []string                        `json:"eliminated,omitempty"`
}

// Won reports whether every tile was correct.
func (e Evaluation) Won() bool {
	return e.Correct == palette.PaletteSize
}

// Evaluate scores guess against hidden, Wordle style.
//
// Exact matches are taken first; each remaining hidden slot can then satisfy
// at most one misplaced tile. A wrong color is only reported as eliminated
// when it appears nowhere in hidden. The guess must be full and free of
// duplicates.
func Evaluate(guess, hidden [palette.PaletteSize]string) Evaluation {
	var e Evaluation

	var consumed [palette.PaletteSize]bool

	for i, color := range guess {
		if color == hidden[i] {
			e.Results[i] = Correct
			consumed[i] = true
			e.Correct++
		}
	}

	for i, color := range guess {
		if e.Results[i] == Correct {
			continue
		}

		j := indexOf(hidden, consumed, color)
		if j >= 0 {
			e.Results[i] = Misplaced
			consumed[j] = true

			continue
		}

		e.Results[i] = Wrong

		if !contains(hidden, color) {
			e.Eliminated = append(e.Eliminated, color)
		}
	}

	return e
}

func indexOf(colors [palette.PaletteSize]string, consumed [palette.PaletteSize]bool, color string) int {
	for i, c := range colors {
		if !consumed[i] && c == color {
			return i
		}
	}

	return -1
}

func contains(colors [palette.PaletteSize]string, color string) bool {
	for _, c := range colors {
		if c == color {
			return true
		}
	}

	return false
}
