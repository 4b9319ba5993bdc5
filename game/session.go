/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package game

import (
	"encoding/json"
	"errors"

	"github.com/Seednode/palettle/palette"
)

// MaxRows is the number of guesses a player gets.
const MaxRows = 5

var (
	ErrGameOver       = errors.New("the game is already over")
	ErrRowFull        = errors.New("the current row is full")
	ErrRowIncomplete  = errors.New("fill every tile before submitting")
	ErrDuplicateColor = errors.New("that color is already in this row")
	ErrUnknownColor   = errors.New("that color is not on today's wheel")
	ErrNotCurrentRow  = errors.New("only the current row can be edited")
	ErrTileRange      = errors.New("tile is out of range")
)

// Outcome is where a session stands.
type Outcome int

const (
	Playing Outcome = iota
	Won
	Lost
)

func (o Outcome) String() string {
	switch o {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "playing"
	}
}

func (o Outcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// Tile is a guessed color; the empty tile encodes as null.
type Tile string

func (t Tile) MarshalJSON() ([]byte, error) {
	if t == "" {
		return []byte("null"), nil
	}

	return json.Marshal(string(t))
}

// Session is one player's attempt at a puzzle. It is not safe for
// concurrent use; the owner serialises player actions.
type Session struct {
	puzzle     palette.Puzzle
	rows       [MaxRows][palette.PaletteSize]Tile
	results    [MaxRows][palette.PaletteSize]TileResult
	current    int
	eliminated map[string]bool
	outcome    Outcome
}

func NewSession(p palette.Puzzle) *Session {
	s := &Session{}
	s.Reset(p)

	return s
}

// Reset clears every row and the eliminated set, for a replay or a new day.
func (s *Session) Reset(p palette.Puzzle) {
	*s = Session{
		puzzle:     p,
		eliminated: make(map[string]bool),
	}
}

func (s *Session) Puzzle() palette.Puzzle {
	return s.puzzle
}

func (s *Session) Outcome() Outcome {
	return s.outcome
}

func (s *Session) CurrentRow() int {
	return s.current
}

// AddColor places color in the first empty tile of the current row.
func (s *Session) AddColor(color string) error {
	if s.outcome != Playing {
		return ErrGameOver
	}

	if !s.puzzle.OnWheel(color) {
		return ErrUnknownColor
	}

	row := &s.rows[s.current]

	empty := -1
	for i, tile := range row {
		if tile == Tile(color) {
			return ErrDuplicateColor
		}
		if tile == "" && empty < 0 {
			empty = i
		}
	}

	if empty < 0 {
		return ErrRowFull
	}

	row[empty] = Tile(color)

	return nil
}

// ClearTile empties one tile of the current row.
func (s *Session) ClearTile(row, col int) error {
	if s.outcome != Playing {
		return ErrGameOver
	}

	if row < 0 || row >= MaxRows || col < 0 || col >= palette.PaletteSize {
		return ErrTileRange
	}

	if row != s.current {
		return ErrNotCurrentRow
	}

	s.rows[row][col] = ""

	return nil
}

// Submit scores the current row and advances the game.
func (s *Session) Submit() (Evaluation, error) {
	if s.outcome != Playing {
		return Evaluation{}, ErrGameOver
	}

	var guess [palette.PaletteSize]string
	for i, tile := range s.rows[s.current] {
		if tile == "" {
			return Evaluation{}, ErrRowIncomplete
		}
		guess[i] = string(tile)
	}

	e := Evaluate(guess, s.puzzle.Hidden)

	s.results[s.current] = e.Results
	for _, color := range e.Eliminated {
		s.eliminated[color] = true
	}

	switch {
	case e.Won():
		s.outcome = Won
	case s.current == MaxRows-1:
		s.outcome = Lost
	default:
		s.current++
	}

	return e, nil
}

// Eliminated lists the colors proven absent, in wheel order.
func (s *Session) Eliminated() []string {
	out := make([]string, 0, len(s.eliminated))
	for _, c := range s.puzzle.Wheel.Colors {
		if s.eliminated[c] {
			out = append(out, c)
		}
	}

	return out
}

// Guesses is the number of rows submitted so far.
func (s *Session) Guesses() int {
	n := s.current
	if s.outcome != Playing {
		n++
	}

	return n
}

// Snapshot is the player-visible state of a session.
type Snapshot struct {
	Date        string                                   `json:"date"`
	WheelColors [palette.WheelSize]string                `json:"wheelColors"`
	Family      string                                   `json:"family"`
	Treatment   string                                   `json:"treatment"`
	Scheme      string                                   `json:"scheme"`
	Rows        [MaxRows][palette.PaletteSize]Tile       `json:"rows"`
	Results     [MaxRows][palette.PaletteSize]TileResult `json:"rowResults"`
	CurrentRow  int                                      `json:"currentRow"`
	Eliminated  []string                                 `json:"eliminated"`
	Outcome     Outcome                                  `json:"outcome"`
	Guesses     int                                      `json:"guesses"`
	Hidden      *[palette.PaletteSize]string             `json:"hiddenPalette,omitempty"`
	Metadata    *palette.Metadata                        `json:"metadata,omitempty"`
}

// Snapshot copies the session state. The answer and its metadata are only
// included once the game has ended.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Date:        s.puzzle.Date,
		WheelColors: s.puzzle.Wheel.Colors,
		Family:      s.puzzle.Wheel.FamilyName,
		Treatment:   s.puzzle.Wheel.TreatmentName,
		Scheme:      s.puzzle.Scheme,
		Rows:        s.rows,
		Results:     s.results,
		CurrentRow:  s.current,
		Eliminated:  s.Eliminated(),
		Outcome:     s.outcome,
		Guesses:     s.Guesses(),
	}

	if s.outcome != Playing {
		hidden := s.puzzle.Hidden
		meta := s.puzzle.Metadata
		snap.Hidden = &hidden
		snap.Metadata = &meta
	}

	return snap
}
