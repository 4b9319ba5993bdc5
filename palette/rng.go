/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package palette

import (
	"math"
	"unicode/utf16"
)

const (
	lcgMultiplier = 1103515245
	lcgIncrement  = 12345
	lcgMask       = 0x7fffffff
	twoPow32      = 4294967296.0
)

// RNG is the linear congruential generator every published puzzle was
// derived from. Its output must stay bit-identical across releases.
type RNG struct {
	state float64
}

// NewRNG hashes seed into the initial state.
func NewRNG(seed string) *RNG {
	var hash int32
	for _, unit := range utf16.Encode([]rune(seed)) {
		hash = hash*31 + int32(unit)
	}

	return &RNG{state: float64(hash)}
}

// Next returns the next value in [0,1].
//
// The multiply-add is carried out in float64 before truncation to 32 bits,
// which loses precision once the product exceeds 2^53. That loss is part of
// the published sequence. The explicit conversion stops the compiler from
// fusing the multiply and add into one instruction.
func (r *RNG) Next() float64 {
	x := float64(r.state*lcgMultiplier) + lcgIncrement

	m := math.Mod(x, twoPow32)
	if m < 0 {
		m += twoPow32
	}

	r.state = float64(uint32(m) & lcgMask)

	return r.state / lcgMask
}

// Intn returns floor(Next()*n), which is n when Next returns 1.
func (r *RNG) Intn(n int) int {
	return int(math.Floor(r.Next() * float64(n)))
}

// index is Intn for picking from a table of n entries. Next returns exactly
// 1 when the state lands on the mask, which would select entry n.
func (r *RNG) index(n int) int {
	return min(r.Intn(n), n-1)
}

// SeededRandom returns the first value drawn from a fresh generator.
func SeededRandom(seed string) float64 {
	return NewRNG(seed).Next()
}
