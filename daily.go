/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package main

import (
	"net/http"
	"sync"
	"time"

	"github.com/Seednode/palettle/palette"
	"github.com/julienschmidt/httprouter"
)

// puzzleCache memoises generated puzzles. Generation is deterministic, so
// an evicted entry is simply rebuilt.
type puzzleCache struct {
	mu      sync.Mutex
	max     int
	order   []string
	entries map[string]palette.Puzzle
}

func newPuzzleCache(size int) *puzzleCache {
	if size < 1 {
		size = 1
	}

	return &puzzleCache{
		max:     size,
		entries: make(map[string]palette.Puzzle),
	}
}

// get returns the puzzle for seed, with the scheme of the day when scheme
// is empty.
func (pc *puzzleCache) get(seed, scheme string) palette.Puzzle {
	if scheme == "" {
		scheme = palette.DailyScheme(seed)
	}

	key := seed + "|" + scheme

	pc.mu.Lock()
	p, ok := pc.entries[key]
	pc.mu.Unlock()
	if ok {
		return p
	}

	p = palette.NewPuzzleWithScheme(seed, scheme)

	pc.mu.Lock()
	defer pc.mu.Unlock()

	if _, ok := pc.entries[key]; !ok {
		pc.entries[key] = p
		pc.order = append(pc.order, key)

		for len(pc.order) > pc.max {
			delete(pc.entries, pc.order[0])
			pc.order = pc.order[1:]
		}
	}

	return p
}

func (pc *puzzleCache) size() int {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	return len(pc.entries)
}

type PuzzleResponse struct {
	Date          string                      `json:"date"`
	WheelColors   [palette.WheelSize]string   `json:"wheelColors"`
	HiddenPalette [palette.PaletteSize]string `json:"hiddenPalette"`
	Family        string                      `json:"family"`
	Treatment     string                      `json:"treatment"`
	FamilyKey     string                      `json:"familyKey"`
	TreatmentKey  string                      `json:"treatmentKey"`
	Scheme        string                      `json:"scheme"`
	Name          string                      `json:"name"`
	Description   string                      `json:"description"`
	BestUsedFor   []string                    `json:"bestUsedFor"`
	NextReset     time.Time                   `json:"nextReset"`
	NextResetIn   string                      `json:"nextResetIn"`
}

func newPuzzleResponse(p palette.Puzzle, now time.Time) PuzzleResponse {
	next := palette.NextReset(now)

	return PuzzleResponse{
		Date:          p.Date,
		WheelColors:   p.Wheel.Colors,
		HiddenPalette: p.Hidden,
		Family:        p.Wheel.FamilyName,
		Treatment:     p.Wheel.TreatmentName,
		FamilyKey:     p.Wheel.FamilyKey,
		TreatmentKey:  p.Wheel.TreatmentKey,
		Scheme:        p.Scheme,
		Name:          p.Metadata.Name,
		Description:   p.Metadata.Description,
		BestUsedFor:   p.Metadata.BestUsedFor,
		NextReset:     next,
		NextResetIn:   humanReadableDuration(next.Sub(now)),
	}
}

func serveToday(cfg *Config, cache *puzzleCache, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		now := cfg.clock()
		p := cache.get(palette.TodaySeed(now), "")

		serveJSON(cfg, w, r, errs, http.StatusOK, "Puzzle "+p.Date, newPuzzleResponse(p, now))
	}
}

// serveDate answers for any date, optionally under a different scheme.
func serveDate(cfg *Config, cache *puzzleCache, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		seed := ps.ByName("date")

		if _, err := palette.ParseSeed(seed); err != nil {
			serveJSON(cfg, w, r, errs, http.StatusBadRequest, "Bad date", errorResponse{Error: err.Error()})

			return
		}

		scheme := r.URL.Query().Get("scheme")
		if scheme != "" && !palette.IsScheme(scheme) {
			serveJSON(cfg, w, r, errs, http.StatusBadRequest, "Bad scheme", errorResponse{Error: "unknown scheme " + scheme})

			return
		}

		p := cache.get(seed, scheme)

		serveJSON(cfg, w, r, errs, http.StatusOK, "Puzzle "+p.Date, newPuzzleResponse(p, cfg.clock()))
	}
}

type schemeEntry struct {
	Key string `json:"key"`
	palette.SchemeInfo
}

func serveSchemes(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		names := palette.Schemes()

		entries := make([]schemeEntry, 0, len(names))
		for _, name := range names {
			entries = append(entries, schemeEntry{Key: name, SchemeInfo: palette.ExplainScheme(name)})
		}

		serveJSON(cfg, w, r, errs, http.StatusOK, "Schemes", entries)
	}
}

func registerDailyAPI(cfg *Config, cache *puzzleCache, mux *httprouter.Router, errs chan<- error) {
	mux.GET(cfg.prefix+"/api/today", serveToday(cfg, cache, errs))
	mux.GET(cfg.prefix+"/api/palette/:date", serveDate(cfg, cache, errs))
	mux.GET(cfg.prefix+"/api/schemes", serveSchemes(cfg, errs))
}
