/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package palette

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// ResetHour is the UTC hour a new puzzle goes live (09:00 PST).
	ResetHour = 17

	SeedLayout = "2006-01-02"
)

// TodaySeed returns the game day in effect at now. Days roll over at
// ResetHour UTC, so the result is the same for every player regardless of
// their local timezone.
func TodaySeed(now time.Time) string {
	return now.UTC().Add(-ResetHour * time.Hour).Format(SeedLayout)
}

// NextReset returns the first rollover strictly after now.
func NextReset(now time.Time) time.Time {
	now = now.UTC()

	next := time.Date(now.Year(), now.Month(), now.Day(), ResetHour, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}

	return next
}

// ParseSeed validates a YYYY-MM-DD seed.
func ParseSeed(seed string) (time.Time, error) {
	t, err := time.Parse(SeedLayout, seed)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", seed)
	}

	return t, nil
}

// DailyScheme selects the harmony of the day from the date digits.
// Seeds without leading digits get the first scheme.
func DailyScheme(seed string) string {
	digits := strings.ReplaceAll(seed, "-", "")

	end := 0
	for end < len(digits) && digits[end] >= '0' && digits[end] <= '9' {
		end++
	}

	n, err := strconv.ParseUint(digits[:end], 10, 64)
	if err != nil {
		return schemeOrder[0]
	}

	return schemeOrder[n%uint64(len(schemeOrder))]
}
