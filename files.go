/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package main

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
)

func humanReadableSize(bytes int) string {
	return humanize.Bytes(uint64(bytes))
}

// humanReadableDuration keeps the two largest units, e.g. "7 hours 3 minutes".
func humanReadableDuration(d time.Duration) string {
	if d < time.Minute {
		return durafmt.Parse(d.Round(time.Second)).LimitFirstN(1).String()
	}

	return durafmt.Parse(d.Round(time.Minute)).LimitFirstN(2).String()
}
