/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package main

import (
	"testing"
	"time"
)

func TestHumanReadableDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{30 * time.Second, "30 seconds"},
		{time.Hour, "1 hour"},
		{7*time.Hour + 3*time.Minute + 20*time.Second, "7 hours 3 minutes"},
		{23*time.Hour + 59*time.Minute + 31*time.Second, "1 day"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := humanReadableDuration(tt.in); got != tt.want {
				t.Errorf("humanReadableDuration(%s) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestHumanReadableSize(t *testing.T) {
	if got := humanReadableSize(2048); got != "2.0 kB" {
		t.Errorf("humanReadableSize(2048) = %q, want 2.0 kB", got)
	}
}
