/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package main

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errSub string
	}{
		{"defaults", func(*Config) {}, ""},
		{"cert without key", func(c *Config) { c.tlsCert = "cert.pem" }, "tls"},
		{"key without cert", func(c *Config) { c.tlsKey = "key.pem" }, "tls"},
		{"port zero", func(c *Config) { c.port = 0 }, "port"},
		{"port too high", func(c *Config) { c.port = 70000 }, "port"},
		{"empty cache", func(c *Config) { c.cacheDays = 0 }, "cache"},
		{"zero rate", func(c *Config) { c.guessRate = 0 }, "rate"},
		{"zero burst", func(c *Config) { c.guessBurst = 0 }, "burst"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newTestConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			switch {
			case tt.errSub == "" && err != nil:
				t.Errorf("unexpected error: %v", err)
			case tt.errSub != "" && err == nil:
				t.Errorf("expected an error mentioning %q", tt.errSub)
			case tt.errSub != "" && !strings.Contains(err.Error(), tt.errSub):
				t.Errorf("error %q does not mention %q", err, tt.errSub)
			}
		})
	}
}

func TestScheme(t *testing.T) {
	cfg := newTestConfig()
	if cfg.scheme() != "http" {
		t.Errorf("scheme = %s, want http", cfg.scheme())
	}

	cfg.tlsCert, cfg.tlsKey = "cert.pem", "key.pem"
	if cfg.scheme() != "https" {
		t.Errorf("scheme = %s, want https", cfg.scheme())
	}
}

func newTestFlags() (*viper.Viper, *pflag.FlagSet) {
	v := viper.New()
	v.SetEnvPrefix("PALETTLE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.SetNormalizeFunc(normalizeFlag)
	fs.Int("port", 8080, "")
	fs.Int("cache-days", 14, "")
	fs.Duration("session-timeout", time.Hour, "")

	return v, fs
}

func TestBindEnv(t *testing.T) {
	t.Setenv("PALETTLE_PORT", "9090")
	t.Setenv("PALETTLE_CACHE_DAYS", "3")
	t.Setenv("PALETTLE_SESSION_TIMEOUT", "90s")

	v, fs := newTestFlags()
	if err := fs.Parse(nil); err != nil {
		t.Fatal(err)
	}

	bindEnv(v, fs)

	if port, _ := fs.GetInt("port"); port != 9090 {
		t.Errorf("port = %d, want 9090", port)
	}
	if days, _ := fs.GetInt("cache-days"); days != 3 {
		t.Errorf("cache-days = %d, want 3", days)
	}
	if d, _ := fs.GetDuration("session-timeout"); d != 90*time.Second {
		t.Errorf("session-timeout = %s, want 1m30s", d)
	}
}

func TestBindEnvFlagWins(t *testing.T) {
	t.Setenv("PALETTLE_PORT", "9090")

	v, fs := newTestFlags()
	if err := fs.Parse([]string{"--port=7070", "--cache_days=5"}); err != nil {
		t.Fatal(err)
	}

	bindEnv(v, fs)

	if port, _ := fs.GetInt("port"); port != 7070 {
		t.Errorf("port = %d, want 7070", port)
	}
	if days, _ := fs.GetInt("cache-days"); days != 5 {
		t.Errorf("cache-days = %d, want 5", days)
	}
}

func TestSeedFlag(t *testing.T) {
	cfg := newTestConfig()

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "2025-01-01", false},
		{"2024-02-29", "2024-02-29", false},
		{"2023-02-29", "", true},
		{"tomorrow", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := seedFlag(cfg, tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("seed = %q, want %q", got, tt.want)
			}
		})
	}
}
