/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Seednode/palettle/palette"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	bind           string
	cacheDays      int
	guessBurst     int
	guessRate      time.Duration
	port           int
	prefix         string
	profile        bool
	sessionTimeout time.Duration
	tlsCert        string
	tlsKey         string
	verbose        bool
	version        bool

	// now is overridden in tests.
	now func() time.Time
}

func (c *Config) validate() error {
	if (c.tlsCert == "") != (c.tlsKey == "") {
		return errors.New("both --tls-cert and --tls-key must be provided together")
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.cacheDays < 1 {
		return fmt.Errorf("invalid cache size (must be at least 1): %d", c.cacheDays)
	}
	if c.guessRate <= 0 {
		return fmt.Errorf("invalid guess rate (must be positive): %s", c.guessRate)
	}
	if c.guessBurst < 1 {
		return fmt.Errorf("invalid guess burst (must be at least 1): %d", c.guessBurst)
	}
	return nil
}

func (c *Config) scheme() string {
	if c.tlsCert != "" && c.tlsKey != "" {
		return "https"
	}
	return "http"
}

func (c *Config) clock() time.Time {
	if c.now != nil {
		return c.now()
	}
	return time.Now()
}

// bindEnv lets PALETTLE_* variables fill any flag not set on the command line.
func bindEnv(v *viper.Viper, fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("PALETTLE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "palettle",
		Short:         "A daily color palette guessing game.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		PreRun: func(cmd *cobra.Command, args []string) {
			bindEnv(v, cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return ServePage(cmd.Context(), cfg, args)
		},
	}

	fs := cmd.Flags()
	fs.SetNormalizeFunc(normalizeFlag)

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: PALETTLE_BIND)")
	fs.IntVar(&cfg.cacheDays, "cache-days", 14, "number of generated puzzles to keep in memory (env: PALETTLE_CACHE_DAYS)")
	fs.IntVar(&cfg.guessBurst, "guess-burst", 10, "player actions allowed in a burst (env: PALETTLE_GUESS_BURST)")
	fs.DurationVar(&cfg.guessRate, "guess-rate", 100*time.Millisecond, "sustained interval between player actions (env: PALETTLE_GUESS_RATE)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: PALETTLE_PORT)")
	fs.StringVar(&cfg.prefix, "prefix", "", "path to prepend to all URLs, for use behind reverse proxy (env: PALETTLE_PREFIX)")
	fs.BoolVar(&cfg.profile, "profile", false, "register net/http/pprof handlers (env: PALETTLE_PROFILE)")
	fs.DurationVar(&cfg.sessionTimeout, "session-timeout", 60*time.Minute, "time before idle game sessions are ended (env: PALETTLE_SESSION_TIMEOUT)")
	fs.StringVar(&cfg.tlsCert, "tls-cert", "", "path to tls certificate (env: PALETTLE_TLS_CERT)")
	fs.StringVar(&cfg.tlsKey, "tls-key", "", "path to tls keyfile (env: PALETTLE_TLS_KEY)")
	cmd.PersistentFlags().BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: PALETTLE_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: PALETTLE_VERSION)")

	cmd.AddCommand(newPreviewCmd(v, cfg))

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("palettle v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}

func normalizeFlag(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

// seedFlag validates a --from style date, defaulting to the current game day.
func seedFlag(cfg *Config, value string) (string, error) {
	if value == "" {
		return palette.TodaySeed(cfg.clock()), nil
	}

	if _, err := palette.ParseSeed(value); err != nil {
		return "", err
	}

	return value, nil
}
