/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Seednode/palettle/palette"
	"github.com/remeh/sizedwaitgroup"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type previewOptions struct {
	from    string
	days    int
	workers int
	scheme  string
	json    bool
}

// previewRow is one generated day.
type previewRow struct {
	Date        string                      `json:"date"`
	Family      string                      `json:"family"`
	Treatment   string                      `json:"treatment"`
	Scheme      string                      `json:"scheme"`
	Name        string                      `json:"name"`
	Hidden      [palette.PaletteSize]string `json:"hiddenPalette"`
	MinDistance float64                     `json:"minDistance"`
	Spread      float64                     `json:"perceptualSpread"`
}

func newPreviewRow(p palette.Puzzle) previewRow {
	return previewRow{
		Date:        p.Date,
		Family:      p.Wheel.FamilyName,
		Treatment:   p.Wheel.TreatmentName,
		Scheme:      p.Scheme,
		Name:        p.Metadata.Name,
		Hidden:      p.Hidden,
		MinDistance: palette.MinPairwiseDistance(p.Hidden[:]),
		Spread:      palette.PerceptualSpread(p.Hidden[:]),
	}
}

func newPreviewCmd(v *viper.Viper, cfg *Config) *cobra.Command {
	opts := &previewOptions{}

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print the puzzles for a run of days.",
		Args:  cobra.ExactArgs(0),
		PreRun: func(cmd *cobra.Command, args []string) {
			bindEnv(v, cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd.OutOrStdout(), cfg, opts)
		},
	}

	fs := cmd.Flags()
	fs.SetNormalizeFunc(normalizeFlag)

	fs.StringVar(&opts.from, "from", "", "first date to generate, as YYYY-MM-DD (default: current game day)")
	fs.IntVarP(&opts.days, "days", "n", 7, "number of consecutive days to generate")
	fs.IntVarP(&opts.workers, "workers", "w", runtime.NumCPU(), "number of days generated concurrently")
	fs.StringVar(&opts.scheme, "scheme", "", "force a scheme instead of the scheme of the day")
	fs.BoolVar(&opts.json, "json", false, "emit one JSON object per line")

	return cmd
}

func runPreview(w io.Writer, cfg *Config, opts *previewOptions) error {
	if opts.days < 1 {
		return fmt.Errorf("invalid day count (must be at least 1): %d", opts.days)
	}
	if opts.workers < 1 {
		return fmt.Errorf("invalid worker count (must be at least 1): %d", opts.workers)
	}
	if opts.scheme != "" && !palette.IsScheme(opts.scheme) {
		return fmt.Errorf("unknown scheme %q (one of %s)", opts.scheme, strings.Join(palette.Schemes(), ", "))
	}

	seed, err := seedFlag(cfg, opts.from)
	if err != nil {
		return err
	}

	start, err := palette.ParseSeed(seed)
	if err != nil {
		return err
	}

	startTime := time.Now()

	rows := make([]previewRow, opts.days)

	swg := sizedwaitgroup.New(opts.workers)
	for i := range rows {
		swg.Add()
		go func(i int) {
			defer swg.Done()

			day := start.AddDate(0, 0, i).Format(palette.SeedLayout)

			scheme := opts.scheme
			if scheme == "" {
				scheme = palette.DailyScheme(day)
			}

			rows[i] = newPreviewRow(palette.NewPuzzleWithScheme(day, scheme))
		}(i)
	}
	swg.Wait()

	logf(cfg, "PREVIEW: Generated %d days from %s in %s", opts.days, seed, time.Since(startTime).Round(time.Microsecond))

	if opts.json {
		return writePreviewJSON(w, rows)
	}

	return writePreviewTable(w, rows)
}

func writePreviewJSON(w io.Writer, rows []previewRow) error {
	enc := json.NewEncoder(w)

	for _, row := range rows {
		if err := enc.Encode(row); err != nil {
			return err
		}
	}

	return nil
}

func writePreviewTable(w io.Writer, rows []previewRow) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "DATE\tSCHEME\tWHEEL\tNAME\tPALETTE\tMIN\tSPREAD")

	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s %s\t%s\t%s\t%.1f\t%.1f\n",
			row.Date,
			row.Scheme,
			row.Treatment,
			row.Family,
			row.Name,
			strings.Join(row.Hidden[:], " "),
			row.MinDistance,
			row.Spread,
		)
	}

	return tw.Flush()
}
