// Package cmd wires the cstat command surface.
package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/theirongolddev/cstat/internal/cache"
	"github.com/theirongolddev/cstat/internal/config"
	"github.com/theirongolddev/cstat/internal/render"
	"github.com/theirongolddev/cstat/internal/sessionlog"
	"github.com/theirongolddev/cstat/internal/snapshot"
)

var rootCmd = &cobra.Command{
	Use:   "cstat",
	Short: "Claude Code statusline",
	Long: "Render a two-line usage status from the Claude Code snapshot on stdin:\n" +
		"model and context pressure, usage limits, and recent spend.",
	Args:          cobra.NoArgs,
	RunE:          runStatus,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runStatus renders the two lines. It never fails visibly: the statusline is
// drawn into an interactive surface, so the worst outcome on bad input is a
// terse fallback line, not an error.
func runStatus(_ *cobra.Command, _ []string) error {
	cfg := config.Load()

	raw, _ := io.ReadAll(os.Stdin)
	snap, err := snapshot.Decode(bytes.NewReader(raw))
	if err != nil {
		// Degraded render beats no output: salvage the model name if the
		// document is broken but not hopeless.
		if name := gjson.GetBytes(raw, "model.display_name").String(); name != "" {
			fmt.Println(name)
		}
		return nil
	}

	tier := render.TierFor(cfg.Thresholds, render.DetectWidth())
	now := time.Now()

	in := render.Inputs{Snapshot: snap, Tier: tier, Now: now}
	if store, err := cache.NewStore(cfg.CacheDir); err == nil {
		store.SetSpawn(spawnRefresh)
		res := newResources(cfg, store)

		// Cold start: fan the first-time refreshes out in parallel instead
		// of paying for them serially below.
		store.Prewarm(res.all())

		ctx := context.Background()
		in.Limits = store.Ensure(ctx, res.limits)
		in.Ccusage = store.Ensure(ctx, res.ccusage)
		in.Pricing = store.Ensure(ctx, res.pricing)

		defer sessionlog.New(cfg.CacheDir).Record(snap, now)
	}

	line1, line2 := render.Lines(cfg, in)
	fmt.Println(line1)
	fmt.Println(line2)
	return nil
}
