package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/cstat/internal/config"
	"github.com/theirongolddev/cstat/internal/render"
	"github.com/theirongolddev/cstat/internal/sessionlog"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the session log",
	Long: "Aggregate the session history into per-day peaks and an approximate\n" +
		"session count. Session boundaries are inferred from cost drops and are\n" +
		"best-effort, not exact.",
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, _ []string) error {
	cfg := config.Load()

	f, err := os.Open(sessionlog.New(cfg.CacheDir).Path())
	if err != nil {
		fmt.Println("No session log.")
		return nil
	}
	defer f.Close()

	sum := sessionlog.Summarize(f)
	if sum.Entries == 0 {
		fmt.Println("Log empty.")
		return nil
	}

	fmt.Printf("Entries: %d | Sessions: ~%d | Total: $%.0f\n\n",
		sum.Entries, sum.Sessions, sum.TotalCost)

	// Scale each day's icon against the priciest day in the window.
	peak := 0.0
	for _, d := range sum.Days {
		if d.MaxCost > peak {
			peak = d.MaxCost
		}
	}

	for _, d := range sum.Days {
		pct := 0
		if peak > 0 {
			pct = int(d.MaxCost / peak * 100)
		}
		fmt.Printf("  %s %s: $%.0f | %s | prj: %s\n",
			render.Pie(cfg.Symbols.Pie, pct),
			d.Date,
			d.MaxCost,
			render.FormatTokens(d.MaxTokens),
			strings.Join(d.Projects, ", "),
		)
	}
	return nil
}
