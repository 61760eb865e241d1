package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/cstat/internal/cache"
	"github.com/theirongolddev/cstat/internal/config"
	"github.com/theirongolddev/cstat/internal/tui"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live full-screen usage view",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(_ *cobra.Command, _ []string) error {
	cfg := config.Load()
	store, err := cache.NewStore(cfg.CacheDir)
	if err != nil {
		return fmt.Errorf("opening cache dir: %w", err)
	}
	store.SetSpawn(spawnRefresh)
	res := newResources(cfg, store)

	p := tea.NewProgram(tui.NewWatch(cfg, store, res.limits, res.ccusage), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running watch: %w", err)
	}
	return nil
}
